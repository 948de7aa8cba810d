package messaging

import (
	"time"

	"github.com/sellgrid/sellermock/pkg/db/models"
)

// LinkDTO is one HAL link.
type LinkDTO struct {
	Href string `json:"href"`
	Name string `json:"name,omitempty"`
}

// ActionLinksDTO carries the links of one embedded action.
type ActionLinksDTO struct {
	Schema *LinkDTO `json:"schema,omitempty"`
	Self   LinkDTO  `json:"self"`
}

// EmbeddedActionDTO is one available action in the _embedded block.
type EmbeddedActionDTO struct {
	Links ActionLinksDTO `json:"_links"`
}

// ActionsLinksDTO is the top-level _links block of the actions response.
type ActionsLinksDTO struct {
	Actions []LinkDTO `json:"actions"`
	Self    LinkDTO   `json:"self"`
}

// EmbeddedActionsDTO wraps the embedded action list.
type EmbeddedActionsDTO struct {
	Actions []EmbeddedActionDTO `json:"actions"`
}

// ActionsPayload renders the available messaging actions for an order in
// the HAL shape: each action appears as a link and again embedded with its
// schema link.
type ActionsPayload struct {
	Links    ActionsLinksDTO    `json:"_links"`
	Embedded EmbeddedActionsDTO `json:"_embedded"`
}

// BuyerDTO carries the buyer locale used to compose messages.
type BuyerDTO struct {
	Locale string `json:"locale"`
}

// BuyerAttributesPayload wraps the buyer attributes response.
type BuyerAttributesPayload struct {
	Buyer BuyerDTO `json:"buyer"`
}

// MessageDTO acknowledges a sent message.
type MessageDTO struct {
	OrderID     string  `json:"orderId"`
	MessageType string  `json:"messageType"`
	Subject     string  `json:"subject"`
	Status      string  `json:"status"`
	SentAt      *string `json:"sentAt,omitempty"`
}

func toMessageDTO(message *models.Message) MessageDTO {
	dto := MessageDTO{
		OrderID:     message.OrderID,
		MessageType: message.MessageType,
	}
	if message.Subject != nil {
		dto.Subject = *message.Subject
	}
	if message.Status != nil {
		dto.Status = *message.Status
	}
	if message.SentAt != nil {
		sent := message.SentAt.UTC().Format(time.RFC3339)
		dto.SentAt = &sent
	}
	return dto
}
