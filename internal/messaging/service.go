package messaging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sellgrid/sellermock/pkg/db/models"
	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
)

const defaultBuyerLocale = "en-US"

// SendInput is the validated body of a send-message call.
type SendInput struct {
	OrderID        string
	MessageType    string
	Subject        string
	Body           string
	MarketplaceIDs []string
}

// Service exposes buyer-seller messaging for orders.
type Service interface {
	ActionsForOrder(ctx context.Context, orderID string, marketplaceIDs []string) (*ActionsPayload, error)
	BuyerAttributes(ctx context.Context, orderID string) (*BuyerAttributesPayload, error)
	SendMessage(ctx context.Context, input SendInput) (*MessageDTO, error)
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService constructs the messaging service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("messaging repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) requireOrder(ctx context.Context, orderID string) error {
	exists, err := s.repo.OrderExists(ctx, orderID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to look up order")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("order %s not found", orderID))
	}
	return nil
}

func (s *service) ActionsForOrder(ctx context.Context, orderID string, marketplaceIDs []string) (*ActionsPayload, error) {
	if err := s.requireOrder(ctx, orderID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListAvailableActions(ctx, orderID, marketplaceIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to list messaging actions")
	}

	marketplaceQuery := ""
	if len(marketplaceIDs) > 0 {
		marketplaceQuery = "?marketplaceIds=" + marketplaceIDs[0]
	}
	base := "/messaging/v1/orders/" + orderID

	payload := &ActionsPayload{
		Links: ActionsLinksDTO{
			Actions: make([]LinkDTO, 0, len(rows)),
			Self:    LinkDTO{Href: base + marketplaceQuery},
		},
		Embedded: EmbeddedActionsDTO{Actions: make([]EmbeddedActionDTO, 0, len(rows))},
	}
	for i := range rows {
		name := rows[i].ActionName
		href := base + "/messages/" + name + marketplaceQuery
		payload.Links.Actions = append(payload.Links.Actions, LinkDTO{Href: href, Name: name})
		payload.Embedded.Actions = append(payload.Embedded.Actions, EmbeddedActionDTO{
			Links: ActionLinksDTO{
				Schema: &LinkDTO{Href: base + "/messages/" + name + "/schema", Name: name},
				Self:   LinkDTO{Href: href, Name: name},
			},
		})
	}
	return payload, nil
}

func (s *service) BuyerAttributes(ctx context.Context, orderID string) (*BuyerAttributesPayload, error) {
	if err := s.requireOrder(ctx, orderID); err != nil {
		return nil, err
	}

	attrs, err := s.repo.FindBuyerAttributes(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &BuyerAttributesPayload{Buyer: BuyerDTO{Locale: defaultBuyerLocale}}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to load buyer attributes")
	}

	locale := defaultBuyerLocale
	if attrs.Locale != nil && *attrs.Locale != "" {
		locale = *attrs.Locale
	}
	return &BuyerAttributesPayload{Buyer: BuyerDTO{Locale: locale}}, nil
}

func (s *service) SendMessage(ctx context.Context, input SendInput) (*MessageDTO, error) {
	if err := s.requireOrder(ctx, input.OrderID); err != nil {
		return nil, err
	}

	_, err := s.repo.FindAvailableAction(ctx, input.OrderID, input.MessageType, input.MarketplaceIDs)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidInput,
				fmt.Sprintf("message type %q is not available for order %s", input.MessageType, input.OrderID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to look up messaging action")
	}

	subject := input.Subject
	if subject == "" {
		subject = fmt.Sprintf("Message regarding your order %s", input.OrderID)
	}
	status := "sent"
	sentAt := s.now().UTC()

	message := &models.Message{
		OrderID:     input.OrderID,
		MessageType: input.MessageType,
		Subject:     &subject,
		Body:        input.Body,
		Status:      &status,
		SentAt:      &sentAt,
	}
	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to record message")
	}

	dto := toMessageDTO(message)
	return &dto, nil
}
