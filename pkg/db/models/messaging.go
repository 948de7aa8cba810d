package models

import "time"

// MessagingAction marks whether a named message type may be sent for an order.
type MessagingAction struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID       string    `gorm:"column:order_id;not null"`
	MarketplaceID string    `gorm:"column:marketplace_id;not null"`
	ActionName    string    `gorm:"column:action_name;not null"`
	IsAvailable   bool      `gorm:"column:is_available;default:true"`
	Description   *string   `gorm:"column:description"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (MessagingAction) TableName() string { return "messaging_actions" }

// Message is a buyer-seller message tied to an order.
type Message struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID     string     `gorm:"column:order_id;not null"`
	MessageType string     `gorm:"column:message_type;not null"`
	Subject     *string    `gorm:"column:subject"`
	Body        string     `gorm:"column:body;not null"`
	Status      *string    `gorm:"column:status"`
	SentAt      *time.Time `gorm:"column:sent_at"`
	DeliveredAt *time.Time `gorm:"column:delivered_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Message) TableName() string { return "messages" }

// BuyerAttribute carries the buyer locale data used to compose messages.
type BuyerAttribute struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID      string    `gorm:"column:order_id;not null"`
	Locale       *string   `gorm:"column:locale"`
	CountryCode  *string   `gorm:"column:country_code"`
	LanguageCode *string   `gorm:"column:language_code"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (BuyerAttribute) TableName() string { return "buyer_attributes" }
