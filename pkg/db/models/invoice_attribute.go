package models

import "time"

// InvoiceAttribute is one selectable filter option for the invoices surface,
// grouped by attribute_type (status, invoice_type, transaction identifier
// name, transaction type).
type InvoiceAttribute struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	AttributeType string    `gorm:"column:attribute_type;not null"`
	Value         string    `gorm:"column:value;not null"`
	Description   string    `gorm:"column:description;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (InvoiceAttribute) TableName() string { return "invoice_attributes" }
