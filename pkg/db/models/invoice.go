package models

import (
	"time"

	"github.com/sellgrid/sellermock/pkg/db/dbtypes"
)

// Invoice is a tax invoice with its government-response payload and the
// transaction identifiers it covers.
type Invoice struct {
	ID                string                            `gorm:"column:id;primaryKey"`
	Date              time.Time                         `gorm:"column:date;not null"`
	ErrorCode         *string                           `gorm:"column:error_code"`
	ExternalInvoiceID *string                           `gorm:"column:external_invoice_id"`
	GovResponse       *string                           `gorm:"column:gov_response"`
	InvoiceType       string                            `gorm:"column:invoice_type;not null"`
	Series            *string                           `gorm:"column:series"`
	Status            string                            `gorm:"column:status;not null"`
	TransactionIDs    dbtypes.TransactionIdentifierList `gorm:"column:transaction_ids;type:json"`
	TransactionType   string                            `gorm:"column:transaction_type;not null"`
	CreatedAt         time.Time                         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time                         `gorm:"column:updated_at;autoUpdateTime"`
}

func (Invoice) TableName() string { return "invoices" }
