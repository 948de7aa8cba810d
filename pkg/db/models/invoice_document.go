package models

import "time"

// InvoiceDocument references a rendered invoice file.
type InvoiceDocument struct {
	DocumentID   string    `gorm:"column:document_id;primaryKey"`
	InvoiceID    string    `gorm:"column:invoice_id;not null"`
	DocumentURL  string    `gorm:"column:document_url;not null"`
	DocumentType *string   `gorm:"column:document_type"`
	FileSize     *int      `gorm:"column:file_size"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (InvoiceDocument) TableName() string { return "invoice_documents" }
