package models

import (
	"time"

	"github.com/sellgrid/sellermock/pkg/db/dbtypes"
	"github.com/sellgrid/sellermock/pkg/enums"
)

// InvoiceExport bundles many invoice document ids behind one export job.
type InvoiceExport struct {
	ExportID                 string             `gorm:"column:export_id;primaryKey"`
	Status                   enums.ExportStatus `gorm:"column:status;not null"`
	GenerateExportStartedAt  *time.Time         `gorm:"column:generate_export_started_at"`
	GenerateExportFinishedAt *time.Time         `gorm:"column:generate_export_finished_at"`
	InvoicesDocumentIDs      dbtypes.StringList `gorm:"column:invoices_document_ids;type:json"`
	ErrorMessage             *string            `gorm:"column:error_message"`
	RequestFilters           dbtypes.JSONMap    `gorm:"column:request_filters;type:json"`
	CreatedAt                time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (InvoiceExport) TableName() string { return "invoice_exports" }
