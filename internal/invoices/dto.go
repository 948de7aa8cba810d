package invoices

import (
	"time"

	"github.com/sellgrid/sellermock/pkg/db/dbtypes"
	"github.com/sellgrid/sellermock/pkg/db/models"
)

// TransactionIDDTO is one transaction identifier attached to an invoice.
type TransactionIDDTO struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// InvoiceDTO is a single tax invoice on the wire.
type InvoiceDTO struct {
	Date              string             `json:"date"`
	ErrorCode         *string            `json:"errorCode,omitempty"`
	ExternalInvoiceID *string            `json:"externalInvoiceId,omitempty"`
	GovResponse       *string            `json:"govResponse,omitempty"`
	ID                string             `json:"id"`
	InvoiceType       string             `json:"invoiceType"`
	Series            *string            `json:"series,omitempty"`
	Status            string             `json:"status"`
	TransactionIDs    []TransactionIDDTO `json:"transactionIds"`
	TransactionType   string             `json:"transactionType"`
}

// InvoicesPayload carries a page of invoices.
type InvoicesPayload struct {
	Invoices  []InvoiceDTO `json:"invoices"`
	NextToken *string      `json:"nextToken,omitempty"`
}

// AttributeOptionDTO is one selectable filter value.
type AttributeOptionDTO struct {
	Description string `json:"description"`
	Value       string `json:"value"`
}

// AttributesDTO groups the filter options the invoices surface accepts.
type AttributesDTO struct {
	InvoiceStatusOptions             []AttributeOptionDTO `json:"invoiceStatusOptions"`
	InvoiceTypeOptions               []AttributeOptionDTO `json:"invoiceTypeOptions"`
	TransactionIdentifierNameOptions []AttributeOptionDTO `json:"transactionIdentifierNameOptions"`
	TransactionTypeOptions           []AttributeOptionDTO `json:"transactionTypeOptions"`
}

// AttributesPayload wraps the grouped options under the surface's key.
type AttributesPayload struct {
	InvoicesAttributes AttributesDTO `json:"invoicesAttributes"`
}

// DocumentDTO identifies a rendered invoice document and where to fetch it.
type DocumentDTO struct {
	InvoicesDocumentID  string `json:"invoicesDocumentId"`
	InvoicesDocumentURL string `json:"invoicesDocumentUrl"`
}

// DocumentPayload wraps a document lookup response.
type DocumentPayload struct {
	InvoicesDocument DocumentDTO `json:"invoicesDocument"`
}

// ExportDTO is one export job on the wire.
type ExportDTO struct {
	ErrorMessage             *string  `json:"errorMessage,omitempty"`
	ExportID                 string   `json:"exportId"`
	GenerateExportFinishedAt *string  `json:"generateExportFinishedAt,omitempty"`
	GenerateExportStartedAt  *string  `json:"generateExportStartedAt,omitempty"`
	InvoicesDocumentIDs      []string `json:"invoicesDocumentIds"`
	Status                   string   `json:"status"`
}

// ExportsPayload carries a page of export jobs.
type ExportsPayload struct {
	Exports   []ExportDTO `json:"exports"`
	NextToken *string     `json:"nextToken,omitempty"`
}

// ExportCreatedDTO acknowledges a new export job.
type ExportCreatedDTO struct {
	ExportID string `json:"exportId"`
}

func toInvoiceDTO(invoice *models.Invoice) InvoiceDTO {
	dto := InvoiceDTO{
		Date:              invoice.Date.UTC().Format(time.RFC3339),
		ErrorCode:         invoice.ErrorCode,
		ExternalInvoiceID: invoice.ExternalInvoiceID,
		GovResponse:       invoice.GovResponse,
		ID:                invoice.ID,
		InvoiceType:       invoice.InvoiceType,
		Series:            invoice.Series,
		Status:            invoice.Status,
		TransactionIDs:    toTransactionIDs(invoice.TransactionIDs),
		TransactionType:   invoice.TransactionType,
	}
	return dto
}

func toTransactionIDs(ids dbtypes.TransactionIdentifierList) []TransactionIDDTO {
	out := make([]TransactionIDDTO, 0, len(ids))
	for _, id := range ids {
		out = append(out, TransactionIDDTO{Name: id.Name, ID: id.ID})
	}
	return out
}

func toExportDTO(export *models.InvoiceExport) ExportDTO {
	dto := ExportDTO{
		ErrorMessage:             export.ErrorMessage,
		ExportID:                 export.ExportID,
		GenerateExportFinishedAt: formatTime(export.GenerateExportFinishedAt),
		GenerateExportStartedAt:  formatTime(export.GenerateExportStartedAt),
		InvoicesDocumentIDs:      []string(export.InvoicesDocumentIDs),
		Status:                   string(export.Status),
	}
	if dto.InvoicesDocumentIDs == nil {
		dto.InvoicesDocumentIDs = []string{}
	}
	return dto
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}
