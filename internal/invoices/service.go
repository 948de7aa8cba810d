package invoices

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sellgrid/sellermock/pkg/config"
	"github.com/sellgrid/sellermock/pkg/db/dbtypes"
	"github.com/sellgrid/sellermock/pkg/db/models"
	"github.com/sellgrid/sellermock/pkg/enums"
	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
	"github.com/sellgrid/sellermock/pkg/pagination"
)

// ListInput is the validated parameter set for an invoices listing.
type ListInput struct {
	Statuses        []string
	InvoiceType     string
	TransactionType string
	DateStart       *time.Time
	DateEnd         *time.Time
	MaxResults      int
	NextToken       string
}

// ExportFilters is the invoice filter set captured on an export job.
type ExportFilters struct {
	Statuses        []string
	InvoiceType     string
	TransactionType string
	DateStart       *time.Time
	DateEnd         *time.Time
}

// Service exposes the tax invoices surface. Export jobs have no background
// worker; reads advance the simulated lifecycle deterministically from the
// job's age.
type Service interface {
	Attributes(ctx context.Context) (*AttributesPayload, error)
	ListInvoices(ctx context.Context, input ListInput) (*InvoicesPayload, error)
	GetInvoice(ctx context.Context, invoiceID string) (*InvoiceDTO, error)
	GetDocument(ctx context.Context, documentID string) (*DocumentPayload, error)
	CreateExport(ctx context.Context, filters ExportFilters) (*ExportCreatedDTO, error)
	ListExports(ctx context.Context, maxResults int, nextToken string) (*ExportsPayload, error)
	GetExport(ctx context.Context, exportID string) (*ExportDTO, error)
}

type service struct {
	repo *Repository
	cfg  config.MockConfig
	now  func() time.Time
}

// NewService constructs the invoices service.
func NewService(repo *Repository, cfg config.MockConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("invoices repository required")
	}
	return &service{repo: repo, cfg: cfg, now: time.Now}, nil
}

// attributeGroups maps stored attribute_type values to response sections.
const (
	attributeTypeStatus          = "status"
	attributeTypeInvoiceType     = "invoice_type"
	attributeTypeTransactionName = "transaction_identifier_name"
	attributeTypeTransactionType = "transaction_type"
)

func (s *service) Attributes(ctx context.Context) (*AttributesPayload, error) {
	groups := map[string][]AttributeOptionDTO{}
	for _, attributeType := range []string{
		attributeTypeStatus,
		attributeTypeInvoiceType,
		attributeTypeTransactionName,
		attributeTypeTransactionType,
	} {
		rows, err := s.repo.ListAttributes(ctx, attributeType)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to load invoice attributes")
		}
		options := make([]AttributeOptionDTO, 0, len(rows))
		for _, row := range rows {
			options = append(options, AttributeOptionDTO{Description: row.Description, Value: row.Value})
		}
		groups[attributeType] = options
	}

	attrs := AttributesDTO{
		InvoiceStatusOptions:             groups[attributeTypeStatus],
		InvoiceTypeOptions:               groups[attributeTypeInvoiceType],
		TransactionIdentifierNameOptions: groups[attributeTypeTransactionName],
		TransactionTypeOptions:           groups[attributeTypeTransactionType],
	}
	if emptyAttributes(attrs) {
		attrs = defaultAttributes()
	}
	return &AttributesPayload{InvoicesAttributes: attrs}, nil
}

func emptyAttributes(attrs AttributesDTO) bool {
	return len(attrs.InvoiceStatusOptions) == 0 &&
		len(attrs.InvoiceTypeOptions) == 0 &&
		len(attrs.TransactionIdentifierNameOptions) == 0 &&
		len(attrs.TransactionTypeOptions) == 0
}

// defaultAttributes backs the attributes call when nothing is seeded.
func defaultAttributes() AttributesDTO {
	return AttributesDTO{
		InvoiceStatusOptions: []AttributeOptionDTO{
			{Description: "Pending", Value: "PENDING"},
			{Description: "Approved", Value: "APPROVED"},
			{Description: "Rejected", Value: "REJECTED"},
			{Description: "Cancelled", Value: "CANCELLED"},
		},
		InvoiceTypeOptions: []AttributeOptionDTO{
			{Description: "Tax Invoice", Value: "TAX_INVOICE"},
			{Description: "Credit Note", Value: "CREDIT_NOTE"},
			{Description: "Debit Note", Value: "DEBIT_NOTE"},
		},
		TransactionIdentifierNameOptions: []AttributeOptionDTO{
			{Description: "Order ID", Value: "ORDER_ID"},
			{Description: "Shipment ID", Value: "SHIPMENT_ID"},
			{Description: "Refund ID", Value: "REFUND_ID"},
		},
		TransactionTypeOptions: []AttributeOptionDTO{
			{Description: "Sale", Value: "SALE"},
			{Description: "Return", Value: "RETURN"},
			{Description: "Refund", Value: "REFUND"},
		},
	}
}

func (s *service) ListInvoices(ctx context.Context, input ListInput) (*InvoicesPayload, error) {
	maxResults := pagination.NormalizeMaxResults(input.MaxResults)
	offset := pagination.ParseToken(input.NextToken)

	rows, total, err := s.repo.ListInvoices(ctx, ListQuery{
		Statuses:        input.Statuses,
		InvoiceType:     input.InvoiceType,
		TransactionType: input.TransactionType,
		DateStart:       input.DateStart,
		DateEnd:         input.DateEnd,
		Offset:          offset,
		Limit:           maxResults,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to list invoices")
	}

	payload := &InvoicesPayload{Invoices: make([]InvoiceDTO, 0, len(rows))}
	for i := range rows {
		payload.Invoices = append(payload.Invoices, toInvoiceDTO(&rows[i]))
	}
	if token := pagination.NextToken(offset, maxResults, total); token != "" {
		payload.NextToken = &token
	}
	return payload, nil
}

func (s *service) GetInvoice(ctx context.Context, invoiceID string) (*InvoiceDTO, error) {
	invoice, err := s.repo.FindInvoice(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("invoice %s not found", invoiceID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to load invoice")
	}
	dto := toInvoiceDTO(invoice)
	return &dto, nil
}

func (s *service) GetDocument(ctx context.Context, documentID string) (*DocumentPayload, error) {
	doc, err := s.repo.FindDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("invoice document %s not found", documentID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to load invoice document")
	}
	return &DocumentPayload{InvoicesDocument: DocumentDTO{
		InvoicesDocumentID:  doc.DocumentID,
		InvoicesDocumentURL: doc.DocumentURL,
	}}, nil
}

func (s *service) CreateExport(ctx context.Context, filters ExportFilters) (*ExportCreatedDTO, error) {
	started := s.now().UTC()
	export := &models.InvoiceExport{
		ExportID:                "export-" + uuid.NewString(),
		Status:                  enums.ExportStatusRequested,
		GenerateExportStartedAt: &started,
		RequestFilters:          encodeFilters(filters),
	}
	if err := s.repo.CreateExport(ctx, export); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to create invoice export")
	}
	return &ExportCreatedDTO{ExportID: export.ExportID}, nil
}

func (s *service) ListExports(ctx context.Context, maxResults int, nextToken string) (*ExportsPayload, error) {
	limit := pagination.NormalizeMaxResults(maxResults)
	offset := pagination.ParseToken(nextToken)

	rows, total, err := s.repo.ListExports(ctx, offset, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to list invoice exports")
	}

	payload := &ExportsPayload{Exports: make([]ExportDTO, 0, len(rows))}
	for i := range rows {
		if err := s.advanceExport(ctx, &rows[i]); err != nil {
			return nil, err
		}
		payload.Exports = append(payload.Exports, toExportDTO(&rows[i]))
	}
	if token := pagination.NextToken(offset, limit, total); token != "" {
		payload.NextToken = &token
	}
	return payload, nil
}

func (s *service) GetExport(ctx context.Context, exportID string) (*ExportDTO, error) {
	export, err := s.repo.FindExport(ctx, exportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("invoice export %s not found", exportID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to load invoice export")
	}
	if err := s.advanceExport(ctx, export); err != nil {
		return nil, err
	}
	dto := toExportDTO(export)
	return &dto, nil
}

// advanceExport moves a job to its terminal state once its age passes the
// configured processing window. The finish timestamp derives from the start
// time plus the window, so repeated reads observe the same transition.
func (s *service) advanceExport(ctx context.Context, export *models.InvoiceExport) error {
	if export.Status != enums.ExportStatusRequested && export.Status != enums.ExportStatusProcessing {
		return nil
	}
	started := export.CreatedAt
	if export.GenerateExportStartedAt != nil {
		started = *export.GenerateExportStartedAt
	}
	if s.now().UTC().Sub(started) < s.cfg.ExportProcessing {
		return nil
	}

	finished := started.Add(s.cfg.ExportProcessing).UTC()
	documentIDs, err := s.repo.DocumentIDsForExport(ctx, queryFromFilters(decodeFilters(export.RequestFilters)))
	if err != nil {
		msg := err.Error()
		export.Status = enums.ExportStatusFailed
		export.ErrorMessage = &msg
		export.GenerateExportFinishedAt = &finished
	} else {
		export.Status = enums.ExportStatusCompleted
		export.InvoicesDocumentIDs = dbtypes.StringList(documentIDs)
		export.GenerateExportFinishedAt = &finished
	}
	if err := s.repo.SaveExport(ctx, export); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to persist export transition")
	}
	return nil
}

func queryFromFilters(filters ExportFilters) ListQuery {
	return ListQuery{
		Statuses:        filters.Statuses,
		InvoiceType:     filters.InvoiceType,
		TransactionType: filters.TransactionType,
		DateStart:       filters.DateStart,
		DateEnd:         filters.DateEnd,
	}
}

func encodeFilters(filters ExportFilters) dbtypes.JSONMap {
	raw := dbtypes.JSONMap{}
	if len(filters.Statuses) > 0 {
		statuses := make([]any, 0, len(filters.Statuses))
		for _, status := range filters.Statuses {
			statuses = append(statuses, status)
		}
		raw["statuses"] = statuses
	}
	if filters.InvoiceType != "" {
		raw["invoiceType"] = filters.InvoiceType
	}
	if filters.TransactionType != "" {
		raw["transactionType"] = filters.TransactionType
	}
	if filters.DateStart != nil {
		raw["dateStart"] = filters.DateStart.UTC().Format(time.RFC3339)
	}
	if filters.DateEnd != nil {
		raw["dateEnd"] = filters.DateEnd.UTC().Format(time.RFC3339)
	}
	return raw
}

func decodeFilters(raw dbtypes.JSONMap) ExportFilters {
	var filters ExportFilters
	if values, ok := raw["statuses"].([]any); ok {
		for _, value := range values {
			if status, ok := value.(string); ok {
				filters.Statuses = append(filters.Statuses, status)
			}
		}
	}
	if value, ok := raw["invoiceType"].(string); ok {
		filters.InvoiceType = value
	}
	if value, ok := raw["transactionType"].(string); ok {
		filters.TransactionType = value
	}
	if value, ok := raw["dateStart"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339, value); err == nil {
			filters.DateStart = &parsed
		}
	}
	if value, ok := raw["dateEnd"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339, value); err == nil {
			filters.DateEnd = &parsed
		}
	}
	return filters
}
