package invoices

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sellgrid/sellermock/internal/repo"
	"github.com/sellgrid/sellermock/pkg/db/models"
)

// ListQuery filters an invoices listing.
type ListQuery struct {
	Statuses        []string
	InvoiceType     string
	TransactionType string
	DateStart       *time.Time
	DateEnd         *time.Time
	Offset          int
	Limit           int
}

// Repository owns invoice, document, attribute and export persistence.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) ListInvoices(ctx context.Context, q ListQuery) ([]models.Invoice, int64, error) {
	tx := r.DB(ctx).Model(&models.Invoice{})
	if len(q.Statuses) > 0 {
		tx = tx.Where("status IN ?", q.Statuses)
	}
	if q.InvoiceType != "" {
		tx = tx.Where("invoice_type = ?", q.InvoiceType)
	}
	if q.TransactionType != "" {
		tx = tx.Where("transaction_type = ?", q.TransactionType)
	}
	if q.DateStart != nil {
		tx = tx.Where("date >= ?", *q.DateStart)
	}
	if q.DateEnd != nil {
		tx = tx.Where("date <= ?", *q.DateEnd)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Invoice
	err := tx.Order("date DESC, id ASC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *Repository) FindInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	var row models.Invoice
	if err := r.DB(ctx).First(&row, "id = ?", invoiceID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) FindDocument(ctx context.Context, documentID string) (*models.InvoiceDocument, error) {
	var row models.InvoiceDocument
	if err := r.DB(ctx).First(&row, "document_id = ?", documentID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListAttributes returns the configured filter options for one attribute
// group, in insertion order.
func (r *Repository) ListAttributes(ctx context.Context, attributeType string) ([]models.InvoiceAttribute, error) {
	var rows []models.InvoiceAttribute
	err := r.DB(ctx).
		Where("attribute_type = ?", attributeType).
		Order("id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) CreateExport(ctx context.Context, export *models.InvoiceExport) error {
	return r.DB(ctx).Create(export).Error
}

func (r *Repository) FindExport(ctx context.Context, exportID string) (*models.InvoiceExport, error) {
	var row models.InvoiceExport
	if err := r.DB(ctx).First(&row, "export_id = ?", exportID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) ListExports(ctx context.Context, offset, limit int) ([]models.InvoiceExport, int64, error) {
	tx := r.DB(ctx).Model(&models.InvoiceExport{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.InvoiceExport
	err := tx.Order("created_at DESC, export_id ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *Repository) SaveExport(ctx context.Context, export *models.InvoiceExport) error {
	return r.DB(ctx).Save(export).Error
}

// DocumentIDsForExport resolves which documents an export covers by applying
// the export's stored invoice filters and collecting their document ids.
func (r *Repository) DocumentIDsForExport(ctx context.Context, q ListQuery) ([]string, error) {
	var invoiceIDs []string
	tx := r.DB(ctx).Model(&models.Invoice{})
	if len(q.Statuses) > 0 {
		tx = tx.Where("status IN ?", q.Statuses)
	}
	if q.InvoiceType != "" {
		tx = tx.Where("invoice_type = ?", q.InvoiceType)
	}
	if q.TransactionType != "" {
		tx = tx.Where("transaction_type = ?", q.TransactionType)
	}
	if q.DateStart != nil {
		tx = tx.Where("date >= ?", *q.DateStart)
	}
	if q.DateEnd != nil {
		tx = tx.Where("date <= ?", *q.DateEnd)
	}
	if err := tx.Order("date DESC, id ASC").Pluck("id", &invoiceIDs).Error; err != nil {
		return nil, err
	}
	if len(invoiceIDs) == 0 {
		return []string{}, nil
	}

	var documentIDs []string
	err := r.DB(ctx).Model(&models.InvoiceDocument{}).
		Where("invoice_id IN ?", invoiceIDs).
		Order("document_id ASC").
		Pluck("document_id", &documentIDs).
		Error
	if err != nil {
		return nil, err
	}
	return documentIDs, nil
}
