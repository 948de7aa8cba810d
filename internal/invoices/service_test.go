package invoices

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sellgrid/sellermock/pkg/config"
	"github.com/sellgrid/sellermock/pkg/db/dbtypes"
	"github.com/sellgrid/sellermock/pkg/db/models"
	"github.com/sellgrid/sellermock/pkg/enums"
	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
)

var testMockConfig = config.MockConfig{
	FeedProcessingStart: 30 * time.Second,
	FeedProcessingDone:  2 * time.Minute,
	ExportProcessing:    30 * time.Second,
}

func setupInvoicesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	invoices := `
CREATE TABLE IF NOT EXISTS invoices (
  id TEXT PRIMARY KEY,
  date DATETIME NOT NULL,
  error_code TEXT,
  external_invoice_id TEXT,
  gov_response TEXT,
  invoice_type TEXT NOT NULL,
  series TEXT,
  status TEXT NOT NULL,
  transaction_ids TEXT,
  transaction_type TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	documents := `
CREATE TABLE IF NOT EXISTS invoice_documents (
  document_id TEXT PRIMARY KEY,
  invoice_id TEXT NOT NULL,
  document_url TEXT NOT NULL,
  document_type TEXT,
  file_size INTEGER,
  created_at DATETIME,
  updated_at DATETIME
);`
	attributes := `
CREATE TABLE IF NOT EXISTS invoice_attributes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  attribute_type TEXT NOT NULL,
  value TEXT NOT NULL,
  description TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	exports := `
CREATE TABLE IF NOT EXISTS invoice_exports (
  export_id TEXT PRIMARY KEY,
  status TEXT NOT NULL,
  generate_export_started_at DATETIME,
  generate_export_finished_at DATETIME,
  invoices_document_ids TEXT,
  error_message TEXT,
  request_filters TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	for _, stmt := range []string{invoices, documents, attributes, exports} {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func newInvoicesService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn), testMockConfig)
	require.NoError(t, err)
	return svc
}

func mustCreateInvoice(t *testing.T, conn *gorm.DB, invoice models.Invoice) {
	t.Helper()
	require.NoError(t, conn.Create(&invoice).Error)
}

func testInvoice(id string, date time.Time, invoiceType, status, transactionType string) models.Invoice {
	return models.Invoice{
		ID:              id,
		Date:            date,
		InvoiceType:     invoiceType,
		Status:          status,
		TransactionType: transactionType,
		TransactionIDs: dbtypes.TransactionIdentifierList{
			{Name: "ORDER_ID", ID: "ord-" + id},
		},
	}
}

func TestAttributesDefaultsWhenUnseeded(t *testing.T) {
	conn := setupInvoicesTestDB(t)
	svc := newInvoicesService(t, conn)

	payload, err := svc.Attributes(context.Background())
	require.NoError(t, err)

	attrs := payload.InvoicesAttributes
	require.Len(t, attrs.InvoiceStatusOptions, 4)
	assert.Equal(t, "PENDING", attrs.InvoiceStatusOptions[0].Value)
	assert.Equal(t, "Pending", attrs.InvoiceStatusOptions[0].Description)
	require.Len(t, attrs.InvoiceTypeOptions, 3)
	assert.Equal(t, "TAX_INVOICE", attrs.InvoiceTypeOptions[0].Value)
	require.Len(t, attrs.TransactionIdentifierNameOptions, 3)
	require.Len(t, attrs.TransactionTypeOptions, 3)
	assert.Equal(t, "SALE", attrs.TransactionTypeOptions[0].Value)
}

func TestAttributesPreferSeededRows(t *testing.T) {
	conn := setupInvoicesTestDB(t)
	require.NoError(t, conn.Create(&models.InvoiceAttribute{
		AttributeType: "status",
		Value:         "PENDING",
		Description:   "Awaiting approval",
	}).Error)
	svc := newInvoicesService(t, conn)

	payload, err := svc.Attributes(context.Background())
	require.NoError(t, err)

	attrs := payload.InvoicesAttributes
	require.Len(t, attrs.InvoiceStatusOptions, 1)
	assert.Equal(t, "Awaiting approval", attrs.InvoiceStatusOptions[0].Description)
	assert.Empty(t, attrs.InvoiceTypeOptions)
}

func TestListInvoicesFiltersAndPagination(t *testing.T) {
	conn := setupInvoicesTestDB(t)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mustCreateInvoice(t, conn, testInvoice("inv-1", base, "TAX_INVOICE", "APPROVED", "SALE"))
	mustCreateInvoice(t, conn, testInvoice("inv-2", base.AddDate(0, 0, 1), "TAX_INVOICE", "PENDING", "SALE"))
	mustCreateInvoice(t, conn, testInvoice("inv-3", base.AddDate(0, 0, 2), "CREDIT_NOTE", "APPROVED", "RETURN"))

	svc := newInvoicesService(t, conn)
	ctx := context.Background()

	payload, err := svc.ListInvoices(ctx, ListInput{Statuses: []string{"APPROVED"}})
	require.NoError(t, err)
	require.Len(t, payload.Invoices, 2)
	assert.Equal(t, "inv-3", payload.Invoices[0].ID)
	assert.Nil(t, payload.NextToken)

	payload, err = svc.ListInvoices(ctx, ListInput{InvoiceType: "CREDIT_NOTE"})
	require.NoError(t, err)
	require.Len(t, payload.Invoices, 1)
	assert.Equal(t, "RETURN", payload.Invoices[0].TransactionType)
	require.Len(t, payload.Invoices[0].TransactionIDs, 1)
	assert.Equal(t, "ord-inv-3", payload.Invoices[0].TransactionIDs[0].ID)

	dateEnd := base.AddDate(0, 0, 1)
	payload, err = svc.ListInvoices(ctx, ListInput{DateEnd: &dateEnd})
	require.NoError(t, err)
	require.Len(t, payload.Invoices, 2)

	payload, err = svc.ListInvoices(ctx, ListInput{MaxResults: 2})
	require.NoError(t, err)
	require.Len(t, payload.Invoices, 2)
	require.NotNil(t, payload.NextToken)
	assert.Equal(t, "2", *payload.NextToken)

	payload, err = svc.ListInvoices(ctx, ListInput{MaxResults: 2, NextToken: *payload.NextToken})
	require.NoError(t, err)
	require.Len(t, payload.Invoices, 1)
	assert.Equal(t, "inv-1", payload.Invoices[0].ID)
	assert.Nil(t, payload.NextToken)
}

func TestGetInvoiceAndDocument(t *testing.T) {
	conn := setupInvoicesTestDB(t)
	date := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)
	mustCreateInvoice(t, conn, testInvoice("inv-10", date, "TAX_INVOICE", "APPROVED", "SALE"))
	require.NoError(t, conn.Create(&models.InvoiceDocument{
		DocumentID:  "doc-10",
		InvoiceID:   "inv-10",
		DocumentURL: "https://sellermock.example.com/invoices/doc-10.pdf",
	}).Error)

	svc := newInvoicesService(t, conn)
	ctx := context.Background()

	invoice, err := svc.GetInvoice(ctx, "inv-10")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05T10:30:00Z", invoice.Date)
	assert.Equal(t, "APPROVED", invoice.Status)

	doc, err := svc.GetDocument(ctx, "doc-10")
	require.NoError(t, err)
	assert.Equal(t, "doc-10", doc.InvoicesDocument.InvoicesDocumentID)
	assert.Equal(t, "https://sellermock.example.com/invoices/doc-10.pdf", doc.InvoicesDocument.InvoicesDocumentURL)

	_, err = svc.GetInvoice(ctx, "inv-missing")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	_, err = svc.GetDocument(ctx, "doc-missing")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestExportLifecycleCompletesWithMatchingDocuments(t *testing.T) {
	conn := setupInvoicesTestDB(t)
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mustCreateInvoice(t, conn, testInvoice("inv-1", date, "TAX_INVOICE", "APPROVED", "SALE"))
	mustCreateInvoice(t, conn, testInvoice("inv-2", date, "CREDIT_NOTE", "APPROVED", "RETURN"))
	require.NoError(t, conn.Create(&models.InvoiceDocument{
		DocumentID:  "doc-1",
		InvoiceID:   "inv-1",
		DocumentURL: "https://sellermock.example.com/invoices/doc-1.pdf",
	}).Error)
	require.NoError(t, conn.Create(&models.InvoiceDocument{
		DocumentID:  "doc-2",
		InvoiceID:   "inv-2",
		DocumentURL: "https://sellermock.example.com/invoices/doc-2.pdf",
	}).Error)

	svc := newInvoicesService(t, conn)
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := &start
	svc.(*service).now = func() time.Time { return *clock }
	ctx := context.Background()

	created, err := svc.CreateExport(ctx, ExportFilters{InvoiceType: "TAX_INVOICE"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ExportID)

	export, err := svc.GetExport(ctx, created.ExportID)
	require.NoError(t, err)
	assert.Equal(t, string(enums.ExportStatusRequested), export.Status)
	assert.Empty(t, export.InvoicesDocumentIDs)
	assert.Nil(t, export.GenerateExportFinishedAt)

	later := start.Add(time.Minute)
	clock = &later
	export, err = svc.GetExport(ctx, created.ExportID)
	require.NoError(t, err)
	assert.Equal(t, string(enums.ExportStatusCompleted), export.Status)
	assert.Equal(t, []string{"doc-1"}, export.InvoicesDocumentIDs)
	require.NotNil(t, export.GenerateExportFinishedAt)
	assert.Equal(t, "2024-03-10T12:00:30Z", *export.GenerateExportFinishedAt)

	// Terminal state is stable on re-read.
	export, err = svc.GetExport(ctx, created.ExportID)
	require.NoError(t, err)
	assert.Equal(t, string(enums.ExportStatusCompleted), export.Status)
	assert.Equal(t, "2024-03-10T12:00:30Z", *export.GenerateExportFinishedAt)
}

func TestListExportsAdvancesAndPaginates(t *testing.T) {
	conn := setupInvoicesTestDB(t)
	svc := newInvoicesService(t, conn)
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := &start
	svc.(*service).now = func() time.Time { return *clock }
	ctx := context.Background()

	first, err := svc.CreateExport(ctx, ExportFilters{})
	require.NoError(t, err)
	_, err = svc.CreateExport(ctx, ExportFilters{})
	require.NoError(t, err)

	later := start.Add(time.Minute)
	clock = &later
	payload, err := svc.ListExports(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, payload.Exports, 1)
	assert.Equal(t, string(enums.ExportStatusCompleted), payload.Exports[0].Status)
	require.NotNil(t, payload.NextToken)
	assert.Equal(t, "1", *payload.NextToken)

	payload, err = svc.ListExports(ctx, 1, *payload.NextToken)
	require.NoError(t, err)
	require.Len(t, payload.Exports, 1)
	assert.Nil(t, payload.NextToken)

	export, err := svc.GetExport(ctx, first.ExportID)
	require.NoError(t, err)
	assert.Equal(t, string(enums.ExportStatusCompleted), export.Status)
	assert.Empty(t, export.InvoicesDocumentIDs)
}

func TestGetExportUnknownID(t *testing.T) {
	conn := setupInvoicesTestDB(t)
	svc := newInvoicesService(t, conn)

	_, err := svc.GetExport(context.Background(), "export-missing")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
