package invoices

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sellgrid/sellermock/api/responses"
	"github.com/sellgrid/sellermock/api/validators"
	invoicesvc "github.com/sellgrid/sellermock/internal/invoices"
	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
	"github.com/sellgrid/sellermock/pkg/logger"
	"github.com/sellgrid/sellermock/pkg/pagination"
)

// GetAttributes handles GET /tax/invoices/2024-06-19/attributes.
func GetAttributes(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "invoices service unavailable"))
			return
		}

		payload, err := svc.Attributes(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, payload)
	}
}

// ListInvoices handles GET /tax/invoices/2024-06-19/invoices.
func ListInvoices(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "invoices service unavailable"))
			return
		}

		dateStart, err := validators.ParseQueryTime(r, "dateStart")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dateEnd, err := validators.ParseQueryTime(r, "dateEnd")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		maxResults, err := validators.ParseQueryInt(r, "maxResults", pagination.MaxMaxResults, 1, pagination.MaxMaxResults)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, err := svc.ListInvoices(r.Context(), invoicesvc.ListInput{
			Statuses:        validators.QueryCSV(r, "statuses"),
			InvoiceType:     strings.TrimSpace(r.URL.Query().Get("invoiceType")),
			TransactionType: strings.TrimSpace(r.URL.Query().Get("transactionType")),
			DateStart:       dateStart,
			DateEnd:         dateEnd,
			MaxResults:      maxResults,
			NextToken:       r.URL.Query().Get("nextToken"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, payload)
	}
}

// GetInvoice handles GET /tax/invoices/2024-06-19/invoices/{invoiceId}.
func GetInvoice(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "invoices service unavailable"))
			return
		}

		invoice, err := svc.GetInvoice(r.Context(), chi.URLParam(r, "invoiceId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, map[string]any{"invoice": invoice})
	}
}

// GetDocument handles GET /tax/invoices/2024-06-19/documents/{documentId}.
func GetDocument(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "invoices service unavailable"))
			return
		}

		payload, err := svc.GetDocument(r.Context(), chi.URLParam(r, "documentId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, payload)
	}
}

type createExportRequest struct {
	Statuses        []string `json:"statuses,omitempty"`
	InvoiceType     *string  `json:"invoiceType,omitempty"`
	TransactionType *string  `json:"transactionType,omitempty"`
	DateStart       *string  `json:"dateStart,omitempty"`
	DateEnd         *string  `json:"dateEnd,omitempty"`
}

// CreateExport handles POST /tax/invoices/2024-06-19/exports.
func CreateExport(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "invoices service unavailable"))
			return
		}

		var payload createExportRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := invoicesvc.ExportFilters{Statuses: payload.Statuses}
		if payload.InvoiceType != nil {
			filters.InvoiceType = strings.TrimSpace(*payload.InvoiceType)
		}
		if payload.TransactionType != nil {
			filters.TransactionType = strings.TrimSpace(*payload.TransactionType)
		}
		var err error
		if filters.DateStart, err = validators.ParseOptionalTime(payload.DateStart, "dateStart"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.DateEnd, err = validators.ParseOptionalTime(payload.DateEnd, "dateEnd"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateExport(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayloadStatus(w, http.StatusAccepted, created)
	}
}

// ListExports handles GET /tax/invoices/2024-06-19/exports.
func ListExports(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "invoices service unavailable"))
			return
		}

		maxResults, err := validators.ParseQueryInt(r, "maxResults", pagination.MaxMaxResults, 1, pagination.MaxMaxResults)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, err := svc.ListExports(r.Context(), maxResults, r.URL.Query().Get("nextToken"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, payload)
	}
}

// GetExport handles GET /tax/invoices/2024-06-19/exports/{exportId}.
func GetExport(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "invoices service unavailable"))
			return
		}

		export, err := svc.GetExport(r.Context(), chi.URLParam(r, "exportId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, map[string]any{"export": export})
	}
}
