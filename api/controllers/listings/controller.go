package listings

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sellgrid/sellermock/api/responses"
	"github.com/sellgrid/sellermock/api/validators"
	listsvc "github.com/sellgrid/sellermock/internal/listings"
	"github.com/sellgrid/sellermock/pkg/enums"
	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
	"github.com/sellgrid/sellermock/pkg/logger"
)

// The listings surface predates the payload envelope; responses go out
// unwrapped via WriteRaw.

type putItemRequest struct {
	ProductType  string         `json:"productType" validate:"required"`
	Attributes   map[string]any `json:"attributes,omitempty"`
	Requirements *string        `json:"requirements,omitempty"`
}

// PutItem handles PUT /listings/2021-08-01/items/{sellerId}/{sku}.
func PutItem(svc listsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "listings service unavailable"))
			return
		}

		var payload putItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		submission, err := svc.Put(r.Context(), chi.URLParam(r, "sellerId"), chi.URLParam(r, "sku"), listsvc.PutInput{
			ProductType: payload.ProductType,
			Attributes:  payload.Attributes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteRaw(w, http.StatusOK, submission)
	}
}

// GetItem handles GET /listings/2021-08-01/items/{sellerId}/{sku}.
func GetItem(svc listsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "listings service unavailable"))
			return
		}

		item, err := svc.Get(r.Context(), chi.URLParam(r, "sellerId"), chi.URLParam(r, "sku"), validators.QueryCSV(r, "marketplaceIds"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteRaw(w, http.StatusOK, item)
	}
}

// DeleteItem handles DELETE /listings/2021-08-01/items/{sellerId}/{sku}.
func DeleteItem(svc listsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "listings service unavailable"))
			return
		}

		submission, err := svc.Delete(r.Context(), chi.URLParam(r, "sellerId"), chi.URLParam(r, "sku"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteRaw(w, http.StatusOK, submission)
	}
}

// ListSellerItems handles GET /listings/2021-08-01/items/{sellerId}.
func ListSellerItems(svc listsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "listings service unavailable"))
			return
		}

		var filters listsvc.ListFilters
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseListingStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInvalidInput, err, "invalid status"))
				return
			}
			filters.Status = &status
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("productType")); raw != "" {
			filters.ProductType = &raw
		}

		items, err := svc.ListBySeller(r.Context(), chi.URLParam(r, "sellerId"), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteRaw(w, http.StatusOK, map[string]any{"items": items})
	}
}
