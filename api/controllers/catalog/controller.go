package catalog

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sellgrid/sellermock/api/responses"
	"github.com/sellgrid/sellermock/api/validators"
	catalogsvc "github.com/sellgrid/sellermock/internal/catalog"
	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
	"github.com/sellgrid/sellermock/pkg/logger"
)

// ListCategories handles GET /catalog/v0/categories.
func ListCategories(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "catalog service unavailable"))
			return
		}

		marketplaceID := strings.TrimSpace(r.URL.Query().Get("marketplaceId"))
		if marketplaceID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInvalidInput, "marketplaceId is required"))
			return
		}

		categories, err := svc.ListCategories(r.Context(), marketplaceID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, categories)
	}
}

// The 2022-04-01 item surface returns its results body unenveloped.

// SearchItems handles GET /catalog/2022-04-01/items.
func SearchItems(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "catalog service unavailable"))
			return
		}

		pageSize, err := validators.ParseQueryInt(r, "pageSize", 0, 0, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalogsvc.SearchInput{
			MarketplaceIDs: validators.QueryCSV(r, "marketplaceIds"),
			Identifiers:    validators.QueryCSV(r, "identifiers"),
			Keywords:       validators.QueryCSV(r, "keywords"),
			BrandNames:     validators.QueryCSV(r, "brandNames"),
			PageSize:       pageSize,
			PageToken:      r.URL.Query().Get("pageToken"),
		}
		if sellerID := strings.TrimSpace(r.URL.Query().Get("sellerId")); sellerID != "" {
			input.SellerID = &sellerID
		}

		results, err := svc.SearchItems(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteRaw(w, http.StatusOK, results)
	}
}

// GetItem handles GET /catalog/2022-04-01/items/{asin}.
func GetItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "catalog service unavailable"))
			return
		}

		item, err := svc.GetItem(r.Context(), chi.URLParam(r, "asin"), validators.QueryCSV(r, "marketplaceIds"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteRaw(w, http.StatusOK, item)
	}
}
