package inventory

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sellgrid/sellermock/api/responses"
	"github.com/sellgrid/sellermock/api/validators"
	invsvc "github.com/sellgrid/sellermock/internal/inventory"
	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
	"github.com/sellgrid/sellermock/pkg/logger"
	"github.com/sellgrid/sellermock/pkg/pagination"
)

// GetSummaries handles GET /fba/inventory/v1/summaries.
func GetSummaries(svc invsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "inventory service unavailable"))
			return
		}

		granularityType := strings.TrimSpace(r.URL.Query().Get("granularityType"))
		if granularityType != "" && !strings.EqualFold(granularityType, "Marketplace") {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInvalidInput, "granularityType must be Marketplace"))
			return
		}

		details, err := validators.ParseQueryBool(r, "details", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		startDate, err := validators.ParseQueryTime(r, "startDateTime")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		maxResults, err := validators.ParseQueryInt(r, "maxResults", pagination.DefaultMaxResults, 1, pagination.MaxMaxResults)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		marketplaceIDs := validators.QueryCSV(r, "marketplaceIds")
		if id := strings.TrimSpace(r.URL.Query().Get("granularityId")); id != "" && len(marketplaceIDs) == 0 {
			// granularityId names the marketplace when the caller omits the list.
			marketplaceIDs = []string{id}
		}

		payload, err := svc.ListSummaries(r.Context(), invsvc.ListInput{
			MarketplaceIDs: marketplaceIDs,
			SellerSKUs:     validators.QueryCSV(r, "sellerSkus"),
			StartDate:      startDate,
			Details:        details,
			NextToken:      r.URL.Query().Get("nextToken"),
			MaxResults:     maxResults,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, payload)
	}
}

// GetItem handles GET /fba/inventory/v1/items/{sku}.
func GetItem(svc invsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "inventory service unavailable"))
			return
		}

		detail, err := svc.GetBySKU(r.Context(), chi.URLParam(r, "sku"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, detail)
	}
}

type patchItemRequest struct {
	FNSKU                        *string `json:"fnSku,omitempty"`
	ASIN                         *string `json:"asin,omitempty"`
	Condition                    *string `json:"condition,omitempty"`
	ProductName                  *string `json:"productName,omitempty"`
	TotalQuantity                *int    `json:"totalQuantity,omitempty" validate:"omitempty,min=0"`
	FulfillableQuantity          *int    `json:"fulfillableQuantity,omitempty" validate:"omitempty,min=0"`
	InboundWorkingQuantity       *int    `json:"inboundWorkingQuantity,omitempty" validate:"omitempty,min=0"`
	InboundShippedQuantity       *int    `json:"inboundShippedQuantity,omitempty" validate:"omitempty,min=0"`
	InboundReceivingQuantity     *int    `json:"inboundReceivingQuantity,omitempty" validate:"omitempty,min=0"`
	UnfulfillableQuantity        *int    `json:"unfulfillableQuantity,omitempty" validate:"omitempty,min=0"`
	TotalReservedQuantity        *int    `json:"totalReservedQuantity,omitempty" validate:"omitempty,min=0"`
	PendingCustomerOrderQuantity *int    `json:"pendingCustomerOrderQuantity,omitempty" validate:"omitempty,min=0"`
	PendingTransshipmentQuantity *int    `json:"pendingTransshipmentQuantity,omitempty" validate:"omitempty,min=0"`
	FCProcessingQuantity         *int    `json:"fcProcessingQuantity,omitempty" validate:"omitempty,min=0"`
}

func (p patchItemRequest) toPatch() invsvc.Patch {
	return invsvc.Patch{
		FNSKU:                                p.FNSKU,
		ASIN:                                 p.ASIN,
		ConditionType:                        p.Condition,
		ProductName:                          p.ProductName,
		TotalQuantity:                        p.TotalQuantity,
		FulfillableQuantity:                  p.FulfillableQuantity,
		InboundWorkingQuantity:               p.InboundWorkingQuantity,
		InboundShippedQuantity:               p.InboundShippedQuantity,
		InboundReceivingQuantity:             p.InboundReceivingQuantity,
		UnfulfillableQuantity:                p.UnfulfillableQuantity,
		ReservedQuantityTotal:                p.TotalReservedQuantity,
		ReservedQuantityPendingCustomerOrder: p.PendingCustomerOrderQuantity,
		ReservedQuantityPendingTransshipment: p.PendingTransshipmentQuantity,
		ReservedQuantityFCProcessing:         p.FCProcessingQuantity,
	}
}

// PatchItem handles PATCH /fba/inventory/v1/items/{sku}, the mock-only admin
// surface used to stage test fixtures.
func PatchItem(svc invsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "inventory service unavailable"))
			return
		}

		var payload patchItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Update(r.Context(), chi.URLParam(r, "sku"), payload.toPatch())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, detail)
	}
}
