package orders

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sellgrid/sellermock/api/responses"
	"github.com/sellgrid/sellermock/api/validators"
	ordersvc "github.com/sellgrid/sellermock/internal/orders"
	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
	"github.com/sellgrid/sellermock/pkg/logger"
	"github.com/sellgrid/sellermock/pkg/pagination"
)

// ListOrders handles GET /orders/v0/orders.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "orders service unavailable"))
			return
		}

		createdAfter, err := validators.ParseQueryTime(r, "CreatedAfter")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		createdBefore, err := validators.ParseQueryTime(r, "CreatedBefore")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lastUpdatedAfter, err := validators.ParseQueryTime(r, "LastUpdatedAfter")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lastUpdatedBefore, err := validators.ParseQueryTime(r, "LastUpdatedBefore")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		maxResults, err := validators.ParseQueryInt(r, "MaxResultsPerPage", 100, 1, pagination.MaxMaxResults)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := ordersvc.ListInput{
			CreatedAfter:      createdAfter,
			CreatedBefore:     createdBefore,
			LastUpdatedAfter:  lastUpdatedAfter,
			LastUpdatedBefore: lastUpdatedBefore,
			Statuses:          validators.QueryCSV(r, "OrderStatuses"),
			MarketplaceIDs:    validators.QueryCSV(r, "MarketplaceIds"),
			OrderIDs:          validators.QueryCSV(r, "AmazonOrderIds"),
			MaxResults:        maxResults,
			NextToken:         r.URL.Query().Get("NextToken"),
		}
		if email := strings.TrimSpace(r.URL.Query().Get("BuyerEmail")); email != "" {
			input.BuyerEmail = &email
		}
		if sellerOrderID := strings.TrimSpace(r.URL.Query().Get("SellerOrderId")); sellerOrderID != "" {
			input.SellerOrderID = &sellerOrderID
		}

		payload, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, payload)
	}
}

// GetOrder handles GET /orders/v0/orders/{orderId}.
func GetOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "orders service unavailable"))
			return
		}

		order, err := svc.GetByID(r.Context(), chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, order)
	}
}

// GetOrderItems handles GET /orders/v0/orders/{orderId}/orderItems.
func GetOrderItems(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "orders service unavailable"))
			return
		}

		maxResults, err := validators.ParseQueryInt(r, "MaxResultsPerPage", 100, 1, pagination.MaxMaxResults)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, err := svc.GetItems(r.Context(), chi.URLParam(r, "orderId"), ordersvc.ItemsInput{
			MaxResults: maxResults,
			NextToken:  r.URL.Query().Get("NextToken"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, payload)
	}
}

// GetOrderAddress handles GET /orders/v0/orders/{orderId}/address.
func GetOrderAddress(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "orders service unavailable"))
			return
		}

		payload, err := svc.GetAddress(r.Context(), chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, payload)
	}
}

// GetOrderBuyerInfo handles GET /orders/v0/orders/{orderId}/buyerInfo.
func GetOrderBuyerInfo(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "orders service unavailable"))
			return
		}

		payload, err := svc.GetBuyerInfo(r.Context(), chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, payload)
	}
}
