package fees

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sellgrid/sellermock/api/responses"
	"github.com/sellgrid/sellermock/api/validators"
	feesvc "github.com/sellgrid/sellermock/internal/fees"
	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
	"github.com/sellgrid/sellermock/pkg/logger"
)

type moneyRequest struct {
	CurrencyCode string `json:"CurrencyCode" validate:"required"`
	Amount       string `json:"Amount" validate:"required"`
}

type priceToEstimateFeesRequest struct {
	ListingPrice moneyRequest  `json:"ListingPrice" validate:"required"`
	Shipping     *moneyRequest `json:"Shipping,omitempty"`
}

type feesEstimateRequest struct {
	MarketplaceID         string                     `json:"MarketplaceId" validate:"required"`
	IDType                string                     `json:"IdType" validate:"required"`
	IDValue               string                     `json:"IdValue" validate:"required"`
	IsAmazonFulfilled     bool                       `json:"IsAmazonFulfilled"`
	PriceToEstimateFees   priceToEstimateFeesRequest `json:"PriceToEstimateFees" validate:"required"`
	SellerInputIdentifier *string                    `json:"SellerInputIdentifier,omitempty"`
}

func parseAmount(raw, field string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeInvalidInput, err, field+" must be a decimal amount")
	}
	return amount, nil
}

// EstimateForSKU handles POST /products/fees/v0/listings/{sellerSku}/feesEstimate.
func EstimateForSKU(svc feesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "fees service unavailable"))
			return
		}

		var payload feesEstimateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listingPrice, err := parseAmount(payload.PriceToEstimateFees.ListingPrice.Amount, "ListingPrice.Amount")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := feesvc.EstimateInput{
			SellerSKU:         chi.URLParam(r, "sellerSku"),
			MarketplaceID:     payload.MarketplaceID,
			IDType:            payload.IDType,
			IDValue:           payload.IDValue,
			IsAmazonFulfilled: payload.IsAmazonFulfilled,
			ListingPrice:      listingPrice,
		}
		if payload.PriceToEstimateFees.Shipping != nil {
			shipping, err := parseAmount(payload.PriceToEstimateFees.Shipping.Amount, "Shipping.Amount")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Shipping = &shipping
		}

		result, err := svc.EstimateForSKU(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, result)
	}
}
