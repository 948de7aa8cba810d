package fees

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
)

const (
	defaultCurrency = "USD"
	defaultSellerID = "A2SELLERMOCK01"
)

// referralRate is the flat referral percentage applied to the listing price.
var referralRate = decimal.NewFromFloat(0.15)

// EstimateInput is the validated body of a fee estimate request.
type EstimateInput struct {
	SellerSKU         string
	MarketplaceID     string
	IDType            string
	IDValue           string
	IsAmazonFulfilled bool
	ListingPrice      decimal.Decimal
	Shipping          *decimal.Decimal
}

// Service computes fee estimates from stored per-SKU fee rows.
type Service interface {
	EstimateForSKU(ctx context.Context, input EstimateInput) (*ResultDTO, error)
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService constructs the fees service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("fees repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) EstimateForSKU(ctx context.Context, input EstimateInput) (*ResultDTO, error) {
	if !strings.EqualFold(input.IDType, "SKU") {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidInput, "IdType must be SKU for this operation")
	}
	if input.IDValue != input.SellerSKU {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidInput, "IdValue must match the seller SKU in the path")
	}

	record, err := s.repo.Find(ctx, input.SellerSKU, input.MarketplaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Missing fee rows are a client-level result, not a transport error.
			return &ResultDTO{
				Status: "ClientError",
				Error: &EstimateErrorDTO{
					Type:    "InvalidInput",
					Code:    "InvalidSKU",
					Message: fmt.Sprintf("The SKU %q was not found.", input.SellerSKU),
				},
			}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to load fee record")
	}

	currency := record.CurrencyCode
	if currency == "" {
		currency = defaultCurrency
	}

	referralFee := input.ListingPrice.Mul(referralRate).Round(2)
	fulfillmentFee := record.FeeAmount.Round(2)
	totalFees := referralFee.Add(fulfillmentFee)

	estimate := &EstimateDTO{
		TimeOfFeesEstimation: s.now().UTC().Format(time.RFC3339),
		TotalFeesEstimate:    moneyDTO(currency, totalFees),
		FeeDetailList: []FeeDetailDTO{
			{
				FeeType:   "ReferralFee",
				FeeAmount: moneyDTO(currency, referralFee),
				FinalFee:  moneyDTO(currency, referralFee),
			},
			{
				FeeType:   "FBAFees",
				FeeAmount: moneyDTO(currency, fulfillmentFee),
				FinalFee:  moneyDTO(currency, fulfillmentFee),
			},
		},
	}

	identifier := &IdentifierDTO{
		MarketplaceID:     input.MarketplaceID,
		SellerID:          defaultSellerID,
		IDType:            "SKU",
		IDValue:           input.SellerSKU,
		IsAmazonFulfilled: input.IsAmazonFulfilled,
		PriceToEstimateFees: PriceToEstimateFeesDTO{
			ListingPrice: moneyDTO(currency, input.ListingPrice),
			Shipping:     optionalMoneyDTO(currency, input.Shipping),
		},
	}

	return &ResultDTO{
		Status:                 "Success",
		FeesEstimateIdentifier: identifier,
		FeesEstimate:           estimate,
	}, nil
}

func moneyDTO(currency string, amount decimal.Decimal) MoneyDTO {
	return MoneyDTO{CurrencyCode: currency, Amount: amount.StringFixed(2)}
}

func optionalMoneyDTO(currency string, amount *decimal.Decimal) *MoneyDTO {
	if amount == nil {
		return nil
	}
	dto := moneyDTO(currency, *amount)
	return &dto
}
