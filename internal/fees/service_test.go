package fees

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sellgrid/sellermock/pkg/db/models"
	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
)

func setupFeesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS product_fees (
  seller_sku TEXT NOT NULL,
  marketplace_id TEXT NOT NULL,
  fee_type TEXT NOT NULL,
  fee_amount NUMERIC NOT NULL DEFAULT 0,
  currency_code TEXT NOT NULL DEFAULT 'USD',
  promotion_fee NUMERIC NOT NULL DEFAULT 0,
  total_estimate NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  PRIMARY KEY (seller_sku, marketplace_id)
);`
	require.NoError(t, conn.Exec(schema).Error)
	return conn
}

func newFeesService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func TestEstimateForSKUComputesBreakdown(t *testing.T) {
	conn := setupFeesTestDB(t)
	require.NoError(t, conn.Create(&models.ProductFee{
		SellerSKU:     "SKU-1",
		MarketplaceID: "ATVPDKIKX0DER",
		FeeType:       "FBAFees",
		FeeAmount:     decimal.NewFromFloat(2.50),
		CurrencyCode:  "USD",
	}).Error)

	svc := newFeesService(t, conn)
	fixed := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.(*service).now = func() time.Time { return fixed }

	result, err := svc.EstimateForSKU(context.Background(), EstimateInput{
		SellerSKU:         "SKU-1",
		MarketplaceID:     "ATVPDKIKX0DER",
		IDType:            "SKU",
		IDValue:           "SKU-1",
		IsAmazonFulfilled: true,
		ListingPrice:      decimal.NewFromFloat(19.99),
	})
	require.NoError(t, err)

	assert.Equal(t, "Success", result.Status)
	require.NotNil(t, result.FeesEstimate)
	assert.Equal(t, "2024-03-10T09:00:00Z", result.FeesEstimate.TimeOfFeesEstimation)
	// 15% of 19.99 rounds to 3.00; total adds the stored 2.50 fulfillment fee.
	assert.Equal(t, "3.00", result.FeesEstimate.FeeDetailList[0].FeeAmount.Amount)
	assert.Equal(t, "2.50", result.FeesEstimate.FeeDetailList[1].FeeAmount.Amount)
	assert.Equal(t, "5.50", result.FeesEstimate.TotalFeesEstimate.Amount)

	require.NotNil(t, result.FeesEstimateIdentifier)
	assert.Equal(t, "SKU-1", result.FeesEstimateIdentifier.IDValue)
	assert.True(t, result.FeesEstimateIdentifier.IsAmazonFulfilled)
	assert.Equal(t, "19.99", result.FeesEstimateIdentifier.PriceToEstimateFees.ListingPrice.Amount)
}

func TestEstimateForUnknownSKUIsClientError(t *testing.T) {
	conn := setupFeesTestDB(t)
	svc := newFeesService(t, conn)

	result, err := svc.EstimateForSKU(context.Background(), EstimateInput{
		SellerSKU:     "SKU-missing",
		MarketplaceID: "ATVPDKIKX0DER",
		IDType:        "SKU",
		IDValue:       "SKU-missing",
		ListingPrice:  decimal.NewFromFloat(10),
	})
	require.NoError(t, err)

	assert.Equal(t, "ClientError", result.Status)
	require.NotNil(t, result.Error)
	assert.Equal(t, "InvalidSKU", result.Error.Code)
	assert.Nil(t, result.FeesEstimate)
}

func TestEstimateRejectsMismatchedIdentifier(t *testing.T) {
	conn := setupFeesTestDB(t)
	svc := newFeesService(t, conn)
	ctx := context.Background()

	_, err := svc.EstimateForSKU(ctx, EstimateInput{
		SellerSKU: "SKU-1", IDType: "ASIN", IDValue: "SKU-1",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInvalidInput, pkgerrors.As(err).Code())

	_, err = svc.EstimateForSKU(ctx, EstimateInput{
		SellerSKU: "SKU-1", IDType: "SKU", IDValue: "SKU-2",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInvalidInput, pkgerrors.As(err).Code())
}
