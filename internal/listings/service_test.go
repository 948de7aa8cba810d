package listings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sellgrid/sellermock/pkg/db/models"
	"github.com/sellgrid/sellermock/pkg/enums"
	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
)

func setupListingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	sellers := `
CREATE TABLE IF NOT EXISTS sellers (
  seller_id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  marketplace_id TEXT NOT NULL,
  country_code TEXT,
  currency_code TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(sellers).Error)

	schema := `
CREATE TABLE IF NOT EXISTS listings (
  seller_id TEXT NOT NULL,
  seller_sku TEXT NOT NULL,
  asin TEXT,
  product_type TEXT,
  item_name TEXT,
  brand_name TEXT,
  attributes TEXT,
  status TEXT NOT NULL DEFAULT 'ACTIVE',
  submission_id TEXT,
  issues TEXT,
  created_date DATETIME,
  last_updated_date DATETIME,
  created_at DATETIME,
  updated_at DATETIME,
  PRIMARY KEY (seller_id, seller_sku)
);`
	require.NoError(t, conn.Exec(schema).Error)
	return conn
}

func newListingsService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func TestPutCreatesActiveListing(t *testing.T) {
	conn := setupListingsTestDB(t)
	svc := newListingsService(t, conn)

	result, err := svc.Put(context.Background(), "SELLER-1", "SKU-1", PutInput{
		ProductType: "LUGGAGE",
		Attributes:  map[string]any{"item_name": "Carry-on"},
	})
	require.NoError(t, err)
	assert.Equal(t, "SKU-1", result.SKU)
	assert.Equal(t, "ACTIVE", result.Status)
	assert.NotEmpty(t, result.SubmissionID)
	assert.Empty(t, result.Issues)

	var row models.Listing
	require.NoError(t, conn.First(&row, "seller_id = ? AND seller_sku = ?", "SELLER-1", "SKU-1").Error)
	assert.Equal(t, enums.ListingStatusActive, row.Status)
	require.NotNil(t, row.ProductType)
	assert.Equal(t, "LUGGAGE", *row.ProductType)
}

func TestPutUpdatesExistingListing(t *testing.T) {
	conn := setupListingsTestDB(t)
	svc := newListingsService(t, conn)
	ctx := context.Background()

	first, err := svc.Put(ctx, "SELLER-1", "SKU-1", PutInput{ProductType: "LUGGAGE"})
	require.NoError(t, err)

	second, err := svc.Put(ctx, "SELLER-1", "SKU-1", PutInput{
		ProductType: "SHOES",
		Attributes:  map[string]any{"color": "black"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.SubmissionID, second.SubmissionID)

	var count int64
	require.NoError(t, conn.Model(&models.Listing{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var row models.Listing
	require.NoError(t, conn.First(&row, "seller_id = ? AND seller_sku = ?", "SELLER-1", "SKU-1").Error)
	require.NotNil(t, row.ProductType)
	assert.Equal(t, "SHOES", *row.ProductType)
	assert.Equal(t, "black", row.Attributes["color"])
}

func TestGetListing(t *testing.T) {
	conn := setupListingsTestDB(t)
	svc := newListingsService(t, conn)
	ctx := context.Background()

	_, err := svc.Put(ctx, "SELLER-1", "SKU-1", PutInput{
		ProductType: "LUGGAGE",
		Attributes:  map[string]any{"item_name": "Carry-on"},
	})
	require.NoError(t, err)

	item, err := svc.Get(ctx, "SELLER-1", "SKU-1", []string{"A1PA6795UKMFR9"})
	require.NoError(t, err)
	assert.Equal(t, "SKU-1", item.SKU)
	assert.Equal(t, "ACTIVE", item.Status)
	require.Len(t, item.Summaries, 1)
	assert.Equal(t, "A1PA6795UKMFR9", item.Summaries[0].MarketplaceID)
	assert.Equal(t, "Carry-on", item.Attributes["item_name"])
	assert.Empty(t, item.Issues)
}

func TestGetListingNotFound(t *testing.T) {
	conn := setupListingsTestDB(t)
	svc := newListingsService(t, conn)

	_, err := svc.Get(context.Background(), "SELLER-1", "SKU-MISSING", nil)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeleteSoftDeletes(t *testing.T) {
	conn := setupListingsTestDB(t)
	svc := newListingsService(t, conn)
	ctx := context.Background()

	_, err := svc.Put(ctx, "SELLER-1", "SKU-1", PutInput{ProductType: "LUGGAGE"})
	require.NoError(t, err)

	result, err := svc.Delete(ctx, "SELLER-1", "SKU-1")
	require.NoError(t, err)
	assert.Equal(t, "DELETED", result.Status)
	assert.NotEmpty(t, result.SubmissionID)

	// The row survives as INACTIVE.
	var row models.Listing
	require.NoError(t, conn.First(&row, "seller_id = ? AND seller_sku = ?", "SELLER-1", "SKU-1").Error)
	assert.Equal(t, enums.ListingStatusInactive, row.Status)
}

func TestDeleteNotFound(t *testing.T) {
	conn := setupListingsTestDB(t)
	svc := newListingsService(t, conn)

	_, err := svc.Delete(context.Background(), "SELLER-1", "SKU-MISSING")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListBySellerFilters(t *testing.T) {
	conn := setupListingsTestDB(t)
	svc := newListingsService(t, conn)
	ctx := context.Background()

	_, err := svc.Put(ctx, "SELLER-1", "SKU-1", PutInput{ProductType: "LUGGAGE"})
	require.NoError(t, err)
	_, err = svc.Put(ctx, "SELLER-1", "SKU-2", PutInput{ProductType: "SHOES"})
	require.NoError(t, err)
	_, err = svc.Delete(ctx, "SELLER-1", "SKU-2")
	require.NoError(t, err)

	all, err := svc.ListBySeller(ctx, "SELLER-1", ListFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active := enums.ListingStatusActive
	onlyActive, err := svc.ListBySeller(ctx, "SELLER-1", ListFilters{Status: &active})
	require.NoError(t, err)
	require.Len(t, onlyActive, 1)
	assert.Equal(t, "SKU-1", onlyActive[0].SKU)

	productType := "SHOES"
	onlyShoes, err := svc.ListBySeller(ctx, "SELLER-1", ListFilters{ProductType: &productType})
	require.NoError(t, err)
	require.Len(t, onlyShoes, 1)
	assert.Equal(t, "SKU-2", onlyShoes[0].SKU)
}
