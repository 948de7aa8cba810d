package orders

import (
	"context"
	"fmt"
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

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  order_id TEXT PRIMARY KEY,
  seller_order_id TEXT,
  purchase_date DATETIME NOT NULL,
  last_update_date DATETIME NOT NULL,
  order_status TEXT NOT NULL,
  fulfillment_channel TEXT,
  sales_channel TEXT,
  ship_service_level TEXT,
  marketplace_id TEXT NOT NULL,
  order_total NUMERIC,
  currency_code TEXT NOT NULL DEFAULT 'USD',
  number_of_items_shipped INTEGER NOT NULL DEFAULT 0,
  number_of_items_unshipped INTEGER NOT NULL DEFAULT 0,
  payment_method TEXT,
  buyer_email TEXT,
  buyer_name TEXT,
  shipping_address_name TEXT,
  shipping_address_line1 TEXT,
  shipping_address_line2 TEXT,
  shipping_address_city TEXT,
  shipping_address_state TEXT,
  shipping_address_postal_code TEXT,
  shipping_address_country TEXT,
  shipping_address_phone TEXT,
  order_type TEXT NOT NULL DEFAULT 'StandardOrder',
  earliest_ship_date DATETIME,
  latest_ship_date DATETIME,
  is_business_order INTEGER NOT NULL DEFAULT 0,
  is_prime INTEGER NOT NULL DEFAULT 0,
  is_premium_order INTEGER NOT NULL DEFAULT 0,
  is_replacement_order INTEGER NOT NULL DEFAULT 0,
  is_access_point_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  order_item_id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  seller_sku TEXT NOT NULL,
  asin TEXT,
  title TEXT,
  quantity_ordered INTEGER NOT NULL,
  quantity_shipped INTEGER NOT NULL DEFAULT 0,
  item_price NUMERIC,
  shipping_price NUMERIC NOT NULL DEFAULT 0,
  item_tax NUMERIC NOT NULL DEFAULT 0,
  shipping_tax NUMERIC NOT NULL DEFAULT 0,
  promotion_discount NUMERIC NOT NULL DEFAULT 0,
  condition_id TEXT NOT NULL DEFAULT 'New',
  condition_note TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(orders).Error)
	require.NoError(t, conn.Exec(orderItems).Error)
	return conn
}

func newOrdersService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func mustSeedOrder(t *testing.T, conn *gorm.DB, id, status string, purchased time.Time) {
	t.Helper()

	name := "Jordan Buyer"
	line1 := "100 Main St"
	city := "Seattle"
	state := "WA"
	postal := "98101"
	country := "US"
	email := "buyer@example.com"
	total := decimal.RequireFromString("42.50")
	order := &models.Order{
		OrderID:            id,
		PurchaseDate:       purchased,
		LastUpdateDate:     purchased.Add(time.Hour),
		OrderStatus:        status,
		MarketplaceID:      "ATVPDKIKX0DER",
		OrderTotal:         &total,
		CurrencyCode:       "USD",
		BuyerEmail:         &email,
		BuyerName:          &name,
		ShipAddressName:    &name,
		ShipAddressLine1:   &line1,
		ShipAddressCity:    &city,
		ShipAddressState:   &state,
		ShipAddressPostal:  &postal,
		ShipAddressCountry: &country,
	}
	require.NoError(t, conn.Create(order).Error)
}

func TestListPaginatesExactlyOnce(t *testing.T) {
	conn := setupOrdersTestDB(t)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		mustSeedOrder(t, conn, fmt.Sprintf("111-0000001-000000%d", i), "Shipped", base.Add(time.Duration(i)*time.Hour))
	}
	svc := newOrdersService(t, conn)
	ctx := context.Background()

	seen := map[string]int{}
	token := ""
	for {
		payload, err := svc.List(ctx, ListInput{MaxResults: 2, NextToken: token})
		require.NoError(t, err)
		for _, o := range payload.Orders {
			seen[o.AmazonOrderID]++
		}
		if payload.NextToken == nil {
			break
		}
		token = *payload.NextToken
	}

	assert.Len(t, seen, 5)
	for id, count := range seen {
		assert.Equalf(t, 1, count, "order %s seen more than once", id)
	}
}

func TestListFiltersByStatusAndWindow(t *testing.T) {
	conn := setupOrdersTestDB(t)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mustSeedOrder(t, conn, "111-0000001-0000001", "Shipped", base)
	mustSeedOrder(t, conn, "111-0000001-0000002", "Pending", base.AddDate(0, 0, 2))
	svc := newOrdersService(t, conn)
	ctx := context.Background()

	payload, err := svc.List(ctx, ListInput{Statuses: []string{"Pending"}})
	require.NoError(t, err)
	require.Len(t, payload.Orders, 1)
	assert.Equal(t, "111-0000001-0000002", payload.Orders[0].AmazonOrderID)

	after := base.AddDate(0, 0, 1)
	payload, err = svc.List(ctx, ListInput{CreatedAfter: &after})
	require.NoError(t, err)
	require.Len(t, payload.Orders, 1)
	assert.Equal(t, "111-0000001-0000002", payload.Orders[0].AmazonOrderID)
	assert.NotEmpty(t, payload.CreatedBefore)
}

func TestGetByID(t *testing.T) {
	conn := setupOrdersTestDB(t)
	purchased := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	mustSeedOrder(t, conn, "111-0000001-0000001", "Shipped", purchased)
	svc := newOrdersService(t, conn)

	order, err := svc.GetByID(context.Background(), "111-0000001-0000001")
	require.NoError(t, err)
	assert.Equal(t, "Shipped", order.OrderStatus)
	assert.Equal(t, "2024-03-01T10:00:00Z", order.PurchaseDate)
	require.NotNil(t, order.OrderTotal)
	assert.Equal(t, "42.50", order.OrderTotal.Amount)
	require.NotNil(t, order.ShippingAddress)
	assert.Equal(t, "Seattle", *order.ShippingAddress.City)
}

func TestGetByIDNotFound(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)

	_, err := svc.GetByID(context.Background(), "111-9999999-9999999")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestGetItems(t *testing.T) {
	conn := setupOrdersTestDB(t)
	purchased := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	mustSeedOrder(t, conn, "111-0000001-0000001", "Shipped", purchased)

	price := decimal.RequireFromString("19.99")
	item := &models.OrderItem{
		OrderItemID:     "item-1",
		OrderID:         "111-0000001-0000001",
		SellerSKU:       "SKU-1",
		QuantityOrdered: 2,
		QuantityShipped: 2,
		ItemPrice:       &price,
		ConditionID:     "New",
	}
	require.NoError(t, conn.Create(item).Error)

	svc := newOrdersService(t, conn)
	payload, err := svc.GetItems(context.Background(), "111-0000001-0000001", ItemsInput{})
	require.NoError(t, err)
	assert.Equal(t, "111-0000001-0000001", payload.AmazonOrderID)
	require.Len(t, payload.OrderItems, 1)
	assert.Equal(t, "SKU-1", payload.OrderItems[0].SellerSKU)
	require.NotNil(t, payload.OrderItems[0].ItemPrice)
	assert.Equal(t, "19.99", payload.OrderItems[0].ItemPrice.Amount)
	// Zero-valued money blocks are omitted rather than rendered as 0.00.
	assert.Nil(t, payload.OrderItems[0].ShippingPrice)
	assert.Nil(t, payload.NextToken)
}

func TestGetItemsUnknownOrder(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)

	_, err := svc.GetItems(context.Background(), "111-9999999-9999999", ItemsInput{})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestGetAddressAndBuyerInfo(t *testing.T) {
	conn := setupOrdersTestDB(t)
	purchased := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	mustSeedOrder(t, conn, "111-0000001-0000001", "Shipped", purchased)
	svc := newOrdersService(t, conn)
	ctx := context.Background()

	address, err := svc.GetAddress(ctx, "111-0000001-0000001")
	require.NoError(t, err)
	require.NotNil(t, address.ShippingAddress)
	assert.Equal(t, "98101", *address.ShippingAddress.PostalCode)

	buyer, err := svc.GetBuyerInfo(ctx, "111-0000001-0000001")
	require.NoError(t, err)
	require.NotNil(t, buyer.BuyerEmail)
	assert.Equal(t, "buyer@example.com", *buyer.BuyerEmail)
}
