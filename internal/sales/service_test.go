package sales

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

	"github.com/sellgrid/sellermock/pkg/db/dbtypes"
	"github.com/sellgrid/sellermock/pkg/db/models"
	"github.com/sellgrid/sellermock/pkg/enums"
)

func setupSalesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	salesMetrics := `
CREATE TABLE IF NOT EXISTS sales_metrics (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  interval TEXT NOT NULL,
  granularity TEXT NOT NULL,
  unit_count INTEGER NOT NULL DEFAULT 0,
  order_item_count INTEGER NOT NULL DEFAULT 0,
  order_count INTEGER NOT NULL DEFAULT 0,
  average_unit_price NUMERIC NOT NULL DEFAULT 0,
  total_sales NUMERIC NOT NULL DEFAULT 0,
  currency_code TEXT NOT NULL DEFAULT 'USD',
  buyer_type TEXT NOT NULL DEFAULT 'All',
  marketplace_ids TEXT,
  asin TEXT,
  sku TEXT,
  period_start DATETIME NOT NULL,
  period_end DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
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
	require.NoError(t, conn.Exec(salesMetrics).Error)
	require.NoError(t, conn.Exec(orders).Error)
	require.NoError(t, conn.Exec(orderItems).Error)
	return conn
}

func newSalesService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func mustCreateOrder(t *testing.T, conn *gorm.DB, id string, purchased time.Time, business bool, items ...models.OrderItem) {
	t.Helper()

	order := &models.Order{
		OrderID:         id,
		PurchaseDate:    purchased,
		LastUpdateDate:  purchased,
		OrderStatus:     "Shipped",
		MarketplaceID:   "ATVPDKIKX0DER",
		CurrencyCode:    "USD",
		IsBusinessOrder: business,
	}
	require.NoError(t, conn.Create(order).Error)
	for i := range items {
		items[i].OrderID = id
		if items[i].OrderItemID == "" {
			items[i].OrderItemID = fmt.Sprintf("%s-item-%d", id, i)
		}
		require.NoError(t, conn.Create(&items[i]).Error)
	}
}

func itemFor(sku string, qty int, price string) models.OrderItem {
	p := decimal.RequireFromString(price)
	return models.OrderItem{
		SellerSKU:       sku,
		QuantityOrdered: qty,
		ItemPrice:       &p,
	}
}

func TestGetOrderMetricsPrefersPrecomputed(t *testing.T) {
	conn := setupSalesTestDB(t)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)

	metric := &models.SalesMetric{
		Interval:         "2024-03-01T00:00:00Z/2024-03-02T00:00:00Z",
		Granularity:      enums.GranularityDay,
		UnitCount:        12,
		OrderItemCount:   4,
		OrderCount:       3,
		AverageUnitPrice: decimal.RequireFromString("9.99"),
		TotalSales:       decimal.RequireFromString("119.88"),
		CurrencyCode:     "USD",
		BuyerType:        enums.BuyerTypeAll,
		MarketplaceIDs:   dbtypes.StringList{"ATVPDKIKX0DER"},
		PeriodStart:      start,
		PeriodEnd:        start.AddDate(0, 0, 1),
	}
	require.NoError(t, conn.Create(metric).Error)

	svc := newSalesService(t, conn)
	out, err := svc.GetOrderMetrics(context.Background(), MetricsInput{
		Granularity:    enums.GranularityDay,
		BuyerType:      enums.BuyerTypeAll,
		FirstDayOfWeek: enums.WeekdayMonday,
		Start:          start,
		End:            end,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 12, out[0].UnitCount)
	assert.Equal(t, "119.88", out[0].TotalSales.Amount)
	assert.Equal(t, "USD", out[0].TotalSales.CurrencyCode)
}

func TestGetOrderMetricsFallsBackToOrders(t *testing.T) {
	conn := setupSalesTestDB(t)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	mustCreateOrder(t, conn, "111-0000001-0000001", start.Add(6*time.Hour), false,
		itemFor("SKU-1", 2, "10.00"),
		itemFor("SKU-2", 1, "5.00"))
	mustCreateOrder(t, conn, "111-0000001-0000002", start.AddDate(0, 0, 1).Add(3*time.Hour), false,
		itemFor("SKU-1", 4, "20.00"))

	svc := newSalesService(t, conn)
	out, err := svc.GetOrderMetrics(context.Background(), MetricsInput{
		Granularity:    enums.GranularityDay,
		BuyerType:      enums.BuyerTypeAll,
		FirstDayOfWeek: enums.WeekdayMonday,
		Start:          start,
		End:            end,
	})
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, 3, out[0].UnitCount)
	assert.Equal(t, 2, out[0].OrderItemCount)
	assert.Equal(t, 1, out[0].OrderCount)
	assert.Equal(t, "15.00", out[0].TotalSales.Amount)
	assert.Equal(t, "5.00", out[0].AverageUnitPrice.Amount)

	assert.Equal(t, 4, out[1].UnitCount)
	assert.Equal(t, "20.00", out[1].TotalSales.Amount)

	// Trailing interval has no orders but still appears.
	assert.Equal(t, 0, out[2].OrderCount)
	assert.Equal(t, "0.00", out[2].TotalSales.Amount)
}

func TestGetOrderMetricsBuyerTypeFilter(t *testing.T) {
	conn := setupSalesTestDB(t)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	mustCreateOrder(t, conn, "111-0000001-0000010", start.Add(time.Hour), true,
		itemFor("SKU-1", 5, "50.00"))
	mustCreateOrder(t, conn, "111-0000001-0000011", start.Add(2*time.Hour), false,
		itemFor("SKU-1", 1, "10.00"))

	svc := newSalesService(t, conn)
	out, err := svc.GetOrderMetrics(context.Background(), MetricsInput{
		Granularity:    enums.GranularityDay,
		BuyerType:      enums.BuyerTypeB2B,
		FirstDayOfWeek: enums.WeekdayMonday,
		Start:          start,
		End:            end,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].OrderCount)
	assert.Equal(t, 5, out[0].UnitCount)
}

func TestGetOrderMetricsSKUFilterSkipsOtherItems(t *testing.T) {
	conn := setupSalesTestDB(t)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	mustCreateOrder(t, conn, "111-0000001-0000020", start.Add(time.Hour), false,
		itemFor("SKU-1", 2, "10.00"),
		itemFor("SKU-2", 9, "90.00"))

	sku := "SKU-1"
	svc := newSalesService(t, conn)
	out, err := svc.GetOrderMetrics(context.Background(), MetricsInput{
		Granularity:    enums.GranularityDay,
		BuyerType:      enums.BuyerTypeAll,
		FirstDayOfWeek: enums.WeekdayMonday,
		Start:          start,
		End:            end,
		SKU:            &sku,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].UnitCount)
	assert.Equal(t, 1, out[0].OrderItemCount)
	assert.Equal(t, "10.00", out[0].TotalSales.Amount)
}

func TestGetOrderMetricsSummary(t *testing.T) {
	conn := setupSalesTestDB(t)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)

	mustCreateOrder(t, conn, "111-0000001-0000030", start.Add(time.Hour), false,
		itemFor("SKU-1", 2, "10.00"))
	mustCreateOrder(t, conn, "111-0000001-0000031", start.AddDate(0, 0, 1), false,
		itemFor("SKU-1", 2, "30.00"))

	svc := newSalesService(t, conn)
	payload, err := svc.GetOrderMetricsSummary(context.Background(), SummaryInput{
		BuyerType: enums.BuyerTypeAll,
		Start:     start,
		End:       end,
	})
	require.NoError(t, err)
	assert.Equal(t, "40.00", payload.Summary.TotalSales.Amount)
	assert.Equal(t, 2, payload.Summary.TotalOrders)
	assert.Equal(t, 4, payload.Summary.TotalUnits)
	assert.Equal(t, "20.00", payload.Summary.AverageOrderValue.Amount)
	assert.Equal(t, "10.00", payload.Summary.AverageUnitPrice.Amount)
	assert.Equal(t, "2024-03-01T00:00:00Z", payload.Period.StartDate)
}

func TestGetOrderMetricsSummaryEmptyWindow(t *testing.T) {
	conn := setupSalesTestDB(t)
	svc := newSalesService(t, conn)

	payload, err := svc.GetOrderMetricsSummary(context.Background(), SummaryInput{
		BuyerType: enums.BuyerTypeAll,
		Start:     time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "0.00", payload.Summary.TotalSales.Amount)
	assert.Equal(t, 0, payload.Summary.TotalOrders)
}
