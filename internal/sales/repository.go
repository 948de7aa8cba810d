package sales

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sellgrid/sellermock/internal/repo"
	"github.com/sellgrid/sellermock/pkg/db/models"
	"github.com/sellgrid/sellermock/pkg/enums"
)

// MetricsQuery filters the pre-computed sales_metrics rows.
type MetricsQuery struct {
	Granularity    enums.Granularity
	BuyerType      enums.BuyerType
	Start          time.Time
	End            time.Time
	MarketplaceIDs []string
	ASIN           *string
	SKU            *string
}

// OrdersQuery filters raw orders for on-the-fly aggregation.
type OrdersQuery struct {
	BuyerType      enums.BuyerType
	Start          time.Time
	End            time.Time
	MarketplaceIDs []string
	ASIN           *string
	SKU            *string
}

// Repository owns sales metric persistence plus the order reads the
// fallback aggregation path needs.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindMetrics loads pre-computed metrics ordered by period start. The
// marketplace filter is applied in memory because the ids live in a JSON
// column; the mock dataset is small enough that this stays cheap.
func (r *Repository) FindMetrics(ctx context.Context, q MetricsQuery) ([]models.SalesMetric, error) {
	tx := r.DB(ctx).Model(&models.SalesMetric{}).
		Where("granularity = ?", q.Granularity).
		Where("period_start >= ?", q.Start).
		Where("period_end <= ?", q.End)
	if q.BuyerType != enums.BuyerTypeAll {
		tx = tx.Where("buyer_type = ?", q.BuyerType)
	}
	if q.ASIN != nil {
		tx = tx.Where("asin = ?", *q.ASIN)
	}
	if q.SKU != nil {
		tx = tx.Where("sku = ?", *q.SKU)
	}

	var rows []models.SalesMetric
	if err := tx.Order("period_start ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(q.MarketplaceIDs) == 0 {
		return rows, nil
	}

	filtered := rows[:0]
	for _, row := range rows {
		if containsAll(row.MarketplaceIDs, q.MarketplaceIDs) {
			filtered = append(filtered, row)
		}
	}
	return filtered, nil
}

// ListOrdersWithItems loads orders (items preloaded) in the window.
func (r *Repository) ListOrdersWithItems(ctx context.Context, q OrdersQuery) ([]models.Order, error) {
	tx := r.DB(ctx).Model(&models.Order{}).
		Preload("Items").
		Where("purchase_date >= ?", q.Start).
		Where("purchase_date <= ?", q.End)
	if len(q.MarketplaceIDs) > 0 {
		tx = tx.Where("marketplace_id IN ?", q.MarketplaceIDs)
	}
	switch q.BuyerType {
	case enums.BuyerTypeB2B:
		tx = tx.Where("is_business_order = ?", true)
	case enums.BuyerTypeB2C:
		tx = tx.Where("is_business_order = ?", false)
	}
	if q.ASIN != nil {
		tx = tx.Where("order_id IN (SELECT order_id FROM order_items WHERE asin = ?)", *q.ASIN)
	}
	if q.SKU != nil {
		tx = tx.Where("order_id IN (SELECT order_id FROM order_items WHERE seller_sku = ?)", *q.SKU)
	}

	var rows []models.Order
	if err := tx.Order("purchase_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func containsAll(have []string, want []string) bool {
	for _, id := range want {
		found := false
		for _, candidate := range have {
			if candidate == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
