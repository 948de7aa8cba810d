package orders

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sellgrid/sellermock/internal/repo"
	"github.com/sellgrid/sellermock/pkg/db/models"
)

// ListQuery carries every supported order listing filter.
type ListQuery struct {
	CreatedAfter      *time.Time
	CreatedBefore     *time.Time
	LastUpdatedAfter  *time.Time
	LastUpdatedBefore *time.Time
	Statuses          []string
	MarketplaceIDs    []string
	OrderIDs          []string
	BuyerEmail        *string
	SellerOrderID     *string
	Offset            int
	Limit             int
}

// Repository owns order persistence.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns one page of orders plus the total count for the filter.
func (r *Repository) List(ctx context.Context, q ListQuery) ([]models.Order, int64, error) {
	tx := r.DB(ctx).Model(&models.Order{})
	if q.CreatedAfter != nil {
		tx = tx.Where("purchase_date >= ?", *q.CreatedAfter)
	}
	if q.CreatedBefore != nil {
		tx = tx.Where("purchase_date <= ?", *q.CreatedBefore)
	}
	if q.LastUpdatedAfter != nil {
		tx = tx.Where("last_update_date >= ?", *q.LastUpdatedAfter)
	}
	if q.LastUpdatedBefore != nil {
		tx = tx.Where("last_update_date <= ?", *q.LastUpdatedBefore)
	}
	if len(q.Statuses) > 0 {
		tx = tx.Where("order_status IN ?", q.Statuses)
	}
	if len(q.MarketplaceIDs) > 0 {
		tx = tx.Where("marketplace_id IN ?", q.MarketplaceIDs)
	}
	if len(q.OrderIDs) > 0 {
		tx = tx.Where("order_id IN ?", q.OrderIDs)
	}
	if q.BuyerEmail != nil {
		tx = tx.Where("buyer_email = ?", *q.BuyerEmail)
	}
	if q.SellerOrderID != nil {
		tx = tx.Where("seller_order_id = ?", *q.SellerOrderID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Order
	err := tx.Order("purchase_date ASC, order_id ASC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindByID loads one order without items.
func (r *Repository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	var row models.Order
	if err := r.DB(ctx).First(&row, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListItems pages through an order's line items.
func (r *Repository) ListItems(ctx context.Context, orderID string, offset, limit int) ([]models.OrderItem, int64, error) {
	tx := r.DB(ctx).Model(&models.OrderItem{}).Where("order_id = ?", orderID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.OrderItem
	err := tx.Order("order_item_id ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
