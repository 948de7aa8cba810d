package inventory

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sellgrid/sellermock/internal/repo"
	"github.com/sellgrid/sellermock/pkg/db/models"
)

// ListQuery holds the filter and window applied to a summaries listing.
type ListQuery struct {
	SellerSKUs []string
	StartDate  *time.Time
	Offset     int
	Limit      int
}

// Repository owns inventory persistence.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns one page of inventory rows plus the total count for the
// filter. Ordering by seller_sku keeps offset tokens stable across pages.
func (r *Repository) List(ctx context.Context, q ListQuery) ([]models.Inventory, int64, error) {
	tx := r.DB(ctx).Model(&models.Inventory{})
	if len(q.SellerSKUs) > 0 {
		tx = tx.Where("seller_sku IN ?", q.SellerSKUs)
	}
	if q.StartDate != nil {
		tx = tx.Where("last_updated_time >= ?", *q.StartDate)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Inventory
	err := tx.Order("seller_sku ASC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindBySKU loads a single inventory row.
func (r *Repository) FindBySKU(ctx context.Context, sellerSKU string) (*models.Inventory, error) {
	var row models.Inventory
	if err := r.DB(ctx).First(&row, "seller_sku = ?", sellerSKU).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Save persists the full row.
func (r *Repository) Save(ctx context.Context, row *models.Inventory) error {
	return r.DB(ctx).Save(row).Error
}
