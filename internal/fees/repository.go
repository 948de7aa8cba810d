package fees

import (
	"context"

	"gorm.io/gorm"

	"github.com/sellgrid/sellermock/internal/repo"
	"github.com/sellgrid/sellermock/pkg/db/models"
)

// Repository owns product fee persistence.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Find(ctx context.Context, sellerSKU, marketplaceID string) (*models.ProductFee, error) {
	var row models.ProductFee
	err := r.DB(ctx).
		First(&row, "seller_sku = ? AND marketplace_id = ?", sellerSKU, marketplaceID).
		Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
