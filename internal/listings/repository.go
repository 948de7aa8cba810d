package listings

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sellgrid/sellermock/internal/repo"
	"github.com/sellgrid/sellermock/pkg/db/models"
	"github.com/sellgrid/sellermock/pkg/enums"
)

// ListFilters narrows a per-seller listing query.
type ListFilters struct {
	Status      *enums.ListingStatus
	ProductType *string
}

// Repository owns listing persistence.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Find loads one listing by its composite key.
func (r *Repository) Find(ctx context.Context, sellerID, sellerSKU string) (*models.Listing, error) {
	var row models.Listing
	err := r.DB(ctx).
		First(&row, "seller_id = ? AND seller_sku = ?", sellerID, sellerSKU).
		Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListBySeller returns the seller's listings ordered by SKU.
func (r *Repository) ListBySeller(ctx context.Context, sellerID string, filters ListFilters) ([]models.Listing, error) {
	tx := r.DB(ctx).Where("seller_id = ?", sellerID)
	if filters.Status != nil {
		tx = tx.Where("status = ?", *filters.Status)
	}
	if filters.ProductType != nil {
		tx = tx.Where("product_type = ?", *filters.ProductType)
	}

	var rows []models.Listing
	if err := tx.Order("seller_sku ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Save persists the full row, inserting when absent.
func (r *Repository) Save(ctx context.Context, row *models.Listing) error {
	return r.DB(ctx).Save(row).Error
}

// EnsureSeller inserts the owning seller when it does not exist yet so a
// first-time PUT satisfies the listings foreign key.
func (r *Repository) EnsureSeller(ctx context.Context, sellerID, marketplaceID string) error {
	return r.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Seller{
			SellerID:      sellerID,
			Name:          sellerID,
			MarketplaceID: marketplaceID,
		}).Error
}
