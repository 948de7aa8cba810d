package catalog

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/sellgrid/sellermock/internal/repo"
	"github.com/sellgrid/sellermock/pkg/db/models"
)

// SearchFilters narrows a catalog item search.
type SearchFilters struct {
	MarketplaceIDs []string
	Identifiers    []string
	Keywords       []string
	BrandNames     []string
	SellerID       *string
	Offset         int
	Limit          int
}

// Repository owns catalog persistence.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Search pages through catalog items matching the filters and reports the
// unpaged match count. Rows come back ordered by item name with the ASIN as
// tiebreaker so offset tokens enumerate a stable sequence.
func (r *Repository) Search(ctx context.Context, filters SearchFilters) ([]models.CatalogItem, int64, error) {
	tx := r.DB(ctx).Model(&models.CatalogItem{})
	if len(filters.MarketplaceIDs) > 0 {
		tx = tx.Where("marketplace_id IN ?", filters.MarketplaceIDs)
	}
	if len(filters.Identifiers) > 0 {
		tx = tx.Where("asin IN ?", filters.Identifiers)
	}
	if len(filters.BrandNames) > 0 {
		tx = tx.Where("brand IN ?", filters.BrandNames)
	}
	if filters.SellerID != nil {
		tx = tx.Where("seller_id = ?", *filters.SellerID)
	}
	if len(filters.Keywords) > 0 {
		clauses := make([]string, 0, len(filters.Keywords))
		args := make([]any, 0, len(filters.Keywords))
		for _, keyword := range filters.Keywords {
			pattern := "%" + strings.ToLower(keyword) + "%"
			clauses = append(clauses, "(LOWER(item_name) LIKE ? OR LOWER(brand) LIKE ?)")
			args = append(args, pattern, pattern)
		}
		tx = tx.Where(strings.Join(clauses, " OR "), args...)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.CatalogItem
	err := tx.
		Order("item_name ASC, asin ASC").
		Offset(filters.Offset).
		Limit(filters.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Find loads one item by ASIN within the given marketplaces.
func (r *Repository) Find(ctx context.Context, asin string, marketplaceIDs []string) (*models.CatalogItem, error) {
	var row models.CatalogItem
	err := r.DB(ctx).
		First(&row, "asin = ? AND marketplace_id IN ?", asin, marketplaceIDs).
		Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListCategories returns every category in the marketplace ordered by name.
func (r *Repository) ListCategories(ctx context.Context, marketplaceID string) ([]models.CatalogCategory, error) {
	var rows []models.CatalogCategory
	err := r.DB(ctx).
		Where("marketplace_id = ?", marketplaceID).
		Order("product_category_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
