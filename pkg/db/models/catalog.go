package models

import (
	"time"

	"github.com/sellgrid/sellermock/pkg/db/dbtypes"
)

// CatalogItem is keyed by (asin, marketplace_id). The nested document
// columns hold the free-form identifier, image and ranking data the
// catalog responses are assembled from.
type CatalogItem struct {
	ASIN              string             `gorm:"column:asin;primaryKey"`
	MarketplaceID     string             `gorm:"column:marketplace_id;primaryKey"`
	ParentASIN        *string            `gorm:"column:parent_asin"`
	SellerID          *string            `gorm:"column:seller_id"`
	ItemName          *string            `gorm:"column:item_name"`
	Brand             *string            `gorm:"column:brand"`
	Classification    *string            `gorm:"column:classification"`
	Color             *string            `gorm:"column:color"`
	Size              *string            `gorm:"column:size"`
	Style             *string            `gorm:"column:style"`
	ProductCategoryID *string            `gorm:"column:product_category_id"`
	Dimensions        dbtypes.JSONMap    `gorm:"column:dimensions;type:json"`
	Identifiers       dbtypes.JSONMap    `gorm:"column:identifiers;type:json"`
	Images            dbtypes.ObjectList `gorm:"column:images;type:json"`
	ProductTypes      dbtypes.StringList `gorm:"column:product_types;type:json"`
	SalesRankings     dbtypes.ObjectList `gorm:"column:sales_rankings;type:json"`
	CreatedAt         time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (CatalogItem) TableName() string { return "catalog_items" }

// CatalogCategory is one browse category an item can be assigned to,
// keyed by (product_category_id, marketplace_id).
type CatalogCategory struct {
	ProductCategoryID   string    `gorm:"column:product_category_id;primaryKey"`
	MarketplaceID       string    `gorm:"column:marketplace_id;primaryKey"`
	ProductCategoryName string    `gorm:"column:product_category_name;not null"`
	ParentCategoryID    *string   `gorm:"column:parent_category_id"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (CatalogCategory) TableName() string { return "catalog_categories" }
