package models

import (
	"time"

	"github.com/sellgrid/sellermock/pkg/db/dbtypes"
	"github.com/sellgrid/sellermock/pkg/enums"
)

// Listing is keyed by (seller_id, seller_sku) and carries the free-form
// attribute document submitted by the seller.
type Listing struct {
	SellerID        string              `gorm:"column:seller_id;primaryKey"`
	SellerSKU       string              `gorm:"column:seller_sku;primaryKey"`
	ASIN            *string             `gorm:"column:asin"`
	ProductType     *string             `gorm:"column:product_type"`
	ItemName        *string             `gorm:"column:item_name"`
	BrandName       *string             `gorm:"column:brand_name"`
	Attributes      dbtypes.JSONMap     `gorm:"column:attributes;type:json"`
	Status          enums.ListingStatus `gorm:"column:status;default:'ACTIVE'"`
	SubmissionID    *string             `gorm:"column:submission_id"`
	Issues          dbtypes.StringList  `gorm:"column:issues;type:json"`
	CreatedDate     time.Time           `gorm:"column:created_date"`
	LastUpdatedDate time.Time           `gorm:"column:last_updated_date"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Listing) TableName() string { return "listings" }
