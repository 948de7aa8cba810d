package models

import "time"

// Seller is the account that owns listings and inventory.
type Seller struct {
	SellerID      string    `gorm:"column:seller_id;primaryKey"`
	Name          string    `gorm:"column:name;not null"`
	MarketplaceID string    `gorm:"column:marketplace_id;not null"`
	CountryCode   *string   `gorm:"column:country_code"`
	CurrencyCode  *string   `gorm:"column:currency_code"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Seller) TableName() string { return "sellers" }
