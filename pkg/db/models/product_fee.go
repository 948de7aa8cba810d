package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductFee stores the estimated referral/fulfillment fees per SKU and
// marketplace, used by the fee-estimate surface.
type ProductFee struct {
	SellerSKU     string          `gorm:"column:seller_sku;primaryKey"`
	MarketplaceID string          `gorm:"column:marketplace_id;primaryKey"`
	FeeType       string          `gorm:"column:fee_type;not null"`
	FeeAmount     decimal.Decimal `gorm:"column:fee_amount;type:numeric(10,2);default:0"`
	CurrencyCode  string          `gorm:"column:currency_code;default:'USD'"`
	PromotionFee  decimal.Decimal `gorm:"column:promotion_fee;type:numeric(10,2);default:0"`
	TotalEstimate decimal.Decimal `gorm:"column:total_estimate;type:numeric(10,2);default:0"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (ProductFee) TableName() string { return "product_fees" }
