package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a line within an order. quantity_shipped must never exceed
// quantity_ordered; the service layer rejects writes that would violate it.
type OrderItem struct {
	OrderItemID       string           `gorm:"column:order_item_id;primaryKey"`
	OrderID           string           `gorm:"column:order_id;not null"`
	SellerSKU         string           `gorm:"column:seller_sku;not null"`
	ASIN              *string          `gorm:"column:asin"`
	Title             *string          `gorm:"column:title"`
	QuantityOrdered   int              `gorm:"column:quantity_ordered;not null"`
	QuantityShipped   int              `gorm:"column:quantity_shipped;default:0"`
	ItemPrice         *decimal.Decimal `gorm:"column:item_price;type:numeric(10,2)"`
	ShippingPrice     decimal.Decimal  `gorm:"column:shipping_price;type:numeric(10,2);default:0"`
	ItemTax           decimal.Decimal  `gorm:"column:item_tax;type:numeric(10,2);default:0"`
	ShippingTax       decimal.Decimal  `gorm:"column:shipping_tax;type:numeric(10,2);default:0"`
	PromotionDiscount decimal.Decimal  `gorm:"column:promotion_discount;type:numeric(10,2);default:0"`
	ConditionID       string           `gorm:"column:condition_id;default:'New'"`
	ConditionNote     *string          `gorm:"column:condition_note"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (OrderItem) TableName() string { return "order_items" }
