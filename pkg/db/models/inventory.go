package models

import "time"

// Inventory keeps one row per seller SKU with the fulfillment-center
// quantity buckets. total_quantity is expected to equal the sum of the
// buckets; the patch path validates that before applying a write.
type Inventory struct {
	SellerSKU     string  `gorm:"column:seller_sku;primaryKey"`
	FNSKU         *string `gorm:"column:fnsku"`
	ASIN          *string `gorm:"column:asin"`
	ConditionType string  `gorm:"column:condition_type;default:'NewItem'"`

	TotalQuantity            int `gorm:"column:total_quantity;default:0"`
	InboundWorkingQuantity   int `gorm:"column:inbound_working_quantity;default:0"`
	InboundShippedQuantity   int `gorm:"column:inbound_shipped_quantity;default:0"`
	InboundReceivingQuantity int `gorm:"column:inbound_receiving_quantity;default:0"`
	FulfillableQuantity      int `gorm:"column:fulfillable_quantity;default:0"`
	UnfulfillableQuantity    int `gorm:"column:unfulfillable_quantity;default:0"`

	ReservedQuantityTotal                int `gorm:"column:reserved_quantity_total;default:0"`
	ReservedQuantityPendingCustomerOrder int `gorm:"column:reserved_quantity_pending_customer_order;default:0"`
	ReservedQuantityPendingTransshipment int `gorm:"column:reserved_quantity_pending_transshipment;default:0"`
	ReservedQuantityFCProcessing         int `gorm:"column:reserved_quantity_fc_processing;default:0"`

	ResearchingQuantityTotal int `gorm:"column:researching_quantity_total;default:0"`

	LastUpdatedTime *time.Time `gorm:"column:last_updated_time"`
	ProductName     *string    `gorm:"column:product_name"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Inventory) TableName() string { return "inventory" }
