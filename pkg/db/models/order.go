package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order mirrors the marketplace order record. Orders are never physically
// deleted; lifecycle is tracked through order_status.
type Order struct {
	OrderID            string           `gorm:"column:order_id;primaryKey"`
	SellerOrderID      *string          `gorm:"column:seller_order_id"`
	PurchaseDate       time.Time        `gorm:"column:purchase_date;not null"`
	LastUpdateDate     time.Time        `gorm:"column:last_update_date;not null"`
	OrderStatus        string           `gorm:"column:order_status;not null"`
	FulfillmentChannel *string          `gorm:"column:fulfillment_channel"`
	SalesChannel       *string          `gorm:"column:sales_channel"`
	ShipServiceLevel   *string          `gorm:"column:ship_service_level"`
	MarketplaceID      string           `gorm:"column:marketplace_id;not null"`
	OrderTotal         *decimal.Decimal `gorm:"column:order_total;type:numeric(10,2)"`
	CurrencyCode       string           `gorm:"column:currency_code;default:'USD'"`
	ItemsShipped       int              `gorm:"column:number_of_items_shipped;default:0"`
	ItemsUnshipped     int              `gorm:"column:number_of_items_unshipped;default:0"`
	PaymentMethod      *string          `gorm:"column:payment_method"`
	BuyerEmail         *string          `gorm:"column:buyer_email"`
	BuyerName          *string          `gorm:"column:buyer_name"`
	ShipAddressName    *string          `gorm:"column:shipping_address_name"`
	ShipAddressLine1   *string          `gorm:"column:shipping_address_line1"`
	ShipAddressLine2   *string          `gorm:"column:shipping_address_line2"`
	ShipAddressCity    *string          `gorm:"column:shipping_address_city"`
	ShipAddressState   *string          `gorm:"column:shipping_address_state"`
	ShipAddressPostal  *string          `gorm:"column:shipping_address_postal_code"`
	ShipAddressCountry *string          `gorm:"column:shipping_address_country"`
	ShipAddressPhone   *string          `gorm:"column:shipping_address_phone"`
	OrderType          string           `gorm:"column:order_type;default:'StandardOrder'"`
	EarliestShipDate   *time.Time       `gorm:"column:earliest_ship_date"`
	LatestShipDate     *time.Time       `gorm:"column:latest_ship_date"`
	IsBusinessOrder    bool             `gorm:"column:is_business_order;default:false"`
	IsPrime            bool             `gorm:"column:is_prime;default:false"`
	IsPremiumOrder     bool             `gorm:"column:is_premium_order;default:false"`
	IsReplacementOrder bool             `gorm:"column:is_replacement_order;default:false"`
	IsAccessPointOrder bool             `gorm:"column:is_access_point_order;default:false"`
	CreatedAt          time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time        `gorm:"column:updated_at;autoUpdateTime"`

	Items []OrderItem `gorm:"foreignKey:OrderID;references:OrderID"`
}

func (Order) TableName() string { return "orders" }
