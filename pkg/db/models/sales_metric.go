package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sellgrid/sellermock/pkg/db/dbtypes"
	"github.com/sellgrid/sellermock/pkg/enums"
)

// SalesMetric is a pre-computed aggregation bucket over one interval.
// Rows are immutable once written; the seeding job recomputes them.
type SalesMetric struct {
	ID               int64              `gorm:"column:id;primaryKey;autoIncrement"`
	Interval         string             `gorm:"column:interval;not null"`
	Granularity      enums.Granularity  `gorm:"column:granularity;not null"`
	UnitCount        int                `gorm:"column:unit_count;default:0"`
	OrderItemCount   int                `gorm:"column:order_item_count;default:0"`
	OrderCount       int                `gorm:"column:order_count;default:0"`
	AverageUnitPrice decimal.Decimal    `gorm:"column:average_unit_price;type:numeric(10,2);default:0"`
	TotalSales       decimal.Decimal    `gorm:"column:total_sales;type:numeric(10,2);default:0"`
	CurrencyCode     string             `gorm:"column:currency_code;default:'USD'"`
	BuyerType        enums.BuyerType    `gorm:"column:buyer_type;default:'All'"`
	MarketplaceIDs   dbtypes.StringList `gorm:"column:marketplace_ids;type:json"`
	ASIN             *string            `gorm:"column:asin"`
	SKU              *string            `gorm:"column:sku"`
	PeriodStart      time.Time          `gorm:"column:period_start;not null"`
	PeriodEnd        time.Time          `gorm:"column:period_end;not null"`
	CreatedAt        time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (SalesMetric) TableName() string { return "sales_metrics" }
