package sales

import (
	"github.com/sellgrid/sellermock/pkg/db/models"
	"github.com/sellgrid/sellermock/pkg/types"
)

// OrderMetricDTO is one aggregation bucket on the wire.
type OrderMetricDTO struct {
	Interval         string      `json:"interval"`
	UnitCount        int         `json:"unitCount"`
	OrderItemCount   int         `json:"orderItemCount"`
	OrderCount       int         `json:"orderCount"`
	AverageUnitPrice types.Money `json:"averageUnitPrice"`
	TotalSales       types.Money `json:"totalSales"`
}

// SummaryDTO is the period-level rollup.
type SummaryDTO struct {
	TotalSales        types.Money `json:"totalSales"`
	TotalOrders       int         `json:"totalOrders"`
	TotalUnits        int         `json:"totalUnits"`
	AverageOrderValue types.Money `json:"averageOrderValue"`
	AverageUnitPrice  types.Money `json:"averageUnitPrice"`
}

// PeriodDTO echoes the window the summary covers.
type PeriodDTO struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// SummaryPayload combines the rollup with its period.
type SummaryPayload struct {
	Summary SummaryDTO `json:"summary"`
	Period  PeriodDTO  `json:"period"`
}

func toMetricDTO(m *models.SalesMetric) OrderMetricDTO {
	return OrderMetricDTO{
		Interval:         m.Interval,
		UnitCount:        m.UnitCount,
		OrderItemCount:   m.OrderItemCount,
		OrderCount:       m.OrderCount,
		AverageUnitPrice: types.NewMoney(m.CurrencyCode, m.AverageUnitPrice),
		TotalSales:       types.NewMoney(m.CurrencyCode, m.TotalSales),
	}
}
