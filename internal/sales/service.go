package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sellgrid/sellermock/pkg/db/dbtypes"
	"github.com/sellgrid/sellermock/pkg/db/models"
	"github.com/sellgrid/sellermock/pkg/enums"
	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
	"github.com/sellgrid/sellermock/pkg/types"
)

const defaultCurrency = "USD"

// MetricsInput is the validated parameter set for an order-metrics query.
type MetricsInput struct {
	Granularity    enums.Granularity
	BuyerType      enums.BuyerType
	FirstDayOfWeek enums.Weekday
	Start          time.Time
	End            time.Time
	MarketplaceIDs []string
	ASIN           *string
	SKU            *string
}

// SummaryInput is the validated parameter set for the period rollup.
type SummaryInput struct {
	BuyerType      enums.BuyerType
	Start          time.Time
	End            time.Time
	MarketplaceIDs []string
}

// Service exposes the sales metrics operations.
type Service interface {
	GetOrderMetrics(ctx context.Context, input MetricsInput) ([]OrderMetricDTO, error)
	GetOrderMetricsSummary(ctx context.Context, input SummaryInput) (*SummaryPayload, error)
}

type service struct {
	repo *Repository
}

// NewService constructs the sales service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetOrderMetrics(ctx context.Context, input MetricsInput) ([]OrderMetricDTO, error) {
	metrics, err := s.orderMetrics(ctx, input)
	if err != nil {
		return nil, err
	}
	out := make([]OrderMetricDTO, 0, len(metrics))
	for i := range metrics {
		out = append(out, toMetricDTO(&metrics[i]))
	}
	return out, nil
}

// orderMetrics prefers pre-computed rows and falls back to aggregating the
// raw orders when none match the filter.
func (s *service) orderMetrics(ctx context.Context, input MetricsInput) ([]models.SalesMetric, error) {
	precomputed, err := s.repo.FindMetrics(ctx, MetricsQuery{
		Granularity:    input.Granularity,
		BuyerType:      input.BuyerType,
		Start:          input.Start,
		End:            input.End,
		MarketplaceIDs: input.MarketplaceIDs,
		ASIN:           input.ASIN,
		SKU:            input.SKU,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to load sales metrics")
	}
	if len(precomputed) > 0 {
		return precomputed, nil
	}
	return s.aggregateFromOrders(ctx, input)
}

func (s *service) aggregateFromOrders(ctx context.Context, input MetricsInput) ([]models.SalesMetric, error) {
	orders, err := s.repo.ListOrdersWithItems(ctx, OrdersQuery{
		BuyerType:      input.BuyerType,
		Start:          input.Start,
		End:            input.End,
		MarketplaceIDs: input.MarketplaceIDs,
		ASIN:           input.ASIN,
		SKU:            input.SKU,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to load orders for aggregation")
	}

	intervals := GenerateIntervals(input.Granularity, input.Start, input.End, input.FirstDayOfWeek)
	metrics := make([]models.SalesMetric, 0, len(intervals))

	for _, iv := range intervals {
		metric := models.SalesMetric{
			Interval:       FormatInterval(iv),
			Granularity:    input.Granularity,
			CurrencyCode:   defaultCurrency,
			BuyerType:      input.BuyerType,
			MarketplaceIDs: dbtypes.StringList(input.MarketplaceIDs),
			ASIN:           input.ASIN,
			SKU:            input.SKU,
			PeriodStart:    iv.Start,
			PeriodEnd:      iv.End,
		}

		totalSales := decimal.Zero
		for i := range orders {
			order := &orders[i]
			if order.PurchaseDate.Before(iv.Start) || !order.PurchaseDate.Before(iv.End) {
				continue
			}
			metric.OrderCount++
			for j := range order.Items {
				item := &order.Items[j]
				if input.ASIN != nil && (item.ASIN == nil || *item.ASIN != *input.ASIN) {
					continue
				}
				if input.SKU != nil && item.SellerSKU != *input.SKU {
					continue
				}
				metric.UnitCount += item.QuantityOrdered
				metric.OrderItemCount++
				if item.ItemPrice != nil {
					totalSales = totalSales.Add(*item.ItemPrice)
				}
			}
		}

		metric.TotalSales = totalSales
		if metric.UnitCount > 0 {
			metric.AverageUnitPrice = totalSales.Div(decimal.NewFromInt(int64(metric.UnitCount)))
		}
		metrics = append(metrics, metric)
	}

	return metrics, nil
}

func (s *service) GetOrderMetricsSummary(ctx context.Context, input SummaryInput) (*SummaryPayload, error) {
	daily, err := s.orderMetrics(ctx, MetricsInput{
		Granularity:    enums.GranularityDay,
		BuyerType:      input.BuyerType,
		FirstDayOfWeek: enums.WeekdayMonday,
		Start:          input.Start,
		End:            input.End,
		MarketplaceIDs: input.MarketplaceIDs,
	})
	if err != nil {
		return nil, err
	}

	payload := &SummaryPayload{
		Summary: SummaryDTO{
			TotalSales:        types.ZeroMoney(defaultCurrency),
			AverageOrderValue: types.ZeroMoney(defaultCurrency),
			AverageUnitPrice:  types.ZeroMoney(defaultCurrency),
		},
		Period: PeriodDTO{
			StartDate: input.Start.UTC().Format(time.RFC3339),
			EndDate:   input.End.UTC().Format(time.RFC3339),
		},
	}
	if len(daily) == 0 {
		return payload, nil
	}

	totalSales := decimal.Zero
	totalOrders := 0
	totalUnits := 0
	currency := defaultCurrency
	for i := range daily {
		totalSales = totalSales.Add(daily[i].TotalSales)
		totalOrders += daily[i].OrderCount
		totalUnits += daily[i].UnitCount
		currency = daily[i].CurrencyCode
	}

	payload.Summary.TotalSales = types.NewMoney(currency, totalSales)
	payload.Summary.TotalOrders = totalOrders
	payload.Summary.TotalUnits = totalUnits
	if totalOrders > 0 {
		payload.Summary.AverageOrderValue = types.NewMoney(currency, totalSales.Div(decimal.NewFromInt(int64(totalOrders))))
	}
	if totalUnits > 0 {
		payload.Summary.AverageUnitPrice = types.NewMoney(currency, totalSales.Div(decimal.NewFromInt(int64(totalUnits))))
	}
	return payload, nil
}
