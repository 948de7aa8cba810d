package sales

import (
	"net/http"
	"strings"
	"time"

	"github.com/sellgrid/sellermock/api/responses"
	"github.com/sellgrid/sellermock/api/validators"
	salessvc "github.com/sellgrid/sellermock/internal/sales"
	"github.com/sellgrid/sellermock/pkg/enums"
	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
	"github.com/sellgrid/sellermock/pkg/logger"
)

const defaultWindow = 30 * 24 * time.Hour

func parseWindow(r *http.Request) (time.Time, time.Time, error) {
	start, err := validators.ParseQueryTime(r, "startDate")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := validators.ParseQueryTime(r, "endDate")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	endAt := time.Now().UTC()
	if end != nil {
		endAt = *end
	}
	startAt := endAt.Add(-defaultWindow)
	if start != nil {
		startAt = *start
	}
	if !startAt.Before(endAt) {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeInvalidInput, "startDate must precede endDate")
	}
	return startAt, endAt, nil
}

func optionalQuery(r *http.Request, key string) *string {
	if value := strings.TrimSpace(r.URL.Query().Get(key)); value != "" {
		return &value
	}
	return nil
}

// GetOrderMetrics handles GET /sales/v1/orderMetrics.
func GetOrderMetrics(svc salessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "sales service unavailable"))
			return
		}

		granularity, err := enums.ParseGranularity(r.URL.Query().Get("granularity"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInvalidInput, err, "invalid granularity"))
			return
		}

		buyerType := enums.BuyerTypeAll
		if raw := r.URL.Query().Get("buyerType"); raw != "" {
			if buyerType, err = enums.ParseBuyerType(raw); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInvalidInput, err, "invalid buyer type"))
				return
			}
		}

		firstDayOfWeek := enums.WeekdayMonday
		if raw := r.URL.Query().Get("firstDayOfWeek"); raw != "" {
			if firstDayOfWeek, err = enums.ParseWeekday(raw); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInvalidInput, err, "invalid first day of week"))
				return
			}
		}

		start, end, err := parseWindow(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		metrics, err := svc.GetOrderMetrics(r.Context(), salessvc.MetricsInput{
			Granularity:    granularity,
			BuyerType:      buyerType,
			FirstDayOfWeek: firstDayOfWeek,
			Start:          start,
			End:            end,
			MarketplaceIDs: validators.QueryCSV(r, "marketplaceIds"),
			ASIN:           optionalQuery(r, "asin"),
			SKU:            optionalQuery(r, "sku"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, metrics)
	}
}

// GetOrderMetricsSummary handles GET /sales/v1/orderMetrics/summary.
func GetOrderMetricsSummary(svc salessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "sales service unavailable"))
			return
		}

		buyerType := enums.BuyerTypeAll
		if raw := r.URL.Query().Get("buyerType"); raw != "" {
			var err error
			if buyerType, err = enums.ParseBuyerType(raw); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInvalidInput, err, "invalid buyer type"))
				return
			}
		}

		start, end, err := parseWindow(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.GetOrderMetricsSummary(r.Context(), salessvc.SummaryInput{
			BuyerType:      buyerType,
			Start:          start,
			End:            end,
			MarketplaceIDs: validators.QueryCSV(r, "marketplaceIds"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// The summary contract predates the payload envelope: summary and
		// period sit at the top level of the body.
		responses.WriteRaw(w, http.StatusOK, summary)
	}
}
