package feeds

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sellgrid/sellermock/api/responses"
	"github.com/sellgrid/sellermock/api/validators"
	feedsvc "github.com/sellgrid/sellermock/internal/feeds"
	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
	"github.com/sellgrid/sellermock/pkg/logger"
	"github.com/sellgrid/sellermock/pkg/pagination"
)

type createFeedRequest struct {
	FeedType            string   `json:"feedType" validate:"required"`
	MarketplaceIDs      []string `json:"marketplaceIds" validate:"required,min=1,dive,required"`
	InputFeedDocumentID *string  `json:"inputFeedDocumentId,omitempty"`
}

// CreateFeed handles POST /feeds/2021-06-30/feeds.
func CreateFeed(svc feedsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "feeds service unavailable"))
			return
		}

		var payload createFeedRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		feed, err := svc.Create(r.Context(), payload.FeedType, payload.MarketplaceIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayloadStatus(w, http.StatusCreated, feed)
	}
}

func parseListInput(r *http.Request) (feedsvc.ListInput, error) {
	createdSince, err := validators.ParseQueryTime(r, "createdSince")
	if err != nil {
		return feedsvc.ListInput{}, err
	}
	createdUntil, err := validators.ParseQueryTime(r, "createdUntil")
	if err != nil {
		return feedsvc.ListInput{}, err
	}
	pageSize, err := validators.ParseQueryInt(r, "pageSize", 10, 1, pagination.MaxMaxResults)
	if err != nil {
		return feedsvc.ListInput{}, err
	}
	return feedsvc.ListInput{
		Types:              validators.QueryCSV(r, "feedTypes"),
		ProcessingStatuses: validators.QueryCSV(r, "processingStatuses"),
		CreatedSince:       createdSince,
		CreatedUntil:       createdUntil,
		PageSize:           pageSize,
		NextToken:          r.URL.Query().Get("nextToken"),
	}, nil
}

// ListFeeds handles GET /feeds/2021-06-30/feeds.
func ListFeeds(svc feedsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "feeds service unavailable"))
			return
		}

		input, err := parseListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, payload)
	}
}

// GetFeed handles GET /feeds/2021-06-30/feeds/{feedId}.
func GetFeed(svc feedsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "feeds service unavailable"))
			return
		}

		feed, err := svc.Get(r.Context(), chi.URLParam(r, "feedId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, feed)
	}
}

// CancelFeed handles DELETE /feeds/2021-06-30/feeds/{feedId}.
func CancelFeed(svc feedsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "feeds service unavailable"))
			return
		}

		result, err := svc.Cancel(r.Context(), chi.URLParam(r, "feedId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, result)
	}
}

type createReportRequest struct {
	ReportType     string   `json:"reportType" validate:"required"`
	DataStartTime  *string  `json:"dataStartTime,omitempty"`
	DataEndTime    *string  `json:"dataEndTime,omitempty"`
	MarketplaceIDs []string `json:"marketplaceIds" validate:"required,min=1,dive,required"`
}

// CreateReport handles POST /reports/2021-06-30/reports.
func CreateReport(svc feedsvc.ReportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "reports service unavailable"))
			return
		}

		var payload createReportRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := feedsvc.CreateReportInput{
			ReportType:     payload.ReportType,
			MarketplaceIDs: payload.MarketplaceIDs,
		}
		var err error
		if input.DataStartTime, err = validators.ParseOptionalTime(payload.DataStartTime, "dataStartTime"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if input.DataEndTime, err = validators.ParseOptionalTime(payload.DataEndTime, "dataEndTime"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayloadStatus(w, http.StatusCreated, report)
	}
}

// ListReports handles GET /reports/2021-06-30/reports.
func ListReports(svc feedsvc.ReportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "reports service unavailable"))
			return
		}

		input, err := parseListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.Types = validators.QueryCSV(r, "reportTypes")

		payload, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, payload)
	}
}

// GetReport handles GET /reports/2021-06-30/reports/{reportId}.
func GetReport(svc feedsvc.ReportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "reports service unavailable"))
			return
		}

		report, err := svc.Get(r.Context(), chi.URLParam(r, "reportId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, report)
	}
}

// CancelReport handles DELETE /reports/2021-06-30/reports/{reportId}.
func CancelReport(svc feedsvc.ReportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternalFailure, "reports service unavailable"))
			return
		}

		report, err := svc.Cancel(r.Context(), chi.URLParam(r, "reportId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePayload(w, report)
	}
}
