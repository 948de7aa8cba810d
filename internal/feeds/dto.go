package feeds

import (
	"time"

	"github.com/sellgrid/sellermock/pkg/db/models"
	"github.com/sellgrid/sellermock/pkg/enums"
)

// FeedDTO is one feed on the wire.
type FeedDTO struct {
	FeedID               string                 `json:"feedId"`
	FeedType             string                 `json:"feedType"`
	MarketplaceIDs       []string               `json:"marketplaceIds"`
	CreatedTime          string                 `json:"createdTime"`
	ProcessingStatus     enums.ProcessingStatus `json:"processingStatus"`
	ProcessingStartTime  *string                `json:"processingStartTime,omitempty"`
	ProcessingEndTime    *string                `json:"processingEndTime,omitempty"`
	ResultFeedDocumentID *string                `json:"resultFeedDocumentId,omitempty"`
}

// FeedsPayload is the payload half of the feeds listing.
type FeedsPayload struct {
	Feeds     []FeedDTO `json:"feeds"`
	NextToken *string   `json:"nextToken"`
}

// CancelDTO acknowledges a feed cancellation.
type CancelDTO struct {
	FeedID           string                 `json:"feedId"`
	ProcessingStatus enums.ProcessingStatus `json:"processingStatus"`
}

// ReportDTO is one report on the wire.
type ReportDTO struct {
	ReportID            string                 `json:"reportId"`
	ReportType          string                 `json:"reportType"`
	DataStartTime       *string                `json:"dataStartTime,omitempty"`
	DataEndTime         *string                `json:"dataEndTime,omitempty"`
	MarketplaceIDs      []string               `json:"marketplaceIds"`
	CreatedTime         string                 `json:"createdTime"`
	ProcessingStatus    enums.ProcessingStatus `json:"processingStatus"`
	ProcessingStartTime *string                `json:"processingStartTime,omitempty"`
	ProcessingEndTime   *string                `json:"processingEndTime,omitempty"`
	ReportDocumentID    *string                `json:"reportDocumentId,omitempty"`
}

// ReportsPayload is the payload half of the reports listing.
type ReportsPayload struct {
	Reports   []ReportDTO `json:"reports"`
	NextToken *string     `json:"nextToken"`
}

func formatUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatUTCPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatUTC(*t)
	return &s
}

func toFeedDTO(feed *models.Feed) FeedDTO {
	ids := []string(feed.MarketplaceIDs)
	if ids == nil {
		ids = []string{}
	}
	return FeedDTO{
		FeedID:               feed.FeedID,
		FeedType:             feed.FeedType,
		MarketplaceIDs:       ids,
		CreatedTime:          formatUTC(feed.CreatedTime),
		ProcessingStatus:     feed.ProcessingStatus,
		ProcessingStartTime:  formatUTCPtr(feed.ProcessingStartTime),
		ProcessingEndTime:    formatUTCPtr(feed.ProcessingEndTime),
		ResultFeedDocumentID: feed.ResultFeedDocumentID,
	}
}

func toReportDTO(report *models.Report) ReportDTO {
	ids := []string(report.MarketplaceIDs)
	if ids == nil {
		ids = []string{}
	}
	return ReportDTO{
		ReportID:            report.ReportID,
		ReportType:          report.ReportType,
		DataStartTime:       formatUTCPtr(report.DataStartTime),
		DataEndTime:         formatUTCPtr(report.DataEndTime),
		MarketplaceIDs:      ids,
		CreatedTime:         formatUTC(report.CreatedTime),
		ProcessingStatus:    report.ProcessingStatus,
		ProcessingStartTime: formatUTCPtr(report.ProcessingStartTime),
		ProcessingEndTime:   formatUTCPtr(report.ProcessingEndTime),
		ReportDocumentID:    report.ReportDocumentID,
	}
}
