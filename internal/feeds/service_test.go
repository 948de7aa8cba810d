package feeds

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sellgrid/sellermock/pkg/config"
	"github.com/sellgrid/sellermock/pkg/enums"
	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
)

var testMockConfig = config.MockConfig{
	FeedProcessingStart: 30 * time.Second,
	FeedProcessingDone:  2 * time.Minute,
	ExportProcessing:    30 * time.Second,
}

func setupFeedsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	feeds := `
CREATE TABLE IF NOT EXISTS feeds (
  feed_id TEXT PRIMARY KEY,
  feed_type TEXT NOT NULL,
  marketplace_ids TEXT,
  created_time DATETIME,
  processing_status TEXT NOT NULL DEFAULT 'IN_QUEUE',
  processing_start_time DATETIME,
  processing_end_time DATETIME,
  result_feed_document_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	reports := `
CREATE TABLE IF NOT EXISTS reports (
  report_id TEXT PRIMARY KEY,
  report_type TEXT NOT NULL,
  data_start_time DATETIME,
  data_end_time DATETIME,
  marketplace_ids TEXT,
  processing_status TEXT NOT NULL DEFAULT 'IN_QUEUE',
  created_time DATETIME,
  processing_start_time DATETIME,
  processing_end_time DATETIME,
  report_document_id TEXT,
  report_document_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(feeds).Error)
	require.NoError(t, conn.Exec(reports).Error)
	return conn
}

func newFeedServiceAt(t *testing.T, conn *gorm.DB, clock *time.Time) Service {
	t.Helper()

	svc, err := NewService(NewRepository(conn), testMockConfig)
	require.NoError(t, err)
	svc.(*service).now = func() time.Time { return *clock }
	return svc
}

func TestFeedLifecycleAdvancesOnRead(t *testing.T) {
	conn := setupFeedsTestDB(t)
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newFeedServiceAt(t, conn, &clock)
	ctx := context.Background()

	created, err := svc.Create(ctx, "POST_PRODUCT_DATA", []string{"ATVPDKIKX0DER"})
	require.NoError(t, err)
	assert.Equal(t, enums.ProcessingStatusInQueue, created.ProcessingStatus)

	// Still queued before the start threshold.
	clock = clock.Add(10 * time.Second)
	feed, err := svc.Get(ctx, created.FeedID)
	require.NoError(t, err)
	assert.Equal(t, enums.ProcessingStatusInQueue, feed.ProcessingStatus)

	// Past the start threshold it moves to IN_PROGRESS.
	clock = clock.Add(30 * time.Second)
	feed, err = svc.Get(ctx, created.FeedID)
	require.NoError(t, err)
	assert.Equal(t, enums.ProcessingStatusInProgress, feed.ProcessingStatus)
	require.NotNil(t, feed.ProcessingStartTime)
	assert.Equal(t, "2024-03-01T12:00:30Z", *feed.ProcessingStartTime)

	// Past the done threshold it finishes with a result document.
	clock = clock.Add(2 * time.Minute)
	feed, err = svc.Get(ctx, created.FeedID)
	require.NoError(t, err)
	assert.Equal(t, enums.ProcessingStatusDone, feed.ProcessingStatus)
	require.NotNil(t, feed.ProcessingEndTime)
	assert.Equal(t, "2024-03-01T12:02:00Z", *feed.ProcessingEndTime)
	require.NotNil(t, feed.ResultFeedDocumentID)

	// A skipped intermediate read still lands on the same timestamps.
	again, err := svc.Get(ctx, created.FeedID)
	require.NoError(t, err)
	assert.Equal(t, *feed.ProcessingEndTime, *again.ProcessingEndTime)
}

func TestFeedCancelFromQueue(t *testing.T) {
	conn := setupFeedsTestDB(t)
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newFeedServiceAt(t, conn, &clock)
	ctx := context.Background()

	created, err := svc.Create(ctx, "POST_PRODUCT_DATA", nil)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, created.FeedID)
	require.NoError(t, err)
	assert.Equal(t, enums.ProcessingStatusCancelled, cancelled.ProcessingStatus)

	// Cancelled is terminal.
	_, err = svc.Cancel(ctx, created.FeedID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInvalidState, typed.Code())
}

func TestFeedCancelAfterDoneConflicts(t *testing.T) {
	conn := setupFeedsTestDB(t)
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newFeedServiceAt(t, conn, &clock)
	ctx := context.Background()

	created, err := svc.Create(ctx, "POST_PRODUCT_DATA", nil)
	require.NoError(t, err)

	clock = clock.Add(5 * time.Minute)
	_, err = svc.Cancel(ctx, created.FeedID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInvalidState, typed.Code())
}

func TestFeedNotFound(t *testing.T) {
	conn := setupFeedsTestDB(t)
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newFeedServiceAt(t, conn, &clock)

	_, err := svc.Get(context.Background(), "feed-missing")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListFeedsFiltersAndPaginates(t *testing.T) {
	conn := setupFeedsTestDB(t)
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newFeedServiceAt(t, conn, &clock)
	ctx := context.Background()

	_, err := svc.Create(ctx, "POST_PRODUCT_DATA", nil)
	require.NoError(t, err)
	clock = clock.Add(time.Second)
	_, err = svc.Create(ctx, "POST_INVENTORY_AVAILABILITY_DATA", nil)
	require.NoError(t, err)

	payload, err := svc.List(ctx, ListInput{Types: []string{"POST_PRODUCT_DATA"}})
	require.NoError(t, err)
	require.Len(t, payload.Feeds, 1)
	assert.Equal(t, "POST_PRODUCT_DATA", payload.Feeds[0].FeedType)

	paged, err := svc.List(ctx, ListInput{PageSize: 1})
	require.NoError(t, err)
	require.Len(t, paged.Feeds, 1)
	require.NotNil(t, paged.NextToken)
	assert.Equal(t, "1", *paged.NextToken)
}

func TestReportLifecycleMirrorsFeeds(t *testing.T) {
	conn := setupFeedsTestDB(t)
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	svc, err := NewReportService(NewRepository(conn), testMockConfig)
	require.NoError(t, err)
	svc.(*reportService).now = func() time.Time { return clock }
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateReportInput{
		ReportType:     "GET_MERCHANT_LISTINGS_ALL_DATA",
		MarketplaceIDs: []string{"ATVPDKIKX0DER"},
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ProcessingStatusInQueue, created.ProcessingStatus)

	clock = clock.Add(3 * time.Minute)
	report, err := svc.Get(ctx, created.ReportID)
	require.NoError(t, err)
	assert.Equal(t, enums.ProcessingStatusDone, report.ProcessingStatus)
	require.NotNil(t, report.ReportDocumentID)
	require.NotNil(t, report.ProcessingEndTime)
	assert.Equal(t, "2024-03-01T12:02:00Z", *report.ProcessingEndTime)
}
