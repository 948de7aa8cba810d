package feeds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sellgrid/sellermock/pkg/config"
	"github.com/sellgrid/sellermock/pkg/db/dbtypes"
	"github.com/sellgrid/sellermock/pkg/db/models"
	"github.com/sellgrid/sellermock/pkg/enums"
	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
	"github.com/sellgrid/sellermock/pkg/pagination"
)

const defaultPageSize = 10

// ListInput is the validated parameter set for a feeds listing.
type ListInput struct {
	Types              []string
	ProcessingStatuses []string
	CreatedSince       *time.Time
	CreatedUntil       *time.Time
	PageSize           int
	NextToken          string
}

// Service exposes the feed lifecycle operations. There is no background
// worker; reads advance the simulated lifecycle deterministically from the
// feed's age.
type Service interface {
	Create(ctx context.Context, feedType string, marketplaceIDs []string) (*FeedDTO, error)
	List(ctx context.Context, input ListInput) (*FeedsPayload, error)
	Get(ctx context.Context, feedID string) (*FeedDTO, error)
	Cancel(ctx context.Context, feedID string) (*CancelDTO, error)
}

type service struct {
	repo *Repository
	cfg  config.MockConfig
	now  func() time.Time
}

// NewService constructs the feeds service.
func NewService(repo *Repository, cfg config.MockConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("feeds repository required")
	}
	return &service{repo: repo, cfg: cfg, now: time.Now}, nil
}

func normalizePageSize(pageSize int) int {
	if pageSize <= 0 {
		return defaultPageSize
	}
	if pageSize > pagination.MaxMaxResults {
		return pagination.MaxMaxResults
	}
	return pageSize
}

func (s *service) Create(ctx context.Context, feedType string, marketplaceIDs []string) (*FeedDTO, error) {
	feed := &models.Feed{
		FeedID:           "feed-" + uuid.NewString(),
		FeedType:         feedType,
		MarketplaceIDs:   dbtypes.StringList(marketplaceIDs),
		CreatedTime:      s.now().UTC(),
		ProcessingStatus: enums.ProcessingStatusInQueue,
	}
	if err := s.repo.CreateFeed(ctx, feed); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to create feed")
	}
	dto := toFeedDTO(feed)
	return &dto, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*FeedsPayload, error) {
	pageSize := normalizePageSize(input.PageSize)
	offset := pagination.ParseToken(input.NextToken)

	rows, total, err := s.repo.ListFeeds(ctx, ListQuery{
		Types:              input.Types,
		ProcessingStatuses: input.ProcessingStatuses,
		CreatedSince:       input.CreatedSince,
		CreatedUntil:       input.CreatedUntil,
		Offset:             offset,
		Limit:              pageSize,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to list feeds")
	}

	feeds := make([]FeedDTO, 0, len(rows))
	for i := range rows {
		if err := s.advanceFeed(ctx, &rows[i]); err != nil {
			return nil, err
		}
		feeds = append(feeds, toFeedDTO(&rows[i]))
	}
	payload := &FeedsPayload{Feeds: feeds}
	if token := pagination.NextToken(offset, pageSize, total); token != "" {
		payload.NextToken = &token
	}
	return payload, nil
}

func (s *service) Get(ctx context.Context, feedID string) (*FeedDTO, error) {
	feed, err := s.loadFeed(ctx, feedID)
	if err != nil {
		return nil, err
	}
	if err := s.advanceFeed(ctx, feed); err != nil {
		return nil, err
	}
	dto := toFeedDTO(feed)
	return &dto, nil
}

func (s *service) Cancel(ctx context.Context, feedID string) (*CancelDTO, error) {
	feed, err := s.loadFeed(ctx, feedID)
	if err != nil {
		return nil, err
	}
	if err := s.advanceFeed(ctx, feed); err != nil {
		return nil, err
	}
	if feed.ProcessingStatus.Terminal() {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidState,
			fmt.Sprintf("feed %s is already %s", feedID, feed.ProcessingStatus))
	}

	now := s.now().UTC()
	feed.ProcessingStatus = enums.ProcessingStatusCancelled
	feed.ProcessingEndTime = &now
	if err := s.repo.SaveFeed(ctx, feed); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to cancel feed")
	}
	return &CancelDTO{FeedID: feedID, ProcessingStatus: feed.ProcessingStatus}, nil
}

func (s *service) loadFeed(ctx context.Context, feedID string) (*models.Feed, error) {
	feed, err := s.repo.FindFeed(ctx, feedID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("feed %s not found", feedID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to load feed")
	}
	return feed, nil
}

// advanceFeed moves the feed through IN_QUEUE -> IN_PROGRESS -> DONE based
// on its age. Timestamps are derived from createdTime rather than the
// observation time, so repeated reads agree on the transition instants.
func (s *service) advanceFeed(ctx context.Context, feed *models.Feed) error {
	if feed.ProcessingStatus.Terminal() {
		return nil
	}

	age := s.now().UTC().Sub(feed.CreatedTime)
	changed := false

	if feed.ProcessingStatus == enums.ProcessingStatusInQueue && age >= s.cfg.FeedProcessingStart {
		started := feed.CreatedTime.Add(s.cfg.FeedProcessingStart)
		feed.ProcessingStatus = enums.ProcessingStatusInProgress
		feed.ProcessingStartTime = &started
		changed = true
	}
	if feed.ProcessingStatus == enums.ProcessingStatusInProgress && age >= s.cfg.FeedProcessingDone {
		finished := feed.CreatedTime.Add(s.cfg.FeedProcessingDone)
		docID := "feed-doc-" + uuid.NewString()
		feed.ProcessingStatus = enums.ProcessingStatusDone
		feed.ProcessingEndTime = &finished
		feed.ResultFeedDocumentID = &docID
		changed = true
	}

	if !changed {
		return nil
	}
	if err := s.repo.SaveFeed(ctx, feed); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to advance feed lifecycle")
	}
	return nil
}
