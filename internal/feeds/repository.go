package feeds

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sellgrid/sellermock/internal/repo"
	"github.com/sellgrid/sellermock/pkg/db/models"
)

// ListQuery filters a feeds or reports listing.
type ListQuery struct {
	Types              []string
	ProcessingStatuses []string
	CreatedSince       *time.Time
	CreatedUntil       *time.Time
	Offset             int
	Limit              int
}

// Repository owns feed and report persistence.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) CreateFeed(ctx context.Context, feed *models.Feed) error {
	return r.DB(ctx).Create(feed).Error
}

func (r *Repository) FindFeed(ctx context.Context, feedID string) (*models.Feed, error) {
	var row models.Feed
	if err := r.DB(ctx).First(&row, "feed_id = ?", feedID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) ListFeeds(ctx context.Context, q ListQuery) ([]models.Feed, int64, error) {
	tx := r.DB(ctx).Model(&models.Feed{})
	if len(q.Types) > 0 {
		tx = tx.Where("feed_type IN ?", q.Types)
	}
	if len(q.ProcessingStatuses) > 0 {
		tx = tx.Where("processing_status IN ?", q.ProcessingStatuses)
	}
	if q.CreatedSince != nil {
		tx = tx.Where("created_time >= ?", *q.CreatedSince)
	}
	if q.CreatedUntil != nil {
		tx = tx.Where("created_time <= ?", *q.CreatedUntil)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Feed
	err := tx.Order("created_time DESC, feed_id ASC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *Repository) SaveFeed(ctx context.Context, feed *models.Feed) error {
	return r.DB(ctx).Save(feed).Error
}

func (r *Repository) CreateReport(ctx context.Context, report *models.Report) error {
	return r.DB(ctx).Create(report).Error
}

func (r *Repository) FindReport(ctx context.Context, reportID string) (*models.Report, error) {
	var row models.Report
	if err := r.DB(ctx).First(&row, "report_id = ?", reportID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) ListReports(ctx context.Context, q ListQuery) ([]models.Report, int64, error) {
	tx := r.DB(ctx).Model(&models.Report{})
	if len(q.Types) > 0 {
		tx = tx.Where("report_type IN ?", q.Types)
	}
	if len(q.ProcessingStatuses) > 0 {
		tx = tx.Where("processing_status IN ?", q.ProcessingStatuses)
	}
	if q.CreatedSince != nil {
		tx = tx.Where("created_time >= ?", *q.CreatedSince)
	}
	if q.CreatedUntil != nil {
		tx = tx.Where("created_time <= ?", *q.CreatedUntil)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Report
	err := tx.Order("created_time DESC, report_id ASC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *Repository) SaveReport(ctx context.Context, report *models.Report) error {
	return r.DB(ctx).Save(report).Error
}
