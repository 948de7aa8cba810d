package models

import (
	"time"

	"github.com/sellgrid/sellermock/pkg/db/dbtypes"
	"github.com/sellgrid/sellermock/pkg/enums"
)

// Feed tracks a submitted feed and its simulated processing lifecycle.
type Feed struct {
	FeedID               string                 `gorm:"column:feed_id;primaryKey"`
	FeedType             string                 `gorm:"column:feed_type;not null"`
	MarketplaceIDs       dbtypes.StringList     `gorm:"column:marketplace_ids;type:json"`
	CreatedTime          time.Time              `gorm:"column:created_time"`
	ProcessingStatus     enums.ProcessingStatus `gorm:"column:processing_status;default:'IN_QUEUE'"`
	ProcessingStartTime  *time.Time             `gorm:"column:processing_start_time"`
	ProcessingEndTime    *time.Time             `gorm:"column:processing_end_time"`
	ResultFeedDocumentID *string                `gorm:"column:result_feed_document_id"`
	CreatedAt            time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

func (Feed) TableName() string { return "feeds" }
