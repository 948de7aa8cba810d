package models

import (
	"time"

	"github.com/sellgrid/sellermock/pkg/db/dbtypes"
	"github.com/sellgrid/sellermock/pkg/enums"
)

// Report follows the same simulated lifecycle as Feed.
type Report struct {
	ReportID            string                 `gorm:"column:report_id;primaryKey"`
	ReportType          string                 `gorm:"column:report_type;not null"`
	DataStartTime       *time.Time             `gorm:"column:data_start_time"`
	DataEndTime         *time.Time             `gorm:"column:data_end_time"`
	MarketplaceIDs      dbtypes.StringList     `gorm:"column:marketplace_ids;type:json"`
	ProcessingStatus    enums.ProcessingStatus `gorm:"column:processing_status;default:'IN_QUEUE'"`
	CreatedTime         time.Time              `gorm:"column:created_time"`
	ProcessingStartTime *time.Time             `gorm:"column:processing_start_time"`
	ProcessingEndTime   *time.Time             `gorm:"column:processing_end_time"`
	ReportDocumentID    *string                `gorm:"column:report_document_id"`
	ReportDocumentURL   *string                `gorm:"column:report_document_url"`
	CreatedAt           time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

func (Report) TableName() string { return "reports" }
