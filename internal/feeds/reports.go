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

// CreateReportInput is the validated report request payload.
type CreateReportInput struct {
	ReportType     string
	DataStartTime  *time.Time
	DataEndTime    *time.Time
	MarketplaceIDs []string
}

// ReportService mirrors the feed lifecycle for reports.
type ReportService interface {
	Create(ctx context.Context, input CreateReportInput) (*ReportDTO, error)
	List(ctx context.Context, input ListInput) (*ReportsPayload, error)
	Get(ctx context.Context, reportID string) (*ReportDTO, error)
	Cancel(ctx context.Context, reportID string) (*ReportDTO, error)
}

type reportService struct {
	repo *Repository
	cfg  config.MockConfig
	now  func() time.Time
}

// NewReportService constructs the reports service.
func NewReportService(repo *Repository, cfg config.MockConfig) (ReportService, error) {
	if repo == nil {
		return nil, fmt.Errorf("feeds repository required")
	}
	return &reportService{repo: repo, cfg: cfg, now: time.Now}, nil
}

func (s *reportService) Create(ctx context.Context, input CreateReportInput) (*ReportDTO, error) {
	report := &models.Report{
		ReportID:         "report-" + uuid.NewString(),
		ReportType:       input.ReportType,
		DataStartTime:    input.DataStartTime,
		DataEndTime:      input.DataEndTime,
		MarketplaceIDs:   dbtypes.StringList(input.MarketplaceIDs),
		CreatedTime:      s.now().UTC(),
		ProcessingStatus: enums.ProcessingStatusInQueue,
	}
	if err := s.repo.CreateReport(ctx, report); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to create report")
	}
	dto := toReportDTO(report)
	return &dto, nil
}

func (s *reportService) List(ctx context.Context, input ListInput) (*ReportsPayload, error) {
	pageSize := normalizePageSize(input.PageSize)
	offset := pagination.ParseToken(input.NextToken)

	rows, total, err := s.repo.ListReports(ctx, ListQuery{
		Types:              input.Types,
		ProcessingStatuses: input.ProcessingStatuses,
		CreatedSince:       input.CreatedSince,
		CreatedUntil:       input.CreatedUntil,
		Offset:             offset,
		Limit:              pageSize,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to list reports")
	}

	reports := make([]ReportDTO, 0, len(rows))
	for i := range rows {
		if err := s.advanceReport(ctx, &rows[i]); err != nil {
			return nil, err
		}
		reports = append(reports, toReportDTO(&rows[i]))
	}
	payload := &ReportsPayload{Reports: reports}
	if token := pagination.NextToken(offset, pageSize, total); token != "" {
		payload.NextToken = &token
	}
	return payload, nil
}

func (s *reportService) Get(ctx context.Context, reportID string) (*ReportDTO, error) {
	report, err := s.loadReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if err := s.advanceReport(ctx, report); err != nil {
		return nil, err
	}
	dto := toReportDTO(report)
	return &dto, nil
}

func (s *reportService) Cancel(ctx context.Context, reportID string) (*ReportDTO, error) {
	report, err := s.loadReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if err := s.advanceReport(ctx, report); err != nil {
		return nil, err
	}
	if report.ProcessingStatus.Terminal() {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidState,
			fmt.Sprintf("report %s is already %s", reportID, report.ProcessingStatus))
	}

	now := s.now().UTC()
	report.ProcessingStatus = enums.ProcessingStatusCancelled
	report.ProcessingEndTime = &now
	if err := s.repo.SaveReport(ctx, report); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to cancel report")
	}
	dto := toReportDTO(report)
	return &dto, nil
}

func (s *reportService) loadReport(ctx context.Context, reportID string) (*models.Report, error) {
	report, err := s.repo.FindReport(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("report %s not found", reportID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to load report")
	}
	return report, nil
}

func (s *reportService) advanceReport(ctx context.Context, report *models.Report) error {
	if report.ProcessingStatus.Terminal() {
		return nil
	}

	age := s.now().UTC().Sub(report.CreatedTime)
	changed := false

	if report.ProcessingStatus == enums.ProcessingStatusInQueue && age >= s.cfg.FeedProcessingStart {
		started := report.CreatedTime.Add(s.cfg.FeedProcessingStart)
		report.ProcessingStatus = enums.ProcessingStatusInProgress
		report.ProcessingStartTime = &started
		changed = true
	}
	if report.ProcessingStatus == enums.ProcessingStatusInProgress && age >= s.cfg.FeedProcessingDone {
		finished := report.CreatedTime.Add(s.cfg.FeedProcessingDone)
		docID := "report-doc-" + uuid.NewString()
		download := "https://sellermock.example.com/reports/" + docID
		report.ProcessingStatus = enums.ProcessingStatusDone
		report.ProcessingEndTime = &finished
		report.ReportDocumentID = &docID
		report.ReportDocumentURL = &download
		changed = true
	}

	if !changed {
		return nil
	}
	if err := s.repo.SaveReport(ctx, report); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to advance report lifecycle")
	}
	return nil
}
