package listings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sellgrid/sellermock/pkg/db/dbtypes"
	"github.com/sellgrid/sellermock/pkg/db/models"
	"github.com/sellgrid/sellermock/pkg/enums"
	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
)

// DefaultMarketplaceID backs listing summaries when the caller does not
// scope the request to specific marketplaces.
const DefaultMarketplaceID = "ATVPDKIKX0DER"

// PutInput is the validated upsert payload.
type PutInput struct {
	ProductType string
	Attributes  map[string]any
}

// Service exposes the listings item operations.
type Service interface {
	Put(ctx context.Context, sellerID, sellerSKU string, input PutInput) (*SubmissionDTO, error)
	Get(ctx context.Context, sellerID, sellerSKU string, marketplaceIDs []string) (*ItemDTO, error)
	Delete(ctx context.Context, sellerID, sellerSKU string) (*SubmissionDTO, error)
	ListBySeller(ctx context.Context, sellerID string, filters ListFilters) ([]ItemDTO, error)
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService constructs the listings service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("listings repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Put(ctx context.Context, sellerID, sellerSKU string, input PutInput) (*SubmissionDTO, error) {
	now := s.now().UTC()
	productType := input.ProductType
	submissionID := "sub-" + uuid.NewString()

	row, err := s.repo.Find(ctx, sellerID, sellerSKU)
	switch {
	case err == nil:
		row.ProductType = &productType
		row.Attributes = dbtypes.JSONMap(input.Attributes)
		row.Status = enums.ListingStatusActive
		row.SubmissionID = &submissionID
		row.LastUpdatedDate = now
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = &models.Listing{
			SellerID:        sellerID,
			SellerSKU:       sellerSKU,
			ProductType:     &productType,
			Attributes:      dbtypes.JSONMap(input.Attributes),
			Status:          enums.ListingStatusActive,
			SubmissionID:    &submissionID,
			CreatedDate:     now,
			LastUpdatedDate: now,
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to load listing")
	}

	if err := s.repo.EnsureSeller(ctx, sellerID, DefaultMarketplaceID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to ensure seller")
	}
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to save listing")
	}
	return &SubmissionDTO{
		SKU:          sellerSKU,
		Status:       string(row.Status),
		SubmissionID: submissionID,
		Issues:       []IssueDTO{},
	}, nil
}

func (s *service) Get(ctx context.Context, sellerID, sellerSKU string, marketplaceIDs []string) (*ItemDTO, error) {
	row, err := s.repo.Find(ctx, sellerID, sellerSKU)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("listing not found for sku %s", sellerSKU))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to load listing")
	}

	marketplaceID := DefaultMarketplaceID
	if len(marketplaceIDs) > 0 {
		marketplaceID = marketplaceIDs[0]
	}
	dto := toItemDTO(row, marketplaceID)
	return &dto, nil
}

// Delete soft-deletes: the row flips to INACTIVE while the submission
// reports DELETED, matching the external contract.
func (s *service) Delete(ctx context.Context, sellerID, sellerSKU string) (*SubmissionDTO, error) {
	row, err := s.repo.Find(ctx, sellerID, sellerSKU)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("listing not found for sku %s", sellerSKU))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to load listing")
	}

	submissionID := "del-" + uuid.NewString()
	row.Status = enums.ListingStatusInactive
	row.SubmissionID = &submissionID
	row.LastUpdatedDate = s.now().UTC()
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to delete listing")
	}
	return &SubmissionDTO{
		SKU:          sellerSKU,
		Status:       string(enums.ListingStatusDeleted),
		SubmissionID: submissionID,
		Issues:       []IssueDTO{},
	}, nil
}

func (s *service) ListBySeller(ctx context.Context, sellerID string, filters ListFilters) ([]ItemDTO, error) {
	rows, err := s.repo.ListBySeller(ctx, sellerID, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to list listings")
	}
	items := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		items = append(items, toItemDTO(&rows[i], DefaultMarketplaceID))
	}
	return items, nil
}
