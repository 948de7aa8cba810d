package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
	"github.com/sellgrid/sellermock/pkg/pagination"
)

// ListInput holds the parsed request parameters for a summaries listing.
type ListInput struct {
	MarketplaceIDs []string
	SellerSKUs     []string
	StartDate      *time.Time
	Details        bool
	NextToken      string
	MaxResults     int
}

// Patch is the set of fields a mock inventory update may touch. Every field
// is optional; absent fields are left untouched. last_updated_time is
// restamped on every successful update, including the empty patch.
type Patch struct {
	FNSKU                                *string
	ASIN                                 *string
	ConditionType                        *string
	ProductName                          *string
	TotalQuantity                        *int
	FulfillableQuantity                  *int
	InboundWorkingQuantity               *int
	InboundShippedQuantity               *int
	InboundReceivingQuantity             *int
	UnfulfillableQuantity                *int
	ReservedQuantityTotal                *int
	ReservedQuantityPendingCustomerOrder *int
	ReservedQuantityPendingTransshipment *int
	ReservedQuantityFCProcessing         *int
}

func (p Patch) touchesQuantities() bool {
	return p.TotalQuantity != nil ||
		p.FulfillableQuantity != nil ||
		p.InboundWorkingQuantity != nil ||
		p.InboundShippedQuantity != nil ||
		p.InboundReceivingQuantity != nil ||
		p.UnfulfillableQuantity != nil ||
		p.ReservedQuantityTotal != nil
}

// Service exposes the FBA inventory operations.
type Service interface {
	ListSummaries(ctx context.Context, input ListInput) (*SummariesPayload, error)
	GetBySKU(ctx context.Context, sellerSKU string) (*DetailDTO, error)
	Update(ctx context.Context, sellerSKU string, patch Patch) (*DetailDTO, error)
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService constructs the inventory service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) ListSummaries(ctx context.Context, input ListInput) (*SummariesPayload, error) {
	maxResults := pagination.NormalizeMaxResults(input.MaxResults)
	offset := pagination.ParseToken(input.NextToken)

	rows, total, err := s.repo.List(ctx, ListQuery{
		SellerSKUs: input.SellerSKUs,
		StartDate:  input.StartDate,
		Offset:     offset,
		Limit:      maxResults,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to list inventory summaries")
	}

	summaries := make([]SummaryDTO, 0, len(rows))
	for i := range rows {
		summaries = append(summaries, toSummaryDTO(&rows[i], input.Details))
	}

	payload := &SummariesPayload{InventorySummaries: summaries, TotalCount: total}
	if token := pagination.NextToken(offset, maxResults, total); token != "" {
		payload.Pagination.NextToken = &token
	}
	return payload, nil
}

func (s *service) GetBySKU(ctx context.Context, sellerSKU string) (*DetailDTO, error) {
	row, err := s.repo.FindBySKU(ctx, sellerSKU)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no inventory found for sku %s", sellerSKU))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to load inventory")
	}
	detail := toDetailDTO(row)
	return &detail, nil
}

func (s *service) Update(ctx context.Context, sellerSKU string, patch Patch) (*DetailDTO, error) {
	row, err := s.repo.FindBySKU(ctx, sellerSKU)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no inventory found for sku %s", sellerSKU))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to load inventory")
	}

	if patch.FNSKU != nil {
		row.FNSKU = patch.FNSKU
	}
	if patch.ASIN != nil {
		row.ASIN = patch.ASIN
	}
	if patch.ConditionType != nil {
		row.ConditionType = *patch.ConditionType
	}
	if patch.ProductName != nil {
		row.ProductName = patch.ProductName
	}
	if patch.FulfillableQuantity != nil {
		row.FulfillableQuantity = *patch.FulfillableQuantity
	}
	if patch.InboundWorkingQuantity != nil {
		row.InboundWorkingQuantity = *patch.InboundWorkingQuantity
	}
	if patch.InboundShippedQuantity != nil {
		row.InboundShippedQuantity = *patch.InboundShippedQuantity
	}
	if patch.InboundReceivingQuantity != nil {
		row.InboundReceivingQuantity = *patch.InboundReceivingQuantity
	}
	if patch.UnfulfillableQuantity != nil {
		row.UnfulfillableQuantity = *patch.UnfulfillableQuantity
	}
	if patch.ReservedQuantityTotal != nil {
		row.ReservedQuantityTotal = *patch.ReservedQuantityTotal
	}
	if patch.ReservedQuantityPendingCustomerOrder != nil {
		row.ReservedQuantityPendingCustomerOrder = *patch.ReservedQuantityPendingCustomerOrder
	}
	if patch.ReservedQuantityPendingTransshipment != nil {
		row.ReservedQuantityPendingTransshipment = *patch.ReservedQuantityPendingTransshipment
	}
	if patch.ReservedQuantityFCProcessing != nil {
		row.ReservedQuantityFCProcessing = *patch.ReservedQuantityFCProcessing
	}

	if patch.touchesQuantities() {
		sum := row.FulfillableQuantity +
			row.InboundWorkingQuantity +
			row.InboundShippedQuantity +
			row.InboundReceivingQuantity +
			row.UnfulfillableQuantity +
			row.ReservedQuantityTotal
		if patch.TotalQuantity != nil {
			if *patch.TotalQuantity != sum {
				return nil, pkgerrors.New(pkgerrors.CodeInvalidInput,
					fmt.Sprintf("totalQuantity %d does not match quantity bucket sum %d", *patch.TotalQuantity, sum))
			}
			row.TotalQuantity = *patch.TotalQuantity
		} else {
			row.TotalQuantity = sum
		}
	}

	stamp := s.now().UTC()
	row.LastUpdatedTime = &stamp

	if err := s.repo.Save(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to update inventory")
	}
	detail := toDetailDTO(row)
	return &detail, nil
}
