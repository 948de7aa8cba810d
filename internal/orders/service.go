package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sellgrid/sellermock/pkg/db/models"
	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
	"github.com/sellgrid/sellermock/pkg/pagination"
)

// The orders surface pages up to 100 rows, unlike the 50-row default used
// by the rest of the API.
const maxResultsPerPage = 100

// ListInput is the validated parameter set for an order listing.
type ListInput struct {
	CreatedAfter      *time.Time
	CreatedBefore     *time.Time
	LastUpdatedAfter  *time.Time
	LastUpdatedBefore *time.Time
	Statuses          []string
	MarketplaceIDs    []string
	OrderIDs          []string
	BuyerEmail        *string
	SellerOrderID     *string
	MaxResults        int
	NextToken         string
}

// ItemsInput pages through one order's line items.
type ItemsInput struct {
	MaxResults int
	NextToken  string
}

// Service exposes the orders read operations.
type Service interface {
	List(ctx context.Context, input ListInput) (*OrdersPayload, error)
	GetByID(ctx context.Context, orderID string) (*OrderDTO, error)
	GetItems(ctx context.Context, orderID string, input ItemsInput) (*OrderItemsPayload, error)
	GetAddress(ctx context.Context, orderID string) (*AddressPayload, error)
	GetBuyerInfo(ctx context.Context, orderID string) (*BuyerInfoPayload, error)
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService constructs the orders service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func normalizePageSize(maxResults int) int {
	if maxResults <= 0 || maxResults > maxResultsPerPage {
		return maxResultsPerPage
	}
	return maxResults
}

func (s *service) List(ctx context.Context, input ListInput) (*OrdersPayload, error) {
	maxResults := normalizePageSize(input.MaxResults)
	offset := pagination.ParseToken(input.NextToken)

	rows, total, err := s.repo.List(ctx, ListQuery{
		CreatedAfter:      input.CreatedAfter,
		CreatedBefore:     input.CreatedBefore,
		LastUpdatedAfter:  input.LastUpdatedAfter,
		LastUpdatedBefore: input.LastUpdatedBefore,
		Statuses:          input.Statuses,
		MarketplaceIDs:    input.MarketplaceIDs,
		OrderIDs:          input.OrderIDs,
		BuyerEmail:        input.BuyerEmail,
		SellerOrderID:     input.SellerOrderID,
		Offset:            offset,
		Limit:             maxResults,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to list orders")
	}

	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toOrderDTO(&rows[i]))
	}
	payload := &OrdersPayload{
		Orders:        out,
		CreatedBefore: formatUTC(s.now()),
	}
	if token := pagination.NextToken(offset, maxResults, total); token != "" {
		payload.NextToken = &token
	}
	return payload, nil
}

func (s *service) GetByID(ctx context.Context, orderID string) (*OrderDTO, error) {
	row, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	dto := toOrderDTO(row)
	return &dto, nil
}

func (s *service) GetItems(ctx context.Context, orderID string, input ItemsInput) (*OrderItemsPayload, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	maxResults := normalizePageSize(input.MaxResults)
	offset := pagination.ParseToken(input.NextToken)

	rows, total, err := s.repo.ListItems(ctx, orderID, offset, maxResults)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to list order items")
	}

	items := make([]OrderItemDTO, 0, len(rows))
	for i := range rows {
		items = append(items, toOrderItemDTO(&rows[i], order.CurrencyCode))
	}
	payload := &OrderItemsPayload{
		AmazonOrderID: orderID,
		OrderItems:    items,
	}
	if token := pagination.NextToken(offset, maxResults, total); token != "" {
		payload.NextToken = &token
	}
	return payload, nil
}

func (s *service) GetAddress(ctx context.Context, orderID string) (*AddressPayload, error) {
	row, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &AddressPayload{
		AmazonOrderID:   orderID,
		ShippingAddress: toAddressDTO(row),
	}, nil
}

func (s *service) GetBuyerInfo(ctx context.Context, orderID string) (*BuyerInfoPayload, error) {
	row, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &BuyerInfoPayload{
		AmazonOrderID:       orderID,
		BuyerEmail:          row.BuyerEmail,
		BuyerName:           row.BuyerName,
		PurchaseOrderNumber: row.SellerOrderID,
	}, nil
}

func (s *service) loadOrder(ctx context.Context, orderID string) (*models.Order, error) {
	row, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("order %s not found", orderID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to load order")
	}
	return row, nil
}
