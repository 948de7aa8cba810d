package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/sellgrid/sellermock/pkg/db/models"
	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
	"github.com/sellgrid/sellermock/pkg/pagination"
)

// SearchInput holds the parsed parameters of a catalog item search.
type SearchInput struct {
	MarketplaceIDs []string
	Identifiers    []string
	Keywords       []string
	BrandNames     []string
	SellerID       *string
	PageSize       int
	PageToken      string
}

// Service exposes the catalog browse operations.
type Service interface {
	ListCategories(ctx context.Context, marketplaceID string) ([]CategoryDTO, error)
	SearchItems(ctx context.Context, input SearchInput) (*SearchResultsDTO, error)
	GetItem(ctx context.Context, asin string, marketplaceIDs []string) (*ItemDTO, error)
}

type service struct {
	repo *Repository
}

// NewService constructs the catalog service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// ListCategories renders the marketplace's category tree as a flat list
// with the parent resolved inline. Parents always live in the same
// marketplace, so one query covers the lookup.
func (s *service) ListCategories(ctx context.Context, marketplaceID string) ([]CategoryDTO, error) {
	rows, err := s.repo.ListCategories(ctx, marketplaceID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to list catalog categories")
	}

	names := make(map[string]string, len(rows))
	for i := range rows {
		names[rows[i].ProductCategoryID] = rows[i].ProductCategoryName
	}

	categories := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		dto := CategoryDTO{
			ProductCategoryID:   rows[i].ProductCategoryID,
			ProductCategoryName: rows[i].ProductCategoryName,
		}
		if parentID := rows[i].ParentCategoryID; parentID != nil {
			if name, ok := names[*parentID]; ok {
				dto.Parent = &ParentCategoryDTO{
					ProductCategoryID:   *parentID,
					ProductCategoryName: name,
				}
			}
		}
		categories = append(categories, dto)
	}
	return categories, nil
}

func (s *service) SearchItems(ctx context.Context, input SearchInput) (*SearchResultsDTO, error) {
	if len(input.MarketplaceIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidInput, "marketplaceIds is required")
	}

	pageSize := pagination.NormalizeMaxResults(input.PageSize)
	offset := pagination.ParseToken(input.PageToken)

	rows, total, err := s.repo.Search(ctx, SearchFilters{
		MarketplaceIDs: input.MarketplaceIDs,
		Identifiers:    input.Identifiers,
		Keywords:       input.Keywords,
		BrandNames:     input.BrandNames,
		SellerID:       input.SellerID,
		Offset:         offset,
		Limit:          pageSize,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to search catalog items")
	}

	results := &SearchResultsDTO{
		NumberOfResults: int(total),
		Refinements:     RefinementsDTO{Brands: brandRefinements(rows)},
		Items:           make([]ItemDTO, 0, len(rows)),
	}
	for i := range rows {
		results.Items = append(results.Items, toItemDTO(&rows[i]))
	}
	if token := pagination.NextToken(offset, pageSize, total); token != "" {
		results.Pagination.NextToken = &token
	}
	return results, nil
}

func (s *service) GetItem(ctx context.Context, asin string, marketplaceIDs []string) (*ItemDTO, error) {
	if len(marketplaceIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidInput, "marketplaceIds is required")
	}

	row, err := s.repo.Find(ctx, asin, marketplaceIDs)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("catalog item not found for asin %s", asin))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "failed to load catalog item")
	}
	dto := toItemDTO(row)
	return &dto, nil
}

// brandRefinements buckets the current page's distinct brands. Refinements
// describe the page, not the full match set.
func brandRefinements(rows []models.CatalogItem) []BrandRefinementDTO {
	seen := make(map[string]struct{}, len(rows))
	brands := make([]BrandRefinementDTO, 0, len(rows))
	for i := range rows {
		if rows[i].Brand == nil || *rows[i].Brand == "" {
			continue
		}
		if _, ok := seen[*rows[i].Brand]; ok {
			continue
		}
		seen[*rows[i].Brand] = struct{}{}
		brands = append(brands, BrandRefinementDTO{Brand: *rows[i].Brand})
	}
	sort.Slice(brands, func(i, j int) bool { return brands[i].Brand < brands[j].Brand })
	return brands
}
