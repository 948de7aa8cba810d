package catalog

import (
	"sort"

	"github.com/sellgrid/sellermock/pkg/db/models"
)

// CategoryDTO is one browse category, rendered with the PascalCase member
// names the v0 surface carries.
type CategoryDTO struct {
	ProductCategoryID   string             `json:"ProductCategoryId"`
	ProductCategoryName string             `json:"ProductCategoryName"`
	Parent              *ParentCategoryDTO `json:"parent,omitempty"`
}

// ParentCategoryDTO identifies the category one level up.
type ParentCategoryDTO struct {
	ProductCategoryID   string `json:"ProductCategoryId"`
	ProductCategoryName string `json:"ProductCategoryName"`
}

// IdentifierDTO is one external identifier attached to an item.
type IdentifierDTO struct {
	IdentifierType string `json:"identifierType"`
	Identifier     string `json:"identifier"`
}

// IdentifiersByMarketplaceDTO groups an item's identifiers per marketplace.
type IdentifiersByMarketplaceDTO struct {
	MarketplaceID string          `json:"marketplaceId"`
	Identifiers   []IdentifierDTO `json:"identifiers"`
}

// ImageDTO is one image variant of an item.
type ImageDTO struct {
	Variant string `json:"variant"`
	Link    string `json:"link"`
	Height  *int   `json:"height,omitempty"`
	Width   *int   `json:"width,omitempty"`
}

// ImagesByMarketplaceDTO groups an item's images per marketplace.
type ImagesByMarketplaceDTO struct {
	MarketplaceID string     `json:"marketplaceId"`
	Images        []ImageDTO `json:"images"`
}

// ProductTypeDTO names an item's product type in a marketplace.
type ProductTypeDTO struct {
	MarketplaceID string `json:"marketplaceId"`
	ProductType   string `json:"productType"`
}

// SalesRankDTO is one category rank of an item.
type SalesRankDTO struct {
	ProductCategoryID string `json:"productCategoryId"`
	Rank              int    `json:"rank"`
}

// SummaryDTO condenses the item's display fields per marketplace.
type SummaryDTO struct {
	MarketplaceID string  `json:"marketplaceId"`
	ASIN          string  `json:"asin"`
	ItemName      *string `json:"itemName,omitempty"`
	Brand         *string `json:"brand,omitempty"`
	Color         *string `json:"color,omitempty"`
	Size          *string `json:"size,omitempty"`
	Style         *string `json:"style,omitempty"`
}

// ItemDTO is one catalog item with its nested data sets.
type ItemDTO struct {
	ASIN         string                        `json:"asin"`
	Identifiers  []IdentifiersByMarketplaceDTO `json:"identifiers"`
	Images       []ImagesByMarketplaceDTO      `json:"images"`
	ProductTypes []ProductTypeDTO              `json:"productTypes"`
	SalesRanks   []SalesRankDTO                `json:"salesRanks"`
	Summaries    []SummaryDTO                  `json:"summaries"`
}

// SearchPaginationDTO carries the token for the following results page.
type SearchPaginationDTO struct {
	NextToken *string `json:"nextToken,omitempty"`
}

// RefinementsDTO lists the brand values present in the full match set.
type RefinementsDTO struct {
	Brands []BrandRefinementDTO `json:"brands"`
}

// BrandRefinementDTO is one brand refinement bucket.
type BrandRefinementDTO struct {
	Brand string `json:"brand"`
}

// SearchResultsDTO is the unenveloped search response body.
type SearchResultsDTO struct {
	NumberOfResults int                 `json:"numberOfResults"`
	Pagination      SearchPaginationDTO `json:"pagination"`
	Refinements     RefinementsDTO      `json:"refinements"`
	Items           []ItemDTO           `json:"items"`
}

func toItemDTO(item *models.CatalogItem) ItemDTO {
	dto := ItemDTO{
		ASIN:         item.ASIN,
		Identifiers:  []IdentifiersByMarketplaceDTO{},
		Images:       []ImagesByMarketplaceDTO{},
		ProductTypes: []ProductTypeDTO{},
		SalesRanks:   []SalesRankDTO{},
		Summaries: []SummaryDTO{{
			MarketplaceID: item.MarketplaceID,
			ASIN:          item.ASIN,
			ItemName:      item.ItemName,
			Brand:         item.Brand,
			Color:         item.Color,
			Size:          item.Size,
			Style:         item.Style,
		}},
	}

	if len(item.Identifiers) > 0 {
		group := IdentifiersByMarketplaceDTO{MarketplaceID: item.MarketplaceID, Identifiers: []IdentifierDTO{}}
		for idType, value := range item.Identifiers {
			raw, ok := value.(string)
			if !ok {
				continue
			}
			group.Identifiers = append(group.Identifiers, IdentifierDTO{IdentifierType: idType, Identifier: raw})
		}
		// Map iteration order is random; keep the wire deterministic.
		sort.Slice(group.Identifiers, func(i, j int) bool {
			return group.Identifiers[i].IdentifierType < group.Identifiers[j].IdentifierType
		})
		dto.Identifiers = append(dto.Identifiers, group)
	}

	if len(item.Images) > 0 {
		group := ImagesByMarketplaceDTO{MarketplaceID: item.MarketplaceID, Images: []ImageDTO{}}
		for _, img := range item.Images {
			group.Images = append(group.Images, ImageDTO{
				Variant: stringField(img, "variant", "MAIN"),
				Link:    stringField(img, "link", ""),
				Height:  intField(img, "height"),
				Width:   intField(img, "width"),
			})
		}
		dto.Images = append(dto.Images, group)
	}

	for _, productType := range item.ProductTypes {
		dto.ProductTypes = append(dto.ProductTypes, ProductTypeDTO{
			MarketplaceID: item.MarketplaceID,
			ProductType:   productType,
		})
	}

	for _, rank := range item.SalesRankings {
		entry := SalesRankDTO{ProductCategoryID: stringField(rank, "category_id", "")}
		if value := intField(rank, "rank"); value != nil {
			entry.Rank = *value
		}
		dto.SalesRanks = append(dto.SalesRanks, entry)
	}

	return dto
}

func stringField(doc map[string]any, key, fallback string) string {
	if value, ok := doc[key].(string); ok && value != "" {
		return value
	}
	return fallback
}

// intField tolerates the float64 that encoding/json decodes numbers into.
func intField(doc map[string]any, key string) *int {
	switch value := doc[key].(type) {
	case float64:
		n := int(value)
		return &n
	case int:
		return &value
	default:
		return nil
	}
}
