package listings

import (
	"time"

	"github.com/sellgrid/sellermock/pkg/db/models"
)

// IssueDTO is one validation issue attached to a listing submission.
type IssueDTO struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// SubmissionDTO acknowledges a PUT or DELETE submission.
type SubmissionDTO struct {
	SKU          string     `json:"sku"`
	Status       string     `json:"status"`
	SubmissionID string     `json:"submissionId"`
	Issues       []IssueDTO `json:"issues"`
}

// SummaryEntryDTO is one per-marketplace summary block of a listing item.
type SummaryEntryDTO struct {
	MarketplaceID   string  `json:"marketplaceId"`
	ASIN            *string `json:"asin,omitempty"`
	ProductType     *string `json:"productType,omitempty"`
	ItemName        *string `json:"itemName,omitempty"`
	Status          string  `json:"status"`
	CreatedDate     string  `json:"createdDate"`
	LastUpdatedDate string  `json:"lastUpdatedDate"`
}

// ItemDTO is the full listing item representation.
type ItemDTO struct {
	SKU        string            `json:"sku"`
	Status     string            `json:"status"`
	Summaries  []SummaryEntryDTO `json:"summaries"`
	Attributes map[string]any    `json:"attributes"`
	Issues     []IssueDTO        `json:"issues"`
}

func toItemDTO(listing *models.Listing, marketplaceID string) ItemDTO {
	attributes := map[string]any(listing.Attributes)
	if attributes == nil {
		attributes = map[string]any{}
	}
	issues := make([]IssueDTO, 0, len(listing.Issues))
	for _, issue := range listing.Issues {
		issues = append(issues, IssueDTO{Code: "90220", Message: issue, Severity: "WARNING"})
	}
	return ItemDTO{
		SKU:    listing.SellerSKU,
		Status: string(listing.Status),
		Summaries: []SummaryEntryDTO{{
			MarketplaceID:   marketplaceID,
			ASIN:            listing.ASIN,
			ProductType:     listing.ProductType,
			ItemName:        listing.ItemName,
			Status:          string(listing.Status),
			CreatedDate:     listing.CreatedDate.UTC().Format(time.RFC3339),
			LastUpdatedDate: listing.LastUpdatedDate.UTC().Format(time.RFC3339),
		}},
		Attributes: attributes,
		Issues:     issues,
	}
}
