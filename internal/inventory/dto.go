package inventory

import (
	"time"

	"github.com/sellgrid/sellermock/pkg/db/models"
)

// ReservedQuantityDTO breaks the reserved bucket down by hold reason.
type ReservedQuantityDTO struct {
	TotalReservedQuantity        int `json:"totalReservedQuantity"`
	PendingCustomerOrderQuantity int `json:"pendingCustomerOrderQuantity"`
	PendingTransshipmentQuantity int `json:"pendingTransshipmentQuantity"`
	FCProcessingQuantity         int `json:"fcProcessingQuantity"`
}

// ResearchingQuantityDTO is carried for wire compatibility; the mock tracks
// no researching inventory, so it renders zeroed with an empty breakdown.
type ResearchingQuantityDTO struct {
	TotalResearchingQuantity     int                      `json:"totalResearchingQuantity"`
	ResearchingQuantityBreakdown []ResearchingQuantityRow `json:"researchingQuantityBreakdown"`
}

type ResearchingQuantityRow struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// InventoryDetailsDTO is the nested quantity block returned when details=true.
type InventoryDetailsDTO struct {
	FulfillableQuantity      int                  `json:"fulfillableQuantity"`
	InboundWorkingQuantity   int                  `json:"inboundWorkingQuantity"`
	InboundShippedQuantity   int                  `json:"inboundShippedQuantity"`
	InboundReceivingQuantity int                  `json:"inboundReceivingQuantity"`
	ReservedQuantity         *ReservedQuantityDTO `json:"reservedQuantity,omitempty"`
	UnfulfillableQuantity    int                  `json:"unfulfillableQuantity"`
	TotalQuantity            int                  `json:"totalQuantity"`
}

// SummaryDTO is one entry of the inventorySummaries list.
type SummaryDTO struct {
	ASIN             *string              `json:"asin"`
	FNSKU            *string              `json:"fnSku"`
	SellerSKU        string               `json:"sellerSku"`
	Condition        string               `json:"condition"`
	InventoryDetails *InventoryDetailsDTO `json:"inventoryDetails,omitempty"`
	LastUpdatedTime  *string              `json:"lastUpdatedTime"`
	ProductName      *string              `json:"productName"`
	TotalQuantity    int                  `json:"totalQuantity"`
}

// DetailDTO is the flattened single-SKU representation.
type DetailDTO struct {
	ASIN                     *string                `json:"asin"`
	FNSKU                    *string                `json:"fnSku"`
	SellerSKU                string                 `json:"sellerSku"`
	Condition                string                 `json:"condition"`
	TotalQuantity            int                    `json:"totalQuantity"`
	FulfillableQuantity      int                    `json:"fulfillableQuantity"`
	InboundWorkingQuantity   int                    `json:"inboundWorkingQuantity"`
	InboundShippedQuantity   int                    `json:"inboundShippedQuantity"`
	InboundReceivingQuantity int                    `json:"inboundReceivingQuantity"`
	ReservedQuantity         ReservedQuantityDTO    `json:"reservedQuantity"`
	UnfulfillableQuantity    int                    `json:"unfulfillableQuantity"`
	LastUpdatedTime          *string                `json:"lastUpdatedTime"`
	ProductName              *string                `json:"productName"`
	ResearchingQuantity      ResearchingQuantityDTO `json:"researchingQuantity"`
}

// PaginationDTO carries the offset token for the following page.
type PaginationDTO struct {
	NextToken *string `json:"nextToken"`
}

// SummariesPayload is the payload half of the list response envelope.
// TotalCount reports the unpaged match count to callers of the service;
// the wire contract does not carry it.
type SummariesPayload struct {
	InventorySummaries []SummaryDTO  `json:"inventorySummaries"`
	Pagination         PaginationDTO `json:"pagination"`
	TotalCount         int64         `json:"-"`
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func toSummaryDTO(inv *models.Inventory, details bool) SummaryDTO {
	dto := SummaryDTO{
		ASIN:            inv.ASIN,
		FNSKU:           inv.FNSKU,
		SellerSKU:       inv.SellerSKU,
		Condition:       inv.ConditionType,
		LastUpdatedTime: formatTime(inv.LastUpdatedTime),
		ProductName:     inv.ProductName,
		TotalQuantity:   inv.TotalQuantity,
	}
	if details {
		dto.InventoryDetails = &InventoryDetailsDTO{
			FulfillableQuantity:      inv.FulfillableQuantity,
			InboundWorkingQuantity:   inv.InboundWorkingQuantity,
			InboundShippedQuantity:   inv.InboundShippedQuantity,
			InboundReceivingQuantity: inv.InboundReceivingQuantity,
			ReservedQuantity:         reservedDTO(inv),
			UnfulfillableQuantity:    inv.UnfulfillableQuantity,
			TotalQuantity:            inv.TotalQuantity,
		}
	}
	return dto
}

func toDetailDTO(inv *models.Inventory) DetailDTO {
	return DetailDTO{
		ASIN:                     inv.ASIN,
		FNSKU:                    inv.FNSKU,
		SellerSKU:                inv.SellerSKU,
		Condition:                inv.ConditionType,
		TotalQuantity:            inv.TotalQuantity,
		FulfillableQuantity:      inv.FulfillableQuantity,
		InboundWorkingQuantity:   inv.InboundWorkingQuantity,
		InboundShippedQuantity:   inv.InboundShippedQuantity,
		InboundReceivingQuantity: inv.InboundReceivingQuantity,
		ReservedQuantity:         *reservedDTO(inv),
		UnfulfillableQuantity:    inv.UnfulfillableQuantity,
		LastUpdatedTime:          formatTime(inv.LastUpdatedTime),
		ProductName:              inv.ProductName,
		ResearchingQuantity: ResearchingQuantityDTO{
			TotalResearchingQuantity:     inv.ResearchingQuantityTotal,
			ResearchingQuantityBreakdown: []ResearchingQuantityRow{},
		},
	}
}

func reservedDTO(inv *models.Inventory) *ReservedQuantityDTO {
	return &ReservedQuantityDTO{
		TotalReservedQuantity:        inv.ReservedQuantityTotal,
		PendingCustomerOrderQuantity: inv.ReservedQuantityPendingCustomerOrder,
		PendingTransshipmentQuantity: inv.ReservedQuantityPendingTransshipment,
		FCProcessingQuantity:         inv.ReservedQuantityFCProcessing,
	}
}
