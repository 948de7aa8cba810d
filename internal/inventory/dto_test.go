package inventory

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellgrid/sellermock/pkg/db/models"
)

func wireKeys(t *testing.T, v any) []string {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	return keys
}

func fixtureInventoryRow() *models.Inventory {
	asin := "B00EXAMPLE1"
	fnsku := "X00EXAMPLE1"
	name := "Carry-On Spinner"
	updated := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	return &models.Inventory{
		SellerSKU:                "SKU-1",
		ASIN:                     &asin,
		FNSKU:                    &fnsku,
		ProductName:              &name,
		ConditionType:            "NewItem",
		TotalQuantity:            10,
		FulfillableQuantity:      6,
		InboundWorkingQuantity:   1,
		InboundShippedQuantity:   1,
		InboundReceivingQuantity: 1,
		UnfulfillableQuantity:    0,
		ReservedQuantityTotal:    1,
		LastUpdatedTime:          &updated,
	}
}

// Every internal snake_case column maps onto exactly one camelCase wire
// member, with no stray fields leaking through.
func TestSummaryWireKeySetExact(t *testing.T) {
	dto := toSummaryDTO(fixtureInventoryRow(), true)

	assert.ElementsMatch(t, []string{
		"asin", "fnSku", "sellerSku", "condition", "inventoryDetails",
		"lastUpdatedTime", "productName", "totalQuantity",
	}, wireKeys(t, dto))

	assert.ElementsMatch(t, []string{
		"fulfillableQuantity", "inboundWorkingQuantity", "inboundShippedQuantity",
		"inboundReceivingQuantity", "reservedQuantity", "unfulfillableQuantity",
		"totalQuantity",
	}, wireKeys(t, dto.InventoryDetails))

	// Without details the nested block is omitted entirely.
	assert.ElementsMatch(t, []string{
		"asin", "fnSku", "sellerSku", "condition",
		"lastUpdatedTime", "productName", "totalQuantity",
	}, wireKeys(t, toSummaryDTO(fixtureInventoryRow(), false)))
}

func TestDetailWireKeySetExact(t *testing.T) {
	dto := toDetailDTO(fixtureInventoryRow())

	assert.ElementsMatch(t, []string{
		"asin", "fnSku", "sellerSku", "condition", "totalQuantity",
		"fulfillableQuantity", "inboundWorkingQuantity", "inboundShippedQuantity",
		"inboundReceivingQuantity", "reservedQuantity", "unfulfillableQuantity",
		"lastUpdatedTime", "productName", "researchingQuantity",
	}, wireKeys(t, dto))

	assert.ElementsMatch(t, []string{
		"totalReservedQuantity", "pendingCustomerOrderQuantity",
		"pendingTransshipmentQuantity", "fcProcessingQuantity",
	}, wireKeys(t, dto.ReservedQuantity))

	assert.ElementsMatch(t, []string{
		"totalResearchingQuantity", "researchingQuantityBreakdown",
	}, wireKeys(t, dto.ResearchingQuantity))
}
