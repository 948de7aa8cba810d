package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sellgrid/sellermock/pkg/db/models"
)

// The v0 orders surface predates the camelCase convention; its keys are
// PascalCase and money blocks use CurrencyCode/Amount.

type AmountDTO struct {
	CurrencyCode string `json:"CurrencyCode"`
	Amount       string `json:"Amount"`
}

type AddressDTO struct {
	Name          *string `json:"Name"`
	AddressLine1  *string `json:"AddressLine1"`
	AddressLine2  *string `json:"AddressLine2,omitempty"`
	City          *string `json:"City"`
	StateOrRegion *string `json:"StateOrRegion"`
	PostalCode    *string `json:"PostalCode"`
	CountryCode   *string `json:"CountryCode"`
	Phone         *string `json:"Phone,omitempty"`
}

type OrderDTO struct {
	AmazonOrderID          string      `json:"AmazonOrderId"`
	SellerOrderID          *string     `json:"SellerOrderId"`
	PurchaseDate           string      `json:"PurchaseDate"`
	LastUpdateDate         string      `json:"LastUpdateDate"`
	OrderStatus            string      `json:"OrderStatus"`
	FulfillmentChannel     *string     `json:"FulfillmentChannel"`
	SalesChannel           *string     `json:"SalesChannel"`
	ShipServiceLevel       *string     `json:"ShipServiceLevel"`
	OrderTotal             *AmountDTO  `json:"OrderTotal"`
	NumberOfItemsShipped   int         `json:"NumberOfItemsShipped"`
	NumberOfItemsUnshipped int         `json:"NumberOfItemsUnshipped"`
	PaymentMethod          *string     `json:"PaymentMethod"`
	MarketplaceID          string      `json:"MarketplaceId"`
	OrderType              string      `json:"OrderType"`
	EarliestShipDate       *string     `json:"EarliestShipDate"`
	LatestShipDate         *string     `json:"LatestShipDate"`
	IsBusinessOrder        bool        `json:"IsBusinessOrder"`
	IsPrime                bool        `json:"IsPrime"`
	IsPremiumOrder         bool        `json:"IsPremiumOrder"`
	IsReplacementOrder     bool        `json:"IsReplacementOrder"`
	IsAccessPointOrder     bool        `json:"IsAccessPointOrder"`
	ShippingAddress        *AddressDTO `json:"ShippingAddress"`
}

type OrdersPayload struct {
	Orders        []OrderDTO `json:"Orders"`
	NextToken     *string    `json:"NextToken"`
	CreatedBefore string     `json:"CreatedBefore"`
}

type OrderItemDTO struct {
	ASIN              *string    `json:"ASIN"`
	SellerSKU         string     `json:"SellerSKU"`
	OrderItemID       string     `json:"OrderItemId"`
	Title             *string    `json:"Title"`
	QuantityOrdered   int        `json:"QuantityOrdered"`
	QuantityShipped   int        `json:"QuantityShipped"`
	ItemPrice         *AmountDTO `json:"ItemPrice"`
	ShippingPrice     *AmountDTO `json:"ShippingPrice"`
	ItemTax           *AmountDTO `json:"ItemTax"`
	ShippingTax       *AmountDTO `json:"ShippingTax"`
	PromotionDiscount *AmountDTO `json:"PromotionDiscount"`
	ConditionID       string     `json:"ConditionId"`
}

type OrderItemsPayload struct {
	AmazonOrderID string         `json:"AmazonOrderId"`
	OrderItems    []OrderItemDTO `json:"OrderItems"`
	NextToken     *string        `json:"NextToken"`
}

type BuyerInfoPayload struct {
	AmazonOrderID       string  `json:"AmazonOrderId"`
	BuyerEmail          *string `json:"BuyerEmail"`
	BuyerName           *string `json:"BuyerName"`
	BuyerCounty         *string `json:"BuyerCounty"`
	BuyerTaxInfo        any     `json:"BuyerTaxInfo"`
	PurchaseOrderNumber *string `json:"PurchaseOrderNumber"`
}

type AddressPayload struct {
	AmazonOrderID   string      `json:"AmazonOrderId"`
	ShippingAddress *AddressDTO `json:"ShippingAddress"`
}

func formatUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatUTCPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatUTC(*t)
	return &s
}

func amountDTO(currency string, d decimal.Decimal) *AmountDTO {
	return &AmountDTO{CurrencyCode: currency, Amount: d.StringFixed(2)}
}

// amountIfNonZero mirrors the upstream behavior of omitting zero money
// blocks entirely instead of rendering 0.00.
func amountIfNonZero(currency string, d decimal.Decimal) *AmountDTO {
	if d.IsZero() {
		return nil
	}
	return amountDTO(currency, d)
}

func toAddressDTO(order *models.Order) *AddressDTO {
	if order.ShipAddressName == nil {
		return nil
	}
	return &AddressDTO{
		Name:          order.ShipAddressName,
		AddressLine1:  order.ShipAddressLine1,
		AddressLine2:  order.ShipAddressLine2,
		City:          order.ShipAddressCity,
		StateOrRegion: order.ShipAddressState,
		PostalCode:    order.ShipAddressPostal,
		CountryCode:   order.ShipAddressCountry,
		Phone:         order.ShipAddressPhone,
	}
}

func toOrderDTO(order *models.Order) OrderDTO {
	dto := OrderDTO{
		AmazonOrderID:          order.OrderID,
		SellerOrderID:          order.SellerOrderID,
		PurchaseDate:           formatUTC(order.PurchaseDate),
		LastUpdateDate:         formatUTC(order.LastUpdateDate),
		OrderStatus:            order.OrderStatus,
		FulfillmentChannel:     order.FulfillmentChannel,
		SalesChannel:           order.SalesChannel,
		ShipServiceLevel:       order.ShipServiceLevel,
		NumberOfItemsShipped:   order.ItemsShipped,
		NumberOfItemsUnshipped: order.ItemsUnshipped,
		PaymentMethod:          order.PaymentMethod,
		MarketplaceID:          order.MarketplaceID,
		OrderType:              order.OrderType,
		EarliestShipDate:       formatUTCPtr(order.EarliestShipDate),
		LatestShipDate:         formatUTCPtr(order.LatestShipDate),
		IsBusinessOrder:        order.IsBusinessOrder,
		IsPrime:                order.IsPrime,
		IsPremiumOrder:         order.IsPremiumOrder,
		IsReplacementOrder:     order.IsReplacementOrder,
		IsAccessPointOrder:     order.IsAccessPointOrder,
		ShippingAddress:        toAddressDTO(order),
	}
	if order.OrderTotal != nil {
		dto.OrderTotal = amountDTO(order.CurrencyCode, *order.OrderTotal)
	}
	return dto
}

func toOrderItemDTO(item *models.OrderItem, currency string) OrderItemDTO {
	dto := OrderItemDTO{
		ASIN:              item.ASIN,
		SellerSKU:         item.SellerSKU,
		OrderItemID:       item.OrderItemID,
		Title:             item.Title,
		QuantityOrdered:   item.QuantityOrdered,
		QuantityShipped:   item.QuantityShipped,
		ShippingPrice:     amountIfNonZero(currency, item.ShippingPrice),
		ItemTax:           amountIfNonZero(currency, item.ItemTax),
		ShippingTax:       amountIfNonZero(currency, item.ShippingTax),
		PromotionDiscount: amountIfNonZero(currency, item.PromotionDiscount),
		ConditionID:       item.ConditionID,
	}
	if item.ItemPrice != nil {
		dto.ItemPrice = amountDTO(currency, *item.ItemPrice)
	}
	return dto
}
