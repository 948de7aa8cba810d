package fees

// The v0 product fees surface keeps PascalCase member names like the v0
// orders surface.

// MoneyDTO is a currency-qualified amount with a decimal-string value.
type MoneyDTO struct {
	CurrencyCode string `json:"CurrencyCode"`
	Amount       string `json:"Amount"`
}

// PriceToEstimateFeesDTO is the price input the estimate is computed from.
type PriceToEstimateFeesDTO struct {
	ListingPrice MoneyDTO  `json:"ListingPrice"`
	Shipping     *MoneyDTO `json:"Shipping,omitempty"`
}

// IdentifierDTO echoes the request back alongside the estimate.
type IdentifierDTO struct {
	MarketplaceID       string                 `json:"MarketplaceId"`
	SellerID            string                 `json:"SellerId"`
	IDType              string                 `json:"IdType"`
	IDValue             string                 `json:"IdValue"`
	IsAmazonFulfilled   bool                   `json:"IsAmazonFulfilled"`
	PriceToEstimateFees PriceToEstimateFeesDTO `json:"PriceToEstimateFees"`
}

// FeeDetailDTO is one line of the fee breakdown.
type FeeDetailDTO struct {
	FeeType   string   `json:"FeeType"`
	FeeAmount MoneyDTO `json:"FeeAmount"`
	FinalFee  MoneyDTO `json:"FinalFee"`
}

// EstimateDTO is the computed fee estimate.
type EstimateDTO struct {
	TimeOfFeesEstimation string         `json:"TimeOfFeesEstimation"`
	TotalFeesEstimate    MoneyDTO       `json:"TotalFeesEstimate"`
	FeeDetailList        []FeeDetailDTO `json:"FeeDetailList"`
}

// EstimateErrorDTO is the embedded error of a ClientError result.
type EstimateErrorDTO struct {
	Type    string `json:"Type"`
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

// ResultDTO is the outcome of one fee estimate request.
type ResultDTO struct {
	Status                 string            `json:"Status"`
	FeesEstimateIdentifier *IdentifierDTO    `json:"FeesEstimateIdentifier,omitempty"`
	FeesEstimate           *EstimateDTO      `json:"FeesEstimate,omitempty"`
	Error                  *EstimateErrorDTO `json:"Error,omitempty"`
}
