package enums

import "fmt"

// BuyerType scopes order metrics to business or consumer buyers.
type BuyerType string

const (
	BuyerTypeAll BuyerType = "All"
	BuyerTypeB2B BuyerType = "B2B"
	BuyerTypeB2C BuyerType = "B2C"
)

var validBuyerTypes = []BuyerType{
	BuyerTypeAll,
	BuyerTypeB2B,
	BuyerTypeB2C,
}

// IsValid reports whether the value matches the canonical buyer type enum.
func (b BuyerType) IsValid() bool {
	for _, candidate := range validBuyerTypes {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBuyerType converts the raw string to BuyerType.
func ParseBuyerType(value string) (BuyerType, error) {
	for _, candidate := range validBuyerTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid buyer type %q", value)
}
