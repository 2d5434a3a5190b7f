package domain

import "fmt"

// ReversalPricing selects the unit price used when a sale is reversed.
type ReversalPricing string

// remember to add new policies to the validReversalPricings map
const (
	// ReversalPricingLive reverses with the product's current price_out.
	ReversalPricingLive ReversalPricing = "live"
	// ReversalPricingCaptured reverses with the unit price stored on the cart line.
	ReversalPricingCaptured ReversalPricing = "captured"
)

var validReversalPricings = map[ReversalPricing]struct{}{
	ReversalPricingLive:     {},
	ReversalPricingCaptured: {},
}

func ToReversalPricing(s string) (ReversalPricing, error) {
	p := ReversalPricing(s)
	if _, ok := validReversalPricings[p]; ok {
		return p, nil
	}

	return "", fmt.Errorf("invalid reversal pricing: %w", ErrValidation)
}
