package handlers

import "fmt"

// isDiscounted reports whether a product should display a discount:
// the original price must exist and sit above the selling price.
func isDiscounted(price, originalPrice float64) bool {
	return originalPrice > 0 && originalPrice > price
}

func validatePricing(price float64, priceSet bool, originalPrice float64, originalPriceSet bool) error {
	if !priceSet {
		return fmt.Errorf("price is required")
	}
	if price < 0 {
		return fmt.Errorf("price must be zero or greater")
	}
	if !originalPriceSet || originalPrice == 0 {
		return nil
	}
	if originalPrice < 0 {
		return fmt.Errorf("originalPrice must be zero or greater")
	}
	if originalPrice <= price {
		return fmt.Errorf("originalPrice must be greater than price")
	}
	return nil
}

// resolvePricingUpdate merges a partial price/originalPrice update into
// the stored values and re-validates the pair as a whole.
func resolvePricingUpdate(existingPrice, existingOriginal float64, price, originalPrice *float64) (float64, float64, error) {
	resolvedPrice := existingPrice
	resolvedOriginal := existingOriginal

	if price != nil {
		resolvedPrice = *price
	}
	if originalPrice != nil {
		resolvedOriginal = *originalPrice
	}

	if err := validatePricing(resolvedPrice, true, resolvedOriginal, true); err != nil {
		return 0, 0, err
	}
	return resolvedPrice, resolvedOriginal, nil
}
