package handlers

import (
	"encoding/json"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestValidatePricingRejectsNegativePrice(t *testing.T) {
	if err := validatePricing(-1, true, 0, false); err == nil {
		t.Fatal("expected validation error for negative price")
	}
}

func TestValidatePricingOriginalMustExceedPrice(t *testing.T) {
	tests := []float64{50, 100}
	for _, original := range tests {
		if err := validatePricing(100, true, original, true); err == nil {
			t.Fatalf("expected validation error for originalPrice=%v", original)
		}
	}
	if err := validatePricing(100, true, 150, true); err != nil {
		t.Fatalf("unexpected error for valid discount pair: %v", err)
	}
}

func TestValidatePricingZeroOriginalMeansNoDiscount(t *testing.T) {
	if err := validatePricing(100, true, 0, true); err != nil {
		t.Fatalf("unexpected error for cleared originalPrice: %v", err)
	}
}

func TestResolvePricingUpdateMergesPartialFields(t *testing.T) {
	newPrice := 80.0
	price, original, err := resolvePricingUpdate(100, 150, &newPrice, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 80 || original != 150 {
		t.Fatalf("expected (80, 150), got (%v, %v)", price, original)
	}

	badPrice := 200.0
	if _, _, err := resolvePricingUpdate(100, 150, &badPrice, nil); err == nil {
		t.Fatal("expected error when raising price above stored originalPrice")
	}
}

func TestNormalizeProductDocumentComputesDiscount(t *testing.T) {
	product, err := normalizeProductDocument(bson.M{
		"sku":           "SKU-1",
		"name":          "Test",
		"price":         80.0,
		"originalPrice": 100.0,
		"inStock":       true,
	})
	if err != nil {
		t.Fatalf("normalizeProductDocument returned error: %v", err)
	}
	if !product.IsDiscounted {
		t.Fatal("expected IsDiscounted to be true")
	}
}

func TestNormalizeProductDocumentToleratesLegacyNumericTypes(t *testing.T) {
	product, err := normalizeProductDocument(bson.M{
		"sku":         "SKU-2",
		"name":        "Legacy",
		"price":       10.0,
		"rating":      int32(4),
		"reviewCount": int64(12),
		"images":      "single.jpg",
	})
	if err != nil {
		t.Fatalf("normalizeProductDocument returned error: %v", err)
	}
	if product.Rating != 4 {
		t.Fatalf("expected rating 4, got %v", product.Rating)
	}
	if product.ReviewCount != 12 {
		t.Fatalf("expected reviewCount 12, got %d", product.ReviewCount)
	}
	if len(product.Images) != 1 || product.Images[0] != "single.jpg" {
		t.Fatalf("expected legacy string image to decode as one-element list, got %v", product.Images)
	}
}

func TestProductJSONIncludesDiscountFlag(t *testing.T) {
	product, err := normalizeProductDocument(bson.M{
		"sku":           "SKU-3",
		"name":          "Test",
		"price":         99.0,
		"originalPrice": 120.0,
		"inStock":       true,
	})
	if err != nil {
		t.Fatalf("normalizeProductDocument returned error: %v", err)
	}

	body, err := json.Marshal(product)
	if err != nil {
		t.Fatalf("json marshal failed: %v", err)
	}

	jsonBody := string(body)
	if !strings.Contains(jsonBody, "\"originalPrice\":120") {
		t.Fatalf("expected originalPrice in response json, got %s", jsonBody)
	}
	if !strings.Contains(jsonBody, "\"isDiscounted\":true") {
		t.Fatalf("expected isDiscounted=true in response json, got %s", jsonBody)
	}
}
