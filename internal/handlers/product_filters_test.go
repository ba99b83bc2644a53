package handlers

import (
	"testing"

	"storefront/internal/models"
)

func sampleCatalog() []models.Product {
	return []models.Product{
		{SKU: "SKU-1", Name: "Espresso Machine", Description: "Countertop espresso maker", Category: "kitchen", InStock: true},
		{SKU: "SKU-2", Name: "French Press", Description: "Glass carafe", Category: "kitchen", InStock: false},
		{SKU: "SKU-3", Name: "Desk Lamp", Description: "Adjustable arm", Category: "office", InStock: true},
	}
}

func TestFilterProductsByCategory(t *testing.T) {
	out := filterProducts(sampleCatalog(), productFilter{Category: "kitchen"})
	if len(out) != 2 {
		t.Fatalf("expected 2 kitchen products, got %d", len(out))
	}

	out = filterProducts(sampleCatalog(), productFilter{Category: "Kitchen"})
	if len(out) != 2 {
		t.Fatalf("category match should be case-insensitive, got %d", len(out))
	}
}

func TestFilterProductsBySearch(t *testing.T) {
	out := filterProducts(sampleCatalog(), productFilter{Search: "press"})
	if len(out) != 2 {
		t.Fatalf("expected espresso+press matches, got %d", len(out))
	}

	out = filterProducts(sampleCatalog(), productFilter{Search: "SKU-3"})
	if len(out) != 1 || out[0].Name != "Desk Lamp" {
		t.Fatalf("expected sku match for Desk Lamp, got %+v", out)
	}
}

func TestFilterProductsInStockOnly(t *testing.T) {
	out := filterProducts(sampleCatalog(), productFilter{InStockOnly: true})
	if len(out) != 2 {
		t.Fatalf("expected 2 in-stock products, got %d", len(out))
	}
	for _, p := range out {
		if !p.InStock {
			t.Fatalf("out-of-stock product leaked through filter: %+v", p)
		}
	}
}

func TestPaginateProducts(t *testing.T) {
	catalog := sampleCatalog()

	page := paginateProducts(catalog, 1, 2)
	if len(page) != 2 {
		t.Fatalf("expected first page of 2, got %d", len(page))
	}

	page = paginateProducts(catalog, 2, 2)
	if len(page) != 1 || page[0].SKU != "SKU-3" {
		t.Fatalf("expected last page with SKU-3, got %+v", page)
	}

	page = paginateProducts(catalog, 5, 2)
	if len(page) != 0 {
		t.Fatalf("expected empty page past the end, got %+v", page)
	}
}

func TestParsePaginationParamsRejectsBadInput(t *testing.T) {
	if _, _, err := parsePaginationParams("0", "10"); err == nil {
		t.Fatal("expected error for page=0")
	}
	if _, _, err := parsePaginationParams("1", "abc"); err == nil {
		t.Fatal("expected error for non-numeric limit")
	}

	page, limit, err := parsePaginationParams("", "")
	if err != nil || page != 1 || limit != 20 {
		t.Fatalf("expected defaults (1, 20), got (%d, %d, %v)", page, limit, err)
	}
}
