package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
)

// Catalog filtering and pagination run over the full result set in the
// handler layer; the store itself only does unfiltered listing.

type productFilter struct {
	Category    string
	Search      string
	InStockOnly bool
}

func filterProducts(products []models.Product, f productFilter) []models.Product {
	out := make([]models.Product, 0, len(products))
	search := strings.ToLower(strings.TrimSpace(f.Search))
	category := strings.TrimSpace(f.Category)

	for _, p := range products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if f.InStockOnly && !p.InStock {
			continue
		}
		if search != "" && !productMatchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func productMatchesSearch(p models.Product, loweredSearch string) bool {
	if strings.Contains(strings.ToLower(p.Name), loweredSearch) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), loweredSearch) {
		return true
	}
	return strings.Contains(strings.ToLower(p.SKU), loweredSearch)
}

func parsePaginationParams(pageStr, limitStr string) (int, int, error) {
	page := 1
	limit := 20

	if pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			return 0, 0, gin.Error{}
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 {
			return 0, 0, gin.Error{}
		}
		limit = l
	}

	return page, limit, nil
}

// paginateProducts slices one page out of the already-filtered set.
func paginateProducts(products []models.Product, page, limit int) []models.Product {
	start := (page - 1) * limit
	if start >= len(products) {
		return []models.Product{}
	}
	end := start + limit
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}
