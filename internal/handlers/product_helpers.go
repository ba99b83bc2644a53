package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

func normalizeProductDocument(raw bson.M) (models.Product, error) {
	if val, ok := raw["reviewCount"]; ok {
		switch typed := val.(type) {
		case int32:
			raw["reviewCount"] = int(typed)
		case int64:
			raw["reviewCount"] = int(typed)
		case float64:
			raw["reviewCount"] = int(typed)
		case int:
			raw["reviewCount"] = typed
		default:
			raw["reviewCount"] = 0
		}
	} else {
		raw["reviewCount"] = 0
	}

	if val, ok := raw["rating"]; ok {
		switch typed := val.(type) {
		case int32:
			raw["rating"] = float64(typed)
		case int64:
			raw["rating"] = float64(typed)
		case float64:
			// already float64, keep as is
		default:
			raw["rating"] = 0.0
		}
	} else {
		raw["rating"] = 0.0
	}

	if val, ok := raw["inStock"]; ok {
		if _, isBool := val.(bool); !isBool {
			raw["inStock"] = false
		}
	} else {
		raw["inStock"] = false
	}

	data, err := bson.Marshal(raw)
	if err != nil {
		return models.Product{}, err
	}

	var p models.Product
	if err := bson.Unmarshal(data, &p); err != nil {
		return models.Product{}, err
	}

	p.IsDiscounted = isDiscounted(p.Price, p.OriginalPrice)

	return p, nil
}

func decodeProducts(ctx context.Context, cursor *mongo.Cursor) ([]models.Product, error) {
	products := make([]models.Product, 0)

	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}

		product, err := normalizeProductDocument(raw)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
