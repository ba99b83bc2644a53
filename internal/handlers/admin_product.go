package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

type createProductRequest struct {
	SKU           string   `json:"sku" binding:"required"`
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Price         *float64 `json:"price" binding:"required"`
	OriginalPrice *float64 `json:"originalPrice"`
	Category      string   `json:"category"`
	Images        []string `json:"images"`
	Rating        *float64 `json:"rating"`
	ReviewCount   *int     `json:"reviewCount"`
	InStock       *bool    `json:"inStock"`
	Features      []string `json:"features"`
}

type updateProductRequest struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Price         *float64  `json:"price"`
	OriginalPrice *float64  `json:"originalPrice"`
	Category      *string   `json:"category"`
	Images        *[]string `json:"images"`
	Rating        *float64  `json:"rating"`
	ReviewCount   *int      `json:"reviewCount"`
	InStock       *bool     `json:"inStock"`
	Features      *[]string `json:"features"`
}

func validateRating(rating float64) bool {
	return rating >= 0 && rating <= 5
}

// GET /admin/api/products — full catalog including out-of-stock items.
func GetAllProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{
			"isDeleted": bson.M{"$ne": true},
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("products").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		products, err := decodeProducts(ctx, cursor)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		products = filterProducts(products, productFilter{
			Category: c.Query("category"),
			Search:   c.Query("search"),
		})

		c.JSON(http.StatusOK, gin.H{"data": products})
	}
}

func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		sku := strings.TrimSpace(req.SKU)
		name := strings.TrimSpace(req.Name)
		if sku == "" || name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sku and name are required"})
			return
		}

		price := 0.0
		if req.Price != nil {
			price = *req.Price
		}
		originalPrice := 0.0
		if req.OriginalPrice != nil {
			originalPrice = *req.OriginalPrice
		}
		if err := validatePricing(price, req.Price != nil, originalPrice, req.OriginalPrice != nil); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rating := 0.0
		if req.Rating != nil {
			rating = *req.Rating
		}
		if !validateRating(rating) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 0 and 5"})
			return
		}

		reviewCount := 0
		if req.ReviewCount != nil {
			reviewCount = *req.ReviewCount
		}
		if reviewCount < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "reviewCount must be zero or greater"})
			return
		}

		inStock := true
		if req.InStock != nil {
			inStock = *req.InStock
		}

		now := time.Now()
		product := models.Product{
			SKU:           sku,
			Name:          name,
			Description:   strings.TrimSpace(req.Description),
			Price:         price,
			OriginalPrice: originalPrice,
			IsDiscounted:  isDiscounted(price, originalPrice),
			Category:      strings.TrimSpace(req.Category),
			Images:        models.StringList(req.Images),
			Rating:        rating,
			ReviewCount:   reviewCount,
			InStock:       inStock,
			Features:      models.StringList(req.Features),
			IsDeleted:     false,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			// The sku unique index reports duplicates; surface them as a
			// conflict instead of a generic failure.
			if mongo.IsDuplicateKeyError(err) {
				log.Println("[PRODUCT] [ERROR] duplicate sku:", sku)
				c.JSON(http.StatusConflict, gin.H{"error": "sku already exists"})
				return
			}
			log.Println("[PRODUCT] [ERROR] insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		product.ID = res.InsertedID.(primitive.ObjectID)
		log.Println("[PRODUCT] [INFO] product created:", product.ID.Hex())
		c.JSON(http.StatusCreated, product)
	}
}

func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req updateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		activeFilter := bson.M{
			"_id":       id,
			"isDeleted": bson.M{"$ne": true},
		}

		var existing models.Product
		err = db.Collection("products").FindOne(ctx, activeFilter).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		updateSet := bson.M{}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be blank"})
				return
			}
			updateSet["name"] = name
		}
		if req.Description != nil {
			updateSet["description"] = strings.TrimSpace(*req.Description)
		}
		if req.Price != nil || req.OriginalPrice != nil {
			price, originalPrice, err := resolvePricingUpdate(
				existing.Price,
				existing.OriginalPrice,
				req.Price,
				req.OriginalPrice,
			)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updateSet["price"] = price
			updateSet["originalPrice"] = originalPrice
		}
		if req.Category != nil {
			updateSet["category"] = strings.TrimSpace(*req.Category)
		}
		if req.Images != nil {
			updateSet["images"] = models.StringList(*req.Images)
		}
		if req.Rating != nil {
			if !validateRating(*req.Rating) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 0 and 5"})
				return
			}
			updateSet["rating"] = *req.Rating
		}
		if req.ReviewCount != nil {
			if *req.ReviewCount < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "reviewCount must be zero or greater"})
				return
			}
			updateSet["reviewCount"] = *req.ReviewCount
		}
		if req.InStock != nil {
			updateSet["inStock"] = *req.InStock
		}
		if req.Features != nil {
			updateSet["features"] = models.StringList(*req.Features)
		}

		if len(updateSet) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}
		updateSet["updatedAt"] = time.Now()

		result, err := db.Collection("products").UpdateOne(ctx, activeFilter, bson.M{"$set": updateSet})
		if err != nil {
			log.Println("[PRODUCT] [ERROR] update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		var raw bson.M
		if err := db.Collection("products").FindOne(ctx, activeFilter).Decode(&raw); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		updated, err := normalizeProductDocument(raw)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		now := time.Now()
		res, err := db.Collection("products").UpdateOne(
			ctx,
			bson.M{
				"_id":       id,
				"isDeleted": bson.M{"$ne": true},
			},
			bson.M{"$set": bson.M{
				"isDeleted": true,
				"deletedAt": now,
				"updatedAt": now,
			}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		log.Println("[PRODUCT] [INFO] product deleted:", id.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
