package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

type createAddressRequest struct {
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	ZipCode   string `json:"zipCode" binding:"required"`
	Country   string `json:"country" binding:"required"`
	Label     string `json:"label" binding:"required"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"isDefault"`
}

type updateAddressRequest struct {
	Street    *string `json:"street"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	ZipCode   *string `json:"zipCode"`
	Country   *string `json:"country"`
	Label     *string `json:"label"`
	Phone     *string `json:"phone"`
	IsDefault *bool   `json:"isDefault"`
}

func GetUserAddresses(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, ok := loadUser(ctx, c, db, userID, "[ADDRESS]")
		if !ok {
			return
		}

		c.JSON(http.StatusOK, gin.H{"addresses": addressListOrEmpty(user.Addresses)})
	}
}

func CreateUserAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var req createAddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if err := validateAddressInput(addressInput(req)); err != nil {
			respondAddressRuleError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, ok := loadUser(ctx, c, db, userID, "[ADDRESS]")
		if !ok {
			return
		}

		address := models.Address{
			ID:      uuid.NewString(),
			Street:  strings.TrimSpace(req.Street),
			City:    strings.TrimSpace(req.City),
			State:   strings.TrimSpace(req.State),
			ZipCode: strings.TrimSpace(req.ZipCode),
			Country: strings.TrimSpace(req.Country),
			Label:   strings.TrimSpace(req.Label),
			Phone:   strings.TrimSpace(req.Phone),
		}

		updated := appendAddress(user.Addresses, address, req.IsDefault)

		if !persistAddresses(ctx, c, db, userID, updated) {
			return
		}

		log.Println("[ADDRESS] [INFO] address created:", address.ID)
		c.JSON(http.StatusCreated, gin.H{"addresses": updated})
	}
}

func UpdateUserAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		addressID := strings.TrimSpace(c.Param("id"))
		if addressID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
			return
		}

		var req updateAddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if err := validateAddressPatch(addressPatch(req)); err != nil {
			respondAddressRuleError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, ok := loadUser(ctx, c, db, userID, "[ADDRESS]")
		if !ok {
			return
		}

		updated, err := applyAddressPatch(user.Addresses, addressID, addressPatch(req))
		if err != nil {
			respondAddressRuleError(c, err)
			return
		}

		if !persistAddresses(ctx, c, db, userID, updated) {
			return
		}

		log.Println("[ADDRESS] [INFO] address updated:", addressID)
		c.JSON(http.StatusOK, gin.H{"addresses": updated})
	}
}

func DeleteUserAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		addressID := strings.TrimSpace(c.Param("id"))
		if addressID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, ok := loadUser(ctx, c, db, userID, "[ADDRESS]")
		if !ok {
			return
		}

		updated, err := removeAddress(user.Addresses, addressID)
		if err != nil {
			respondAddressRuleError(c, err)
			return
		}

		if !persistAddresses(ctx, c, db, userID, updated) {
			return
		}

		log.Println("[ADDRESS] [INFO] address deleted:", addressID)
		c.JSON(http.StatusOK, gin.H{"addresses": addressListOrEmpty(updated)})
	}
}

// persistAddresses writes the modified list back to the user document.
// The normalize pass runs unconditionally so a duplicated default flag
// never reaches the store, whatever code path produced the list.
func persistAddresses(ctx context.Context, c *gin.Context, db *mongo.Database, userID primitive.ObjectID, addresses []models.Address) bool {
	addresses = normalizeDefaultFlags(addresses)

	_, err := db.Collection("users").UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{
			"addresses": addresses,
			"updatedAt": time.Now(),
		},
	})
	if err != nil {
		log.Println("[ADDRESS] [ERROR] persist addresses failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return false
	}
	return true
}

func respondAddressRuleError(c *gin.Context, err error) {
	var vErr validationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": vErr.Details,
		})
		return
	}
	if errors.Is(err, errAddressNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func addressListOrEmpty(addresses []models.Address) []models.Address {
	if addresses == nil {
		return []models.Address{}
	}
	return addresses
}
