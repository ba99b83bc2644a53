package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user account can hold.
const (
	RoleUser     = "user"
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Address labels.
const (
	LabelHome  = "home"
	LabelWork  = "work"
	LabelOther = "other"
)

// Address represents a single postal address entry embedded in a user
// document. At most one address per user carries IsDefault=true.
type Address struct {
	ID        string `bson:"id" json:"id"`
	Street    string `bson:"street" json:"street"`
	City      string `bson:"city" json:"city"`
	State     string `bson:"state" json:"state"`
	ZipCode   string `bson:"zipCode" json:"zipCode"`
	Country   string `bson:"country" json:"country"`
	Label     string `bson:"label" json:"label"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
	IsDefault bool   `bson:"isDefault" json:"isDefault"`
}

// NotificationPrefs holds the per-user notification toggles.
type NotificationPrefs struct {
	OrderUpdates bool `bson:"orderUpdates" json:"orderUpdates"`
	Promotions   bool `bson:"promotions" json:"promotions"`
	Newsletter   bool `bson:"newsletter" json:"newsletter"`
}

// User represents the application user account.
type User struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email         string               `bson:"email" json:"email"`
	PasswordHash  string               `bson:"passwordHash" json:"-"`
	Name          string               `bson:"name" json:"name"`
	Phone         string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Role          string               `bson:"role" json:"role"`
	Addresses     []Address            `bson:"addresses" json:"addresses"`
	Wishlist      []primitive.ObjectID `bson:"wishlist,omitempty" json:"wishlist,omitempty"`
	Notifications NotificationPrefs    `bson:"notifications" json:"notifications"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// ValidRole reports whether role is one of the recognized account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleCustomer, RoleAdmin:
		return true
	}
	return false
}

// ValidAddressLabel reports whether label is within the address label set.
func ValidAddressLabel(label string) bool {
	switch label {
	case LabelHome, LabelWork, LabelOther:
		return true
	}
	return false
}
