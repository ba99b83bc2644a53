package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SKU           string             `bson:"sku" json:"sku"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Price         float64            `bson:"price" json:"price"`
	OriginalPrice float64            `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	IsDiscounted  bool               `bson:"-" json:"isDiscounted"`
	Category      string             `bson:"category,omitempty" json:"category,omitempty"`
	Images        StringList         `bson:"images" json:"images"`
	Rating        float64            `bson:"rating" json:"rating"`
	ReviewCount   int                `bson:"reviewCount" json:"reviewCount"`
	InStock       bool               `bson:"inStock" json:"inStock"`
	Features      StringList         `bson:"features,omitempty" json:"features,omitempty"`
	IsDeleted     bool               `bson:"isDeleted" json:"isDeleted,omitempty"`
	DeletedAt     *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
