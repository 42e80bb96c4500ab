package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry. Rating and Reviews are set at creation and not
// mutated by any covered operation.
type Product struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Description    string             `json:"description" bson:"description"`
	Category       string             `json:"category,omitempty" bson:"category,omitempty"`
	Price          float64            `json:"price" bson:"price"`
	OriginalPrice  float64            `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
	Stock          int64              `json:"stock" bson:"stock"`
	SKU            string             `json:"sku" bson:"sku"`
	Supplier       string             `json:"supplier,omitempty" bson:"supplier,omitempty"`
	Images         []string           `json:"images,omitempty" bson:"images,omitempty"`
	Specifications map[string]string  `json:"specifications,omitempty" bson:"specifications,omitempty"`
	Features       []string           `json:"features,omitempty" bson:"features,omitempty"`
	Rating         float64            `json:"rating" bson:"rating"`
	Reviews        int64              `json:"reviews" bson:"reviews"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}
