package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one product held in a user's cart.
type CartItem struct {
	ProductID string `json:"productId" bson:"productId"`
	Quantity  int64  `json:"quantity" bson:"quantity"`
}

// User is a profile keyed by email. Role is assigned at creation and is
// never settable through the profile update surface.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	SubjectID string             `json:"subjectId,omitempty" bson:"subjectId,omitempty"`
	Name      string             `json:"name,omitempty" bson:"name,omitempty"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address   string             `json:"address,omitempty" bson:"address,omitempty"`
	Role      Role               `json:"role" bson:"role"`
	Cart      []CartItem         `json:"cart" bson:"cart"`
	Wishlist  []string           `json:"wishlist" bson:"wishlist"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
