package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Orders are reconciled manually against offline payments, so
// an admin may move an order between any two statuses, including back to
// Processing.
const (
	StatusProcessing = "Processing"
	StatusPaid       = "Paid"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

// ValidStatus reports whether s is a member of the status enum.
func ValidStatus(s string) bool {
	switch s {
	case StatusProcessing, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// OrderItem captures product, quantity and the catalog price at the moment the
// order was created. Price is never recomputed from the catalog afterward.
type OrderItem struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Price     float64            `json:"price" bson:"price"`

	Product *Product `json:"product,omitempty" bson:"-"`
}

// Order is immutable after creation except for Status. OrderID is the
// human-facing identifier used for support lookups, distinct from the
// internal document id.
type Order struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	OrderID         string             `json:"order_id" bson:"order_id"`
	UserID          primitive.ObjectID `json:"user_id" bson:"user_id"`
	Items           []OrderItem        `json:"items" bson:"items"`
	TotalAmount     float64            `json:"total_amount" bson:"total_amount"`
	ShippingAddress string             `json:"shipping_address" bson:"shipping_address"`
	PaymentMethod   string             `json:"payment_method" bson:"payment_method"`
	Phone           string             `json:"phone" bson:"phone"`
	Status          string             `json:"status" bson:"status"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`

	User *User `json:"user,omitempty" bson:"-"`
}
