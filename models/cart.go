package models

import "time"

// CartItem references a product by its hex object id. Quantity is always >= 1;
// re-adding a product overwrites the quantity instead of appending.
type CartItem struct {
	ProductID string `json:"product_id" bson:"product_id"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

// Cart is the per-user staging list prior to checkout. Exactly one per user,
// created on first write and cleared (not deleted) when an order is placed.
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ResolvedCartItem is a cart line joined with its product document for display.
// Product is nil when the catalog entry has been deleted since the item was added.
type ResolvedCartItem struct {
	ProductID string   `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}

// ResolvedCart is what cart reads return to the client.
type ResolvedCart struct {
	UserID    string             `json:"user_id"`
	Items     []ResolvedCartItem `json:"items"`
	UpdatedAt time.Time          `json:"updated_at"`
}
