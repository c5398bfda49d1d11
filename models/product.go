package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry. Stock is a single integer; availability is the
// derived InStock flag set on reads, never a second stored field.
type Product struct {
	ID             primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Name           string               `json:"name" bson:"name"`
	Description    string               `json:"description" bson:"description"`
	Price          float64              `json:"price" bson:"price"`
	Brand          string               `json:"brand" bson:"brand"`
	Category       string               `json:"category" bson:"category"`
	Stock          int                  `json:"stock" bson:"stock"`
	Images         []string             `json:"images" bson:"images"`
	CompatibleWith []primitive.ObjectID `json:"compatible_with,omitempty" bson:"compatible_with,omitempty"`
	CreatedAt      time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at" bson:"updated_at"`

	InStock bool `json:"in_stock" bson:"-"`

	// Compatible carries the resolved compatibility links on detail reads.
	Compatible []Product `json:"compatible,omitempty" bson:"-"`
}

// Resolve fills the derived fields for display.
func (p *Product) Resolve() {
	p.InStock = p.Stock > 0
}
