// Package model defines the core domain entities for the catalog service.
package model

import "time"

// Item represents a single catalog record.
//
// Items are loaded wholesale from the backing JSON file and are immutable
// in memory except through explicit write endpoints.
//
// @Description Catalog item with identifier, name, and price
// @Example {"id": "550e8400-e29b-41d4-a716-446655440000", "name": "Widget", "price": 19.99}
type Item struct {
	// ID is the unique item identifier (UUID, assigned by the server on insert)
	ID string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Name is the item display name
	Name string `json:"name" example:"Widget"`
	// Price is the item price
	Price float64 `json:"price" example:"19.99"`
	// Category is an optional grouping label
	Category string `json:"category,omitempty" example:"hardware"`
	// CreatedAt is when the item was inserted (zero for seed data)
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Stats represents aggregate statistics over the full catalog.
//
// @Description Aggregate catalog statistics
// @Example {"total": 3, "average_price": 20}
type Stats struct {
	// Total is the number of items in the catalog
	Total int `json:"total" example:"3"`
	// AveragePrice is the mean of the price field, 0 for an empty catalog
	AveragePrice float64 `json:"average_price" example:"20"`
	// ComputedAt is when this snapshot was computed. It is internal cache
	// state and not part of the wire format.
	ComputedAt time.Time `json:"-"`
}

// Page represents one contiguous slice of the (optionally filtered) catalog.
// Items preserve original file order; len(Items) never exceeds Limit.
type Page struct {
	Items  []Item `json:"items"`
	Total  int    `json:"total" example:"42"`
	Offset int    `json:"offset" example:"0"`
	Limit  int    `json:"limit" example:"50"`
}
