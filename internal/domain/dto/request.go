// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import "strconv"

// CreateItemRequest represents the JSON request body for the item creation endpoint.
//
// Name and Price are required; Price must not be negative.
// Validation is performed using gin's binding tags plus Validate.
//
// @Description Request to insert a new catalog item
// @Example {"name": "Widget", "price": 19.99}
// @Example {"name": "Widget", "price": 19.99, "category": "hardware"}
type CreateItemRequest struct {
	// Name is the item display name. Must not be empty.
	Name string `json:"name" binding:"required" example:"Widget"`
	// Price is the item price. Must not be negative.
	Price *float64 `json:"price" binding:"required" example:"19.99" minimum:"0"`
	// Category is an optional grouping label.
	Category string `json:"category" example:"hardware"`
} // @name CreateItemRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

var (
	// ErrEmptyName is returned when name is missing or blank.
	ErrEmptyName = &ValidationError{
		Field:   "name",
		Message: "must not be empty",
	}
	// ErrNegativePrice is returned when price is negative.
	ErrNegativePrice = &ValidationError{
		Field:   "price",
		Message: "must not be negative",
	}
	// ErrInvalidOffset is returned when offset is not a non-negative integer.
	ErrInvalidOffset = &ValidationError{
		Field:   "offset",
		Message: "must be a non-negative integer",
	}
	// ErrInvalidLimit is returned when limit is not a non-negative integer.
	ErrInvalidLimit = &ValidationError{
		Field:   "limit",
		Message: "must be a non-negative integer",
	}
)

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate performs custom validation on the request.
// Returns an error if validation fails, nil otherwise.
func (r *CreateItemRequest) Validate() error {
	if r.Name == "" {
		return ErrEmptyName
	}
	if r.Price != nil && *r.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// ListItemsQuery holds the parsed query parameters of the list endpoint.
type ListItemsQuery struct {
	// Query is the optional case-insensitive substring filter on name.
	Query string
	// Offset is the index of the first item to return.
	Offset int
	// Limit is the maximum number of items to return.
	Limit int
}

// ParseListItemsQuery parses raw q/offset/limit query values.
//
// Absent offset and limit fall back to 0 and defaultLimit. Malformed or
// negative values fail with a ValidationError rather than being silently
// normalized. Limits above maxLimit are clamped.
func ParseListItemsQuery(q, offset, limit string, defaultLimit, maxLimit int) (ListItemsQuery, error) {
	parsed := ListItemsQuery{Query: q, Limit: defaultLimit}

	if offset != "" {
		v, err := strconv.Atoi(offset)
		if err != nil || v < 0 {
			return ListItemsQuery{}, ErrInvalidOffset
		}
		parsed.Offset = v
	}

	if limit != "" {
		v, err := strconv.Atoi(limit)
		if err != nil || v < 0 {
			return ListItemsQuery{}, ErrInvalidLimit
		}
		parsed.Limit = v
	}

	if maxLimit > 0 && parsed.Limit > maxLimit {
		parsed.Limit = maxLimit
	}

	return parsed, nil
}
