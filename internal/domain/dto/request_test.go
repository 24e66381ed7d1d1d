package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func TestCreateItemRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateItemRequest
		wantErr error
	}{
		{
			name: "valid request",
			req:  CreateItemRequest{Name: "Widget", Price: floatPtr(19.99)},
		},
		{
			name: "valid with zero price",
			req:  CreateItemRequest{Name: "Freebie", Price: floatPtr(0)},
		},
		{
			name:    "empty name",
			req:     CreateItemRequest{Price: floatPtr(10)},
			wantErr: ErrEmptyName,
		},
		{
			name:    "negative price",
			req:     CreateItemRequest{Name: "Widget", Price: floatPtr(-1)},
			wantErr: ErrNegativePrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseListItemsQuery(t *testing.T) {
	tests := []struct {
		name          string
		q             string
		offset, limit string
		want          ListItemsQuery
		wantErr       error
	}{
		{
			name: "all absent uses defaults",
			want: ListItemsQuery{Offset: 0, Limit: 50},
		},
		{
			name:   "explicit values",
			q:      "wid",
			offset: "10",
			limit:  "20",
			want:   ListItemsQuery{Query: "wid", Offset: 10, Limit: 20},
		},
		{
			name:  "limit clamped to max",
			limit: "9999",
			want:  ListItemsQuery{Limit: 500},
		},
		{
			name:  "explicit zero limit is honored",
			limit: "0",
			want:  ListItemsQuery{Limit: 0},
		},
		{
			name:    "non-numeric offset",
			offset:  "abc",
			wantErr: ErrInvalidOffset,
		},
		{
			name:    "negative offset",
			offset:  "-1",
			wantErr: ErrInvalidOffset,
		},
		{
			name:    "non-numeric limit",
			limit:   "ten",
			wantErr: ErrInvalidLimit,
		},
		{
			name:    "negative limit",
			limit:   "-5",
			wantErr: ErrInvalidLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseListItemsQuery(tt.q, tt.offset, tt.limit, 50, 500)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	assert.Equal(t, "offset: must be a non-negative integer", ErrInvalidOffset.Error())
}

func TestErrCodeFromStatus(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, ErrCodeFromStatus(404))
	assert.Equal(t, ErrCodeInvalidRequest, ErrCodeFromStatus(400))
	assert.Equal(t, ErrCodeRateLimit, ErrCodeFromStatus(429))
	assert.Equal(t, ErrCodeDataUnavailable, ErrCodeFromStatus(503))
	assert.Equal(t, ErrCodeInternal, ErrCodeFromStatus(500))
}
