package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/guttosm/catalog-service/internal/domain/dto"
)

// Sentinel errors matched by errors.Is against *APIError responses.
var (
	// ErrNotFound indicates an unknown item id.
	ErrNotFound = errors.New("not found")
	// ErrInvalidParameter indicates a malformed query or body.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrUnauthorized indicates a missing or invalid API key.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDataUnavailable indicates the server could not read its backing store.
	ErrDataUnavailable = errors.New("data unavailable")
)

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("catalog: %s (%d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("catalog: %s (%d)", e.Code, e.StatusCode)
}

// Unwrap maps the error code to its sentinel so errors.Is works.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case dto.ErrCodeNotFound:
		return ErrNotFound
	case dto.ErrCodeInvalidRequest:
		return ErrInvalidParameter
	case dto.ErrCodeUnauthorized:
		return ErrUnauthorized
	case dto.ErrCodeDataUnavailable:
		return ErrDataUnavailable
	default:
		return nil
	}
}

// decodeAPIError builds an APIError from a non-2xx response. A body that is
// not the standard error shape still yields a usable APIError.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Code:       dto.ErrCodeFromStatus(resp.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil && len(body) > 0 {
		var errResp dto.ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			apiErr.Code = errResp.Error
			apiErr.Message = errResp.Message
			apiErr.RequestID = errResp.RequestID
		}
	}

	return apiErr
}
