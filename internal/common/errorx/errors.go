package errorx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// Category identifies where in the request lifecycle an error was raised.
type Category string

const (
	// CategoryValidation marks errors raised locally before any network call
	CategoryValidation Category = "validation"
	// CategoryNetwork marks errors where the request never reached the server
	CategoryNetwork Category = "network"
	// CategoryUnauthorized marks 401 responses; callers treat these as an
	// expired session
	CategoryUnauthorized Category = "unauthorized"
	// CategoryUnsupportedResource marks provider-level dispatch failures
	CategoryUnsupportedResource Category = "unsupported_resource"
	// CategoryAPI marks any other non-2xx response
	CategoryAPI Category = "api"
)

// APIError is the structured error shape every failure is normalized
// into before it crosses the provider boundary.
type APIError struct {
	Name      string         `json:"name"`
	Category  Category       `json:"category"`
	Status    int            `json:"status"`
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	ErrorID   string         `json:"errorId"`
	Timestamp time.Time      `json:"timestamp"`
	Details   map[string]any `json:"details,omitempty"`
	Resource  string         `json:"resource,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Category, e.Message)
}

// WithDetail attaches a key/value pair to the error details.
func (e *APIError) WithDetail(key string, value any) *APIError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// NewValidation builds a local validation error. No network call has been
// made when one of these is returned.
func NewValidation(message string) *APIError {
	return &APIError{
		Name:      "ValidationError",
		Category:  CategoryValidation,
		Status:    http.StatusBadRequest,
		Code:      "VALIDATION_ERROR",
		Message:   message,
		ErrorID:   "validation",
		Timestamp: time.Now().UTC(),
	}
}

// NewNetwork builds the error shape for transport failures. Status 0
// distinguishes "never reached the server" from backend rejections.
func NewNetwork(cause error) *APIError {
	e := &APIError{
		Name:      "NetworkError",
		Category:  CategoryNetwork,
		Status:    0,
		Code:      "NETWORK_ERROR",
		Message:   "connection failed, check network connectivity",
		ErrorID:   "network",
		Timestamp: time.Now().UTC(),
	}
	if cause != nil {
		e.WithDetail("cause", cause.Error())
	}
	return e
}

// NewUnsupportedResource builds the dispatch error for a (resource, verb)
// pair unknown to every route table. It carries the resource name and must
// propagate to the caller unchanged.
func NewUnsupportedResource(resource string) *APIError {
	return &APIError{
		Name:      "UnsupportedResourceError",
		Category:  CategoryUnsupportedResource,
		Status:    http.StatusBadRequest,
		Code:      "UNSUPPORTED_RESOURCE",
		Message:   fmt.Sprintf("unsupported resource: %s", resource),
		ErrorID:   "unsupported-resource",
		Timestamp: time.Now().UTC(),
		Resource:  resource,
	}
}

// FromResponse builds an APIError from a non-2xx backend response. The
// body is treated as best-effort JSON: absent or unparseable fields fall
// back to defaults derived from the HTTP status line.
func FromResponse(status int, statusText string, body []byte) *APIError {
	e := &APIError{
		Name:      "ApiError",
		Category:  CategoryAPI,
		Status:    status,
		Code:      "UNKNOWN_ERROR",
		Message:   fmt.Sprintf("HTTP %d: %s", status, statusText),
		ErrorID:   "unknown",
		Timestamp: time.Now().UTC(),
	}
	if status == http.StatusUnauthorized {
		e.Name = "UnauthorizedError"
		e.Category = CategoryUnauthorized
	}

	if !gjson.ValidBytes(body) {
		return e
	}
	if v := gjson.GetBytes(body, "error"); v.Exists() && v.String() != "" {
		e.Name = v.String()
	}
	if v := gjson.GetBytes(body, "message"); v.Exists() && v.String() != "" {
		e.Message = v.String()
	}
	if v := gjson.GetBytes(body, "code"); v.Exists() && v.String() != "" {
		e.Code = v.String()
	}
	if v := gjson.GetBytes(body, "errorId"); v.Exists() && v.String() != "" {
		e.ErrorID = v.String()
	}
	if v := gjson.GetBytes(body, "timestamp"); v.Exists() {
		if ts, err := time.Parse(time.RFC3339, v.String()); err == nil {
			e.Timestamp = ts
		}
	}
	if v := gjson.GetBytes(body, "details"); v.Exists() && v.IsObject() {
		details := make(map[string]any)
		if err := json.Unmarshal([]byte(v.Raw), &details); err == nil {
			e.Details = details
		}
	}
	return e
}

// Normalize folds any error into an APIError. Existing APIErrors pass
// through untouched so dispatch errors keep their identity.
func Normalize(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &APIError{
		Name:      "ApiError",
		Category:  CategoryAPI,
		Status:    http.StatusInternalServerError,
		Code:      "UNKNOWN_ERROR",
		Message:   err.Error(),
		ErrorID:   "unknown",
		Timestamp: time.Now().UTC(),
	}
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsUnsupportedResource reports whether err is a dispatch failure.
func IsUnsupportedResource(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Category == CategoryUnsupportedResource
}

// IsNetwork reports whether err is a transport failure that never reached
// the server.
func IsNetwork(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Category == CategoryNetwork
}

// IsValidation reports whether err was raised locally before any network
// call.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Category == CategoryValidation
}
