package dto

import "encoding/json"

// Response is the generic envelope every backend endpoint wraps its
// payload in.
type Response[T any] struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Data      T      `json:"data"`
}

// Pagination carries server-side paging counters on list endpoints.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// PaginatedResponse is the envelope for paginated list endpoints. The
// pagination block is absent on some endpoints (wifi, quick links);
// callers fall back to len(Data) in that case.
type PaginatedResponse[T any] struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Timestamp  string      `json:"timestamp"`
	Data       T           `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// DecodeResponse unmarshals a raw backend body into a typed envelope.
func DecodeResponse[T any](raw json.RawMessage) (*Response[T], error) {
	var resp Response[T]
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DecodePaginatedResponse unmarshals a raw backend body into a typed
// paginated envelope.
func DecodePaginatedResponse[T any](raw json.RawMessage) (*PaginatedResponse[T], error) {
	var resp PaginatedResponse[T]
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
