// Package provider contains the data-provider dispatchers: the seam
// that maps a (resource, verb) pair onto a concrete backend call and
// reshapes the response into a uniform envelope.
package provider

import (
	"context"
	"encoding/json"
)

// Operator is a filter comparison operator.
type Operator string

const (
	OperatorEq       Operator = "eq"
	OperatorContains Operator = "contains"
	OperatorIn       Operator = "in"
)

// Filter is one generic (field, operator, value) constraint. Fields a
// resource does not recognize are silently dropped.
type Filter struct {
	Field    string
	Operator Operator
	Value    any
}

// Pagination selects a page of a listing.
type Pagination struct {
	Current  int
	PageSize int
}

// ListParams parameterizes a list call.
type ListParams struct {
	Resource   string
	Pagination *Pagination
	Filters    []Filter
	Meta       map[string]any
}

// GetOneParams parameterizes a single-record fetch.
type GetOneParams struct {
	Resource string
	ID       string
	Meta     map[string]any
}

// GetManyParams parameterizes a multi-record fetch by ID.
type GetManyParams struct {
	Resource string
	IDs      []string
}

// CreateParams parameterizes a create call.
type CreateParams struct {
	Resource  string
	Variables map[string]any
}

// CreateManyParams parameterizes a bulk create.
type CreateManyParams struct {
	Resource  string
	Variables []map[string]any
}

// UpdateParams parameterizes an update call.
type UpdateParams struct {
	Resource  string
	ID        string
	Variables map[string]any
	Meta      map[string]any
}

// UpdateManyParams parameterizes a bulk update.
type UpdateManyParams struct {
	Resource  string
	IDs       []string
	Variables map[string]any
}

// DeleteParams parameterizes a delete call. For some resources the
// identifying fields live in Variables rather than ID.
type DeleteParams struct {
	Resource  string
	ID        string
	Variables map[string]any
	Meta      map[string]any
}

// DeleteManyParams parameterizes a bulk delete.
type DeleteManyParams struct {
	Resource string
	IDs      []string
}

// CustomParams parameterizes a custom endpoint call routed by URL
// pattern rather than resource name.
type CustomParams struct {
	URL     string
	Method  string
	Payload map[string]any
	Meta    map[string]any
}

// ListResult is the uniform list envelope. Total falls back to
// len(Data) for backends that do not report a server-side total, so it
// must not be read as pagination truth for those resources.
type ListResult struct {
	Data  []any
	Total int
}

// GetResult is the uniform single-record envelope.
type GetResult struct {
	Data any
}

// ManyResult is the uniform multi-record envelope.
type ManyResult struct {
	Data []any
}

// Provider is the generic CRUD interface the UI layer consumes. Every
// error crossing this boundary is an *errorx.APIError.
type Provider interface {
	List(ctx context.Context, p ListParams) (*ListResult, error)
	GetOne(ctx context.Context, p GetOneParams) (*GetResult, error)
	GetMany(ctx context.Context, p GetManyParams) (*ManyResult, error)
	Create(ctx context.Context, p CreateParams) (*GetResult, error)
	CreateMany(ctx context.Context, p CreateManyParams) (*ManyResult, error)
	Update(ctx context.Context, p UpdateParams) (*GetResult, error)
	UpdateMany(ctx context.Context, p UpdateManyParams) (*ManyResult, error)
	Delete(ctx context.Context, p DeleteParams) (*GetResult, error)
	DeleteMany(ctx context.Context, p DeleteManyParams) (*ManyResult, error)
	Custom(ctx context.Context, p CustomParams) (*GetResult, error)
	APIURL() string
}

// toRecords erases a typed slice into the uniform record slice.
func toRecords[T any](items []T) []any {
	records := make([]any, len(items))
	for i, item := range items {
		records[i] = item
	}
	return records
}

// decodeVars converts a generic variables map into a typed request via
// a JSON round trip. Unknown keys are dropped, matching the
// recognized-fields-only policy of the service layer.
func decodeVars[T any](vars map[string]any) (T, error) {
	var out T
	data, err := json.Marshal(vars)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}

// stringVar reads a string field from a variables map.
func stringVar(vars map[string]any, key string) string {
	if vars == nil {
		return ""
	}
	if v, ok := vars[key].(string); ok {
		return v
	}
	return ""
}

// boolVar reads a bool field from a variables map.
func boolVar(vars map[string]any, key string) (bool, bool) {
	if vars == nil {
		return false, false
	}
	v, ok := vars[key].(bool)
	return v, ok
}

// stringSliceVar reads a string-slice field from a variables map,
// accepting both []string and []any with string elements.
func stringSliceVar(vars map[string]any, key string) []string {
	if vars == nil {
		return nil
	}
	switch v := vars[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
