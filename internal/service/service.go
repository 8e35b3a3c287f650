// Package service contains one stateless wrapper per backend resource.
// Each wrapper is constructed with the shared API client and passes the
// caller's token through on every request; none of them hold state of
// their own.
package service

import (
	"encoding/json"
	"net/url"

	"github.com/intradash/adminkit/internal/common/dto"
)

// withQuery appends an encoded query string to path when params is
// non-empty.
func withQuery(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}

// decodeOne unmarshals a single-entity envelope and returns its payload.
func decodeOne[T any](raw json.RawMessage) (*T, error) {
	resp, err := dto.DecodeResponse[T](raw)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// decodeMany unmarshals a list envelope without pagination and returns
// its payload.
func decodeMany[T any](raw json.RawMessage) ([]T, error) {
	resp, err := dto.DecodeResponse[[]T](raw)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}
