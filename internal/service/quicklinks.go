package service

import (
	"context"
	"net/url"

	"github.com/intradash/adminkit/internal/apiclient"
	"github.com/intradash/adminkit/internal/common/dto"
)

// QuickLinks wraps the quick-link configuration endpoints.
type QuickLinks struct {
	api *apiclient.Client
}

// NewQuickLinks creates a quick-link service on top of the API client.
func NewQuickLinks(api *apiclient.Client) *QuickLinks {
	return &QuickLinks{api: api}
}

// List fetches quick links with optional category and activity filters.
func (s *QuickLinks) List(ctx context.Context, q dto.QuickLinksListQuery, token string) ([]dto.QuickLink, error) {
	params := url.Values{}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.IsActive != "" {
		params.Set("isActive", q.IsActive)
	}

	raw, err := s.api.Get(ctx, withQuery("/config/quick-links/", params), token)
	if err != nil {
		return nil, err
	}
	return decodeMany[dto.QuickLink](raw)
}

// GetByID fetches a single quick link.
func (s *QuickLinks) GetByID(ctx context.Context, id, token string) (*dto.QuickLink, error) {
	raw, err := s.api.Get(ctx, "/config/quick-links/"+id, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.QuickLink](raw)
}

// Create registers a quick link.
func (s *QuickLinks) Create(ctx context.Context, req dto.CreateQuickLinkRequest, token string) (*dto.QuickLink, error) {
	raw, err := s.api.Post(ctx, "/config/quick-links/", req, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.QuickLink](raw)
}

// Update patches a quick link.
func (s *QuickLinks) Update(ctx context.Context, id string, req dto.UpdateQuickLinkRequest, token string) (*dto.QuickLink, error) {
	raw, err := s.api.Patch(ctx, "/config/quick-links/"+id, req, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.QuickLink](raw)
}

// Delete removes a quick link.
func (s *QuickLinks) Delete(ctx context.Context, id, token string) error {
	_, err := s.api.Delete(ctx, "/config/quick-links/"+id, token)
	return err
}
