package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/intradash/adminkit/internal/apiclient"
	"github.com/intradash/adminkit/internal/common/dto"
)

// Cards wraps the card endpoints.
type Cards struct {
	api *apiclient.Client
}

// NewCards creates a card service on top of the API client.
func NewCards(api *apiclient.Client) *Cards {
	return &Cards{api: api}
}

// List fetches a page of cards.
func (s *Cards) List(ctx context.Context, q dto.CardsListQuery, token string) ([]dto.CardListItem, *dto.Pagination, error) {
	params := url.Values{}
	if q.Type != "" {
		params.Set("type", string(q.Type))
	}
	if q.IsActive != "" {
		params.Set("isActive", q.IsActive)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.SortBy != "" {
		params.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		params.Set("sortOrder", q.SortOrder)
	}

	raw, err := s.api.Get(ctx, withQuery("/cards/", params), token)
	if err != nil {
		return nil, nil, err
	}
	resp, err := dto.DecodePaginatedResponse[[]dto.CardListItem](raw)
	if err != nil {
		return nil, nil, err
	}
	return resp.Data, resp.Pagination, nil
}

// MyCards fetches the cards assigned to the authenticated user.
func (s *Cards) MyCards(ctx context.Context, token string) ([]dto.MyCardItem, error) {
	raw, err := s.api.Get(ctx, "/cards/my-cards", token)
	if err != nil {
		return nil, err
	}
	return decodeMany[dto.MyCardItem](raw)
}

// GetByID fetches a single card.
func (s *Cards) GetByID(ctx context.Context, id, token string) (*dto.Card, error) {
	raw, err := s.api.Get(ctx, "/cards/"+id, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.Card](raw)
}

// Create registers a new card.
func (s *Cards) Create(ctx context.Context, req dto.CreateCardRequest, token string) (*dto.Card, error) {
	raw, err := s.api.Post(ctx, "/cards/", req, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.Card](raw)
}

// Update patches a card.
func (s *Cards) Update(ctx context.Context, id string, req dto.UpdateCardRequest, token string) (*dto.Card, error) {
	raw, err := s.api.Patch(ctx, "/cards/"+id, req, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.Card](raw)
}

// AssignToUser grants a card to a user with optional overrides.
func (s *Cards) AssignToUser(ctx context.Context, cardID, userID string, req dto.AssignCardRequest, token string) (*dto.UserCardAssignment, error) {
	raw, err := s.api.Post(ctx, fmt.Sprintf("/cards/%s/assign/%s", cardID, userID), req, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.UserCardAssignment](raw)
}

// UnassignFromUser revokes a card from a user.
func (s *Cards) UnassignFromUser(ctx context.Context, cardID, userID, token string) error {
	_, err := s.api.Delete(ctx, fmt.Sprintf("/cards/%s/assign/%s", cardID, userID), token)
	return err
}

// UpdateFeatured toggles the featured flag on the current user's
// assignment of a card.
func (s *Cards) UpdateFeatured(ctx context.Context, cardID string, isFeatured bool, token string) (*dto.UserCardAssignment, error) {
	raw, err := s.api.Patch(ctx, fmt.Sprintf("/cards/%s/featured", cardID), dto.UpdateFeaturedRequest{IsFeatured: isFeatured}, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.UserCardAssignment](raw)
}

// SoftDelete removes all assignments of a card but keeps the card
// itself. The result reports how many assignments were removed.
func (s *Cards) SoftDelete(ctx context.Context, id, token string) (*dto.SoftDeleteCardResult, error) {
	raw, err := s.api.Delete(ctx, "/cards/"+id, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.SoftDeleteCardResult](raw)
}

// Delete removes the card row and cascades assignment removal. This is
// the destructive variant; SoftDelete keeps the card.
func (s *Cards) Delete(ctx context.Context, id, token string) (*dto.DeleteCardResult, error) {
	raw, err := s.api.Delete(ctx, fmt.Sprintf("/cards/%s/delete", id), token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.DeleteCardResult](raw)
}
