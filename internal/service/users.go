package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/intradash/adminkit/internal/apiclient"
	"github.com/intradash/adminkit/internal/common/dto"
)

// Users wraps the user endpoints. The wrapper is stateless: the token
// is passed per call and no method mutates wrapper state.
type Users struct {
	api *apiclient.Client
}

// NewUsers creates a user service on top of the API client.
func NewUsers(api *apiclient.Client) *Users {
	return &Users{api: api}
}

// List fetches a page of users. Only recognized query fields are
// forwarded.
func (s *Users) List(ctx context.Context, q dto.UsersListQuery, token string) ([]dto.UserListItem, *dto.Pagination, error) {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Role != "" {
		params.Set("role", string(q.Role))
	}
	if q.Department != "" {
		params.Set("department", q.Department)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.IsActive != "" {
		params.Set("isActive", q.IsActive)
	}

	raw, err := s.api.Get(ctx, withQuery("/users/", params), token)
	if err != nil {
		return nil, nil, err
	}
	resp, err := dto.DecodePaginatedResponse[[]dto.UserListItem](raw)
	if err != nil {
		return nil, nil, err
	}
	return resp.Data, resp.Pagination, nil
}

// Me fetches the authenticated user.
func (s *Users) Me(ctx context.Context, token string) (*dto.UserDetailed, error) {
	raw, err := s.api.Get(ctx, "/auth/me", token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.UserDetailed](raw)
}

// GetByID fetches a single user with cards expanded.
func (s *Users) GetByID(ctx context.Context, id, token string) (*dto.UserDetailed, error) {
	raw, err := s.api.Get(ctx, "/users/"+id, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.UserDetailed](raw)
}

// Create registers a new user account.
func (s *Users) Create(ctx context.Context, req dto.CreateUserRequest, token string) (*dto.UserDetailed, error) {
	raw, err := s.api.Post(ctx, "/users/create", req, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.UserDetailed](raw)
}

// UpdateBasicInfo patches identity fields (email, username, name, role,
// active flag).
func (s *Users) UpdateBasicInfo(ctx context.Context, id string, req dto.UpdateBasicInfoRequest, token string) (*dto.UserDetailed, error) {
	raw, err := s.api.Patch(ctx, fmt.Sprintf("/users/%s/update", id), req, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.UserDetailed](raw)
}

// UpdatePersonalInfo patches the personal-info sub-record. The response
// is the personal-info shape, not the full user; callers needing the
// merged record follow up with GetByID.
func (s *Users) UpdatePersonalInfo(ctx context.Context, id string, req dto.UpdatePersonalInfoRequest, token string) (*dto.PersonalInfo, error) {
	raw, err := s.api.Patch(ctx, fmt.Sprintf("/users/%s/personal-info", id), req, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.PersonalInfo](raw)
}

// UpdateRole changes a user's role.
func (s *Users) UpdateRole(ctx context.Context, id string, role dto.Role, token string) (*dto.UserDetailed, error) {
	raw, err := s.api.Patch(ctx, fmt.Sprintf("/users/%s/role", id), dto.UpdateRoleRequest{Role: role}, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.UserDetailed](raw)
}

// UpdateStatus toggles a user's active flag. Deactivation is the only
// form of user deletion: accounts are never removed physically.
func (s *Users) UpdateStatus(ctx context.Context, id string, isActive bool, token string) (*dto.UserDetailed, error) {
	raw, err := s.api.Patch(ctx, fmt.Sprintf("/users/%s/status", id), dto.UpdateStatusRequest{IsActive: isActive}, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.UserDetailed](raw)
}

// ResetPassword sets a new password for a user.
func (s *Users) ResetPassword(ctx context.Context, id, newPassword, token string) error {
	_, err := s.api.Patch(ctx, fmt.Sprintf("/users/%s/reset-password", id), dto.ResetPasswordRequest{NewPassword: newPassword}, token)
	return err
}

// AdminBulkUpdate applies one action to many users in a single call.
func (s *Users) AdminBulkUpdate(ctx context.Context, req dto.AdminBulkUpdateRequest, token string) (json.RawMessage, error) {
	return s.api.Patch(ctx, "/admin/users/bulk-update", req, token)
}
