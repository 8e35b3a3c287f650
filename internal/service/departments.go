package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/intradash/adminkit/internal/apiclient"
	"github.com/intradash/adminkit/internal/common/dto"
)

// Departments wraps the department endpoints, including user and card
// assignment management.
type Departments struct {
	api *apiclient.Client
}

// NewDepartments creates a department service on top of the API client.
func NewDepartments(api *apiclient.Client) *Departments {
	return &Departments{api: api}
}

// List fetches a page of departments.
func (s *Departments) List(ctx context.Context, q dto.DepartmentsListQuery, token string) ([]dto.DepartmentListItem, *dto.Pagination, error) {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.IsActive != "" {
		params.Set("isActive", q.IsActive)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.SortBy != "" {
		params.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		params.Set("sortOrder", q.SortOrder)
	}

	raw, err := s.api.Get(ctx, withQuery("/departments/", params), token)
	if err != nil {
		return nil, nil, err
	}
	resp, err := dto.DecodePaginatedResponse[[]dto.DepartmentListItem](raw)
	if err != nil {
		return nil, nil, err
	}
	return resp.Data, resp.Pagination, nil
}

// GetByID fetches a department with users and cards expanded.
func (s *Departments) GetByID(ctx context.Context, id, token string) (*dto.DepartmentDetailed, error) {
	raw, err := s.api.Get(ctx, "/departments/"+id, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.DepartmentDetailed](raw)
}

// GetBySlug fetches a department by its URL-safe slug.
func (s *Departments) GetBySlug(ctx context.Context, slug, token string) (*dto.DepartmentDetailed, error) {
	raw, err := s.api.Get(ctx, "/departments/slug/"+slug, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.DepartmentDetailed](raw)
}

// Create registers a new department.
func (s *Departments) Create(ctx context.Context, req dto.CreateDepartmentRequest, token string) (*dto.DepartmentDetailed, error) {
	raw, err := s.api.Post(ctx, "/departments/", req, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.DepartmentDetailed](raw)
}

// Update patches a department.
func (s *Departments) Update(ctx context.Context, id string, req dto.UpdateDepartmentRequest, token string) (*dto.DepartmentDetailed, error) {
	raw, err := s.api.Patch(ctx, "/departments/"+id, req, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.DepartmentDetailed](raw)
}

// Delete removes a department.
func (s *Departments) Delete(ctx context.Context, id, token string) error {
	_, err := s.api.Delete(ctx, "/departments/"+id, token)
	return err
}

// AssignUser adds a user to a department with optional head status.
func (s *Departments) AssignUser(ctx context.Context, departmentID, userID string, req dto.AssignUserToDepartmentRequest, token string) (*dto.UserDepartmentAssignment, error) {
	raw, err := s.api.Post(ctx, fmt.Sprintf("/departments/%s/users/%s", departmentID, userID), req, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.UserDepartmentAssignment](raw)
}

// RemoveUser removes a user from a department.
func (s *Departments) RemoveUser(ctx context.Context, departmentID, userID, token string) error {
	_, err := s.api.Delete(ctx, fmt.Sprintf("/departments/%s/users/%s", departmentID, userID), token)
	return err
}

// Cards fetches the cards granted to a department.
func (s *Departments) Cards(ctx context.Context, departmentID, token string) ([]dto.DepartmentCardDetailed, error) {
	raw, err := s.api.Get(ctx, fmt.Sprintf("/departments/%s/cards", departmentID), token)
	if err != nil {
		return nil, err
	}
	return decodeMany[dto.DepartmentCardDetailed](raw)
}

// AssignCard grants a card to a department with edit/delete permissions.
func (s *Departments) AssignCard(ctx context.Context, departmentID, cardID string, req dto.AssignCardToDepartmentRequest, token string) (*dto.CardDepartmentAssignment, error) {
	raw, err := s.api.Post(ctx, fmt.Sprintf("/departments/%s/cards/%s", departmentID, cardID), req, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.CardDepartmentAssignment](raw)
}

// RemoveCard revokes a card from a department.
func (s *Departments) RemoveCard(ctx context.Context, departmentID, cardID, token string) error {
	_, err := s.api.Delete(ctx, fmt.Sprintf("/departments/%s/cards/%s", departmentID, cardID), token)
	return err
}

// MyDepartments fetches the authenticated user's memberships.
func (s *Departments) MyDepartments(ctx context.Context, token string) ([]dto.MyDepartment, error) {
	raw, err := s.api.Get(ctx, "/departments/my-departments", token)
	if err != nil {
		return nil, err
	}
	return decodeMany[dto.MyDepartment](raw)
}

// UserDepartments fetches the memberships of a specific user.
func (s *Departments) UserDepartments(ctx context.Context, userID, token string) ([]dto.MyDepartment, error) {
	raw, err := s.api.Get(ctx, "/departments/user/"+userID, token)
	if err != nil {
		return nil, err
	}
	return decodeMany[dto.MyDepartment](raw)
}
