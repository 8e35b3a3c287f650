package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/intradash/adminkit/internal/common/dto"
	"go.uber.org/zap"
)

// UserDepartments composes the department service into user-centric
// membership operations, including the bulk reassignment diff.
type UserDepartments struct {
	departments *Departments
	logger      *zap.Logger
}

// NewUserDepartments creates a membership service on top of the
// department service.
func NewUserDepartments(departments *Departments, logger *zap.Logger) *UserDepartments {
	return &UserDepartments{
		departments: departments,
		logger:      logger,
	}
}

// AvailableDepartments fetches the active departments open for
// assignment, name-sorted, with a high page limit.
func (s *UserDepartments) AvailableDepartments(ctx context.Context, token string) ([]dto.DepartmentListItem, error) {
	items, _, err := s.departments.List(ctx, dto.DepartmentsListQuery{
		IsActive:  "true",
		Limit:     100,
		SortBy:    "name",
		SortOrder: "asc",
	}, token)
	return items, err
}

// UserDepartments fetches the memberships of a user.
func (s *UserDepartments) UserDepartments(ctx context.Context, userID, token string) ([]dto.MyDepartment, error) {
	return s.departments.UserDepartments(ctx, userID, token)
}

// Assign adds a user to a department.
func (s *UserDepartments) Assign(ctx context.Context, departmentID, userID string, req dto.AssignUserToDepartmentRequest, token string) (*dto.UserDepartmentAssignment, error) {
	return s.departments.AssignUser(ctx, departmentID, userID, req, token)
}

// Remove takes a user out of a department.
func (s *UserDepartments) Remove(ctx context.Context, departmentID, userID, token string) error {
	return s.departments.RemoveUser(ctx, departmentID, userID, token)
}

// BulkUpdate reconciles a user's memberships against a selected set of
// department IDs. Additions and removals are issued concurrently and
// joined all-settled: already-applied sub-calls are NOT rolled back
// when a later one fails, so a failed bulk update may leave a partial
// result. The aggregate error reports every failed sub-call.
func (s *UserDepartments) BulkUpdate(ctx context.Context, userID string, current []dto.MyDepartment, selected []string, token string) ([]dto.UserDepartmentAssignment, error) {
	currentIDs := make(map[string]bool, len(current))
	for _, d := range current {
		currentIDs[d.Department.ID] = true
	}
	selectedIDs := make(map[string]bool, len(selected))
	for _, id := range selected {
		selectedIDs[id] = true
	}

	var toAdd, toRemove []string
	for _, id := range selected {
		if !currentIDs[id] {
			toAdd = append(toAdd, id)
		}
	}
	for _, d := range current {
		if !selectedIDs[d.Department.ID] {
			toRemove = append(toRemove, d.Department.ID)
		}
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []error
	)
	record := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		failures = append(failures, err)
		mu.Unlock()
	}

	for _, departmentID := range toAdd {
		wg.Add(1)
		go func(departmentID string) {
			defer wg.Done()
			_, err := s.departments.AssignUser(ctx, departmentID, userID, dto.AssignUserToDepartmentRequest{IsHead: false}, token)
			if err != nil {
				record(fmt.Errorf("assign department %s: %w", departmentID, err))
			}
		}(departmentID)
	}
	for _, departmentID := range toRemove {
		wg.Add(1)
		go func(departmentID string) {
			defer wg.Done()
			if err := s.departments.RemoveUser(ctx, departmentID, userID, token); err != nil {
				record(fmt.Errorf("remove department %s: %w", departmentID, err))
			}
		}(departmentID)
	}
	wg.Wait()

	if len(failures) > 0 {
		s.logger.Error("bulk department update applied partially",
			zap.String("userId", userID),
			zap.Int("failed", len(failures)),
			zap.Int("total", len(toAdd)+len(toRemove)))
		return nil, fmt.Errorf("%d of %d department operations failed: %w",
			len(failures), len(toAdd)+len(toRemove), errors.Join(failures...))
	}

	// Read back the authoritative state.
	updated, err := s.departments.UserDepartments(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	assignments := make([]dto.UserDepartmentAssignment, 0, len(updated))
	for _, d := range updated {
		assignments = append(assignments, dto.UserDepartmentAssignment{
			ID:           d.Assignment.ID,
			UserID:       userID,
			DepartmentID: d.Department.ID,
			IsHead:       d.Assignment.IsHead,
			JoinedAt:     d.Assignment.JoinedAt,
			IsActive:     true,
		})
	}
	return assignments, nil
}

// UpdateHeadRole changes head status by removing the assignment and
// recreating it with the new flag. Not atomic: a failure between the
// two calls leaves the user unassigned.
func (s *UserDepartments) UpdateHeadRole(ctx context.Context, departmentID, userID string, isHead bool, token string) (*dto.UserDepartmentAssignment, error) {
	if err := s.departments.RemoveUser(ctx, departmentID, userID, token); err != nil {
		return nil, err
	}
	return s.departments.AssignUser(ctx, departmentID, userID, dto.AssignUserToDepartmentRequest{IsHead: isHead}, token)
}
