package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/intradash/adminkit/internal/common/dto"
)

func membership(deptID, name string) dto.MyDepartment {
	return dto.MyDepartment{
		Assignment: dto.MyDepartmentAssignment{ID: "a-" + deptID, JoinedAt: "2025-01-01T00:00:00Z"},
		Department: dto.MyDepartmentRef{ID: deptID, Name: name, Slug: name, IsActive: true},
	}
}

func newMembershipService(backend *fakeBackend) *UserDepartments {
	departments := NewDepartments(backend.client())
	return NewUserDepartments(departments, zap.NewNop())
}

func TestBulkUpdate_DiffIssuesMinimalCalls(t *testing.T) {
	backend := newFakeBackend(t)
	// current {A, B}, selected {B, C}: expect one assign (C) and one
	// remove (A), B untouched
	backend.on(http.MethodPost, "/departments/C/users/u1", http.StatusCreated,
		`{"success":true,"data":{"id":"n1","userId":"u1","departmentId":"C","isActive":true}}`)
	backend.on(http.MethodDelete, "/departments/A/users/u1", http.StatusOK,
		`{"success":true,"data":null}`)
	backend.on(http.MethodGet, "/departments/user/u1", http.StatusOK,
		`{"success":true,"data":[
			{"assignment":{"id":"a-B","isHead":false,"joinedAt":"2025-01-01T00:00:00Z"},"department":{"id":"B","name":"B","slug":"b","isActive":true}},
			{"assignment":{"id":"n1","isHead":false,"joinedAt":"2025-06-01T00:00:00Z"},"department":{"id":"C","name":"C","slug":"c","isActive":true}}
		]}`)

	svc := newMembershipService(backend)
	current := []dto.MyDepartment{membership("A", "a"), membership("B", "b")}

	assignments, err := svc.BulkUpdate(context.Background(), "u1", current, []string{"B", "C"}, "tok")
	require.NoError(t, err)

	assert.Len(t, backend.calls(http.MethodPost, "/departments/C/users/u1"), 1)
	assert.Len(t, backend.calls(http.MethodDelete, "/departments/A/users/u1"), 1)
	assert.Empty(t, backend.calls(http.MethodPost, "/departments/B/users/u1"), "unchanged membership must not be touched")
	assert.Empty(t, backend.calls(http.MethodDelete, "/departments/B/users/u1"))

	// result reflects the read-back, not the request
	require.Len(t, assignments, 2)
	ids := []string{assignments[0].DepartmentID, assignments[1].DepartmentID}
	assert.ElementsMatch(t, []string{"B", "C"}, ids)
}

func TestBulkUpdate_NoChangesNoWrites(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(http.MethodGet, "/departments/user/u1", http.StatusOK,
		`{"success":true,"data":[
			{"assignment":{"id":"a-A","isHead":false,"joinedAt":"2025-01-01T00:00:00Z"},"department":{"id":"A","name":"A","slug":"a","isActive":true}}
		]}`)

	svc := newMembershipService(backend)
	current := []dto.MyDepartment{membership("A", "a")}

	assignments, err := svc.BulkUpdate(context.Background(), "u1", current, []string{"A"}, "tok")
	require.NoError(t, err)
	assert.Len(t, assignments, 1)

	assert.Empty(t, backend.calls(http.MethodPost, "/departments/A/users/u1"))
	assert.Empty(t, backend.calls(http.MethodDelete, "/departments/A/users/u1"))
}

func TestBulkUpdate_PartialFailureAggregates(t *testing.T) {
	backend := newFakeBackend(t)
	// the assign succeeds, the remove fails: all-settled semantics mean
	// the assign is NOT rolled back and the error reports the failure
	backend.on(http.MethodPost, "/departments/C/users/u1", http.StatusCreated,
		`{"success":true,"data":{"id":"n1","userId":"u1","departmentId":"C","isActive":true}}`)
	backend.on(http.MethodDelete, "/departments/A/users/u1", http.StatusInternalServerError,
		`{"success":false,"message":"database unavailable","code":"DB_ERROR"}`)

	svc := newMembershipService(backend)
	current := []dto.MyDepartment{membership("A", "a")}

	_, err := svc.BulkUpdate(context.Background(), "u1", current, []string{"C"}, "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 department operations failed")
	assert.Contains(t, err.Error(), "remove department A")

	// the successful assign went through before the failure surfaced
	assert.Len(t, backend.calls(http.MethodPost, "/departments/C/users/u1"), 1)
	// no read-back on failure
	assert.Empty(t, backend.calls(http.MethodGet, "/departments/user/u1"))
}

func TestAvailableDepartments_QueryShape(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(http.MethodGet, "/departments/", http.StatusOK,
		`{"success":true,"data":[],"pagination":{"page":1,"limit":100,"total":0,"pages":0}}`)

	svc := newMembershipService(backend)
	_, err := svc.AvailableDepartments(context.Background(), "tok")
	require.NoError(t, err)

	gets := backend.calls(http.MethodGet, "/departments/")
	require.Len(t, gets, 1)
	assert.Contains(t, gets[0].Query, "isActive=true")
	assert.Contains(t, gets[0].Query, "limit=100")
	assert.Contains(t, gets[0].Query, "sortBy=name")
}

func TestUpdateHeadRole_RemoveThenAssign(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(http.MethodDelete, "/departments/D/users/u1", http.StatusOK,
		`{"success":true,"data":null}`)
	backend.on(http.MethodPost, "/departments/D/users/u1", http.StatusCreated,
		`{"success":true,"data":{"id":"n2","userId":"u1","departmentId":"D","isHead":true,"isActive":true}}`)

	svc := newMembershipService(backend)
	assignment, err := svc.UpdateHeadRole(context.Background(), "D", "u1", true, "tok")
	require.NoError(t, err)
	assert.True(t, assignment.IsHead)

	assert.Len(t, backend.calls(http.MethodDelete, "/departments/D/users/u1"), 1)
	assert.Len(t, backend.calls(http.MethodPost, "/departments/D/users/u1"), 1)
}
