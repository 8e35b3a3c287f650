package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intradash/adminkit/internal/common/dto"
)

func TestDepartmentsList_QueryMapping(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(http.MethodGet, "/departments/", http.StatusOK,
		`{"success":true,"data":[
			{"id":"d1","name":"Sistemas","slug":"sistemas","isActive":true,"createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z","_count":{"users":4,"cards":2}}
		],"pagination":{"page":2,"limit":5,"total":11,"pages":3}}`)
	svc := NewDepartments(backend.client())

	items, page, err := svc.List(context.Background(), dto.DepartmentsListQuery{
		Page:      2,
		Limit:     5,
		IsActive:  "true",
		Search:    "sis",
		SortBy:    "name",
		SortOrder: "asc",
	}, "tok")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Count.Users)
	require.NotNil(t, page)
	assert.Equal(t, 11, page.Total)

	gets := backend.calls(http.MethodGet, "/departments/")
	require.Len(t, gets, 1)
	for _, want := range []string{"page=2", "limit=5", "isActive=true", "search=sis", "sortBy=name", "sortOrder=asc"} {
		assert.Contains(t, gets[0].Query, want)
	}
}

func TestDepartmentsGetBySlug(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(http.MethodGet, "/departments/slug/sistemas", http.StatusOK,
		`{"success":true,"data":{"id":"d1","name":"Sistemas","slug":"sistemas","isActive":true,"users":[],"cards":[]}}`)
	svc := NewDepartments(backend.client())

	dept, err := svc.GetBySlug(context.Background(), "sistemas", "tok")
	require.NoError(t, err)
	assert.Equal(t, "d1", dept.ID)
	assert.Empty(t, dept.Users)
}

func TestDepartmentsCreate_Payload(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(http.MethodPost, "/departments/", http.StatusCreated,
		`{"success":true,"data":{"id":"d9","name":"Marketing","slug":"marketing","isActive":true,"users":[],"cards":[]}}`)
	svc := NewDepartments(backend.client())

	desc := "brand and campaigns"
	dept, err := svc.Create(context.Background(), dto.CreateDepartmentRequest{
		Name:        "Marketing",
		Description: &desc,
	}, "tok")
	require.NoError(t, err)
	assert.Equal(t, "marketing", dept.Slug)

	posts := backend.calls(http.MethodPost, "/departments/")
	require.Len(t, posts, 1)
	assert.JSONEq(t, `{"name":"Marketing","description":"brand and campaigns"}`, string(posts[0].Body))
}

func TestDepartmentsAssignCard_PathAndBody(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(http.MethodPost, "/departments/d1/cards/c1", http.StatusCreated,
		`{"success":true,"data":{"id":"dc1","cardId":"c1","canEdit":true,"canDelete":false,"isActive":true}}`)
	svc := NewDepartments(backend.client())

	_, err := svc.AssignCard(context.Background(), "d1", "c1", dto.AssignCardToDepartmentRequest{
		CanEdit: true,
	}, "tok")
	require.NoError(t, err)

	posts := backend.calls(http.MethodPost, "/departments/d1/cards/c1")
	require.Len(t, posts, 1)
	assert.JSONEq(t, `{"canEdit":true,"canDelete":false}`, string(posts[0].Body))
}

func TestDepartmentsUserDepartments(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(http.MethodGet, "/departments/user/u1", http.StatusOK,
		`{"success":true,"data":[
			{"assignment":{"id":"a1","isHead":true,"joinedAt":"2025-03-01T00:00:00Z"},
			 "department":{"id":"d1","name":"Sistemas","slug":"sistemas","isActive":true}}
		]}`)
	svc := NewDepartments(backend.client())

	items, err := svc.UserDepartments(context.Background(), "u1", "tok")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Assignment.IsHead)
	assert.Equal(t, "d1", items[0].Department.ID)
}
