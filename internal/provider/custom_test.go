package provider

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intradash/adminkit/internal/common/errorx"
)

const membershipsBody = `{"success":true,"data":[
	{"assignment":{"id":"a1","isHead":false,"joinedAt":"2025-01-01T00:00:00Z"},"department":{"id":"d1","name":"Sistemas","slug":"sistemas","isActive":true}}
]}`

func TestCustomList_UserDepartmentsByFilter(t *testing.T) {
	h := newHarness(t)
	h.backend.on(http.MethodGet, "/departments/user/u1", http.StatusOK, membershipsBody)

	result, err := h.combined.List(context.Background(), ListParams{
		Resource: "user-departments",
		Filters:  []Filter{{Field: "userId", Operator: OperatorEq, Value: "u1"}},
	})
	require.NoError(t, err)
	assert.Len(t, result.Data, 1)
	assert.Equal(t, 1, result.Total)
}

func TestCustomList_UserDepartmentsByMeta(t *testing.T) {
	h := newHarness(t)
	h.backend.on(http.MethodGet, "/departments/user/u1", http.StatusOK, membershipsBody)

	_, err := h.combined.List(context.Background(), ListParams{
		Resource: "user-departments",
		Meta:     map[string]any{"userId": "u1"},
	})
	require.NoError(t, err)
}

func TestCustomList_UserDepartmentsMissingID(t *testing.T) {
	h := newHarness(t)

	_, err := h.combined.List(context.Background(), ListParams{Resource: "user-departments"})
	require.Error(t, err)
	assert.True(t, errorx.IsValidation(err))
	assert.Empty(t, h.backend.requests)
}

func TestCustomList_AvailableDepartments(t *testing.T) {
	h := newHarness(t)
	h.backend.on(http.MethodGet, "/departments/", http.StatusOK,
		`{"success":true,"data":[
			{"id":"d1","name":"Sistemas","slug":"sistemas","isActive":true,"createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z","_count":{"users":3,"cards":1}}
		],"pagination":{"page":1,"limit":100,"total":1,"pages":1}}`)

	result, err := h.combined.List(context.Background(), ListParams{Resource: "available-departments"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)

	gets := h.backend.calls(http.MethodGet, "/departments/")
	require.Len(t, gets, 1)
	assert.Contains(t, gets[0].Query, "isActive=true")
	assert.Contains(t, gets[0].Query, "limit=100")
}

func TestCustomList_DepartmentCards(t *testing.T) {
	h := newHarness(t)
	h.backend.on(http.MethodGet, "/departments/d1/cards", http.StatusOK,
		`{"success":true,"data":[
			{"id":"c1","title":"ERP","type":"ERP","isActive":true,"sortOrder":1,
			 "createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z",
			 "canEdit":true,"canDelete":false,"assignedAt":"2025-02-01T00:00:00Z","assignedBy":"u0",
			 "createdBy":{"id":"u0","firstName":"Admin","lastName":"Root","email":"admin@x.y"}}
		]}`)

	result, err := h.combined.List(context.Background(), ListParams{
		Resource: "department-cards",
		Filters:  []Filter{{Field: "departmentId", Operator: OperatorEq, Value: "d1"}},
	})
	require.NoError(t, err)
	assert.Len(t, result.Data, 1)
}

func TestCustomCreate_DepartmentAssignment(t *testing.T) {
	h := newHarness(t)
	h.backend.on(http.MethodPost, "/departments/d1/users/u1", http.StatusCreated,
		`{"success":true,"data":{"id":"a1","userId":"u1","departmentId":"d1","isHead":true,"isActive":true}}`)

	result, err := h.combined.Create(context.Background(), CreateParams{
		Resource: "department-assignments",
		Variables: map[string]any{
			"departmentId": "d1",
			"userId":       "u1",
			"isHead":       true,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result.Data)

	posts := h.backend.calls(http.MethodPost, "/departments/d1/users/u1")
	require.Len(t, posts, 1)
	assert.JSONEq(t, `{"isHead":true}`, string(posts[0].Body))
}

func TestCustomCreate_MissingIdentifiers(t *testing.T) {
	h := newHarness(t)

	_, err := h.combined.Create(context.Background(), CreateParams{
		Resource:  "department-assignments",
		Variables: map[string]any{"userId": "u1"},
	})
	assert.True(t, errorx.IsValidation(err))

	_, err = h.combined.Create(context.Background(), CreateParams{
		Resource:  "department-assignments",
		Variables: map[string]any{"departmentId": "d1"},
	})
	assert.True(t, errorx.IsValidation(err))
}

func TestCustomDelete_DepartmentAssignment(t *testing.T) {
	h := newHarness(t)
	h.backend.on(http.MethodDelete, "/departments/d1/users/u1", http.StatusOK,
		`{"success":true,"data":null}`)

	_, err := h.combined.Delete(context.Background(), DeleteParams{
		Resource: "department-assignments",
		Variables: map[string]any{
			"departmentId": "d1",
			"userId":       "u1",
		},
	})
	require.NoError(t, err)
	assert.Len(t, h.backend.calls(http.MethodDelete, "/departments/d1/users/u1"), 1)
}

func TestCustomUpdate_BulkMembership(t *testing.T) {
	h := newHarness(t)
	h.backend.on(http.MethodGet, "/departments/user/u1", http.StatusOK, membershipsBody)
	h.backend.on(http.MethodPost, "/departments/d2/users/u1", http.StatusCreated,
		`{"success":true,"data":{"id":"a2","userId":"u1","departmentId":"d2","isActive":true}}`)
	h.backend.on(http.MethodDelete, "/departments/d1/users/u1", http.StatusOK,
		`{"success":true,"data":null}`)

	_, err := h.combined.Update(context.Background(), UpdateParams{
		Resource:  "user-departments",
		ID:        "u1",
		Variables: map[string]any{"departmentIds": []any{"d2"}},
	})
	require.NoError(t, err)

	assert.Len(t, h.backend.calls(http.MethodPost, "/departments/d2/users/u1"), 1)
	assert.Len(t, h.backend.calls(http.MethodDelete, "/departments/d1/users/u1"), 1)
}

func TestCustomUpdate_CurrentIDsSkipInitialRead(t *testing.T) {
	h := newHarness(t)
	h.backend.on(http.MethodGet, "/departments/user/u1", http.StatusOK, membershipsBody)
	h.backend.on(http.MethodPost, "/departments/d2/users/u1", http.StatusCreated,
		`{"success":true,"data":{"id":"a2","userId":"u1","departmentId":"d2","isActive":true}}`)
	h.backend.on(http.MethodDelete, "/departments/d1/users/u1", http.StatusOK,
		`{"success":true,"data":null}`)

	_, err := h.combined.Update(context.Background(), UpdateParams{
		Resource: "user-departments",
		ID:       "u1",
		Variables: map[string]any{
			"departmentIds":        []any{"d2"},
			"currentDepartmentIds": []any{"d1"},
		},
	})
	require.NoError(t, err)

	assert.Len(t, h.backend.calls(http.MethodPost, "/departments/d2/users/u1"), 1)
	assert.Len(t, h.backend.calls(http.MethodDelete, "/departments/d1/users/u1"), 1)
	// Only the post-write read-back hits the membership endpoint.
	reads := h.backend.calls(http.MethodGet, "/departments/user/u1")
	require.Len(t, reads, 1)
}

func TestCustomURL_Routing(t *testing.T) {
	h := newHarness(t)
	h.backend.on(http.MethodGet, "/departments/user/u1", http.StatusOK, membershipsBody)

	result, err := h.combined.Custom(context.Background(), CustomParams{
		URL:    "/users/u1/departments",
		Method: "GET",
	})
	require.NoError(t, err)
	assert.NotNil(t, result.Data)
}

func TestCustomURL_BulkUpdateNotShadowed(t *testing.T) {
	h := newHarness(t)
	h.backend.on(http.MethodGet, "/departments/user/u1", http.StatusOK, membershipsBody)
	h.backend.on(http.MethodPost, "/departments/d2/users/u1", http.StatusCreated,
		`{"success":true,"data":{"id":"a2","userId":"u1","departmentId":"d2","isActive":true}}`)
	h.backend.on(http.MethodDelete, "/departments/d1/users/u1", http.StatusOK,
		`{"success":true,"data":null}`)

	_, err := h.combined.Custom(context.Background(), CustomParams{
		URL:     "/users/u1/departments/bulk-update",
		Method:  "PUT",
		Payload: map[string]any{"departmentIds": []any{"d2"}},
	})
	require.NoError(t, err)
	assert.Len(t, h.backend.calls(http.MethodPost, "/departments/d2/users/u1"), 1)
}

func TestCustomURL_Unknown(t *testing.T) {
	h := newHarness(t)

	_, err := h.combined.Custom(context.Background(), CustomParams{
		URL:    "/reports/annual",
		Method: "GET",
	})
	require.Error(t, err)
	assert.True(t, errorx.IsUnsupportedResource(err))
}
