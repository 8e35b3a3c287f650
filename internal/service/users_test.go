package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intradash/adminkit/internal/common/dto"
)

func TestUsersList_QueryMapping(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(http.MethodGet, "/users/", http.StatusOK,
		`{"success":true,"data":[{"id":"u1","email":"a@b.c","role":"ADMIN","isActive":true}],
		  "pagination":{"page":1,"limit":10,"total":1,"pages":1}}`)
	svc := NewUsers(backend.client())

	items, page, err := svc.List(context.Background(), dto.UsersListQuery{
		Page:     1,
		Limit:    10,
		Role:     dto.RoleAdmin,
		Search:   "garcia",
		IsActive: "true",
	}, "tok")
	require.NoError(t, err)
	assert.Len(t, items, 1)
	require.NotNil(t, page)
	assert.Equal(t, 1, page.Total)

	gets := backend.calls(http.MethodGet, "/users/")
	require.Len(t, gets, 1)
	assert.Contains(t, gets[0].Query, "role=ADMIN")
	assert.Contains(t, gets[0].Query, "search=garcia")
	assert.Contains(t, gets[0].Query, "isActive=true")
}

func TestUsersUpdateBasicInfo_Path(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(http.MethodPatch, "/users/u1/update", http.StatusOK,
		`{"success":true,"data":{"id":"u1","email":"new@b.c","role":"ADMIN","isActive":true}}`)
	svc := NewUsers(backend.client())

	email := "new@b.c"
	user, err := svc.UpdateBasicInfo(context.Background(), "u1", dto.UpdateBasicInfoRequest{Email: &email}, "tok")
	require.NoError(t, err)
	assert.Equal(t, "new@b.c", user.Email)

	patches := backend.calls(http.MethodPatch, "/users/u1/update")
	require.Len(t, patches, 1)
	var sent map[string]any
	require.NoError(t, json.Unmarshal(patches[0].Body, &sent))
	assert.Equal(t, map[string]any{"email": "new@b.c"}, sent, "unset fields must be omitted")
}

func TestUsersUpdatePersonalInfo_ReturnsSubRecord(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(http.MethodPatch, "/users/u1/personal-info", http.StatusOK,
		`{"success":true,"data":{"id":"p1","userId":"u1","phone":"600111222","createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-06-01T00:00:00Z"}}`)
	svc := NewUsers(backend.client())

	phone := "600111222"
	info, err := svc.UpdatePersonalInfo(context.Background(), "u1", dto.UpdatePersonalInfoRequest{Phone: &phone}, "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", info.UserID)
	require.NotNil(t, info.Phone)
	assert.Equal(t, "600111222", *info.Phone)
}

func TestUsersAdminBulkUpdate_Payload(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(http.MethodPatch, "/admin/users/bulk-update", http.StatusOK,
		`{"success":true,"data":{"requested":2,"updated":2}}`)
	svc := NewUsers(backend.client())

	_, err := svc.AdminBulkUpdate(context.Background(), dto.AdminBulkUpdateRequest{
		UserIDs: []string{"u1", "u2"},
		Action:  dto.BulkActionUpdateRole,
		Data:    &dto.BulkUpdateData{Role: dto.RoleHR},
	}, "tok")
	require.NoError(t, err)

	patches := backend.calls(http.MethodPatch, "/admin/users/bulk-update")
	require.Len(t, patches, 1)
	assert.JSONEq(t, `{"userIds":["u1","u2"],"action":"updateRole","data":{"role":"RRHH"}}`, string(patches[0].Body))
}
