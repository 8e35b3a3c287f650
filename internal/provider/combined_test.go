package provider

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intradash/adminkit/internal/common/errorx"
)

func TestCombined_RoutesStandardResources(t *testing.T) {
	h := newHarness(t)
	h.backend.on(http.MethodGet, "/departments/", http.StatusOK,
		`{"success":true,"data":[],"pagination":{"page":1,"limit":10,"total":0,"pages":0}}`)

	result, err := h.combined.List(context.Background(), ListParams{Resource: "departments"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Len(t, h.backend.calls(http.MethodGet, "/departments/"), 1)
}

func TestCombined_CustomNamesNeverReachStandard(t *testing.T) {
	h := newHarness(t)

	// user-departments without a userId trips the custom provider's
	// validation; the standard provider would have called it unsupported.
	_, err := h.combined.List(context.Background(), ListParams{Resource: "user-departments"})
	require.Error(t, err)
	assert.True(t, errorx.IsValidation(err))
	assert.False(t, errorx.IsUnsupportedResource(err))
}

func TestCombined_UnknownResourceAllVerbs(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	checks := []struct {
		name string
		call func() error
	}{
		{"list", func() error {
			_, err := h.combined.List(ctx, ListParams{Resource: "gadgets"})
			return err
		}},
		{"getOne", func() error {
			_, err := h.combined.GetOne(ctx, GetOneParams{Resource: "gadgets", ID: "g1"})
			return err
		}},
		{"getMany", func() error {
			_, err := h.combined.GetMany(ctx, GetManyParams{Resource: "gadgets", IDs: []string{"g1"}})
			return err
		}},
		{"create", func() error {
			_, err := h.combined.Create(ctx, CreateParams{Resource: "gadgets"})
			return err
		}},
		{"createMany", func() error {
			_, err := h.combined.CreateMany(ctx, CreateManyParams{Resource: "gadgets"})
			return err
		}},
		{"update", func() error {
			_, err := h.combined.Update(ctx, UpdateParams{Resource: "gadgets", ID: "g1"})
			return err
		}},
		{"updateMany", func() error {
			_, err := h.combined.UpdateMany(ctx, UpdateManyParams{Resource: "gadgets", IDs: []string{"g1"}})
			return err
		}},
		{"delete", func() error {
			_, err := h.combined.Delete(ctx, DeleteParams{Resource: "gadgets", ID: "g1"})
			return err
		}},
		{"deleteMany", func() error {
			_, err := h.combined.DeleteMany(ctx, DeleteManyParams{Resource: "gadgets", IDs: []string{"g1"}})
			return err
		}},
	}

	for _, tc := range checks {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			require.Error(t, err)
			assert.True(t, errorx.IsUnsupportedResource(err))
			var apiErr *errorx.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "gadgets", apiErr.Resource)
		})
	}
	assert.Empty(t, h.backend.requests)
}

func TestCombined_APIURL(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, h.backend.srv.URL, h.combined.APIURL())
}
