package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intradash/adminkit/internal/common/dto"
)

func TestCardSoftDelete_KeepsCardRow(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(http.MethodDelete, "/cards/c1", http.StatusOK,
		`{"success":true,"data":{"cardId":"c1","cardTitle":"ERP","removedAssignments":3,"originalAssignments":3}}`)
	svc := NewCards(backend.client())

	result, err := svc.SoftDelete(context.Background(), "c1", "tok")
	require.NoError(t, err)
	assert.Equal(t, "c1", result.CardID)
	assert.Equal(t, 3, result.RemovedAssignments)

	// assignment-only removal hits the bare card path
	assert.Len(t, backend.calls(http.MethodDelete, "/cards/c1"), 1)
	assert.Empty(t, backend.calls(http.MethodDelete, "/cards/c1/delete"))
}

func TestCardDelete_Cascades(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(http.MethodDelete, "/cards/c1/delete", http.StatusOK,
		`{"success":true,"data":{"cardId":"c1","cardTitle":"ERP","cardType":"ERP","removedAssignments":3,"originalAssignments":3}}`)
	svc := NewCards(backend.client())

	result, err := svc.Delete(context.Background(), "c1", "tok")
	require.NoError(t, err)
	assert.Equal(t, "c1", result.CardID)

	assert.Len(t, backend.calls(http.MethodDelete, "/cards/c1/delete"), 1)
	assert.Empty(t, backend.calls(http.MethodDelete, "/cards/c1"))
}

func TestCardsList_ForwardsRecognizedParams(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(http.MethodGet, "/cards/", http.StatusOK,
		`{"success":true,"data":[],"pagination":{"page":2,"limit":5,"total":12,"pages":3}}`)
	svc := NewCards(backend.client())

	_, page, err := svc.List(context.Background(), dto.CardsListQuery{
		Type:  dto.CardTypeERP,
		Page:  2,
		Limit: 5,
	}, "tok")
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Equal(t, 12, page.Total)

	gets := backend.calls(http.MethodGet, "/cards/")
	require.Len(t, gets, 1)
	assert.Contains(t, gets[0].Query, "type=ERP")
	assert.Contains(t, gets[0].Query, "page=2")
	assert.Contains(t, gets[0].Query, "limit=5")
}
