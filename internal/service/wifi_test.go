package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intradash/adminkit/internal/common/dto"
)

func TestWifiQRPayload(t *testing.T) {
	assert.Equal(t, "WIFI:T:WPA2;S:Office;P:secret123;H:false;;",
		WifiQRPayload("Office", "secret123", WifiSecurityWPA2))
	assert.Equal(t, "WIFI:T:WEP;S:Legacy;P:old;H:false;;",
		WifiQRPayload("Legacy", "old", WifiSecurityWEP))
	// default security is WPA2, absent password stays empty
	assert.Equal(t, "WIFI:T:WPA2;S:Guest;P:;H:false;;",
		WifiQRPayload("Guest", "", ""))
}

func TestGenerateQRCode_DataURL(t *testing.T) {
	qr, err := GenerateQRCode("Office", "secret123", WifiSecurityWPA2)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(qr, "data:image/png;base64,"))

	png, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(qr, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestWifiCreate_GeneratesQRCode(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(http.MethodPost, "/config/wifi/", http.StatusCreated,
		`{"success":true,"data":{"id":"w1","networkName":"Office","isActive":true}}`)
	svc := NewWifi(backend.client())

	password := "secret123"
	network, err := svc.Create(context.Background(), dto.CreateWifiNetworkRequest{
		NetworkName: "Office",
		Password:    &password,
	}, "tok")
	require.NoError(t, err)
	assert.Equal(t, "w1", network.ID)

	posts := backend.calls(http.MethodPost, "/config/wifi/")
	require.Len(t, posts, 1)
	var sent dto.CreateWifiNetworkRequest
	require.NoError(t, json.Unmarshal(posts[0].Body, &sent))
	require.NotNil(t, sent.QRCode)
	assert.True(t, strings.HasPrefix(*sent.QRCode, "data:image/png;base64,"))
}

func TestWifiUpdate_RegeneratesQROnNameChange(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(http.MethodPatch, "/config/wifi/w1", http.StatusOK,
		`{"success":true,"data":{"id":"w1","networkName":"Renamed","isActive":true}}`)
	svc := NewWifi(backend.client())

	name := "Renamed"
	_, err := svc.Update(context.Background(), "w1", dto.UpdateWifiNetworkRequest{
		NetworkName: &name,
	}, "tok")
	require.NoError(t, err)

	patches := backend.calls(http.MethodPatch, "/config/wifi/w1")
	require.Len(t, patches, 1)
	var sent dto.UpdateWifiNetworkRequest
	require.NoError(t, json.Unmarshal(patches[0].Body, &sent))
	require.NotNil(t, sent.QRCode, "name change must carry a regenerated QR code")
}

func TestWifiUpdate_NoQRWithoutNameChange(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(http.MethodPatch, "/config/wifi/w1", http.StatusOK,
		`{"success":true,"data":{"id":"w1","networkName":"Office","isActive":false}}`)
	svc := NewWifi(backend.client())

	inactive := false
	_, err := svc.Update(context.Background(), "w1", dto.UpdateWifiNetworkRequest{
		IsActive: &inactive,
	}, "tok")
	require.NoError(t, err)

	patches := backend.calls(http.MethodPatch, "/config/wifi/w1")
	require.Len(t, patches, 1)
	var sent dto.UpdateWifiNetworkRequest
	require.NoError(t, json.Unmarshal(patches[0].Body, &sent))
	assert.Nil(t, sent.QRCode)
}

func TestWifiList_AllFilterNotForwarded(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(http.MethodGet, "/config/wifi/", http.StatusOK,
		`{"success":true,"data":[{"id":"w1","networkName":"Office","isActive":true}]}`)
	svc := NewWifi(backend.client())

	items, err := svc.List(context.Background(), dto.WifiListQuery{IsActive: "all"}, "tok")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	gets := backend.calls(http.MethodGet, "/config/wifi/")
	require.Len(t, gets, 1)
	assert.NotContains(t, gets[0].Query, "isActive")
}

func TestWifiRegenerateQRCode_PatchesOnlyQR(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(http.MethodGet, "/config/wifi/w1", http.StatusOK,
		`{"success":true,"data":{"id":"w1","networkName":"Office","password":"secret123","isActive":true}}`)
	backend.on(http.MethodPatch, "/config/wifi/w1", http.StatusOK,
		`{"success":true,"data":{"id":"w1","networkName":"Office","isActive":true}}`)
	svc := NewWifi(backend.client())

	_, err := svc.RegenerateQRCode(context.Background(), "w1", "tok")
	require.NoError(t, err)

	patches := backend.calls(http.MethodPatch, "/config/wifi/w1")
	require.Len(t, patches, 1)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(patches[0].Body, &sent))
	assert.Len(t, sent, 1, "only the qrCode field may be patched")
	assert.Contains(t, sent, "qrCode")
}
