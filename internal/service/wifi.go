package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/intradash/adminkit/internal/apiclient"
	"github.com/intradash/adminkit/internal/common/dto"
	qrcode "github.com/skip2/go-qrcode"
)

// WifiSecurity is the security type embedded in the wifi QR payload.
type WifiSecurity string

const (
	WifiSecurityWPA    WifiSecurity = "WPA"
	WifiSecurityWPA2   WifiSecurity = "WPA2"
	WifiSecurityWEP    WifiSecurity = "WEP"
	WifiSecurityNoPass WifiSecurity = "nopass"
)

// Wifi wraps the wifi configuration endpoints. Create and update
// regenerate the join QR code locally whenever the network name is part
// of the payload.
type Wifi struct {
	api *apiclient.Client
}

// NewWifi creates a wifi service on top of the API client.
func NewWifi(api *apiclient.Client) *Wifi {
	return &Wifi{api: api}
}

// WifiQRPayload builds the standard wifi join payload:
// WIFI:T:<security>;S:<ssid>;P:<password>;H:false;;
// An absent password is embedded as empty.
func WifiQRPayload(ssid, password string, security WifiSecurity) string {
	if security == "" {
		security = WifiSecurityWPA2
	}
	return fmt.Sprintf("WIFI:T:%s;S:%s;P:%s;H:false;;", security, ssid, password)
}

// GenerateQRCode renders the join payload for a network as a base64 PNG
// data URL.
func GenerateQRCode(ssid, password string, security WifiSecurity) (string, error) {
	payload := WifiQRPayload(ssid, password, security)
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("generate wifi qr code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// List fetches wifi networks. The "all" activity filter is not
// forwarded; the backend treats an absent flag as all.
func (s *Wifi) List(ctx context.Context, q dto.WifiListQuery, token string) ([]dto.WifiNetwork, error) {
	params := url.Values{}
	if q.IsActive != "" && q.IsActive != "all" {
		params.Set("isActive", q.IsActive)
	}
	if q.NetworkName != "" {
		params.Set("networkName", q.NetworkName)
	}

	raw, err := s.api.Get(ctx, withQuery("/config/wifi/", params), token)
	if err != nil {
		return nil, err
	}
	return decodeMany[dto.WifiNetwork](raw)
}

// GetByID fetches a single wifi network.
func (s *Wifi) GetByID(ctx context.Context, id, token string) (*dto.WifiNetwork, error) {
	raw, err := s.api.Get(ctx, "/config/wifi/"+id, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.WifiNetwork](raw)
}

// Create registers a wifi network, generating its QR code from the
// supplied name and password.
func (s *Wifi) Create(ctx context.Context, req dto.CreateWifiNetworkRequest, token string) (*dto.WifiNetwork, error) {
	if req.NetworkName != "" {
		password := ""
		if req.Password != nil {
			password = *req.Password
		}
		qr, err := GenerateQRCode(req.NetworkName, password, WifiSecurityWPA2)
		if err != nil {
			return nil, err
		}
		req.QRCode = &qr
	}

	raw, err := s.api.Post(ctx, "/config/wifi/", req, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.WifiNetwork](raw)
}

// Update patches a wifi network. A name change regenerates the QR code
// with the (possibly absent) password from the same payload.
func (s *Wifi) Update(ctx context.Context, id string, req dto.UpdateWifiNetworkRequest, token string) (*dto.WifiNetwork, error) {
	if req.NetworkName != nil && *req.NetworkName != "" {
		password := ""
		if req.Password != nil {
			password = *req.Password
		}
		qr, err := GenerateQRCode(*req.NetworkName, password, WifiSecurityWPA2)
		if err != nil {
			return nil, err
		}
		req.QRCode = &qr
	}

	raw, err := s.api.Patch(ctx, "/config/wifi/"+id, req, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.WifiNetwork](raw)
}

// Delete removes a wifi network.
func (s *Wifi) Delete(ctx context.Context, id, token string) error {
	_, err := s.api.Delete(ctx, "/config/wifi/"+id, token)
	return err
}

// ToggleStatus flips the active flag of a wifi network.
func (s *Wifi) ToggleStatus(ctx context.Context, id string, isActive bool, token string) (*dto.WifiNetwork, error) {
	return s.Update(ctx, id, dto.UpdateWifiNetworkRequest{IsActive: &isActive}, token)
}

// RegenerateQRCode reads the stored network and replaces only its QR
// code, derived from the current name and password.
func (s *Wifi) RegenerateQRCode(ctx context.Context, id, token string) (*dto.WifiNetwork, error) {
	current, err := s.GetByID(ctx, id, token)
	if err != nil {
		return nil, err
	}
	password := ""
	if current.Password != nil {
		password = *current.Password
	}
	qr, err := GenerateQRCode(current.NetworkName, password, WifiSecurityWPA2)
	if err != nil {
		return nil, err
	}

	raw, err := s.api.Patch(ctx, "/config/wifi/"+id, dto.UpdateWifiNetworkRequest{QRCode: &qr}, token)
	if err != nil {
		return nil, err
	}
	return decodeOne[dto.WifiNetwork](raw)
}

// DecodeQRPayload extracts ssid and password from a wifi join payload.
// Used by tooling that needs to display what a stored QR encodes.
func DecodeQRPayload(payload string) (ssid, password string, ok bool) {
	if !strings.HasPrefix(payload, "WIFI:") {
		return "", "", false
	}
	for _, part := range strings.Split(strings.TrimPrefix(payload, "WIFI:"), ";") {
		switch {
		case strings.HasPrefix(part, "S:"):
			ssid = strings.TrimPrefix(part, "S:")
		case strings.HasPrefix(part, "P:"):
			password = strings.TrimPrefix(part, "P:")
		}
	}
	return ssid, password, ssid != ""
}
