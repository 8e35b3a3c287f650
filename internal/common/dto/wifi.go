package dto

// WifiNetwork is a stored wifi credential set. QRCode holds a base64
// PNG data URL encoding the standard wifi join payload.
type WifiNetwork struct {
	ID          string  `json:"id"`
	NetworkName string  `json:"networkName"`
	Password    *string `json:"password"`
	QRCode      *string `json:"qrCode"`
	Description *string `json:"description"`
	IsActive    bool    `json:"isActive"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// WifiListQuery carries the recognized query parameters of the wifi
// list endpoint. IsActive "all" is not forwarded.
type WifiListQuery struct {
	IsActive    string // "true", "false" or "all"
	NetworkName string
}

// CreateWifiNetworkRequest creates a wifi network. QRCode is filled in
// client-side before the request is sent.
type CreateWifiNetworkRequest struct {
	NetworkName string  `json:"networkName"`
	Password    *string `json:"password,omitempty"`
	QRCode      *string `json:"qrCode,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UpdateWifiNetworkRequest patches a wifi network. A name change
// triggers client-side QR regeneration.
type UpdateWifiNetworkRequest struct {
	NetworkName *string `json:"networkName,omitempty"`
	Password    *string `json:"password,omitempty"`
	QRCode      *string `json:"qrCode,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}
