package auth

import "time"

// AccessClaims are the claims carried in a PASETO access token. v4.local
// tokens are encrypted, so these are unreadable without the server key.
type AccessClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	IsRoot bool   `json:"is_root"`

	// Standard PASETO claims.
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}

// DeviceInfo is what a client reports about itself at login. It is
// stored on the Session for display and security review.
type DeviceInfo struct {
	DeviceType    string `json:"device_type"`    // mobile, tablet, desktop, web
	Platform      string `json:"platform"`       // iOS, Android, Web...
	ClientName    string `json:"client_name"`    // LeafLog Mobile, LeafLog Web
	ClientVersion string `json:"client_version"` // 1.0.0
	DeviceName    string `json:"device_name"`    // user-set, optional
	DeviceModel   string `json:"device_model"`   // iPhone 15 Pro, Pixel 8
}

// IsValid performs basic validation on the device info.
func (d DeviceInfo) IsValid() bool {
	return d.DeviceType != "" && d.Platform != ""
}
