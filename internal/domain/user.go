package domain

import "time"

// Role represents the user's permission level in the system.
type Role string

const (
	// RoleAdmin grants full administrative access.
	RoleAdmin Role = "admin"
	// RoleMember grants standard user access.
	RoleMember Role = "member"
)

// User represents an authenticated reader account.
type User struct {
	Syncable
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"` // Stored hashed, filtered from API responses
	IsRoot       bool      `json:"is_root"`
	Role         Role      `json:"role"`
	DisplayName  string    `json:"display_name"`
	AvatarColor  string    `json:"avatar_color,omitempty"`
	LastLoginAt  time.Time `json:"last_login_at"`
}

// IsAdmin returns true if the user has administrative privileges.
// The root user is always an admin regardless of the role field.
func (u *User) IsAdmin() bool {
	return u.IsRoot || u.Role == RoleAdmin
}

// Name returns the best available display name for the user.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}

// Session is an active refresh-token session. Each device gets its own
// session so users can see and revoke what's connected.
type Session struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	RefreshTokenHash string    `json:"refresh_token_hash,omitempty"` // Stored hashed, filtered from API responses
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
	LastSeenAt       time.Time `json:"last_seen_at"`
	IPAddress        string    `json:"ip_address,omitempty"`

	DeviceType    string `json:"device_type"`            // mobile, tablet, desktop, web
	Platform      string `json:"platform"`               // iOS, Android, Web...
	ClientName    string `json:"client_name"`            // LeafLog Mobile, LeafLog Web
	ClientVersion string `json:"client_version"`         // 1.0.0
	DeviceName    string `json:"device_name,omitempty"`  // user-set, optional
	DeviceModel   string `json:"device_model,omitempty"` // iPhone 15 Pro, Pixel 8
}

// Touch updates the session's last seen timestamp.
func (s *Session) Touch() {
	s.LastSeenAt = time.Now()
}

// IsExpired reports whether the session has passed its expiration time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// DisplayName returns a human-readable description of the device.
func (s *Session) DisplayName() string {
	switch {
	case s.DeviceName != "":
		return s.DeviceName
	case s.DeviceModel != "" && s.Platform != "":
		return s.DeviceModel + " - " + s.Platform
	case s.DeviceModel != "":
		return s.DeviceModel
	case s.Platform != "":
		return s.Platform
	case s.ClientName != "":
		return s.ClientName
	default:
		return "Unknown Device"
	}
}
