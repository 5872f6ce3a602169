package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/leaflogapp/leaflog-server/internal/domain"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get current user",
		Description: "Returns the authenticated user's profile",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSessions",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me/sessions",
		Summary:     "List active sessions",
		Description: "Returns the user's active sessions across devices",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListUserSessions)

	huma.Register(s.api, huma.Operation{
		OperationID: "revokeSession",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/me/sessions/{id}",
		Summary:     "Revoke a session",
		Description: "Revokes one of the user's sessions, logging that device out",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRevokeSession)
}

// SessionInfo describes an active session in API responses. Token
// material never leaves the server.
type SessionInfo struct {
	ID         string    `json:"id" doc:"Session ID"`
	DeviceName string    `json:"device_name" doc:"Human-readable device description"`
	DeviceType string    `json:"device_type" doc:"Device type (mobile, tablet, desktop, web)"`
	Platform   string    `json:"platform" doc:"Platform (iOS, Android, Web...)"`
	IPAddress  string    `json:"ip_address,omitempty" doc:"Last known IP address"`
	CreatedAt  time.Time `json:"created_at" doc:"When the session was created"`
	LastSeenAt time.Time `json:"last_seen_at" doc:"Last activity timestamp"`
}

// SessionListOutput wraps the session list for Huma.
type SessionListOutput struct {
	Body []SessionInfo
}

// RevokeSessionInput identifies the session to revoke.
type RevokeSessionInput struct {
	ID string `path:"id" doc:"Session ID"`
}

func (s *Server) handleGetCurrentUser(ctx context.Context, _ *struct{}) (*UserOutput, error) {
	user, err := s.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUserResponse(user)}, nil
}

func (s *Server) handleListUserSessions(ctx context.Context, _ *struct{}) (*SessionListOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := s.services.Session.ListUserSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	infos := make([]SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, mapSessionInfo(session))
	}

	return &SessionListOutput{Body: infos}, nil
}

func (s *Server) handleRevokeSession(ctx context.Context, input *RevokeSessionInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	// Only the session's owner may revoke it.
	sessions, err := s.services.Session.ListUserSessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	owned := false
	for _, session := range sessions {
		if session.ID == input.ID {
			owned = true
			break
		}
	}
	if !owned {
		return nil, huma.Error404NotFound("Session not found")
	}

	if err := s.services.Session.DeleteSession(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Session revoked"}}, nil
}

func mapSessionInfo(session *domain.Session) SessionInfo {
	return SessionInfo{
		ID:         session.ID,
		DeviceName: session.DisplayName(),
		DeviceType: session.DeviceType,
		Platform:   session.Platform,
		IPAddress:  session.IPAddress,
		CreatedAt:  session.CreatedAt,
		LastSeenAt: session.LastSeenAt,
	}
}
