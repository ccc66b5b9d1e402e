package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
)

// AuthSessions is the session surface the JSON auth endpoints need.
type AuthSessions interface {
	Current(ctx context.Context) domainauth.Session
	Logout(ctx context.Context)
}

// AuthHandlers provides HTTP handlers for session status and logout.
type AuthHandlers struct {
	Sessions  AuthSessions
	LoginPath string
	Logger    *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Logout ends the session and sends the browser to the login page.
// POST /logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Logout(r.Context())
	h.logger().InfoContext(r.Context(), "user logged out")

	target := h.LoginPath
	if target == "" {
		target = defaultLoginPath
	}

	isAJAX := strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
	switch {
	case IsHTMX(r):
		HTMX(w).Redirect(target)
	case isAJAX:
		WriteJSON(w, http.StatusOK, map[string]string{
			"status":      "success",
			"redirect_to": target,
		})
	default:
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	s := h.Sessions.Current(r.Context())
	w.Header().Set("Cache-Control", "no-store")
	if !s.IsAuthenticated() {
		WriteJSON(w, http.StatusOK, map[string]any{
			"authenticated": false,
			"status":        s.Status,
		})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"status":        s.Status,
		"user": map[string]any{
			"id":    s.Identity.Subject,
			"email": s.Identity.Email,
			"role":  s.Identity.Role,
		},
	})
}
