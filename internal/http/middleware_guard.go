package httpx

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
)

const (
	defaultLoginPath        = "/login"
	defaultUnauthorizedPath = "/unauthorized"
	pendingRetrySeconds     = 1
)

// SessionGuard is the session surface the route guard consults.
type SessionGuard interface {
	IsAuthorized(ctx context.Context, required ...domainauth.Role) domainauth.Decision
	Snapshot() domainauth.Session
}

// GuardConfig configures RequireRoles.
type GuardConfig struct {
	Sessions         SessionGuard
	LoginPath        string
	UnauthorizedPath string
}

func (c GuardConfig) loginPath() string {
	if c.LoginPath == "" {
		return defaultLoginPath
	}
	return c.LoginPath
}

func (c GuardConfig) unauthorizedPath() string {
	if c.UnauthorizedPath == "" {
		return defaultUnauthorizedPath
	}
	return c.UnauthorizedPath
}

// RequireRoles guards a restricted view. The guard is re-evaluated on every
// request and holds no state of its own:
//   - pending (session not yet restored): 503 with Retry-After and a self-refreshing page
//   - redirect-login: 303 to the login path with redirect_uri set to the origin
//   - redirect-unauthorized: 303 to the unauthorized path
//
// API callers get 401/403 JSON instead of redirects; htmx callers get Hx-Redirect.
// With no roles, any authenticated identity is allowed.
func RequireRoles(cfg GuardConfig, roles ...domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := cfg.Sessions.IsAuthorized(r.Context(), roles...)
			session := cfg.Sessions.Snapshot()

			switch domainauth.GuardOutcome(session, decision) {
			case domainauth.OutcomeAllow:
				ctx := SetSessionInContext(r.Context(), session)
				next.ServeHTTP(w, r.WithContext(ctx))
			case domainauth.OutcomePending:
				writePending(w, r)
			case domainauth.OutcomeRedirectUnauthorized:
				if !IsBrowserRequest(r) {
					WriteError(w, ErrorParams{
						Code:    http.StatusForbidden,
						ErrCode: "insufficient_permissions",
						Err:     errors.New("insufficient permissions"),
					})
					return
				}
				redirectWithStatus(w, r, cfg.unauthorizedPath())
			default:
				if !IsBrowserRequest(r) {
					WriteError(w, ErrorParams{
						Code:    http.StatusUnauthorized,
						ErrCode: "authentication_required",
						Err:     errors.New("authentication required"),
					})
					return
				}
				redirectWithStatus(w, r, LoginURL(cfg.loginPath(), redirectPathForRequest(r)))
			}
		})
	}
}

// LoginURL builds the login location carrying the origin as redirect_uri.
func LoginURL(loginPath, origin string) string {
	origin = safeRedirectPath(origin)
	if origin == "/" {
		return loginPath
	}
	return loginPath + "?redirect_uri=" + url.QueryEscape(origin)
}

// redirectWithStatus is redirect for guard outcomes: htmx gets Hx-Redirect with 200 so
// the swap is skipped without an error event.
func redirectWithStatus(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMX(r) {
		SetHXRedirect(w, target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

var pendingPage = template.Must(template.New("pending").Parse(`<!doctype html>
<html lang="en"><head><meta charset="utf-8">
<meta http-equiv="refresh" content="{{.Retry}};url={{.Path}}">
<title>Loading - Recruit</title></head>
<body><main class="pending"><p>Restoring your session&hellip;</p></main></body></html>
`))

// writePending answers while the session is still being restored.
func writePending(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", fmt.Sprint(pendingRetrySeconds))
	w.Header().Set("Cache-Control", "no-store")
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{
			Code:    http.StatusServiceUnavailable,
			ErrCode: "session_pending",
			Err:     errors.New("session is being restored"),
		})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusServiceUnavailable)
	_ = pendingPage.Execute(w, map[string]any{
		"Retry": pendingRetrySeconds,
		"Path":  safeRedirectPath(r.URL.RequestURI()),
	})
}

// redirectPathForRequest picks the page to return to after login. Form posts and
// htmx requests return to the page they were sent from.
func redirectPathForRequest(r *http.Request) string {
	if IsHTMX(r) || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
		if current := safeRedirectFromURL(r.Header.Get("Hx-Current-Url")); current != "" {
			return current
		}
		if referer := safeRedirectFromURL(r.Header.Get("Referer")); referer != "" {
			return referer
		}
	}
	return safeRedirectPath(r.URL.RequestURI())
}

func safeRedirectFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	// Reject scheme-relative or host-only references.
	if u.Host != "" && !u.IsAbs() {
		return ""
	}
	if u.IsAbs() {
		return safeRedirectPath(u.RequestURI())
	}
	return safeRedirectPath(raw)
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	if strings.HasPrefix(candidate, "//") || strings.Contains(candidate, `\`) {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}
