package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGuardSessions answers the guard from a fixed snapshot.
type fakeGuardSessions struct {
	session domainauth.Session
}

func (f *fakeGuardSessions) IsAuthorized(_ context.Context, required ...domainauth.Role) domainauth.Decision {
	return domainauth.Authorize(f.session, required...)
}

func (f *fakeGuardSessions) Snapshot() domainauth.Session { return f.session }

func guarded(session domainauth.Session, roles ...domainauth.Role) (http.Handler, *bool) {
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		s, ok := GetSessionFromContext(r.Context())
		if !ok || !s.IsAuthenticated() {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	cfg := GuardConfig{Sessions: &fakeGuardSessions{session: session}}
	return BrowserDetection()(RequireRoles(cfg, roles...)(next)), &reached
}

func TestRequireRoles_Outcomes(t *testing.T) {
	anonymous := domainauth.Session{Status: domainauth.StatusAnonymous}
	candidate := authenticatedSession(domainauth.RoleCandidate)
	admin := authenticatedSession(domainauth.RoleAdmin)

	tests := []struct {
		name         string
		session      domainauth.Session
		roles        []domainauth.Role
		path         string
		wantStatus   int
		wantLocation string
		wantReached  bool
	}{
		{
			name: "admin reaches admin view", session: admin, roles: []domainauth.Role{domainauth.RoleAdmin},
			path: "/admin", wantStatus: http.StatusOK, wantReached: true,
		},
		{
			name: "anonymous goes to login with origin", session: anonymous,
			roles: []domainauth.Role{domainauth.RoleAdmin}, path: "/admin",
			wantStatus: http.StatusSeeOther, wantLocation: "/login?redirect_uri=%2Fadmin",
		},
		{
			name: "origin keeps query", session: anonymous, roles: []domainauth.Role{domainauth.RoleAdmin},
			path: "/admin/jobs/j1/applications?sort=createdAt", wantStatus: http.StatusSeeOther,
			wantLocation: "/login?redirect_uri=%2Fadmin%2Fjobs%2Fj1%2Fapplications%3Fsort%3DcreatedAt",
		},
		{
			name: "candidate on admin view", session: candidate, roles: []domainauth.Role{domainauth.RoleAdmin},
			path: "/admin", wantStatus: http.StatusSeeOther, wantLocation: "/unauthorized",
		},
		{
			name: "no roles only needs authentication", session: candidate,
			path: "/candidate", wantStatus: http.StatusOK, wantReached: true,
		},
		{
			name: "any of several roles", session: candidate,
			roles: []domainauth.Role{domainauth.RoleAdmin, domainauth.RoleCandidate},
			path:  "/candidate", wantStatus: http.StatusOK, wantReached: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, reached := guarded(tt.session, tt.roles...)
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Accept", "text/html")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantReached, *reached)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
		})
	}
}

func TestRequireRoles_PendingSession(t *testing.T) {
	for _, status := range []domainauth.Status{domainauth.StatusUnknown, domainauth.StatusLoading} {
		t.Run(string(status), func(t *testing.T) {
			h, reached := guarded(domainauth.Session{Status: status}, domainauth.RoleAdmin)
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.False(t, *reached)
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			assert.Equal(t, "1", rec.Header().Get("Retry-After"))
			assert.Empty(t, rec.Header().Get("Location"), "no redirect before restoration settles")
			assert.Contains(t, rec.Body.String(), `http-equiv="refresh"`)
			assert.Contains(t, rec.Body.String(), "url=/admin")
		})
	}
}

func TestRequireRoles_APICallers(t *testing.T) {
	tests := []struct {
		name       string
		session    domainauth.Session
		wantStatus int
		wantCode   string
	}{
		{
			name:       "anonymous",
			session:    domainauth.Session{Status: domainauth.StatusAnonymous},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "authentication_required",
		},
		{
			name:       "wrong role",
			session:    authenticatedSession(domainauth.RoleCandidate),
			wantStatus: http.StatusForbidden,
			wantCode:   "insufficient_permissions",
		},
		{
			name:       "pending",
			session:    domainauth.Session{Status: domainauth.StatusLoading},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "session_pending",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := guarded(tt.session, domainauth.RoleAdmin)
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Accept", "application/json")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), `"error":"`+tt.wantCode+`"`)
		})
	}
}

func TestRequireRoles_HTMXUsesCurrentURL(t *testing.T) {
	h, _ := guarded(domainauth.Session{Status: domainauth.StatusAnonymous}, domainauth.RoleAdmin)
	req := httptest.NewRequest(http.MethodDelete, "/admin/jobs/j1", nil)
	req.Header.Set("Hx-Request", "true")
	req.Header.Set("Hx-Current-Url", "https://recruit.example.com/admin?deleted=1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fadmin%3Fdeleted%3D1", rec.Header().Get("Hx-Redirect"))
}

func TestRequireRoles_CustomPaths(t *testing.T) {
	cfg := GuardConfig{
		Sessions:         &fakeGuardSessions{session: authenticatedSession(domainauth.RoleCandidate)},
		LoginPath:        "/sign-in",
		UnauthorizedPath: "/forbidden",
	}
	h := RequireRoles(cfg, domainauth.RoleAdmin)(http.NotFoundHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/forbidden", rec.Header().Get("Location"))
}

func TestLoginURL(t *testing.T) {
	assert.Equal(t, "/login", LoginURL("/login", ""))
	assert.Equal(t, "/login", LoginURL("/login", "/"))
	assert.Equal(t, "/login?redirect_uri=%2Fcandidate", LoginURL("/login", "/candidate"))
	assert.Equal(t, "/login", LoginURL("/login", "https://evil.example.com/"))
}

func TestSafeRedirectPath(t *testing.T) {
	tests := map[string]string{
		"":                          "/",
		"/admin":                    "/admin",
		"/admin?sort=score&dir=asc": "/admin?sort=score&dir=asc",
		"//evil.example.com":        "/",
		"https://evil.example.com":  "/",
		`/\evil.example.com`:        "/",
		"admin":                     "/",
		"javascript:alert(1)":       "/",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, safeRedirectPath(in))
		})
	}
}

func TestSafeRedirectFromURL(t *testing.T) {
	assert.Equal(t, "", safeRedirectFromURL(""))
	assert.Equal(t, "/candidate/jobs/1", safeRedirectFromURL("http://localhost:8080/candidate/jobs/1"))
	assert.Equal(t, "", safeRedirectFromURL("//evil.example.com/x"))
	assert.Equal(t, "/admin", safeRedirectFromURL("/admin"))
}
