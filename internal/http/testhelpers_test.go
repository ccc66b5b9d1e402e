package httpx

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/recruitdesk/recruit-web/internal/adapters/jwtclaims"
	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
	"github.com/recruitdesk/recruit-web/internal/mocks"
	authmocks "github.com/recruitdesk/recruit-web/internal/mocks/auth"
	"github.com/recruitdesk/recruit-web/internal/service"
	"github.com/recruitdesk/recruit-web/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// RequireTemplateRenderer loads the on-disk templates or fails the test.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: os.DirFS(TemplatePathFromTest)})
	require.NoError(t, err, "templates should parse")
	return tr
}

// testApp is the full browser stack: real session manager and recruitment
// service over a stub Auth API, an in-memory store and a mocked backend.
type testApp struct {
	handler  http.Handler
	sessions *service.SessionManager
	auth     *authmocks.StubAuthAPI
	store    *authmocks.MemoryCredentialStore
	backend  *mocks.MockRecruitmentAPI
	clock    *testutil.TestTimeProvider
}

type testAppOptions struct {
	seed domainauth.Credential
	// skipRestore leaves the session in the unknown state.
	skipRestore bool
}

func newTestApp(t *testing.T, opts testAppOptions) *testApp {
	t.Helper()
	ctrl := gomock.NewController(t)
	app := &testApp{
		auth:    &authmocks.StubAuthAPI{},
		store:   authmocks.NewMemoryCredentialStore(opts.seed),
		backend: mocks.NewMockRecruitmentAPI(ctrl),
		clock:   testutil.NewTestTimeProvider(testutil.TestTime()),
	}

	var err error
	app.sessions, err = service.NewSessionManager(service.SessionManagerOptions{
		API:     app.auth,
		Store:   app.store,
		Decoder: jwtclaims.NewDecoder(),
		Now:     app.clock.Now,
	})
	require.NoError(t, err)
	recruitment, err := service.NewRecruitmentService(service.RecruitmentServiceOptions{
		API:      app.backend,
		Sessions: app.sessions,
	})
	require.NoError(t, err)

	app.handler, err = NewRouter(RouterServices{
		Sessions:    app.sessions,
		Recruitment: recruitment,
		TemplateFS:  os.DirFS(TemplatePathFromTest),
	})
	require.NoError(t, err)

	if !opts.skipRestore {
		app.sessions.Restore(t.Context())
	}
	return app
}

// newSignedInApp restores a session for role from the credential store.
func newSignedInApp(t *testing.T, role domainauth.Role) *testApp {
	t.Helper()
	exp := testutil.TestTime().Add(time.Hour)
	cred := testutil.CandidateToken(t, "cora@example.com", exp)
	if role == domainauth.RoleAdmin {
		cred = testutil.AdminToken(t, "ada@example.com", exp)
	}
	app := newTestApp(t, testAppOptions{seed: cred})
	require.True(t, app.sessions.Snapshot().IsAuthenticated())
	return app
}

func (a *testApp) serve(req *http.Request) *httptest.ResponseRecorder {
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "text/html")
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.serve(httptest.NewRequest(http.MethodGet, path, nil))
}

// postForm sends an urlencoded form carrying a valid double-submit token.
func (a *testApp) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	return a.serve(newFormRequest(http.MethodPost, path, values))
}

func newFormRequest(method, path string, values url.Values) *http.Request {
	if values == nil {
		values = url.Values{}
	}
	values.Set(DefaultCSRFCookieName, testCSRFToken)
	req := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRFToken})
	return req
}

// newHTMXRequest builds an htmx request that authenticates CSRF with the header.
func newHTMXRequest(method, path string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Hx-Request", "true")
	req.Header.Set(DefaultCSRFHeaderName, testCSRFToken)
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRFToken})
	return req
}
