package httpx

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	recruitweb "github.com/recruitdesk/recruit-web"
	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
)

// RouterSessions is everything the router needs from the session manager.
type RouterSessions interface {
	SessionService
	SessionGuard
	SessionReader
}

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions    RouterSessions
	Recruitment RecruitmentService

	LoginPath        string
	UnauthorizedPath string
	MaxUploadBytes   int64
	CookieSecure     bool
	// TemplateFS overrides the template source (tests). Defaults to the embedded
	// templates, or the on-disk ones in dev mode.
	TemplateFS fs.FS
	IsDev      bool         // Development mode flag for template hot reloading
	Logger     *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates the browser-facing router.
// Order: BrowserDetection -> LoadSession -> CSRF -> notFoundHandler -> mux.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Sessions == nil {
		return nil, errors.New("Sessions is required")
	}
	if services.Recruitment == nil {
		return nil, errors.New("Recruitment is required")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS(services),
		DevMode:    services.IsDev,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	ui := &UIHandlers{
		T:              tr,
		Sessions:       services.Sessions,
		Recruitment:    services.Recruitment,
		LoginPath:      services.LoginPath,
		MaxUploadBytes: services.MaxUploadBytes,
		IsDev:          services.IsDev,
		Logger:         logger,
	}
	authHandlers := &AuthHandlers{Sessions: services.Sessions, LoginPath: services.LoginPath, Logger: logger}
	guard := GuardConfig{
		Sessions:         services.Sessions,
		LoginPath:        services.LoginPath,
		UnauthorizedPath: services.UnauthorizedPath,
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /static/", staticHandler(services.IsDev))
	registerAuthRoutes(mux, ui, authHandlers, guard)
	registerJobRoutes(mux, ui, RequireRoles(guard, domainauth.RoleCandidate))
	registerAdminRoutes(mux, ui, RequireRoles(guard, domainauth.RoleAdmin))

	var handler http.Handler = &notFoundHandler{mux: mux, uiHandlers: ui}
	handler = CSRFProtection(CSRFConfig{
		Secure:       services.CookieSecure,
		MaxFormBytes: maxFormBytes(services.MaxUploadBytes),
	})(handler)
	handler = LoadSession(services.Sessions)(handler)
	return BrowserDetection()(handler), nil
}

func maxFormBytes(upload int64) int64 {
	if upload <= 0 {
		return DefaultMaxFormBytes
	}
	// room for the other multipart fields next to the CV
	return upload + 1<<20
}

func templateFS(services RouterServices) fs.FS {
	if services.TemplateFS != nil {
		return services.TemplateFS
	}
	if services.IsDev {
		return os.DirFS(TemplatePathFromRoot)
	}
	sub, err := fs.Sub(recruitweb.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		return os.DirFS(TemplatePathFromRoot)
	}
	return sub
}

// staticHandler serves /static from disk in dev mode and from the embedded FS otherwise.
func staticHandler(isDev bool) http.Handler {
	var root http.FileSystem = http.Dir("frontend/static")
	if !isDev {
		if sub, err := fs.Sub(recruitweb.StaticFS, "frontend/static"); err == nil {
			root = http.FS(sub)
		}
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(root)), isDev)
}

func staticWithCacheHeaders(handler http.Handler, isDev bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isDev {
			w.Header().Set("Cache-Control", "no-cache")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		handler.ServeHTTP(w, r)
	})
}

func registerAuthRoutes(mux *http.ServeMux, ui *UIHandlers, h *AuthHandlers, guard GuardConfig) {
	mux.HandleFunc("GET /{$}", ui.Home)
	mux.HandleFunc("GET "+guard.loginPath(), ui.LoginPage)
	mux.HandleFunc("POST "+guard.loginPath(), ui.LoginPost)
	mux.HandleFunc("GET /signup", ui.SignupPage)
	mux.HandleFunc("POST /signup", ui.SignupPost)
	mux.HandleFunc("GET "+guard.unauthorizedPath(), ui.Unauthorized)
	mux.HandleFunc("POST /logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}

// registerJobRoutes mounts the public job board. Only applying needs a candidate session.
func registerJobRoutes(mux *http.ServeMux, h *UIHandlers, candidateOnly func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /candidate", h.CandidateJobs)
	mux.HandleFunc("GET /candidate/jobs/{id}", h.CandidateJob)
	mux.Handle("POST /candidate/jobs/{id}/apply", candidateOnly(http.HandlerFunc(h.CandidateApply)))
}

func registerAdminRoutes(mux *http.ServeMux, h *UIHandlers, wrap func(http.Handler) http.Handler) {
	mux.Handle("GET /admin", wrap(http.HandlerFunc(h.AdminDashboard)))
	mux.Handle("GET /admin/jobs/new", wrap(http.HandlerFunc(h.NewJobForm)))
	mux.Handle("POST /admin/jobs", wrap(http.HandlerFunc(h.CreateJob)))
	mux.Handle("GET /admin/jobs/{id}/edit", wrap(http.HandlerFunc(h.EditJobForm)))
	mux.Handle("POST /admin/jobs/{id}/edit", wrap(http.HandlerFunc(h.UpdateJob)))
	mux.Handle("POST /admin/jobs/{id}/delete", wrap(http.HandlerFunc(h.DeleteJob)))
	mux.Handle("DELETE /admin/jobs/{id}", wrap(http.HandlerFunc(h.DeleteJob)))
	mux.Handle("GET /admin/jobs/{id}/applications", wrap(http.HandlerFunc(h.Applications)))
	mux.Handle("GET /admin/jobs/{id}/applications.xlsx", wrap(http.HandlerFunc(h.ExportApplications)))
	mux.Handle("POST /admin/applications/{id}/shortlist", wrap(http.HandlerFunc(h.Shortlist)))
	mux.Handle("POST /admin/applications/{id}/score", wrap(http.HandlerFunc(h.UpdateScore)))
	mux.Handle("GET /admin/shortlist", wrap(http.HandlerFunc(h.ShortlistPage)))
	mux.Handle("GET /admin/shortlist.xlsx", wrap(http.HandlerFunc(h.ExportShortlist)))
}

// notFoundHandler wraps the mux to provide custom 404 handling.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

// ServeHTTP implements http.Handler and provides custom 404 handling.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := h.mux.Handler(r); pattern != "" {
		h.mux.ServeHTTP(w, r)
		return
	}
	cw := newCaptureWriter()
	h.mux.ServeHTTP(cw, r)

	// Method mismatches (405) and redirects pass through unchanged.
	if cw.status != http.StatusNotFound {
		cw.flushTo(w)
		return
	}
	h.uiHandlers.NotFound(w, r)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter() *captureWriter {
	return &captureWriter{header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	_, _ = w.Write(c.buf.Bytes())
}
