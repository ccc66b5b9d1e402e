package httpx

import (
	"context"
	"html"
	"io"
	"log/slog"
	"net/http"

	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
	"github.com/recruitdesk/recruit-web/internal/domain/model"
	"github.com/recruitdesk/recruit-web/internal/ports"
	"github.com/recruitdesk/recruit-web/internal/service"
)

// SessionService is the session manager surface the UI needs.
type SessionService interface {
	Login(ctx context.Context, email, password string) service.Result
	Register(ctx context.Context, email, password string, role domainauth.Role) service.Result
	Logout(ctx context.Context)
	Current(ctx context.Context) domainauth.Session
	IsAuthorized(ctx context.Context, required ...domainauth.Role) domainauth.Decision
	Snapshot() domainauth.Session
	ConsumeNotice() string
}

// RecruitmentService is the job and application surface the UI needs.
type RecruitmentService interface {
	OpenJobs(ctx context.Context) ([]model.Job, error)
	OpenJob(ctx context.Context, id string) (model.Job, error)
	Apply(ctx context.Context, jobID string, cv ports.CVUpload) (model.Application, error)
	Jobs(ctx context.Context) ([]model.Job, error)
	Job(ctx context.Context, id string) (model.Job, error)
	CreateJob(ctx context.Context, req model.CreateJobRequest) (model.Job, error)
	UpdateJob(ctx context.Context, id string, u model.JobUpdate) (model.Job, error)
	DeleteJob(ctx context.Context, id string) error
	Applications(ctx context.Context, jobID string, order model.ApplicationSort) ([]model.Application, error)
	UpdateScore(ctx context.Context, applicationID string, score float64) (model.Application, error)
	Shortlist(ctx context.Context, applicationID string) (model.ShortlistEntry, error)
	Shortlisted(ctx context.Context) ([]model.ShortlistEntry, error)
	ExportApplications(ctx context.Context, jobID string, order model.ApplicationSort, w io.Writer) (model.Job, error)
	ExportShortlist(ctx context.Context, w io.Writer) error
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ SessionService     = (*service.SessionManager)(nil)
	_ RecruitmentService = (*service.RecruitmentService)(nil)
	_ SessionGuard       = (*service.SessionManager)(nil)
	_ SessionReader      = (*service.SessionManager)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T           *TemplateRenderer
	Sessions    SessionService
	Recruitment RecruitmentService
	// LoginPath is where signed-out visitors are sent; defaults to /login.
	LoginPath      string
	MaxUploadBytes int64
	IsDev          bool // Development mode flag for enhanced error reporting
	Logger         *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *UIHandlers) loginPath() string {
	if h.LoginPath == "" {
		return defaultLoginPath
	}
	return h.LoginPath
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// UserView is the signed-in user as templates see it.
type UserView struct {
	Email string
	Role  string
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	data := map[string]any{
		"Title":           meta.Title,
		"PageTitle":       meta.PageTitle,
		"CurrentPage":     meta.CurrentPage,
		"IsAuthenticated": false,
		"IsAdmin":         false,
		"IsCandidate":     false,
	}
	if token := GetCSRFToken(r); token != "" {
		data["CSRFToken"] = token
	}
	if id, ok := IdentityFromContext(r.Context()); ok {
		data["IsAuthenticated"] = true
		data["IsAdmin"] = id.Role == domainauth.RoleAdmin
		data["IsCandidate"] = id.Role == domainauth.RoleCandidate
		data["User"] = &UserView{Email: id.Email, Role: string(id.Role)}
	}
	return data
}

// renderPage renders the full layout, or only the content fragment for htmx swaps.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, status int, data map[string]any) {
	var err error
	if WantsPartial(r) {
		err = h.T.RenderPartial(w, status, data)
	} else {
		err = h.T.RenderFull(w, status, data)
	}
	if err != nil {
		h.logAndRenderTemplateError(w, r, err)
	}
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger().Error("template rendering failed",
		"error", err,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if !h.IsDev {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	if _, writeErr := io.WriteString(w, `<div class="template-error"><h2>Template Rendering Error</h2><p><strong>Path:</strong> `+
		html.EscapeString(r.URL.Path)+`</p><pre>`+html.EscapeString(err.Error())+`</pre></div>`); writeErr != nil {
		h.logger().Error("failed to write template error response", "error", writeErr)
	}
}
