package httpx

import (
	"net/http"
	"strings"

	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
	apperrors "github.com/recruitdesk/recruit-web/internal/errors"
	"github.com/recruitdesk/recruit-web/internal/service"
)

const (
	adminHomePath     = "/admin"
	candidateHomePath = "/candidate"
)

// LoginPage renders the sign-in form. A notice left by an expired session is shown once.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if s, ok := GetSessionFromContext(r.Context()); ok && s.IsAuthenticated() {
		redirect(w, r, landingPath(s.Identity.Role, r.URL.Query().Get("redirect_uri")))
		return
	}
	data := NewTemplateData(r, PageMeta{Title: "Sign in - Recruit", PageTitle: "Sign in", CurrentPage: PageLogin}).
		WithNotice(h.Sessions.ConsumeNotice()).
		With("RedirectURI", formRedirectURI(r.URL.Query().Get("redirect_uri"))).
		Build()
	h.renderPage(w, r, http.StatusOK, data)
}

// LoginPost signs in and continues to redirect_uri or the role's home page.
func (h *UIHandlers) LoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	redirectURI := formRedirectURI(r.PostFormValue("redirect_uri"))

	res := h.Sessions.Login(r.Context(), email, r.PostFormValue("password"))
	if !res.OK {
		h.renderAuthFailure(w, r, res, PageMeta{Title: "Sign in - Recruit", PageTitle: "Sign in", CurrentPage: PageLogin},
			map[string]any{"Email": email, "RedirectURI": redirectURI})
		return
	}
	h.redirectAfterAuth(w, r, redirectURI)
}

// SignupPage renders the registration form.
func (h *UIHandlers) SignupPage(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{Title: "Create account - Recruit", PageTitle: "Create account", CurrentPage: PageSignup}).
		With("Role", string(domainauth.RoleCandidate)).
		With("RedirectURI", formRedirectURI(r.URL.Query().Get("redirect_uri"))).
		Build()
	h.renderPage(w, r, http.StatusOK, data)
}

// SignupPost registers an account, signs in as it and continues like LoginPost.
func (h *UIHandlers) SignupPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	rawRole := strings.TrimSpace(r.PostFormValue("role"))
	redirectURI := formRedirectURI(r.PostFormValue("redirect_uri"))
	meta := PageMeta{Title: "Create account - Recruit", PageTitle: "Create account", CurrentPage: PageSignup}
	formData := map[string]any{"Email": email, "Role": rawRole, "RedirectURI": redirectURI}

	var role domainauth.Role
	if rawRole != "" {
		parsed, err := domainauth.ParseRole(rawRole)
		if err != nil {
			RenderError(ErrorOpts{
				W: w, R: r,
				FieldErrors: map[string]string{"role": "Choose admin or candidate."},
				Renderer:    h.renderPage,
				PageMeta:    meta,
				Data:        formData,
			})
			return
		}
		role = parsed
	}

	res := h.Sessions.Register(r.Context(), email, r.PostFormValue("password"), role)
	if !res.OK {
		h.renderAuthFailure(w, r, res, meta, formData)
		return
	}
	h.redirectAfterAuth(w, r, redirectURI)
}

func (h *UIHandlers) renderAuthFailure(
	w http.ResponseWriter,
	r *http.Request,
	res service.Result,
	meta PageMeta,
	formData map[string]any,
) {
	code := res.Code
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	status := StatusForError(apperrors.New(code, res.Message))
	if code == apperrors.ErrCodeSuperseded {
		status = http.StatusConflict
	}
	data := NewTemplateData(r, meta).WithError(res.Message)
	for k, v := range formData {
		data.With(k, v)
	}
	h.renderPage(w, r, status, data.Build())
}

func (h *UIHandlers) redirectAfterAuth(w http.ResponseWriter, r *http.Request, redirectURI string) {
	s := h.Sessions.Snapshot()
	var role domainauth.Role
	if s.Identity != nil {
		role = s.Identity.Role
	}
	redirect(w, r, landingPath(role, redirectURI))
}

// landingPath is redirectURI when it is a usable same-origin path, else the role's home.
func landingPath(role domainauth.Role, redirectURI string) string {
	if target := formRedirectURI(redirectURI); target != "" {
		return target
	}
	switch role {
	case domainauth.RoleAdmin:
		return adminHomePath
	case domainauth.RoleCandidate:
		return candidateHomePath
	default:
		return "/"
	}
}

// formRedirectURI returns the sanitized origin, or "" when none was captured.
func formRedirectURI(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if safe := safeRedirectPath(raw); safe != "/" {
		return safe
	}
	return ""
}
