package httpx

import (
	"errors"
	"net/http"
)

// Home renders the landing page. Signed-in users get links to their area.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{Title: "Recruit", PageTitle: "Welcome", CurrentPage: PageHome}).Build()
	h.renderPage(w, r, http.StatusOK, data)
}

// Unauthorized renders the page shown when the signed-in role may not open a view.
func (h *UIHandlers) Unauthorized(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{
		Title:       "Not allowed - Recruit",
		PageTitle:   "Not allowed",
		CurrentPage: PageUnauthorized,
	}).Build()
	h.renderPage(w, r, http.StatusForbidden, data)
}

// NotFound handles 404 errors with auth-aware behavior.
// For browser requests, it renders an HTML error page.
// For API requests, it returns a JSON error response.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if IsBrowserRequest(r) {
		h.renderBrowserNotFound(w, r)
	} else {
		h.renderAPINotFound(w, r)
	}
}

// renderBrowserNotFound renders an HTML 404 page with auth-aware content.
func (h *UIHandlers) renderBrowserNotFound(w http.ResponseWriter, r *http.Request) {
	data := basePageData(r, PageMeta{Title: "Page Not Found - Recruit"})
	data["Code"] = "404"
	data["Message"] = "The page you're looking for doesn't exist."
	data["ShowLogin"] = IsAnonymous(r.Context())
	data["LoginURL"] = LoginURL(h.loginPath(), r.URL.RequestURI())

	if h.T == nil {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}
	if err := h.T.RenderError(w, http.StatusNotFound, data); err != nil {
		h.logger().Error("failed to render not found page", "error", err, "path", r.URL.Path)
		http.Error(w, "Page not found", http.StatusNotFound)
	}
}

// renderAPINotFound renders a JSON 404 response.
func (h *UIHandlers) renderAPINotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, ErrorParams{
		Code:    http.StatusNotFound,
		ErrCode: "not_found",
		Err:     errors.New("not found"),
	})
}
