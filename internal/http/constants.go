package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	PageHome         = "home"
	PageLogin        = "login"
	PageSignup       = "signup"
	PageUnauthorized = "unauthorized"

	// Candidate pages.
	PageCandidateJobs = "candidate-jobs"
	PageCandidateJob  = "candidate-job"

	// Admin pages.
	PageAdminDashboard = "admin-dashboard"
	PageJobForm        = "job-form"
	PageApplications   = "applications"
	PageShortlist      = "shortlist"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageHome:           "home-content",
	PageLogin:          "login-content",
	PageSignup:         "signup-content",
	PageUnauthorized:   "unauthorized-content",
	PageCandidateJobs:  "candidate-jobs-content",
	PageCandidateJob:   "candidate-job-content",
	PageAdminDashboard: "admin-dashboard-content",
	PageJobForm:        "job-form-content",
	PageApplications:   "applications-content",
	PageShortlist:      "shortlist-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to home-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "home-content"
}
