package httpx

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/recruitdesk/recruit-web/internal/domain/model"
	apperrors "github.com/recruitdesk/recruit-web/internal/errors"
	"github.com/recruitdesk/recruit-web/internal/export"
	"github.com/recruitdesk/recruit-web/internal/http/validation"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 20000
	maxShortFieldLen  = 200
	defaultMaxApps    = 100
)

// AdminDashboard lists every job with its application counts.
func (h *UIHandlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	meta := PageMeta{Title: "Dashboard - Recruit", PageTitle: "Jobs", CurrentPage: PageAdminDashboard}
	jobs, err := h.Recruitment.Jobs(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, ErrorOpts{
			PageMeta: meta,
			Data:     map[string]any{"Jobs": []model.Job{}, "ActiveJobs": 0, "TotalApplications": 0},
		})
		return
	}

	active, applications := 0, 0
	for _, j := range jobs {
		if j.IsActive {
			active++
		}
		applications += j.CurrentApplications
	}
	data := NewTemplateData(r, meta).
		WithNotice(dashboardNotice(r)).
		With("Jobs", jobs).
		With("ActiveJobs", active).
		With("TotalApplications", applications).
		Build()
	h.renderPage(w, r, http.StatusOK, data)
}

// jobFormValues holds raw form input so it can be re-rendered on error.
// ID is set when an existing job is being edited.
type jobFormValues struct {
	ID              string
	Title           string
	Description     string
	Company         string
	Location        string
	Salary          string
	Requirements    string
	Keywords        string
	MaxApplications string
	IsActive        bool
}

func jobFormMeta() PageMeta {
	return PageMeta{Title: "New job - Recruit", PageTitle: "New job", CurrentPage: PageJobForm}
}

func editJobMeta() PageMeta {
	return PageMeta{Title: "Edit job - Recruit", PageTitle: "Edit job", CurrentPage: PageJobForm}
}

// parseJobForm reads and validates the job form fields.
func parseJobForm(r *http.Request) (jobFormValues, map[string]string) {
	form := jobFormValues{
		Title:           strings.TrimSpace(r.PostFormValue("title")),
		Description:     strings.TrimSpace(r.PostFormValue("description")),
		Company:         strings.TrimSpace(r.PostFormValue("company")),
		Location:        strings.TrimSpace(r.PostFormValue("location")),
		Salary:          strings.TrimSpace(r.PostFormValue("salary")),
		Requirements:    r.PostFormValue("requirements"),
		Keywords:        r.PostFormValue("keywords"),
		MaxApplications: strings.TrimSpace(r.PostFormValue("max_applications")),
		IsActive:        r.PostFormValue("is_active") != "",
	}
	errs := validation.New().
		Validate("title", form.Title, validation.Required("Title", maxTitleLen)).
		Validate("description", form.Description, validation.Required("Description", maxDescriptionLen)).
		Validate("company", form.Company, validation.Optional("Company", maxShortFieldLen)).
		Validate("location", form.Location, validation.Optional("Location", maxShortFieldLen)).
		Validate("salary", form.Salary, validation.Optional("Salary", maxShortFieldLen)).
		Validate("max_applications", form.MaxApplications, validation.NonNegativeInt("Max applications")).
		Errors()
	return form, errs
}

func (f jobFormValues) maxApplications() int {
	n, _ := strconv.Atoi(f.MaxApplications)
	return n
}

func (f jobFormValues) details() model.JobDetails {
	return model.JobDetails{
		Title:        f.Title,
		Description:  f.Description,
		Company:      f.Company,
		Location:     f.Location,
		Salary:       f.Salary,
		Requirements: splitLines(f.Requirements),
		IsActive:     f.IsActive,
	}
}

func jobFormFrom(j model.Job) jobFormValues {
	return jobFormValues{
		ID:              j.ID,
		Title:           j.Title,
		Description:     j.Description,
		Company:         j.Company,
		Location:        j.Location,
		Salary:          j.Salary,
		Requirements:    strings.Join(j.Requirements, "\n"),
		Keywords:        keywordList(j.Keywords),
		MaxApplications: strconv.Itoa(j.MaxApplications),
		IsActive:        j.IsActive,
	}
}

// NewJobForm renders an empty job form.
func (h *UIHandlers) NewJobForm(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, jobFormMeta()).
		With("Form", jobFormValues{MaxApplications: strconv.Itoa(defaultMaxApps), IsActive: true}).
		Build()
	h.renderPage(w, r, http.StatusOK, data)
}

// CreateJob validates the job form and creates the job.
func (h *UIHandlers) CreateJob(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form, errs := parseJobForm(r)
	formData := map[string]any{"Form": form}
	if len(errs) > 0 {
		RenderError(ErrorOpts{W: w, R: r, FieldErrors: errs, Renderer: h.renderPage, PageMeta: jobFormMeta(), Data: formData})
		return
	}

	d := form.details()
	job, err := h.Recruitment.CreateJob(r.Context(), model.CreateJobRequest{
		Title:           d.Title,
		Description:     d.Description,
		Company:         d.Company,
		Location:        d.Location,
		Salary:          d.Salary,
		Requirements:    d.Requirements,
		Keywords:        model.ParseKeywords(form.Keywords),
		MaxApplications: form.maxApplications(),
		IsActive:        d.IsActive,
	})
	if err != nil {
		h.handleServiceError(w, r, err, ErrorOpts{PageMeta: jobFormMeta(), Data: formData})
		return
	}
	h.logger().InfoContext(r.Context(), "job created via ui", "job_id", job.ID)
	redirect(w, r, adminHomePath+"?created="+url.QueryEscape(job.ID))
}

// EditJobForm renders the job form filled with the job's current values.
// GET /admin/jobs/{id}/edit.
func (h *UIHandlers) EditJobForm(w http.ResponseWriter, r *http.Request) {
	job, err := h.Recruitment.Job(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, r, err, ErrorOpts{PageMeta: editJobMeta()})
		return
	}
	meta := editJobMeta()
	meta.PageTitle = "Edit " + job.Title
	data := NewTemplateData(r, meta).With("Form", jobFormFrom(job)).Build()
	h.renderPage(w, r, http.StatusOK, data)
}

// UpdateJob validates the job form and saves it over the existing job.
// POST /admin/jobs/{id}/edit.
func (h *UIHandlers) UpdateJob(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id := r.PathValue("id")
	form, errs := parseJobForm(r)
	form.ID = id
	formData := map[string]any{"Form": form}
	if len(errs) > 0 {
		RenderError(ErrorOpts{W: w, R: r, FieldErrors: errs, Renderer: h.renderPage, PageMeta: editJobMeta(), Data: formData})
		return
	}

	job, err := h.Recruitment.UpdateJob(r.Context(), id, model.JobUpdate{
		JobDetails:      form.details(),
		Keywords:        model.ParseKeywords(form.Keywords),
		MaxApplications: form.maxApplications(),
	})
	if err != nil {
		h.handleServiceError(w, r, err, ErrorOpts{PageMeta: editJobMeta(), Data: formData})
		return
	}
	h.logger().InfoContext(r.Context(), "job updated via ui", "job_id", job.ID)
	redirect(w, r, adminHomePath+"?updated="+url.QueryEscape(id))
}

// DeleteJob removes a job. htmx callers get the row removed via an empty 200 body.
func (h *UIHandlers) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Recruitment.DeleteJob(r.Context(), id); err != nil {
		if IsHTMX(r) && !apperrors.IsUnauthorized(err) {
			HTMX(w).Toast(processError(err, new(map[string]string)), "error")
			w.WriteHeader(StatusForError(err))
			return
		}
		h.handleServiceError(w, r, err, ErrorOpts{
			PageMeta: PageMeta{Title: "Dashboard - Recruit", PageTitle: "Jobs", CurrentPage: PageAdminDashboard},
			Data:     map[string]any{"Jobs": []model.Job{}, "ActiveJobs": 0, "TotalApplications": 0},
		})
		return
	}
	if IsHTMX(r) {
		HTMX(w).Toast("Job deleted.", "success")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, adminHomePath+"?deleted=1", http.StatusSeeOther)
}

// sortLink is one column header of the applications table.
type sortLink struct {
	Active bool
	Dir    string
	URL    string
}

// Applications lists a job's applications, sorted by score (default) or date.
// GET /admin/jobs/{id}/applications?sort=score|createdAt&dir=asc|desc.
func (h *UIHandlers) Applications(w http.ResponseWriter, r *http.Request) {
	meta := PageMeta{Title: "Applications - Recruit", PageTitle: "Applications", CurrentPage: PageApplications}
	jobID := r.PathValue("id")
	order := model.ParseApplicationSort(r.URL.Query().Get("sort"), r.URL.Query().Get("dir"))

	job, err := h.Recruitment.Job(r.Context(), jobID)
	if err != nil {
		h.handleServiceError(w, r, err, ErrorOpts{PageMeta: meta})
		return
	}
	apps, err := h.Recruitment.Applications(r.Context(), jobID, order)
	if err != nil {
		h.handleServiceError(w, r, err, ErrorOpts{PageMeta: meta})
		return
	}
	meta.Title = "Applications for " + job.Title + " - Recruit"
	meta.PageTitle = job.Title

	base := "/admin/jobs/" + url.PathEscape(jobID) + "/applications"
	data := NewTemplateData(r, meta).
		WithNotice(applicationsNotice(r)).
		With("Job", job).
		With("Applications", apps).
		With("Sort", order).
		With("ScoreSort", columnLink(base, order, model.SortByScore)).
		With("DateSort", columnLink(base, order, model.SortByCreatedAt)).
		With("ExportURL", base+".xlsx?"+sortQuery(order)).
		Build()
	h.renderPage(w, r, http.StatusOK, data)
}

func columnLink(base string, current model.ApplicationSort, field model.ApplicationSortField) sortLink {
	next := current.Toggle(field)
	return sortLink{
		Active: current.Field == field,
		Dir:    current.Dir(),
		URL:    base + "?" + sortQuery(next),
	}
}

func sortQuery(s model.ApplicationSort) string {
	q := url.Values{}
	q.Set("sort", string(s.Field))
	q.Set("dir", s.Dir())
	return q.Encode()
}

// Shortlist marks an application as manually selected.
// POST /admin/applications/{id}/shortlist, with job_id in the form for the redirect.
func (h *UIHandlers) Shortlist(w http.ResponseWriter, r *http.Request) {
	appID := r.PathValue("id")
	jobID := r.PostFormValue("job_id")
	entry, err := h.Recruitment.Shortlist(r.Context(), appID)
	if err != nil {
		if IsHTMX(r) && !apperrors.IsUnauthorized(err) {
			HTMX(w).Toast(processError(err, new(map[string]string)), "error")
			w.WriteHeader(StatusForError(err))
			return
		}
		h.handleServiceError(w, r, err, ErrorOpts{
			PageMeta: PageMeta{Title: "Applications - Recruit", PageTitle: "Applications", CurrentPage: PageApplications},
		})
		return
	}
	h.logger().InfoContext(r.Context(), "application shortlisted", "application_id", appID, "shortlist_id", entry.ID)
	if IsHTMX(r) {
		HTMX(w).Toast("Candidate shortlisted.", "success")
		w.WriteHeader(http.StatusOK)
		return
	}
	target := adminHomePath
	if jobID != "" {
		target = "/admin/jobs/" + url.PathEscape(jobID) + "/applications?shortlisted=1"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// UpdateScore overrides an application's match score.
// POST /admin/applications/{id}/score, with score and job_id in the form.
func (h *UIHandlers) UpdateScore(w http.ResponseWriter, r *http.Request) {
	appID := r.PathValue("id")
	jobID := r.PostFormValue("job_id")
	raw := r.PostFormValue("score")

	var err error
	if msg := validation.NumberRange("Score", model.MinScore, model.MaxScore)(raw); msg != "" {
		err = apperrors.Validation(msg)
	} else {
		score, _ := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		_, err = h.Recruitment.UpdateScore(r.Context(), appID, score)
	}
	if err != nil {
		if IsHTMX(r) && !apperrors.IsUnauthorized(err) {
			HTMX(w).Toast(processError(err, new(map[string]string)), "error")
			w.WriteHeader(StatusForError(err))
			return
		}
		h.handleServiceError(w, r, err, ErrorOpts{
			PageMeta: PageMeta{Title: "Applications - Recruit", PageTitle: "Applications", CurrentPage: PageApplications},
		})
		return
	}
	if IsHTMX(r) {
		HTMX(w).Toast("Score updated.", "success")
		w.WriteHeader(http.StatusOK)
		return
	}
	target := adminHomePath
	if jobID != "" {
		target = "/admin/jobs/" + url.PathEscape(jobID) + "/applications?scored=1"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// ShortlistPage lists every shortlisted candidate across jobs.
// GET /admin/shortlist.
func (h *UIHandlers) ShortlistPage(w http.ResponseWriter, r *http.Request) {
	meta := PageMeta{Title: "Shortlist - Recruit", PageTitle: "Shortlist", CurrentPage: PageShortlist}
	entries, err := h.Recruitment.Shortlisted(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, ErrorOpts{PageMeta: meta, Data: map[string]any{"Entries": nil}})
		return
	}
	data := NewTemplateData(r, meta).With("Entries", entries).Build()
	h.renderPage(w, r, http.StatusOK, data)
}

// ExportShortlist downloads the shortlist as an XLSX workbook.
func (h *UIHandlers) ExportShortlist(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.Recruitment.ExportShortlist(r.Context(), &buf); err != nil {
		h.handleServiceError(w, r, err, ErrorOpts{
			PageMeta: PageMeta{Title: "Shortlist - Recruit", PageTitle: "Shortlist", CurrentPage: PageShortlist},
		})
		return
	}
	writeWorkbook(w, r, h.logger(), export.ShortlistFilename, &buf)
}

// ExportApplications downloads a job's applications as an XLSX workbook, in the
// order currently shown. The workbook is built in memory so failures still
// render an error page.
func (h *UIHandlers) ExportApplications(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	order := model.ParseApplicationSort(r.URL.Query().Get("sort"), r.URL.Query().Get("dir"))

	var buf bytes.Buffer
	job, err := h.Recruitment.ExportApplications(r.Context(), jobID, order, &buf)
	if err != nil {
		h.handleServiceError(w, r, err, ErrorOpts{
			PageMeta: PageMeta{Title: "Applications - Recruit", PageTitle: "Applications", CurrentPage: PageApplications},
		})
		return
	}

	writeWorkbook(w, r, h.logger().With("job_id", jobID), export.Filename(job), &buf)
}

func writeWorkbook(w http.ResponseWriter, r *http.Request, logger *slog.Logger, filename string, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.WarnContext(r.Context(), "export download interrupted", "error", err)
	}
}

func splitLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func dashboardNotice(r *http.Request) string {
	q := r.URL.Query()
	switch {
	case q.Get("created") != "":
		return "Job created."
	case q.Get("updated") != "":
		return "Job updated."
	case q.Get("deleted") != "":
		return "Job deleted."
	default:
		return ""
	}
}

func applicationsNotice(r *http.Request) string {
	q := r.URL.Query()
	switch {
	case q.Get("shortlisted") != "":
		return "Candidate shortlisted."
	case q.Get("scored") != "":
		return "Score updated."
	default:
		return ""
	}
}
