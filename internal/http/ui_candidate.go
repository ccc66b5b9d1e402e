package httpx

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	apperrors "github.com/recruitdesk/recruit-web/internal/errors"
	"github.com/recruitdesk/recruit-web/internal/ports"
)

const (
	cvFormField       = "cv"
	cvContentType     = "application/pdf"
	defaultMaxCVBytes = 5 << 20
)

// CandidateJobs lists the jobs currently open for applications.
func (h *UIHandlers) CandidateJobs(w http.ResponseWriter, r *http.Request) {
	meta := PageMeta{Title: "Open positions - Recruit", PageTitle: "Open positions", CurrentPage: PageCandidateJobs}
	jobs, err := h.Recruitment.OpenJobs(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, ErrorOpts{PageMeta: meta, Data: map[string]any{"Jobs": nil}})
		return
	}
	data := NewTemplateData(r, meta).
		WithNotice(appliedNotice(r)).
		With("Jobs", jobs).
		Build()
	h.renderPage(w, r, http.StatusOK, data)
}

// CandidateJob shows one job with the CV upload form.
func (h *UIHandlers) CandidateJob(w http.ResponseWriter, r *http.Request) {
	h.renderCandidateJob(w, r, nil, nil)
}

// renderCandidateJob renders the job page, with the upload form's errors when
// fieldErrors or applyErr is set.
func (h *UIHandlers) renderCandidateJob(
	w http.ResponseWriter,
	r *http.Request,
	fieldErrors map[string]string,
	applyErr error,
) {
	meta := PageMeta{Title: "Job - Recruit", PageTitle: "Job", CurrentPage: PageCandidateJob}
	job, err := h.Recruitment.OpenJob(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, r, err, ErrorOpts{PageMeta: meta})
		return
	}
	meta.Title = job.Title + " - Recruit"
	meta.PageTitle = job.Title

	data := map[string]any{
		"Job":       job,
		"Accepting": job.AcceptingApplications(),
	}
	if len(fieldErrors) > 0 || applyErr != nil {
		RenderError(ErrorOpts{
			W: w, R: r,
			Err:         applyErr,
			FieldErrors: fieldErrors,
			Renderer:    h.renderPage,
			PageMeta:    meta,
			Data:        data,
		})
		return
	}
	b := NewTemplateData(r, meta)
	for k, v := range data {
		b.With(k, v)
	}
	h.renderPage(w, r, http.StatusOK, b.Build())
}

// CandidateApply forwards the uploaded CV to the Recruitment API.
// POST /candidate/jobs/{id}/apply (multipart, field "cv").
func (h *UIHandlers) CandidateApply(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	limit := h.maxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooBig *http.MaxBytesError
		msg := "Upload your CV as a PDF file."
		if errors.As(err, &tooBig) {
			msg = "The CV file is too large."
		}
		h.renderCandidateJob(w, r, map[string]string{cvFormField: msg}, nil)
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	file, header, err := r.FormFile(cvFormField)
	if err != nil {
		h.renderCandidateJob(w, r, map[string]string{cvFormField: "CV is required."}, nil)
		return
	}
	defer file.Close()

	if msg := validateCV(header, limit); msg != "" {
		h.renderCandidateJob(w, r, map[string]string{cvFormField: msg}, nil)
		return
	}

	app, err := h.Recruitment.Apply(r.Context(), jobID, ports.CVUpload{
		Filename:    filepath.Base(header.Filename),
		ContentType: cvContentType,
		Body:        file,
	})
	if err != nil {
		if apperrors.IsUnauthorized(err) || apperrors.IsNotFound(err) {
			h.handleServiceError(w, r, err, ErrorOpts{})
			return
		}
		h.renderCandidateJob(w, r, nil, err)
		return
	}
	h.logger().InfoContext(r.Context(), "application submitted", "job_id", jobID, "application_id", app.ID)
	redirect(w, r, candidateHomePath+"?applied="+jobID)
}

func (h *UIHandlers) maxUploadBytes() int64 {
	if h.MaxUploadBytes > 0 {
		return h.MaxUploadBytes
	}
	return defaultMaxCVBytes
}

// validateCV accepts PDF uploads only, checked by extension and declared type.
func validateCV(header *multipart.FileHeader, limit int64) string {
	if header.Size == 0 {
		return "The CV file is empty."
	}
	if header.Size > limit {
		return "The CV file is too large."
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		return "Only PDF files are accepted."
	}
	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, cvContentType) &&
		ct != "application/octet-stream" {
		return "Only PDF files are accepted."
	}
	return ""
}

func appliedNotice(r *http.Request) string {
	if r.URL.Query().Get("applied") == "" {
		return ""
	}
	return "Your application was submitted. Good luck!"
}
