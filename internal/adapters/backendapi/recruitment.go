package backendapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
	"github.com/recruitdesk/recruit-web/internal/domain/model"
	apperrors "github.com/recruitdesk/recruit-web/internal/errors"
	"github.com/recruitdesk/recruit-web/internal/ports"
)

var _ ports.RecruitmentAPI = (*RecruitmentClient)(nil)

// cvFieldName is the multipart field the backend reads the CV from.
const cvFieldName = "cv"

// RecruitmentClient implements ports.RecruitmentAPI.
type RecruitmentClient struct {
	c *Client
}

// NewRecruitmentClient wraps c for the job and application endpoints.
func NewRecruitmentClient(c *Client) *RecruitmentClient {
	return &RecruitmentClient{c: c}
}

func (r *RecruitmentClient) ListOpenJobs(ctx context.Context, cred domainauth.Credential) ([]model.Job, error) {
	var jobs []model.Job
	err := r.getJSON(ctx, cred, &jobs, "candidate", "jobs")
	return jobs, err
}

func (r *RecruitmentClient) GetOpenJob(ctx context.Context, cred domainauth.Credential, id string) (model.Job, error) {
	var job model.Job
	err := r.getJSON(ctx, cred, &job, "candidate", "jobs", id)
	return job, err
}

// Apply uploads cv as multipart field "cv" to POST /candidate/apply/{jobID}.
func (r *RecruitmentClient) Apply(
	ctx context.Context,
	cred domainauth.Credential,
	jobID string,
	cv ports.CVUpload,
) (model.Application, error) {
	if cv.Body == nil {
		return model.Application{}, apperrors.ValidationField(cvFieldName, "a CV file is required")
	}
	body, contentType, err := multipartCV(cv)
	if err != nil {
		return model.Application{}, err
	}
	var app model.Application
	err = r.call(ctx, request{
		method:      http.MethodPost,
		url:         r.c.endpoint("candidate", "apply", jobID),
		cred:        cred,
		body:        body,
		contentType: contentType,
	}, &app)
	return app, err
}

func (r *RecruitmentClient) ListJobs(ctx context.Context, cred domainauth.Credential) ([]model.Job, error) {
	var jobs []model.Job
	err := r.getJSON(ctx, cred, &jobs, "admin", "jobs")
	return jobs, err
}

func (r *RecruitmentClient) GetJob(ctx context.Context, cred domainauth.Credential, id string) (model.Job, error) {
	var job model.Job
	err := r.getJSON(ctx, cred, &job, "admin", "jobs", id)
	return job, err
}

func (r *RecruitmentClient) CreateJob(
	ctx context.Context,
	cred domainauth.Credential,
	req model.CreateJobRequest,
) (model.Job, error) {
	var job model.Job
	err := r.sendJSON(ctx, cred, http.MethodPost, req, &job, "admin", "jobs")
	return job, err
}

// UpdateJob calls PATCH /admin/jobs/{id} with the job's descriptive fields.
func (r *RecruitmentClient) UpdateJob(
	ctx context.Context,
	cred domainauth.Credential,
	id string,
	details model.JobDetails,
) (model.Job, error) {
	var job model.Job
	err := r.sendJSON(ctx, cred, http.MethodPatch, details, &job, "admin", "jobs", id)
	return job, err
}

// SetJobLimit calls PATCH /admin/jobs/{id}/limit.
func (r *RecruitmentClient) SetJobLimit(
	ctx context.Context,
	cred domainauth.Credential,
	id string,
	maxApplications int,
) (model.Job, error) {
	var job model.Job
	payload := map[string]int{"maxApplications": maxApplications}
	err := r.sendJSON(ctx, cred, http.MethodPatch, payload, &job, "admin", "jobs", id, "limit")
	return job, err
}

// AddKeywords calls POST /admin/jobs/{id}/keywords with the job's full keyword set.
func (r *RecruitmentClient) AddKeywords(
	ctx context.Context,
	cred domainauth.Credential,
	id string,
	keywords []model.Keyword,
) (model.Job, error) {
	if keywords == nil {
		keywords = []model.Keyword{}
	}
	var job model.Job
	payload := map[string][]model.Keyword{"keywords": keywords}
	err := r.sendJSON(ctx, cred, http.MethodPost, payload, &job, "admin", "jobs", id, "keywords")
	return job, err
}

func (r *RecruitmentClient) DeleteJob(ctx context.Context, cred domainauth.Credential, id string) error {
	return r.call(ctx, request{
		method: http.MethodDelete,
		url:    r.c.endpoint("admin", "jobs", id),
		cred:   cred,
	}, nil)
}

func (r *RecruitmentClient) ListApplications(
	ctx context.Context,
	cred domainauth.Credential,
	jobID string,
) ([]model.Application, error) {
	var apps []model.Application
	err := r.getJSON(ctx, cred, &apps, "admin", "applications", jobID)
	return apps, err
}

// Shortlist calls POST /admin/filtered/{applicationID}.
func (r *RecruitmentClient) Shortlist(
	ctx context.Context,
	cred domainauth.Credential,
	applicationID string,
) (model.ShortlistEntry, error) {
	var entry model.ShortlistEntry
	err := r.call(ctx, request{
		method: http.MethodPost,
		url:    r.c.endpoint("admin", "filtered", applicationID),
		cred:   cred,
	}, &entry)
	return entry, err
}

// UpdateScore calls PATCH /admin/applications/{applicationID}/score.
func (r *RecruitmentClient) UpdateScore(
	ctx context.Context,
	cred domainauth.Credential,
	applicationID string,
	score float64,
) (model.Application, error) {
	var app model.Application
	payload := map[string]float64{"score": score}
	err := r.sendJSON(ctx, cred, http.MethodPatch, payload, &app, "admin", "applications", applicationID, "score")
	return app, err
}

// ListShortlist calls GET /admin/filtered.
func (r *RecruitmentClient) ListShortlist(ctx context.Context, cred domainauth.Credential) ([]model.ShortlistEntry, error) {
	var entries []model.ShortlistEntry
	err := r.getJSON(ctx, cred, &entries, "admin", "filtered")
	return entries, err
}

func (r *RecruitmentClient) getJSON(ctx context.Context, cred domainauth.Credential, out any, segments ...string) error {
	return r.call(ctx, request{method: http.MethodGet, url: r.c.endpoint(segments...), cred: cred}, out)
}

func (r *RecruitmentClient) sendJSON(
	ctx context.Context,
	cred domainauth.Credential,
	method string,
	payload, out any,
	segments ...string,
) error {
	body, err := jsonBody(payload)
	if err != nil {
		return err
	}
	return r.call(ctx, request{
		method:      method,
		url:         r.c.endpoint(segments...),
		cred:        cred,
		body:        body,
		contentType: "application/json",
	}, out)
}

// call executes req, classifies failures and decodes a successful body into out (when non-nil).
func (r *RecruitmentClient) call(ctx context.Context, req request, out any) error {
	status, body, err := r.c.do(ctx, req)
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return r.classify(req, status, body)
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return decodeJSON(body, out)
}

func (r *RecruitmentClient) classify(req request, status int, body []byte) error {
	msg := r.c.errorMessage(body)
	cause := fmt.Errorf("%s %s returned status %d", req.method, req.url, status)
	code := apperrors.ErrCodeValidation
	switch {
	case status == http.StatusUnauthorized:
		code = apperrors.ErrCodeUnauthorized
	case status == http.StatusForbidden:
		code = apperrors.ErrCodeForbidden
	case status == http.StatusNotFound:
		code = apperrors.ErrCodeNotFound
	case status >= http.StatusInternalServerError:
		code = apperrors.ErrCodeUpstream
		r.c.logger.Warn("recruitment api server error", "method", req.method, "status", status, "message", msg)
	}
	return &apperrors.AppError{Code: code, Message: msg, Cause: cause}
}

func multipartCV(cv ports.CVUpload) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	filename := filepath.Base(strings.TrimSpace(cv.Filename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		filename = "cv.pdf"
	}
	contentType := cv.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, cvFieldName, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create cv part: %w", err)
	}
	if _, err := io.Copy(part, cv.Body); err != nil {
		return nil, "", fmt.Errorf("copy cv: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}
