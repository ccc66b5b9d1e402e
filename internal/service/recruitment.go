package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"

	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
	"github.com/recruitdesk/recruit-web/internal/domain/model"
	apperrors "github.com/recruitdesk/recruit-web/internal/errors"
	"github.com/recruitdesk/recruit-web/internal/export"
	"github.com/recruitdesk/recruit-web/internal/ports"
)

// SessionSource is the part of SessionManager the recruitment service depends on.
type SessionSource interface {
	Credential() domainauth.Credential
	Expire(ctx context.Context, notice string)
}

var _ SessionSource = (*SessionManager)(nil)

// RecruitmentServiceOptions groups dependencies for RecruitmentService.
type RecruitmentServiceOptions struct {
	API      ports.RecruitmentAPI
	Sessions SessionSource
	Logger   *slog.Logger
}

// RecruitmentService runs job and application operations with the session's credential.
// A 401 from the backend ends the session with SessionExpiredNotice.
type RecruitmentService struct {
	api      ports.RecruitmentAPI
	sessions SessionSource
	logger   *slog.Logger
}

// NewRecruitmentService constructs a RecruitmentService.
func NewRecruitmentService(opts RecruitmentServiceOptions) (*RecruitmentService, error) {
	if opts.API == nil {
		return nil, errors.New("RecruitmentAPI is required")
	}
	if opts.Sessions == nil {
		return nil, errors.New("SessionSource is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &RecruitmentService{
		api:      opts.API,
		sessions: opts.Sessions,
		logger:   logger.With("component", "recruitment_service"),
	}, nil
}

// OpenJobs lists jobs open to candidates.
func (s *RecruitmentService) OpenJobs(ctx context.Context) ([]model.Job, error) {
	jobs, err := s.api.ListOpenJobs(ctx, s.sessions.Credential())
	return jobs, s.check(ctx, err)
}

// OpenJob fetches a single job as a candidate sees it.
func (s *RecruitmentService) OpenJob(ctx context.Context, id string) (model.Job, error) {
	if err := requireID("job id", id); err != nil {
		return model.Job{}, err
	}
	job, err := s.api.GetOpenJob(ctx, s.sessions.Credential(), id)
	return job, s.check(ctx, err)
}

// Apply submits cv for jobID.
func (s *RecruitmentService) Apply(ctx context.Context, jobID string, cv ports.CVUpload) (model.Application, error) {
	if err := requireID("job id", jobID); err != nil {
		return model.Application{}, err
	}
	app, err := s.api.Apply(ctx, s.sessions.Credential(), jobID, cv)
	if err == nil {
		s.logger.Info("application submitted", "job_id", jobID, "application_id", app.ID)
	}
	return app, s.check(ctx, err)
}

// Jobs lists every job (admin).
func (s *RecruitmentService) Jobs(ctx context.Context) ([]model.Job, error) {
	jobs, err := s.api.ListJobs(ctx, s.sessions.Credential())
	return jobs, s.check(ctx, err)
}

// Job fetches a job (admin).
func (s *RecruitmentService) Job(ctx context.Context, id string) (model.Job, error) {
	if err := requireID("job id", id); err != nil {
		return model.Job{}, err
	}
	job, err := s.api.GetJob(ctx, s.sessions.Credential(), id)
	return job, s.check(ctx, err)
}

// CreateJob validates req and creates the job.
func (s *RecruitmentService) CreateJob(ctx context.Context, req model.CreateJobRequest) (model.Job, error) {
	if err := req.Validate(); err != nil {
		return model.Job{}, apperrors.Validation(err.Error())
	}
	job, err := s.api.CreateJob(ctx, s.sessions.Credential(), req)
	if err == nil {
		s.logger.Info("job created", "job_id", job.ID)
	}
	return job, s.check(ctx, err)
}

// UpdateJob validates u and applies it in three backend calls: details, keywords,
// then the application limit. It stops at the first failure; earlier calls are not undone.
func (s *RecruitmentService) UpdateJob(ctx context.Context, id string, u model.JobUpdate) (model.Job, error) {
	if err := requireID("job id", id); err != nil {
		return model.Job{}, err
	}
	if err := u.Validate(); err != nil {
		return model.Job{}, apperrors.Validation(err.Error())
	}
	cred := s.sessions.Credential()
	if _, err := s.api.UpdateJob(ctx, cred, id, u.JobDetails); err != nil {
		return model.Job{}, s.check(ctx, err)
	}
	if _, err := s.api.AddKeywords(ctx, cred, id, u.Keywords); err != nil {
		return model.Job{}, s.check(ctx, err)
	}
	job, err := s.api.SetJobLimit(ctx, cred, id, u.MaxApplications)
	if err != nil {
		return model.Job{}, s.check(ctx, err)
	}
	s.logger.Info("job updated", "job_id", id)
	return job, nil
}

// DeleteJob removes a job.
func (s *RecruitmentService) DeleteJob(ctx context.Context, id string) error {
	if err := requireID("job id", id); err != nil {
		return err
	}
	err := s.api.DeleteJob(ctx, s.sessions.Credential(), id)
	if err == nil {
		s.logger.Info("job deleted", "job_id", id)
	}
	return s.check(ctx, err)
}

// Applications lists a job's applications in the requested order.
func (s *RecruitmentService) Applications(
	ctx context.Context,
	jobID string,
	order model.ApplicationSort,
) ([]model.Application, error) {
	if err := requireID("job id", jobID); err != nil {
		return nil, err
	}
	apps, err := s.api.ListApplications(ctx, s.sessions.Credential(), jobID)
	if err := s.check(ctx, err); err != nil {
		return nil, err
	}
	model.SortApplications(apps, order)
	return apps, nil
}

// Shortlist marks an application as manually selected.
func (s *RecruitmentService) Shortlist(ctx context.Context, applicationID string) (model.ShortlistEntry, error) {
	if err := requireID("application id", applicationID); err != nil {
		return model.ShortlistEntry{}, err
	}
	entry, err := s.api.Shortlist(ctx, s.sessions.Credential(), applicationID)
	return entry, s.check(ctx, err)
}

// UpdateScore overrides an application's match score.
func (s *RecruitmentService) UpdateScore(ctx context.Context, applicationID string, score float64) (model.Application, error) {
	if err := requireID("application id", applicationID); err != nil {
		return model.Application{}, err
	}
	if err := model.ValidateScore(score); err != nil {
		return model.Application{}, apperrors.ValidationField("score", err.Error())
	}
	app, err := s.api.UpdateScore(ctx, s.sessions.Credential(), applicationID, score)
	if err == nil {
		s.logger.Info("application score overridden", "application_id", applicationID, "score", score)
	}
	return app, s.check(ctx, err)
}

// Shortlisted lists every shortlisted application, highest score first.
func (s *RecruitmentService) Shortlisted(ctx context.Context) ([]model.ShortlistEntry, error) {
	entries, err := s.api.ListShortlist(ctx, s.sessions.Credential())
	if err := s.check(ctx, err); err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entryScore(entries[i]) > entryScore(entries[j])
	})
	return entries, nil
}

// ExportShortlist writes the shortlist as XLSX to w.
func (s *RecruitmentService) ExportShortlist(ctx context.Context, w io.Writer) error {
	entries, err := s.Shortlisted(ctx)
	if err != nil {
		return err
	}
	if err := export.WriteShortlist(w, entries); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "could not build spreadsheet")
	}
	return nil
}

func entryScore(e model.ShortlistEntry) float64 {
	if e.Application == nil {
		return -1
	}
	return e.Application.Score
}

// ExportApplications writes a job's applications, ordered as requested, as XLSX to w.
// It returns the job so callers can name the download.
func (s *RecruitmentService) ExportApplications(
	ctx context.Context,
	jobID string,
	order model.ApplicationSort,
	w io.Writer,
) (model.Job, error) {
	job, err := s.Job(ctx, jobID)
	if err != nil {
		return model.Job{}, err
	}
	apps, err := s.Applications(ctx, jobID, order)
	if err != nil {
		return model.Job{}, err
	}
	if err := export.WriteApplications(w, apps); err != nil {
		return model.Job{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "could not build spreadsheet")
	}
	return job, nil
}

// check expires the session when the backend rejected its credential.
func (s *RecruitmentService) check(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsUnauthorized(err) {
		s.sessions.Expire(ctx, SessionExpiredNotice)
		return &apperrors.AppError{Code: apperrors.ErrCodeUnauthorized, Message: SessionExpiredNotice, Cause: err}
	}
	return err
}

func requireID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.ValidationField(field, field+" is required")
	}
	return nil
}
