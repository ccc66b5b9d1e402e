package ports

import (
	"context"
	"io"

	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
	"github.com/recruitdesk/recruit-web/internal/domain/model"
)

// CVUpload is a CV file forwarded to the backend with an application.
type CVUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// RecruitmentAPI is the backend surface for jobs and applications.
// Every call is authenticated with cred; an empty credential sends no Authorization header.
type RecruitmentAPI interface {
	ListOpenJobs(ctx context.Context, cred domainauth.Credential) ([]model.Job, error)
	GetOpenJob(ctx context.Context, cred domainauth.Credential, id string) (model.Job, error)
	Apply(ctx context.Context, cred domainauth.Credential, jobID string, cv CVUpload) (model.Application, error)

	ListJobs(ctx context.Context, cred domainauth.Credential) ([]model.Job, error)
	GetJob(ctx context.Context, cred domainauth.Credential, id string) (model.Job, error)
	CreateJob(ctx context.Context, cred domainauth.Credential, req model.CreateJobRequest) (model.Job, error)
	DeleteJob(ctx context.Context, cred domainauth.Credential, id string) error
	UpdateJob(ctx context.Context, cred domainauth.Credential, id string, details model.JobDetails) (model.Job, error)
	SetJobLimit(ctx context.Context, cred domainauth.Credential, id string, maxApplications int) (model.Job, error)
	AddKeywords(ctx context.Context, cred domainauth.Credential, id string, keywords []model.Keyword) (model.Job, error)
	ListApplications(ctx context.Context, cred domainauth.Credential, jobID string) ([]model.Application, error)
	UpdateScore(ctx context.Context, cred domainauth.Credential, applicationID string, score float64) (model.Application, error)
	Shortlist(ctx context.Context, cred domainauth.Credential, applicationID string) (model.ShortlistEntry, error)
	ListShortlist(ctx context.Context, cred domainauth.Credential) ([]model.ShortlistEntry, error)
}
