// Package testutil provides testing utilities and helpers for recruit-web.
package testutil

import (
	"time"

	"github.com/recruitdesk/recruit-web/internal/domain/model"
)

// JobBuilder provides a fluent interface for building Job values for testing.
type JobBuilder struct {
	job model.Job
}

// NewJob creates a JobBuilder with sensible defaults: an active, unlimited posting.
func NewJob(id string) *JobBuilder {
	return &JobBuilder{
		job: model.Job{
			ID:          id,
			Title:       "Backend Engineer",
			Description: "Build and run services.",
			Company:     "Acme",
			Location:    "Remote",
			IsActive:    true,
			CreatedAt:   TestTime(),
			UpdatedAt:   TestTime(),
		},
	}
}

// WithTitle sets the job title.
func (b *JobBuilder) WithTitle(title string) *JobBuilder {
	b.job.Title = title
	return b
}

// WithKeywords sets the scoring keywords.
func (b *JobBuilder) WithKeywords(kw ...model.Keyword) *JobBuilder {
	b.job.Keywords = kw
	return b
}

// Inactive marks the job as closed.
func (b *JobBuilder) Inactive() *JobBuilder {
	b.job.IsActive = false
	return b
}

// WithCapacity sets the application limit and current count.
func (b *JobBuilder) WithCapacity(maxApps, current int) *JobBuilder {
	b.job.MaxApplications = maxApps
	b.job.CurrentApplications = current
	return b
}

// Build returns the constructed Job.
func (b *JobBuilder) Build() model.Job {
	return b.job
}

// NewApplication returns an application to jobID with the given score, created offset after TestTime.
func NewApplication(id, jobID, email string, score float64, offset time.Duration) model.Application {
	return model.Application{
		ID:        id,
		Candidate: model.Candidate{ID: "cand-" + id, Email: email},
		Job:       model.JobRef{ID: jobID},
		CVURL:     "https://cdn.example.com/cv/" + id + ".pdf",
		Score:     score,
		CreatedAt: TestTime().Add(offset),
		UpdatedAt: TestTime().Add(offset),
	}
}
