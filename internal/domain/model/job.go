//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxJobTitleLen = 200
)

// Keyword is a weighted search term the backend uses when scoring CVs for a job.
type Keyword struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// Job is a job posting as returned by the Recruitment API.
type Job struct {
	ID                  string    `json:"_id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Company             string    `json:"company,omitempty"`
	Location            string    `json:"location,omitempty"`
	Salary              string    `json:"salary,omitempty"`
	Requirements        []string  `json:"requirements,omitempty"`
	Keywords            []Keyword `json:"keywords,omitempty"`
	IsActive            bool      `json:"isActive"`
	MaxApplications     int       `json:"maxApplications"`
	CurrentApplications int       `json:"currentApplications"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// AcceptingApplications reports whether the job is open and below its application limit.
// A zero MaxApplications means unlimited.
func (j Job) AcceptingApplications() bool {
	if !j.IsActive {
		return false
	}
	return j.MaxApplications <= 0 || j.CurrentApplications < j.MaxApplications
}

// CreateJobRequest represents parameters to create a Job.
type CreateJobRequest struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Company         string    `json:"company,omitempty"`
	Location        string    `json:"location,omitempty"`
	Salary          string    `json:"salary,omitempty"`
	Requirements    []string  `json:"requirements,omitempty"`
	Keywords        []Keyword `json:"keywords,omitempty"`
	MaxApplications int       `json:"maxApplications"`
	IsActive        bool      `json:"isActive"`
}

// Validate validates CreateJobRequest and trims its text fields.
func (r *CreateJobRequest) Validate() error {
	return validateJob(&r.Title, &r.Description, r.MaxApplications, r.Keywords)
}

// JobDetails is the descriptive part of a job, sent as PATCH /admin/jobs/{id}.
type JobDetails struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Company      string   `json:"company,omitempty"`
	Location     string   `json:"location,omitempty"`
	Salary       string   `json:"salary,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
	IsActive     bool     `json:"isActive"`
}

// JobUpdate is an edit of an existing job. The backend takes it in three calls:
// the details, the scoring keywords and the application limit.
type JobUpdate struct {
	JobDetails
	Keywords        []Keyword
	MaxApplications int
}

// Validate validates JobUpdate and trims its text fields.
func (u *JobUpdate) Validate() error {
	return validateJob(&u.Title, &u.Description, u.MaxApplications, u.Keywords)
}

// UpdateFrom returns a JobUpdate carrying the job's current values.
func UpdateFrom(j Job) JobUpdate {
	return JobUpdate{
		JobDetails: JobDetails{
			Title:        j.Title,
			Description:  j.Description,
			Company:      j.Company,
			Location:     j.Location,
			Salary:       j.Salary,
			Requirements: j.Requirements,
			IsActive:     j.IsActive,
		},
		Keywords:        j.Keywords,
		MaxApplications: j.MaxApplications,
	}
}

func validateJob(title, description *string, maxApps int, keywords []Keyword) error {
	*title = strings.TrimSpace(*title)
	*description = strings.TrimSpace(*description)
	if *title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(*title) > maxJobTitleLen {
		return errors.New("title cannot exceed 200 characters")
	}
	if *description == "" {
		return errors.New("description is required and cannot be empty")
	}
	if maxApps < 0 {
		return errors.New("max applications must be non-negative")
	}
	for _, k := range keywords {
		if strings.TrimSpace(k.Term) == "" {
			return errors.New("keywords cannot contain empty terms")
		}
	}
	return nil
}

// ParseKeywords parses "term:weight" pairs separated by commas; a missing weight means 1.
func ParseKeywords(raw string) []Keyword {
	var out []Keyword
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		term, weight := part, 1.0
		if i := strings.LastIndex(part, ":"); i > 0 {
			if w, ok := parseWeight(part[i+1:]); ok {
				term, weight = strings.TrimSpace(part[:i]), w
			}
		}
		out = append(out, Keyword{Term: term, Weight: weight})
	}
	return out
}

func parseWeight(raw string) (float64, bool) {
	w, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || w < 0 {
		return 0, false
	}
	return w, true
}
