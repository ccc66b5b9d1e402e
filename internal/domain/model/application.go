//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Candidate is the applicant embedded in an Application.
type Candidate struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

// JobRef is an application's job reference. The API returns either the job id
// or the populated job document.
type JobRef struct {
	ID    string
	Title string
}

// UnmarshalJSON accepts both a bare id string and a job object.
func (r *JobRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = JobRef{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("decode job id: %w", err)
		}
		*r = JobRef{ID: id}
		return nil
	}
	var j struct {
		ID    string `json:"_id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(data, &j); err != nil {
		return fmt.Errorf("decode job: %w", err)
	}
	*r = JobRef{ID: j.ID, Title: j.Title}
	return nil
}

// Application is a candidate's application to a job, scored by the backend.
type Application struct {
	ID            string    `json:"_id"`
	Candidate     Candidate `json:"candidate"`
	Job           JobRef    `json:"job"`
	CVURL         string    `json:"cvUrl"`
	Score         float64   `json:"score"`
	ExtractedText string    `json:"extractedText,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// MinScore and MaxScore bound a CV match score.
const (
	MinScore = 0
	MaxScore = 100
)

// ValidateScore reports whether score is a usable match score.
func ValidateScore(score float64) error {
	if math.IsNaN(score) || score < MinScore || score > MaxScore {
		return fmt.Errorf("score must be between %d and %d", MinScore, MaxScore)
	}
	return nil
}

// ShortlistEntry is a manually or automatically shortlisted application.
// Application is set when the API populated it; ApplicationID always is.
type ShortlistEntry struct {
	ID               string
	ApplicationID    string
	Application      *Application
	ManuallySelected bool
	CreatedAt        time.Time
}

// UnmarshalJSON accepts the application as a bare id or as a populated document.
func (e *ShortlistEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID               string          `json:"_id"`
		Application      json.RawMessage `json:"application"`
		ManuallySelected bool            `json:"manuallySelected"`
		CreatedAt        time.Time       `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = ShortlistEntry{ID: raw.ID, ManuallySelected: raw.ManuallySelected, CreatedAt: raw.CreatedAt}

	app := bytes.TrimSpace(raw.Application)
	switch {
	case len(app) == 0 || bytes.Equal(app, []byte("null")):
	case app[0] == '"':
		if err := json.Unmarshal(app, &e.ApplicationID); err != nil {
			return fmt.Errorf("decode application id: %w", err)
		}
	default:
		var a Application
		if err := json.Unmarshal(app, &a); err != nil {
			return fmt.Errorf("decode application: %w", err)
		}
		e.Application = &a
		e.ApplicationID = a.ID
	}
	return nil
}

// ApplicationSortField names the field applications can be ordered by.
type ApplicationSortField string

const (
	SortByScore     ApplicationSortField = "score"
	SortByCreatedAt ApplicationSortField = "createdAt"
)

// ApplicationSort controls the ordering of an application list.
// Zero value sorts by score, highest first.
type ApplicationSort struct {
	Field ApplicationSortField
	Asc   bool
}

// ParseApplicationSort normalizes "sort" and "dir" query values.
func ParseApplicationSort(field, dir string) ApplicationSort {
	s := ApplicationSort{Field: SortByScore}
	if strings.EqualFold(strings.TrimSpace(field), string(SortByCreatedAt)) {
		s.Field = SortByCreatedAt
	}
	s.Asc = strings.EqualFold(strings.TrimSpace(dir), "asc")
	return s
}

// Toggle returns the ordering a column header click should produce.
func (s ApplicationSort) Toggle(field ApplicationSortField) ApplicationSort {
	if s.Field == field {
		return ApplicationSort{Field: field, Asc: !s.Asc}
	}
	return ApplicationSort{Field: field}
}

// Dir returns the query-string form of the direction.
func (s ApplicationSort) Dir() string {
	if s.Asc {
		return "asc"
	}
	return "desc"
}

// SortApplications orders apps in place. Ties keep their API order.
func SortApplications(apps []Application, s ApplicationSort) {
	less := func(i, j int) bool {
		if s.Field == SortByCreatedAt {
			return apps[i].CreatedAt.Before(apps[j].CreatedAt)
		}
		return apps[i].Score < apps[j].Score
	}
	sort.SliceStable(apps, func(i, j int) bool {
		if s.Asc {
			return less(i, j)
		}
		return less(j, i)
	})
}
