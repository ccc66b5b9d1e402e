package export

import (
	"io"

	"github.com/recruitdesk/recruit-web/internal/domain/model"
)

// ShortlistSheet is the sheet name of a shortlist workbook.
const ShortlistSheet = "Shortlist"

// ShortlistFilename is the download name of the shortlist workbook.
const ShortlistFilename = "shortlisted-candidates.xlsx"

var shortlistHeaders = []any{"Candidate", "Job", "Score", "Selection", "Shortlisted", "CV"}

// WriteShortlist writes entries as an XLSX workbook to w. Entries the API did not
// populate keep only their application id.
func WriteShortlist(w io.Writer, entries []model.ShortlistEntry) error {
	rows := make([]sheetRow, 0, len(entries))
	for _, e := range entries {
		selection := "Automatic"
		if e.ManuallySelected {
			selection = "Manual"
		}
		shortlisted := ""
		if !e.CreatedAt.IsZero() {
			shortlisted = e.CreatedAt.UTC().Format(appliedLayout)
		}
		app := e.Application
		if app == nil {
			app = &model.Application{ID: e.ApplicationID}
		}
		candidate := app.Candidate.Email
		if candidate == "" {
			candidate = app.ID
		}
		rows = append(rows, sheetRow{
			values: []any{candidate, app.Job.Title, app.Score, selection, shortlisted, app.CVURL},
			link:   app.CVURL,
		})
	}
	return writeTable(w, table{
		sheet:   ShortlistSheet,
		headers: shortlistHeaders,
		widths:  []float64{32, 28, 10, 12, 18, 48},
		rows:    rows,
	})
}
