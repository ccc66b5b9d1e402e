// Package export renders application lists as spreadsheets.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/recruitdesk/recruit-web/internal/domain/model"
	"github.com/xuri/excelize/v2"
)

// ApplicationsSheet is the sheet name of an applications workbook.
const ApplicationsSheet = "Applications"

// ContentType is the MIME type of the workbooks written here.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const appliedLayout = "2006-01-02 15:04"

var headers = []any{"Rank", "Candidate", "Score", "Applied", "CV"}

// Filename suggests a download name for a job's applications workbook.
func Filename(job model.Job) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, strings.TrimSpace(job.Title))
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = job.ID
	}
	if slug == "" {
		slug = "job"
	}
	return "applications-" + slug + ".xlsx"
}

// WriteApplications writes apps, in the given order, as an XLSX workbook to w.
// One row per application follows a bold header row; CV cells link to the uploaded file.
func WriteApplications(w io.Writer, apps []model.Application) error {
	rows := make([]sheetRow, 0, len(apps))
	for i, app := range apps {
		rows = append(rows, sheetRow{
			values: []any{i + 1, app.Candidate.Email, app.Score, app.CreatedAt.UTC().Format(appliedLayout), app.CVURL},
			link:   app.CVURL,
		})
	}
	return writeTable(w, table{
		sheet:   ApplicationsSheet,
		headers: headers,
		widths:  []float64{8, 32, 10, 18, 48},
		rows:    rows,
	})
}

// sheetRow is one data row; link, when set, is attached to the last cell.
type sheetRow struct {
	values []any
	link   string
}

type table struct {
	sheet   string
	headers []any
	widths  []float64
	rows    []sheetRow
}

func writeTable(w io.Writer, t table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", t.sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, width := range t.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(t.sheet, col, col, width); err != nil {
			return fmt.Errorf("column width %s: %w", col, err)
		}
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(t.headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(t.sheet, "A1", &t.headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(t.sheet, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, r := range t.rows {
		row := i + 2
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.sheet, cell, &r.values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		if r.link == "" {
			continue
		}
		linkCell, err := excelize.CoordinatesToCellName(len(r.values), row)
		if err != nil {
			return err
		}
		if err := f.SetCellHyperLink(t.sheet, linkCell, r.link, "External"); err != nil {
			return fmt.Errorf("link row %d: %w", row, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
