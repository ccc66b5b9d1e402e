package httpx

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/recruitdesk/recruit-web/internal/domain/model"
)

const friendlyDateTimeLayout = "Jan 2, 2006 3:04 PM"

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"contentTmpl":  ContentTemplateFor,
		"friendlyTime": friendlyTime,
		"timeTag":      timeTag,
		"add":          func(a, b int) int { return a + b },
		"truncateText": truncateText,
		"formatScore":  formatScore,
		"scoreClass":   scoreClass,
		"keywordList":  keywordList,
		"capacity":     capacity,
	}
}

func friendlyTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(friendlyDateTimeLayout)
}

func timeTag(t time.Time) template.HTML {
	if t.IsZero() {
		return ""
	}
	// #nosec G203 - built from escaped values only
	return template.HTML(fmt.Sprintf(
		`<time datetime="%s" title="%s">%s</time>`,
		t.UTC().Format(time.RFC3339),
		template.HTMLEscapeString(t.Local().Format(time.RFC1123)),
		template.HTMLEscapeString(friendlyTime(t)),
	))
}

// truncateText truncates to maxLen runes, adding an ellipsis when cut.
func truncateText(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen <= 0 || len(runes) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return string(runes[:1])
	}
	return string(runes[:maxLen-1]) + "…"
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}

// scoreClass buckets a match score for badge styling.
func scoreClass(score float64) string {
	switch {
	case score >= 75:
		return "badge-success"
	case score >= 50:
		return "badge-info"
	case score >= 25:
		return "badge-warning"
	default:
		return "badge-light"
	}
}

// keywordList renders keywords back into the "term:weight" form the job form accepts.
func keywordList(keywords []model.Keyword) string {
	parts := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k.Weight == 1 {
			parts = append(parts, k.Term)
			continue
		}
		parts = append(parts, k.Term+":"+strconv.FormatFloat(k.Weight, 'f', -1, 64))
	}
	return strings.Join(parts, ", ")
}

func capacity(j model.Job) string {
	if j.MaxApplications <= 0 {
		return strconv.Itoa(j.CurrentApplications) + " / unlimited"
	}
	return strconv.Itoa(j.CurrentApplications) + " / " + strconv.Itoa(j.MaxApplications)
}
