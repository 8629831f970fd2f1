package workspace

import (
	"strings"
	"time"

	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

// SummaryContentType is the media type of an exported summary.
const SummaryContentType = "text/markdown; charset=utf-8"

// isoLayout matches the millisecond UTC form used in exported documents.
const isoLayout = "2006-01-02T15:04:05.000Z"

// acceptedTimeLayouts are tried in order when normalizing timestamps.
var acceptedTimeLayouts = []string{
	time.RFC3339Nano,
	types.TimeLayout,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Summary is a rendered engagement export.
type Summary struct {
	Filename string
	Content  string
}

// SummaryFilename is the attachment name for an engagement export.
func SummaryFilename(engagementID string) string {
	return "engagement-" + engagementID + "-summary.md"
}

// isoTimestamp normalizes s to ISO-8601 UTC with milliseconds. Values that
// do not parse are returned unchanged.
func isoTimestamp(s string) string {
	for _, layout := range acceptedTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(isoLayout)
		}
	}
	return s
}

// orNone returns s unless it is blank, in which case it returns fallback.
func orNone(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// RenderSummary renders an engagement and its runs as a markdown document.
// It has no side effects; runs are rendered in the order given.
func RenderSummary(e types.Engagement, runs []types.DeliverableRun) string {
	lines := []string{
		"# Reliability Engagement Summary: " + e.CompanyName,
		"",
		"- Engagement ID: " + e.ID,
		"- Contact Email: " + e.ContactEmail,
		"- Engagement Status: " + e.Status,
		"- Created At: " + isoTimestamp(e.CreatedAt),
		"",
		"## Deliverable Runs",
		"",
	}

	for _, run := range runs {
		lines = append(lines,
			"### "+run.Title,
			"- Status: "+run.Status,
			"- Last Updated: "+isoTimestamp(run.UpdatedAt),
			"- Artifact: "+orNone(run.ArtifactPath, "(none)"),
			"- Notes:",
			orNone(run.Notes, "  (none)"),
			"",
		)
	}

	return strings.Join(lines, "\n")
}
