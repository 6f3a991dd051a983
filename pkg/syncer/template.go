package syncer

import (
	"strconv"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/grovetools/autosync/git"
)

// fallbackDateLayout is used when the configured strftime pattern is invalid.
const fallbackDateLayout = "2006-01-02 15:04:05"

// placeholderResolver pairs a template placeholder with the function that
// produces its replacement. Each substitution is independent and
// non-overlapping, so application order does not matter.
type placeholderResolver struct {
	placeholder string
	resolve     func() string
}

// FormatMessage expands the recognized placeholders in a commit message
// template. Placeholders absent from the template cost nothing; unrecognized
// ones are left verbatim.
//
// Recognized placeholders:
//
//	{{date}}      current time formatted per the strftime dateFormat
//	{{numFiles}}  number of entries in the status snapshot
//	{{files}}     snapshot entries grouped by change kind
func FormatMessage(template, dateFormat string, snapshot []git.ChangeRecord, now time.Time) string {
	resolvers := []placeholderResolver{
		{"{{date}}", func() string { return formatDate(dateFormat, now) }},
		{"{{numFiles}}", func() string { return strconv.Itoa(len(snapshot)) }},
		{"{{files}}", func() string { return describeFiles(snapshot) }},
	}

	result := template
	for _, r := range resolvers {
		if !strings.Contains(result, r.placeholder) {
			continue
		}
		result = strings.ReplaceAll(result, r.placeholder, r.resolve())
	}
	return result
}

// formatDate renders now with the given strftime pattern.
func formatDate(pattern string, now time.Time) string {
	if pattern == "" {
		return now.Format(fallbackDateLayout)
	}
	out, err := strftime.Format(pattern, now)
	if err != nil {
		return now.Format(fallbackDateLayout)
	}
	return out
}

// describeFiles renders a status snapshot as "<kind> p1 p2, <kind> p3".
// Groups appear in first-seen order of each kind while scanning the snapshot.
func describeFiles(snapshot []git.ChangeRecord) string {
	var kinds []string
	groups := make(map[string][]string)

	for _, rec := range snapshot {
		if _, seen := groups[rec.Kind]; !seen {
			kinds = append(kinds, rec.Kind)
		}
		groups[rec.Kind] = append(groups[rec.Kind], rec.Path)
	}

	parts := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		parts = append(parts, kind+" "+strings.Join(groups[kind], " "))
	}
	return strings.Join(parts, ", ")
}
