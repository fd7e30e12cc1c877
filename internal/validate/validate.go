// Package validate enforces the frontmatter contract: required fields are
// fatal when absent, optional fields default with a recorded warning.
package validate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
)

// dateLayouts are the accepted ISO-8601 shapes for the date field.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// knownKeys are the frontmatter fields with pipeline meaning; everything else
// passes through opaquely.
var knownKeys = map[string]struct{}{
	"title":    {},
	"date":     {},
	"excerpt":  {},
	"tags":     {},
	"featured": {},
}

// Issue records a recoverable problem with a single field. The post is still
// included; the field holds its default.
type Issue struct {
	Field  string
	Detail string
}

// Frontmatter checks required fields and types on the decoded metadata and
// returns the typed record. Missing or invalid title and date are fatal
// (apperr.ErrMissingTitle, apperr.ErrInvalidDate). Missing tags default to an
// empty sequence; missing featured defaults to false; type mismatches on
// optional fields are reported as Issues.
func Frontmatter(fields map[string]any) (models.Frontmatter, []Issue, error) {
	var fm models.Frontmatter
	var issues []Issue

	fm.Title = strings.TrimSpace(stringField(fields["title"]))
	if err := validation.Validate(fm.Title, validation.Required); err != nil {
		return fm, issues, fmt.Errorf("validate: title: %w", apperr.ErrMissingTitle)
	}

	date, err := dateField(fields["date"])
	if err != nil {
		return fm, issues, fmt.Errorf("validate: date: %w", apperr.ErrInvalidDate)
	}
	fm.Date = date
	if err := validation.Validate(fm.Date, validation.Required); err != nil {
		return fm, issues, fmt.Errorf("validate: date: %w", apperr.ErrInvalidDate)
	}

	fm.Excerpt, issues = excerptField(fields, issues)
	fm.Tags, issues = tagsField(fields, issues)
	fm.Featured, issues = featuredField(fields, issues)

	for k, v := range fields {
		if _, known := knownKeys[k]; known {
			continue
		}
		if fm.Extra == nil {
			fm.Extra = map[string]any{}
		}
		fm.Extra[k] = v
	}

	return fm, issues, nil
}

func stringField(v any) string {
	s, _ := v.(string)
	return s
}

// dateField accepts an ISO-8601 string or a time.Time (yaml resolves
// unquoted timestamps to time.Time when decoding into any).
func dateField(v any) (time.Time, error) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("absent")
	case time.Time:
		return d.UTC(), nil
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable date %q", d)
	default:
		return time.Time{}, fmt.Errorf("date has type %T", v)
	}
}

func excerptField(fields map[string]any, issues []Issue) (string, []Issue) {
	v, ok := fields["excerpt"]
	if !ok || v == nil {
		return "", issues
	}
	s, ok := v.(string)
	if !ok {
		return "", append(issues, Issue{Field: "excerpt", Detail: fmt.Sprintf("expected string, got %T", v)})
	}
	return s, issues
}

// tagsField normalises the tags sequence: entries are trimmed, empties are
// dropped, order is preserved for display. A bare string is treated as a
// single tag.
func tagsField(fields map[string]any, issues []Issue) ([]string, []Issue) {
	v, ok := fields["tags"]
	if !ok || v == nil {
		return []string{}, issues
	}

	var raw []any
	switch t := v.(type) {
	case []any:
		raw = t
	case string:
		raw = []any{t}
	default:
		return []string{}, append(issues, Issue{Field: "tags", Detail: fmt.Sprintf("expected list, got %T", v)})
	}

	tags := make([]string, 0, len(raw))
	for i, item := range raw {
		s, ok := item.(string)
		if !ok {
			issues = append(issues, Issue{Field: "tags", Detail: fmt.Sprintf("entry %d is not a string", i)})
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		tags = append(tags, s)
	}
	return tags, issues
}

func featuredField(fields map[string]any, issues []Issue) (bool, []Issue) {
	v, ok := fields["featured"]
	if !ok || v == nil {
		return false, issues
	}
	switch b := v.(type) {
	case bool:
		return b, issues
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
			return parsed, issues
		}
	}
	return false, append(issues, Issue{Field: "featured", Detail: fmt.Sprintf("expected boolean, got %v", v)})
}
