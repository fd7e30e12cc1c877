// Package parser extracts the leading frontmatter block from a raw segment.
package parser

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/raido/internal/apperr"
)

const delim = "---"

// FieldIssue records a metadata line that could not be decoded. The segment
// is still usable; the validator decides the field's ultimate fate.
type FieldIssue struct {
	Key string
	Raw string
	Err error
}

// Result holds the parsed frontmatter fields and the remaining body.
type Result struct {
	// Fields is the decoded frontmatter. Keys the pipeline does not know
	// about are retained here rather than dropped.
	Fields map[string]any
	// Issues lists lines salvaged from a block that did not decode cleanly.
	Issues []FieldIssue
	// Body is everything after the closing delimiter, with at most one
	// leading blank line removed.
	Body string
}

// Parse locates the leading ----delimited block of a segment and decodes it.
//
// A segment that does not begin with the opening delimiter (after whitespace
// trim) fails with apperr.ErrMissingFrontmatter; an opening delimiter that is
// never closed fails with apperr.ErrUnterminatedFrontmatter. Both exclude the
// segment from the corpus. A block that is present but partially malformed is
// recovered line by line, with broken lines reported as Issues.
func Parse(text string) (*Result, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if trimLine(lines[0]) != delim {
		return nil, fmt.Errorf("parser: %w", apperr.ErrMissingFrontmatter)
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if trimLine(lines[i]) == delim {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, fmt.Errorf("parser: %w", apperr.ErrUnterminatedFrontmatter)
	}

	block := lines[1:end]
	body := lines[end+1:]
	if len(body) > 0 && trimLine(body[0]) == "" {
		body = body[1:]
	}

	fields, issues := decodeBlock(block)
	return &Result{
		Fields: fields,
		Issues: issues,
		Body:   strings.Join(body, "\n"),
	}, nil
}

// decodeBlock decodes the metadata lines as YAML. If the block as a whole is
// invalid, each line is retried independently so that one broken line does
// not discard the rest of the metadata.
func decodeBlock(block []string) (map[string]any, []FieldIssue) {
	raw := strings.Join(block, "\n")

	fields := map[string]any{}
	if err := yaml.Unmarshal([]byte(raw), &fields); err == nil {
		if fields == nil {
			fields = map[string]any{}
		}
		return fields, nil
	}

	fields = map[string]any{}
	var issues []FieldIssue
	for _, line := range block {
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "#") {
			continue
		}
		var one map[string]any
		if err := yaml.Unmarshal([]byte(line), &one); err != nil || len(one) == 0 {
			if err == nil {
				err = fmt.Errorf("not a key-value line")
			}
			issues = append(issues, FieldIssue{Key: keyOf(t), Raw: t, Err: err})
			continue
		}
		for k, v := range one {
			fields[k] = v
		}
	}
	return fields, issues
}

// keyOf extracts the key portion of a "key: value" line, best effort.
func keyOf(line string) string {
	if i := strings.Index(line, ":"); i > 0 {
		return strings.TrimSpace(line[:i])
	}
	return ""
}

func trimLine(s string) string {
	return strings.TrimRight(s, " \t\r")
}
