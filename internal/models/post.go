// Package models defines the domain types for Raido.
package models

import "time"

// RawSegment is a contiguous slice of file text between sentinel boundaries,
// or the whole file when no sentinel is present. It exists only between the
// splitter and the frontmatter parser.
type RawSegment struct {
	SourcePath   string
	SegmentIndex int
	Text         string
}

// Frontmatter is the structured header of a post after validation. Fields the
// pipeline does not recognise are preserved opaquely in Extra so schema drift
// in the content corpus does not require pipeline changes.
type Frontmatter struct {
	Title    string
	Date     time.Time
	Excerpt  string
	Tags     []string
	Featured bool
	Extra    map[string]any
}

// Post is the canonical unit of content produced by one pipeline run.
type Post struct {
	ID           string         `json:"id"`
	SourcePath   string         `json:"sourcePath"`
	SegmentIndex int            `json:"segmentIndex"`
	Title        string         `json:"title"`
	Date         time.Time      `json:"date"`
	Excerpt      string         `json:"excerpt"`
	Tags         []string       `json:"tags"`
	Featured     bool           `json:"featured"`
	Body         string         `json:"body"`
	WordCount    int            `json:"wordCount"`
	RelatedIDs   []string       `json:"relatedIds"`
	Extra        map[string]any `json:"extra,omitempty"`
}

// Triage reasons. These are machine-readable and stable; downstream tooling
// filters on them.
const (
	ReasonMissingFrontmatter      = "MissingFrontmatter"
	ReasonUnterminatedFrontmatter = "UnterminatedFrontmatter"
	ReasonMissingTitle            = "MissingTitle"
	ReasonInvalidDate             = "InvalidDate"
	ReasonMalformedField          = "MalformedField"
	ReasonSlugCollision           = "SlugCollision"
	ReasonReadError               = "ReadError"
	ReasonInvalidEncoding         = "InvalidEncoding"
)

// Triage severities.
const (
	SeverityError   = "error"   // segment or file excluded from the corpus
	SeverityWarning = "warning" // included, but with a defaulted or adjusted field
)

// TriageRecord describes an excluded or flagged segment for manual review.
type TriageRecord struct {
	SourcePath   string `json:"sourcePath"`
	SegmentIndex int    `json:"segmentIndex"`
	Reason       string `json:"reason"`
	Severity     string `json:"severity"`
	Detail       string `json:"detail,omitempty"`
}
