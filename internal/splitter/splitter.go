// Package splitter divides raw file text into sentinel-separated segments.
package splitter

import (
	"strings"

	"github.com/starford/raido/internal/models"
)

// DefaultSentinel is the separator used when several posts are concatenated
// into one physical file. It is matched byte-for-byte as an opaque literal,
// never as a pattern.
const DefaultSentinel = "<|RELATED_DOC_SEP-83c2f9|>"

// Split scans text for non-overlapping occurrences of sentinel and returns
// one RawSegment per non-empty piece, in file order. Segments are trimmed of
// surrounding whitespace; pieces that are empty after trimming are dropped,
// which guards against a trailing sentinel with nothing after it. A file
// without the sentinel yields exactly one segment.
//
// The scan happens on raw text before any markdown awareness: a sentinel
// inside a fenced code block still splits. Splitting itself cannot fail;
// malformed segments are rejected downstream.
func Split(sourcePath, text, sentinel string) []models.RawSegment {
	var pieces []string
	if sentinel == "" {
		pieces = []string{text}
	} else {
		pieces = strings.Split(text, sentinel)
	}

	segs := make([]models.RawSegment, 0, len(pieces))
	for _, p := range pieces {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		segs = append(segs, models.RawSegment{
			SourcePath:   sourcePath,
			SegmentIndex: len(segs),
			Text:         p,
		})
	}
	return segs
}
