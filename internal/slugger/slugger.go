// Package slugger derives stable, unique post identifiers.
//
// Slug rules are identity-critical: a published URL must survive pipeline
// reruns byte-for-byte, so the derivation is pinned here rather than
// delegated to a library with its own normalisation behaviour.
package slugger

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9]+`)
	datePrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-`)
)

// Slugify lowercases s, collapses every run of non-alphanumeric characters
// into a single hyphen, and trims leading and trailing hyphens.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = nonAlnumRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// FromPath derives a slug from a date-prefixed filename such as
// 2026-02-08-database-replication.md. The second return is false when the
// filename does not follow that convention.
func FromPath(path string) (string, bool) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if !datePrefixRe.MatchString(base) {
		return "", false
	}
	slug := Slugify(datePrefixRe.ReplaceAllString(base, ""))
	if slug == "" {
		return "", false
	}
	return slug, true
}

// Allocator hands out unique slugs. Callers must claim in a deterministic
// order — (sourcePath, segmentIndex) ascending — so collision suffixes are
// reproducible across runs.
type Allocator struct {
	taken map[string]struct{}
}

// NewAllocator returns an empty Allocator.
func NewAllocator() *Allocator {
	return &Allocator{taken: make(map[string]struct{})}
}

// Claim reserves base, or the first free base-N (N starting at 2) when base
// is already taken. The second return reports whether a collision occurred.
func (a *Allocator) Claim(base string) (string, bool) {
	if base == "" {
		base = "post"
	}
	if _, dup := a.taken[base]; !dup {
		a.taken[base] = struct{}{}
		return base, false
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if _, dup := a.taken[candidate]; !dup {
			a.taken[candidate] = struct{}{}
			return candidate, true
		}
	}
}
