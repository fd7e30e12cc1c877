package apperr

import "errors"

var (
	// ErrMissingFrontmatter: segment does not start with an opening ---
	// delimiter, so it cannot be a post.
	ErrMissingFrontmatter = errors.New("missing frontmatter")
	// ErrUnterminatedFrontmatter: an opening --- delimiter is never closed.
	ErrUnterminatedFrontmatter = errors.New("unterminated frontmatter")
	// ErrMissingTitle: frontmatter lacks a non-empty title.
	ErrMissingTitle = errors.New("missing title")
	// ErrInvalidDate: frontmatter date is absent or does not parse.
	ErrInvalidDate = errors.New("invalid date")
	// ErrEmptyCorpus: a run produced zero valid posts, which signals
	// misconfiguration (wrong path, wrong sentinel) rather than content noise.
	ErrEmptyCorpus = errors.New("empty corpus")
)
