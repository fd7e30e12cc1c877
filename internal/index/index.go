package index

import "github.com/starford/raido/internal/corpus"

// PostIndex defines the interface for the persisted corpus cache. Consumers
// should depend on this interface rather than the concrete *DB type to
// facilitate testing with mocks.
type PostIndex interface {
	Rebuild(snap corpus.Snapshot) error
	GetPost(id string) (*PostRow, error)
	IDsByDate() ([]string, error)
	IDsByTag(tag string) ([]string, error)
	FeaturedIDs() ([]string, error)
	Search(query string, limit int) ([]SearchResult, error)
	Close() error
}

// Verify *DB satisfies PostIndex at compile time.
var _ PostIndex = (*DB)(nil)
