package corpus

import (
	"encoding/json"
	"fmt"

	"github.com/starford/raido/internal/checksum"
	"github.com/starford/raido/internal/models"
)

// Snapshot is the JSON-serialisable form of a corpus, the shape downstream
// renderers and search layers consume.
type Snapshot struct {
	Posts     []models.Post       `json:"posts"`
	TagIndex  map[string][]string `json:"tagIndex"`
	DateOrder []string            `json:"dateOrder"`
	Featured  []string            `json:"featured"`
}

// Snapshot returns a detached copy of the corpus state. Posts appear in date
// order; slice fields are always non-nil so the JSON stays stable.
func (c *Corpus) Snapshot() Snapshot {
	snap := Snapshot{
		Posts:     c.Posts(),
		TagIndex:  make(map[string][]string, len(c.tags)),
		DateOrder: c.DateOrder(),
		Featured:  nonNil(c.Featured()),
	}
	for tag, ids := range c.tags {
		snap.TagIndex[tag] = append([]string(nil), ids...)
	}
	for i := range snap.Posts {
		snap.Posts[i].Tags = nonNil(snap.Posts[i].Tags)
		snap.Posts[i].RelatedIDs = nonNil(snap.Posts[i].RelatedIDs)
	}
	return snap
}

// Checksum returns the SHA-256 fingerprint of the canonical JSON encoding.
// encoding/json sorts map keys, so the fingerprint is deterministic.
func (c *Corpus) Checksum() (string, error) {
	data, err := json.Marshal(c.Snapshot())
	if err != nil {
		return "", fmt.Errorf("corpus: marshal snapshot: %w", err)
	}
	return checksum.Sum(data), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
