// Package corpus aggregates validated posts into queryable indices: by tag,
// by publish date, by featured flag, plus per-post related links. A Corpus is
// built once per pipeline run and is immutable afterwards; accessors return
// copies so downstream consumers cannot reach pipeline-internal state.
package corpus

import (
	"sort"
	"strings"

	"github.com/starford/raido/internal/models"
)

// Corpus is the root aggregate owning all posts and derived indices.
type Corpus struct {
	posts    map[string]models.Post
	order    []string            // post ids, date descending, ties by slug
	featured []string            // featured post ids in date order
	tags     map[string][]string // normalised tag -> post ids in date order
}

// Build constructs the corpus from the full set of validated posts and runs
// the related-post resolver (up to relatedN links per post). It must only be
// called after every input file has been processed: both the date ordering
// and the relation scores need global knowledge.
func Build(posts []models.Post, relatedN int) *Corpus {
	sorted := make([]models.Post, len(posts))
	copy(sorted, posts)

	// Date descending; identical dates break by slug ascending so the
	// ordering is total and reruns are byte-identical.
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})

	c := &Corpus{
		posts: make(map[string]models.Post, len(sorted)),
		order: make([]string, 0, len(sorted)),
		tags:  make(map[string][]string),
	}

	related := resolveRelated(sorted, relatedN)

	for _, p := range sorted {
		p.RelatedIDs = related[p.ID]
		c.order = append(c.order, p.ID)
		if p.Featured {
			c.featured = append(c.featured, p.ID)
		}
		for _, tag := range p.Tags {
			key := NormalizeTag(tag)
			if key == "" {
				continue
			}
			if !contains(c.tags[key], p.ID) {
				c.tags[key] = append(c.tags[key], p.ID)
			}
		}
		c.posts[p.ID] = p
	}

	return c
}

// NormalizeTag lowercases and trims a tag for index lookups. Display casing
// is preserved on the post itself.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Len returns the number of posts in the corpus.
func (c *Corpus) Len() int { return len(c.order) }

// Post returns the post with the given id.
func (c *Corpus) Post(id string) (models.Post, bool) {
	p, ok := c.posts[id]
	return p, ok
}

// Posts returns all posts in date-descending order.
func (c *Corpus) Posts() []models.Post {
	out := make([]models.Post, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.posts[id])
	}
	return out
}

// DateOrder returns all post ids, newest first.
func (c *Corpus) DateOrder() []string {
	return append([]string(nil), c.order...)
}

// Featured returns the ids of featured posts, newest first.
func (c *Corpus) Featured() []string {
	return append([]string(nil), c.featured...)
}

// Tags returns every indexed tag, sorted.
func (c *Corpus) Tags() []string {
	out := make([]string, 0, len(c.tags))
	for t := range c.tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// PostsByTag returns the ids carrying tag (case-insensitive), newest first.
func (c *Corpus) PostsByTag(tag string) []string {
	return append([]string(nil), c.tags[NormalizeTag(tag)]...)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
