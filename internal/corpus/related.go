package corpus

import (
	"sort"

	"github.com/starford/raido/internal/models"
)

// DefaultRelatedCount is the default cap on related links per post.
const DefaultRelatedCount = 3

// score rates how related two posts are. Each shared tag is worth 10 points;
// temporal distance applies a small continuous penalty (a year apart costs
// one point) so equal-overlap candidates rank by proximity. Posts with zero
// overlap stay eligible, which keeps small corpora useful.
func score(a, b models.Post) float64 {
	shared := 0
	tags := make(map[string]struct{}, len(a.Tags))
	for _, t := range a.Tags {
		tags[NormalizeTag(t)] = struct{}{}
	}
	seen := make(map[string]struct{}, len(b.Tags))
	for _, t := range b.Tags {
		key := NormalizeTag(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := tags[key]; ok {
			shared++
		}
	}

	days := a.Date.Sub(b.Date).Hours() / 24
	if days < 0 {
		days = -days
	}
	return float64(shared)*10 - days/365
}

// resolveRelated computes, for every post, up to n other post ids ranked by
// score descending with ties broken by slug ascending. A post never relates
// to itself. The result maps every id, with an empty (non-nil) list when the
// corpus has no other posts.
func resolveRelated(posts []models.Post, n int) map[string][]string {
	out := make(map[string][]string, len(posts))
	if n < 0 {
		n = 0
	}

	type candidate struct {
		id    string
		score float64
	}

	for _, p := range posts {
		cands := make([]candidate, 0, len(posts)-1)
		for _, other := range posts {
			if other.ID == p.ID {
				continue
			}
			cands = append(cands, candidate{id: other.ID, score: score(p, other)})
		}
		sort.Slice(cands, func(i, j int) bool {
			if cands[i].score != cands[j].score {
				return cands[i].score > cands[j].score
			}
			return cands[i].id < cands[j].id
		})
		if len(cands) > n {
			cands = cands[:n]
		}
		ids := make([]string, 0, len(cands))
		for _, c := range cands {
			ids = append(ids, c.id)
		}
		out[p.ID] = ids
	}
	return out
}
