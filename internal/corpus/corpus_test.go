package corpus

import (
	"testing"
	"time"

	"github.com/starford/raido/internal/models"
)

func post(id string, date string, tags []string, featured bool) models.Post {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.Post{ID: id, Title: id, Date: d, Tags: tags, Featured: featured}
}

func TestBuild_DateOrderTotality(t *testing.T) {
	posts := []models.Post{
		post("older", "2026-01-01", nil, false),
		post("newest", "2026-03-01", nil, false),
		post("bravo", "2026-02-01", nil, false),
		post("alpha", "2026-02-01", nil, false), // same date as bravo
	}
	c := Build(posts, DefaultRelatedCount)

	order := c.DateOrder()
	want := []string{"newest", "alpha", "bravo", "older"}
	if len(order) != len(want) {
		t.Fatalf("order = %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestBuild_TagIndexCaseInsensitive(t *testing.T) {
	posts := []models.Post{
		post("a", "2026-01-01", []string{"Go", " databases "}, false),
		post("b", "2026-01-02", []string{"go"}, false),
	}
	c := Build(posts, DefaultRelatedCount)

	ids := c.PostsByTag("GO")
	if len(ids) != 2 || ids[0] != "b" || ids[1] != "a" {
		t.Errorf("PostsByTag(GO) = %v", ids)
	}
	if ids := c.PostsByTag("databases"); len(ids) != 1 || ids[0] != "a" {
		t.Errorf("PostsByTag(databases) = %v", ids)
	}

	tags := c.Tags()
	if len(tags) != 2 || tags[0] != "databases" || tags[1] != "go" {
		t.Errorf("Tags = %v", tags)
	}
}

func TestBuild_DisplayTagCasingPreserved(t *testing.T) {
	c := Build([]models.Post{post("a", "2026-01-01", []string{"Go", "CRDTs"}, false)}, 0)
	p, ok := c.Post("a")
	if !ok {
		t.Fatal("post a missing")
	}
	if p.Tags[0] != "Go" || p.Tags[1] != "CRDTs" {
		t.Errorf("tags = %v", p.Tags)
	}
}

func TestBuild_FeaturedIndex(t *testing.T) {
	posts := []models.Post{
		post("plain", "2026-01-03", nil, false),
		post("star-old", "2026-01-01", nil, true),
		post("star-new", "2026-01-02", nil, true),
	}
	c := Build(posts, 0)
	featured := c.Featured()
	if len(featured) != 2 || featured[0] != "star-new" || featured[1] != "star-old" {
		t.Errorf("Featured = %v", featured)
	}
}

func TestBuild_AccessorsReturnCopies(t *testing.T) {
	c := Build([]models.Post{post("a", "2026-01-01", []string{"x"}, false)}, 0)

	order := c.DateOrder()
	order[0] = "mutated"
	if c.DateOrder()[0] != "a" {
		t.Error("DateOrder leaked internal slice")
	}

	ids := c.PostsByTag("x")
	ids[0] = "mutated"
	if c.PostsByTag("x")[0] != "a" {
		t.Error("PostsByTag leaked internal slice")
	}
}

func TestSnapshot_Shape(t *testing.T) {
	posts := []models.Post{
		post("a", "2026-01-01", []string{"x"}, true),
		post("b", "2026-01-02", nil, false),
	}
	c := Build(posts, 1)
	snap := c.Snapshot()

	if len(snap.Posts) != 2 || snap.Posts[0].ID != "b" {
		t.Errorf("posts = %+v", snap.Posts)
	}
	if snap.Posts[1].Tags == nil || snap.Posts[0].Tags == nil {
		t.Error("post tags must be non-nil in snapshots")
	}
	if snap.Posts[0].RelatedIDs == nil {
		t.Error("relatedIds must be non-nil in snapshots")
	}
	if len(snap.TagIndex["x"]) != 1 || snap.TagIndex["x"][0] != "a" {
		t.Errorf("tagIndex = %v", snap.TagIndex)
	}
	if len(snap.Featured) != 1 || snap.Featured[0] != "a" {
		t.Errorf("featured = %v", snap.Featured)
	}
}

func TestChecksum_Deterministic(t *testing.T) {
	posts := []models.Post{
		post("a", "2026-01-01", []string{"x", "y"}, false),
		post("b", "2026-01-02", []string{"y"}, true),
	}
	c1 := Build(posts, 2)
	c2 := Build(posts, 2)

	s1, err := c1.Checksum()
	if err != nil {
		t.Fatalf("Checksum: %v", err)
	}
	s2, err := c2.Checksum()
	if err != nil {
		t.Fatalf("Checksum: %v", err)
	}
	if s1 != s2 {
		t.Errorf("checksums differ: %s vs %s", s1, s2)
	}
}
