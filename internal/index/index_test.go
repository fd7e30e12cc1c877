package index

import (
	"os"
	"testing"
	"time"

	"github.com/starford/raido/internal/corpus"
	"github.com/starford/raido/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "raido-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testSnapshot() corpus.Snapshot {
	posts := []models.Post{
		{
			ID:         "replication-basics",
			SourcePath: "2026-01-02-replication-basics.md",
			Title:      "Replication Basics",
			Date:       time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			Tags:       []string{"databases"},
			Featured:   true,
			Body:       "leader follower uniqueword",
			WordCount:  3,
		},
		{
			ID:         "consensus-notes",
			SourcePath: "2026-01-01-consensus-notes.md",
			Title:      "Consensus Notes",
			Date:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			Tags:       []string{"databases", "Distributed-Systems"},
			Body:       "raft paxos",
			WordCount:  2,
		},
	}
	return corpus.Build(posts, 1).Snapshot()
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM posts`).Scan(&count); err != nil {
		t.Fatalf("posts table missing: %v", err)
	}
	if err := db.conn.QueryRow(`SELECT count(*) FROM post_tags`).Scan(&count); err != nil {
		t.Fatalf("post_tags table missing: %v", err)
	}
}

func TestRebuildAndGetPost(t *testing.T) {
	db := testDB(t)
	if err := db.Rebuild(testSnapshot()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	p, err := db.GetPost("replication-basics")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if p == nil {
		t.Fatal("post missing")
	}
	if p.Title != "Replication Basics" || !p.Featured || p.WordCount != 3 {
		t.Errorf("row = %+v", p)
	}
	if !p.Date.Equal(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v", p.Date)
	}
	if len(p.Related) != 1 || p.Related[0] != "consensus-notes" {
		t.Errorf("related = %v", p.Related)
	}
}

func TestGetPost_NotFound(t *testing.T) {
	db := testDB(t)
	p, err := db.GetPost("nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil, got %+v", p)
	}
}

func TestRebuild_ReplacesWholesale(t *testing.T) {
	db := testDB(t)
	if err := db.Rebuild(testSnapshot()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	smaller := corpus.Build([]models.Post{{
		ID:    "only",
		Title: "Only",
		Date:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}}, 1).Snapshot()
	if err := db.Rebuild(smaller); err != nil {
		t.Fatalf("second Rebuild: %v", err)
	}

	ids, err := db.IDsByDate()
	if err != nil {
		t.Fatalf("IDsByDate: %v", err)
	}
	if len(ids) != 1 || ids[0] != "only" {
		t.Errorf("ids = %v, want [only]", ids)
	}
}

func TestIDsByDate_NewestFirst(t *testing.T) {
	db := testDB(t)
	if err := db.Rebuild(testSnapshot()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	ids, err := db.IDsByDate()
	if err != nil {
		t.Fatalf("IDsByDate: %v", err)
	}
	if len(ids) != 2 || ids[0] != "replication-basics" || ids[1] != "consensus-notes" {
		t.Errorf("ids = %v", ids)
	}
}

func TestIDsByTag_Normalised(t *testing.T) {
	db := testDB(t)
	if err := db.Rebuild(testSnapshot()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	ids, err := db.IDsByTag("DATABASES")
	if err != nil {
		t.Fatalf("IDsByTag: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("ids = %v", ids)
	}
	ids, err = db.IDsByTag("distributed-systems")
	if err != nil {
		t.Fatalf("IDsByTag: %v", err)
	}
	if len(ids) != 1 || ids[0] != "consensus-notes" {
		t.Errorf("ids = %v", ids)
	}
}

func TestFeaturedIDs(t *testing.T) {
	db := testDB(t)
	if err := db.Rebuild(testSnapshot()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	ids, err := db.FeaturedIDs()
	if err != nil {
		t.Fatalf("FeaturedIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != "replication-basics" {
		t.Errorf("ids = %v", ids)
	}
}

func TestSearch_Basic(t *testing.T) {
	db := testDB(t)
	if err := db.Rebuild(testSnapshot()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	results, err := db.Search("uniqueword", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].ID != "replication-basics" {
		t.Errorf("results = %+v, want 1 hit for replication-basics", results)
	}
}
