package parser

import (
	"errors"
	"testing"

	"github.com/starford/raido/internal/apperr"
)

func TestParse_FrontmatterAndBody(t *testing.T) {
	input := "---\ntitle: Hello\ntags: [\"go\", \"raido\"]\nfeatured: true\n---\n\n# Hello\nBody text."
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Fields["title"] != "Hello" {
		t.Errorf("title = %v", r.Fields["title"])
	}
	tags, ok := r.Fields["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "go" || tags[1] != "raido" {
		t.Errorf("tags = %v", r.Fields["tags"])
	}
	if r.Fields["featured"] != true {
		t.Errorf("featured = %v", r.Fields["featured"])
	}
	if r.Body != "# Hello\nBody text." {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_UnknownFieldsPreserved(t *testing.T) {
	r, err := Parse("---\ntitle: T\nauthor: someone\nlayout: wide\n---\nbody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Fields["author"] != "someone" || r.Fields["layout"] != "wide" {
		t.Errorf("unknown fields dropped: %v", r.Fields)
	}
}

func TestParse_MissingFrontmatter(t *testing.T) {
	_, err := Parse("# Just a heading\nSome text.")
	if !errors.Is(err, apperr.ErrMissingFrontmatter) {
		t.Fatalf("err = %v, want ErrMissingFrontmatter", err)
	}
}

func TestParse_Unterminated(t *testing.T) {
	_, err := Parse("---\ntitle: Oops\nno closing delimiter here")
	if !errors.Is(err, apperr.ErrUnterminatedFrontmatter) {
		t.Fatalf("err = %v, want ErrUnterminatedFrontmatter", err)
	}
}

func TestParse_OnlyOneLeadingBlankLineTrimmed(t *testing.T) {
	r, err := Parse("---\ntitle: T\n---\n\n\nfirst line")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Body != "\nfirst line" {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_MalformedLineSalvaged(t *testing.T) {
	input := "---\ntitle: Good\ndate: [unclosed\ntags: [\"a\"]\n---\nbody"
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Fields["title"] != "Good" {
		t.Errorf("title lost in salvage: %v", r.Fields)
	}
	if len(r.Issues) == 0 {
		t.Fatal("expected at least one issue for the broken date line")
	}
	found := false
	for _, is := range r.Issues {
		if is.Key == "date" {
			found = true
		}
	}
	if !found {
		t.Errorf("issues = %+v, want one keyed date", r.Issues)
	}
}

func TestParse_EmptyBlock(t *testing.T) {
	r, err := Parse("---\n---\nbody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Fields) != 0 {
		t.Errorf("fields = %v, want empty", r.Fields)
	}
	if r.Body != "body" {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_CRLF(t *testing.T) {
	r, err := Parse("---\r\ntitle: Windows\r\n---\r\nbody line")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Fields["title"] != "Windows" {
		t.Errorf("title = %v", r.Fields["title"])
	}
}
