// Package mdtext extracts plain text from markdown for derived metadata.
// It walks the goldmark AST so that link syntax, emphasis markers, and code
// fences do not leak into word counts or generated excerpts.
package mdtext

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New()

// Text returns the plain prose of source with whitespace normalised to
// single spaces. Code block contents are excluded.
func Text(source []byte) string {
	doc := md.Parser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		// Blocks separate words; inline nodes concatenate.
		if n.Type() == ast.TypeBlock && b.Len() > 0 {
			b.WriteByte(' ')
		}
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(b.String()), " ")
}

// WordCount counts whitespace-separated words in the plain text of source.
func WordCount(source []byte) int {
	t := Text(source)
	if t == "" {
		return 0
	}
	return len(strings.Fields(t))
}

// Excerpt returns up to limit characters of plain text, cut at a word
// boundary with a trailing ellipsis when truncated.
func Excerpt(source []byte, limit int) string {
	t := Text(source)
	if limit <= 0 || len(t) <= limit {
		return t
	}
	cut := strings.LastIndex(t[:limit], " ")
	if cut <= 0 {
		cut = limit
	}
	return strings.TrimRight(t[:cut], " ,.;:") + "…"
}
