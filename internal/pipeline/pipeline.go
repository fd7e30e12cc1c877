// Package pipeline drives the batch transform: raw files in, a validated
// corpus and a triage report out. Per-file work fans out across a bounded
// worker group; slug resolution, indexing, and related-post scoring run
// single-threaded afterwards because they need global knowledge.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/corpus"
	"github.com/starford/raido/internal/mdtext"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/parser"
	"github.com/starford/raido/internal/slugger"
	"github.com/starford/raido/internal/splitter"
	"github.com/starford/raido/internal/storage"
	"github.com/starford/raido/internal/validate"
)

// excerptLimit caps generated excerpts when frontmatter does not provide one.
const excerptLimit = 200

// Config holds the pipeline knobs.
type Config struct {
	// Sentinel is the literal separator between concatenated posts.
	Sentinel string
	// RelatedCount caps related links per post; 0 means DefaultRelatedCount.
	RelatedCount int
	// Workers bounds the per-file fan-out; 0 means runtime.NumCPU.
	Workers int
}

// Pipeline ingests a content directory into a Corpus.
type Pipeline struct {
	store  storage.Provider
	cfg    Config
	logger *slog.Logger
}

// New creates a pipeline over the given content provider.
func New(store storage.Provider, cfg Config, logger *slog.Logger) *Pipeline {
	if cfg.Sentinel == "" {
		cfg.Sentinel = splitter.DefaultSentinel
	}
	if cfg.RelatedCount == 0 {
		cfg.RelatedCount = corpus.DefaultRelatedCount
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Pipeline{store: store, cfg: cfg, logger: logger}
}

// Report is the structured triage output of one run.
type Report struct {
	Records []models.TriageRecord `json:"records"`
}

// draft is a validated segment awaiting identity assignment.
type draft struct {
	sourcePath   string
	segmentIndex int
	fileSegments int
	fm           models.Frontmatter
	body         string
}

// fileResult is one worker's contribution; each worker writes only its own
// slot, so the fan-out needs no locking.
type fileResult struct {
	drafts  []draft
	records []models.TriageRecord
}

// Run executes one full build. Individual bad files and segments surface as
// triage records without aborting the run; only zero valid posts is a
// build-level failure (apperr.ErrEmptyCorpus).
func (p *Pipeline) Run(ctx context.Context) (*corpus.Corpus, *Report, error) {
	metas, err := p.store.List()
	if err != nil {
		return nil, nil, fmt.Errorf("pipeline: list content: %w", err)
	}

	results := make([]fileResult, len(metas))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)
	for i, m := range metas {
		i, m := i, m
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.processFile(m.Path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("pipeline: %w", err)
	}

	report := &Report{Records: []models.TriageRecord{}}
	var drafts []draft
	for _, r := range results {
		drafts = append(drafts, r.drafts...)
		report.Records = append(report.Records, r.records...)
	}

	posts := p.assignIdentities(drafts, report)

	sort.Slice(report.Records, func(i, j int) bool {
		a, b := report.Records[i], report.Records[j]
		if a.SourcePath != b.SourcePath {
			return a.SourcePath < b.SourcePath
		}
		return a.SegmentIndex < b.SegmentIndex
	})

	if len(posts) == 0 {
		return nil, report, fmt.Errorf("pipeline: %w", apperr.ErrEmptyCorpus)
	}

	c := corpus.Build(posts, p.cfg.RelatedCount)
	p.logger.Info("pipeline: corpus built",
		slog.Int("files", len(metas)),
		slog.Int("posts", c.Len()),
		slog.Int("triage_records", len(report.Records)))
	return c, report, nil
}

// processFile reads, splits, parses, and validates one source file. Failures
// become triage records; nothing here aborts the run.
func (p *Pipeline) processFile(path string) fileResult {
	var res fileResult

	data, err := p.store.Read(path)
	if err != nil {
		p.logger.Warn("pipeline: read failed", slog.String("path", path), slog.String("error", err.Error()))
		res.records = append(res.records, models.TriageRecord{
			SourcePath: path, SegmentIndex: -1,
			Reason: models.ReasonReadError, Severity: models.SeverityError,
			Detail: err.Error(),
		})
		return res
	}
	if !utf8.Valid(data) {
		p.logger.Warn("pipeline: invalid encoding", slog.String("path", path))
		res.records = append(res.records, models.TriageRecord{
			SourcePath: path, SegmentIndex: -1,
			Reason: models.ReasonInvalidEncoding, Severity: models.SeverityError,
			Detail: "file is not valid UTF-8",
		})
		return res
	}

	segs := splitter.Split(path, string(data), p.cfg.Sentinel)
	for _, seg := range segs {
		d, records := p.processSegment(seg, len(segs))
		res.records = append(res.records, records...)
		if d != nil {
			res.drafts = append(res.drafts, *d)
		}
	}
	return res
}

func (p *Pipeline) processSegment(seg models.RawSegment, fileSegments int) (*draft, []models.TriageRecord) {
	var records []models.TriageRecord

	parsed, err := parser.Parse(seg.Text)
	if err != nil {
		reason := models.ReasonMissingFrontmatter
		if errors.Is(err, apperr.ErrUnterminatedFrontmatter) {
			reason = models.ReasonUnterminatedFrontmatter
		}
		p.logger.Warn("pipeline: segment rejected",
			slog.String("path", seg.SourcePath),
			slog.Int("segment", seg.SegmentIndex),
			slog.String("reason", reason))
		return nil, append(records, models.TriageRecord{
			SourcePath: seg.SourcePath, SegmentIndex: seg.SegmentIndex,
			Reason: reason, Severity: models.SeverityError,
			Detail: err.Error(),
		})
	}
	for _, issue := range parsed.Issues {
		records = append(records, models.TriageRecord{
			SourcePath: seg.SourcePath, SegmentIndex: seg.SegmentIndex,
			Reason: models.ReasonMalformedField, Severity: models.SeverityWarning,
			Detail: fmt.Sprintf("%s: %v", issue.Key, issue.Err),
		})
	}

	fm, issues, err := validate.Frontmatter(parsed.Fields)
	if err != nil {
		reason := models.ReasonMissingTitle
		if errors.Is(err, apperr.ErrInvalidDate) {
			reason = models.ReasonInvalidDate
		}
		p.logger.Warn("pipeline: segment rejected",
			slog.String("path", seg.SourcePath),
			slog.Int("segment", seg.SegmentIndex),
			slog.String("reason", reason))
		return nil, append(records, models.TriageRecord{
			SourcePath: seg.SourcePath, SegmentIndex: seg.SegmentIndex,
			Reason: reason, Severity: models.SeverityError,
			Detail: err.Error(),
		})
	}
	for _, issue := range issues {
		records = append(records, models.TriageRecord{
			SourcePath: seg.SourcePath, SegmentIndex: seg.SegmentIndex,
			Reason: models.ReasonMalformedField, Severity: models.SeverityWarning,
			Detail: fmt.Sprintf("%s: %s", issue.Field, issue.Detail),
		})
	}

	return &draft{
		sourcePath:   seg.SourcePath,
		segmentIndex: seg.SegmentIndex,
		fileSegments: fileSegments,
		fm:           fm,
		body:         parsed.Body,
	}, records
}

// assignIdentities derives slugs in (sourcePath, segmentIndex) order so
// collision suffixes are reproducible, then materialises the final posts.
func (p *Pipeline) assignIdentities(drafts []draft, report *Report) []models.Post {
	sort.Slice(drafts, func(i, j int) bool {
		if drafts[i].sourcePath != drafts[j].sourcePath {
			return drafts[i].sourcePath < drafts[j].sourcePath
		}
		return drafts[i].segmentIndex < drafts[j].segmentIndex
	})

	alloc := slugger.NewAllocator()
	posts := make([]models.Post, 0, len(drafts))
	for _, d := range drafts {
		base := p.baseSlug(d)
		id, collided := alloc.Claim(base)
		if collided {
			p.logger.Warn("pipeline: slug collision",
				slog.String("path", d.sourcePath),
				slog.Int("segment", d.segmentIndex),
				slog.String("slug", id))
			report.Records = append(report.Records, models.TriageRecord{
				SourcePath: d.sourcePath, SegmentIndex: d.segmentIndex,
				Reason: models.ReasonSlugCollision, Severity: models.SeverityWarning,
				Detail: fmt.Sprintf("slug %q taken, assigned %q", base, id),
			})
		}

		excerpt := d.fm.Excerpt
		if excerpt == "" {
			excerpt = mdtext.Excerpt([]byte(d.body), excerptLimit)
		}

		posts = append(posts, models.Post{
			ID:           id,
			SourcePath:   d.sourcePath,
			SegmentIndex: d.segmentIndex,
			Title:        d.fm.Title,
			Date:         d.fm.Date,
			Excerpt:      excerpt,
			Tags:         d.fm.Tags,
			Featured:     d.fm.Featured,
			Body:         d.body,
			WordCount:    mdtext.WordCount([]byte(d.body)),
			Extra:        d.fm.Extra,
		})
	}
	return posts
}

// baseSlug prefers the filename's date-prefixed slug for single-segment
// files, where the filename is the more deliberate identifier. Segments of a
// composite file share one filename, so their slugs are always title-derived.
func (p *Pipeline) baseSlug(d draft) string {
	if d.fileSegments == 1 {
		if s, ok := slugger.FromPath(d.sourcePath); ok {
			return s
		}
	}
	return slugger.Slugify(d.fm.Title)
}
