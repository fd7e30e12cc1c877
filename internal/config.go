package internal

import (
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/raido/internal/corpus"
	"github.com/starford/raido/internal/splitter"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Content  ContentConfig     `yaml:"content"`
	Pipeline PipelineConfig    `yaml:"pipeline"`
	Output   OutputConfig      `yaml:"output"`
	SQLite   SQLiteConfig      `yaml:"sqlite"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Content.Validate(); err != nil {
		return err
	}
	if err := c.Pipeline.Validate(); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	return c.SQLite.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// ContentConfig locates the markdown sources and names the sentinel used to
// separate concatenated posts within one file.
type ContentConfig struct {
	Path     string `yaml:"path"`
	Sentinel string `yaml:"sentinel"`
}

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.Sentinel, validation.Required),
	)
}

// PipelineConfig holds the batch-transform knobs.
type PipelineConfig struct {
	// RelatedCount caps related links per post; 0 means the default.
	RelatedCount int `yaml:"related_count"`
	// Workers bounds the per-file fan-out; 0 means one per CPU.
	Workers int `yaml:"workers"`
}

// Validate validates the pipeline configuration.
func (c *PipelineConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.RelatedCount, validation.Min(0), validation.Max(50)),
		validation.Field(&c.Workers, validation.Min(0), validation.Max(256)),
	)
}

// OutputConfig names the files a build writes.
type OutputConfig struct {
	CorpusPath string `yaml:"corpus_path"`
	TriagePath string `yaml:"triage_path"`
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.CorpusPath, validation.Required),
		validation.Field(&c.TriagePath, validation.Required),
	)
}

// SQLiteConfig holds the search-cache database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Content: ContentConfig{
			Path:     "./content/posts",
			Sentinel: splitter.DefaultSentinel,
		},
		Pipeline: PipelineConfig{
			RelatedCount: corpus.DefaultRelatedCount,
		},
		Output: OutputConfig{
			CorpusPath: "./public/corpus.json",
			TriagePath: "./public/triage.json",
		},
		SQLite: SQLiteConfig{
			Path: "./raido.db",
		},
	}
}
