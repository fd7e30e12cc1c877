package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/raido/internal"
	pkgconfig "github.com/starford/raido/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if sentinel := cmd.String("sentinel"); sentinel != "" {
		cfg.Content.Sentinel = sentinel
	}
	if content := cmd.String("content"); content != "" {
		cfg.Content.Path = content
	}
	return cfg, nil
}

func runBuild(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.Run(ctx, internal.WithConfig(cfg))
}

func runWatch(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.Run(ctx, internal.WithConfig(cfg), internal.WithWatchMode(true))
}

func main() {
	cmd := &cli.Command{
		Name:   "raido",
		Usage:  "Markdown blog corpus ingestion: splits composite files, validates frontmatter, and builds tag, date, and related-post indices",
		Action: runBuild,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "content",
				Usage:   "Override content directory",
				Sources: cli.EnvVars("RAIDO_CONTENT_DIR"),
			},
			&cli.StringFlag{
				Name:    "sentinel",
				Usage:   "Override the document separator literal",
				Sources: cli.EnvVars("RAIDO_SENTINEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Run one batch build of the corpus",
				Action: runBuild,
			},
			{
				Name:   "watch",
				Usage:  "Rebuild the corpus whenever content changes",
				Action: runWatch,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
