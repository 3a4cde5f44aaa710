package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/pymaster/internal"
	pkgconfig "github.com/starford/pymaster/pkg/config"
)

var version = "dev"

func loadOptions(cmd *cli.Command) ([]internal.Option, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	found, err := pkgconfig.LoadOptional(configPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if !found {
		slog.Warn("config file not found, using defaults", slog.String("path", configPath))
	}
	return []internal.Option{
		internal.WithConfig(cfg),
		internal.WithVersion(version),
	}, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func mcp(ctx context.Context, cmd *cli.Command) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	if err := internal.RunMCP(ctx, opts...); err != nil {
		return fmt.Errorf("mcp server error: %w", err)
	}
	return nil
}

func renderNote(ctx context.Context, cmd *cli.Command) error {
	notePath := cmd.Args().First()
	if notePath == "" {
		return errors.New("usage: pymaster render <note-path>")
	}
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	return internal.RenderNote(ctx, os.Stdout, notePath, opts...)
}

func main() {
	cmd := &cli.Command{
		Name:    "pymaster",
		Usage:   "Markdown study wiki for Python data structures and algorithms",
		Version: version,
		Action:  serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the wiki and JSON API over HTTP",
				Action: serve,
			},
			{
				Name:   "mcp",
				Usage:  "Expose the notes as MCP tools on stdio",
				Action: mcp,
			},
			{
				Name:      "render",
				Usage:     "Print the HTML of one note",
				ArgsUsage: "<note-path>",
				Action:    renderNote,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
