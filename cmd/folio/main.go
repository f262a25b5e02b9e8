package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/folio/internal"
	pkgconfig "github.com/starford/folio/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if _, err := pkgconfig.LoadOrDefault(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func mcp(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.RunMCP(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("mcp server error: %w", err)
	}
	return nil
}

func query(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("missing operation, want one of: %s", opNames())
	}
	op := cmd.Args().Get(0)
	arg := strings.Join(cmd.Args().Tail(), " ")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if latency := cmd.String("latency"); latency != "" {
		cfg.Query.Latency = latency
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	return internal.RunQuery(ctx, op, arg, internal.WithConfig(cfg))
}

func opNames() string {
	names := make([]string, 0, len(internal.QueryOps))
	for _, o := range internal.QueryOps {
		if o.Arg != "" {
			names = append(names, o.Name+" <"+o.Arg+">")
			continue
		}
		names = append(names, o.Name)
	}
	return strings.Join(names, ", ")
}

func main() {
	cmd := &cli.Command{
		Name:   "folio",
		Usage:  "Blog content service: JSON API, page models, feed and MCP tools over posts, categories and tags",
		Action: serve,
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
				Usage:  "Start the HTTP server",
				Action: serve,
			},
			{
				Name:   "mcp",
				Usage:  "Serve MCP tools on stdio",
				Action: mcp,
			},
			{
				Name:        "query",
				Usage:       "Run one query against the configured backend and print JSON",
				ArgsUsage:   "<op> [arg]",
				Description: "Operations: " + opNames(),
				Action:      query,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "latency",
						Usage: "Override the latency profile (mock or none)",
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
