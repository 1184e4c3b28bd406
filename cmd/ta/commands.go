package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-ta/internal/config"
	"github.com/rxtech-lab/argo-ta/internal/evaluator"
	"github.com/rxtech-lab/argo-ta/internal/loader"
	"github.com/rxtech-lab/argo-ta/internal/logger"
	"github.com/rxtech-lab/argo-ta/internal/metrics"
	"github.com/rxtech-lab/argo-ta/pkg/criteria"
	"github.com/rxtech-lab/argo-ta/pkg/indicator"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatYAML  = "yaml"
)

func evalCommand() *cli.Command {
	return &cli.Command{
		Name:  "eval",
		Usage: "Load bars and evaluate the indicators and criteria of a config file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path to the evaluation config `FILE`",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   fmt.Sprintf("Output format (%s or %s)", formatTable, formatYAML),
				Value:   formatTable,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Minimum log level (debug, info, warn, error)",
				Value: "warn",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Print collected Prometheus metrics after the report",
			},
		},
		Action: evalAction,
	}
}

// evalAction loads the configured series, evaluates it and renders the report.
func evalAction(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	if format != formatTable && format != formatYAML {
		return fmt.Errorf("unsupported format %q", format)
	}

	level, err := zapcore.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	l, err := logger.NewLoggerWithLevel(level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	m := metrics.NewMetrics()

	opts := []loader.Option{loader.WithLogger(l), loader.WithMetrics(m)}
	if cfg.Data.Table != "" {
		opts = append(opts, loader.WithTable(cfg.Data.Table))
	}

	ld, err := loader.New(cfg.Data.Source, opts...)
	if err != nil {
		return err
	}
	defer ld.Close()

	period, err := cfg.Period()
	if err != nil {
		return err
	}

	symbol := optional.None[string]()
	if cfg.Data.Symbol != "" {
		symbol = optional.Some(cfg.Data.Symbol)
	}

	name := cfg.Series.Name
	if name == "" {
		name = cfg.Data.Symbol
	}

	s, err := ld.Load(ctx, loader.Query{
		Name:        name,
		Factory:     cfg.NumFactory(),
		Period:      period,
		Symbol:      symbol,
		Start:       cfg.Data.StartTime,
		End:         cfg.Data.EndTime,
		Last:        cfg.Data.Limit,
		MaxBarCount: cfg.Series.MaxBarCount,
	})
	if err != nil {
		return err
	}

	l.Info("Loaded series",
		zap.String("backend", ld.Backend()),
		zap.String("series", s.Name()),
		zap.Int("bars", s.BarCount()))

	report, err := evaluator.NewEvaluator(indicator.NewDefaultRegistry(), l, m).Evaluate(ctx, s, cfg)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer

	switch format {
	case formatYAML:
		out, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}

		if _, err := w.Write(out); err != nil {
			return err
		}
	default:
		if err := renderReport(w, report); err != nil {
			return err
		}
	}

	if cmd.Bool("metrics") {
		return m.WriteText(w)
	}

	return nil
}

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Write the config JSON schema and a sample config",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output `DIR` for the schema and sample files",
				Value:   "config",
			},
		},
		Action: schemaAction,
	}
}

// schemaAction writes the schema and, unless one already exists, a sample config.
func schemaAction(_ context.Context, cmd *cli.Command) error {
	dir := cmd.String("out")

	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	schemaPath := filepath.Join(dir, config.SchemaName)
	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0o644); err != nil {
		return fmt.Errorf("failed to write schema to file: %w", err)
	}

	samplePath := filepath.Join(dir, strings.TrimSuffix(config.SchemaName, ".json")+".yaml")
	if _, err := os.Stat(samplePath); os.IsNotExist(err) {
		if err := os.WriteFile(samplePath, []byte(config.Sample()), 0o644); err != nil {
			return fmt.Errorf("failed to write sample config to file: %w", err)
		}

		fmt.Fprintf(cmd.Root().Writer, "Sample config written to %s\n", samplePath)
	}

	fmt.Fprintf(cmd.Root().Writer, "Schema written to %s\n", schemaPath)

	return nil
}

func listIndicatorsCommand() *cli.Command {
	return &cli.Command{
		Name:  "indicators",
		Usage: "List the indicator types available to configs",
		Action: func(_ context.Context, cmd *cli.Command) error {
			names := indicator.NewDefaultRegistry().List()

			items := make([]string, len(names))
			for i, name := range names {
				items[i] = string(name)
			}

			return renderList(cmd.Root().Writer, "Indicators", items)
		},
	}
}

func listCriteriaCommand() *cli.Command {
	return &cli.Command{
		Name:  "criteria",
		Usage: "List the analysis criteria available to configs",
		Action: func(_ context.Context, cmd *cli.Command) error {
			return renderList(cmd.Root().Writer, "Criteria (prefix with "+criteria.VersusPrefix+" for buy and hold comparison)", criteria.Names())
		},
	}
}
