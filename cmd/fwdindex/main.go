package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/irtools/forward-index-builder/internal/forwardindex"
	"github.com/irtools/forward-index-builder/internal/forwardindex/content"
	"github.com/irtools/forward-index-builder/internal/forwardindex/normalize"
	"github.com/irtools/forward-index-builder/internal/forwardindex/source"
	"github.com/irtools/forward-index-builder/pkg/config"
	fwderrors "github.com/irtools/forward-index-builder/pkg/errors"
	"github.com/irtools/forward-index-builder/pkg/logger"
	"github.com/irtools/forward-index-builder/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	inputPath := flag.String("input", "", "path to input record file (overrides config)")
	outputPrefix := flag.String("output", "", "output path prefix (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(fwderrors.ExitCode(err))
	}
	if *inputPath != "" {
		cfg.Input.Path = *inputPath
	}
	if *outputPrefix != "" {
		cfg.Output.Prefix = *outputPrefix
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(fwderrors.ExitCode(err))
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting forward-index build", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rec forwardindex.Recorder
	var metricsShutdown func(context.Context) error
	if cfg.Metrics.Enabled {
		m := metrics.New()
		metricsShutdown = m.StartServer(cfg.Metrics.Addr)
		rec = forwardindex.MetricsRecorder{Metrics: m}
	}

	in, err := os.Open(cfg.Input.Path)
	if err != nil {
		slog.Error("failed to open input", "error", err)
		os.Exit(fwderrors.ExitCode(fwderrors.IOf(err, "opening %s", cfg.Input.Path)))
	}
	defer in.Close()

	opts := forwardindex.BuildOptions{
		Source:       source.NewPlaintextSource(in),
		Content:      contentFunc(cfg.Tokenizer.Content),
		Term:         termFunc(cfg.Tokenizer.Term),
		OutputPrefix: cfg.Output.Prefix,
		BatchSize:    cfg.Output.BatchSize,
		Threads:      cfg.Output.Threads,
	}

	builder := &forwardindex.Builder{Recorder: rec}
	stats, err := builder.Build(ctx, opts)
	if metricsShutdown != nil {
		_ = metricsShutdown(context.Background())
	}
	if err != nil {
		slog.Error("build failed", "error", err)
		os.Exit(fwderrors.ExitCode(err))
	}

	slog.Info("build succeeded",
		"build_id", stats.BuildID,
		"batch_count", stats.BatchCount,
		"document_count", stats.DocumentCount,
		"term_count", stats.TermCount,
		"elapsed", stats.Elapsed,
	)
}

func contentFunc(name string) forwardindex.ContentFunc {
	switch name {
	case "html":
		return content.HTML
	default:
		return content.Whitespace
	}
}

func termFunc(name string) forwardindex.TermFunc {
	switch name {
	case "identity":
		return normalize.Identity
	case "stem":
		return normalize.Stem
	default:
		return normalize.Lowercase
	}
}
