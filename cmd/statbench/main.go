// Package main provides the CLI entry point for statbench, a filesystem
// metadata benchmarking tool.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/weiihann/statbench/bench"
	"github.com/weiihann/statbench/harness"
	"github.com/weiihann/statbench/report"
	"github.com/weiihann/statbench/treegen"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		logger.Error("statbench failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "statbench",
		Short: "Filesystem metadata benchmarking tool",
		Long: `Statbench measures filesystem metadata performance: it discovers as
many paths as possible under a target directory within a time budget, then
reports the throughput of stat calls against those paths, serially and with
a pool of concurrent workers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newGenCmd(logger))

	return root
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var (
		target     string
		budgetSecs float64
		repeat     int
		delaySecs  float64
		workers    int
		format     string
		logPath    string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Benchmark metadata throughput against a directory tree",
		Long: `Discover paths under the target directory for up to the discovery
budget, then measure serial and parallel stat throughput over the discovered
paths. Discovery runs once; repeat iterations reuse the same path list.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBenchmark(cmd.Context(), logger, runConfig{
				target:     target,
				budgetSecs: budgetSecs,
				repeat:     repeat,
				delaySecs:  delaySecs,
				workers:    workers,
				format:     format,
				logPath:    logPath,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&target, "target", "",
		"Directory tree to benchmark against (required)")
	flags.Float64Var(&budgetSecs, "time", 60,
		"Path discovery budget in seconds")
	flags.IntVar(&repeat, "repeat", 1,
		"Number of benchmark iterations")
	flags.Float64Var(&delaySecs, "delay", 0,
		"Seconds to sleep between iterations")
	flags.IntVar(&workers, "workers", bench.DefaultWorkers,
		"Concurrent stat workers in the parallel phase")
	flags.StringVar(&format, "format", string(report.FormatKeyValue),
		"Output format: csv, key-value, json")
	flags.StringVar(&logPath, "log", "",
		"Result log file (default $TMPDIR/statbench.log)")

	return cmd
}

type runConfig struct {
	target     string
	budgetSecs float64
	repeat     int
	delaySecs  float64
	workers    int
	format     string
	logPath    string
}

func runBenchmark(
	ctx context.Context,
	logger *slog.Logger,
	cfg runConfig,
) error {
	if cfg.target == "" {
		return fmt.Errorf(
			"a target directory must be specified via --target",
		)
	}

	if cfg.budgetSecs <= 0 {
		return fmt.Errorf("--time must be positive, got %v", cfg.budgetSecs)
	}

	format, err := report.ParseFormat(cfg.format)
	if err != nil {
		logger.Warn("unknown output format, using key-value",
			slog.String("format", cfg.format),
		)
	}

	logPath := cfg.logPath
	if logPath == "" {
		logPath = filepath.Join(os.TempDir(), "statbench.log")
	}

	logFile, err := os.OpenFile(
		logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644,
	)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", logPath, err)
	}
	defer logFile.Close()

	logger.InfoContext(ctx, "starting benchmark",
		slog.String("target", cfg.target),
		slog.Float64("time_budget_secs", cfg.budgetSecs),
		slog.Int("repeat", cfg.repeat),
		slog.Int("workers", cfg.workers),
		slog.String("format", string(format)),
		slog.String("log", logPath),
	)

	reporter := report.NewWriter(io.MultiWriter(os.Stdout, logFile), format)

	runner := harness.NewRunner(harness.Config{
		Target:     cfg.target,
		TimeBudget: secondsToDuration(cfg.budgetSecs),
		Repeat:     cfg.repeat,
		Delay:      secondsToDuration(cfg.delaySecs),
		Workers:    cfg.workers,
	}, reporter, logger)

	if err := runner.Run(ctx); err != nil {
		return err
	}

	logger.InfoContext(ctx, "benchmark complete")

	return nil
}

func newGenCmd(logger *slog.Logger) *cobra.Command {
	var (
		dir   string
		files int
		dirs  int
		depth int
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a synthetic directory tree to benchmark against",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				return fmt.Errorf(
					"an output directory must be specified via --dir",
				)
			}

			gen := treegen.NewGenerator(treegen.Config{
				Dirs:  dirs,
				Files: files,
				Depth: depth,
				Seed:  seed,
			})

			summary, err := gen.Generate(dir)
			if err != nil {
				return fmt.Errorf("generate tree: %w", err)
			}

			logger.InfoContext(cmd.Context(), "tree generated",
				slog.String("dir", dir),
				slog.Int("dirs", summary.DirsCreated),
				slog.Int("files", summary.FilesCreated),
			)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dir, "dir", "",
		"Directory to create the tree under (required)")
	flags.IntVar(&files, "files", 10000,
		"Number of files to create")
	flags.IntVar(&dirs, "dirs", 100,
		"Number of directories to create")
	flags.IntVar(&depth, "depth", 4,
		"Maximum directory nesting depth")
	flags.Int64Var(&seed, "seed", 42,
		"Random seed for tree layout")

	return cmd
}

func secondsToDuration(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}
