// Command groomtrack converts behavioral annotation CSVs into timeline
// tables, event lists, summary statistics, and SVG plots.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/flylab/groomtrack/internal/adapters/plot"
	"github.com/flylab/groomtrack/internal/app"
	"github.com/flylab/groomtrack/internal/config"
	"github.com/flylab/groomtrack/pkg/logger"
	"github.com/flylab/groomtrack/pkg/metrics"
)

// HTTP server timeout constants for the optional metrics listener.
const (
	metricsReadTimeout       = 10 * time.Second
	metricsReadHeaderTimeout = 5 * time.Second
)

// CLI flags
var (
	inputFlag         string
	outputFlag        string
	totalFramesFlag   int
	workersFlag       int
	strictOverlapFlag bool
	logLevelFlag      string
	metricsAddrFlag   string
)

// rootCmd is the main Cobra command for the groomtrack CLI.
var rootCmd = &cobra.Command{
	Use:   "groomtrack",
	Short: "Convert behavioral annotation CSVs to structured timelines and statistics",
	Long: `Groomtrack processes CSV files of manually annotated frame indices
(start/stop markers of grooming events exported from ImageJ) and produces,
per video, a dense per-frame timeline table, an event table, and SVG
visualizations, plus a consolidated summary and error log for the batch.

Files failing validation are reported in the error log without stopping
the rest of the batch.

Examples:
  groomtrack --input scores/ --output results/
  groomtrack --input video_01.csv --output out/ --total-frames 4500
  groomtrack --input scores/ --output results/ --strict-overlap`,
	RunE: runMain,
}

func init() {
	rootCmd.Flags().StringVar(&inputFlag, "input", "", "Path to input CSV file or directory containing CSV files")
	rootCmd.Flags().StringVar(&outputFlag, "output", "", "Path to a new output directory for storing results")
	rootCmd.Flags().IntVar(&totalFramesFlag, "total-frames", config.DefaultTotalFrames, "Total number of frames to consider")
	rootCmd.Flags().IntVar(&workersFlag, "workers", 0, "Number of pipeline workers (default: CPU count)")
	rootCmd.Flags().BoolVar(&strictOverlapFlag, "strict-overlap", false, "Fail files with overlapping events instead of resolving last-write-wins")
	rootCmd.Flags().StringVar(&logLevelFlag, "log-level", "", "Log verbosity: debug, info, warn, error")
	rootCmd.Flags().StringVar(&metricsAddrFlag, "metrics-addr", "", "Serve Prometheus metrics on this address during the batch, e.g. :9090")
	_ = rootCmd.MarkFlagRequired("input")
	_ = rootCmd.MarkFlagRequired("output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runMain is the main execution logic called by Cobra.
func runMain(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env), then let
	// explicitly-set flags win.
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// The output directory must not already exist; refusing to reuse it
	// keeps runs from silently mixing.
	if _, err := os.Stat(outputFlag); err == nil {
		return fmt.Errorf("output directory %q already exists, specify a new directory", outputFlag)
	}
	if err := os.MkdirAll(outputFlag, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, log, cfg.MetricsAddr)
	}

	runner := app.New(
		app.WithLogger(log),
		app.WithTotalFrames(cfg.TotalFrames),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithStrictOverlap(cfg.StrictOverlap),
		app.WithOutputDir(outputFlag),
		app.WithPlotOptions(plot.Options{Width: cfg.PlotWidth, Height: cfg.PlotHeight}),
	)

	report, err := runner.Run(ctx, inputFlag)
	if err != nil {
		return err
	}

	fmt.Printf("Processed %d files: %d successful, %d faulty. Results in %s\n",
		report.Summary.TotalFiles, report.Summary.Successful, report.Summary.Faulty, outputFlag)
	return nil
}

// applyFlags copies explicitly-set CLI flags over the loaded config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("total-frames") {
		cfg.TotalFrames = totalFramesFlag
	}
	if cmd.Flags().Changed("workers") {
		cfg.WorkerCount = workersFlag
	}
	if cmd.Flags().Changed("strict-overlap") {
		cfg.StrictOverlap = strictOverlapFlag
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevelFlag
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddrFlag
	}
}

// serveMetrics exposes the custom registry for the duration of the batch.
func serveMetrics(ctx context.Context, log logger.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       metricsReadTimeout,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	log.Info(ctx, "serving metrics", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Warn(ctx, "metrics listener failed", logger.Error(err))
	}
}
