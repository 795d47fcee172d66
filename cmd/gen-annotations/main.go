// Command gen-annotations writes synthetic ImageJ-style annotation CSVs
// for exercising the converter.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/flylab/groomtrack/internal/gendata"
	"github.com/flylab/groomtrack/pkg/logger"
)

// CLI flags
var (
	outputFlag       string
	filesFlag        int
	eventsFlag       int
	totalFramesFlag  int
	corruptEveryFlag int
)

var rootCmd = &cobra.Command{
	Use:   "gen-annotations",
	Short: "Generate synthetic behavioral annotation CSVs",
	Long: `Gen-annotations produces ImageJ-style measurement CSVs with strictly
increasing, even-count Frame columns, suitable as groomtrack input.
With --corrupt-every N, every Nth file carries one of the validation
defects (missing column, non-numeric cell, odd count, non-increasing
order) so error handling can be exercised end to end.

Examples:
  gen-annotations --output testdata/ --files 20
  gen-annotations --output testdata/ --files 12 --corrupt-every 4`,
	RunE: runMain,
}

func init() {
	defaults := gendata.DefaultConfig()
	rootCmd.Flags().StringVar(&outputFlag, "output", "", "Directory to write generated CSVs into")
	rootCmd.Flags().IntVar(&filesFlag, "files", defaults.NumFiles, "Number of annotation files to generate")
	rootCmd.Flags().IntVar(&eventsFlag, "events", defaults.EventsPerFile, "Number of grooming events per file")
	rootCmd.Flags().IntVar(&totalFramesFlag, "total-frames", defaults.TotalFrames, "Upper bound for generated frame values")
	rootCmd.Flags().IntVar(&corruptEveryFlag, "corrupt-every", 0, "Corrupt every Nth file (0 = none)")
	_ = rootCmd.MarkFlagRequired("output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMain(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := gendata.Generate(ctx, gendata.Config{
		NumFiles:      filesFlag,
		EventsPerFile: eventsFlag,
		TotalFrames:   totalFramesFlag,
		CorruptEvery:  corruptEveryFlag,
		OutputDir:     outputFlag,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d files (%d corrupted, %d events) to %s\n",
		stats.FilesWritten, stats.Corrupted, stats.Events, outputFlag)
	return nil
}
