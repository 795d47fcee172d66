package gendata

import (
	"context"
	"crypto/rand"
	"encoding/csv"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/flylab/groomtrack/pkg/logger"
)

// ImageJ measurement header as the annotation tool exports it.
var imageJHeader = []string{"Number", "Area", "Mean", "Min", "Max", "X", "Y", "Ch", "Frame"}

// randomInt returns a uniform value in [0, n) using crypto/rand.
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// Generate writes cfg.NumFiles annotation CSVs into cfg.OutputDir.
func Generate(ctx context.Context, cfg Config) (Stats, error) {
	log := logger.Get().Named("gendata")

	if cfg.NumFiles <= 0 || cfg.EventsPerFile <= 0 || cfg.TotalFrames <= 0 {
		return Stats{}, fmt.Errorf("%w: files=%d events=%d total_frames=%d",
			ErrInvalidConfig, cfg.NumFiles, cfg.EventsPerFile, cfg.TotalFrames)
	}
	// frameSequence needs a partition step of at least 2 to stay inside
	// the window; below this bound generated frames could exceed it.
	if cfg.TotalFrames < 4*cfg.EventsPerFile+2 {
		return Stats{}, fmt.Errorf("%w: total_frames=%d cannot fit %d events, need at least %d",
			ErrInvalidConfig, cfg.TotalFrames, cfg.EventsPerFile, 4*cfg.EventsPerFile+2)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return Stats{}, err
	}

	var stats Stats
	for i := 0; i < cfg.NumFiles; i++ {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		corrupt := CorruptNone
		if cfg.CorruptEvery > 0 && (i+1)%cfg.CorruptEvery == 0 {
			corrupt = pickCorruption(i)
		}

		name := fmt.Sprintf("video_%s.csv", uuid.New().String()[:8])
		path := filepath.Join(cfg.OutputDir, name)
		events, err := writeFile(path, cfg, corrupt)
		if err != nil {
			return stats, err
		}

		stats.FilesWritten++
		stats.Events += events
		if corrupt != CorruptNone {
			stats.Corrupted++
			log.Debug(ctx, "wrote corrupted file",
				logger.String("file", name),
				logger.String("corruption", corrupt),
			)
		}
	}

	log.Info(ctx, "generation complete",
		logger.Int("files", stats.FilesWritten),
		logger.Int("corrupted", stats.Corrupted),
		logger.Int("events", stats.Events),
	)
	return stats, nil
}

// pickCorruption cycles through the corruption kinds deterministically
// so every kind shows up in a large batch.
func pickCorruption(i int) string {
	kinds := []string{CorruptMissingColumn, CorruptNonNumeric, CorruptOddCount, CorruptNonIncreasing}
	return kinds[i%len(kinds)]
}

// frameSequence produces 2*events strictly increasing frame values
// within [1, totalFrames]. Generate guarantees the window admits a
// partition step of at least 2, which keeps the last value at or below
// totalFrames - step.
func frameSequence(events, totalFrames int) []int {
	needed := 2 * events
	frames := make([]int, 0, needed)

	step := totalFrames / (needed + 1)
	next := 1
	for len(frames) < needed {
		next += 1 + randomInt(step)
		frames = append(frames, next)
	}
	return frames
}

// writeFile emits one annotation CSV, optionally corrupted, and returns
// the number of valid events it encodes.
func writeFile(path string, cfg Config, corrupt string) (int, error) {
	frames := frameSequence(cfg.EventsPerFile, cfg.TotalFrames)

	header := imageJHeader
	cells := make([]string, len(frames))
	for i, f := range frames {
		cells[i] = strconv.Itoa(f)
	}

	switch corrupt {
	case CorruptMissingColumn:
		header = append([]string{}, imageJHeader[:len(imageJHeader)-1]...)
		header = append(header, "Slice")
	case CorruptNonNumeric:
		cells[randomInt(len(cells))] = "n/a"
	case CorruptOddCount:
		cells = cells[:len(cells)-1]
	case CorruptNonIncreasing:
		if len(cells) >= 2 {
			j := 1 + randomInt(len(cells)-1)
			cells[j-1], cells[j] = cells[j], cells[j-1]
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return 0, err
	}
	for i, cell := range cells {
		row := []string{
			strconv.Itoa(i + 1), // Number
			"100", "0.5", "0", "1", // Area, Mean, Min, Max
			"10", "20", "1", // X, Y, Ch
			cell,
		}
		if err := w.Write(row); err != nil {
			return 0, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, err
	}

	if corrupt == CorruptNone {
		return cfg.EventsPerFile, nil
	}
	return 0, nil
}
