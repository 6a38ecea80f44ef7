// Package pipeline runs meso end to end: load the input file, parse it,
// sort it and hand the result back to the caller. Nothing is printed here;
// either the whole pipeline succeeds and returns a Result, or it returns the
// first error and the caller prints nothing but the failure.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/meso/internal/numfile"
	"github.com/roach88/meso/internal/parse"
	"github.com/roach88/meso/internal/sorter"
)

// Config selects the input file and sort routine.
type Config struct {
	Path      string           // defaults to numfile.DefaultPath
	Algorithm sorter.Algorithm // defaults to sorter.AlgorithmExchange
	Depth     int              // merge fan-out depth
}

// Result is the outcome of a successful run.
type Result struct {
	Source      string
	Algorithm   sorter.Algorithm
	Seeded      bool
	Input       []int32 // values in file order
	Values      []int32 // values in sorted order
	Comparisons int64
}

func (c Config) withDefaults() Config {
	if c.Path == "" {
		c.Path = numfile.DefaultPath
	}
	if c.Algorithm == "" {
		c.Algorithm = sorter.AlgorithmExchange
	}
	return c
}

// Run loads, parses and sorts the configured input file.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()

	buf, seeded, err := numfile.Load(cfg.Path)
	if err != nil {
		return nil, err
	}
	if seeded {
		slog.Info("input is empty, seeded default values", "path", cfg.Path)
	}
	slog.Debug("input loaded", "path", cfg.Path, "bytes", len(buf))

	return sortBuffer(ctx, cfg, buf, seeded)
}

// RunBuffer parses and sorts buf as if it had been read from source.
// It never touches the filesystem.
func RunBuffer(ctx context.Context, source, buf string, alg sorter.Algorithm, depth int) (*Result, error) {
	cfg := Config{Path: source, Algorithm: alg, Depth: depth}.withDefaults()
	return sortBuffer(ctx, cfg, buf, false)
}

func sortBuffer(ctx context.Context, cfg Config, buf string, seeded bool) (*Result, error) {
	input, err := parse.Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Path, err)
	}
	slog.Debug("input parsed", "count", len(input))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	values := slices.Clone(input)
	comparisons, err := sorter.Sort(cfg.Algorithm, values, sorter.Options{Depth: cfg.Depth})
	if err != nil {
		return nil, err
	}
	slog.Debug("sort complete", "algorithm", cfg.Algorithm, "comparisons", comparisons)

	return &Result{
		Source:      cfg.Path,
		Algorithm:   cfg.Algorithm,
		Seeded:      seeded,
		Input:       input,
		Values:      values,
		Comparisons: comparisons,
	}, nil
}
