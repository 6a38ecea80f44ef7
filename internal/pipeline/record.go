package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/meso/internal/digest"
	"github.com/roach88/meso/internal/runid"
	"github.com/roach88/meso/internal/sorter"
	"github.com/roach88/meso/internal/store"
)

// RunWriter persists run records. Implemented by *store.Store.
type RunWriter interface {
	WriteRun(ctx context.Context, run store.Run) (int64, error)
}

// Record persists res as a run record with an ID from gen.
func Record(ctx context.Context, w RunWriter, gen runid.Generator, res *Result) (store.Run, error) {
	inputDigest, err := digest.Input(res.Input)
	if err != nil {
		return store.Run{}, err
	}
	outputDigest, err := digest.Output(res.Values, string(res.Algorithm), res.Comparisons)
	if err != nil {
		return store.Run{}, err
	}

	run := store.Run{
		ID:           gen.Generate(),
		Source:       res.Source,
		Algorithm:    string(res.Algorithm),
		Seeded:       res.Seeded,
		Input:        res.Input,
		Output:       res.Values,
		Comparisons:  res.Comparisons,
		InputDigest:  inputDigest,
		OutputDigest: outputDigest,
	}

	seq, err := w.WriteRun(ctx, run)
	if err != nil {
		return store.Run{}, fmt.Errorf("record run: %w", err)
	}
	run.Seq = seq
	slog.Debug("run recorded", "id", run.ID, "seq", seq)
	return run, nil
}

// Verification compares a recorded run with a fresh re-sort of its input.
type Verification struct {
	RunID               string `json:"run_id"`
	Match               bool   `json:"match"`
	RecordedDigest      string `json:"recorded_digest"`
	ReplayedDigest      string `json:"replayed_digest"`
	RecordedComparisons int64  `json:"recorded_comparisons"`
	ReplayedComparisons int64  `json:"replayed_comparisons"`
	InputDigestMatch    bool   `json:"input_digest_match"`
}

// Verify re-sorts the recorded input with the recorded algorithm and checks
// that the output fingerprint is unchanged.
func Verify(run store.Run, depth int) (*Verification, error) {
	alg, err := sorter.ParseAlgorithm(run.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", run.ID, err)
	}

	values := slices.Clone(run.Input)
	comparisons, err := sorter.Sort(alg, values, sorter.Options{Depth: depth})
	if err != nil {
		return nil, err
	}

	replayed, err := digest.Output(values, run.Algorithm, comparisons)
	if err != nil {
		return nil, err
	}
	inputDigest, err := digest.Input(run.Input)
	if err != nil {
		return nil, err
	}

	v := &Verification{
		RunID:               run.ID,
		RecordedDigest:      run.OutputDigest,
		ReplayedDigest:      replayed,
		RecordedComparisons: run.Comparisons,
		ReplayedComparisons: comparisons,
		InputDigestMatch:    inputDigest == run.InputDigest,
	}
	v.Match = v.InputDigestMatch && replayed == run.OutputDigest
	return v, nil
}
