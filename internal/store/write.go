package store

import (
	"context"
	"fmt"
)

// Run is one recorded pipeline execution.
type Run struct {
	ID           string
	Seq          int64 // assigned by WriteRun
	Source       string
	Algorithm    string
	Seeded       bool
	Input        []int32
	Output       []int32
	Comparisons  int64
	InputDigest  string
	OutputDigest string
}

// WriteRun inserts a run record and returns its logical sequence number.
// Uses ON CONFLICT(id) DO NOTHING for idempotency: writing the same ID
// twice keeps the first record and returns its seq.
func (s *Store) WriteRun(ctx context.Context, run Run) (int64, error) {
	inputJSON, err := marshalValues(run.Input)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}
	outputJSON, err := marshalValues(run.Output)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, source, algorithm, seeded, input, output, comparisons, input_digest, output_digest)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM runs), ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Source,
		run.Algorithm,
		run.Seeded,
		inputJSON,
		outputJSON,
		run.Comparisons,
		run.InputDigest,
		run.OutputDigest,
	)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	var seq int64
	if err := s.db.QueryRowContext(ctx, `SELECT seq FROM runs WHERE id = ?`, run.ID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("write run: read seq: %w", err)
	}
	return seq, nil
}
