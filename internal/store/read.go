package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrRunNotFound is returned by ReadRun when no run has the given ID.
var ErrRunNotFound = errors.New("run not found")

const runColumns = `id, seq, source, algorithm, seeded, input, output, comparisons, input_digest, output_digest`

// ReadRun returns the run with the given ID.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns up to limit runs in deterministic order:
// ORDER BY seq ASC, id ASC COLLATE BINARY. A limit <= 0 returns all runs.
//
// Returns an empty slice (not nil) if no runs are recorded.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY seq ASC, id COLLATE BINARY ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// FindByInputDigest returns every run whose input fingerprint matches.
func (s *Store) FindByInputDigest(ctx context.Context, inputDigest string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+` FROM runs
		WHERE input_digest = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, inputDigest)
	if err != nil {
		return nil, fmt.Errorf("query runs by digest: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs by digest: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run        Run
		inputJSON  string
		outputJSON string
	)
	if err := row.Scan(
		&run.ID,
		&run.Seq,
		&run.Source,
		&run.Algorithm,
		&run.Seeded,
		&inputJSON,
		&outputJSON,
		&run.Comparisons,
		&run.InputDigest,
		&run.OutputDigest,
	); err != nil {
		return Run{}, err
	}

	var err error
	if run.Input, err = unmarshalValues(inputJSON); err != nil {
		return Run{}, fmt.Errorf("run %s input: %w", run.ID, err)
	}
	if run.Output, err = unmarshalValues(outputJSON); err != nil {
		return Run{}, fmt.Errorf("run %s output: %w", run.ID, err)
	}
	return run, nil
}
