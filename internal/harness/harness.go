package harness

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/roach88/meso/internal/numfile"
	"github.com/roach88/meso/internal/pipeline"
	"github.com/roach88/meso/internal/report"
	"github.com/roach88/meso/internal/runid"
	"github.com/roach88/meso/internal/sorter"
	"github.com/roach88/meso/internal/store"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation and invariant holds.
	Pass bool `json:"pass"`

	// Errors lists each failed expectation. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Stdout is exactly what the CLI would print on success; empty on abort.
	Stdout string `json:"stdout"`

	// Failure is the abort message with the scenario's temp directory removed.
	Failure string `json:"failure,omitempty"`

	Values      []int32 `json:"values,omitempty"`
	Comparisons int64   `json:"comparisons"`
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Transcript is the text compared against a golden file: the stdout of a
// successful run, or "error: <message>" for an aborted one.
func (r *Result) Transcript() []byte {
	if r.Failure != "" {
		return []byte("error: " + r.Failure + "\n")
	}
	return []byte(r.Stdout)
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Write scenario.Input to input.txt in a fresh temp directory
//  2. Run the pipeline against it
//  3. Check expectations and the sort invariants
//  4. Record the run in an in-memory store and replay it
//
// The returned error covers harness failures only; pipeline aborts are
// reported through Result.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	dir, err := os.MkdirTemp("", "meso-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario directory: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, numfile.DefaultPath)
	if err := os.WriteFile(path, []byte(scenario.Input), 0644); err != nil {
		return nil, fmt.Errorf("failed to write scenario input: %w", err)
	}

	alg := sorter.AlgorithmExchange
	if scenario.Algorithm != "" {
		if alg, err = sorter.ParseAlgorithm(scenario.Algorithm); err != nil {
			return nil, err
		}
	}

	result := &Result{Pass: true}
	res, runErr := pipeline.Run(ctx, pipeline.Config{Path: path, Algorithm: alg, Depth: scenario.Depth})

	if runErr != nil {
		result.Failure = strings.ReplaceAll(runErr.Error(), dir+string(os.PathSeparator), "")
		if !scenario.ExpectsError() {
			result.AddError("unexpected failure: %s", result.Failure)
		} else if !strings.Contains(result.Failure, scenario.Expect.Error) {
			result.AddError("failure %q does not contain %q", result.Failure, scenario.Expect.Error)
		}
		return result, nil
	}

	var out bytes.Buffer
	if err := report.WriteText(&out, res.Values, res.Comparisons); err != nil {
		return nil, fmt.Errorf("failed to render output: %w", err)
	}
	result.Stdout = out.String()
	result.Values = res.Values
	result.Comparisons = res.Comparisons

	if scenario.ExpectsError() {
		result.AddError("expected failure containing %q, run succeeded", scenario.Expect.Error)
		return result, nil
	}

	checkExpectations(scenario, res, result)
	checkInvariants(res, result)

	if err := checkReplay(ctx, scenario, res, result); err != nil {
		return nil, err
	}
	return result, nil
}

func checkExpectations(scenario *Scenario, res *pipeline.Result, result *Result) {
	if want := scenario.Expect.Values; want != nil && !slices.Equal(want, res.Values) {
		result.AddError("values = %v, want %v", res.Values, want)
	}
	if want := scenario.Expect.Comparisons; want != nil && *want != res.Comparisons {
		result.AddError("comparisons = %d, want %d", res.Comparisons, *want)
	}
}

// checkInvariants verifies the output is the input rearranged into
// non-descending order, and the exchange count is n*(n+1)/2.
func checkInvariants(res *pipeline.Result, result *Result) {
	if !slices.IsSorted(res.Values) {
		result.AddError("output is not in non-descending order: %v", res.Values)
	}

	want := slices.Clone(res.Input)
	slices.Sort(want)
	if !slices.Equal(want, res.Values) {
		result.AddError("output %v is not a permutation of input %v", res.Values, res.Input)
	}

	if res.Algorithm == sorter.AlgorithmExchange {
		if n := len(res.Input); res.Comparisons != sorter.ExchangeComparisons(n) {
			result.AddError("exchange comparisons = %d, want %d for n=%d", res.Comparisons, sorter.ExchangeComparisons(n), n)
		}
	}
}

// checkReplay records the run in an in-memory store and verifies that
// re-sorting the recorded input reproduces the recorded output.
func checkReplay(ctx context.Context, scenario *Scenario, res *pipeline.Result, result *Result) error {
	st, err := store.Open(":memory:")
	if err != nil {
		return fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	run, err := pipeline.Record(ctx, st, runid.NewFixedGenerator("scenario-"+scenario.Name), res)
	if err != nil {
		return err
	}

	stored, err := st.ReadRun(ctx, run.ID)
	if err != nil {
		return err
	}

	v, err := pipeline.Verify(stored, scenario.Depth)
	if err != nil {
		return err
	}
	if !v.Match {
		result.AddError("replay of recorded run does not match: recorded %d comparisons, replayed %d",
			v.RecordedComparisons, v.ReplayedComparisons)
	}
	return nil
}
