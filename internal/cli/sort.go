package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/meso/internal/numfile"
	"github.com/roach88/meso/internal/pipeline"
	"github.com/roach88/meso/internal/report"
	"github.com/roach88/meso/internal/runid"
	"github.com/roach88/meso/internal/sorter"
	"github.com/roach88/meso/internal/store"
)

// SortOptions holds flags for the default sort action.
type SortOptions struct {
	*RootOptions
	File      string
	Algorithm string
	Depth     int
	Database  string // optional run history

	// RunIDs allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs runid.Generator
}

func addSortFlags(cmd *cobra.Command, opts *SortOptions) {
	cmd.Flags().StringVarP(&opts.File, "file", "f", numfile.DefaultPath, "input file, one integer per line")
	cmd.Flags().StringVar(&opts.Algorithm, "algorithm", string(sorter.AlgorithmExchange), "sort algorithm (exchange|merge)")
	cmd.Flags().IntVar(&opts.Depth, "depth", sorter.DefaultDepth, "merge fan-out depth (2^depth workers)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite history database")
}

func runSort(opts *SortOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	alg, err := sorter.ParseAlgorithm(opts.Algorithm)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --algorithm", err)
	}

	res, err := pipeline.Run(ctx, pipeline.Config{
		Path:      opts.File,
		Algorithm: alg,
		Depth:     opts.Depth,
	})
	if err != nil {
		_ = out.Error(ErrorCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "failed to sort input", err)
	}

	summary := report.Summary{
		Values:      res.Values,
		Comparisons: res.Comparisons,
		Algorithm:   string(res.Algorithm),
		Seeded:      res.Seeded,
	}

	if opts.Database != "" {
		run, err := recordRun(opts, res, cmd)
		if err != nil {
			return err
		}
		summary.RunID = run.ID
	}

	if out.JSON() {
		return out.Success(summary)
	}
	return report.WriteText(cmd.OutOrStdout(), res.Values, res.Comparisons)
}

func recordRun(opts *SortOptions, res *pipeline.Result, cmd *cobra.Command) (store.Run, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return store.Run{}, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	gen := opts.RunIDs
	if gen == nil {
		gen = runid.UUIDv7Generator{}
	}

	run, err := pipeline.Record(commandContext(cmd), st, gen, res)
	if err != nil {
		return store.Run{}, WrapExitError(ExitFailure, "failed to record run", err)
	}
	slog.Info("run recorded", "id", run.ID, "seq", run.Seq, "db", opts.Database)
	return run, nil
}
