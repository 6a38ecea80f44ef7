package cli

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/roach88/meso/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// RunSummary is one row of history output.
type RunSummary struct {
	ID          string `json:"id"`
	Seq         int64  `json:"seq"`
	Source      string `json:"source"`
	Algorithm   string `json:"algorithm"`
	Seeded      bool   `json:"seeded"`
	Count       int    `json:"count"`
	Comparisons int64  `json:"comparisons"`
	InputDigest string `json:"input_digest"`
}

// HistoryResult is the JSON payload of the history command.
type HistoryResult struct {
	Runs  []RunSummary `json:"runs"`
	Total int          `json:"total"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List runs recorded with --db, oldest first.

Examples:
  meso history --db ./history.db
  meso history --db ./history.db --limit 5 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite history database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of runs to list (0 = all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	runs, err := st.ListRuns(commandContext(cmd), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	result := HistoryResult{Runs: make([]RunSummary, 0, len(runs)), Total: len(runs)}
	for _, r := range runs {
		result.Runs = append(result.Runs, RunSummary{
			ID:          r.ID,
			Seq:         r.Seq,
			Source:      r.Source,
			Algorithm:   r.Algorithm,
			Seeded:      r.Seeded,
			Count:       len(r.Input),
			Comparisons: r.Comparisons,
			InputDigest: r.InputDigest,
		})
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if out.JSON() {
		return out.Success(result)
	}

	w := cmd.OutOrStdout()
	if len(result.Runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Run", "Source", "Algorithm", "Count", "Comparisons", "Input"})
	for _, r := range result.Runs {
		table.Append([]string{
			strconv.FormatInt(r.Seq, 10),
			r.ID,
			r.Source,
			r.Algorithm,
			strconv.Itoa(r.Count),
			strconv.FormatInt(r.Comparisons, 10),
			shortDigest(r.InputDigest),
		})
	}
	table.Render()
	return nil
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
