package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/meso/internal/numfile"
	"github.com/roach88/meso/internal/report"
	"github.com/roach88/meso/internal/runid"
	"github.com/roach88/meso/internal/store"
)

const seededOutput = "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\nComparisons made: 55.\n"

// runRoot executes a fresh root command with args and returns what it
// wrote to stdout and stderr.
func runRoot(t *testing.T, gen runid.Generator, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := newRootCommand(gen)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSort_MissingFileIsCreatedAndSeeded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")

	stdout, stderr, err := runRoot(t, nil, "--file", path)
	require.NoError(t, err)
	assert.Equal(t, seededOutput, stdout)
	assert.Contains(t, stderr, "seeded default values")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, numfile.DefaultSeed, string(data))
}

func TestSort_SecondRunDoesNotReseed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")

	_, _, err := runRoot(t, nil, "--file", path)
	require.NoError(t, err)

	stdout, stderr, err := runRoot(t, nil, "--file", path)
	require.NoError(t, err)
	assert.Equal(t, seededOutput, stdout)
	assert.NotContains(t, stderr, "seeded")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, numfile.DefaultSeed, string(data))
}

func TestSort_GoldenOutput(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	tests := []struct {
		name  string
		input string // empty means the file does not exist yet
	}{
		{"sort_seeded", ""},
		{"sort_mixed", "3\n-7\n3\n0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "numbers.txt")
			if tt.input != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.input), 0644))
			}

			stdout, _, err := runRoot(t, nil, "--file", path)
			require.NoError(t, err)
			g.Assert(t, tt.name, []byte(stdout))
		})
	}
}

func TestSort_ParseFailurePrintsNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\nabc\n3\n"), 0644))

	stdout, _, err := runRoot(t, nil, "--file", path)
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), `line 2: invalid integer "abc"`)
}

func TestSort_ParseFailureJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("99999999999\n"), 0644))

	stdout, _, err := runRoot(t, nil, "--file", path, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeParse, resp.Error.Code)
}

func TestSort_OpenFailure(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := runRoot(t, nil, "--file", dir)
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestSort_InvalidAlgorithm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")

	stdout, _, err := runRoot(t, nil, "--file", path, "--algorithm", "bogo")
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "input file should not be created for a bad flag")
}

func TestSort_MergeAlgorithm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")

	stdout, _, err := runRoot(t, nil, "--file", path, "--algorithm", "merge", "--depth", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\nComparisons made: ")
	assert.NotEqual(t, seededOutput, stdout)
}

func TestSort_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")

	stdout, _, err := runRoot(t, nil, "--file", path, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   report.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, resp.Data.Values)
	assert.Equal(t, int64(55), resp.Data.Comparisons)
	assert.Equal(t, "exchange", resp.Data.Algorithm)
	assert.True(t, resp.Data.Seeded)
	assert.Empty(t, resp.Data.RunID)
}

func TestSort_RecordsRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	dbPath := filepath.Join(dir, "history.db")
	gen := runid.NewFixedGenerator("run-1")

	stdout, stderr, err := runRoot(t, gen, "--file", path, "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, seededOutput, stdout)
	assert.Contains(t, stderr, "run recorded")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	run, err := st.ReadRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), run.Seq)
	assert.Equal(t, path, run.Source)
	assert.Equal(t, "exchange", run.Algorithm)
	assert.True(t, run.Seeded)
	assert.Equal(t, []int32{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, run.Input)
	assert.Equal(t, []int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, run.Output)
	assert.Equal(t, int64(55), run.Comparisons)
}

func TestSort_RecordsRunJSON(t *testing.T) {
	dir := t.TempDir()
	gen := runid.NewFixedGenerator("run-json")

	stdout, _, err := runRoot(t, gen,
		"--file", filepath.Join(dir, "input.txt"),
		"--db", filepath.Join(dir, "history.db"),
		"--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data report.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "run-json", resp.Data.RunID)
}
