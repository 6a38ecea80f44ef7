package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/meso/internal/runid"
	"github.com/roach88/meso/internal/store"
)

// recordRuns sorts the seeded input once per id, recording each run in a
// fresh database, and returns the database path.
func recordRuns(t *testing.T, ids ...string) string {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "history.db")
	gen := runid.NewFixedGenerator(ids...)

	for range ids {
		_, _, err := runRoot(t, gen, "--file", filepath.Join(dir, "input.txt"), "--db", dbPath)
		require.NoError(t, err)
	}
	return dbPath
}

func TestHistoryMissingDatabaseFlag(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewHistoryCommand(rootOpts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestHistoryEmptyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	st.Close()

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewHistoryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "No runs recorded.\n", buf.String())
}

func TestHistoryTable(t *testing.T) {
	dbPath := recordRuns(t, "run-a", "run-b")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewHistoryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "ALGORITHM")
	assert.Contains(t, output, "COMPARISONS")
	assert.Contains(t, output, "run-a")
	assert.Contains(t, output, "run-b")
	assert.Contains(t, output, "55")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("run-a")), bytes.Index(buf.Bytes(), []byte("run-b")))
}

func TestHistoryJSONWithLimit(t *testing.T) {
	dbPath := recordRuns(t, "run-a", "run-b", "run-c")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewHistoryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath, "--limit", "2"})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string        `json:"status"`
		Data   HistoryResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Data.Total)
	require.Len(t, resp.Data.Runs, 2)
	assert.Equal(t, "run-a", resp.Data.Runs[0].ID)
	assert.Equal(t, int64(1), resp.Data.Runs[0].Seq)
	assert.Equal(t, 10, resp.Data.Runs[0].Count)
	assert.True(t, resp.Data.Runs[0].Seeded)
	assert.False(t, resp.Data.Runs[1].Seeded)
	assert.Len(t, resp.Data.Runs[0].InputDigest, 64)
}

func TestShortDigest(t *testing.T) {
	assert.Equal(t, "abc", shortDigest("abc"))
	assert.Equal(t, "0123456789ab", shortDigest("0123456789abcdef"))
}
