package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryExportWritesCSV(t *testing.T) {
	t.Setenv("SESSION_SLOT_BACKEND", "memory")
	t.Setenv("CONTENT_SOURCE", "fixture")
	t.Setenv("ENABLE_DASHBOARD_CACHE", "false")

	dir := t.TempDir()
	out := filepath.Join(dir, "rejected.csv")
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{
		"history", "export",
		"--log-file", filepath.Join(dir, "modctl.log"),
		"--decision", "rejected",
		"--out", out,
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, rootCmd.ExecuteContext(ctx))
	assert.Contains(t, stdout.String(), "wrote 2 records")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "c5", records[1][0])
	assert.Equal(t, "c7", records[2][0])
}
