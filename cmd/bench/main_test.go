package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ykhdr/crack-hash/internal/bench"
)

func TestRun_WritesCSV(t *testing.T) {
	dir := t.TempDir()
	engine := filepath.Join(dir, "engine.sh")
	script := "#!/bin/sh\necho 'NOT FOUND in tested keyspace. attempts~42 elapsed=0.500s H/s~84.0'\n"
	require.NoError(t, os.WriteFile(engine, []byte(script), 0o755))
	out := filepath.Join(dir, "results.csv")

	var stdout bytes.Buffer
	code := run(context.Background(), []string{"--engine", engine, "--out", out, "--timeout-per-test", "5"}, &stdout, io.Discard)
	require.Equal(t, 0, code)
	assert.Equal(t, "Saved: "+out+"\n", stdout.String())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(bench.Table())+1)
	assert.Equal(t, bench.Columns, records[0])
	for _, rec := range records[1:] {
		assert.Equal(t, "false", rec[6])
		assert.Equal(t, "42", rec[8])
		assert.Equal(t, "84", rec[10])
	}
}

func TestRun_UsageAndConfigErrors(t *testing.T) {
	assert.Equal(t, 2, run(context.Background(), []string{"--procs", "many"}, io.Discard, io.Discard))
	assert.Equal(t, 1, run(context.Background(), []string{"--config", "/nonexistent/bench.kdl"}, io.Discard, io.Discard))
}

func TestRun_UnwritableOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "results.csv")
	code := run(context.Background(), []string{"--engine", "true", "--out", out}, io.Discard, io.Discard)
	assert.Equal(t, 1, code)
}
