package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ykhdr/crack-hash/internal/keyspace"
	"github.com/ykhdr/crack-hash/internal/pool"
	"github.com/ykhdr/crack-hash/internal/search"
	"github.com/ykhdr/crack-hash/internal/verify"
)

func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.kdl")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func TestDefaultProcs(t *testing.T) {
	assert.GreaterOrEqual(t, DefaultProcs(), 1)
}

func TestParseEngine_Defaults(t *testing.T) {
	e, err := ParseEngine([]string{"--alg", "md5", "--hash", "abc"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, verify.MD5, e.Algorithm)
	assert.Equal(t, "abc", e.Hash)
	assert.Equal(t, keyspace.DefaultCharset, e.Search.Charset)
	assert.Equal(t, 1, e.Search.Min)
	assert.Equal(t, 6, e.Search.Max)
	assert.Equal(t, 5000, e.Search.Chunk)
	assert.Equal(t, DefaultProcs(), e.Search.Procs)
	assert.Zero(t, e.Search.TimeLimit)
	assert.Empty(t, e.Status.Address)
	assert.Equal(t, verify.AllBackends(), *e.Backends)
}

func TestParseEngine_Flags(t *testing.T) {
	e, err := ParseEngine([]string{
		"--alg", "SHA1", "--hash", " 7c4a8d09ca3762af61e59520943dc26494f8941b ",
		"--charset", "01", "--min", "2", "--max", "3", "--procs", "4",
		"--chunk", "10", "--time-limit", "1.5", "--dispatch", "pipelined",
		"--status-addr", "127.0.0.1:9000",
	}, io.Discard)
	require.NoError(t, err)

	req, err := e.Request()
	require.NoError(t, err)
	assert.Equal(t, search.Request{
		Target:    "7c4a8d09ca3762af61e59520943dc26494f8941b",
		Algorithm: verify.SHA1,
		Alphabet:  []rune("01"),
		MinLength: 2,
		MaxLength: 3,
		Workers:   4,
		ChunkSize: 10,
		TimeLimit: 1500 * time.Millisecond,
		Mode:      pool.PipelinedMode,
	}, req)
	assert.Equal(t, "127.0.0.1:9000", e.Status.Address)
}

func TestParseEngine_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing alg", args: []string{"--hash", "x"}},
		{name: "missing hash", args: []string{"--alg", "md5"}},
		{name: "unknown alg", args: []string{"--alg", "sha256", "--hash", "x"}},
		{name: "bad int", args: []string{"--alg", "md5", "--hash", "x", "--min", "one"}},
		{name: "unknown flag", args: []string{"--alg", "md5", "--hash", "x", "--turbo"}},
		{name: "positional", args: []string{"--alg", "md5", "--hash", "x", "extra"}},
		{name: "negative time limit", args: []string{"--alg", "md5", "--hash", "x", "--time-limit", "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEngine(tt.args, io.Discard)
			assert.True(t, errors.Is(err, ErrUsage), "got %v", err)
		})
	}
}

func TestParseEngine_Help(t *testing.T) {
	_, err := ParseEngine([]string{"-h"}, io.Discard)
	assert.True(t, errors.Is(err, flag.ErrHelp))
}

func TestParseEngine_ConfigFileUnderFlags(t *testing.T) {
	path := writeConfig(t, `
search {
    charset "abc"
    min 2
    max 4
    chunk 100
}
`)
	e, err := ParseEngine([]string{"--config", path, "--alg", "md5", "--hash", "x", "--max", "5"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "abc", e.Search.Charset)
	assert.Equal(t, 2, e.Search.Min)
	assert.Equal(t, 5, e.Search.Max)
	assert.Equal(t, 100, e.Search.Chunk)
}

func TestParseEngine_MissingConfigFile(t *testing.T) {
	_, err := ParseEngine([]string{"--config", "/nonexistent/bruteforce.kdl", "--alg", "md5", "--hash", "x"}, io.Discard)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUsage))
}

func TestEngine_RequestErrors(t *testing.T) {
	e, err := ParseEngine([]string{"--alg", "md5", "--hash", "x", "--dispatch", "warp"}, io.Discard)
	require.NoError(t, err)
	_, err = e.Request()
	assert.True(t, errors.Is(err, pool.ErrUnknownMode), "got %v", err)

	e, err = ParseEngine([]string{"--alg", "md5", "--hash", "x", "--charset", ""}, io.Discard)
	require.NoError(t, err)
	_, err = e.Request()
	assert.True(t, errors.Is(err, search.ErrInvalidRequest), "got %v", err)
}

func TestParseBench(t *testing.T) {
	cfg, err := ParseBench(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, DefaultBenchConfig().Out, cfg.Out)
	assert.Equal(t, 600*time.Second, cfg.TimeoutPerTest)
	assert.False(t, cfg.Mongo.Enabled())
	assert.False(t, cfg.Amqp.Enabled())

	cfg, err = ParseBench([]string{
		"--engine", "./bin/bruteforce", "--procs", "2", "--chunk", "50",
		"--time-limit", "60", "--timeout-per-test", "90", "--out", "r.csv",
	}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "./bin/bruteforce", cfg.Engine)
	assert.Equal(t, 2, cfg.Procs)
	assert.Equal(t, 50, cfg.Chunk)
	assert.Equal(t, time.Minute, cfg.TimeLimit)
	assert.Equal(t, 90*time.Second, cfg.TimeoutPerTest)
	assert.Equal(t, "r.csv", cfg.Out)
}

func TestParseBench_UsageErrors(t *testing.T) {
	_, err := ParseBench([]string{"--timeout-per-test", "-5"}, io.Discard)
	assert.True(t, errors.Is(err, ErrUsage))
	_, err = ParseBench([]string{"stray"}, io.Discard)
	assert.True(t, errors.Is(err, ErrUsage))
}
