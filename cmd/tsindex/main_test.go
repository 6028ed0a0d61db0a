package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textrun/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "The quick brown fox\n\njumps over the lazy dog\n")
	b := writeFile(t, dir, "b.txt", "A quick recap\n")
	cfg := config.Default()
	cfg.Index.Mode = "fulltext"
	cfg.DefaultWS = 1
	reg := prometheus.NewRegistry()
	var out bytes.Buffer
	err := run(context.Background(), cfg, 0, []string{a, b}, []string{"quick", "lazy do", "cat"}, reg, &out)
	require.NoError(t, err)
	assert.Equal(t, `"quick": 2 results
	`+a+`:1
	`+b+`:1
"lazy do": 1 results
	`+a+`:3
"cat": 0 results
`, out.String())
	//
	var metrics bytes.Buffer
	require.NoError(t, writeMetrics(reg, &metrics))
	assert.Contains(t, metrics.String(), "textrun_index_searches_total")
}

func TestRunErrors(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultWS = 1
	var out bytes.Buffer
	err := run(context.Background(), cfg, 0, []string{filepath.Join(t.TempDir(), "missing")}, nil, nil, &out)
	assert.Error(t, err)
	err = run(context.Background(), cfg, 5, nil, nil, nil, &out)
	assert.ErrorContains(t, err, "writing system 5")
}

func TestQueriesFlag(t *testing.T) {
	var q queries
	require.NoError(t, q.Set("a"))
	require.NoError(t, q.Set("b c"))
	assert.Equal(t, queries{"a", "b c"}, q)
	assert.Equal(t, "a, b c", q.String())
}
