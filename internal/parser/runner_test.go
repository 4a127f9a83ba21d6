package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"keema/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parse.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func newTestRunner(t *testing.T, script string, timeout time.Duration) (*Runner, string) {
	t.Helper()
	tmp := t.TempDir()
	return NewRunner(&Config{Command: "sh", Script: script, Timeout: timeout, TempDir: tmp}), tmp
}

func assertNoLeftovers(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunner_Parse_Success(t *testing.T) {
	script := writeScript(t, `printf '{"gameId":"%s"}' "$(basename "$1")" > "$2"`)
	runner, tmp := newTestRunner(t, script, 5*time.Second)

	data, err := runner.Parse(context.Background(), "/replays/EUW1-1.rofl")
	require.NoError(t, err)
	assert.JSONEq(t, `{"gameId":"EUW1-1.rofl"}`, string(data))
	assertNoLeftovers(t, tmp)
}

func TestRunner_Parse_NonZeroExit(t *testing.T) {
	script := writeScript(t, `echo "unsupported version" >&2; exit 3`)
	runner, tmp := newTestRunner(t, script, 5*time.Second)

	_, err := runner.Parse(context.Background(), "bad.rofl")
	require.ErrorIs(t, err, models.ErrParserFailure)
	assert.Contains(t, err.Error(), "unsupported version")
	assertNoLeftovers(t, tmp)
}

func TestRunner_Parse_EmptyOutput(t *testing.T) {
	script := writeScript(t, `exit 0`)
	runner, tmp := newTestRunner(t, script, 5*time.Second)

	_, err := runner.Parse(context.Background(), "empty.rofl")
	assert.ErrorIs(t, err, models.ErrParserFailure)
	assertNoLeftovers(t, tmp)
}

func TestRunner_Parse_Timeout(t *testing.T) {
	script := writeScript(t, `exec sleep 10`)
	runner, tmp := newTestRunner(t, script, 200*time.Millisecond)

	start := time.Now()
	_, err := runner.Parse(context.Background(), "slow.rofl")
	require.ErrorIs(t, err, models.ErrParserFailure)
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, time.Since(start), 5*time.Second)
	assertNoLeftovers(t, tmp)
}
