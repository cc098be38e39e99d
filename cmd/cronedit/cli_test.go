package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jdziat/simple-crontab/pkg/session"
)

// clearEnv unsets every variable the CLI reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CRONEDIT_USER", "CRONEDIT_BINARY", "CRONEDIT_SUDO", "CRONEDIT_FILE",
		"CRONEDIT_HISTORY_DB", "CRONEDIT_HISTORY_KEEP", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

// run executes cronedit with args against a fresh command tree.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func setup(t *testing.T, content string) string {
	t.Helper()
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "crontab")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return path
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCLI_AddAndList(t *testing.T) {
	path := setup(t, "")

	out, err := run(t, "", "-f", path, "add", "-s", "0 9 * * 1-5", "-m", "report", "--", "/usr/bin/report", "--daily")
	require.NoError(t, err)
	assert.Equal(t, "Added: 0 9 * * 1-5 /usr/bin/report --daily #report\n", out)
	assert.Equal(t, "0 9 * * 1-5 /usr/bin/report --daily #report\n", read(t, path))

	out, err = run(t, "", "-f", path, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "INDEX")
	assert.Contains(t, out, "/usr/bin/report --daily")
	assert.Contains(t, out, "0 9 * * 1-5")
}

func TestCLI_AddRejectsBadInput(t *testing.T) {
	path := setup(t, "")

	_, err := run(t, "", "-f", path, "add", "-s", "61 * * * *", "--", "x")
	assert.Error(t, err)

	_, err = run(t, "", "-f", path, "add", "-s", "@daily", "--at", "2026-01-02T03:04", "--", "x")
	assert.Error(t, err)

	_, err = run(t, "", "-f", path, "add", "--at", "tomorrow", "--", "x")
	assert.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing should be saved")
}

func TestCLI_AddAt(t *testing.T) {
	path := setup(t, "")

	_, err := run(t, "", "-f", path, "add", "--at", "2026-03-04T05:06", "--", "/bin/once")
	require.NoError(t, err)
	assert.Equal(t, "6 5 4 3 * /bin/once\n", read(t, path))
}

func TestCLI_ListFormats(t *testing.T) {
	path := setup(t, "@daily /bin/a #first\n*/5 * * * * /bin/b\n")

	out, err := run(t, "", "-f", path, "list", "-o", "json")
	require.NoError(t, err)
	var records []jobRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, jobRecord{Index: 0, Schedule: "@daily", Command: "/bin/a", Comment: "first"}, records[0])
	assert.Equal(t, "*/5 * * * *", records[1].Schedule)

	out, err = run(t, "", "-f", path, "list", "-o", "yaml", "-c", "/bin/b")
	require.NoError(t, err)
	records = nil
	require.NoError(t, yaml.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].Index)

	_, err = run(t, "", "-f", path, "list", "-o", "xml")
	assert.Error(t, err)
}

func TestCLI_Remove(t *testing.T) {
	path := setup(t, "# keep me\n@daily /bin/a #tmp\n@hourly /bin/b\n@weekly /bin/c #tmp\n")

	_, err := run(t, "", "-f", path, "remove")
	assert.Error(t, err, "remove without selectors must fail")

	out, err := run(t, "", "-f", path, "remove", "-m", "tmp", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "-@daily /bin/a #tmp")
	assert.Equal(t, "# keep me\n@daily /bin/a #tmp\n@hourly /bin/b\n@weekly /bin/c #tmp\n", read(t, path))

	out, err = run(t, "", "-f", path, "remove", "-m", "tmp")
	require.NoError(t, err)
	assert.Equal(t, "Removed: @daily /bin/a #tmp\nRemoved: @weekly /bin/c #tmp\n", out)
	assert.Equal(t, "# keep me\n@hourly /bin/b\n", read(t, path))

	out, err = run(t, "", "-f", path, "remove", "-i", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "/bin/b")
	assert.Equal(t, "# keep me\n", read(t, path))

	out, err = run(t, "", "-f", path, "remove", "-c", "nothing")
	require.NoError(t, err)
	assert.Equal(t, "No matching jobs.\n", out)
}

func TestCLI_RenderKeepsUnparsedLines(t *testing.T) {
	text := "SHELL=/bin/sh\n# note\nnot a job\n0 0 * * * /bin/x\n"
	path := setup(t, text)

	out, err := run(t, "", "-f", path, "render")
	require.NoError(t, err)
	assert.Equal(t, "SHELL=/bin/sh\n# note\nnot a job\n@daily /bin/x\n", out)
}

func TestCLI_Apply(t *testing.T) {
	path := setup(t, "@daily /bin/old\n")

	out, err := run(t, "@hourly /bin/new\n", "-f", path, "apply", "-", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "-@daily /bin/old")
	assert.Contains(t, out, "+@hourly /bin/new")
	assert.Equal(t, "@daily /bin/old\n", read(t, path))

	src := filepath.Join(t.TempDir(), "next")
	require.NoError(t, os.WriteFile(src, []byte("@hourly /bin/new\n"), 0o600))
	_, err = run(t, "", "-f", path, "apply", src)
	require.NoError(t, err)
	assert.Equal(t, "@hourly /bin/new\n", read(t, path))

	out, err = run(t, "", "-f", path, "apply", src)
	require.NoError(t, err)
	assert.Equal(t, "No changes.\n", out)
}

func TestCLI_Lint(t *testing.T) {
	path := setup(t, "@daily /bin/fine\n")
	out, err := run(t, "", "-f", path, "lint")
	require.NoError(t, err)
	assert.Equal(t, "No issues.\n", out)

	path = setup(t, "@daily /bin/fine\n0 0 31 2 * /bin/never\n")
	out, err = run(t, "", "-f", path, "lint")
	require.Error(t, err)
	assert.Contains(t, out, "1: error")
	assert.Contains(t, out, "/bin/never")
}

func TestCLI_History(t *testing.T) {
	path := setup(t, "@daily /bin/a\n")
	db := filepath.Join(t.TempDir(), "history.db")

	_, err := run(t, "", "-f", path, "--history", db, "add", "-s", "@hourly", "--", "/bin/b")
	require.NoError(t, err)

	out, err := run(t, "", "-f", path, "--history", db, "history", "list", "-o", "json")
	require.NoError(t, err)
	var records []snapshotRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "commit", records[0].Source)
	assert.Equal(t, "load", records[1].Source)
	loaded := records[1].ID

	out, err = run(t, "", "-f", path, "--history", db, "history", "show", loaded)
	require.NoError(t, err)
	assert.Equal(t, "@daily /bin/a\n", out)

	out, err = run(t, "", "-f", path, "--history", db, "history", "diff", loaded)
	require.NoError(t, err)
	assert.Contains(t, out, "+@hourly /bin/b")

	out, err = run(t, "", "-f", path, "--history", db, "history", "restore", loaded)
	require.NoError(t, err)
	assert.Contains(t, out, "Restored "+loaded)
	assert.Equal(t, "@daily /bin/a\n", read(t, path))

	_, err = run(t, "", "-f", path, "--history", db, "history", "show", "no-such-id")
	assert.Error(t, err)
}

func TestCLI_HistoryRequiresDatabase(t *testing.T) {
	path := setup(t, "")
	_, err := run(t, "", "-f", path, "history", "list")
	assert.ErrorIs(t, err, session.ErrNoHistory)
}

func TestCLI_ConfigFromEnvironment(t *testing.T) {
	path := setup(t, "@daily /bin/env\n")
	t.Setenv("CRONEDIT_FILE", path)

	out, err := run(t, "", "render")
	require.NoError(t, err)
	assert.Equal(t, "@daily /bin/env\n", out)
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	dotenv := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("CRONEDIT_USER=alice\nCRONEDIT_HISTORY_KEEP=5\nLOG_LEVEL=debug\n"), 0o600))

	cfg, err := loadConfig(dotenv)
	require.NoError(t, err)
	assert.Equal(t, "alice", cfg.User)
	assert.Equal(t, 5, cfg.HistoryKeep)
	assert.Equal(t, "crontab", cfg.Binary)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, -4, int(cfg.level()))

	clearEnv(t)
	cfg, err = loadConfig(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.HistoryKeep)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestParseAt(t *testing.T) {
	at, err := parseAt("2026-07-08T09:10")
	require.NoError(t, err)
	assert.Equal(t, 10, at.Minute())
	assert.Equal(t, 9, at.Hour())

	_, err = parseAt("2026-07-08T09:10:00Z")
	require.NoError(t, err)

	_, err = parseAt("later")
	assert.Error(t, err)
}
