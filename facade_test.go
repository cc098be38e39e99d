package crontab_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	crontab "github.com/jdziat/simple-crontab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestStorage creates an in-memory SQLite history for use in tests.
func setupTestStorage(t *testing.T) crontab.Storage {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store := crontab.NewGormStorage(db)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// ---------------------------------------------------------------------------
// Tables
// ---------------------------------------------------------------------------

func TestFacadeLoad_RoundTrip(t *testing.T) {
	text := "# nightly\nMAILTO=root\n0 8-17 * * 1-5 /bin/echo hi #greet\n"
	tab := crontab.Load(text)

	assert.Equal(t, text, tab.Render())
	require.Len(t, tab.Jobs(), 1)
	require.Len(t, tab.Vars(), 1)
	assert.Equal(t, "MAILTO", tab.Vars()[0].Name)
}

func TestFacadeNew_Create(t *testing.T) {
	tab := crontab.New()
	j := tab.Create("ls -l")

	require.NotNil(t, j)
	assert.Equal(t, "* * * * * ls -l", j.Render())
}

func TestFacadeQuery(t *testing.T) {
	tab := crontab.Load("0 * * * * /bin/a #alpha\n0 * * * * /bin/b #beta\n")

	assert.Len(t, tab.Query(crontab.Query{"comment": regexp.MustCompile(`^a`)}), 1)
	assert.Len(t, tab.Find(crontab.Filter{Command: crontab.Contains("/bin/")}), 2)
	assert.Len(t, tab.Find(crontab.Filter{Comment: crontab.Regexp(regexp.MustCompile(`t`))}), 1)
	assert.Empty(t, tab.Query(crontab.Query{"schedule": "x"}))

	_, err := crontab.ParseQuery(crontab.Query{"schedule": "x"})
	assert.ErrorIs(t, err, crontab.ErrInvalidFilterSchema)
}

// ---------------------------------------------------------------------------
// Jobs and fields
// ---------------------------------------------------------------------------

func TestFacadeParseJob(t *testing.T) {
	j, err := crontab.ParseJob("@daily cmd")
	require.NoError(t, err)
	assert.Equal(t, "0", j.Minute().String())
	assert.Equal(t, "0", j.Hour().String())
	assert.Equal(t, "*", j.Dom().String())
	assert.Equal(t, "@daily cmd", j.Render())

	_, err = crontab.ParseJob("61 * * * * cmd")
	var pe *crontab.ParseError
	require.True(t, errors.As(err, &pe))
	assert.ErrorIs(t, err, crontab.ErrInvalidRangeValue)
	assert.ErrorIs(t, err, crontab.ErrParse)
	assert.Equal(t, crontab.Minute.Name, pe.Field)
}

func TestFacadeNewJob(t *testing.T) {
	j := crontab.NewJob("/bin/true", "note")
	j.EveryReboot()
	assert.Equal(t, "@reboot /bin/true #note", j.Render())
	assert.Equal(t, crontab.Reboot, j.Special())

	assert.Panics(t, func() { crontab.NewJob("", "") })
}

func TestFacadeDescriptors(t *testing.T) {
	assert.Equal(t, 0, crontab.Minute.Min)
	assert.Equal(t, 59, crontab.Minute.Max)
	assert.Equal(t, 23, crontab.Hour.Max)
	assert.Equal(t, 1, crontab.DayOfMonth.Min)
	assert.Equal(t, 12, crontab.Month.Max)
	assert.Equal(t, 7, crontab.DayOfWeek.Max)
}

func TestFacadeParseVar(t *testing.T) {
	v, err := crontab.ParseVar("PATH=/usr/bin:/bin")
	require.NoError(t, err)
	assert.Equal(t, "PATH", v.Name)

	_, err = crontab.ParseVar("# not a var")
	assert.ErrorIs(t, err, crontab.ErrInvalidLine)
}

// ---------------------------------------------------------------------------
// Sessions and history
// ---------------------------------------------------------------------------

func TestFacadeSession_WithHistory(t *testing.T) {
	ctx := context.Background()
	store := setupTestStorage(t)
	backend := crontab.NewMemory("0 0 * * * /bin/a\n")

	sess := crontab.NewSession(backend, crontab.WithHistory(store), crontab.WithOwner("alice"), crontab.WithKeep(5))
	require.NoError(t, sess.Open(ctx))

	sess.Table().Create("/bin/b", crontab.WithSchedule("@hourly"))
	snap, err := sess.Commit(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, crontab.SourceCommit, snap.Source)
	assert.Equal(t, "@daily /bin/a\n@hourly /bin/b\n", backend.Text())

	history, err := sess.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestFacadeSession_NoHistory(t *testing.T) {
	sess := crontab.NewSession(crontab.NewMemory(""))
	_, err := sess.History(context.Background(), 1)
	assert.ErrorIs(t, err, crontab.ErrNoHistory)
}

func TestFacadeOpenStorage(t *testing.T) {
	ctx := context.Background()
	store, err := crontab.OpenStorage(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()

	_, err = store.GetSnapshot(ctx, "missing")
	assert.ErrorIs(t, err, crontab.ErrSnapshotNotFound)
}

// ---------------------------------------------------------------------------
// Backends, lint and validation
// ---------------------------------------------------------------------------

func TestFacadeFileBackend(t *testing.T) {
	ctx := context.Background()
	f := crontab.NewFile(t.TempDir() + "/crontab")

	require.NoError(t, f.Save(ctx, "@weekly /bin/w\n"))
	text, err := f.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "@weekly /bin/w\n", crontab.Load(text).Render())
}

func TestFacadeNewCrontab(t *testing.T) {
	c, err := crontab.NewCrontab(crontab.WithUser("alice"), crontab.WithBinary("/usr/bin/crontab"), crontab.WithSudo(false))
	require.NoError(t, err)
	assert.Equal(t, "alice", c.User())

	_, err = crontab.NewCrontab(crontab.WithUser("not a user"))
	assert.ErrorIs(t, err, crontab.ErrInvalidUser)
}

func TestFacadeLint(t *testing.T) {
	tab := crontab.Load("0 0 30 2 * /bin/never\n0 0 * * * /bin/fine\n")

	issues := crontab.Lint(tab)
	require.Len(t, issues, 1)
	assert.Equal(t, "/bin/never", issues[0].Job.Command())
	assert.Empty(t, crontab.Check(tab.Jobs()[1]))
}

func TestFacadeValidation(t *testing.T) {
	assert.NoError(t, crontab.ValidateUser("root"))
	assert.ErrorIs(t, crontab.ValidateCommand(""), crontab.ErrInvalidCommand)
	assert.Equal(t, "oops", crontab.SanitizeErrorMessage("oops\x00\n"))
	assert.Equal(t, 4096, crontab.MaxCommandLength)
}

func TestFacadeDiff(t *testing.T) {
	out := crontab.Diff("a\n", "b\n", "old", "new")
	assert.Contains(t, out, "-a")
	assert.Contains(t, out, "+b")
}
