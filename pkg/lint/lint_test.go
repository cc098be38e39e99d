package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdziat/simple-crontab/pkg/field"
	"github.com/jdziat/simple-crontab/pkg/job"
	"github.com/jdziat/simple-crontab/pkg/table"
)

func mustParse(t *testing.T, line string) *job.Job {
	t.Helper()
	j, err := job.Parse(line)
	require.NoError(t, err)
	return j
}

func TestCheck_Clean(t *testing.T) {
	lines := []string{
		"* * * * * /bin/true",
		"0 8-17 * * 1-5 /bin/echo hi #greet",
		"*/15 0-6/2 1,15 jan-jun * /bin/poll",
		"@weekly /bin/weekly",
		"@reboot /bin/startup",
		"0 0 29 2 * /bin/leap",
		`0 0 * * * date +\%F > /tmp/day`,
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			assert.Empty(t, Check(mustParse(t, line)))
		})
	}
}

func TestCheck_StarFieldsAreUnrestricted(t *testing.T) {
	for _, line := range []string{
		"@daily /bin/fine",
		"0 0 * * * /bin/fine",
		"*/5 * * * * /bin/fine",
		"0 0 1 * * /bin/monthly",
		"0 0 * * 1 /bin/mondays",
		"0 0 */2 * 1 /bin/step",
	} {
		t.Run(line, func(t *testing.T) {
			assert.Empty(t, Check(mustParse(t, line)))
		})
	}

	t.Run("built job", func(t *testing.T) {
		j := job.New("/bin/fine", "")
		j.Dom().On(1)
		j.Dow().On(1)
		require.Len(t, Check(j), 1)
	})
}

func TestRestricted(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"*", false},
		{"*/2", false},
		{"1", true},
		{"1-5", true},
		{"mon,fri", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			f, err := field.Parse(field.DayOfWeek, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, restricted(f))
		})
	}

	assert.False(t, restricted(field.New(field.DayOfMonth)))
}

func TestCheck_SundaySeven(t *testing.T) {
	for _, line := range []string{
		"0 0 * * 7 /bin/a",
		"0 0 * * 5-7 /bin/a",
		"0 0 * * 1-7/3 /bin/a",
		"0 0 * * 7-7 /bin/a",
	} {
		t.Run(line, func(t *testing.T) {
			assert.Empty(t, Check(mustParse(t, line)))
		})
	}
}

func TestStandardExpression(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"0 0 * * 7 a", "0 0 * * 0"},
		{"0 0 * * 5-7 a", "0 0 * * 5-6,0"},
		{"0 0 * * 1-7/2 a", "0 0 * * 1-6/2,0"},
		{"0 0 * * 1-7/4 a", "0 0 * * 1-6/4"},
		{"0 0 * * 7-7 a", "0 0 * * 0"},
		{"0 0 * * */2 a", "0 0 * * */2"},
		{"0 0 * * 1,3 a", "0 0 * * 1,3"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, standardExpression(mustParse(t, tt.line)))
		})
	}
}

func TestCheck_OutOfBoundsValue(t *testing.T) {
	j := mustParse(t, "0 * * * * /bin/a")
	j.Minute().On(75)
	j.Month().On(0)

	issues := Check(j)
	require.Len(t, issues, 2)
	assert.Equal(t, field.Minute.Name, issues[0].Field)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "75")
	assert.Equal(t, field.Month.Name, issues[1].Field)
	assert.Same(t, j, issues[0].Job)
}

func TestCheck_NeverFires(t *testing.T) {
	issues := Check(mustParse(t, "0 0 30,31 2 * /bin/never"))
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Equal(t, field.DayOfMonth.Name, issues[0].Field)

	assert.Empty(t, Check(mustParse(t, "0 0 31 2,3 * /bin/march")))
	assert.Empty(t, Check(mustParse(t, "0 0 31 1-3 * /bin/range")))
}

func TestCheck_Warnings(t *testing.T) {
	t.Run("dom and dow", func(t *testing.T) {
		issues := Check(mustParse(t, "0 0 1 * 1 /bin/a"))
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityWarning, issues[0].Severity)
		assert.Contains(t, issues[0].Message, "either")
	})

	t.Run("percent", func(t *testing.T) {
		issues := Check(mustParse(t, "0 0 * * * date +%F"))
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityWarning, issues[0].Severity)
		assert.Contains(t, issues[0].String(), "newline")
	})
}

func TestCheck_SkipsInvalidAndNil(t *testing.T) {
	j, err := job.Parse("garbage")
	require.Error(t, err)

	assert.Nil(t, Check(j))
	assert.Nil(t, Check(nil))
}

func TestTable(t *testing.T) {
	tbl := table.Load("# header\n0 0 * * * ok\n0 0 1 * 1 both\nnot a job\n0 0 30 2 * never\n")

	issues := Table(tbl)
	require.Len(t, issues, 2)
	assert.Equal(t, 1, issues[0].Index)
	assert.Equal(t, "both", issues[0].Job.Command())
	assert.Equal(t, 2, issues[1].Index)
	assert.Equal(t, "never", issues[1].Job.Command())
}

func TestIssue_String(t *testing.T) {
	assert.Equal(t, "error: Minute: bad", Issue{Field: "Minute", Severity: SeverityError, Message: "bad"}.String())
	assert.Equal(t, "warning: odd", Issue{Severity: SeverityWarning, Message: "odd"}.String())
}
