package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/taskmaster/internal/models"
	"github.com/balkashynov/taskmaster/internal/timer"
	"github.com/balkashynov/taskmaster/internal/tracker"
	"github.com/balkashynov/taskmaster/internal/tui"
)

// testEnv runs commands against a temp database and settings file with a
// clock the test moves by hand.
type testEnv struct {
	t   *testing.T
	app *App
	now time.Time
	dir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		t:   t,
		dir: t.TempDir(),
		now: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
	}
	env.app = &App{
		Now:           func() time.Time { return env.now },
		IsInteractive: func() bool { return false },
		stderr:        io.Discard,
	}
	t.Cleanup(func() { env.app.Close() })
	return env
}

func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	return e.runContext(context.Background(), args...)
}

func (e *testEnv) runContext(ctx context.Context, args ...string) (string, error) {
	e.t.Helper()
	root := NewRootCmd(e.app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{
		"--db", filepath.Join(e.dir, "taskmaster.db"),
		"--config", filepath.Join(e.dir, "config.toml"),
	}, args...))
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, out)
	return out
}

func (e *testEnv) advance(d time.Duration) {
	e.now = e.now.Add(d)
}

func (e *testEnv) sessions() []models.Session {
	e.t.Helper()
	sessions, err := e.app.Store.Load(context.Background(), e.app.Settings.User)
	require.NoError(e.t, err)
	return sessions
}

func TestSlotFlow_PauseResumeComplete(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("session", "start")
	assert.Contains(t, out, "Started morning session for 2025-06-15")

	out = env.mustRun("slot", "add", "Linear", "algebra", "--estimate", "45", "--start", "--no-ui")
	assert.Contains(t, out, "Added slot-1: Linear algebra")
	assert.Contains(t, out, "Planned: 45m")

	env.advance(10 * time.Minute)
	out = env.mustRun("slot", "pause")
	assert.Contains(t, out, "Paused slot-1")

	env.advance(5 * time.Minute)
	out = env.mustRun("slot", "pause")
	assert.Contains(t, out, "Resumed slot-1 (paused 05:00 in total)")

	env.advance(20 * time.Minute)
	out = env.mustRun("slot", "end")
	assert.Contains(t, out, "Slot duration: 30m")

	sessions := env.sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, 30, sessions[0].TotalDuration)
	assert.Equal(t, 30, tracker.DeriveSessionDuration(sessions[0]))
	slot := sessions[0].Slots[0]
	assert.Equal(t, models.SlotCompleted, slot.Status)
	assert.Nil(t, slot.PauseStartTime)
	assert.InDelta(t, 300, slot.TotalPauseDuration, 0.001)

	out = env.mustRun("session", "ls")
	assert.Contains(t, out, "slot-1")
	assert.Contains(t, out, "30m")
}

func TestSessionStart_Guards(t *testing.T) {
	env := newTestEnv(t)

	env.now = time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)
	_, err := env.run("session", "start")
	assert.ErrorContains(t, err, "outside working hours")

	out := env.mustRun("session", "start", "--force")
	assert.Contains(t, out, "Started evening session")

	_, err = env.run("session", "start", "morning", "--force")
	assert.ErrorIs(t, err, tracker.ErrSessionActive)
}

func TestSessionStart_DuplicateType(t *testing.T) {
	env := newTestEnv(t)

	env.mustRun("session", "start", "morning")
	env.mustRun("session", "end")

	_, err := env.run("session", "start", "morning")
	assert.ErrorIs(t, err, tracker.ErrSessionExists)

	out := env.mustRun("session", "start", "morning", "--date", "yesterday")
	assert.Contains(t, out, "2025-06-14")
}

func TestSlotAdd_RequiresDescriptionWithoutTerminal(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("session", "start")

	_, err := env.run("slot", "add")
	assert.ErrorIs(t, err, tracker.ErrDescriptionRequired)
}

func TestSlotStart_SingleActive(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("session", "start")
	env.mustRun("slot", "add", "first", "--start")
	env.mustRun("slot", "add", "second")

	_, err := env.run("slot", "start", "slot-2")
	assert.ErrorIs(t, err, timer.ErrInvalidState)

	env.advance(15 * time.Minute)
	env.mustRun("slot", "end", "slot-1")
	out := env.mustRun("slot", "start", "slot-2")
	assert.Contains(t, out, "Started slot-2: second")

	out = env.mustRun("session", "status")
	assert.Contains(t, out, "Current slot: slot-2: second (00:00, running)")
}

func TestSlotCancel_OnlyPending(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("session", "start")
	env.mustRun("slot", "add", "running", "--start")
	env.mustRun("slot", "add", "later")

	_, err := env.run("slot", "cancel", "slot-1")
	assert.ErrorIs(t, err, timer.ErrInvalidState)

	out := env.mustRun("slot", "cancel", "slot-2")
	assert.Contains(t, out, "Cancelled slot-2")
}

func TestSessionEnd_CompletesRunningSlot(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("session", "start")
	env.mustRun("slot", "add", "reading", "--start")

	env.advance(42 * time.Minute)
	out := env.mustRun("session", "end")
	assert.Contains(t, out, "Session total: 42m across 1 slots")

	sessions := env.sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, models.SessionCompleted, sessions[0].Status)
	assert.Equal(t, models.SlotCompleted, sessions[0].Slots[0].Status)

	_, err := env.run("slot", "add", "more")
	assert.ErrorIs(t, err, errNoActiveSession)
}

func TestSessionCancel_RejectedWhileSlotActive(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("session", "start")
	env.mustRun("slot", "add", "reading", "--start")

	_, err := env.run("session", "cancel")
	assert.ErrorContains(t, err, "while slot-1 is active")

	env.mustRun("slot", "end")
	out := env.mustRun("session", "cancel")
	assert.Contains(t, out, "Cancelled morning session")
}

func TestTaskCommands(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("task", "add", "Problem", "set", "4", "-d", "exercises 1-10")
	assert.Contains(t, out, "Created task")
	env.mustRun("task", "add", "Read chapter 5")

	tasks, err := env.app.Store.GetTasks(context.Background(), "default", "2025-06-15")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	ids := map[string]string{}
	for _, task := range tasks {
		ids[task.Title] = task.ID[:8]
	}
	first, second := ids["Problem set 4"], ids["Read chapter 5"]

	env.mustRun("task", "done", first)

	_, err = env.run("task", "incomplete", second)
	assert.ErrorContains(t, err, "reason")

	out = env.mustRun("task", "review")
	assert.Contains(t, out, "1 pending tasks for 2025-06-15")
	assert.Contains(t, out, "Read chapter 5")

	env.mustRun("task", "incomplete", second, "-r", "ran out of time")
	out = env.mustRun("task", "ls")
	assert.Contains(t, out, "reason: ran out of time")
	assert.Contains(t, out, "1/2 done")

	out = env.mustRun("task", "review")
	assert.Contains(t, out, "Nothing left to review")

	env.mustRun("task", "rm", first)
	out = env.mustRun("task", "ls")
	assert.NotContains(t, out, "Problem set 4")
}

func TestLeaveCommands(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("leave", "add", "sick", "-r", "flu")
	assert.Contains(t, out, "Recorded sick leave")

	_, err := env.run("leave", "add", "holiday")
	assert.ErrorContains(t, err, "unknown leave type")

	leaves, err := env.app.Store.GetLeaves(context.Background(), "default")
	require.NoError(t, err)
	require.Len(t, leaves, 1)

	env.mustRun("leave", "approve", leaves[0].ID[:8])
	out = env.mustRun("leave", "ls")
	assert.Contains(t, out, "approved")
	assert.Contains(t, out, "flu")
}

func TestSettingsSetAndShow(t *testing.T) {
	env := newTestEnv(t)

	env.mustRun("settings", "set", "session-times.morning", "08:30")
	out := env.mustRun("settings", "show")
	assert.Contains(t, out, `morning = "08:30"`)
	assert.Contains(t, out, "day-off-interval is informational")

	_, err := env.run("settings", "set", "end-of-day", "25:00")
	assert.Error(t, err)

	_, err = env.run("settings", "set", "colour", "blue")
	assert.ErrorContains(t, err, "unknown setting")

	data, err := os.ReadFile(filepath.Join(env.dir, "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "08:30")
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("session", "start")
	env.mustRun("slot", "add", "reading", "--start")
	env.advance(90 * time.Minute)
	env.mustRun("session", "end")

	out := env.mustRun("stats")
	assert.Contains(t, out, "Streak: 1 days")
	assert.Contains(t, out, "Today: 1h 30m of 10h 00m (15%)")
	assert.Contains(t, out, "Total tracked: 1h 30m")
}

func TestExport(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("session", "start")
	env.mustRun("slot", "add", "reading", "--start")
	env.advance(25 * time.Minute)
	env.mustRun("slot", "end")

	out := env.mustRun("export", "--format", "yaml", "--output", "-")
	assert.Contains(t, out, "derivedDuration: 25")
	assert.Contains(t, out, "user: default")

	path := filepath.Join(env.dir, "out.json")
	out = env.mustRun("export", "-o", path)
	assert.Contains(t, out, "Exported 1 sessions, 0 tasks, 0 leaves")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"derivedDuration": 25`)

	_, err = env.run("export", "--format", "csv")
	assert.ErrorContains(t, err, "unsupported export format")
}

func TestHelpAndVersion(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("help")
	assert.Contains(t, out, "slot add [description]")

	out = env.mustRun("version")
	assert.Contains(t, out, "taskmaster dev")
}

func TestCommands_UseCommandContext(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("session", "start")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := env.runContext(ctx, "session", "ls")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = env.runContext(ctx, "task", "add", "never stored")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSlotWatch_UsesAppClock(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("session", "start")
	env.mustRun("slot", "add", "reading", "--start", "--no-ui")

	env.advance(12 * time.Minute)
	env.app.IsInteractive = func() bool { return true }
	env.app.runTimer = func(session models.Session, slotID string, now func() time.Time, persist tui.PersistFunc) (models.Session, error) {
		assert.Equal(t, env.now, now())
		paused, err := tracker.TogglePause(session, slotID, now())
		if err != nil {
			return session, err
		}
		return paused, persist(paused)
	}

	env.mustRun("slot", "watch")

	sessions := env.sessions()
	require.Len(t, sessions, 1)
	slot := sessions[0].Slots[0]
	require.NotNil(t, slot.PauseStartTime)
	assert.True(t, slot.PauseStartTime.Equal(env.now))
	elapsed, err := timer.LiveElapsedSeconds(slot, env.now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(12*60), elapsed)
}
