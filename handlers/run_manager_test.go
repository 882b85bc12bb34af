package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mouse-backend/algorithms"
	"mouse-backend/services"
)

func newRun(id string, seed int64) *services.RunSession {
	algorithms.SetLogger(nil)
	maze := services.NewMazeGenerator(seed).GenerateMaze()
	return services.NewRunSession(id, maze, services.SessionOptions{})
}

func TestRunManagerRegistry(t *testing.T) {
	m := NewRunManager()

	first := newRun("first", 1)
	second := newRun("second", 2)
	require.NoError(t, m.Register(first))
	require.NoError(t, m.Register(second))
	assert.Error(t, m.Register(newRun("first", 3)))
	assert.Error(t, m.Register(newRun("", 3)))
	assert.Equal(t, 2, m.Count())

	got, err := m.Get("second")
	require.NoError(t, err)
	assert.Same(t, second, got)

	_, err = m.Get("missing")
	assert.ErrorIs(t, err, ErrRunNotFound)

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].ID)

	require.NoError(t, m.Remove("first"))
	assert.ErrorIs(t, m.Remove("first"), ErrRunNotFound)
	assert.Equal(t, 1, m.Count())
}

func TestRunManagerRemoveStopsTimer(t *testing.T) {
	m := NewRunManager()
	run := newRun("timed", 4)
	require.NoError(t, m.Register(run))
	require.NoError(t, run.Start(time.Millisecond))

	require.NoError(t, m.Remove("timed"))
	assert.False(t, run.IsRunning())
}

func TestRunManagerCleanupIdleRuns(t *testing.T) {
	m := NewRunManager()
	idle := newRun("idle", 5)
	busy := newRun("busy", 6)
	require.NoError(t, m.Register(idle))
	require.NoError(t, m.Register(busy))
	require.NoError(t, busy.Start(time.Hour))
	defer busy.Stop()

	assert.Empty(t, m.CleanupIdleRuns(time.Hour))

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, []string{"idle"}, m.CleanupIdleRuns(time.Millisecond))
	assert.Equal(t, 1, m.Count())
	_, err := m.Get("busy")
	assert.NoError(t, err)
}

func TestRunManagerStatistics(t *testing.T) {
	m := NewRunManager()
	run := newRun("stats", 7)
	require.NoError(t, m.Register(run))
	_, err := run.StepN(10)
	require.NoError(t, err)

	stats := m.GetStatistics()
	assert.Equal(t, 1, stats["total_runs"])
	assert.Equal(t, 0, stats["running"])
	assert.Equal(t, 0, stats["halted"])
	assert.Equal(t, 10, stats["total_steps"])
}
