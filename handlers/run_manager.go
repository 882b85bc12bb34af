package handlers

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"mouse-backend/services"
)

// ErrRunNotFound - no run with that id
var ErrRunNotFound = errors.New("run not found")

// RunManager - live runs by id
type RunManager struct {
	mu   sync.RWMutex
	runs map[string]*services.RunSession
}

// NewRunManager - empty manager
func NewRunManager() *RunManager {
	return &RunManager{
		runs: make(map[string]*services.RunSession),
	}
}

// Register - adds a run; ids are unique
func (m *RunManager) Register(run *services.RunSession) error {
	if run == nil || run.ID == "" {
		return fmt.Errorf("run id is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.runs[run.ID]; exists {
		return fmt.Errorf("run already registered: %s", run.ID)
	}
	m.runs[run.ID] = run
	log.Printf("[Runs] registered: %s (maze %s)", run.ID, run.Maze().ID)
	return nil
}

// Get - run by id
func (m *RunManager) Get(id string) (*services.RunSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, exists := m.runs[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, nil
}

// List - runs, oldest first
func (m *RunManager) List() []*services.RunSession {
	m.mu.RLock()
	result := make([]*services.RunSession, 0, len(m.runs))
	for _, run := range m.runs {
		result = append(result, run)
	}
	m.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// Remove - stops and forgets a run
func (m *RunManager) Remove(id string) error {
	m.mu.Lock()
	run, exists := m.runs[id]
	delete(m.runs, id)
	m.mu.Unlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	run.Stop()
	log.Printf("[Runs] removed: %s", id)
	return nil
}

// Count - registered runs
func (m *RunManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs)
}

// CleanupIdleRuns - removes runs that are not on a timer and have not
// stepped within timeout; returns the removed ids
func (m *RunManager) CleanupIdleRuns(timeout time.Duration) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed []string
	now := time.Now()
	for id, run := range m.runs {
		if run.IsRunning() || now.Sub(run.LastStep()) <= timeout {
			continue
		}
		delete(m.runs, id)
		removed = append(removed, id)
		log.Printf("[Runs] cleanup: %s (idle)", id)
	}
	sort.Strings(removed)
	return removed
}

// GetStatistics - aggregate over all runs
func (m *RunManager) GetStatistics() map[string]interface{} {
	runs := m.List()

	running := 0
	halted := 0
	totalSteps := 0
	centerReached := 0
	for _, run := range runs {
		snap := run.Snapshot()
		if snap.Running {
			running++
		}
		if snap.Halted != "" {
			halted++
		}
		totalSteps += snap.Steps
		centerReached += snap.CenterReached
	}

	return map[string]interface{}{
		"total_runs":     len(runs),
		"running":        running,
		"halted":         halted,
		"total_steps":    totalSteps,
		"center_reached": centerReached,
	}
}
