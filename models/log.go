package models

import (
	"time"
)

// StepLog - one orchestrator cycle of a run
type StepLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	RunID     string    `gorm:"index;size:36" json:"run_id"`
	Step      int       `json:"step"`

	// result of the cycle
	Action  string `gorm:"size:16;index" json:"action"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Heading string `gorm:"size:8" json:"heading"`
	Mode    string `gorm:"size:16" json:"mode"`

	// what the solver knew at the end of the cycle
	WallsKnown   int `json:"walls_known"`
	CellsReached int `json:"cells_reached"`
	Potential    int `json:"potential"`
	Moves        int `json:"moves"` // forward moves executed in this cycle

	Error string `json:"error,omitempty"`
}

// LogStats - aggregate view over a run's step logs
type LogStats struct {
	TotalSteps   int64            `json:"total_steps"`
	ActionCounts map[string]int64 `json:"action_counts"`
	TotalMoves   int64            `json:"total_moves"`
	TimeRange    string           `json:"time_range"`
}
