package models

import "time"

// ========================================
// Message type constants
// ========================================
const (
	// Solver -> Server -> Web
	MessageTypeWall     = "wall"      // wall discovered (setWall side channel)
	MessageTypeText     = "text"      // per-cell overlay (potential values)
	MessageTypePose     = "pose"      // mouse pose after a cycle
	MessageTypeGoalMode = "goal_mode" // goal mode transition

	// Server -> All
	MessageTypeRunCreated = "run_created" // new run registered
	MessageTypeRunRemoved = "run_removed" // run deleted
	MessageTypeSystemInfo = "system_info" // connection info
)

// ========================================
// Common WebSocket message envelope
// ========================================
type WebSocketMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"` // Unix timestamp (ms)
}

// NewMessage - envelope stamped with the current time
func NewMessage(msgType string, data interface{}) WebSocketMessage {
	return WebSocketMessage{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
}

// WallData - one wall placement
type WallData struct {
	RunID     string `json:"run_id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction string `json:"direction"` // n | e | s | w
}

// TextData - overlay text for a cell
type TextData struct {
	RunID string `json:"run_id"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Text  string `json:"text"`
}

// PoseData - mouse pose after a cycle
type PoseData struct {
	RunID  string   `json:"run_id"`
	Step   int      `json:"step"`
	Pose   Pose     `json:"pose"`
	Action Action   `json:"action"`
	Mode   GoalMode `json:"mode"`
}

// GoalModeData - goal mode transition
type GoalModeData struct {
	RunID string   `json:"run_id"`
	From  GoalMode `json:"from"`
	To    GoalMode `json:"to"`
}

// ========================================
// System info
// ========================================
type SystemInfo struct {
	ConnectedClients int       `json:"connected_clients"`
	ActiveRuns       int       `json:"active_runs"`
	ServerTime       time.Time `json:"server_time"`
}
