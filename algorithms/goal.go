package algorithms

import (
	"fmt"

	"mouse-backend/models"
)

// GoalTracker - switches between heading for the center and heading home
type GoalTracker struct {
	mode models.GoalMode
}

// NewGoalTracker - starts in ModeToCenter
func NewGoalTracker() *GoalTracker {
	return &GoalTracker{mode: models.ModeToCenter}
}

// Mode - active goal mode
func (g *GoalTracker) Mode() models.GoalMode {
	return g.mode
}

// Goals - goal set for the active mode
func (g *GoalTracker) Goals() []models.Cell {
	return g.mode.Goals()
}

// Check - fires a transition if pose sits on the active goal.
// Reaching the center acknowledges the reset to the robot and moves pose
// back to the start; reaching the start re-targets the center.
func (g *GoalTracker) Check(robot Robot, pose *models.Pose) (bool, error) {
	switch g.mode {
	case models.ModeToCenter:
		if !models.IsCenter(pose.Cell) {
			return false, nil
		}
		if err := robot.AckReset(); err != nil {
			return false, fmt.Errorf("ack reset: %w", err)
		}
		*pose = models.StartPose()
		g.mode = models.ModeToStart
		return true, nil

	case models.ModeToStart:
		if pose.Cell != models.StartCell {
			return false, nil
		}
		g.mode = models.ModeToCenter
		return true, nil
	}
	panic(fmt.Sprintf("algorithms: invalid goal mode %d", int(g.mode)))
}

// Reset - back to the initial mode
func (g *GoalTracker) Reset() {
	g.mode = models.ModeToCenter
}
