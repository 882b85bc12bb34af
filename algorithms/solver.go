package algorithms

import (
	"fmt"

	"mouse-backend/models"
)

// Solver - the step orchestrator.
//
// Owns every piece of exploration state for one mouse. A Solver is not safe
// for concurrent use; callers that share one must serialize Step.
type Solver struct {
	robot Robot

	walls *Walls
	field *FloodField
	nav   *Navigator
	goal  *GoalTracker

	pose  models.Pose
	steps int
}

// NewSolver - solver at the start pose heading for the center
func NewSolver(robot Robot, display Display) *Solver {
	if robot == nil {
		panic("algorithms: solver needs a robot")
	}
	walls := NewWalls(display)
	field := NewFloodField(display)
	return &Solver{
		robot: robot,
		walls: walls,
		field: field,
		nav:   NewNavigator(walls, field),
		goal:  NewGoalTracker(),
		pose:  models.StartPose(),
	}
}

// Step - runs one control cycle and returns the action just executed.
//
// goal check -> sensor read -> wall update -> full recompute -> decision.
// A FORWARD result has already been driven, possibly over several cells.
func (s *Solver) Step() (models.Action, error) {
	s.steps++

	changed, err := s.goal.Check(s.robot, &s.pose)
	if err != nil {
		return models.ActionForward, fmt.Errorf("step %d: %w", s.steps, err)
	}
	if changed {
		Logf("goal mode -> %s at %s", s.goal.Mode(), s.pose)
	}

	front, left, right, err := s.readSensors()
	if err != nil {
		return models.ActionForward, fmt.Errorf("step %d: %w", s.steps, err)
	}
	s.walls.UpdateWalls(front, left, right, s.pose)

	s.field.Recompute(s.walls, s.goal.Goals())

	action, err := s.nav.DecideAction(s.robot, &s.pose)
	if err != nil {
		return action, fmt.Errorf("step %d: %w", s.steps, err)
	}
	return action, nil
}

func (s *Solver) readSensors() (front, left, right bool, err error) {
	if front, err = s.robot.WallFront(); err != nil {
		return false, false, false, fmt.Errorf("wall front: %w", err)
	}
	if left, err = s.robot.WallLeft(); err != nil {
		return false, false, false, fmt.Errorf("wall left: %w", err)
	}
	if right, err = s.robot.WallRight(); err != nil {
		return false, false, false, fmt.Errorf("wall right: %w", err)
	}
	return front, left, right, nil
}

// Reset - puts the mouse back at the start heading for the center.
// Discovered walls and traveled cells are kept.
func (s *Solver) Reset() {
	s.pose = models.StartPose()
	s.goal.Reset()
}

// Pose - current believed pose
func (s *Solver) Pose() models.Pose { return s.pose }

// Mode - active goal mode
func (s *Solver) Mode() models.GoalMode { return s.goal.Mode() }

// Steps - cycles run so far
func (s *Solver) Steps() int { return s.steps }

// LastMoves - cells driven by the last cycle
func (s *Solver) LastMoves() int { return s.nav.LastMoves() }

// Walls - discovered walls
func (s *Solver) Walls() *Walls { return s.walls }

// Field - potentials from the last recompute
func (s *Solver) Field() *FloodField { return s.field }

// Navigator - traveled cells and heading choice
func (s *Solver) Navigator() *Navigator { return s.nav }
