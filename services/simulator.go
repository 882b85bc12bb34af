package services

import (
	"fmt"
	"log"
	"sync"

	"mouse-backend/models"
)

// MouseSimulator - virtual mouse driving through a ground-truth maze.
// Implements algorithms.Robot; sensors read the maze relative to the
// physical heading.
type MouseSimulator struct {
	maze *models.Maze
	pose models.Pose

	moves   int
	turns   int
	crashes int
	resets  int

	mu sync.RWMutex
}

// SimulatorStats - motion counters
type SimulatorStats struct {
	Moves   int `json:"moves"`
	Turns   int `json:"turns"`
	Crashes int `json:"crashes"`
	Resets  int `json:"resets"`
}

// NewMouseSimulator - mouse at (0,0) facing north inside maze
func NewMouseSimulator(maze *models.Maze) *MouseSimulator {
	return &MouseSimulator{
		maze: maze,
		pose: models.StartPose(),
	}
}

func (s *MouseSimulator) sense(h models.Heading) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maze.HasWall(h, s.pose.Cell), nil
}

// WallFront - wall ahead of the physical pose
func (s *MouseSimulator) WallFront() (bool, error) {
	return s.sense(s.Pose().Heading)
}

// WallLeft - wall to the left of the physical pose
func (s *MouseSimulator) WallLeft() (bool, error) {
	return s.sense(s.Pose().Heading.Left())
}

// WallRight - wall to the right of the physical pose
func (s *MouseSimulator) WallRight() (bool, error) {
	return s.sense(s.Pose().Heading.Right())
}

// MoveForward - one cell ahead, ErrCrash if a wall is in the way
func (s *MouseSimulator) MoveForward() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maze.HasWall(s.pose.Heading, s.pose.Cell) {
		s.crashes++
		log.Printf("💥 crash at %s", s.pose)
		return fmt.Errorf("move forward at %s: %w", s.pose, ErrCrash)
	}
	s.pose.Cell = s.pose.Cell.Step(s.pose.Heading, 1)
	s.moves++
	return nil
}

// TurnLeft - rotate 90° counter-clockwise
func (s *MouseSimulator) TurnLeft() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pose.Heading = s.pose.Heading.Left()
	s.turns++
	return nil
}

// TurnRight - rotate 90° clockwise
func (s *MouseSimulator) TurnRight() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pose.Heading = s.pose.Heading.Right()
	s.turns++
	return nil
}

// AckReset - the mouse is picked up and put back at the start
func (s *MouseSimulator) AckReset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pose = models.StartPose()
	s.resets++
	return nil
}

// Pose - physical pose
func (s *MouseSimulator) Pose() models.Pose {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pose
}

// Maze - the ground truth
func (s *MouseSimulator) Maze() *models.Maze {
	return s.maze
}

// Stats - motion counters so far
func (s *MouseSimulator) Stats() SimulatorStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SimulatorStats{
		Moves:   s.moves,
		Turns:   s.turns,
		Crashes: s.crashes,
		Resets:  s.resets,
	}
}
