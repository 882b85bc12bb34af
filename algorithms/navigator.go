package algorithms

import (
	"errors"
	"fmt"

	"mouse-backend/models"
)

// ErrNoMove - every heading out of the current cell is walled off
var ErrNoMove = errors.New("no open heading from current cell")

// Navigator - turns the potential field into motion
type Navigator struct {
	walls    *Walls
	field    *FloodField
	traveled [size][size]bool
	moves    int // forward moves executed by the last DecideAction
}

// NewNavigator - navigator reading walls and field
func NewNavigator(walls *Walls, field *FloodField) *Navigator {
	return &Navigator{walls: walls, field: field}
}

// MarkTraveled - records that the mouse has stood on c
func (n *Navigator) MarkTraveled(c models.Cell) {
	mustInBounds(c)
	n.traveled[c.X][c.Y] = true
}

// Traveled - reports whether the mouse has stood on c
func (n *Navigator) Traveled(c models.Cell) bool {
	mustInBounds(c)
	return n.traveled[c.X][c.Y]
}

// TraveledCount - number of cells visited so far
func (n *Navigator) TraveledCount() int {
	count := 0
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			if n.traveled[x][y] {
				count++
			}
		}
	}
	return count
}

// LastMoves - cells driven by the most recent DecideAction
func (n *Navigator) LastMoves() int {
	return n.moves
}

// ChooseHeading - open heading whose neighbour has the lowest potential.
// Ties keep the heading examined first; unreached neighbours lose to any
// reached one.
func (n *Navigator) ChooseHeading(pose models.Pose) (models.Heading, error) {
	best := pose.Heading
	bestCost := Unreached
	found := false

	for _, h := range models.ScanOrder {
		if n.walls.HasWall(h, pose.Cell) {
			continue
		}
		p := n.field.At(pose.Cell.Step(h, 1))
		switch {
		case !found:
			best, bestCost, found = h, p, true
		case p == Unreached:
		case bestCost == Unreached || p < bestCost:
			best, bestCost = h, p
		}
	}

	if !found {
		return best, fmt.Errorf("at %s: %w", pose, ErrNoMove)
	}
	return best, nil
}

// canExtend - whether a straight run may continue past cursor
func (n *Navigator) canExtend(cursor models.Cell, h models.Heading) bool {
	if !n.Traveled(cursor) || n.walls.HasWall(h, cursor) {
		return false
	}
	next := n.field.At(cursor.Step(h, 1))
	return next != Unreached && next < n.field.At(cursor)
}

// DecideAction - picks and executes the next action, updating pose.
//
// Facing the chosen heading, the mouse drives straight: always one cell,
// then further while the cell it is on has been traveled before and the
// potential keeps dropping. Otherwise it turns once toward the heading.
func (n *Navigator) DecideAction(robot Robot, pose *models.Pose) (models.Action, error) {
	n.moves = 0
	n.MarkTraveled(pose.Cell)

	target, err := n.ChooseHeading(*pose)
	if err != nil {
		return models.ActionForward, err
	}

	if target == pose.Heading {
		cursor := pose.Cell.Step(target, 1)
		cells := 1
		for n.canExtend(cursor, target) {
			cursor = cursor.Step(target, 1)
			cells++
		}
		for i := 1; i < cells; i++ {
			n.MarkTraveled(pose.Cell.Step(target, i))
		}
		if cells > 1 {
			Logf("straight run: %d cells from %s", cells, pose.Cell)
		}

		for i := 0; i < cells; i++ {
			if err := robot.MoveForward(); err != nil {
				return models.ActionForward, fmt.Errorf("move forward %d/%d: %w", i+1, cells, err)
			}
			pose.Cell = pose.Cell.Step(target, 1)
			n.moves++
		}
		return models.ActionForward, nil
	}

	if target == pose.Heading.Right() {
		if err := robot.TurnRight(); err != nil {
			return models.ActionRight, fmt.Errorf("turn right: %w", err)
		}
		pose.Heading = pose.Heading.Right()
		return models.ActionRight, nil
	}

	if err := robot.TurnLeft(); err != nil {
		return models.ActionLeft, fmt.Errorf("turn left: %w", err)
	}
	pose.Heading = pose.Heading.Left()
	return models.ActionLeft, nil
}
