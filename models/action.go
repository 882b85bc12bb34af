package models

import "fmt"

// Action - what the mouse did during one control cycle
type Action int

const (
	ActionForward Action = iota
	ActionLeft
	ActionRight
)

func (a Action) String() string {
	switch a {
	case ActionForward:
		return "forward"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// MarshalText - actions travel as their names in JSON
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// GoalMode - which goal set the flood fill targets
type GoalMode int

const (
	ModeToCenter GoalMode = iota // initial: explore toward the center room
	ModeToStart                  // heading home to (0,0)
)

func (m GoalMode) String() string {
	switch m {
	case ModeToCenter:
		return "to_center"
	case ModeToStart:
		return "to_start"
	default:
		return fmt.Sprintf("goal_mode(%d)", int(m))
	}
}

// MarshalText - goal modes travel as their names in JSON
func (m GoalMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Goals - the goal set selected by the mode; callers own the slice
func (m GoalMode) Goals() []Cell {
	switch m {
	case ModeToCenter:
		return append([]Cell(nil), CenterCells...)
	case ModeToStart:
		return []Cell{StartCell}
	}
	panic(fmt.Sprintf("models: invalid goal mode %d", int(m)))
}
