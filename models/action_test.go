package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoalModeGoals(t *testing.T) {
	assert.Equal(t, CenterCells, ModeToCenter.Goals())
	assert.Equal(t, []Cell{StartCell}, ModeToStart.Goals())

	// a caller scribbling on its goal set leaves everyone else's alone
	goals := ModeToCenter.Goals()
	goals[0] = Cell{X: 3, Y: 3}
	assert.Equal(t, Cell{X: 7, Y: 7}, CenterCells[0])
	assert.Equal(t, Cell{X: 7, Y: 7}, ModeToCenter.Goals()[0])

	assert.Panics(t, func() { GoalMode(9).Goals() })
}

func TestActionAndModeNames(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{ActionForward.String(), "forward"},
		{ActionLeft.String(), "left"},
		{ActionRight.String(), "right"},
		{ModeToCenter.String(), "to_center"},
		{ModeToStart.String(), "to_start"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
