package algorithms

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mouse-backend/models"
)

func newTestNavigator(goals ...models.Cell) (*Navigator, *Walls, *FloodField) {
	walls := NewWalls(nil)
	field := NewFloodField(nil)
	field.Recompute(walls, goals)
	return NewNavigator(walls, field), walls, field
}

func TestChooseHeading(t *testing.T) {
	t.Run("ties keep scan order", func(t *testing.T) {
		nav, _, _ := newTestNavigator(models.StartCell)
		// west (0,1) and south (1,0) are both 10
		h, err := nav.ChooseHeading(models.Pose{Cell: models.Cell{X: 1, Y: 1}, Heading: models.East})
		require.NoError(t, err)
		assert.Equal(t, models.West, h)
	})

	t.Run("never through a wall", func(t *testing.T) {
		nav, walls, field := newTestNavigator(models.StartCell)
		walls.PlaceWall(models.West, models.Cell{X: 1, Y: 1})
		field.Recompute(walls, []models.Cell{models.StartCell})

		h, err := nav.ChooseHeading(models.Pose{Cell: models.Cell{X: 1, Y: 1}, Heading: models.North})
		require.NoError(t, err)
		assert.Equal(t, models.South, h)
		assert.False(t, walls.HasWall(h, models.Cell{X: 1, Y: 1}))
	})

	t.Run("boundary cells", func(t *testing.T) {
		nav, walls, _ := newTestNavigator(models.CenterCells...)
		corners := []models.Cell{{X: 0, Y: 0}, {X: 15, Y: 0}, {X: 0, Y: 15}, {X: 15, Y: 15}}
		for _, c := range corners {
			h, err := nav.ChooseHeading(models.Pose{Cell: c, Heading: models.North})
			require.NoError(t, err)
			assert.False(t, walls.HasWall(h, c), c.String())
		}
	})

	t.Run("unreached neighbours only", func(t *testing.T) {
		nav, walls, field := newTestNavigator()
		// pocket of (0,0), (1,0), (0,1) cut off from the center
		walls.PlaceWall(models.North, models.Cell{X: 0, Y: 1})
		walls.PlaceWall(models.East, models.Cell{X: 0, Y: 1})
		walls.PlaceWall(models.North, models.Cell{X: 1, Y: 0})
		walls.PlaceWall(models.East, models.Cell{X: 1, Y: 0})
		field.Recompute(walls, models.CenterCells)
		require.Equal(t, Unreached, field.At(models.StartCell))

		h, err := nav.ChooseHeading(models.Pose{Cell: models.StartCell, Heading: models.East})
		require.NoError(t, err)
		assert.Equal(t, models.North, h)
	})

	t.Run("boxed in", func(t *testing.T) {
		nav, walls, _ := newTestNavigator(models.CenterCells...)
		c := models.Cell{X: 4, Y: 4}
		for _, h := range models.ScanOrder {
			walls.PlaceWall(h, c)
		}
		_, err := nav.ChooseHeading(models.Pose{Cell: c, Heading: models.North})
		assert.True(t, errors.Is(err, ErrNoMove))
	})
}

func TestDecideActionStraightRun(t *testing.T) {
	goal := models.Cell{X: 0, Y: 3}
	nav, _, _ := newTestNavigator(goal)
	for y := 0; y < 3; y++ {
		nav.MarkTraveled(models.Cell{X: 0, Y: y})
	}

	robot := &fakeRobot{}
	pose := models.StartPose()
	action, err := nav.DecideAction(robot, &pose)

	require.NoError(t, err)
	assert.Equal(t, models.ActionForward, action)
	assert.Equal(t, models.Pose{Cell: goal, Heading: models.North}, pose)
	assert.Equal(t, 3, robot.moves)
	assert.Equal(t, 3, nav.LastMoves())
	assert.Zero(t, robot.lefts+robot.rights)
}

func TestDecideActionSingleStep(t *testing.T) {
	// untraveled cells ahead: one cell per cycle
	goal := models.Cell{X: 0, Y: 3}
	nav, _, _ := newTestNavigator(goal)

	robot := &fakeRobot{}
	pose := models.StartPose()
	action, err := nav.DecideAction(robot, &pose)

	require.NoError(t, err)
	assert.Equal(t, models.ActionForward, action)
	assert.Equal(t, models.Cell{X: 0, Y: 1}, pose.Cell)
	assert.Equal(t, 1, robot.moves)
	assert.True(t, nav.Traveled(models.StartCell))
	assert.False(t, nav.Traveled(models.Cell{X: 0, Y: 1}))
}

func TestDecideActionStopsAtUntraveled(t *testing.T) {
	goal := models.Cell{X: 0, Y: 3}
	nav, _, _ := newTestNavigator(goal)
	nav.MarkTraveled(models.Cell{X: 0, Y: 1})

	robot := &fakeRobot{}
	pose := models.StartPose()
	_, err := nav.DecideAction(robot, &pose)
	require.NoError(t, err)
	assert.Equal(t, models.Cell{X: 0, Y: 2}, pose.Cell)
	assert.Equal(t, 2, robot.moves)
	assert.True(t, nav.Traveled(models.Cell{X: 0, Y: 1}))
	assert.False(t, nav.Traveled(models.Cell{X: 0, Y: 2}))
}

func TestCanExtend(t *testing.T) {
	goal := models.Cell{X: 0, Y: 3}
	nav, walls, _ := newTestNavigator(goal)
	c := models.Cell{X: 0, Y: 1}

	assert.False(t, nav.canExtend(c, models.North), "untraveled")

	nav.MarkTraveled(c)
	assert.True(t, nav.canExtend(c, models.North))
	assert.False(t, nav.canExtend(c, models.South), "uphill")

	walls.PlaceWall(models.North, c)
	assert.False(t, nav.canExtend(c, models.North), "walled")
}

func TestDecideActionTurns(t *testing.T) {
	goal := models.Cell{X: 0, Y: 3}

	tests := []struct {
		heading     models.Heading
		wantAction  models.Action
		wantHeading models.Heading
	}{
		{models.West, models.ActionRight, models.North},
		{models.East, models.ActionLeft, models.North},
		{models.South, models.ActionLeft, models.East},
	}

	for _, tt := range tests {
		t.Run(tt.heading.String(), func(t *testing.T) {
			nav, _, _ := newTestNavigator(goal)
			robot := &fakeRobot{}
			pose := models.Pose{Cell: models.StartCell, Heading: tt.heading}

			action, err := nav.DecideAction(robot, &pose)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAction, action)
			assert.Equal(t, tt.wantHeading, pose.Heading)
			assert.Equal(t, models.StartCell, pose.Cell)
			assert.Zero(t, robot.moves)
			assert.Equal(t, 1, robot.lefts+robot.rights)
		})
	}
}

func TestDecideActionMoveFailure(t *testing.T) {
	goal := models.Cell{X: 0, Y: 3}
	nav, _, _ := newTestNavigator(goal)
	crash := errors.New("crash")
	robot := &fakeRobot{moveErr: crash}

	pose := models.StartPose()
	action, err := nav.DecideAction(robot, &pose)
	assert.Equal(t, models.ActionForward, action)
	assert.ErrorIs(t, err, crash)
	assert.Equal(t, models.StartPose(), pose)
	assert.Zero(t, nav.LastMoves())
}
