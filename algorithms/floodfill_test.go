package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mouse-backend/models"
)

func TestRecomputeOpenMaze(t *testing.T) {
	walls := NewWalls(nil)
	field := NewFloodField(nil)
	field.Recompute(walls, []models.Cell{models.StartCell})

	tests := []struct {
		cell models.Cell
		want int
	}{
		{models.Cell{X: 0, Y: 0}, 0},
		{models.Cell{X: 0, Y: 1}, 10},
		{models.Cell{X: 1, Y: 0}, 10},
		{models.Cell{X: 0, Y: 2}, 20},
		{models.Cell{X: 2, Y: 0}, 20},
		{models.Cell{X: 1, Y: 1}, 25},
	}
	for _, tt := range tests {
		t.Run(tt.cell.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, field.At(tt.cell))
		})
	}
	assert.Equal(t, models.MazeSize*models.MazeSize, field.Reached())
}

func TestRecomputeCenterGoals(t *testing.T) {
	walls := NewWalls(nil)
	field := NewFloodField(nil)
	field.Recompute(walls, models.CenterCells)

	for _, c := range models.CenterCells {
		assert.Equal(t, 0, field.At(c))
	}
	// one straight step out of the room in every direction
	assert.Equal(t, 10, field.At(models.Cell{X: 7, Y: 9}))
	assert.Equal(t, 10, field.At(models.Cell{X: 6, Y: 7}))
	assert.Equal(t, 10, field.At(models.Cell{X: 8, Y: 6}))
	assert.Equal(t, 10, field.At(models.Cell{X: 9, Y: 8}))
}

func TestRecomputeReachability(t *testing.T) {
	walls := NewWalls(nil)
	// seal (3,3) off completely and (10,10)-(10,11) as a pair
	for _, h := range models.ScanOrder {
		walls.PlaceWall(h, models.Cell{X: 3, Y: 3})
	}
	walls.PlaceWall(models.West, models.Cell{X: 10, Y: 10})
	walls.PlaceWall(models.East, models.Cell{X: 10, Y: 10})
	walls.PlaceWall(models.South, models.Cell{X: 10, Y: 10})
	walls.PlaceWall(models.West, models.Cell{X: 10, Y: 11})
	walls.PlaceWall(models.East, models.Cell{X: 10, Y: 11})
	walls.PlaceWall(models.North, models.Cell{X: 10, Y: 11})

	field := NewFloodField(nil)
	field.Recompute(walls, models.CenterCells)

	sealed := map[models.Cell]bool{
		{X: 3, Y: 3}:   true,
		{X: 10, Y: 10}: true,
		{X: 10, Y: 11}: true,
	}
	for x := 0; x < models.MazeSize; x++ {
		for y := 0; y < models.MazeSize; y++ {
			c := models.Cell{X: x, Y: y}
			v := field.At(c)
			if sealed[c] {
				assert.Equal(t, Unreached, v, c.String())
			} else {
				assert.GreaterOrEqual(t, v, 0, c.String())
			}
		}
	}
	assert.Equal(t, models.MazeSize*models.MazeSize-3, field.Reached())
}

// A cell keeps the first cost it gets even when a cheaper path shows up
// later in the same pass.
func TestRecomputeFirstSettledWins(t *testing.T) {
	walls := NewWalls(nil)
	walls.PlaceWall(models.North, models.StartCell)

	field := NewFloodField(nil)
	field.Recompute(walls, []models.Cell{models.StartCell})

	assert.Equal(t, 10, field.At(models.Cell{X: 1, Y: 0}))
	assert.Equal(t, 25, field.At(models.Cell{X: 1, Y: 1}))
	assert.Equal(t, 20, field.At(models.Cell{X: 2, Y: 0}))
	assert.Equal(t, 40, field.At(models.Cell{X: 0, Y: 1}))
	// east, east, north would cost 35 but (1,1) settled (2,1) first
	assert.Equal(t, 40, field.At(models.Cell{X: 2, Y: 1}))
}

func TestRecomputeResetsEveryPass(t *testing.T) {
	walls := NewWalls(nil)
	field := NewFloodField(nil)

	field.Recompute(walls, models.CenterCells)
	require.Equal(t, 0, field.At(models.Cell{X: 8, Y: 8}))

	field.Recompute(walls, []models.Cell{models.StartCell})
	assert.Equal(t, 0, field.At(models.StartCell))
	assert.Greater(t, field.At(models.Cell{X: 8, Y: 8}), 0)
}

func TestRecomputePublishesChanges(t *testing.T) {
	d := newRecordingDisplay()
	walls := NewWalls(nil)
	field := NewFloodField(d)

	field.Recompute(walls, []models.Cell{models.StartCell})
	assert.Equal(t, models.MazeSize*models.MazeSize, d.sets)
	assert.Equal(t, "0", d.texts[models.StartCell])
	assert.Equal(t, "25", d.texts[models.Cell{X: 1, Y: 1}])

	// nothing changed, nothing sent
	field.Recompute(walls, []models.Cell{models.StartCell})
	assert.Equal(t, models.MazeSize*models.MazeSize, d.sets)

	walls.PlaceWall(models.North, models.StartCell)
	field.Recompute(walls, []models.Cell{models.StartCell})
	assert.Greater(t, d.sets, models.MazeSize*models.MazeSize)
	assert.Equal(t, "40", d.texts[models.Cell{X: 0, Y: 1}])
}

func TestFloodFieldOutOfBounds(t *testing.T) {
	field := NewFloodField(nil)
	assert.Panics(t, func() { field.At(models.Cell{X: -1, Y: 0}) })
	assert.Panics(t, func() {
		field.Recompute(NewWalls(nil), []models.Cell{{X: 0, Y: 16}})
	})
}
