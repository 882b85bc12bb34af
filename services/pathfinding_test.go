package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mouse-backend/algorithms"
	"mouse-backend/models"
)

func TestPlanRouteOpenMaze(t *testing.T) {
	m := models.NewOpenMaze("open")

	tests := []struct {
		from models.Cell
		want int
	}{
		{models.Cell{X: 0, Y: 0}, 0},
		{models.Cell{X: 0, Y: 3}, 30},
		{models.Cell{X: 1, Y: 1}, 25},
		{models.Cell{X: 5, Y: 4}, 95},
	}
	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			route, ok := PlanRoute(m, tt.from, []models.Cell{models.StartCell})
			require.True(t, ok)
			assert.Equal(t, tt.want, route.Cost)
			assert.Equal(t, tt.from, route.Cells[0])
			assert.Equal(t, models.StartCell, route.Cells[len(route.Cells)-1])
		})
	}
}

func TestPlanRoutePath(t *testing.T) {
	m := models.NewOpenMaze("corridor")
	// force (0,0) -> (0,2) around a wall: east, north, north, west
	m.SetWall(models.North, models.StartCell, true)
	m.SetWall(models.North, models.Cell{X: 1, Y: 1}, true)

	route, ok := PlanRoute(m, models.StartCell, []models.Cell{{X: 0, Y: 1}})
	require.True(t, ok)
	assert.Equal(t, []models.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, route.Cells)
	assert.Equal(t, 10+15+15, route.Cost)
}

func TestPlanRouteUnreachable(t *testing.T) {
	m := models.NewOpenMaze("sealed")
	for _, h := range models.ScanOrder {
		m.SetWall(h, models.Cell{X: 4, Y: 4}, true)
	}

	_, ok := PlanRoute(m, models.StartCell, []models.Cell{{X: 4, Y: 4}})
	assert.False(t, ok)
	assert.Equal(t, algorithms.Unreached, OptimalCost(m, models.StartCell, []models.Cell{{X: 4, Y: 4}}))

	_, ok = PlanRoute(m, models.Cell{X: -1, Y: 0}, models.CenterCells)
	assert.False(t, ok)
}

// The flood fill keeps the first cost that reaches a cell, so it can only
// overestimate the true optimum.
func TestFloodFillNeverBelowOptimal(t *testing.T) {
	algorithms.SetLogger(nil)

	m := NewMazeGenerator(11).GenerateMaze()
	walls := algorithms.NewWalls(nil)
	for x := 0; x < models.MazeSize; x++ {
		for y := 0; y < models.MazeSize; y++ {
			c := models.Cell{X: x, Y: y}
			for _, h := range models.ScanOrder {
				if m.HasWall(h, c) {
					walls.PlaceWall(h, c)
				}
			}
		}
	}
	field := algorithms.NewFloodField(nil)
	field.Recompute(walls, models.CenterCells)

	for x := 0; x < models.MazeSize; x++ {
		for y := 0; y < models.MazeSize; y++ {
			c := models.Cell{X: x, Y: y}
			assert.GreaterOrEqual(t, field.At(c), OptimalCost(walls, c, models.CenterCells), c.String())
		}
	}
}

func TestFloodFillQuirkAgainstOptimal(t *testing.T) {
	algorithms.SetLogger(nil)

	walls := algorithms.NewWalls(nil)
	walls.PlaceWall(models.North, models.StartCell)
	field := algorithms.NewFloodField(nil)
	field.Recompute(walls, []models.Cell{models.StartCell})

	target := models.Cell{X: 2, Y: 1}
	assert.Equal(t, 40, field.At(target))
	assert.Equal(t, 35, OptimalCost(walls, target, []models.Cell{models.StartCell}))
}
