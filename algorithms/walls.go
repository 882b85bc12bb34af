package algorithms

import (
	"fmt"

	"mouse-backend/models"
)

const size = models.MazeSize

// Walls - walls discovered so far.
//
// vertical[x][y] is the wall on the west side of cell (x,y), i.e. the east
// side of (x-1,y); horizontal[x][y] is the south side of (x,y), i.e. the
// north side of (x,y-1). The outer boundary is walled from the start and
// walls are never removed.
type Walls struct {
	vertical   [size + 1][size]bool
	horizontal [size][size + 1]bool
	display    Display
	known      int // walls placed beyond the boundary
}

// NewWalls - boundary-only wall model that mirrors placements to display
func NewWalls(display Display) *Walls {
	if display == nil {
		display = noopDisplay{}
	}
	w := &Walls{display: display}
	for i := 0; i < size; i++ {
		w.vertical[0][i] = true
		w.vertical[size][i] = true
		w.horizontal[i][0] = true
		w.horizontal[i][size] = true
	}
	return w
}

func mustInBounds(c models.Cell) {
	if !c.InBounds() {
		panic(fmt.Sprintf("algorithms: cell %s outside the maze", c))
	}
}

// slot - the grid entry holding the wall on side h of c
func (w *Walls) slot(h models.Heading, c models.Cell) *bool {
	mustInBounds(c)
	switch h {
	case models.North:
		return &w.horizontal[c.X][c.Y+1]
	case models.South:
		return &w.horizontal[c.X][c.Y]
	case models.East:
		return &w.vertical[c.X+1][c.Y]
	case models.West:
		return &w.vertical[c.X][c.Y]
	}
	panic(fmt.Sprintf("algorithms: invalid heading %d", int(h)))
}

// HasWall - reports whether a wall blocks leaving c in heading h
func (w *Walls) HasWall(h models.Heading, c models.Cell) bool {
	return *w.slot(h, c)
}

// PlaceWall - records a wall and forwards it to the display.
// Placing a wall that is already known does nothing.
func (w *Walls) PlaceWall(h models.Heading, c models.Cell) {
	s := w.slot(h, c)
	if *s {
		return
	}
	*s = true
	w.known++
	w.display.SetWall(c.X, c.Y, h.Marker())
}

// UpdateWalls - turns relative sensor readings at pose into placements
func (w *Walls) UpdateWalls(front, left, right bool, pose models.Pose) {
	if front {
		w.PlaceWall(pose.Heading, pose.Cell)
	}
	if left {
		w.PlaceWall(pose.Heading.Left(), pose.Cell)
	}
	if right {
		w.PlaceWall(pose.Heading.Right(), pose.Cell)
	}
}

// Known - number of interior walls discovered
func (w *Walls) Known() int {
	return w.known
}

// CellWalls - the four sides of c as currently known
func (w *Walls) CellWalls(c models.Cell) models.MazeCell {
	return models.MazeCell{
		NorthWall: w.HasWall(models.North, c),
		EastWall:  w.HasWall(models.East, c),
		SouthWall: w.HasWall(models.South, c),
		WestWall:  w.HasWall(models.West, c),
	}
}

// Maze - known walls as a Maze value, for rendering and snapshots
func (w *Walls) Maze(id string) *models.Maze {
	m := &models.Maze{ID: id}
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			m.Cells[x][y] = w.CellWalls(models.Cell{X: x, Y: y})
		}
	}
	return m
}
