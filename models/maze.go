package models

import (
	"strings"
	"time"
)

// MazeCell - ground-truth walls around one cell
type MazeCell struct {
	NorthWall bool `json:"north"`
	EastWall  bool `json:"east"`
	SouthWall bool `json:"south"`
	WestWall  bool `json:"west"`
}

// Maze - complete wall layout the simulator drives the mouse through.
// Cells is indexed [x][y]; y grows northward.
type Maze struct {
	ID        string                       `json:"id"`
	Cells     [MazeSize][MazeSize]MazeCell `json:"-"`
	CreatedAt time.Time                    `json:"created_at"`
}

// NewClosedMaze - every wall standing, used as the generator's starting point
func NewClosedMaze(id string) *Maze {
	m := &Maze{ID: id, CreatedAt: time.Now()}
	for x := 0; x < MazeSize; x++ {
		for y := 0; y < MazeSize; y++ {
			m.Cells[x][y] = MazeCell{NorthWall: true, EastWall: true, SouthWall: true, WestWall: true}
		}
	}
	return m
}

// NewOpenMaze - only the outer boundary
func NewOpenMaze(id string) *Maze {
	m := &Maze{ID: id, CreatedAt: time.Now()}
	for i := 0; i < MazeSize; i++ {
		m.Cells[i][0].SouthWall = true
		m.Cells[i][MazeSize-1].NorthWall = true
		m.Cells[0][i].WestWall = true
		m.Cells[MazeSize-1][i].EastWall = true
	}
	return m
}

// HasWall - reports whether a wall blocks leaving c in heading h
func (m *Maze) HasWall(h Heading, c Cell) bool {
	cell := m.Cells[c.X][c.Y]
	switch h {
	case North:
		return cell.NorthWall
	case East:
		return cell.EastWall
	case South:
		return cell.SouthWall
	case West:
		return cell.WestWall
	}
	h.mustValid()
	return true
}

// SetWall - sets or clears the wall on side h of c and the matching side
// of the neighbour. Boundary walls cannot be cleared.
func (m *Maze) SetWall(h Heading, c Cell, present bool) {
	n := c.Step(h, 1)
	if !n.InBounds() {
		present = true
	}
	m.setSide(h, c, present)
	if n.InBounds() {
		m.setSide(h.Opposite(), n, present)
	}
}

func (m *Maze) setSide(h Heading, c Cell, present bool) {
	cell := &m.Cells[c.X][c.Y]
	switch h {
	case North:
		cell.NorthWall = present
	case East:
		cell.EastWall = present
	case South:
		cell.SouthWall = present
	case West:
		cell.WestWall = present
	default:
		h.mustValid()
	}
}

// String - ASCII rendering with north on top, the format ParseMaze reads
func (m *Maze) String() string {
	var b strings.Builder

	for y := MazeSize - 1; y >= 0; y-- {
		// north edge of this row
		b.WriteString("+")
		for x := 0; x < MazeSize; x++ {
			if m.Cells[x][y].NorthWall {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")

		if m.Cells[0][y].WestWall {
			b.WriteString("|")
		} else {
			b.WriteString(" ")
		}
		for x := 0; x < MazeSize; x++ {
			b.WriteString("   ")
			if m.Cells[x][y].EastWall {
				b.WriteString("|")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("+")
	for x := 0; x < MazeSize; x++ {
		if m.Cells[x][0].SouthWall {
			b.WriteString("---+")
		} else {
			b.WriteString("   +")
		}
	}
	b.WriteString("\n")
	return b.String()
}
