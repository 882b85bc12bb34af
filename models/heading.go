package models

import "fmt"

// MazeSize - cells per side of a competition maze
const MazeSize = 16

// ========================================
// Heading
// ========================================

// Heading - one of the four compass directions the mouse can face.
// Values are in clockwise order so a right turn is the next value.
type Heading int

const (
	North Heading = iota
	East
	South
	West
)

// ScanOrder - fixed order used by the flood fill and the navigator
var ScanOrder = [4]Heading{North, West, South, East}

// Valid - reports whether h is one of the four headings
func (h Heading) Valid() bool {
	return h >= North && h <= West
}

// mustValid - headings outside the closed set are programming errors
func (h Heading) mustValid() {
	if !h.Valid() {
		panic(fmt.Sprintf("models: invalid heading %d", int(h)))
	}
}

// Right - heading after a 90° clockwise turn
func (h Heading) Right() Heading {
	h.mustValid()
	return (h + 1) % 4
}

// Left - heading after a 90° counter-clockwise turn
func (h Heading) Left() Heading {
	h.mustValid()
	return (h + 3) % 4
}

// Opposite - heading after a U-turn
func (h Heading) Opposite() Heading {
	h.mustValid()
	return (h + 2) % 4
}

// Delta - cell offset of one step in this heading (north is +y)
func (h Heading) Delta() (dx, dy int) {
	switch h {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	case West:
		return -1, 0
	}
	panic(fmt.Sprintf("models: invalid heading %d", int(h)))
}

// Marker - single letter direction used by the mms setWall command
func (h Heading) Marker() byte {
	switch h {
	case North:
		return 'n'
	case East:
		return 'e'
	case South:
		return 's'
	case West:
		return 'w'
	}
	panic(fmt.Sprintf("models: invalid heading %d", int(h)))
}

func (h Heading) String() string {
	switch h {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("heading(%d)", int(h))
	}
}

// ParseHeading - accepts the String() form or the single letter marker
func ParseHeading(s string) (Heading, error) {
	switch s {
	case "north", "n", "N":
		return North, nil
	case "east", "e", "E":
		return East, nil
	case "south", "s", "S":
		return South, nil
	case "west", "w", "W":
		return West, nil
	}
	return North, fmt.Errorf("unknown heading %q", s)
}

// MarshalText - headings travel as their names in JSON
func (h Heading) MarshalText() ([]byte, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("invalid heading %d", int(h))
	}
	return []byte(h.String()), nil
}

// UnmarshalText - inverse of MarshalText
func (h *Heading) UnmarshalText(b []byte) error {
	parsed, err := ParseHeading(string(b))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ========================================
// Cell / Pose
// ========================================

// Cell - maze cell coordinate, (0,0) is the start corner
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// InBounds - reports whether the cell lies inside the maze
func (c Cell) InBounds() bool {
	return c.X >= 0 && c.X < MazeSize && c.Y >= 0 && c.Y < MazeSize
}

// Step - neighbour n cells away in heading h
func (c Cell) Step(h Heading, n int) Cell {
	dx, dy := h.Delta()
	return Cell{X: c.X + dx*n, Y: c.Y + dy*n}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// StartCell - where every run begins
var StartCell = Cell{X: 0, Y: 0}

// CenterCells - the 2x2 goal room in the middle of the maze
var CenterCells = []Cell{{X: 7, Y: 7}, {X: 7, Y: 8}, {X: 8, Y: 7}, {X: 8, Y: 8}}

// IsCenter - reports whether c is one of the center cells
func IsCenter(c Cell) bool {
	return c.X >= 7 && c.X <= 8 && c.Y >= 7 && c.Y <= 8
}

// Pose - where the mouse is and which way it faces
type Pose struct {
	Cell
	Heading Heading `json:"heading"`
}

// StartPose - (0,0) facing north
func StartPose() Pose {
	return Pose{Cell: StartCell, Heading: North}
}

func (p Pose) String() string {
	return fmt.Sprintf("(%d,%d,%s)", p.X, p.Y, p.Heading)
}
