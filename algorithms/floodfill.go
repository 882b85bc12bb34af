package algorithms

import (
	"strconv"

	"mouse-backend/models"
)

// Flood fill costs
const (
	TileCost  = 10 // one cell straight ahead
	TurnCost  = 5  // extra when the path changes heading
	Unreached = -1 // not reached by the current pass
)

// floodEntry - a settled cell and the heading it was entered with
type floodEntry struct {
	cell    models.Cell
	heading models.Heading
}

// FloodField - cost-to-goal potential for every cell.
//
// Recompute is a breadth expansion with a FIFO, not Dijkstra: a cell keeps
// the first cost it is given during a pass even if a cheaper path reaches it
// later.
type FloodField struct {
	cells   [size][size]int
	queue   *Queue[floodEntry]
	display Display
	shown   [size][size]int // last value sent to the display
}

// NewFloodField - field with every cell unreached
func NewFloodField(display Display) *FloodField {
	if display == nil {
		display = noopDisplay{}
	}
	f := &FloodField{
		queue:   NewQueue[floodEntry](),
		display: display,
	}
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			f.cells[x][y] = Unreached
			f.shown[x][y] = Unreached
		}
	}
	return f
}

// Recompute - rebuilds the whole field from scratch for the given goals
func (f *FloodField) Recompute(walls *Walls, goals []models.Cell) {
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			f.cells[x][y] = Unreached
		}
	}
	for _, g := range goals {
		mustInBounds(g)
		f.cells[g.X][g.Y] = 0
	}

	// four seeds per goal: one per heading, so leaving a goal never
	// costs a turn whichever way the path goes
	f.queue.Clear()
	for _, g := range goals {
		for _, h := range models.ScanOrder {
			f.queue.Push(floodEntry{cell: g, heading: h})
		}
	}

	peak := f.queue.Len()
	for !f.queue.IsEmpty() {
		cur := f.queue.Pop()
		base := f.cells[cur.cell.X][cur.cell.Y]

		for _, d := range models.ScanOrder {
			// a goal seed only leaves along its own heading
			if base == 0 && d != cur.heading {
				continue
			}
			if walls.HasWall(d, cur.cell) {
				continue
			}

			next := cur.cell.Step(d, 1)
			if f.cells[next.X][next.Y] != Unreached {
				continue
			}

			cost := base + TileCost
			if d != cur.heading {
				cost += TurnCost
			}
			f.cells[next.X][next.Y] = cost
			f.queue.Push(floodEntry{cell: next, heading: d})
		}

		if n := f.queue.Len(); n > peak {
			peak = n
		}
	}

	Logf("flood fill: %d cells reached, peak queue %d", f.Reached(), peak)
	f.publish()
}

// publish - sends changed potentials to the display overlay
func (f *FloodField) publish() {
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			v := f.cells[x][y]
			if v == Unreached || v == f.shown[x][y] {
				continue
			}
			f.display.SetText(x, y, strconv.Itoa(v))
			f.shown[x][y] = v
		}
	}
}

// At - potential of c, Unreached if the last pass never got there
func (f *FloodField) At(c models.Cell) int {
	mustInBounds(c)
	return f.cells[c.X][c.Y]
}

// Reached - number of cells with a potential
func (f *FloodField) Reached() int {
	n := 0
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			if f.cells[x][y] != Unreached {
				n++
			}
		}
	}
	return n
}

// Grid - copy of the potentials indexed [x][y]
func (f *FloodField) Grid() [size][size]int {
	return f.cells
}
