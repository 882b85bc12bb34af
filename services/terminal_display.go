package services

import (
	"sync"

	"mouse-backend/models"

	"github.com/gdamore/tcell/v2"
)

// Terminal layout: every cell is 4 columns by 2 rows, posts on the even
// rows and columns, north at the top.
const (
	cellCols = 4
	cellRows = 2
)

var (
	postStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	wallStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	mouseStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Reverse(true)
	infoStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// TerminalDisplay - algorithms.Display drawing into a tcell screen
type TerminalDisplay struct {
	screen tcell.Screen
	texts  [models.MazeSize][models.MazeSize]string
	mouse  *models.Pose

	mu sync.Mutex
}

// NewTerminalDisplay - clears the screen and draws the posts and boundary
func NewTerminalDisplay(screen tcell.Screen) *TerminalDisplay {
	d := &TerminalDisplay{screen: screen}
	d.drawGrid()
	return d
}

// screenPos - top-left post of cell (x, y)
func screenPos(x, y int) (col, row int) {
	return x * cellCols, (models.MazeSize - 1 - y) * cellRows
}

func (d *TerminalDisplay) drawGrid() {
	d.screen.Clear()
	for y := 0; y <= models.MazeSize; y++ {
		for x := 0; x <= models.MazeSize; x++ {
			d.screen.SetContent(x*cellCols, y*cellRows, '+', nil, postStyle)
		}
	}
	for i := 0; i < models.MazeSize; i++ {
		d.drawWall(i, models.MazeSize-1, models.North)
		d.drawWall(i, 0, models.South)
		d.drawWall(0, i, models.West)
		d.drawWall(models.MazeSize-1, i, models.East)
	}
}

func (d *TerminalDisplay) drawWall(x, y int, h models.Heading) {
	col, row := screenPos(x, y)
	switch h {
	case models.North:
		for i := 1; i < cellCols; i++ {
			d.screen.SetContent(col+i, row, '-', nil, wallStyle)
		}
	case models.South:
		for i := 1; i < cellCols; i++ {
			d.screen.SetContent(col+i, row+cellRows, '-', nil, wallStyle)
		}
	case models.West:
		d.screen.SetContent(col, row+1, '|', nil, wallStyle)
	case models.East:
		d.screen.SetContent(col+cellCols, row+1, '|', nil, wallStyle)
	}
}

// drawInterior - text of a cell, or the mouse if it stands there
func (d *TerminalDisplay) drawInterior(x, y int) {
	col, row := screenPos(x, y)
	runes := []rune(d.texts[x][y])
	style := textStyle
	if d.mouse != nil && d.mouse.X == x && d.mouse.Y == y {
		runes = []rune{' ', mouseGlyph(d.mouse.Heading), ' '}
		style = mouseStyle
	}
	for i := 0; i < cellCols-1; i++ {
		r := ' '
		if i < len(runes) {
			r = runes[i]
		}
		d.screen.SetContent(col+1+i, row+1, r, nil, style)
	}
}

func mouseGlyph(h models.Heading) rune {
	switch h {
	case models.North:
		return '^'
	case models.East:
		return '>'
	case models.South:
		return 'v'
	default:
		return '<'
	}
}

// SetWall - draws a discovered wall; direction is n, e, s or w
func (d *TerminalDisplay) SetWall(x, y int, direction byte) {
	h, err := models.ParseHeading(string(direction))
	if err != nil || !(models.Cell{X: x, Y: y}).InBounds() {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drawWall(x, y, h)
}

// SetText - overlay of up to three characters in the cell
func (d *TerminalDisplay) SetText(x, y int, text string) {
	if !(models.Cell{X: x, Y: y}).InBounds() {
		return
	}
	if r := []rune(text); len(r) > cellCols-1 {
		text = string(r[:cellCols-1])
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.texts[x][y] = text
	d.drawInterior(x, y)
}

// DrawMouse - moves the mouse marker to pose
func (d *TerminalDisplay) DrawMouse(pose models.Pose) {
	d.mu.Lock()
	defer d.mu.Unlock()

	prev := d.mouse
	d.mouse = &pose
	if prev != nil {
		d.drawInterior(prev.X, prev.Y)
	}
	d.drawInterior(pose.X, pose.Y)
}

// DrawStatus - one line of text under the maze
func (d *TerminalDisplay) DrawStatus(line int, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	row := models.MazeSize*cellRows + 1 + line
	width, _ := d.screen.Size()
	col := 0
	for _, r := range text {
		if col >= width {
			break
		}
		d.screen.SetContent(col, row, r, nil, infoStyle)
		col++
	}
	for ; col < width; col++ {
		d.screen.SetContent(col, row, ' ', nil, infoStyle)
	}
}

// Show - pushes pending changes to the terminal
func (d *TerminalDisplay) Show() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.screen.Show()
}
