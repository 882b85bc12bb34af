package services

import (
	"bufio"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"mouse-backend/models"

	"github.com/google/uuid"
)

// MazeGenerator builds random perfect mazes with an open center room
type MazeGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMazeGenerator creates a generator; the same seed gives the same mazes
func NewMazeGenerator(seed int64) *MazeGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MazeGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GenerateMaze creates a maze with Wilson's algorithm (uniform spanning
// tree over the 16x16 grid) and then knocks out the walls inside the 2x2
// center so the goal is a single room.
func (mg *MazeGenerator) GenerateMaze() *models.Maze {
	mg.mu.Lock()
	defer mg.mu.Unlock()

	m := models.NewClosedMaze(uuid.New().String())

	var inTree [models.MazeSize][models.MazeSize]bool
	inTree[mg.rng.Intn(models.MazeSize)][mg.rng.Intn(models.MazeSize)] = true
	remaining := models.MazeSize*models.MazeSize - 1

	for remaining > 0 {
		start := mg.randomCellOutside(&inTree)

		// random walk until the tree is hit; the last exit taken from
		// each cell wins, which erases loops
		var exits [models.MazeSize][models.MazeSize]models.Heading
		cell := start
		for !inTree[cell.X][cell.Y] {
			h := mg.randomExit(cell)
			exits[cell.X][cell.Y] = h
			cell = cell.Step(h, 1)
		}

		// carve the loop-erased path
		cell = start
		for !inTree[cell.X][cell.Y] {
			h := exits[cell.X][cell.Y]
			m.SetWall(h, cell, false)
			inTree[cell.X][cell.Y] = true
			remaining--
			cell = cell.Step(h, 1)
		}
	}

	openCenter(m)
	return m
}

func (mg *MazeGenerator) randomCellOutside(inTree *[models.MazeSize][models.MazeSize]bool) models.Cell {
	for {
		c := models.Cell{X: mg.rng.Intn(models.MazeSize), Y: mg.rng.Intn(models.MazeSize)}
		if !inTree[c.X][c.Y] {
			return c
		}
	}
}

func (mg *MazeGenerator) randomExit(c models.Cell) models.Heading {
	for {
		h := models.Heading(mg.rng.Intn(4))
		if c.Step(h, 1).InBounds() {
			return h
		}
	}
}

// openCenter removes the four walls between the center cells
func openCenter(m *models.Maze) {
	m.SetWall(models.East, models.Cell{X: 7, Y: 7}, false)
	m.SetWall(models.East, models.Cell{X: 7, Y: 8}, false)
	m.SetWall(models.North, models.Cell{X: 7, Y: 7}, false)
	m.SetWall(models.North, models.Cell{X: 8, Y: 7}, false)
}

// ParseMaze reads the ASCII format written by Maze.String: 2*16+1 lines,
// north row first, "+---+" edges and "|" side walls three columns apart.
func ParseMaze(text string) (*models.Maze, error) {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \r\t")
		if line == "" && len(lines) == 0 {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	const rows = 2*models.MazeSize + 1
	const cols = 4*models.MazeSize + 1
	if len(lines) != rows {
		return nil, fmt.Errorf("maze has %d lines, want %d", len(lines), rows)
	}
	for i, line := range lines {
		if len(line) > cols {
			return nil, fmt.Errorf("line %d is %d columns wide, want at most %d", i+1, len(line), cols)
		}
		lines[i] = line + strings.Repeat(" ", cols-len(line))
	}

	m := models.NewOpenMaze(uuid.New().String())
	for row := 0; row < models.MazeSize; row++ {
		y := models.MazeSize - 1 - row
		edge := lines[2*row]
		sides := lines[2*row+1]

		for x := 0; x < models.MazeSize; x++ {
			c := models.Cell{X: x, Y: y}
			if strings.Contains(edge[4*x+1:4*x+4], "-") {
				m.SetWall(models.North, c, true)
			}
			if sides[4*x+4] == '|' {
				m.SetWall(models.East, c, true)
			}
		}
	}
	return m, nil
}
