// Command tui watches the solver explore a generated maze in the terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"mouse-backend/algorithms"
	"mouse-backend/config"
	"mouse-backend/models"
	"mouse-backend/services"
)

type viewer struct {
	screen  tcell.Screen
	display *services.TerminalDisplay
	run     *services.RunSession
	paused  bool
	lastErr error
}

func main() {
	cfg := config.Load()

	seed := flag.Int64("seed", 0, "maze generator seed (0: from the clock)")
	mazeFile := flag.String("maze", "", "ASCII maze file instead of a generated one")
	interval := flag.Duration("interval", cfg.StepInterval, "time between control cycles")
	logFile := flag.String("log", "", "write logs to this file (default: discarded)")
	flag.Parse()

	// the screen owns the terminal
	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}
	algorithms.SetLogger(log.Printf)

	maze, err := loadMaze(*mazeFile, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	v, err := newViewer(maze)
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	defer v.screen.Fini()

	if *interval <= 0 {
		*interval = 100 * time.Millisecond
	}
	v.loop(*interval)
}

func loadMaze(path string, seed int64) (*models.Maze, error) {
	if path == "" {
		return services.NewMazeGenerator(seed).GenerateMaze(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return services.ParseMaze(string(data))
}

func newViewer(maze *models.Maze) (*viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	display := services.NewTerminalDisplay(screen)
	run := services.NewRunSession("tui", maze, services.SessionOptions{Display: display})
	return &viewer{screen: screen, display: display, run: run}, nil
}

func (v *viewer) loop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	v.redraw()
	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}
			v.redraw()

		case <-ticker.C:
			if v.paused || v.lastErr != nil {
				continue
			}
			if _, err := v.run.Step(); err != nil {
				v.lastErr = err
			}
			v.redraw()
		}
	}
}

// handleInput - false quits
func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.paused = !v.paused
			}
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) redraw() {
	snap := v.run.Snapshot()
	v.display.DrawMouse(snap.Pose)
	v.display.DrawStatus(0, fmt.Sprintf("step %d  %s  mode %s  center reached %d",
		snap.Steps, snap.Pose, snap.Mode, snap.CenterReached))
	v.display.DrawStatus(1, fmt.Sprintf("walls known %d  cells traveled %d  best known %d  optimal %d",
		snap.WallsKnown, snap.Traveled, snap.KnownCost, snap.OptimalCost))

	status := "space: pause  q: quit"
	switch {
	case v.lastErr != nil:
		status = "halted: " + v.lastErr.Error()
	case v.paused:
		status = "paused  space: resume  q: quit"
	}
	v.display.DrawStatus(2, status)
	v.display.Show()
}
