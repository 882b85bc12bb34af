package services

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"mouse-backend/algorithms"
	"mouse-backend/models"
)

var (
	// ErrRunActive - the run is stepping on its own timer
	ErrRunActive = errors.New("run is already running")
	// ErrRunHalted - an earlier cycle failed; the run cannot continue
	ErrRunHalted = errors.New("run halted")
)

// SessionOptions - collaborators of a run
type SessionOptions struct {
	Display   algorithms.Display            // side channel for walls and potentials
	Broadcast func(models.WebSocketMessage) // pose and goal mode updates
	Record    func(models.StepLog)          // step log sink
}

// RunSession - one solver exploring one ground-truth maze with a
// simulated mouse
type RunSession struct {
	ID        string
	CreatedAt time.Time

	maze   *models.Maze
	sim    *MouseSimulator
	solver *algorithms.Solver

	broadcast func(models.WebSocketMessage)
	record    func(models.StepLog)

	centerReached int
	halted        error
	lastStep      time.Time

	// timer loop
	running  bool
	stopChan chan struct{}
	done     chan struct{}

	mu sync.Mutex
}

// StepResult - outcome of one control cycle
type StepResult struct {
	Step   int             `json:"step"`
	Action models.Action   `json:"action"`
	Pose   models.Pose     `json:"pose"`
	Mode   models.GoalMode `json:"mode"`
	Moves  int             `json:"moves"`
	Error  string          `json:"error,omitempty"`
}

// RunSnapshot - everything a viewer needs to draw a run
type RunSnapshot struct {
	ID            string                                            `json:"id"`
	MazeID        string                                            `json:"maze_id"`
	CreatedAt     time.Time                                         `json:"created_at"`
	Running       bool                                              `json:"running"`
	Halted        string                                            `json:"halted,omitempty"`
	Steps         int                                               `json:"steps"`
	Pose          models.Pose                                       `json:"pose"`
	Mode          models.GoalMode                                   `json:"mode"`
	CenterReached int                                               `json:"center_reached"`
	WallsKnown    int                                               `json:"walls_known"`
	CellsReached  int                                               `json:"cells_reached"`
	Traveled      int                                               `json:"traveled"`
	Potentials    [models.MazeSize][models.MazeSize]int             `json:"potentials"`
	KnownWalls    [models.MazeSize][models.MazeSize]models.MazeCell `json:"known_walls"`
	Simulator     SimulatorStats                                    `json:"simulator"`
	OptimalCost   int                                               `json:"optimal_cost"` // start to center on the full maze
	KnownCost     int                                               `json:"known_cost"`   // start to center on walls found so far
}

// NewRunSession - run starting at (0,0) facing north
func NewRunSession(id string, maze *models.Maze, opts SessionOptions) *RunSession {
	sim := NewMouseSimulator(maze)
	return &RunSession{
		ID:        id,
		CreatedAt: time.Now(),
		maze:      maze,
		sim:       sim,
		solver:    algorithms.NewSolver(sim, opts.Display),
		broadcast: opts.Broadcast,
		record:    opts.Record,
		lastStep:  time.Now(),
	}
}

// Step - one control cycle; refused while the timer loop runs
func (s *RunSession) Step() (StepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return StepResult{}, ErrRunActive
	}
	return s.step()
}

// StepN - up to count cycles, stopping at the first failure
func (s *RunSession) StepN(count int) ([]StepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil, ErrRunActive
	}
	results := make([]StepResult, 0, count)
	for i := 0; i < count; i++ {
		res, err := s.step()
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// step - caller holds mu
func (s *RunSession) step() (StepResult, error) {
	if s.halted != nil {
		return StepResult{}, fmt.Errorf("%w: %v", ErrRunHalted, s.halted)
	}

	before := s.solver.Mode()
	action, err := s.solver.Step()
	s.lastStep = time.Now()

	res := StepResult{
		Step:   s.solver.Steps(),
		Action: action,
		Pose:   s.solver.Pose(),
		Mode:   s.solver.Mode(),
		Moves:  s.solver.LastMoves(),
	}
	if err != nil {
		s.halted = err
		res.Error = err.Error()
		log.Printf("❌ run %s halted at step %d: %v", s.ID, res.Step, err)
	}

	if res.Mode != before {
		if res.Mode == models.ModeToStart {
			s.centerReached++
			log.Printf("🏁 run %s reached the center (step %d)", s.ID, res.Step)
		}
		s.emit(models.MessageTypeGoalMode, models.GoalModeData{RunID: s.ID, From: before, To: res.Mode})
	}
	s.emit(models.MessageTypePose, models.PoseData{
		RunID:  s.ID,
		Step:   res.Step,
		Pose:   res.Pose,
		Action: res.Action,
		Mode:   res.Mode,
	})

	if s.record != nil {
		s.record(s.stepLog(res))
	}
	return res, err
}

func (s *RunSession) stepLog(res StepResult) models.StepLog {
	return models.StepLog{
		CreatedAt:    time.Now(),
		RunID:        s.ID,
		Step:         res.Step,
		Action:       res.Action.String(),
		X:            res.Pose.X,
		Y:            res.Pose.Y,
		Heading:      res.Pose.Heading.String(),
		Mode:         res.Mode.String(),
		WallsKnown:   s.solver.Walls().Known(),
		CellsReached: s.solver.Field().Reached(),
		Potential:    s.solver.Field().At(res.Pose.Cell),
		Moves:        res.Moves,
		Error:        res.Error,
	}
}

func (s *RunSession) emit(msgType string, data interface{}) {
	if s.broadcast == nil {
		return
	}
	s.broadcast(models.NewMessage(msgType, data))
}

// Start - steps every interval until Stop or a failed cycle
func (s *RunSession) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("invalid step interval %v", interval)
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrRunActive
	}
	if s.halted != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrRunHalted, s.halted)
	}
	s.running = true
	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stopChan, s.done
	s.mu.Unlock()

	log.Printf("🚀 run %s started (every %v)", s.ID, interval)
	go s.runLoop(interval, stop, done)
	return nil
}

// runLoop - timer loop
func (s *RunSession) runLoop(interval time.Duration, stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			_, err := s.step()
			if err != nil {
				s.running = false
			}
			s.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

// Stop - halts the timer loop and waits for it to exit
func (s *RunSession) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop, done := s.stopChan, s.done
	s.mu.Unlock()

	close(stop)
	<-done
	log.Printf("🛑 run %s stopped", s.ID)
}

// IsRunning - whether the timer loop is active
func (s *RunSession) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// LastStep - time of the most recent cycle (creation time before any)
func (s *RunSession) LastStep() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastStep
}

// Maze - ground truth the run explores
func (s *RunSession) Maze() *models.Maze {
	return s.maze
}

// Snapshot - consistent view of the run
func (s *RunSession) Snapshot() RunSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	walls := s.solver.Walls()
	snap := RunSnapshot{
		ID:            s.ID,
		MazeID:        s.maze.ID,
		CreatedAt:     s.CreatedAt,
		Running:       s.running,
		Steps:         s.solver.Steps(),
		Pose:          s.solver.Pose(),
		Mode:          s.solver.Mode(),
		CenterReached: s.centerReached,
		WallsKnown:    walls.Known(),
		CellsReached:  s.solver.Field().Reached(),
		Traveled:      s.solver.Navigator().TraveledCount(),
		Potentials:    s.solver.Field().Grid(),
		KnownWalls:    walls.Maze(s.ID).Cells,
		Simulator:     s.sim.Stats(),
		OptimalCost:   OptimalCost(s.maze, models.StartCell, models.CenterCells),
		KnownCost:     OptimalCost(walls, models.StartCell, models.CenterCells),
	}
	if s.halted != nil {
		snap.Halted = s.halted.Error()
	}
	return snap
}
