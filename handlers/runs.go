package handlers

import (
	"errors"
	"log"
	"time"

	"mouse-backend/config"
	"mouse-backend/models"
	"mouse-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// maxStepsPerRequest - upper bound for POST /runs/:id/step
const maxStepsPerRequest = 10000

// Runs - global run registry
var Runs = NewRunManager()

type createRunRequest struct {
	Seed int64  `json:"seed"` // generator seed; 0 picks one from the clock
	Maze string `json:"maze"` // ASCII maze; overrides seed
}

type stepRequest struct {
	Count int `json:"count"`
}

type startRequest struct {
	IntervalMS int `json:"interval_ms"`
}

// runSummary - list entry
type runSummary struct {
	ID            string          `json:"id"`
	MazeID        string          `json:"maze_id"`
	CreatedAt     time.Time       `json:"created_at"`
	Running       bool            `json:"running"`
	Halted        string          `json:"halted,omitempty"`
	Steps         int             `json:"steps"`
	Pose          models.Pose     `json:"pose"`
	Mode          models.GoalMode `json:"mode"`
	CenterReached int             `json:"center_reached"`
}

// RegisterRoutes - run, log and health endpoints under /api
func RegisterRoutes(app fiber.Router) {
	api := app.Group("/api")

	api.Get("/health", HandleHealth)

	runs := api.Group("/runs")
	runs.Post("/", HandleCreateRun)
	runs.Get("/", HandleListRuns)
	runs.Get("/stats", HandleRunStats)
	runs.Get("/:id", HandleGetRun)
	runs.Get("/:id/maze", HandleGetRunMaze)
	runs.Post("/:id/step", HandleStepRun)
	runs.Post("/:id/start", HandleStartRun)
	runs.Post("/:id/stop", HandleStopRun)
	runs.Delete("/:id", HandleDeleteRun)

	logsAPI := api.Group("/logs")
	logsAPI.Get("/recent", HandleGetRecentLogs)
	logsAPI.Get("/range", HandleGetLogsByTimeRange)
	logsAPI.Get("/action", HandleGetLogsByAction)
	logsAPI.Get("/stats", HandleGetLogStats)
}

// HandleHealth - liveness
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "OK",
		"clients": Manager.ClientCount(),
		"runs":    Runs.Count(),
		"time":    time.Now().Format(time.RFC3339),
	})
}

// parseBody - optional JSON body
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(out)
}

// lookupRun - run from the :id param, or a 404 response
func lookupRun(c *fiber.Ctx) (*services.RunSession, error) {
	run, err := Runs.Get(c.Params("id"))
	if err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return run, nil
}

// runConflict - 409 for runs that cannot step right now
func runConflict(err error) bool {
	return errors.Is(err, services.ErrRunActive) || errors.Is(err, services.ErrRunHalted)
}

// HandleCreateRun - new simulated run on a generated or uploaded maze
func HandleCreateRun(c *fiber.Ctx) error {
	var req createRunRequest
	if err := parseBody(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	var maze *models.Maze
	if req.Maze != "" {
		parsed, err := services.ParseMaze(req.Maze)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		maze = parsed
	} else {
		maze = services.NewMazeGenerator(req.Seed).GenerateMaze()
	}

	id := uuid.NewString()
	run := services.NewRunSession(id, maze, services.SessionOptions{
		Display:   &WebDisplay{RunID: id, Hub: Manager},
		Broadcast: Manager.BroadcastMessage,
		Record:    services.AddStepLog,
	})
	if err := Runs.Register(run); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	Manager.BroadcastMessage(models.NewMessage(models.MessageTypeRunCreated, fiber.Map{
		"run_id":  id,
		"maze_id": maze.ID,
	}))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"id":      id,
		"maze_id": maze.ID,
		"maze":    maze.String(),
	})
}

// HandleListRuns - summaries of every run
func HandleListRuns(c *fiber.Ctx) error {
	runs := Runs.List()
	summaries := make([]runSummary, 0, len(runs))
	for _, run := range runs {
		snap := run.Snapshot()
		summaries = append(summaries, runSummary{
			ID:            snap.ID,
			MazeID:        snap.MazeID,
			CreatedAt:     snap.CreatedAt,
			Running:       snap.Running,
			Halted:        snap.Halted,
			Steps:         snap.Steps,
			Pose:          snap.Pose,
			Mode:          snap.Mode,
			CenterReached: snap.CenterReached,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(summaries),
		"runs":    summaries,
	})
}

// HandleRunStats - aggregate over all runs
func HandleRunStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"stats":   Runs.GetStatistics(),
	})
}

// HandleGetRun - full snapshot
func HandleGetRun(c *fiber.Ctx) error {
	run, err := lookupRun(c)
	if run == nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"run":     run.Snapshot(),
	})
}

// HandleGetRunMaze - ground-truth maze as ASCII
func HandleGetRunMaze(c *fiber.Ctx) error {
	run, err := lookupRun(c)
	if run == nil {
		return err
	}
	c.Type("txt", "utf-8")
	return c.SendString(run.Maze().String())
}

// HandleStepRun - executes count cycles (default 1)
func HandleStepRun(c *fiber.Ctx) error {
	run, err := lookupRun(c)
	if run == nil {
		return err
	}

	req := stepRequest{Count: 1}
	if err := parseBody(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Count < 1 || req.Count > maxStepsPerRequest {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "count must be between 1 and 10000",
		})
	}

	results, err := run.StepN(req.Count)
	if err != nil && runConflict(err) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resp := fiber.Map{
		"success": err == nil,
		"count":   len(results),
		"results": results,
		"run":     run.Snapshot(),
	}
	if err != nil {
		resp["error"] = err.Error()
	}
	return c.JSON(resp)
}

// HandleStartRun - steps on a timer until stopped
func HandleStartRun(c *fiber.Ctx) error {
	run, err := lookupRun(c)
	if run == nil {
		return err
	}

	var req startRequest
	if err := parseBody(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.IntervalMS < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "interval_ms must be positive",
		})
	}

	interval := time.Duration(req.IntervalMS) * time.Millisecond
	if interval == 0 {
		interval = config.Envs.StepInterval
	}
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	if err := run.Start(interval); err != nil {
		status := fiber.StatusBadRequest
		if runConflict(err) {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"interval_ms": interval.Milliseconds(),
	})
}

// HandleStopRun - halts the timer
func HandleStopRun(c *fiber.Ctx) error {
	run, err := lookupRun(c)
	if run == nil {
		return err
	}
	run.Stop()
	return c.JSON(fiber.Map{
		"success": true,
		"run":     run.Snapshot(),
	})
}

// HandleDeleteRun - stops and removes a run
func HandleDeleteRun(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := Runs.Remove(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	Manager.BroadcastMessage(models.NewMessage(models.MessageTypeRunRemoved, fiber.Map{
		"run_id": id,
	}))

	return c.JSON(fiber.Map{
		"success": true,
		"id":      id,
	})
}

// CleanupIdleRuns - periodic removal of abandoned runs
func CleanupIdleRuns(timeout time.Duration) {
	for _, id := range Runs.CleanupIdleRuns(timeout) {
		Manager.BroadcastMessage(models.NewMessage(models.MessageTypeRunRemoved, fiber.Map{
			"run_id": id,
		}))
	}
}

// logRequestError - server-side failures are logged before answering
func logRequestError(c *fiber.Ctx, err error) {
	log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
}
