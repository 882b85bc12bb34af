package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mouse-backend/algorithms"
	"mouse-backend/services"
)

var hubOnce sync.Once

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	algorithms.SetLogger(nil)
	hubOnce.Do(func() { go Manager.Start() })

	app := fiber.New()
	RegisterRoutes(app)
	return app
}

// call - sends a request and decodes the JSON (or raw text) response
func call(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded, string(raw)
}

func createRun(t *testing.T, app *fiber.App, body string) string {
	t.Helper()
	status, resp, _ := call(t, app, http.MethodPost, "/api/runs", body)
	require.Equal(t, http.StatusCreated, status)
	id, ok := resp["id"].(string)
	require.True(t, ok)
	t.Cleanup(func() { _ = Runs.Remove(id) })
	return id
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	status, resp, _ := call(t, app, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", resp["status"])
}

func TestRunLifecycle(t *testing.T) {
	app := newTestApp(t)
	id := createRun(t, app, `{"seed": 42}`)

	status, resp, _ := call(t, app, http.MethodGet, "/api/runs/"+id, "")
	require.Equal(t, http.StatusOK, status)
	run := resp["run"].(map[string]interface{})
	assert.Equal(t, id, run["id"])
	assert.Equal(t, float64(0), run["steps"])

	status, resp, _ = call(t, app, http.MethodPost, "/api/runs/"+id+"/step", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), resp["count"])

	status, resp, _ = call(t, app, http.MethodPost, "/api/runs/"+id+"/step", `{"count": 25}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, float64(25), resp["count"])
	run = resp["run"].(map[string]interface{})
	assert.Equal(t, float64(26), run["steps"])

	status, resp, _ = call(t, app, http.MethodGet, "/api/runs", "")
	require.Equal(t, http.StatusOK, status)
	assert.GreaterOrEqual(t, resp["count"], float64(1))

	status, _, text := call(t, app, http.MethodGet, "/api/runs/"+id+"/maze", "")
	require.Equal(t, http.StatusOK, status)
	maze, err := services.ParseMaze(text)
	require.NoError(t, err)
	assert.Equal(t, text, maze.String())

	status, _, _ = call(t, app, http.MethodDelete, "/api/runs/"+id, "")
	assert.Equal(t, http.StatusOK, status)
	status, _, _ = call(t, app, http.MethodGet, "/api/runs/"+id, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRunStartStop(t *testing.T) {
	app := newTestApp(t)
	id := createRun(t, app, "")

	status, resp, _ := call(t, app, http.MethodPost, "/api/runs/"+id+"/start", `{"interval_ms": 5}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(5), resp["interval_ms"])

	status, _, _ = call(t, app, http.MethodPost, "/api/runs/"+id+"/start", "")
	assert.Equal(t, http.StatusConflict, status)
	status, _, _ = call(t, app, http.MethodPost, "/api/runs/"+id+"/step", "")
	assert.Equal(t, http.StatusConflict, status)

	status, resp, _ = call(t, app, http.MethodPost, "/api/runs/"+id+"/stop", "")
	require.Equal(t, http.StatusOK, status)
	run := resp["run"].(map[string]interface{})
	assert.Equal(t, false, run["running"])
}

func TestRunUploadedMaze(t *testing.T) {
	app := newTestApp(t)
	maze := services.NewMazeGenerator(9).GenerateMaze()
	body, err := json.Marshal(map[string]string{"maze": maze.String()})
	require.NoError(t, err)

	id := createRun(t, app, string(body))
	_, _, text := call(t, app, http.MethodGet, "/api/runs/"+id+"/maze", "")
	assert.Equal(t, maze.String(), text)
}

func TestRunRequestErrors(t *testing.T) {
	app := newTestApp(t)
	id := createRun(t, app, "")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"bad maze", http.MethodPost, "/api/runs", `{"maze": "not a maze"}`, http.StatusBadRequest},
		{"bad json", http.MethodPost, "/api/runs", `{`, http.StatusBadRequest},
		{"unknown run", http.MethodGet, "/api/runs/nope", "", http.StatusNotFound},
		{"unknown maze", http.MethodGet, "/api/runs/nope/maze", "", http.StatusNotFound},
		{"step unknown", http.MethodPost, "/api/runs/nope/step", "", http.StatusNotFound},
		{"zero count", http.MethodPost, "/api/runs/" + id + "/step", `{"count": 0}`, http.StatusBadRequest},
		{"huge count", http.MethodPost, "/api/runs/" + id + "/step", `{"count": 100000}`, http.StatusBadRequest},
		{"negative interval", http.MethodPost, "/api/runs/" + id + "/start", `{"interval_ms": -1}`, http.StatusBadRequest},
		{"delete unknown", http.MethodDelete, "/api/runs/nope", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp, _ := call(t, app, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, status)
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestLogsWithoutDatabase(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, services.CloseDatabase())

	status, _, _ := call(t, app, http.MethodGet, "/api/logs/recent", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	status, _, _ = call(t, app, http.MethodGet, "/api/logs/stats?hours=1", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	status, _, _ = call(t, app, http.MethodGet, "/api/logs/action", "")
	assert.Equal(t, http.StatusBadRequest, status)
	status, _, _ = call(t, app, http.MethodGet, "/api/logs/range?start=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, status)
}
