package handlers

import (
	"errors"
	"strconv"
	"time"

	"mouse-backend/services"

	"github.com/gofiber/fiber/v2"
)

// logsError - 503 when no database is configured, 500 otherwise
func logsError(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, services.ErrNoDatabase) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Step logs are not persisted (no database)",
		})
	}
	logRequestError(c, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": message,
	})
}

// queryLimit - positive ?limit=, default 100
func queryLimit(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}
	return limit
}

// HandleGetRecentLogs - newest step logs
func HandleGetRecentLogs(c *fiber.Ctx) error {
	runID := c.Query("run_id") // empty: every run
	limit := queryLimit(c)

	logs, err := services.GetRecentStepLogs(runID, limit)
	if err != nil {
		return logsError(c, err, "Failed to fetch logs")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(logs),
		"logs":    logs,
	})
}

// HandleGetLogsByTimeRange - step logs between start and end
func HandleGetLogsByTimeRange(c *fiber.Ctx) error {
	runID := c.Query("run_id")
	startStr := c.Query("start") // RFC3339 format
	endStr := c.Query("end")     // RFC3339 format

	var start time.Time
	if startStr != "" {
		parsed, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid start time format (use RFC3339)",
			})
		}
		start = parsed
	} else {
		// default: last 24 hours
		start = time.Now().Add(-24 * time.Hour)
	}

	var end time.Time
	if endStr != "" {
		parsed, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid end time format (use RFC3339)",
			})
		}
		end = parsed
	} else {
		end = time.Now()
	}

	logs, err := services.GetStepLogsByTimeRange(runID, start, end, queryLimit(c))
	if err != nil {
		return logsError(c, err, "Failed to fetch logs")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(logs),
		"time_range": fiber.Map{
			"start": start.Format(time.RFC3339),
			"end":   end.Format(time.RFC3339),
		},
		"logs": logs,
	})
}

// HandleGetLogsByAction - step logs ending in one action (forward, left, right)
func HandleGetLogsByAction(c *fiber.Ctx) error {
	runID := c.Query("run_id")
	action := c.Query("action")

	if action == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "action parameter is required",
		})
	}

	logs, err := services.GetStepLogsByAction(runID, action, queryLimit(c))
	if err != nil {
		return logsError(c, err, "Failed to fetch logs")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(logs),
		"action":  action,
		"logs":    logs,
	})
}

// HandleGetLogStats - step counts over the last hours
func HandleGetLogStats(c *fiber.Ctx) error {
	runID := c.Query("run_id")
	hours, err := strconv.Atoi(c.Query("hours", "24"))
	if err != nil || hours <= 0 {
		hours = 24
	}

	stats, err := services.GetStepLogStats(runID, hours)
	if err != nil {
		return logsError(c, err, "Failed to fetch stats")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats,
	})
}
