package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mouse-backend/config"
	"mouse-backend/handlers"
	"mouse-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
)

func main() {
	cfg := config.Load()

	// step logs are optional: runs work without a database
	if err := services.InitDatabase(cfg); err != nil {
		log.Printf("⚠️ database unavailable, step logs are not persisted: %v", err)
	}
	defer services.CloseDatabase()

	services.InitLogging(cfg.LogFlushSize, cfg.LogFlushInterval)
	defer services.StopLogging()

	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	go handlers.Manager.Start()
	defer handlers.Manager.Stop()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Micromouse maze server is running.")
	})

	handlers.RegisterRoutes(app)

	// WebSocket
	app.Use("/websocket", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/websocket/web", websocket.New(handlers.HandleWebClientWebSocket))

	stopCleanup := make(chan struct{})
	go cleanupLoop(cfg.RunIdleTimeout, stopCleanup)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Println("🛑 shutting down")
		close(stopCleanup)
		for _, run := range handlers.Runs.List() {
			run.Stop()
		}
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Printf("⚠️ shutdown: %v", err)
		}
	}()

	addr := cfg.Addr()
	log.Printf("🚀 server: http://%s", addr)
	log.Printf("📡 WebSocket: ws://%s/websocket/web", addr)
	log.Printf("🐭 runs API: http://%s/api/runs", addr)
	log.Printf("💾 logs API: http://%s/api/logs/*", addr)
	if err := app.Listen(addr); err != nil {
		log.Printf("❌ server: %v", err)
	}
}

// cleanupLoop - removes idle runs every minute
func cleanupLoop(timeout time.Duration, stop <-chan struct{}) {
	if timeout <= 0 {
		return
	}
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			handlers.CleanupIdleRuns(timeout)
		}
	}
}
