package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP   string // Host IP for the server
	RESTPort int    // Port for the REST API

	DBDriver      string // sqlite or mysql
	SQLitePath    string // Database file for the sqlite driver
	MySQLHost     string
	MySQLPort     int
	MySQLUser     string
	MySQLPassword string
	MySQLDatabase string

	LogFlushSize     int           // Step logs buffered before a write
	LogFlushInterval time.Duration // Longest a step log waits in the buffer

	StepInterval   time.Duration // Default tick of a running simulation
	RunIdleTimeout time.Duration // Runs untouched this long are removed
	CORSOrigins    string        // Comma separated allowed origins, "*" for all

	SerialPort string // Device of a physical mouse, empty when none
	SerialBaud int
}

// Envs holds the configuration after Load.
var Envs Config

// Load reads .env (if present) and the environment into Envs.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("ℹ️ .env file not found or could not be loaded: %v", err)
	}
	Envs = fromEnv()
	return Envs
}

// fromEnv populates a Config from environment variables.
func fromEnv() Config {
	return Config{
		HostIP:   getEnvWithDefault("HOST_IP", ""),
		RESTPort: getEnvAsInt("REST_PORT", 3000),

		DBDriver:      strings.ToLower(getEnvWithDefault("DB_DRIVER", "sqlite")),
		SQLitePath:    getEnvWithDefault("SQLITE_PATH", "mouse.db"),
		MySQLHost:     getEnvWithDefault("MYSQL_HOST", ""),
		MySQLPort:     getEnvAsInt("MYSQL_PORT", 3306),
		MySQLUser:     getEnvWithDefault("MYSQL_USER", ""),
		MySQLPassword: getEnvWithDefault("MYSQL_PASSWORD", ""),
		MySQLDatabase: getEnvWithDefault("MYSQL_DATABASE", ""),

		LogFlushSize:     getEnvAsInt("LOG_FLUSH_SIZE", 50),
		LogFlushInterval: getEnvAsDuration("LOG_FLUSH_INTERVAL", 10*time.Second),

		StepInterval:   getEnvAsDuration("STEP_INTERVAL", 100*time.Millisecond),
		RunIdleTimeout: getEnvAsDuration("RUN_IDLE_TIMEOUT", 10*time.Minute),
		CORSOrigins:    getEnvWithDefault("CORS_ORIGINS", "*"),

		SerialPort: getEnvWithDefault("SERIAL_PORT", ""),
		SerialBaud: getEnvAsInt("SERIAL_BAUD", 115200),
	}
}

// Addr is the listen address for the REST server.
func (c Config) Addr() string {
	return c.HostIP + ":" + strconv.Itoa(c.RESTPort)
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set or empty.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable, falling back to
// the default when unset or malformed.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ environment variable %s must be an integer, using %d: %v", key, defaultValue, err)
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go durations ("250ms") or plain milliseconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	if ms, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("⚠️ environment variable %s must be a duration, using %v: %v", key, defaultValue, err)
		return defaultValue
	}
	return value
}
