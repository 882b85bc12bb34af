package services

import (
	"errors"
	"fmt"
	"log"

	"mouse-backend/config"
	"mouse-backend/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNoDatabase - step log queries before InitDatabase
var ErrNoDatabase = errors.New("database not initialized")

// DB instance
var db *gorm.DB

// dialectorFor - picks the gorm driver from the configuration
func dialectorFor(cfg config.Config) (gorm.Dialector, string, error) {
	switch cfg.DBDriver {
	case "", "sqlite":
		return sqlite.Open(cfg.SQLitePath), "sqlite " + cfg.SQLitePath, nil

	case "mysql":
		if cfg.MySQLHost == "" || cfg.MySQLUser == "" || cfg.MySQLDatabase == "" {
			return nil, "", fmt.Errorf("MySQL settings incomplete: MYSQL_HOST, MYSQL_USER and MYSQL_DATABASE are required")
		}
		port := cfg.MySQLPort
		if port == 0 {
			port = 3306
		}
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.MySQLUser, cfg.MySQLPassword, cfg.MySQLHost, port, cfg.MySQLDatabase)
		return mysql.Open(dsn), fmt.Sprintf("mysql %s@%s:%d/%s", cfg.MySQLUser, cfg.MySQLHost, port, cfg.MySQLDatabase), nil
	}
	return nil, "", fmt.Errorf("unknown DB_DRIVER %q: expected sqlite or mysql", cfg.DBDriver)
}

// InitDatabase - opens the configured database and migrates the schema
func InitDatabase(cfg config.Config) error {
	dialector, desc, err := dialectorFor(cfg)
	if err != nil {
		return err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("DB connection failed: %w", err)
	}

	// AutoMigrate - creates the tables
	if err := conn.AutoMigrate(&models.StepLog{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	db = conn
	log.Printf("✅ database ready (%s)", desc)
	return nil
}

// GetDB - GORM instance, nil before InitDatabase
func GetDB() *gorm.DB {
	return db
}

// CloseDatabase - releases the connection pool
func CloseDatabase() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	db = nil
	return sqlDB.Close()
}
