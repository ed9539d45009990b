package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"todo-api/internal/domain/entity"
)

// Config describes the database connection.
type Config struct {
	Driver   string
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Schema   string
	SSLMode  string
	// Path is the sqlite file; ":memory:" keeps everything in process.
	Path string
}

// Open connects to the configured database and migrates the schema.
func Open(config Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch config.Driver {
	case "", "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s search_path=%s",
			config.Host, config.Username, config.Password, config.Database, config.Port, config.SSLMode, config.Schema)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(config.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if config.Driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// A single connection keeps ":memory:" databases shared and serializes writers.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables of every persisted entity.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.User{}, &entity.Todo{}, &entity.SubTask{}, &entity.FileCleanup{}); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}
