package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/taskmaster/internal/models"
)

// Store is the SQLite-backed persistence layer for sessions, tasks and leaves.
type Store struct {
	db *gorm.DB
}

// Options controls how the database is opened.
type Options struct {
	// Path of the SQLite file; empty means ~/.taskmaster/taskmaster.db.
	Path string
	// Verbose logs every SQL statement.
	Verbose bool
}

// Open sets up the database connection and runs migrations
func Open(opts Options) (*Store, error) {
	dbPath := opts.Path
	if dbPath == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get database path: %w", err)
		}
		dbPath = p
	}

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create taskmaster directory: %w", err)
	}

	logMode := logger.Silent // Quiet by default
	if opts.Verbose {
		logMode = logger.Info
	}

	gdb, err := gorm.Open(sqlite.Open(dbPath+"?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: gdb}
	if err := s.runMigrations(); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// DefaultPath returns the path to the SQLite database file
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".taskmaster", "taskmaster.db"), nil
}

// runMigrations creates/updates the database schema
func (s *Store) runMigrations() error {
	return s.db.AutoMigrate(
		&models.Session{},
		&models.Slot{},
		&models.Task{},
		&models.Leave{},
	)
}

// Close closes the database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
