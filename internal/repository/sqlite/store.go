// Package sqlite is the default storage backend: a single-file SQLite
// database accessed through GORM.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"alcyxob/fitlocal/internal/repository"

	log "github.com/sirupsen/logrus"
	sqlitedriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormLogger routes GORM output to logrus.
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Info {
		log.Infof(msg, data...)
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Warn {
		log.Warnf(msg, data...)
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Error {
		log.Errorf(msg, data...)
	}
}

// Trace logs failed and slow queries; every query when the level is Info.
func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := log.Fields{"duration": elapsed, "sql": sql, "rows": rows}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		log.WithFields(fields).WithError(err).Error("gorm query error")
	case elapsed > slowQueryThreshold && l.level >= logger.Warn:
		log.WithFields(fields).Warn("slow query")
	case l.level >= logger.Info:
		log.WithFields(fields).Debug("gorm query")
	}
}

func newGormLogger() logger.Interface {
	if log.IsLevelEnabled(log.DebugLevel) {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Warn)
}

// Store owns the database handle shared by the repositories.
type Store struct {
	db *gorm.DB
}

// NewStore opens (creating if needed) the database at dbPath and migrates the schema.
func NewStore(dbPath string) (*Store, error) {
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlitedriver.Open(dbPath), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger:  newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// One connection: SQLite serializes writers and the PRAGMAs below are per connection.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")
	db.Exec("PRAGMA foreign_keys=ON")

	store := &Store{db: db}
	if err := store.Migrate(); err != nil {
		return nil, err
	}
	return store, nil
}

// Migrate creates or updates every table.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(
		&Profile{},
		&Plan{},
		&Phase{},
		&PlannedWorkout{},
		&PlannedExercise{},
		&WorkoutSession{},
		&LoggedSet{},
		&FitnessTest{},
		&Review{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Repositories returns the repositories backed by this store.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Profiles:     &profileRepository{db: s.db},
		Plans:        &planRepository{db: s.db},
		Sessions:     &sessionRepository{db: s.db},
		FitnessTests: &fitnessTestRepository{db: s.db},
		Reviews:      &reviewRepository{db: s.db},
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return err
}
