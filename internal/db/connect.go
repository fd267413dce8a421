package db

import (
	"fmt"
	stdlog "log"
	"os"
	"time"

	"github.com/PayRam/go-search/internal/log"
	"github.com/PayRam/go-search/internal/migration"
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the sqlite database at dbFilePath and runs the migrations.
func InitDB(dbFilePath string, logSQL bool) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{Logger: NewLogger(logSQL)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// NewLogger returns gorm's logger, printing every statement when logSQL is set
// and only errors and slow queries otherwise.
func NewLogger(logSQL bool) logger.Interface {
	level := logger.Warn
	if logSQL {
		level = logger.Info
	}
	return logger.New(stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  true,
	})
}

func Migrate(db *gorm.DB) error {
	if err := migrate(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	log.Info("database initialised and migrations run successfully")
	return nil
}

func migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID:       migration.Initialise.ID,
			Migrate:  migration.Initialise.Migrate,
			Rollback: migration.Initialise.Rollback,
		},
	})

	return m.Migrate()
}
