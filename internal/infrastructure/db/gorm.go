package db

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"nbfc-loan-ledger/internal/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the gorm driver configured by DB_DRIVER.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		return mysql.Open(cfg.MySQLDSN()), nil
	case config.DriverSQLite:
		// foreign keys + a busy timeout so the single-writer lock waits instead of failing
		return sqlite.Open(cfg.SQLitePath + "?_foreign_keys=1&_busy_timeout=5000"), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
}

func OpenGorm(cfg *config.Config) (*gorm.DB, error) {
	dial, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	return OpenGormWithDialector(dial, LogLevel(cfg.LogLevel))
}

// OpenGormWithDialector opens a gorm DB on dial, applies pool limits and
// pings it. An optional log level overrides the default (warn).
func OpenGormWithDialector(dial gorm.Dialector, level ...logger.LogLevel) (*gorm.DB, error) {
	lvl := logger.Warn
	if len(level) > 0 {
		lvl = level[0]
	}
	db, err := gorm.Open(dial, &gorm.Config{
		Logger:               newLogger(log.New(os.Stdout, "\r\n", log.LstdFlags), lvl),
		DisableAutomaticPing: true,
		TranslateError:       true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	slog.Info("gorm: connected", "dialect", dial.Name())
	return db, nil
}

// newLogger is gorm's default logger minus "record not found", which the
// lookups by loan number expect on every create.
func newLogger(w logger.Writer, lvl logger.LogLevel) logger.Interface {
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
		Colorful:                  true,
	})
}

// LogLevel maps LOG_LEVEL onto gorm's logger; SQL statements are only
// traced at debug.
func LogLevel(s string) logger.LogLevel {
	switch s {
	case "debug":
		return logger.Info
	case "error":
		return logger.Error
	default:
		return logger.Warn
	}
}
