package configs

import (
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenConnection(cfg DBConfig) (*gorm.DB, error) {
	dsn := cfg.DSN()

	var lastErr error
	for i := 0; i < cfg.MaxRetries; i++ {
		slog.Info("Attempting to connect to database", "attempt", i+1, "max", cfg.MaxRetries, "host", cfg.Host, "name", cfg.Name)
		db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Warn),
			TranslateError: true,
		})
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					slog.Info("Database connection successful")
					return db, nil
				}
			}
			lastErr = pingErr
			slog.Warn("Failed to ping database", "error", pingErr, "retry_in", cfg.RetryDelay)
		} else {
			lastErr = err
			slog.Warn("Failed to open GORM connection", "error", err, "retry_in", cfg.RetryDelay)
		}

		time.Sleep(cfg.RetryDelay)
	}

	return nil, fmt.Errorf("connect to database after %d retries: %w", cfg.MaxRetries, lastErr)
}
