package app

import (
	"log"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/relabs-tech/gesture_engine/internal/config"
)

// SetupLogging redirects the process log to a rotating file when
// LOG_FILE is configured. With no LOG_FILE the default stderr logger
// stays in place.
func SetupLogging(cfg *config.Config) {
	if cfg.LogFile == "" {
		return
	}

	log.SetOutput(&lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays,
	})
	log.Printf("logging to %s (max %dMB, %d backups, %d days)",
		cfg.LogFile, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays)
}
