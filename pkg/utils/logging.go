package utils

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// SetupLogging applies the log section to the package-level logrus logger.
// An unknown level falls back to info.
func SetupLogging(cfg LogConfig) {
	log.SetOutput(os.Stderr)
	if cfg.JSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		log.Warnf("unknown log level %q, using info", cfg.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
