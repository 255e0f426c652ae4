package infra

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/customer-registry/internal/config"
)

// Logger configures standard logrus logger
func Logger(cfg config.LogCfg) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("unknown log level %q - %w", cfg.Level, err)
	}

	logger := logrus.StandardLogger()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(level)
	return logger, nil
}
