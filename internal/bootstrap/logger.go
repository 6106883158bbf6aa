package bootstrap

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger builds the process logger and installs it as the zap
// global. Production encoding when APP_ENV=production, development
// otherwise.
func NewLogger() (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if os.Getenv("APP_ENV") == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
