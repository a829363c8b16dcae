package config

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger. Debug selects zap's development
// config at debug level; otherwise the production config at Level.
func NewLogger(c LogConfig) (*zap.Logger, error) {
	var zc zap.Config
	if c.Debug {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(c.Level)
		if err != nil {
			return nil, errors.Wrapf(err, "log level %q", c.Level)
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}

	zc.OutputPaths = []string{c.Output}
	zc.ErrorOutputPaths = []string{c.Output}

	logger, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger, nil
}
