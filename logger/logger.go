// Package logger creates the structured logger shared by all components.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// Config selects where the log goes and how verbose it is.
type Config struct {
	// Path of the log file. Empty logs to stderr.
	Path string

	Debug bool
	Quiet bool
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates the logger. When Path is set the log is appended to that
// file, the returned closer closes it.
func New(cfg Config) (*log.Logger, io.Closer, error) {
	logCfg := log.DefaultConfig()
	if cfg.Debug {
		logCfg.Level = log.DebugLevel
	} else if cfg.Quiet {
		logCfg.Level = log.ErrorLevel
	}

	if cfg.Path == "" {
		logCfg.Output = os.Stderr
		return log.NewWithConfig(logCfg), nopCloser{}, nil
	}

	f, err := os.OpenFile(cfg.Path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logCfg.Output = f
	l := log.NewWithConfig(logCfg)
	l.Debug("Initializing log", log.String("path", cfg.Path))
	return l, f, nil
}
