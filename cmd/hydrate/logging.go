package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/hydrate/logger"
	"go.uber.org/zap"
)

const (
	logDir      = "logs"
	logFileName = "hydrate.log"
	maxLogSize  = 10 * 1024 * 1024 // rotate when larger
)

// setupLogging returns a file-backed logger with debug, a no-op logger otherwise
// The terminal belongs to the UI: nothing is ever written to stdout or stderr
func setupLogging(debug bool, opts logger.Options) (*zap.Logger, *os.File) {
	if !debug {
		log.SetOutput(io.Discard)
		return zap.NewNop(), nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return zap.NewNop(), nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("hydrate-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return zap.NewNop(), nil
	}

	l := logger.New(opts, f)
	// Stray stdlib log calls land in the same file
	zap.RedirectStdLog(l)
	return l, f
}
