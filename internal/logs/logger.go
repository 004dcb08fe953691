package logs

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	Logger  = newLogger(os.Stderr, log.WarnLevel)
	logFile *os.File
	mu      sync.Mutex
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          "vaultwidget",
		Level:           level,
		ReportTimestamp: true,
		ReportCaller:    level == log.DebugLevel,
	})
}

// Initialize redirects the logger to debug.log inside logDir. An empty
// logDir keeps logging on stderr.
func Initialize(logDir string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	if logDir == "" || logDir == "." {
		Logger.SetLevel(level)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		Logger.Error("failed to open log file", "path", logPath, "err", err)
		return err
	}

	if logFile != nil {
		logFile.Close()
	}

	logFile = f
	Logger = newLogger(f, level)
	Logger.Debug("logger initialized", "path", logPath)

	return nil
}

// Silence discards all output. Tests use it to keep scan warnings quiet.
func Silence() {
	mu.Lock()
	defer mu.Unlock()
	Logger = newLogger(io.Discard, log.FatalLevel)
}

// Close closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}
