package internal

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DebugEnvVar turns on debug output from the internal logger when set to any value.
const DebugEnvVar = "MLKEYBOARD_DEBUG"

const logDir = "logs"

// sink is the destination shared by both loggers.
// The console writer and the log file can be swapped while loggers are in use.
type sink struct {
	mu      sync.Mutex
	console io.Writer
	file    *os.File
}

func (s *sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		if _, err := s.file.Write(p); err != nil {
			return 0, err
		}
	}
	return s.console.Write(p)
}

var (
	output = &sink{console: os.Stderr}

	loggerOnce sync.Once
	logger     *slog.Logger
	levelVar   slog.LevelVar

	internalLoggerOnce sync.Once
	internalLogger     *slog.Logger
	internalLevelVar   slog.LevelVar
)

// SetLogWriter replaces stderr as the console destination. Nil silences the console.
func SetLogWriter(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	output.mu.Lock()
	output.console = w
	output.mu.Unlock()
}

// SetLogFilename additionally appends every record to logs/<filename>.
// A file opened by an earlier call is closed.
func SetLogFilename(filename string) error {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(logDir, filename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	output.mu.Lock()
	prev := output.file
	output.file = f
	output.mu.Unlock()

	if prev != nil {
		prev.Close()
	}
	return nil
}

func newJSONLogger(level *slog.LevelVar, attrs ...slog.Attr) *slog.Logger {
	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})
	return slog.New(handler.WithAttrs(attrs))
}

// GetLogger returns the logger handed to host applications.
func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		logger = newJSONLogger(&levelVar)
	})
	return logger
}

// GetInternalLogger returns the logger used by keyboard sessions.
// It reports warnings and errors only unless DebugEnvVar is set.
func GetInternalLogger() *slog.Logger {
	internalLoggerOnce.Do(func() {
		internalLevelVar.Set(slog.LevelWarn)
		if os.Getenv(DebugEnvVar) != "" {
			internalLevelVar.Set(slog.LevelDebug)
		}
		internalLogger = newJSONLogger(&internalLevelVar, slog.String("component", "mlkeyboard"))
	})
	return internalLogger
}

func SetLogLevel(level slog.Level) {
	levelVar.Set(level)
}

func SetInternalLogLevel(level slog.Level) {
	GetInternalLogger()
	internalLevelVar.Set(level)
}

// ParseLevel maps a level name to a slog.Level, defaulting to Info.
func ParseLevel(rawLevel string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(rawLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func SetRawLogLevel(rawLevel string) {
	levelVar.Set(ParseLevel(rawLevel))
}

// CloseLogger closes the file opened by SetLogFilename. Console output continues.
func CloseLogger() {
	output.mu.Lock()
	defer output.mu.Unlock()

	if output.file != nil {
		output.file.Close()
		output.file = nil
	}
}
