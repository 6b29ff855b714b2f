package mlkeyboard

import (
	"io"
	"log/slog"

	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard/internal"
)

// DebugEnvVar turns on debug logging for the keyboard internals when set.
const DebugEnvVar = internal.DebugEnvVar

// SetLogFilename also appends logs to logs/<filename>.
func SetLogFilename(filename string) error {
	return internal.SetLogFilename(filename)
}

// SetLogWriter replaces stderr as the console log destination.
func SetLogWriter(w io.Writer) {
	internal.SetLogWriter(w)
}

func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// ParseLogLevel maps debug, info, warn and error to slog levels. Unknown names mean info.
func ParseLogLevel(raw string) slog.Level {
	return internal.ParseLevel(raw)
}

func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// SetInternalLogLevel controls the keyboard's own diagnostics, which default to warnings only.
func SetInternalLogLevel(level slog.Level) {
	internal.SetInternalLogLevel(level)
}

// SetInputMappingBytes installs a JSON host key mapping for keyboards created afterwards.
// Its key_map object maps host key names to control tokens, e.g. {"key_map": {"Escape": "Backspace"}}.
func SetInputMappingBytes(data []byte) {
	internal.SetInputMappingBytes(data)
}

// CloseLogs closes the log file opened by SetLogFilename.
func CloseLogs() {
	internal.CloseLogger()
}
