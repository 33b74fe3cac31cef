package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Level represents the severity of a log message
type Level int

const (
	// LevelDebug is for tokenizer and matcher tracing
	LevelDebug Level = iota
	// LevelInfo is for progress of file checks and CLI commands
	LevelInfo
	// LevelWarn is for problems that don't stop a command
	LevelWarn
	// LevelError is for failures reported to the user
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel maps a level name ("debug", "info", "warn", "error") to a Level
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", name)
}

var (
	mu       sync.Mutex
	output   io.Writer = os.Stderr
	minLevel Level     = LevelInfo
	prefix   string    = "[csscolor]"
)

// SetOutput sets the output destination (primarily for testing)
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetLevel sets the minimum log level to display
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = level
}

// GetLevel returns the current minimum log level
func GetLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return minLevel
}

// Enabled reports whether messages at level would be written
func Enabled(level Level) bool {
	mu.Lock()
	defer mu.Unlock()
	return level >= minLevel && output != nil
}

func Debug(format string, args ...any) {
	log(LevelDebug, format, args...)
}

func Info(format string, args ...any) {
	log(LevelInfo, format, args...)
}

func Warn(format string, args ...any) {
	log(LevelWarn, format, args...)
}

func Error(format string, args ...any) {
	log(LevelError, format, args...)
}

func log(level Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if level < minLevel {
		return
	}

	// Skip logging if output is nil (e.g., during test cleanup)
	if output == nil {
		return
	}

	fmt.Fprintf(output, prefix+" "+format+"\n", args...)
}
