// Package logger provides leveled logging in text or JSON lines.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// Level represents a logging level.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	}
	return "INFO"
}

// Logger provides leveled logging.
type Logger struct {
	level  Level
	json   bool
	logger *log.Logger

	mu  sync.Mutex
	out io.Writer
}

var defaultLogger *Logger

// ParseLevel maps a level name to a Level, defaulting to InfoLevel.
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	}
	return InfoLevel
}

// Init initializes the default logger with the specified level and format
// ("json" or "text").
func Init(level string, format string) {
	flags := log.LstdFlags | log.Lmicroseconds
	if strings.ToLower(format) == "text" {
		flags |= log.Lshortfile
	}

	defaultLogger = &Logger{
		level:  ParseLevel(level),
		json:   strings.ToLower(format) == "json",
		logger: log.New(os.Stderr, "", flags),
		out:    os.Stderr,
	}
}

// SetOutput redirects the default logger. It is a no-op before Init.
func SetOutput(w io.Writer) {
	if defaultLogger == nil {
		return
	}
	defaultLogger.mu.Lock()
	defaultLogger.out = w
	defaultLogger.mu.Unlock()
	defaultLogger.logger.SetOutput(w)
}

type entry struct {
	Time  string `json:"ts"`
	Level string `json:"level"`
	Msg   string `json:"msg"`
}

func output(l Level, format string, args ...interface{}) {
	if defaultLogger == nil || defaultLogger.level > l {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if defaultLogger.json {
		line, err := json.Marshal(entry{
			Time:  time.Now().UTC().Format(time.RFC3339Nano),
			Level: l.String(),
			Msg:   msg,
		})
		if err != nil {
			return
		}
		defaultLogger.mu.Lock()
		defaultLogger.out.Write(append(line, '\n')) //nolint:errcheck
		defaultLogger.mu.Unlock()
		return
	}
	_ = defaultLogger.logger.Output(3, "["+l.String()+"] "+msg)
}

func Debug(format string, args ...interface{}) {
	output(DebugLevel, format, args...)
}

func Info(format string, args ...interface{}) {
	output(InfoLevel, format, args...)
}

func Warn(format string, args ...interface{}) {
	output(WarnLevel, format, args...)
}

func Error(format string, args ...interface{}) {
	output(ErrorLevel, format, args...)
}

func Fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if defaultLogger != nil {
		if defaultLogger.json {
			line, _ := json.Marshal(entry{Time: time.Now().UTC().Format(time.RFC3339Nano), Level: "FATAL", Msg: msg})
			defaultLogger.out.Write(append(line, '\n')) //nolint:errcheck
		} else {
			_ = defaultLogger.logger.Output(2, "[FATAL] "+msg)
		}
	}
	os.Exit(1)
}
