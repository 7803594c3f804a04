package logging

import (
	"log"
	"sync"
)

// Level is the severity attached to a diagnostic line.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Sink receives diagnostic text. Nothing structured crosses it.
type Sink interface {
	Log(level Level, msg string)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(level Level, msg string)

func (f SinkFunc) Log(level Level, msg string) { f(level, msg) }

// Std writes "[LEVEL] msg" lines through a *log.Logger.
// A nil L falls back to the standard logger.
type Std struct {
	L *log.Logger
}

func (s Std) Log(level Level, msg string) {
	l := s.L
	if l == nil {
		l = log.Default()
	}
	l.Printf("[%s] %s", level, msg)
}

var (
	mu  sync.Mutex
	def Sink = Std{}
)

// Default returns the process-wide sink used when a component is not given one.
func Default() Sink {
	mu.Lock()
	defer mu.Unlock()
	return def
}

// SetDefault replaces the process-wide sink. Passing nil restores Std{}.
func SetDefault(s Sink) {
	mu.Lock()
	defer mu.Unlock()
	if s == nil {
		s = Std{}
	}
	def = s
}

// Discard drops everything.
var Discard Sink = SinkFunc(func(Level, string) {})
