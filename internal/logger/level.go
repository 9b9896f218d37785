// internal/logger/level.go

package logger

import (
	"fmt"
	"strings"
)

// Level defines the available logging levels. Higher values are more
// severe; a record passes a sink when its level is at least the sink's
// configured threshold.
type Level int

const (
	// Log levels
	TRACE Level = 10
	DEBUG Level = 20
	INFO  Level = 30
	WARN  Level = 40
	ERROR Level = 50

	// OFF is a threshold value that admits nothing. It is not a valid
	// record level.
	OFF Level = 60
)

// Level to string mapping
var levelNames = map[Level]string{
	TRACE: "TRACE",
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	OFF:   "OFF",
}

// LevelNameToLevel maps string level names to level values
var LevelNameToLevel = map[string]Level{
	"TRACE": TRACE,
	"DEBUG": DEBUG,
	"INFO":  INFO,
	"WARN":  WARN,
	"ERROR": ERROR,
	"OFF":   OFF,
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// Admits reports whether a record at level l passes the given sink
// threshold. Rank comparison, not equality: an ERROR record passes an
// INFO threshold.
func (l Level) Admits(threshold Level) bool {
	return l >= threshold
}

// ParseLevel converts a level name (case-insensitive) to its Level value.
func ParseLevel(name string) (Level, error) {
	level, ok := LevelNameToLevel[strings.ToUpper(name)]
	if !ok {
		return 0, fmt.Errorf("invalid log level: %s", name)
	}
	return level, nil
}

// color returns the ANSI escape sequence used for this level on the
// console sink.
func (l Level) color() string {
	switch l {
	case ERROR:
		return "\x1b[31m"
	case WARN:
		return "\x1b[33m"
	case INFO:
		return "\x1b[32m"
	case DEBUG:
		return "\x1b[37m"
	case TRACE:
		return "\x1b[90m"
	default:
		return "\x1b[0m"
	}
}
