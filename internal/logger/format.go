// internal/logger/format.go

package logger

import (
	"fmt"
	"time"
)

const colorReset = "\x1b[0m"

// formatEntry renders a record into its on-disk line shape. Two shapes
// exist and downstream parsers depend on both byte-for-byte, including
// the differing spacing around the colon:
//
//	non-keyed: <ts>-<LEVEL>|[<target>]: <message>
//	keyed:     <ts>-<LEVEL>|[<target>]<<uuid>>:<message>
func formatEntry(r *Record, now time.Time) string {
	ts := now.Format(time.RFC3339)
	if uuid, ok := r.UUID(); ok {
		return fmt.Sprintf("%s-%s|[%s]<%s>:%s", ts, r.Level, r.Target, uuid, r.Message)
	}
	return fmt.Sprintf("%s-%s|[%s]: %s", ts, r.Level, r.Target, r.Message)
}

// colorize wraps a formatted entry in the ANSI color for its level.
// Applied only to the console variant; escape codes never reach files.
func colorize(level Level, entry string) string {
	return level.color() + entry + colorReset
}
