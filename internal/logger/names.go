// internal/logger/names.go

package logger

import (
	"fmt"
	"time"
)

// DailyFileName returns the name of the shared chronological file for
// the given local time. Month and day are not zero-padded; the name is
// an on-disk contract.
func DailyFileName(at time.Time) string {
	return fmt.Sprintf("log_%d_%d_%d.log", at.Year(), int(at.Month()), at.Day())
}

// OrderFileName returns the name of the dedicated file for one
// correlation-key value.
func OrderFileName(key string) string {
	return "order_" + key + ".log"
}
