// internal/logger/diag.go

package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// diagLogger reports the core's own operational problems (unopenable log
// paths, reconfiguration notices) to stderr. Nothing it prints is ever
// surfaced to the caller of the logging facade. Reports are throttled: a
// wedged disk repeats the same open failure for every record, and one
// report per second is enough.
type diagLogger struct {
	mu      sync.Mutex
	writer  io.Writer
	limiter *rate.Limiter
}

var (
	diagInstance *diagLogger
	diagOnce     sync.Once
)

func diag() *diagLogger {
	diagOnce.Do(func() {
		diagInstance = &diagLogger{
			writer:  os.Stderr,
			limiter: rate.NewLimiter(rate.Every(time.Second), 5),
		}
	})
	return diagInstance
}

func (d *diagLogger) logf(levelName, format string, args ...interface{}) {
	if !d.limiter.Allow() {
		return
	}

	// Format outside the lock, write inside it.
	now := time.Now().Format("2006-01-02T15:04:05Z07:00")
	line := fmt.Sprintf("[%s] %s: %s\n", now, levelName, fmt.Sprintf(format, args...))

	d.mu.Lock()
	_, _ = fmt.Fprint(d.writer, line)
	d.mu.Unlock()
}

// Errorf reports an operational failure of the logging core itself.
func (d *diagLogger) Errorf(format string, args ...interface{}) {
	d.logf("ERROR", format, args...)
}

// Infof reports a configuration change.
func (d *diagLogger) Infof(format string, args ...interface{}) {
	d.logf("INFO", format, args...)
}
