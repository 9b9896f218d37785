// internal/logger/daily_logger.go

package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/orgoj/dailylog/internal/truncate"
)

// TargetFilter adjusts the effective sink thresholds for a record
// target. Implementations must be safe for concurrent use. Returning
// OFF for a sink silences it for that target.
type TargetFilter interface {
	// Thresholds returns the console and file thresholds to apply to
	// records with the given target, starting from the globally
	// configured ones.
	Thresholds(target string, console, file Level) (Level, Level)
}

// DailyLogger routes records to the console sink and to date- and
// key-addressed files under a base directory. It is the single entry
// point behind the logging facade; one process-wide instance is shared
// by all callers.
//
// Thresholds and base directory are guarded separately so a threshold
// read never blocks on a base-path read for a different record.
// Cross-field consistency during a single record is not required;
// configuration is expected to settle before steady-state logging.
type DailyLogger struct {
	levelMu      sync.RWMutex
	consoleLevel Level
	fileLevel    Level

	pathMu  sync.RWMutex
	baseDir string

	optMu          sync.RWMutex
	filter         TargetFilter
	maxMessageSize int

	cache *fileCache

	consoleMu sync.Mutex
	console   io.Writer
}

// Global instance
var (
	defaultLogger *DailyLogger
	once          sync.Once
)

// Get returns the process-wide logger instance.
func Get() *DailyLogger {
	once.Do(func() {
		defaultLogger = New()
	})
	return defaultLogger
}

// New creates an unconfigured logger: thresholds INFO/INFO, file paths
// relative to the working directory, console on stdout. Tests construct
// their own instances; everything else goes through Get.
func New() *DailyLogger {
	return &DailyLogger{
		consoleLevel: INFO,
		fileLevel:    INFO,
		cache:        newFileCache(DefaultCacheSize),
		console:      os.Stdout,
	}
}

// Init configures the process-wide instance. Calling it again is not an
// error; the last configuration wins.
func Init(consoleLevel, fileLevel Level, baseDir string) {
	l := Get()
	l.SetLevels(consoleLevel, fileLevel)
	l.SetBaseDir(baseDir)
}

// SetLevels sets the per-sink severity thresholds.
func (l *DailyLogger) SetLevels(consoleLevel, fileLevel Level) {
	l.levelMu.Lock()
	l.consoleLevel = consoleLevel
	l.fileLevel = fileLevel
	l.levelMu.Unlock()
}

// SetBaseDir sets the directory all file destinations are created
// under. Empty means paths relative to the working directory.
func (l *DailyLogger) SetBaseDir(dir string) {
	l.pathMu.Lock()
	l.baseDir = dir
	l.pathMu.Unlock()
}

// BaseDir returns the configured base directory.
func (l *DailyLogger) BaseDir() string {
	l.pathMu.RLock()
	defer l.pathMu.RUnlock()
	return l.baseDir
}

// SetTargetFilter installs per-target threshold overrides. A nil filter
// removes them.
func (l *DailyLogger) SetTargetFilter(f TargetFilter) {
	l.optMu.Lock()
	l.filter = f
	l.optMu.Unlock()
}

// SetMaxMessageSize caps message length in bytes before formatting.
// Zero or negative disables the cap.
func (l *DailyLogger) SetMaxMessageSize(n int) {
	l.optMu.Lock()
	l.maxMessageSize = n
	l.optMu.Unlock()
}

// SetCacheSize changes the open file handle limit.
func (l *DailyLogger) SetCacheSize(n int) {
	l.cache.setCapacity(n)
}

// SetRotation enables size-capped rotation for file destinations.
func (l *DailyLogger) SetRotation(r Rotation) {
	l.cache.setRotation(r)
}

// SetConsole redirects the console sink. Used by tests.
func (l *DailyLogger) SetConsole(w io.Writer) {
	l.consoleMu.Lock()
	l.console = w
	l.consoleMu.Unlock()
}

// Close flushes and closes all cached file handles. The logger remains
// usable; subsequent writes reopen files on demand.
func (l *DailyLogger) Close() {
	l.cache.closeAll()
}

// Enabled reports whether a record at the given level would be admitted
// by at least one sink. Call sites use it to skip expensive argument
// construction; per-sink gating still happens in Log.
func (l *DailyLogger) Enabled(level Level) bool {
	l.levelMu.RLock()
	console, file := l.consoleLevel, l.fileLevel
	l.levelMu.RUnlock()
	return level.Admits(min(console, file))
}

// EnabledFor is Enabled with target rules applied.
func (l *DailyLogger) EnabledFor(level Level, target string) bool {
	console, file := l.thresholds(target)
	return level.Admits(min(console, file))
}

// thresholds resolves the effective per-sink thresholds for a target.
func (l *DailyLogger) thresholds(target string) (console, file Level) {
	l.levelMu.RLock()
	console, file = l.consoleLevel, l.fileLevel
	l.levelMu.RUnlock()

	l.optMu.RLock()
	filter := l.filter
	l.optMu.RUnlock()
	if filter != nil {
		console, file = filter.Thresholds(target, console, file)
	}
	return console, file
}

// Log routes one record: the per-key file first (when the record
// carries a correlation key and passes the file gate), then the
// console, then the shared daily file. A keyed record admitted to the
// file sink lands in both files: the daily file keeps the global
// chronological view, the per-key file the isolated per-workflow view.
//
// Log never returns an error. Logging failures must not alter the
// caller's control flow.
func (l *DailyLogger) Log(r *Record) {
	console, file := l.thresholds(r.Target)
	if !r.Level.Admits(console) && !r.Level.Admits(file) {
		return
	}

	rec := *r
	l.optMu.RLock()
	maxMsg := l.maxMessageSize
	l.optMu.RUnlock()
	if maxMsg > 0 {
		rec.Message = truncate.String(rec.Message, maxMsg)
	}

	now := time.Now()
	entry := formatEntry(&rec, now)

	if uuid, ok := rec.UUID(); ok && rec.Level.Admits(file) {
		l.writeFile(OrderFileName(uuid), entry)
	}

	if rec.Level.Admits(console) {
		l.writeConsole(colorize(rec.Level, entry))
	}

	if rec.Level.Admits(file) {
		l.writeFile(DailyFileName(now), entry)
	}
}

func (l *DailyLogger) writeFile(name, entry string) {
	path := name
	if base := l.BaseDir(); base != "" {
		path = filepath.Join(base, name)
	}
	if err := l.cache.writeLine(path, entry); err != nil {
		// Fatal to this write attempt only; the record is dropped and
		// the emitting goroutine continues.
		diag().Errorf("%v", err)
	}
}

func (l *DailyLogger) writeConsole(line string) {
	l.consoleMu.Lock()
	_, _ = fmt.Fprintln(l.console, line)
	l.consoleMu.Unlock()
}

// logf builds a record from a facade-style call and routes it.
func (l *DailyLogger) logf(level Level, target, uuid, format string, args ...interface{}) {
	if !l.EnabledFor(level, target) {
		return
	}
	r := &Record{
		Level:   level,
		Target:  target,
		Message: fmt.Sprintf(format, args...),
	}
	if uuid != "" {
		r.Attrs = map[string]string{AttrKeyUUID: uuid}
	}
	l.Log(r)
}

// Log methods for different levels

// Tracef logs a message at TRACE level
func (l *DailyLogger) Tracef(target, format string, args ...interface{}) {
	l.logf(TRACE, target, "", format, args...)
}

// Debugf logs a message at DEBUG level
func (l *DailyLogger) Debugf(target, format string, args ...interface{}) {
	l.logf(DEBUG, target, "", format, args...)
}

// Infof logs a message at INFO level
func (l *DailyLogger) Infof(target, format string, args ...interface{}) {
	l.logf(INFO, target, "", format, args...)
}

// Warnf logs a message at WARN level
func (l *DailyLogger) Warnf(target, format string, args ...interface{}) {
	l.logf(WARN, target, "", format, args...)
}

// Errorf logs a message at ERROR level
func (l *DailyLogger) Errorf(target, format string, args ...interface{}) {
	l.logf(ERROR, target, "", format, args...)
}

// Keyed variants attach a correlation key, routing the record to its
// dedicated order file in addition to the shared destinations.

// TracefKeyed logs a keyed message at TRACE level
func (l *DailyLogger) TracefKeyed(target, uuid, format string, args ...interface{}) {
	l.logf(TRACE, target, uuid, format, args...)
}

// DebugfKeyed logs a keyed message at DEBUG level
func (l *DailyLogger) DebugfKeyed(target, uuid, format string, args ...interface{}) {
	l.logf(DEBUG, target, uuid, format, args...)
}

// InfofKeyed logs a keyed message at INFO level
func (l *DailyLogger) InfofKeyed(target, uuid, format string, args ...interface{}) {
	l.logf(INFO, target, uuid, format, args...)
}

// WarnfKeyed logs a keyed message at WARN level
func (l *DailyLogger) WarnfKeyed(target, uuid, format string, args ...interface{}) {
	l.logf(WARN, target, uuid, format, args...)
}

// ErrorfKeyed logs a keyed message at ERROR level
func (l *DailyLogger) ErrorfKeyed(target, uuid, format string, args ...interface{}) {
	l.logf(ERROR, target, uuid, format, args...)
}
