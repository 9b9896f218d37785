// internal/logger/filecache.go

package logger

import (
	"bufio"
	"container/list"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// DefaultCacheSize caps the number of concurrently open log files.
	// Workloads with many distinct correlation keys stay bounded on file
	// descriptors; recency eviction keeps the currently hot keys open.
	DefaultCacheSize = 32

	writeBufferSize = 1024
)

// Rotation configures optional size-capped rotation for cached file
// handles. The zero value disables rotation and files grow as plain
// append-mode files. Compression is never enabled.
type Rotation struct {
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
}

func (r Rotation) configured() bool {
	return r.MaxSizeMB > 0 || r.MaxAgeDays > 0 || r.MaxBackups > 0
}

// cachedFile is one open destination: the buffered writer plus the
// underlying closer.
type cachedFile struct {
	path string
	buf  *bufio.Writer
	file io.WriteCloser // *os.File or *lumberjack.Logger
}

// fileCache is a bounded map from file path to an open, buffered,
// append-mode handle. One mutex covers lookup, eviction and the write
// itself, so concurrent writers to the same path never interleave
// partial lines and eviction never races an in-flight write.
type fileCache struct {
	mu       sync.Mutex
	capacity int
	rotation Rotation
	files    map[string]*list.Element // value is *cachedFile
	order    *list.List               // front = least recently used
}

func newFileCache(capacity int) *fileCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &fileCache{
		capacity: capacity,
		files:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// writeLine appends entry plus a newline to the file at path, creating
// the file and any missing parent directories, and flushes before
// returning. Write and flush failures are silently dropped: a lost line
// must never disturb the caller. Only an open failure is reported.
func (c *fileCache) writeLine(path, entry string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := c.acquire(path)
	if err != nil {
		return err
	}
	_, _ = f.buf.WriteString(entry)
	_ = f.buf.WriteByte('\n')
	_ = f.buf.Flush()
	return nil
}

// acquire returns the open handle for path, opening a new one (and
// evicting the least recently used entry at capacity) if needed.
// Callers must hold c.mu.
func (c *fileCache) acquire(path string) (*cachedFile, error) {
	if elem, ok := c.files[path]; ok {
		c.order.MoveToBack(elem)
		return elem.Value.(*cachedFile), nil
	}

	if len(c.files) >= c.capacity {
		c.evictOldest()
	}

	// Best effort; a failed mkdir shows up as the open error below.
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}

	file, err := c.open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open log file %s: %w", path, err)
	}

	f := &cachedFile{
		path: path,
		file: file,
		buf:  bufio.NewWriterSize(file, writeBufferSize),
	}
	c.files[path] = c.order.PushBack(f)
	return f, nil
}

func (c *fileCache) open(path string) (io.WriteCloser, error) {
	if c.rotation.configured() {
		return &lumberjack.Logger{
			Filename:   path,
			MaxSize:    c.rotation.MaxSizeMB,
			MaxAge:     c.rotation.MaxAgeDays,
			MaxBackups: c.rotation.MaxBackups,
			Compress:   false,
		}, nil
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

// evictOldest closes the least recently used handle and frees its slot.
// Every line is flushed at write time, so closing only releases the
// descriptor; the file on disk keeps its content and is reopened in
// append mode on the next write. Callers must hold c.mu.
func (c *fileCache) evictOldest() {
	front := c.order.Front()
	if front == nil {
		return
	}
	f := c.order.Remove(front).(*cachedFile)
	delete(c.files, f.path)
	_ = f.buf.Flush()
	_ = f.file.Close()
}

// setCapacity changes the handle limit, evicting down to the new size.
func (c *fileCache) setCapacity(n int) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.capacity = n
	for len(c.files) > n {
		c.evictOldest()
	}
}

// setRotation applies to handles opened afterwards. Existing handles are
// closed so every path picks up the new policy on its next write.
func (c *fileCache) setRotation(r Rotation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotation = r
	for c.order.Len() > 0 {
		c.evictOldest()
	}
}

// closeAll flushes and closes every open handle. Files on disk are left
// intact; the next write reopens them.
func (c *fileCache) closeAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.order.Len() > 0 {
		c.evictOldest()
	}
}

func (c *fileCache) openCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.files)
}
