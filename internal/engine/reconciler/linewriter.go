package reconciler

import (
	"bytes"
	"strings"
	"sync"

	"go.trai.ch/stevedore/internal/core/ports"
)

// lineWriter forwards complete lines to the logger with a resource prefix
// and keeps the last few lines for error reports.
type lineWriter struct {
	logger ports.Logger
	prefix string
	warn   bool

	mu   sync.Mutex
	buf  []byte
	tail []string
	max  int
}

func newLineWriter(logger ports.Logger, prefix string, warn bool, maxLines int) *lineWriter {
	return &lineWriter{logger: logger, prefix: prefix, warn: warn, max: maxLines}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(string(w.buf[:i]))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Close flushes a trailing partial line.
func (w *lineWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) > 0 {
		w.emit(string(w.buf))
		w.buf = nil
	}
	return nil
}

func (w *lineWriter) emit(line string) {
	line = strings.TrimSuffix(line, "\r")
	msg := "[" + w.prefix + "] " + line
	if w.warn {
		w.logger.Warn(msg)
	} else {
		w.logger.Info(msg)
	}

	if w.max <= 0 {
		return
	}
	w.tail = append(w.tail, line)
	if len(w.tail) > w.max {
		w.tail = w.tail[len(w.tail)-w.max:]
	}
}

// Tail returns the retained trailing lines joined by newlines.
func (w *lineWriter) Tail() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return strings.Join(w.tail, "\n")
}

// mergeTails concatenates the non-empty tails in order.
func mergeTails(tails ...string) string {
	parts := make([]string, 0, len(tails))
	for _, t := range tails {
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}
