package tui

import (
	"io"
	"sync"

	"github.com/vito/progrock"
)

// Feed is a progrock.Writer that buffers status updates for a single reader.
// Updates written before Attach are dropped, so an unused feed holds no memory.
type Feed struct {
	mu       sync.Mutex
	cond     *sync.Cond
	pending  []*progrock.StatusUpdate
	attached bool
	closed   bool
}

// NewFeed creates a new Feed.
func NewFeed() *Feed {
	f := &Feed{}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Attach starts buffering updates for Read.
func (f *Feed) Attach() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attached = true
}

// WriteStatus implements progrock.Writer.
func (f *Feed) WriteStatus(update *progrock.StatusUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.attached || f.closed {
		return nil
	}
	f.pending = append(f.pending, update)
	f.cond.Signal()
	return nil
}

// Close implements progrock.Writer. Read drains the remaining updates and then returns io.EOF.
func (f *Feed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	f.cond.Broadcast()
	return nil
}

// Read blocks until an update is available or the feed is closed.
func (f *Feed) Read() (*progrock.StatusUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for len(f.pending) == 0 && !f.closed {
		f.cond.Wait()
	}
	if len(f.pending) == 0 {
		return nil, io.EOF
	}

	update := f.pending[0]
	f.pending[0] = nil
	f.pending = f.pending[1:]
	return update, nil
}
