package content

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// DeliverFunc receives the outcome of loading key. It runs on the loader's goroutine.
type DeliverFunc func(key string, doc Document, err error)

// Loader fetches documents in the background. Only the latest request is delivered:
// starting a new load cancels the one in flight.
type Loader struct {
	source  Source
	deliver DeliverFunc
	logger  *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	seq     uint64
	lastKey string
	closed  bool
	wg      sync.WaitGroup
}

// NewLoader creates a loader. A nil logger means slog.Default().
func NewLoader(source Source, deliver DeliverFunc, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{source: source, deliver: deliver, logger: logger}
}

// LoadKey starts loading key, superseding any pending load
func (l *Loader) LoadKey(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}

	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.seq++
	l.lastKey = key
	seq := l.seq

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer cancel()

		doc, err := l.source.Open(ctx, key)
		if !l.current(seq) {
			l.logger.Debug("content load superseded", "key", key)
			return
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			l.logger.Warn("content load failed", "key", key, "error", err)
		}
		l.deliver(key, doc, err)
	}()
}

// Reload loads the most recent key again, if any
func (l *Loader) Reload() {
	l.mu.Lock()
	key := l.lastKey
	l.mu.Unlock()
	if key != "" {
		l.LoadKey(key)
	}
}

// LastKey returns the most recently requested key
func (l *Loader) LastKey() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastKey
}

// Wait blocks until no load is running
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Close cancels the pending load and waits for it to finish. Later requests are ignored.
func (l *Loader) Close() {
	l.mu.Lock()
	l.closed = true
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	l.mu.Unlock()
	l.wg.Wait()
}

func (l *Loader) current(seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return seq == l.seq
}
