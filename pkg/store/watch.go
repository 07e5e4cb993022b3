package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventNotesChanged indicates the persisted collection now holds different
	// bytes than the last time the watcher looked.
	EventNotesChanged EventType = iota

	// EventInvalidated signals the watcher could not classify a change and
	// callers should reload.
	EventInvalidated
)

func (t EventType) String() string {
	switch t {
	case EventNotesChanged:
		return "changed"
	case EventInvalidated:
		return "invalidated"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is emitted by Watch when the underlying record changes.
type Event struct {
	Type EventType
	At   time.Time
}

const watchThrottle = 100 * time.Millisecond

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid blocking the watcher. The channel is closed once
// ctx is done or the watcher encounters an unrecoverable error.
func (p *diskvPersistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				p.logger.Warn("store: watcher close", "error", err)
			}
		})
	}

	if err := watcher.Add(p.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	events := make(chan Event, 16)
	last := p.digest()

	go func() {
		var mu sync.Mutex
		stopped := false
		defer func() {
			mu.Lock()
			stopped = true
			close(events)
			mu.Unlock()
		}()
		defer closeWatcher()

		send := func(ev Event) {
			mu.Lock()
			defer mu.Unlock()
			if stopped {
				return
			}
			if ev.Type == EventNotesChanged {
				sum := p.digest()
				if sum == last {
					return
				}
				last = sum
			}
			ev.At = time.Now()
			select {
			case events <- ev:
			default:
				// Drop events if the consumer is not ready; the next change
				// produces a fresh event and a reload reads the latest bytes.
			}
		}

		throttle := newEventThrottle(watchThrottle)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.logger.Warn("store: watcher error", "error", err)
				throttle.Enqueue(EventInvalidated, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				// diskv writes a temp file and renames it over the record, so
				// only the record's own path matters.
				if filepath.Clean(evt.Name) != p.recordPath() {
					continue
				}
				throttle.Enqueue(EventNotesChanged, send)
			}
		}
	}()

	return events, nil
}

// digest hashes the record bytes; a missing record hashes as empty.
func (p *diskvPersistence) digest() uint64 {
	data, err := os.ReadFile(p.recordPath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		p.logger.Warn("store: read record for digest", "error", err)
	}
	return xxhash.Sum64(data)
}

// eventThrottle coalesces rapid change notifications so consumers reload once
// per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]struct{}),
	}
}

func (t *eventThrottle) Enqueue(typ EventType, send func(Event)) {
	t.mu.Lock()
	t.pending[typ] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]struct{})
	t.timer = nil
	t.mu.Unlock()

	for typ := range pending {
		send(Event{Type: typ})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
