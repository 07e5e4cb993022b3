package bridge

import (
	"context"
	"errors"
	"sync"

	"tableflip.dev/notas/pkg/message"
)

// ErrClosed is returned when posting through a closed window.
var ErrClosed = errors.New("bridge: window closed")

// Channel carries posts across an isolation boundary. Delivery is
// asynchronous, unordered with respect to other senders and not guaranteed.
type Channel interface {
	Post(ctx context.Context, p message.Post) error
	Subscribe(fn func(message.Post)) (unsubscribe func())
}

// Window is one end of an in-process channel pair. Posting on one end
// notifies the listeners subscribed on the other.
type Window struct {
	mu        sync.Mutex
	listeners map[uint64]func(message.Post)
	next      uint64
	peer      *Window
	closed    bool

	qmu      sync.Mutex
	queue    []func()
	draining bool
}

// NewWindowPair returns two connected windows: the overlay's and the page's.
func NewWindowPair() (overlay, page *Window) {
	overlay = &Window{listeners: make(map[uint64]func(message.Post))}
	page = &Window{listeners: make(map[uint64]func(message.Post))}
	overlay.peer = page
	page.peer = overlay
	return overlay, page
}

// Post delivers a copy of p to the peer's listeners on another goroutine.
// Posts from one window arrive in the order they were sent.
func (w *Window) Post(ctx context.Context, p message.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return ErrClosed
	}
	listeners := w.peer.snapshot()
	if listeners == nil {
		return ErrClosed
	}
	w.enqueue(func() {
		for _, fn := range listeners {
			fn(p.Clone())
		}
	})
	return nil
}

func (w *Window) enqueue(fn func()) {
	w.qmu.Lock()
	w.queue = append(w.queue, fn)
	if w.draining {
		w.qmu.Unlock()
		return
	}
	w.draining = true
	w.qmu.Unlock()
	go w.drain()
}

func (w *Window) drain() {
	for {
		w.qmu.Lock()
		if len(w.queue) == 0 {
			w.draining = false
			w.qmu.Unlock()
			return
		}
		fn := w.queue[0]
		w.queue = w.queue[1:]
		w.qmu.Unlock()
		fn()
	}
}

// Subscribe registers fn for posts sent by the peer.
func (w *Window) Subscribe(fn func(message.Post)) (unsubscribe func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return func() {}
	}
	id := w.next
	w.next++
	w.listeners[id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.listeners, id)
			w.mu.Unlock()
		})
	}
}

// Listeners reports how many listeners are registered.
func (w *Window) Listeners() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.listeners)
}

// Close detaches the window; later posts in either direction fail.
func (w *Window) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.listeners = map[uint64]func(message.Post){}
}

// snapshot returns the current listeners, or nil when closed.
func (w *Window) snapshot() []func(message.Post) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	out := make([]func(message.Post), 0, len(w.listeners))
	for _, fn := range w.listeners {
		out = append(out, fn)
	}
	return out
}
