// Package page runs the content side of a browser tab: it opens and closes
// the notes overlay and hands captured selections to it.
package page

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"tableflip.dev/notas/pkg/bridge"
	"tableflip.dev/notas/pkg/controller"
	"tableflip.dev/notas/pkg/message"
	"tableflip.dev/notas/pkg/note"
	"tableflip.dev/notas/pkg/relay"
	"tableflip.dev/notas/pkg/store"
)

// Options configure a Page. Zero values pick the package defaults of
// bridge and controller.
type Options struct {
	// Cache is the overlay's fallback snapshot. Nil keeps it in memory.
	Cache    store.Persistence
	Timeout  time.Duration
	Debounce time.Duration
	Logger   *slog.Logger
}

// Page owns at most one overlay.
type Page struct {
	relay  *relay.Relay
	opts   Options
	logger *slog.Logger

	mu      sync.Mutex
	overlay *overlay
}

type overlay struct {
	controller *controller.Controller
	windows    [2]*bridge.Window
	detach     func()
}

// New returns a Page whose overlays reach storage through r.
func New(r *relay.Relay, opts Options) *Page {
	if opts.Cache == nil {
		opts.Cache = store.NewMemory()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Page{relay: r, opts: opts, logger: logger}
}

// Handle reacts to a message the background sent to this tab.
func (p *Page) Handle(ctx context.Context, req message.Request) error {
	switch req.Action {
	case message.ActionToggleOverlay:
		_, err := p.Toggle(ctx)
		return err
	case message.ActionAddSelectedText:
		return p.capture(ctx, req.Capture())
	default:
		return fmt.Errorf("page: unexpected action %q", req.Action)
	}
}

// Toggle closes the open overlay, or opens one. It reports whether an
// overlay is open afterwards.
func (p *Page) Toggle(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.overlay != nil {
		return false, p.closeLocked(ctx)
	}
	return true, p.openLocked(ctx, nil)
}

// Close closes the overlay if one is open.
func (p *Page) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.overlay == nil {
		return nil
	}
	return p.closeLocked(ctx)
}

// Controller returns the open overlay's controller, or nil.
func (p *Page) Controller() *controller.Controller {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.overlay == nil {
		return nil
	}
	return p.overlay.controller
}

// capture forwards c to the open overlay, or opens one seeded with c.
func (p *Page) capture(ctx context.Context, c note.Capture) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.overlay != nil {
		return p.overlay.controller.AddTodoFromCapture(ctx, c)
	}
	return p.openLocked(ctx, &c)
}

func (p *Page) openLocked(ctx context.Context, seed *note.Capture) error {
	overlayWin, pageWin := bridge.NewWindowPair()
	detach := p.relay.Attach(pageWin)

	b := bridge.New(overlayWin, p.opts.Cache,
		bridge.WithTimeout(p.opts.Timeout),
		bridge.WithLogger(p.logger),
	)
	c := controller.New(b, controller.Options{
		Debounce: p.opts.Debounce,
		Logger:   p.logger,
		Seed:     seed,
	})
	p.overlay = &overlay{
		controller: c,
		windows:    [2]*bridge.Window{overlayWin, pageWin},
		detach:     detach,
	}
	p.logger.Debug("page: overlay opened", "seeded", seed != nil)
	return c.Load(ctx)
}

func (p *Page) closeLocked(ctx context.Context) error {
	o := p.overlay
	p.overlay = nil
	err := o.controller.Close(ctx)
	o.detach()
	for _, w := range o.windows {
		w.Close()
	}
	p.logger.Debug("page: overlay closed")
	return err
}
