// Package background turns browser events into messages for the page in the
// active tab, and answers runtime requests through the relay.
package background

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"tableflip.dev/notas/pkg/message"
	"tableflip.dev/notas/pkg/note"
	"tableflip.dev/notas/pkg/relay"
)

const (
	// CommandToggleOverlay is the keyboard command that shows or hides the overlay.
	CommandToggleOverlay = "toggle-overlay"
	// MenuAddToNotes is the context menu item offered on a text selection.
	MenuAddToNotes = "add-to-notes"
	// MenuAddToNotesTitle is the label of MenuAddToNotes.
	MenuAddToNotesTitle = "Add to Open Notas"
)

// Tab is a browser tab as far as the handler cares.
type Tab struct {
	ID    int
	URL   string
	Title string
}

// Tabs reaches the tabs of the current window.
type Tabs interface {
	// Active returns the active tab. ok is false when there is none.
	Active(ctx context.Context) (tab Tab, ok bool, err error)
	// Send delivers req to the page running in tab id.
	Send(ctx context.Context, id int, req message.Request) error
}

// Click describes a context menu click.
type Click struct {
	MenuItemID    string
	SelectionText string
	PageURL       string
}

// Handler reacts to background events.
type Handler struct {
	Tabs   Tabs
	Relay  *relay.Relay
	Logger *slog.Logger
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return h.Logger
}

// OnCommand handles a keyboard command. Commands other than
// CommandToggleOverlay are ignored.
func (h *Handler) OnCommand(ctx context.Context, command string) error {
	if command != CommandToggleOverlay {
		h.logger().Debug("background: ignoring command", "command", command)
		return nil
	}
	tab, ok, err := h.Tabs.Active(ctx)
	if err != nil || !ok {
		return err
	}
	return h.send(ctx, tab, message.Request{Action: message.ActionToggleOverlay})
}

// OnContextMenu sends a selection captured through MenuAddToNotes to the
// active tab. Clicks without a selection are ignored.
func (h *Handler) OnContextMenu(ctx context.Context, click Click) error {
	if click.MenuItemID != MenuAddToNotes || click.SelectionText == "" {
		return nil
	}
	tab, ok, err := h.Tabs.Active(ctx)
	if err != nil || !ok {
		return err
	}
	capture := note.Capture{
		Text:      click.SelectionText,
		PageURL:   click.PageURL,
		PageTitle: tab.Title,
	}
	if capture.PageURL == "" {
		capture.PageURL = tab.URL
	}
	return h.send(ctx, tab, message.CaptureRequest(capture))
}

// OnMessage answers a runtime request from an extension context.
func (h *Handler) OnMessage(ctx context.Context, req message.Request) message.Response {
	return h.Relay.Handle(ctx, req)
}

func (h *Handler) send(ctx context.Context, tab Tab, req message.Request) error {
	h.logger().Debug("background: sending", "tab", tab.ID, "action", req.Action)
	if err := h.Tabs.Send(ctx, tab.ID, req); err != nil {
		return fmt.Errorf("background: send %s to tab %d: %w", req.Action, tab.ID, err)
	}
	return nil
}
