package page

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/notas/pkg/background"
	"tableflip.dev/notas/pkg/message"
	"tableflip.dev/notas/pkg/note"
	"tableflip.dev/notas/pkg/relay"
	"tableflip.dev/notas/pkg/store"
)

// tab routes background messages straight to a page.
type tab struct {
	page *Page
	info background.Tab
}

func (t *tab) Active(context.Context) (background.Tab, bool, error) {
	return t.info, true, nil
}

func (t *tab) Send(ctx context.Context, _ int, req message.Request) error {
	return t.page.Handle(ctx, req)
}

func persisted(t *testing.T, mem *store.Memory) []*note.Note {
	t.Helper()
	notes, err := mem.GetNotes(context.Background())
	require.NoError(t, err)
	return notes
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	p := New(relay.New(store.NewMemory(), nil), Options{Timeout: 500 * time.Millisecond})

	open, err := p.Toggle(ctx)
	require.NoError(t, err)
	assert.True(t, open)
	require.NotNil(t, p.Controller())
	assert.NotNil(t, p.Controller().Current())

	open, err = p.Toggle(ctx)
	require.NoError(t, err)
	assert.False(t, open)
	assert.Nil(t, p.Controller())
}

func TestHandleRejectsRelayActions(t *testing.T) {
	p := New(relay.New(store.NewMemory(), nil), Options{})
	assert.Error(t, p.Handle(context.Background(), message.Request{Action: message.ActionGetNotes}))
}

func TestCaptureWhileOpenIsForwarded(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory(&note.Note{ID: "a", Todos: []note.Todo{{ID: "1", Text: "first"}}})
	p := New(relay.New(mem, nil), Options{Timeout: 500 * time.Millisecond})
	_, err := p.Toggle(ctx)
	require.NoError(t, err)
	defer p.Close(ctx)

	require.NoError(t, p.Handle(ctx, message.CaptureRequest(note.Capture{Text: "seen on a page"})))
	todos := p.Controller().Todos()
	require.Len(t, todos, 2)
	assert.Equal(t, "seen on a page", todos[0].Text)
}

func TestBackgroundToStorage(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	r := relay.New(mem, nil)
	p := New(r, Options{Timeout: 500 * time.Millisecond, Debounce: time.Hour})
	bg := &background.Handler{
		Tabs:  &tab{page: p, info: background.Tab{ID: 1, URL: "https://example.com/a", Title: "Example"}},
		Relay: r,
	}

	// A capture with no overlay open opens one seeded with the selection.
	require.NoError(t, bg.OnContextMenu(ctx, background.Click{
		MenuItemID:    background.MenuAddToNotes,
		SelectionText: "remember this",
	}))
	c := p.Controller()
	require.NotNil(t, c)
	todos := c.Todos()
	require.Len(t, todos, 1)
	assert.Equal(t, "remember this", todos[0].Text)
	assert.Equal(t, "https://example.com/a", todos[0].PageURL)
	assert.Equal(t, "Example", todos[0].PageTitle)

	require.Eventually(t, func() bool {
		notes := persisted(t, mem)
		return len(notes) == 1 && len(notes[0].Todos) == 1
	}, time.Second, 10*time.Millisecond)

	// Closing flushes the pending edit through the relay.
	require.NoError(t, c.EditContent(ctx, "<p>draft</p>"))
	require.NoError(t, bg.OnCommand(ctx, background.CommandToggleOverlay))
	assert.Nil(t, p.Controller())
	require.Eventually(t, func() bool {
		notes := persisted(t, mem)
		return len(notes) == 1 && notes[0].Content == "<p>draft</p>"
	}, time.Second, 10*time.Millisecond)

	// Reopening reads the stored collection back through the bridge.
	require.NoError(t, bg.OnCommand(ctx, background.CommandToggleOverlay))
	defer p.Close(ctx)
	cur := p.Controller().Current()
	require.NotNil(t, cur)
	assert.Equal(t, "<p>draft</p>", cur.Content)
	assert.Len(t, cur.Todos, 1)
}

func TestOverlayKeepsCacheWhenStorageFails(t *testing.T) {
	ctx := context.Background()
	cache := store.NewMemory(&note.Note{ID: "cached", Todos: []note.Todo{}})
	mem := store.NewMemory()
	mem.SetError(assert.AnError)

	// Storage is down: the relay answers empty, so the overlay starts fresh
	// and the cache keeps the overlay's writes.
	p := New(relay.New(mem, nil), Options{Cache: cache, Timeout: 200 * time.Millisecond})
	_, err := p.Toggle(ctx)
	require.NoError(t, err)
	defer p.Close(ctx)

	require.NoError(t, p.Controller().AddTodo(ctx, "offline"))
	cached := persisted(t, cache)
	require.NotEmpty(t, cached)
	assert.Equal(t, "offline", cached[0].Todos[0].Text)
}
