package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/notas/pkg/bridge"
	"tableflip.dev/notas/pkg/message"
	"tableflip.dev/notas/pkg/note"
	"tableflip.dev/notas/pkg/store"
)

func seeded() *store.Memory {
	return store.NewMemory(
		&note.Note{ID: "b", Content: "<p>b</p>", Todos: []note.Todo{{ID: "t", Text: "x"}}, CreatedAt: 2, UpdatedAt: 2},
		&note.Note{ID: "a", Content: "<p>a</p>", Todos: []note.Todo{}, CreatedAt: 1, UpdatedAt: 1},
	)
}

func TestHandleGetAndSave(t *testing.T) {
	ctx := context.Background()
	mem := seeded()
	r := New(mem, nil)

	resp := r.Handle(ctx, message.Request{ID: "1", Action: message.ActionGetNotes})
	assert.Equal(t, "1", resp.ID)
	require.Len(t, resp.Notes, 2)
	assert.Equal(t, "b", resp.Notes[0].ID)

	resp = r.Handle(ctx, message.Request{ID: "2", Action: message.ActionSaveNotes, Data: resp.Notes[1:]})
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Error)
	stored, _ := mem.GetNotes(ctx)
	require.Len(t, stored, 1)
	assert.Equal(t, "a", stored[0].ID)

	resp = r.Handle(ctx, message.Request{Action: message.ActionSaveNotes})
	assert.True(t, resp.Success, "saving nothing clears the collection")
	stored, _ = mem.GetNotes(ctx)
	assert.Empty(t, stored)
}

func TestHandleDegradesOnStorageFailure(t *testing.T) {
	ctx := context.Background()
	mem := seeded()
	mem.SetError(errors.New("disk gone"))
	r := New(mem, nil)

	resp := r.Handle(ctx, message.Request{Action: message.ActionGetNotes})
	assert.Empty(t, resp.Notes)
	assert.Empty(t, resp.Error, "read failures answer with an empty collection")

	resp = r.Handle(ctx, message.Request{Action: message.ActionSaveNotes, Data: []*note.Note{}})
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "disk gone")
}

func TestHandleUnknownAction(t *testing.T) {
	resp := New(store.NewMemory(), nil).Handle(context.Background(), message.Request{Action: message.ActionToggleOverlay})
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "unknown action")
}

func TestHandlePost(t *testing.T) {
	ctx := context.Background()
	mem := seeded()
	r := New(mem, nil)

	reply, ok := r.HandlePost(ctx, message.Post{Type: message.TypeGetNotes})
	require.True(t, ok)
	assert.Equal(t, message.TypeNotesData, reply.Type)
	assert.Len(t, reply.Notes, 2)

	_, ok = r.HandlePost(ctx, message.Post{Type: message.TypeSaveNotes, Notes: reply.Notes[:1]})
	assert.False(t, ok, "SAVE_NOTES is fire and forget")
	stored, _ := mem.GetNotes(ctx)
	assert.Len(t, stored, 1)

	_, ok = r.HandlePost(ctx, message.Post{Type: message.TypeNotesData})
	assert.False(t, ok)
}

func TestAttachServesBridge(t *testing.T) {
	ctx := context.Background()
	mem := seeded()
	overlay, page := bridge.NewWindowPair()
	detach := New(mem, nil).Attach(page)
	defer detach()

	b := bridge.New(overlay, store.NewMemory(), bridge.WithTimeout(time.Second))
	got, err := b.GetNotes(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	got[0].Todos[0].Completed = true
	require.NoError(t, b.SaveNotes(ctx, got))
	assert.Eventually(t, func() bool {
		stored, _ := mem.GetNotes(ctx)
		return len(stored) == 2 && stored[0].Todos[0].Completed
	}, time.Second, 10*time.Millisecond)
}

func TestServeWithClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mem := seeded()
	reqR, reqW := io.Pipe()
	respR, respW := io.Pipe()

	served := make(chan error, 1)
	go func() {
		err := New(mem, nil).Serve(ctx, reqR, respW)
		_ = respW.Close()
		served <- err
	}()

	c := NewClient(respR, reqW)
	got, err := c.GetNotes(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.NoError(t, c.SaveNotes(ctx, got[:1]))
	stored, _ := mem.GetNotes(ctx)
	require.Len(t, stored, 1)

	mem.SetError(errors.New("read only"))
	err = c.SaveNotes(ctx, got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read only")

	require.NoError(t, c.Close())
	select {
	case err := <-served:
		assert.NoError(t, err, "EOF ends the host cleanly")
	case <-time.After(time.Second):
		t.Fatal("relay did not stop after the client closed")
	}

	assert.Eventually(t, func() bool {
		_, err := c.GetNotes(ctx)
		return errors.Is(err, ErrClosed)
	}, time.Second, 10*time.Millisecond)
}

func TestServeFramesAlwaysCarryNotesAndSuccess(t *testing.T) {
	mem := store.NewMemory()
	var in bytes.Buffer
	enc := message.NewEncoder(&in)
	require.NoError(t, enc.Encode(message.Request{ID: "1", Action: message.ActionGetNotes}))
	require.NoError(t, enc.Encode(message.Request{ID: "2", Action: message.ActionSaveNotes, Data: []*note.Note{}}))

	var out bytes.Buffer
	require.NoError(t, New(mem, nil).Serve(context.Background(), &in, &out))

	dec := message.NewDecoder(&out)
	var get map[string]json.RawMessage
	require.NoError(t, dec.Decode(&get))
	assert.JSONEq(t, `"1"`, string(get["id"]))
	assert.JSONEq(t, `[]`, string(get["notes"]))

	var save map[string]json.RawMessage
	require.NoError(t, dec.Decode(&save))
	assert.JSONEq(t, `true`, string(save["success"]))

	// A failed save still says so explicitly.
	mem.SetError(errors.New("disk full"))
	in.Reset()
	out.Reset()
	require.NoError(t, enc.Encode(message.Request{ID: "3", Action: message.ActionSaveNotes, Data: []*note.Note{}}))
	require.NoError(t, New(mem, nil).Serve(context.Background(), &in, &out))
	var failed map[string]json.RawMessage
	require.NoError(t, message.NewDecoder(&out).Decode(&failed))
	assert.JSONEq(t, `false`, string(failed["success"]))
}

func TestClientCallHonoursContext(t *testing.T) {
	reqR, reqW := io.Pipe()
	respR, _ := io.Pipe()
	go func() { _, _ = io.Copy(io.Discard, reqR) }()

	c := NewClient(respR, reqW)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := c.GetNotes(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
