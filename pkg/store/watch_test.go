package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/notas/pkg/note"
)

func TestPersistenceWatchEmitsNotesChanged(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base, backend: BackendDiskv}, nil)
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := Watch(ctx, p)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before storing.
	time.Sleep(50 * time.Millisecond)

	if err := p.SaveNotes(ctx, []*note.Note{note.New(time.Now())}); err != nil {
		t.Fatalf("save: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt, ok := <-ch:
			if !ok {
				t.Fatal("watch channel closed early")
			}
			if evt.Type == EventNotesChanged || evt.Type == EventInvalidated {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for change event")
		}
	}
}

func TestPersistenceWatchSkipsIdenticalWrites(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base, backend: BackendDiskv}, nil)
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notes := sampleNotes()
	if err := p.SaveNotes(ctx, notes); err != nil {
		t.Fatalf("save: %v", err)
	}

	ch, err := Watch(ctx, p)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if err := p.SaveNotes(ctx, notes); err != nil {
		t.Fatalf("save identical: %v", err)
	}

	select {
	case evt := <-ch:
		if evt.Type == EventNotesChanged {
			t.Fatalf("unexpected change event for identical bytes: %+v", evt)
		}
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir(), backend: BackendDiskv}, nil)
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := Watch(ctx, p)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()
	select {
	case _, ok := <-ch:
		if ok {
			// drain until closed
			for range ch {
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch channel not closed after cancel")
	}
}
