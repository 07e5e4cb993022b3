// Package bridge relays note reads and writes from the isolated overlay to
// the context that can reach persistent storage, degrading to a local cache
// when that context does not answer.
package bridge

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"tableflip.dev/notas/pkg/message"
	"tableflip.dev/notas/pkg/note"
	"tableflip.dev/notas/pkg/store"
)

// DefaultTimeout bounds how long GetNotes waits for NOTES_DATA.
const DefaultTimeout = 1000 * time.Millisecond

// Option configures a Bridge.
type Option func(*Bridge)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(b *Bridge) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithDirect makes the bridge call p instead of posting when the privileged
// API is reachable from the caller's context.
func WithDirect(p store.Persistence) Option {
	return func(b *Bridge) {
		b.direct = p
	}
}

// WithLogger sets the logger for degraded paths.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.logger = l
		}
	}
}

// Bridge implements store.Persistence for the overlay. It never returns an
// error from GetNotes or SaveNotes: every failure degrades to the cache.
type Bridge struct {
	channel Channel
	cache   store.Persistence
	direct  store.Persistence
	timeout time.Duration
	logger  *slog.Logger

	group singleflight.Group
}

var _ store.Persistence = (*Bridge)(nil)

// New builds a Bridge posting on channel and falling back to cache. Either
// may be nil: without a channel every read comes from the cache, without a
// cache the fallback is an empty collection.
func New(channel Channel, cache store.Persistence, opts ...Option) *Bridge {
	b := &Bridge{
		channel: channel,
		cache:   cache,
		timeout: DefaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Timeout reports how long GetNotes waits for the relay.
func (b *Bridge) Timeout() time.Duration {
	return b.timeout
}

// GetNotes implements store.Persistence. Concurrent callers share a single
// in-flight request, bounded by the timeout rather than by any one caller. A
// caller whose ctx ends first reads the cache.
func (b *Bridge) GetNotes(ctx context.Context) ([]*note.Note, error) {
	shared := context.WithoutCancel(ctx)
	ch := b.group.DoChan(string(message.TypeGetNotes), func() (any, error) {
		return b.fetch(shared), nil
	})
	select {
	case res := <-ch:
		return note.CloneAll(res.Val.([]*note.Note)), nil
	case <-ctx.Done():
		b.logger.Warn("bridge: read cancelled, using cache", "error", ctx.Err())
		return note.CloneAll(b.fallback()), nil
	}
}

func (b *Bridge) fetch(ctx context.Context) []*note.Note {
	if b.direct != nil {
		dctx, cancel := context.WithTimeout(ctx, b.timeout)
		defer cancel()
		notes, err := b.direct.GetNotes(dctx)
		if err == nil {
			b.remember(notes)
			return notes
		}
		b.logger.Warn("bridge: direct read failed, using cache", "error", err)
		return b.fallback()
	}
	if b.channel == nil {
		return b.fallback()
	}

	delivered := make(chan []*note.Note, 1)
	var once sync.Once
	unsubscribe := b.channel.Subscribe(func(p message.Post) {
		if p.Type != message.TypeNotesData {
			return
		}
		// Only the first NOTES_DATA resolves the request.
		once.Do(func() {
			notes := p.Notes
			if notes == nil {
				notes = []*note.Note{}
			}
			delivered <- notes
		})
	})
	defer unsubscribe()

	if err := b.channel.Post(ctx, message.Post{Type: message.TypeGetNotes}); err != nil {
		b.logger.Warn("bridge: post GET_NOTES failed, using cache", "error", err)
		return b.fallback()
	}

	timer := time.NewTimer(b.timeout)
	defer timer.Stop()

	select {
	case notes := <-delivered:
		b.remember(notes)
		return notes
	case <-timer.C:
		b.logger.Warn("bridge: no NOTES_DATA before timeout, using cache", "timeout", b.timeout)
		return b.fallback()
	}
}

// SaveNotes implements store.Persistence. The cache is written first; the
// SAVE_NOTES post is best effort and never acknowledged.
func (b *Bridge) SaveNotes(ctx context.Context, notes []*note.Note) error {
	if b.cache != nil {
		// The cache outlives a cancelled caller.
		if err := b.cache.SaveNotes(context.WithoutCancel(ctx), notes); err != nil {
			b.logger.Warn("bridge: cache write failed", "error", err)
		}
	}
	if b.direct != nil {
		if err := b.direct.SaveNotes(ctx, notes); err != nil {
			b.logger.Warn("bridge: direct write failed", "error", err)
		}
		return nil
	}
	if b.channel == nil {
		return nil
	}
	post := message.Post{Type: message.TypeSaveNotes, Notes: note.CloneAll(notes)}
	if err := b.channel.Post(ctx, post); err != nil {
		b.logger.Warn("bridge: post SAVE_NOTES failed", "error", err)
	}
	return nil
}

// fallback reads the last known snapshot; an absent or unreadable cache reads
// as empty.
func (b *Bridge) fallback() []*note.Note {
	if b.cache == nil {
		return []*note.Note{}
	}
	notes, err := b.cache.GetNotes(context.Background())
	if err != nil {
		b.logger.Warn("bridge: cache read failed", "error", err)
		return []*note.Note{}
	}
	return notes
}

func (b *Bridge) remember(notes []*note.Note) {
	if b.cache == nil {
		return
	}
	if err := b.cache.SaveNotes(context.Background(), notes); err != nil {
		b.logger.Warn("bridge: cache refresh failed", "error", err)
	}
}
