package commands

import (
	"context"
	"log/slog"
	"os"

	"tableflip.dev/notas/pkg/bridge"
	"tableflip.dev/notas/pkg/config"
	"tableflip.dev/notas/pkg/relay"
	"tableflip.dev/notas/pkg/store"
)

// session is the persistence a command works against.
type session struct {
	Settings    *config.Settings
	Logger      *slog.Logger
	Persistence store.Persistence

	close func() error
}

func (s *session) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// openSession loads the configuration and opens the store, or spawns a relay
// host when --relay is set. Through a relay, reads fall back to the local
// cache if the host does not answer in time.
func openSession(ctx context.Context) (*session, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := settings.Logger(os.Stderr)

	if so.Relay == "" {
		p, err := store.Load(settings, logger)
		if err != nil {
			return nil, err
		}
		return &session{
			Settings:    settings,
			Logger:      logger,
			Persistence: p,
			close:       func() error { return store.Close(p) },
		}, nil
	}

	cache, err := store.Load(settings.CacheSettings(), logger)
	if err != nil {
		return nil, err
	}
	client, err := relay.Spawn(ctx, so.Relay, "relay")
	if err != nil {
		return nil, err
	}
	logger.Debug("session: using relay", "binary", so.Relay)
	return &session{
		Settings: settings,
		Logger:   logger,
		Persistence: bridge.New(nil, cache,
			bridge.WithDirect(client),
			bridge.WithTimeout(settings.Timeout),
			bridge.WithLogger(logger),
		),
		close: client.Close,
	}, nil
}

// withSession runs fn against an open session and closes it afterwards.
func withSession(ctx context.Context, fn func(*session) error) error {
	s, err := openSession(ctx)
	if err != nil {
		return output.HandleError(err)
	}
	err = fn(s)
	if cerr := s.Close(); err == nil && cerr != nil {
		s.Logger.Warn("session: close failed", "error", cerr)
	}
	return output.HandleError(err)
}
