package listapp

import (
	"context"

	"github.com/vango-dev/liveview/pkg/server"
)

// StoreActorName names the store actor in logs and metrics.
const StoreActorName = "items"

// NewServer starts a store and a server for the application. The store
// is stopped when the server shuts down.
func NewServer(ctx context.Context, cfg *server.Config) (*server.Server[*Store], *Store) {
	if cfg == nil {
		cfg = server.DefaultConfig()
	}
	store := NewStore(ctx, cfg.ActorOptions(StoreActorName)...)
	srv := server.New(cfg, Routes(), store)

	a := store.Actor()
	srv.Metrics().ObserveActor(a.Name(), a.Processed, a.Pending)
	srv.OnShutdown(store.Stop)
	return srv, store
}
