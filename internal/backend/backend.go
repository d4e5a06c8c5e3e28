// Package backend opens the service.Client selected by configuration.
package backend

import (
	"context"
	"fmt"

	"minitask/internal/backend/googletasks"
	"minitask/internal/backend/rest"
	"minitask/internal/config"
	"minitask/internal/service"
	"minitask/internal/store"
)

// Open returns the client for cfg.Backend. The local client also implements
// io.Closer; callers should close it when done.
func Open(ctx context.Context, cfg *config.Config) (service.Client, error) {
	switch cfg.Backend {
	case config.BackendLocal:
		s, err := store.Open(cfg.DBPath())
		if err != nil {
			return nil, err
		}
		return store.NewClient(s), nil
	case config.BackendREST:
		return rest.New(ctx, cfg)
	case config.BackendGoogle:
		return googletasks.New(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}
