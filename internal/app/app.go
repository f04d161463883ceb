// Package app is the composition root: it builds the store, the three
// repositories, the session manager and the services, runs the one-time
// migration and restores any persisted session.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/skylane/airadmin/config"
	"github.com/skylane/airadmin/internal/repository"
	"github.com/skylane/airadmin/internal/service/booking"
	"github.com/skylane/airadmin/internal/service/catalog"
	"github.com/skylane/airadmin/internal/service/directory"
	"github.com/skylane/airadmin/internal/session"
	"github.com/skylane/airadmin/internal/store"
)

type App struct {
	Store store.Store

	Users    *repository.Users
	Tickets  *repository.Tickets
	Bookings *repository.Bookings

	Session   *session.Manager
	Catalog   *catalog.Service
	Booking   *booking.Service
	Directory *directory.Service
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	users := repository.NewUsers(ctx, st)
	tickets := repository.NewTickets(ctx, st)
	bookings := repository.NewBookings(ctx, st)

	sess := session.NewManager(users, st, cfg.Auth.BcryptCost)
	if _, err := sess.Migrate(ctx); err != nil && !errors.Is(err, store.ErrUnavailable) {
		return nil, fmt.Errorf("migrate users: %w", err)
	}
	if err := sess.Restore(ctx); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	return &App{
		Store:     st,
		Users:     users,
		Tickets:   tickets,
		Bookings:  bookings,
		Session:   sess,
		Catalog:   catalog.NewService(tickets, bookings),
		Booking:   booking.NewService(bookings),
		Directory: directory.NewService(users, cfg.Auth.BcryptCost),
	}, nil
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		return store.OpenFileStore(cfg.Storage.Path)
	case config.BackendRedis:
		return store.NewRedisStore(cfg.Redis), nil
	case config.BackendMemory:
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func (a *App) Close() error {
	if rs, ok := a.Store.(*store.RedisStore); ok {
		return rs.Close()
	}
	return nil
}
