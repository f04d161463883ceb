package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skylane/airadmin/internal/domain"
	"github.com/skylane/airadmin/internal/store"
)

type BookingRepository interface {
	Create(ctx context.Context, booking domain.Booking) (*domain.Booking, error)
	Get(ctx context.Context, id string) (*domain.Booking, error)
	FindByUserAndTicket(ctx context.Context, userID, ticketID string) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
	DeleteByTicket(ctx context.Context, ticketID string) (int, error)
	List(ctx context.Context) ([]domain.Booking, error)
}

type Bookings struct {
	store store.Store

	mu    sync.Mutex
	items []domain.Booking
}

func NewBookings(ctx context.Context, st store.Store) *Bookings {
	return &Bookings{store: st, items: loadCollection[domain.Booking](ctx, st, KeyBookings)}
}

func (r *Bookings) Create(ctx context.Context, booking domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking.ID = uuid.NewString()
	booking.BookedAt = time.Now().UTC()
	r.items = append(r.items, booking)

	if err := persistCollection(ctx, r.store, KeyBookings, r.items); err != nil {
		return &booking, err
	}
	return &booking, nil
}

func (r *Bookings) Get(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			b := r.items[i]
			return &b, nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

func (r *Bookings) FindByUserAndTicket(_ context.Context, userID, ticketID string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].UserID == userID && r.items[i].TicketID == ticketID {
			b := r.items[i]
			return &b, nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

func (r *Bookings) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return persistCollection(ctx, r.store, KeyBookings, r.items)
		}
	}
	return domain.ErrBookingNotFound
}

// DeleteByTicket removes every booking referencing the ticket and reports
// how many were removed. Removing none is not an error.
func (r *Bookings) DeleteByTicket(ctx context.Context, ticketID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	removed := 0
	for _, b := range r.items {
		if b.TicketID == ticketID {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	if removed == 0 {
		return 0, nil
	}
	r.items = kept
	return removed, persistCollection(ctx, r.store, KeyBookings, r.items)
}

// List returns the collection in insertion order.
func (r *Bookings) List(_ context.Context) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Booking, len(r.items))
	copy(out, r.items)
	return out, nil
}

var _ BookingRepository = (*Bookings)(nil)
