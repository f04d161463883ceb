package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skylane/airadmin/internal/domain"
	"github.com/skylane/airadmin/internal/store"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket domain.Ticket) (*domain.Ticket, error)
	Get(ctx context.Context, id string) (*domain.Ticket, error)
	Update(ctx context.Context, id string, patch domain.TicketPatch) (*domain.Ticket, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Ticket, error)
}

type Tickets struct {
	store store.Store

	mu    sync.Mutex
	items []domain.Ticket
}

func NewTickets(ctx context.Context, st store.Store) *Tickets {
	return &Tickets{store: st, items: loadCollection[domain.Ticket](ctx, st, KeyTickets)}
}

func (r *Tickets) Create(ctx context.Context, ticket domain.Ticket) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket.ID = uuid.NewString()
	ticket.CreatedAt = time.Now().UTC()
	r.items = append(r.items, ticket)

	if err := persistCollection(ctx, r.store, KeyTickets, r.items); err != nil {
		return &ticket, err
	}
	return &ticket, nil
}

func (r *Tickets) Get(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			t := r.items[i]
			return &t, nil
		}
	}
	return nil, domain.ErrTicketNotFound
}

func (r *Tickets) Update(ctx context.Context, id string, patch domain.TicketPatch) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID != id {
			continue
		}
		if patch.FlightNumber != nil {
			r.items[i].FlightNumber = *patch.FlightNumber
		}
		if patch.Airline != nil {
			r.items[i].Airline = *patch.Airline
		}
		if patch.Origin != nil {
			r.items[i].Origin = *patch.Origin
		}
		if patch.Destination != nil {
			r.items[i].Destination = *patch.Destination
		}
		if patch.Gate != nil {
			r.items[i].Gate = *patch.Gate
		}
		if patch.DepartureTime != nil {
			r.items[i].DepartureTime = *patch.DepartureTime
		}
		if patch.ArrivalTime != nil {
			r.items[i].ArrivalTime = patch.ArrivalTime
		}
		if patch.Status != nil {
			r.items[i].Status = *patch.Status
		}
		if patch.Price != nil {
			r.items[i].Price = patch.Price
		}
		now := time.Now().UTC()
		r.items[i].UpdatedAt = &now

		t := r.items[i]
		if err := persistCollection(ctx, r.store, KeyTickets, r.items); err != nil {
			return &t, err
		}
		return &t, nil
	}
	return nil, domain.ErrTicketNotFound
}

// Delete removes one ticket. Cascading removal of the ticket's bookings is
// coordinated by the catalog service, not here.
func (r *Tickets) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return persistCollection(ctx, r.store, KeyTickets, r.items)
		}
	}
	return domain.ErrTicketNotFound
}

// List returns the collection in insertion order.
func (r *Tickets) List(_ context.Context) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Ticket, len(r.items))
	copy(out, r.items)
	return out, nil
}

var _ TicketRepository = (*Tickets)(nil)
