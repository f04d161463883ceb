// Package catalog implements the admin-facing ticket operations: validated
// create/update, list, and delete with cascade to bookings.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/skylane/airadmin/internal/domain"
	"github.com/skylane/airadmin/internal/repository"
	"github.com/skylane/airadmin/internal/store"
)

type CatalogUseCase interface {
	Create(ctx context.Context, input CreateTicketInput) (*domain.Ticket, error)
	Get(ctx context.Context, id string) (*domain.Ticket, error)
	Update(ctx context.Context, id string, patch domain.TicketPatch) (*domain.Ticket, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Ticket, error)
}

type Service struct {
	tickets  repository.TicketRepository
	bookings repository.BookingRepository
}

func NewService(tickets repository.TicketRepository, bookings repository.BookingRepository) *Service {
	return &Service{tickets: tickets, bookings: bookings}
}

type CreateTicketInput struct {
	FlightNumber  string
	Airline       string
	Origin        string
	Destination   string
	Gate          string
	DepartureTime time.Time
	ArrivalTime   *time.Time
	Status        domain.TicketStatus
	Price         *float64
}

func (s *Service) Create(ctx context.Context, input CreateTicketInput) (*domain.Ticket, error) {
	if strings.TrimSpace(input.FlightNumber) == "" {
		return nil, domain.NewFieldError("flightNumber", "flight number is required")
	}
	if strings.TrimSpace(input.Origin) == "" {
		return nil, domain.NewFieldError("origin", "origin is required")
	}
	if strings.TrimSpace(input.Destination) == "" {
		return nil, domain.NewFieldError("destination", "destination is required")
	}
	if input.DepartureTime.IsZero() {
		return nil, domain.NewFieldError("departureTime", "departure time is required")
	}

	status := input.Status
	if status == "" {
		status = domain.TicketStatusScheduled
	}
	if !domain.ValidTicketStatus(status) {
		return nil, domain.NewFieldError("status", "unknown ticket status")
	}

	return s.tickets.Create(ctx, domain.Ticket{
		FlightNumber:  strings.TrimSpace(input.FlightNumber),
		Airline:       strings.TrimSpace(input.Airline),
		Origin:        strings.TrimSpace(input.Origin),
		Destination:   strings.TrimSpace(input.Destination),
		Gate:          strings.TrimSpace(input.Gate),
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
		Status:        status,
		Price:         input.Price,
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	return s.tickets.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, patch domain.TicketPatch) (*domain.Ticket, error) {
	if patch.FlightNumber != nil && strings.TrimSpace(*patch.FlightNumber) == "" {
		return nil, domain.NewFieldError("flightNumber", "flight number is required")
	}
	if patch.Origin != nil && strings.TrimSpace(*patch.Origin) == "" {
		return nil, domain.NewFieldError("origin", "origin is required")
	}
	if patch.Destination != nil && strings.TrimSpace(*patch.Destination) == "" {
		return nil, domain.NewFieldError("destination", "destination is required")
	}
	if patch.Status != nil && !domain.ValidTicketStatus(*patch.Status) {
		return nil, domain.NewFieldError("status", "unknown ticket status")
	}
	return s.tickets.Update(ctx, id, patch)
}

// Delete removes the ticket and every booking referencing it. Bookings
// cascade here; deleting a user never does. A non-durable write does not
// stop the cascade: in-memory state must stay consistent.
func (s *Service) Delete(ctx context.Context, id string) error {
	delErr := s.tickets.Delete(ctx, id)
	if delErr != nil && !errors.Is(delErr, store.ErrUnavailable) {
		return delErr
	}

	removed, cascadeErr := s.bookings.DeleteByTicket(ctx, id)
	if removed > 0 {
		slog.Info("cascaded ticket delete to bookings", "ticketId", id, "removed", removed)
	}
	if delErr != nil {
		return delErr
	}
	return cascadeErr
}

func (s *Service) List(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.List(ctx)
}

var _ CatalogUseCase = (*Service)(nil)
