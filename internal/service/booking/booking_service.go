// Package booking implements flight bookings: create with duplicate
// rejection, cancel, and the per-user/per-ticket filters.
package booking

import (
	"context"
	"errors"

	"github.com/skylane/airadmin/internal/domain"
	"github.com/skylane/airadmin/internal/query"
	"github.com/skylane/airadmin/internal/repository"
)

type BookingUseCase interface {
	Book(ctx context.Context, userID, ticketID string) (*domain.Booking, error)
	Cancel(ctx context.Context, id string) error
	ForUser(ctx context.Context, userID string) ([]domain.Booking, error)
	ForTicket(ctx context.Context, ticketID string) ([]domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
}

type Service struct {
	bookings repository.BookingRepository
}

func NewService(bookings repository.BookingRepository) *Service {
	return &Service{bookings: bookings}
}

// Book creates a booking for the (user, ticket) pair. A second booking for
// the same pair is rejected, never merged.
func (s *Service) Book(ctx context.Context, userID, ticketID string) (*domain.Booking, error) {
	if userID == "" {
		return nil, domain.NewFieldError("userId", "user id is required")
	}
	if ticketID == "" {
		return nil, domain.NewFieldError("ticketId", "ticket id is required")
	}

	if _, err := s.bookings.FindByUserAndTicket(ctx, userID, ticketID); err == nil {
		return nil, domain.ErrAlreadyBooked
	} else if !errors.Is(err, domain.ErrBookingNotFound) {
		return nil, err
	}

	return s.bookings.Create(ctx, domain.Booking{UserID: userID, TicketID: ticketID})
}

func (s *Service) Cancel(ctx context.Context, id string) error {
	return s.bookings.Delete(ctx, id)
}

func (s *Service) ForUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	all, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	return query.BookingsForUser(all, userID), nil
}

func (s *Service) ForTicket(ctx context.Context, ticketID string) ([]domain.Booking, error) {
	all, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	return query.BookingsForTicket(all, ticketID), nil
}

func (s *Service) List(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

var _ BookingUseCase = (*Service)(nil)
