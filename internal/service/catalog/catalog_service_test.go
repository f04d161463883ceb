package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylane/airadmin/internal/domain"
	"github.com/skylane/airadmin/internal/repository"
	"github.com/skylane/airadmin/internal/store"
)

func newService(t *testing.T) (*Service, *repository.Bookings) {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemoryStore()
	tickets := repository.NewTickets(ctx, st)
	bookings := repository.NewBookings(ctx, st)
	return NewService(tickets, bookings), bookings
}

func TestCreate_DefaultsStatusToScheduled(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	ticket, err := svc.Create(ctx, CreateTicketInput{
		FlightNumber:  "AB123",
		Origin:        "NYC",
		Destination:   "LAX",
		DepartureTime: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusScheduled, ticket.Status)
}

func TestCreate_RequiredFields(t *testing.T) {
	ctx := context.Background()

	base := CreateTicketInput{
		FlightNumber:  "AB123",
		Origin:        "NYC",
		Destination:   "LAX",
		DepartureTime: time.Now().UTC(),
	}

	tests := []struct {
		name   string
		mutate func(*CreateTicketInput)
		field  string
	}{
		{"missing flight number", func(in *CreateTicketInput) { in.FlightNumber = "  " }, "flightNumber"},
		{"missing origin", func(in *CreateTicketInput) { in.Origin = "" }, "origin"},
		{"missing destination", func(in *CreateTicketInput) { in.Destination = "" }, "destination"},
		{"missing departure", func(in *CreateTicketInput) { in.DepartureTime = time.Time{} }, "departureTime"},
		{"bad status", func(in *CreateTicketInput) { in.Status = "teleported" }, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t)
			input := base
			tt.mutate(&input)

			_, err := svc.Create(ctx, input)
			require.ErrorIs(t, err, domain.ErrValidation)

			var fieldErr *domain.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}

func TestUpdate_RejectsClearingRequiredField(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	ticket, err := svc.Create(ctx, CreateTicketInput{
		FlightNumber:  "AB123",
		Origin:        "NYC",
		Destination:   "LAX",
		DepartureTime: time.Now().UTC(),
	})
	require.NoError(t, err)

	empty := ""
	_, err = svc.Update(ctx, ticket.ID, domain.TicketPatch{Origin: &empty})
	assert.ErrorIs(t, err, domain.ErrValidation)

	gate := "C2"
	updated, err := svc.Update(ctx, ticket.ID, domain.TicketPatch{Gate: &gate})
	require.NoError(t, err)
	assert.Equal(t, "C2", updated.Gate)
}

func TestDelete_CascadesToBookings(t *testing.T) {
	ctx := context.Background()
	svc, bookings := newService(t)

	t1, err := svc.Create(ctx, CreateTicketInput{
		FlightNumber: "AB123", Origin: "NYC", Destination: "LAX", DepartureTime: time.Now().UTC(),
	})
	require.NoError(t, err)
	t2, err := svc.Create(ctx, CreateTicketInput{
		FlightNumber: "CD456", Origin: "SFO", Destination: "SEA", DepartureTime: time.Now().UTC(),
	})
	require.NoError(t, err)

	_, err = bookings.Create(ctx, domain.Booking{UserID: "ann", TicketID: t1.ID})
	require.NoError(t, err)
	_, err = bookings.Create(ctx, domain.Booking{UserID: "bob", TicketID: t1.ID})
	require.NoError(t, err)
	survivor, err := bookings.Create(ctx, domain.Booking{UserID: "ann", TicketID: t2.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, t1.ID))

	_, err = svc.Get(ctx, t1.ID)
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)

	remaining, err := bookings.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, survivor.ID, remaining[0].ID)
}

func TestDelete_UnknownTicket(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), domain.ErrTicketNotFound)
}
