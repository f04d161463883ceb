// Package query holds the read-only cross-collection lookups. Every function
// is pure: it takes already-loaded collections and performs no I/O.
package query

import "github.com/skylane/airadmin/internal/domain"

// BookingView is one booking with its references resolved.
type BookingView struct {
	Booking domain.Booking
	Ticket  domain.Ticket
	User    domain.User
}

func BookingsForUser(bookings []domain.Booking, userID string) []domain.Booking {
	out := make([]domain.Booking, 0)
	for _, b := range bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out
}

func BookingsForTicket(bookings []domain.Booking, ticketID string) []domain.Booking {
	out := make([]domain.Booking, 0)
	for _, b := range bookings {
		if b.TicketID == ticketID {
			out = append(out, b)
		}
	}
	return out
}

// JoinedBookingView resolves each booking's ticket and user. Bookings whose
// ticket or user no longer resolves are excluded from the view; the
// underlying collections are left untouched.
func JoinedBookingView(bookings []domain.Booking, tickets []domain.Ticket, users []domain.User) []BookingView {
	ticketsByID := make(map[string]domain.Ticket, len(tickets))
	for _, t := range tickets {
		ticketsByID[t.ID] = t
	}
	usersByID := make(map[string]domain.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		t, ok := ticketsByID[b.TicketID]
		if !ok {
			continue
		}
		u, ok := usersByID[b.UserID]
		if !ok {
			continue
		}
		views = append(views, BookingView{Booking: b, Ticket: t, User: u})
	}
	return views
}

// BookedTicketIDs lists the ticket ids the user holds bookings for.
func BookedTicketIDs(bookings []domain.Booking, userID string) []string {
	ids := make([]string, 0)
	for _, b := range bookings {
		if b.UserID == userID {
			ids = append(ids, b.TicketID)
		}
	}
	return ids
}

// AvailableTickets returns tickets whose id is not in excludeIDs.
func AvailableTickets(tickets []domain.Ticket, excludeIDs []string) []domain.Ticket {
	excluded := idSet(excludeIDs)
	out := make([]domain.Ticket, 0)
	for _, t := range tickets {
		if _, ok := excluded[t.ID]; !ok {
			out = append(out, t)
		}
	}
	return out
}

// BookedTickets returns tickets whose id is in includeIDs.
func BookedTickets(tickets []domain.Ticket, includeIDs []string) []domain.Ticket {
	included := idSet(includeIDs)
	out := make([]domain.Ticket, 0)
	for _, t := range tickets {
		if _, ok := included[t.ID]; ok {
			out = append(out, t)
		}
	}
	return out
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
