package domain

import "time"

// Booking links a user to a ticket. At most one booking exists per
// (UserID, TicketID) pair. Deleting the referenced ticket deletes the
// booking; deleting the referenced user does not.
type Booking struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	TicketID string    `json:"ticketId"`
	BookedAt time.Time `json:"bookedAt"`
}
