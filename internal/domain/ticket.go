package domain

import "time"

type TicketStatus string

const (
	TicketStatusScheduled TicketStatus = "scheduled"
	TicketStatusBoarding  TicketStatus = "boarding"
	TicketStatusDeparted  TicketStatus = "departed"
	TicketStatusArrived   TicketStatus = "arrived"
	TicketStatusDelayed   TicketStatus = "delayed"
	TicketStatusCancelled TicketStatus = "cancelled"
)

// ValidTicketStatus reports whether s is one of the known statuses.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusScheduled, TicketStatusBoarding, TicketStatusDeparted,
		TicketStatusArrived, TicketStatusDelayed, TicketStatusCancelled:
		return true
	}
	return false
}

// Ticket is a flight in the catalog.
type Ticket struct {
	ID            string       `json:"id"`
	FlightNumber  string       `json:"flightNumber"`
	Airline       string       `json:"airline,omitempty"`
	Origin        string       `json:"origin"`
	Destination   string       `json:"destination"`
	Gate          string       `json:"gate,omitempty"`
	DepartureTime time.Time    `json:"departureTime"`
	ArrivalTime   *time.Time   `json:"arrivalTime,omitempty"`
	Status        TicketStatus `json:"status"`
	Price         *float64     `json:"price,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     *time.Time   `json:"updatedAt,omitempty"`
}

// TicketPatch is a partial update; nil fields are left untouched.
type TicketPatch struct {
	FlightNumber  *string
	Airline       *string
	Origin        *string
	Destination   *string
	Gate          *string
	DepartureTime *time.Time
	ArrivalTime   *time.Time
	Status        *TicketStatus
	Price         *float64
}
