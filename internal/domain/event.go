package domain

import (
	"context"
	"time"
)

// Event represents a capacity-limited event people can register for.
// swagger:model Event
type Event struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	StartTime      time.Time `json:"start_time"`
	Capacity       int       `json:"capacity"`
	ConfirmedCount int       `json:"confirmed_count"`
	OrganizerID    string    `json:"organizer_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasStarted reports whether the event start time is at or before now.
func (e *Event) HasStarted(now time.Time) bool {
	return !e.StartTime.After(now)
}

// StartsWithin reports whether the event starts in the future but no later than now+d.
func (e *Event) StartsWithin(now time.Time, d time.Duration) bool {
	return e.StartTime.After(now) && !e.StartTime.After(now.Add(d))
}

// SeatsLeft returns the remaining capacity, never negative.
func (e *Event) SeatsLeft() int {
	if left := e.Capacity - e.ConfirmedCount; left > 0 {
		return left
	}
	return 0
}

// EventSnapshot is the view of an event returned by a confirmed registration.
// swagger:model EventSnapshot
type EventSnapshot struct {
	Event        *Event        `json:"event"`
	Registration *Registration `json:"registration"`
	// ReminderSent is true when the registration fell inside the reminder lookahead
	// and the immediate reminder was delivered.
	ReminderSent bool `json:"reminder_sent"`
}

// EventRepository defines read access to events outside of registration transactions.
type EventRepository interface {
	GetByID(ctx context.Context, id string) (*Event, error)
}
