package domain

import (
	"context"
	"time"
)

// RegistrationStatus is the lifecycle state of a registration.
type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

// Registration represents one user's registration for an event.
// swagger:model Registration
type Registration struct {
	ID        string             `json:"id"`
	EventID   string             `json:"event_id"`
	UserID    string             `json:"user_id"`
	Status    RegistrationStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewRegistration creates a confirmed Registration. ID is set by the repository on insert.
func NewRegistration(eventID, userID string, createdAt time.Time) *Registration {
	return &Registration{
		EventID:   eventID,
		UserID:    userID,
		Status:    RegistrationConfirmed,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// Active reports whether the registration still holds a seat.
func (r *Registration) Active() bool {
	return r.Status != RegistrationCancelled
}

// RegistrationWithEvent bundles a registration with its related event.
type RegistrationWithEvent struct {
	Registration *Registration `json:"registration"`
	Event        *Event        `json:"event"`
}

// Registrant is a confirmed registration joined with the user's contact details.
type Registrant struct {
	RegistrationID string `json:"registration_id"`
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
}

// RegistrationTx is the set of operations available inside one registration transaction.
// Implementations must lock the event row in LockEvent before touching registration rows.
type RegistrationTx interface {
	LockEvent(ctx context.Context, eventID string) (*Event, error)
	CountConfirmed(ctx context.Context, eventID string) (int, error)
	GetActive(ctx context.Context, eventID, userID string) (*Registration, error)
	Insert(ctx context.Context, reg *Registration) error
	SetStatus(ctx context.Context, registrationID string, status RegistrationStatus, at time.Time) error
	IncrementConfirmed(ctx context.Context, eventID string) error
	DecrementConfirmed(ctx context.Context, eventID string) error
}

// RegistrationStore owns the registration ledger and the event capacity counter.
type RegistrationStore interface {
	// WithinTx runs fn in a single transaction. It commits when fn returns nil and
	// rolls back otherwise. Lock contention surfaces as ErrConflict.
	WithinTx(ctx context.Context, fn func(tx RegistrationTx) error) error
	ListByEventID(ctx context.Context, eventID string) ([]*Registrant, error)
	ListByUserID(ctx context.Context, userID string) ([]*RegistrationWithEvent, error)
}

// RegistrationManager is the capacity-safe registration boundary.
type RegistrationManager interface {
	Register(ctx context.Context, eventID, userID string) (*EventSnapshot, error)
	Cancel(ctx context.Context, eventID, userID string) (*Registration, error)
	ListForEvent(ctx context.Context, eventID string, caller Principal) ([]*Registrant, error)
	ListForUser(ctx context.Context, userID string) ([]*RegistrationWithEvent, error)
}
