package domain

import (
	"context"
	"time"
)

// ReminderTitle is the notification title used for event reminders. Together with
// user and event it forms the reminder dedup key.
const ReminderTitle = "Event Reminder"

// Notification is an in-app message for a user.
// swagger:model Notification
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	EventID   *string   `json:"event_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// ReminderCandidate is an (event, registrant) pair that has not been reminded yet.
type ReminderCandidate struct {
	EventID    string
	EventTitle string
	StartTime  time.Time
	UserID     string
	Email      string
}

// NotificationRepository defines storage for in-app notifications.
type NotificationRepository interface {
	// Create inserts the notification. If the (user, event, title) key already exists
	// it returns ErrAlreadyNotified and leaves the existing row untouched.
	Create(ctx context.Context, n *Notification) error
	Exists(ctx context.Context, userID, eventID, title string) (bool, error)
	// ListReminderCandidates returns confirmed registrants of events starting in [from, to]
	// that have no notification with the given title for that event.
	ListReminderCandidates(ctx context.Context, from, to time.Time, title string) ([]*ReminderCandidate, error)
	ListByUserID(ctx context.Context, userID string, params PaginationParams) ([]*Notification, int, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

// NotificationDispatcher sends notifications over email and the in-app channel.
type NotificationDispatcher interface {
	// SendEmail is best effort: it reports success and never returns an error.
	SendEmail(ctx context.Context, to, subject, body string) bool
	CreateInAppNotification(ctx context.Context, userID, eventID, title, message string) (*Notification, error)
	HasReminder(ctx context.Context, userID, eventID string) (bool, error)
}

// NotificationService exposes a user's inbox.
type NotificationService interface {
	ListForUser(ctx context.Context, userID string, params PaginationParams) ([]*Notification, int, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}
