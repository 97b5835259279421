package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campusevents/internal/domain"
)

type notificationRepository struct {
	DB *sql.DB
}

// NewNotificationRepository returns a NotificationRepository backed by db. Reminder dedup
// relies on the partial unique index on (user_id, event_id, title).
func NewNotificationRepository(db *sql.DB) domain.NotificationRepository {
	return &notificationRepository{
		DB: db,
	}
}

// Create relies on the partial unique index on (user_id, event_id, title) so that
// concurrent scheduler instances can never store two reminders for one pair.
func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (user_id, event_id, title, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, event_id, title) WHERE event_id IS NOT NULL DO NOTHING
		RETURNING id
	`
	var eventID sql.NullString
	if n.EventID != nil {
		eventID = sql.NullString{String: *n.EventID, Valid: true}
	}
	err := r.DB.QueryRowContext(ctx, query, n.UserID, eventID, n.Title, n.Message, n.IsRead, n.CreatedAt).Scan(&n.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || pqCode(err) == codeUniqueViolation {
			return domain.ErrAlreadyNotified
		}
		return err
	}
	return nil
}

func (r *notificationRepository) Exists(ctx context.Context, userID, eventID, title string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE user_id = $1 AND event_id = $2 AND title = $3
		)
	`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, userID, eventID, title).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *notificationRepository) ListReminderCandidates(ctx context.Context, from, to time.Time, title string) ([]*domain.ReminderCandidate, error) {
	query := `
		SELECT e.id, e.title, e.start_time, r.user_id, u.email
		FROM events e
		JOIN registrations r ON r.event_id = e.id AND r.status = 'confirmed'
		JOIN users u ON u.id = r.user_id
		WHERE e.start_time BETWEEN $1 AND $2
		  AND NOT EXISTS (
			SELECT 1 FROM notifications n
			WHERE n.user_id = r.user_id
			  AND n.event_id = e.id
			  AND n.title = $3
		  )
		ORDER BY e.start_time ASC, r.created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, from, to, title)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	candidates := make([]*domain.ReminderCandidate, 0)
	for rows.Next() {
		c := &domain.ReminderCandidate{}
		var email sql.NullString
		if err := rows.Scan(&c.EventID, &c.EventTitle, &c.StartTime, &c.UserID, &email); err != nil {
			return nil, err
		}
		c.Email = email.String
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (r *notificationRepository) ListByUserID(ctx context.Context, userID string, params domain.PaginationParams) ([]*domain.Notification, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `
		SELECT id, user_id, event_id, title, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		n := &domain.Notification{}
		var eventID sql.NullString
		if err := rows.Scan(&n.ID, &n.UserID, &eventID, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		if eventID.Valid {
			n.EventID = &eventID.String
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		if pqCode(err) == codeInvalidText {
			return domain.ErrNotFound
		}
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark notification read: rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`,
		userID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
