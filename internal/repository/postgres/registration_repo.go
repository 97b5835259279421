package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campusevents/internal/domain"
)

type registrationStore struct {
	DB *sql.DB
	// LockTimeout bounds how long a transaction waits for the event row lock.
	LockTimeout time.Duration
}

// NewRegistrationStore returns a RegistrationStore backed by PostgreSQL.
func NewRegistrationStore(db *sql.DB, lockTimeout time.Duration) domain.RegistrationStore {
	return &registrationStore{
		DB:          db,
		LockTimeout: lockTimeout,
	}
}

// WithinTx runs fn in a READ COMMITTED transaction. Capacity checks are linearized by the
// row lock taken in LockEvent, which re-reads the latest committed row after waiting.
func (s *registrationStore) WithinTx(ctx context.Context, fn func(tx domain.RegistrationTx) error) (err error) {
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if s.LockTimeout > 0 {
		timeout := fmt.Sprintf("%dms", s.LockTimeout.Milliseconds())
		if _, err = tx.ExecContext(ctx, `SELECT set_config('lock_timeout', $1, true)`, timeout); err != nil {
			return fmt.Errorf("set lock timeout: %w", err)
		}
	}

	if err = fn(&registrationTx{tx: tx}); err != nil {
		return wrapContention(err)
	}
	if err = tx.Commit(); err != nil {
		return wrapContention(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

func (s *registrationStore) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registrant, error) {
	query := `
		SELECT r.id, r.user_id, u.name, u.email
		FROM registrations r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = $1 AND r.status = 'confirmed'
		ORDER BY r.created_at ASC
	`
	rows, err := s.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	registrants := make([]*domain.Registrant, 0)
	for rows.Next() {
		reg := &domain.Registrant{}
		var name sql.NullString
		if err := rows.Scan(&reg.RegistrationID, &reg.UserID, &name, &reg.Email); err != nil {
			return nil, err
		}
		reg.Name = name.String
		registrants = append(registrants, reg)
	}
	return registrants, rows.Err()
}

func (s *registrationStore) ListByUserID(ctx context.Context, userID string) ([]*domain.RegistrationWithEvent, error) {
	query := `
		SELECT r.id, r.event_id, r.user_id, r.status, r.created_at, r.updated_at,
		       e.id, e.title, e.start_time, e.capacity, e.confirmed_count, e.organizer_id, e.created_at, e.updated_at
		FROM registrations r
		JOIN events e ON e.id = r.event_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
	`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*domain.RegistrationWithEvent, 0)
	for rows.Next() {
		reg := &domain.Registration{}
		ev := &domain.Event{}
		var organizerID sql.NullString
		if err := rows.Scan(
			&reg.ID, &reg.EventID, &reg.UserID, &reg.Status, &reg.CreatedAt, &reg.UpdatedAt,
			&ev.ID, &ev.Title, &ev.StartTime, &ev.Capacity, &ev.ConfirmedCount, &organizerID, &ev.CreatedAt, &ev.UpdatedAt,
		); err != nil {
			return nil, err
		}
		ev.OrganizerID = organizerID.String
		result = append(result, &domain.RegistrationWithEvent{Registration: reg, Event: ev})
	}
	return result, rows.Err()
}

// registrationTx implements domain.RegistrationTx on an open *sql.Tx.
type registrationTx struct {
	tx *sql.Tx
}

func (t *registrationTx) LockEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`
	e, err := scanEvent(t.tx.QueryRowContext(ctx, query, eventID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || pqCode(err) == codeInvalidText {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock event row: %w", wrapContention(err))
	}
	return e, nil
}

func (t *registrationTx) CountConfirmed(ctx context.Context, eventID string) (int, error) {
	var count int
	err := t.tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND status = 'confirmed'`,
		eventID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count confirmed registrations: %w", err)
	}
	return count, nil
}

func (t *registrationTx) GetActive(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	query := `
		SELECT id, event_id, user_id, status, created_at, updated_at
		FROM registrations
		WHERE event_id = $1 AND user_id = $2 AND status <> 'cancelled'
	`
	reg := &domain.Registration{}
	err := t.tx.QueryRowContext(ctx, query, eventID, userID).
		Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.Status, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get active registration: %w", err)
	}
	return reg, nil
}

func (t *registrationTx) Insert(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (event_id, user_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := t.tx.QueryRowContext(ctx, query, reg.EventID, reg.UserID, reg.Status, reg.CreatedAt, reg.UpdatedAt).
		Scan(&reg.ID)
	if err != nil {
		if pqCode(err) == codeUniqueViolation {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func (t *registrationTx) SetStatus(ctx context.Context, registrationID string, status domain.RegistrationStatus, at time.Time) error {
	result, err := t.tx.ExecContext(ctx,
		`UPDATE registrations SET status = $1, updated_at = $2 WHERE id = $3`,
		status, at, registrationID,
	)
	if err != nil {
		return fmt.Errorf("update registration status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update registration status: rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (t *registrationTx) IncrementConfirmed(ctx context.Context, eventID string) error {
	result, err := t.tx.ExecContext(ctx,
		`UPDATE events SET confirmed_count = confirmed_count + 1, updated_at = NOW() WHERE id = $1`,
		eventID,
	)
	if err != nil {
		if pqCode(err) == codeCheckViolation {
			return domain.ErrEventFull
		}
		return fmt.Errorf("increment confirmed_count: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment confirmed_count: rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (t *registrationTx) DecrementConfirmed(ctx context.Context, eventID string) error {
	result, err := t.tx.ExecContext(ctx,
		`UPDATE events SET confirmed_count = confirmed_count - 1, updated_at = NOW() WHERE id = $1 AND confirmed_count > 0`,
		eventID,
	)
	if err != nil {
		return fmt.Errorf("decrement confirmed_count: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("decrement confirmed_count: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("decrement confirmed_count: counter already zero for event %s", eventID)
	}
	return nil
}
