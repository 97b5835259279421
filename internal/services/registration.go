package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"campusevents/internal/domain"
)

type registrationService struct {
	store      domain.RegistrationStore
	eventRepo  domain.EventRepository
	userRepo   domain.UserRepository
	dispatcher domain.NotificationDispatcher
	logger     *slog.Logger
	// lookahead is how close to its start an event must be for a new registration
	// to get its reminder right away instead of waiting for the scheduler.
	lookahead time.Duration
	now       func() time.Time
}

// NewRegistrationService returns a RegistrationManager that commits registrations through store.
func NewRegistrationService(
	store domain.RegistrationStore,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	dispatcher domain.NotificationDispatcher,
	logger *slog.Logger,
	lookahead time.Duration,
) domain.RegistrationManager {
	return newRegistrationService(store, eventRepo, userRepo, dispatcher, logger, lookahead)
}

func newRegistrationService(
	store domain.RegistrationStore,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	dispatcher domain.NotificationDispatcher,
	logger *slog.Logger,
	lookahead time.Duration,
) *registrationService {
	return &registrationService{
		store:      store,
		eventRepo:  eventRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
		logger:     logger,
		lookahead:  lookahead,
		now:        time.Now,
	}
}

// registrationOutcome reports whether err is one of the results callers are expected to handle.
func registrationOutcome(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrEventFull) ||
		errors.Is(err, domain.ErrAlreadyRegistered) ||
		errors.Is(err, domain.ErrEventAlreadyOccurred) ||
		errors.Is(err, domain.ErrConflict)
}

func (s *registrationService) Register(ctx context.Context, eventID, userID string) (*domain.EventSnapshot, error) {
	now := s.now()
	var snapshot *domain.EventSnapshot
	err := s.store.WithinTx(ctx, func(tx domain.RegistrationTx) error {
		event, err := tx.LockEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if event.HasStarted(now) {
			return domain.ErrEventAlreadyOccurred
		}
		confirmed, err := tx.CountConfirmed(ctx, eventID)
		if err != nil {
			return err
		}
		if confirmed >= event.Capacity {
			return domain.ErrEventFull
		}
		if _, err := tx.GetActive(ctx, eventID, userID); err == nil {
			return domain.ErrAlreadyRegistered
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		reg := domain.NewRegistration(eventID, userID, now)
		if err := tx.Insert(ctx, reg); err != nil {
			return err
		}
		if err := tx.IncrementConfirmed(ctx, eventID); err != nil {
			return err
		}
		event.ConfirmedCount = confirmed + 1
		snapshot = &domain.EventSnapshot{Event: event, Registration: reg}
		return nil
	})
	if err != nil {
		if registrationOutcome(err) {
			return nil, err
		}
		return nil, fmt.Errorf("register for event: %w", err)
	}

	s.logger.InfoContext(ctx, "registration confirmed",
		"event_id", eventID,
		"user_id", userID,
		"registration_id", snapshot.Registration.ID,
		"seats_left", snapshot.Event.SeatsLeft(),
	)
	if snapshot.Event.StartsWithin(now, s.lookahead) {
		snapshot.ReminderSent = s.sendImmediateReminder(ctx, snapshot.Event, userID)
	}
	return snapshot, nil
}

// sendImmediateReminder reminds a registrant who joined after the scheduler's window
// for the event has already passed. It never fails the registration.
func (s *registrationService) sendImmediateReminder(ctx context.Context, event *domain.Event, userID string) bool {
	logger := s.logger.With("event_id", event.ID, "user_id", userID)

	exists, err := s.dispatcher.HasReminder(ctx, userID, event.ID)
	if err != nil {
		logger.WarnContext(ctx, "immediate reminder: dedup check failed", "err", err)
		return false
	}
	if exists {
		return false
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.WarnContext(ctx, "immediate reminder: load user failed", "err", err)
		return false
	}

	message := reminderMessage(event.Title, event.StartTime)
	if user.Email != "" && !s.dispatcher.SendEmail(ctx, user.Email, domain.ReminderTitle, message) {
		logger.WarnContext(ctx, "immediate reminder: email not delivered")
		return false
	}
	if _, err := s.dispatcher.CreateInAppNotification(ctx, userID, event.ID, domain.ReminderTitle, message); err != nil {
		if errors.Is(err, domain.ErrAlreadyNotified) {
			return true
		}
		logger.WarnContext(ctx, "immediate reminder: in-app notification failed", "err", err)
		return false
	}
	return true
}

func (s *registrationService) Cancel(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	now := s.now()
	var cancelled *domain.Registration
	err := s.store.WithinTx(ctx, func(tx domain.RegistrationTx) error {
		event, err := tx.LockEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if event.HasStarted(now) {
			return domain.ErrEventAlreadyOccurred
		}
		reg, err := tx.GetActive(ctx, eventID, userID)
		if err != nil {
			return err
		}
		if err := tx.SetStatus(ctx, reg.ID, domain.RegistrationCancelled, now); err != nil {
			return err
		}
		if reg.Status == domain.RegistrationConfirmed {
			if err := tx.DecrementConfirmed(ctx, eventID); err != nil {
				return err
			}
		}
		reg.Status = domain.RegistrationCancelled
		reg.UpdatedAt = now
		cancelled = reg
		return nil
	})
	if err != nil {
		if registrationOutcome(err) {
			return nil, err
		}
		return nil, fmt.Errorf("cancel registration: %w", err)
	}
	s.logger.InfoContext(ctx, "registration cancelled", "event_id", eventID, "user_id", userID, "registration_id", cancelled.ID)
	return cancelled, nil
}

func (s *registrationService) ListForEvent(ctx context.Context, eventID string, caller domain.Principal) ([]*domain.Registrant, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !caller.HasRole(domain.RoleAdmin) {
		if !caller.HasRole(domain.RoleOrganizer) || event.OrganizerID != caller.UserID {
			return nil, domain.ErrForbidden
		}
	}
	registrants, err := s.store.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrants: %w", err)
	}
	return registrants, nil
}

func (s *registrationService) ListForUser(ctx context.Context, userID string) ([]*domain.RegistrationWithEvent, error) {
	regs, err := s.store.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if regs == nil {
		regs = []*domain.RegistrationWithEvent{}
	}
	return regs, nil
}
