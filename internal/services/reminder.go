package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"campusevents/internal/domain"
)

// reminderTimeLayout formats event start times in reminder messages.
const reminderTimeLayout = "Mon, 02 Jan 2006 15:04 MST"

// ReminderConfig controls the reminder scan.
type ReminderConfig struct {
	// Lead is how long before an event its registrants are reminded.
	Lead time.Duration
	// Tolerance is the width of the scan window ending at now+Lead. It should be
	// at least Interval so that no start time falls between two scans.
	Tolerance time.Duration
	// Interval is the period between scans in Start. The window also reaches one
	// Interval further back so a registrant whose email failed is retried by the next scan.
	Interval time.Duration
	// SendTimeout bounds the work for a single registrant.
	SendTimeout time.Duration
}

// DefaultReminderConfig returns a 12h lead scanned every 5 minutes.
func DefaultReminderConfig() ReminderConfig {
	return ReminderConfig{
		Lead:        12 * time.Hour,
		Tolerance:   5 * time.Minute,
		Interval:    5 * time.Minute,
		SendTimeout: 30 * time.Second,
	}
}

// window returns the start-time range scanned at now. Every start time is covered by
// at least two consecutive scans; the notification dedup key keeps the second one a no-op.
func (s *reminderScheduler) window(now time.Time) (from, to time.Time) {
	return now.Add(s.cfg.Lead - s.cfg.Tolerance - s.cfg.Interval), now.Add(s.cfg.Lead)
}

func reminderMessage(title string, start time.Time) string {
	return fmt.Sprintf("Are you ready for %q on %s?", title, start.UTC().Format(reminderTimeLayout))
}

type reminderOutcome int

const (
	reminderSent reminderOutcome = iota
	reminderSkipped
	reminderFailed
)

type reminderScheduler struct {
	notifications domain.NotificationRepository
	dispatcher    domain.NotificationDispatcher
	lease         domain.RunLease
	cfg           ReminderConfig
	logger        *slog.Logger
	now           func() time.Time
}

// NewReminderScheduler returns a ReminderScheduler. lease may be nil.
func NewReminderScheduler(
	notifications domain.NotificationRepository,
	dispatcher domain.NotificationDispatcher,
	lease domain.RunLease,
	cfg ReminderConfig,
	logger *slog.Logger,
) domain.ReminderScheduler {
	return newReminderScheduler(notifications, dispatcher, lease, cfg, logger)
}

func newReminderScheduler(
	notifications domain.NotificationRepository,
	dispatcher domain.NotificationDispatcher,
	lease domain.RunLease,
	cfg ReminderConfig,
	logger *slog.Logger,
) *reminderScheduler {
	return &reminderScheduler{
		notifications: notifications,
		dispatcher:    dispatcher,
		lease:         lease,
		cfg:           cfg,
		logger:        logger,
		now:           time.Now,
	}
}

// RunOnce reminds every confirmed registrant of events starting in
// [now+Lead-Tolerance-Interval, now+Lead] who has not been reminded yet.
func (s *reminderScheduler) RunOnce(ctx context.Context) (domain.RunResult, error) {
	var result domain.RunResult
	from, to := s.window(s.now())

	candidates, err := s.notifications.ListReminderCandidates(ctx, from, to, domain.ReminderTitle)
	if err != nil {
		return result, fmt.Errorf("list reminder candidates: %w", err)
	}

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		switch s.remind(ctx, c) {
		case reminderSent:
			result.RemindersSent++
		case reminderSkipped:
			result.Skipped++
		case reminderFailed:
			result.Failed++
		}
	}

	s.logger.InfoContext(ctx, "reminder scan finished",
		"window_from", from,
		"window_to", to,
		"candidates", len(candidates),
		"sent", result.RemindersSent,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return result, nil
}

func (s *reminderScheduler) remind(ctx context.Context, c *domain.ReminderCandidate) reminderOutcome {
	if s.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.SendTimeout)
		defer cancel()
	}
	logger := s.logger.With("event_id", c.EventID, "user_id", c.UserID)

	// Another instance may have reminded this pair since the candidate query ran.
	exists, err := s.dispatcher.HasReminder(ctx, c.UserID, c.EventID)
	if err != nil {
		logger.ErrorContext(ctx, "reminder dedup check failed", "err", err)
		return reminderFailed
	}
	if exists {
		return reminderSkipped
	}

	message := reminderMessage(c.EventTitle, c.StartTime)
	if c.Email != "" {
		if !s.dispatcher.SendEmail(ctx, c.Email, domain.ReminderTitle, message) {
			logger.WarnContext(ctx, "reminder email not delivered, will retry on next scan")
			return reminderFailed
		}
	} else {
		logger.InfoContext(ctx, "registrant has no email, sending in-app reminder only")
	}

	if _, err := s.dispatcher.CreateInAppNotification(ctx, c.UserID, c.EventID, domain.ReminderTitle, message); err != nil {
		if errors.Is(err, domain.ErrAlreadyNotified) {
			logger.InfoContext(ctx, "reminder recorded concurrently")
			return reminderSkipped
		}
		logger.ErrorContext(ctx, "store in-app reminder", "err", err)
		return reminderFailed
	}
	logger.DebugContext(ctx, "reminder sent")
	return reminderSent
}

// Start runs a scan immediately and then every Interval until ctx is cancelled.
func (s *reminderScheduler) Start(ctx context.Context) {
	s.logger.InfoContext(ctx, "starting reminder scheduler", "interval", s.cfg.Interval, "lead", s.cfg.Lead)
	s.tick(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reminder scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *reminderScheduler) tick(ctx context.Context) {
	if s.lease != nil {
		release, ok, err := s.lease.Acquire(ctx, s.cfg.Interval)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "run lease unavailable, scanning anyway", "err", err)
		case !ok:
			s.logger.DebugContext(ctx, "another instance holds the run lease, skipping scan")
			return
		default:
			defer release()
		}
	}
	if _, err := s.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.ErrorContext(ctx, "reminder scan failed", "err", err)
	}
}
