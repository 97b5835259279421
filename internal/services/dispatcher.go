package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"campusevents/internal/domain"
)

// notificationTemplate is the email template used for every dispatched notification.
const notificationTemplate = "notification"

type notificationDispatcher struct {
	mailer        domain.Mailer
	renderer      domain.EmailTemplateRenderer
	notifications domain.NotificationRepository
	logger        *slog.Logger
	now           func() time.Time
}

// NewNotificationDispatcher returns a NotificationDispatcher that renders emails with renderer,
// sends them through mailer, and stores in-app notifications in notifications.
func NewNotificationDispatcher(
	mailer domain.Mailer,
	renderer domain.EmailTemplateRenderer,
	notifications domain.NotificationRepository,
	logger *slog.Logger,
) domain.NotificationDispatcher {
	return newNotificationDispatcher(mailer, renderer, notifications, logger)
}

func newNotificationDispatcher(
	mailer domain.Mailer,
	renderer domain.EmailTemplateRenderer,
	notifications domain.NotificationRepository,
	logger *slog.Logger,
) *notificationDispatcher {
	return &notificationDispatcher{
		mailer:        mailer,
		renderer:      renderer,
		notifications: notifications,
		logger:        logger,
		now:           time.Now,
	}
}

func (d *notificationDispatcher) SendEmail(ctx context.Context, to, subject, body string) bool {
	data := &domain.NotificationEmailData{Email: to, Subject: subject, Body: body}
	renderedSubject, htmlBody, textBody, err := d.renderer.Render(notificationTemplate, data)
	if err != nil {
		d.logger.ErrorContext(ctx, "render notification email", "to", to, "err", err)
		return false
	}
	if err := d.mailer.Send(ctx, to, renderedSubject, htmlBody, textBody); err != nil {
		d.logger.WarnContext(ctx, "send notification email",
			"to", to,
			"err", fmt.Errorf("%w: %w", domain.ErrTransportFailure, err),
		)
		return false
	}
	d.logger.InfoContext(ctx, "notification email sent", "to", to, "subject", renderedSubject)
	return true
}

func (d *notificationDispatcher) CreateInAppNotification(ctx context.Context, userID, eventID, title, message string) (*domain.Notification, error) {
	n := &domain.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		CreatedAt: d.now(),
	}
	if eventID != "" {
		n.EventID = &eventID
	}
	if err := d.notifications.Create(ctx, n); err != nil {
		if errors.Is(err, domain.ErrAlreadyNotified) {
			return nil, domain.ErrAlreadyNotified
		}
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

func (d *notificationDispatcher) HasReminder(ctx context.Context, userID, eventID string) (bool, error) {
	exists, err := d.notifications.Exists(ctx, userID, eventID, domain.ReminderTitle)
	if err != nil {
		return false, fmt.Errorf("check reminder: %w", err)
	}
	return exists, nil
}
