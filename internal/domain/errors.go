package domain

import "errors"

// Sentinel errors shared by repositories, services and the HTTP layer.
var (
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrEventFull            = errors.New("event is full")
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrEventAlreadyOccurred = errors.New("event has already taken place")
	// ErrConflict is returned when the registration transaction lost a lock race
	// (lock timeout, serialization failure or deadlock). Callers may retry.
	ErrConflict = errors.New("conflicting concurrent update, retry")
	// ErrAlreadyNotified is returned when a notification with the same dedup key exists.
	ErrAlreadyNotified = errors.New("notification already exists")
	// ErrTransportFailure is returned when an external notification channel is unreachable.
	ErrTransportFailure = errors.New("notification transport failure")
)
