package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"campusevents/internal/domain"
)

// PostgreSQL SQLSTATE codes translated into domain errors.
const (
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
	codeInvalidText          = "22P02"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

func pqCode(err error) string {
	var perr *pq.Error
	if errors.As(err, &perr) {
		return string(perr.Code)
	}
	return ""
}

// isContention reports whether err means the transaction lost a lock race.
func isContention(err error) bool {
	switch pqCode(err) {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return true
	}
	return false
}

func wrapContention(err error) error {
	if err == nil || errors.Is(err, domain.ErrConflict) || !isContention(err) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrConflict, err)
}
