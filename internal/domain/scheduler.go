package domain

import (
	"context"
	"time"
)

// RunResult summarizes one reminder scan.
// swagger:model RunResult
type RunResult struct {
	RemindersSent int `json:"reminders_sent"`
	Skipped       int `json:"skipped"`
	Failed        int `json:"failed"`
}

// ReminderScheduler finds events entering the reminder window and reminds their registrants.
type ReminderScheduler interface {
	RunOnce(ctx context.Context) (RunResult, error)
	Start(ctx context.Context)
}

// RunLease coordinates redundant scheduler instances. It is an optimization only:
// reminder dedup never depends on it.
type RunLease interface {
	// Acquire tries to take the lease for ttl. ok is false when another holder has it.
	Acquire(ctx context.Context, ttl time.Duration) (release func(), ok bool, err error)
}
