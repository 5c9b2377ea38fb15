package domain

import (
	"context"
	"time"
)

// PhaseBudget is the wall-clock ceiling shared by every test in a pass.
type PhaseBudget struct {
	deadline time.Time
	now      func() time.Time
}

// NewPhaseBudget starts a budget of d. A non-positive d never expires.
func NewPhaseBudget(d time.Duration) *PhaseBudget {
	return newPhaseBudgetWithClock(d, time.Now)
}

func newPhaseBudgetWithClock(d time.Duration, now func() time.Time) *PhaseBudget {
	b := &PhaseBudget{now: now}
	if d > 0 {
		b.deadline = now().Add(d)
	}

	return b
}

// Exhausted reports whether the budget has run out or ctx is done.
func (b *PhaseBudget) Exhausted(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}

	if b == nil || b.deadline.IsZero() {
		return false
	}

	return !b.now().Before(b.deadline)
}

// Remaining returns the time left, or zero when unlimited or spent.
func (b *PhaseBudget) Remaining() time.Duration {
	if b == nil || b.deadline.IsZero() {
		return 0
	}

	left := b.deadline.Sub(b.now())
	if left < 0 {
		return 0
	}

	return left
}
