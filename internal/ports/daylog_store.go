package ports

import (
	"context"

	"github.com/bnema/keytrack/internal/domain"
)

// DayLogStore persists closed sessions, one append-only log per calendar
// day. Append must flush durably before returning. ReadAll returns
// entries in append order; a missing day yields an empty slice, not an
// error. Reset moves the day's log aside and starts a fresh one.
type DayLogStore interface {
	Append(ctx context.Context, date domain.Date, entry domain.LogEntry) error
	ReadAll(ctx context.Context, date domain.Date) ([]domain.LogEntry, error)
	Reset(ctx context.Context, date domain.Date) error
}
