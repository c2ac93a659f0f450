package ports

import "context"

// SleepPreventer keeps the host awake while a session is being tracked.
type SleepPreventer interface {
	Prevent(ctx context.Context) error
	Allow(ctx context.Context) error
}
