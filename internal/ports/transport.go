package ports

import (
	"context"

	"github.com/bnema/keytrack/internal/domain"
)

// Transport is the bidirectional link to the keypad. ReadEvent blocks
// until one button press arrives, the context ends, or the device goes
// away (reported as domain.ErrDeviceDisconnected). LED writes are
// fire-and-forget.
type Transport interface {
	ReadEvent(ctx context.Context) (int, error)
	SetLED(index int, color domain.Color) error
	SetAllLEDs(color domain.Color) error
	Close() error
}
