package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bnema/keytrack/internal/domain"
	"github.com/bnema/keytrack/internal/ports"
	"github.com/charmbracelet/log"
)

// LoopConfig bounds the reconnect behavior after a device disconnect.
type LoopConfig struct {
	ReconnectAttempts int
	ReconnectBackoff  time.Duration
}

// Loop is the single-threaded event loop: one blocking read at a time,
// each action fully applied (persistence, LEDs) before the next event.
type Loop struct {
	dial    func(ctx context.Context) (ports.Transport, error)
	keymap  *KeyMap
	tracker *Tracker
	render  func(Summary) (string, error)
	out     io.Writer
	logger  *log.Logger
	cfg     LoopConfig
}

func NewLoop(
	dial func(ctx context.Context) (ports.Transport, error),
	keymap *KeyMap,
	tracker *Tracker,
	render func(Summary) (string, error),
	out io.Writer,
	logger *log.Logger,
	cfg LoopConfig,
) *Loop {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Loop{
		dial:    dial,
		keymap:  keymap,
		tracker: tracker,
		render:  render,
		out:     out,
		logger:  logger,
		cfg:     cfg,
	}
}

// Run connects and processes button events until the context is
// canceled or the device stays gone past the reconnect budget. An open
// session is persisted before either exit path.
func (l *Loop) Run(ctx context.Context) error {
	transport, err := l.dial(ctx)
	if err != nil {
		return fmt.Errorf("connect keypad: %w", err)
	}

	l.pushLeds(transport, l.tracker.Led())

	for {
		button, err := transport.ReadEvent(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return l.shutdown(ctx, transport)
			}

			transport, err = l.reconnect(ctx, transport, err)
			if err != nil {
				return err
			}
			continue
		}

		action, err := l.keymap.Resolve(l.tracker.Layer(), button)
		if err != nil {
			if errors.Is(err, domain.ErrUnknownButton) {
				l.logger.Warn("dropping event", "err", err)
				continue
			}
			return err
		}
		l.logger.Debug("button event", "button", button, "action", action.Kind)

		result, err := l.tracker.Apply(ctx, action)
		if err != nil {
			// The open session is retained by the tracker; the next
			// action retries the write.
			l.logger.Error("action failed", "action", action.Kind, "err", err)
		}
		l.pushLeds(transport, result.Led)

		if result.Summary != nil {
			l.printSummary(*result.Summary)
		}
	}
}

// reconnect handles a mid-read transport failure: safety-persist the open
// session first, then retry the connection with bounded backoff.
func (l *Loop) reconnect(ctx context.Context, transport ports.Transport, cause error) (ports.Transport, error) {
	l.logger.Warn("keypad read failed", "err", cause)
	_ = transport.Close()

	if err := l.tracker.CloseOpen(context.WithoutCancel(ctx)); err != nil {
		l.logger.Error("closing session after disconnect", "err", err)
	}

	for attempt := 1; attempt <= l.cfg.ReconnectAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.cfg.ReconnectBackoff * time.Duration(attempt)):
		}

		reconnected, err := l.dial(ctx)
		if err == nil {
			l.logger.Info("keypad reconnected", "attempt", attempt)
			l.pushLeds(reconnected, l.tracker.Led())
			return reconnected, nil
		}
		l.logger.Warn("reconnect attempt failed", "attempt", attempt, "err", err)
	}

	return nil, fmt.Errorf("gave up after %d reconnect attempts: %w", l.cfg.ReconnectAttempts, domain.ErrDeviceDisconnected)
}

func (l *Loop) shutdown(ctx context.Context, transport ports.Transport) error {
	defer func() { _ = transport.Close() }()

	if err := l.tracker.CloseOpen(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("close session on shutdown: %w", err)
	}
	_ = transport.SetAllLEDs(domain.ColorOff)
	return nil
}

// pushLeds translates an LedState into the idempotent LED commands.
// LED writes are fire-and-forget; failures are logged, never fatal.
func (l *Loop) pushLeds(transport ports.Transport, state domain.LedState) {
	report := func(err error) {
		if err != nil {
			l.logger.Debug("led write failed", "err", err)
		}
	}

	report(transport.SetAllLEDs(domain.ColorOff))
	if state.Tracking {
		if state.ProjectLED == domain.AllLEDs {
			report(transport.SetAllLEDs(state.ProjectColor))
		} else {
			report(transport.SetLED(state.ProjectLED, state.ProjectColor))
		}
	}
	if state.SleepPrevented {
		report(transport.SetLED(domain.LEDSleep, domain.ColorBlue))
	}
	if state.LayerActive {
		report(transport.SetLED(domain.LEDLayer, domain.ColorYellow))
	}
}

func (l *Loop) printSummary(summary Summary) {
	if l.render == nil || l.out == nil {
		return
	}

	text, err := l.render(summary)
	if err != nil {
		l.logger.Error("render summary", "err", err)
		return
	}
	_, _ = fmt.Fprintln(l.out, text)
}
