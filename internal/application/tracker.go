package application

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/keytrack/internal/domain"
	"github.com/bnema/keytrack/internal/ports"
	"github.com/charmbracelet/log"
)

// Tracker owns the session state machine: the active layer, at most one
// open session, and the sleep-prevention flag. All transitions run on
// the caller's goroutine; side effects (persistence, sleep toggling)
// complete before Apply returns.
type Tracker struct {
	store   ports.DayLogStore
	sleeper ports.SleepPreventer
	clock   ports.Clock
	logger  *log.Logger

	layer          domain.Layer
	current        *openSession
	sleepPrevented bool
}

type openSession struct {
	session domain.Session
	led     int
	color   domain.Color
}

// Result carries the outcome of one transition: the LED state to push,
// and a summary when the action requested one.
type Result struct {
	Led     domain.LedState
	Summary *Summary
}

func NewTracker(store ports.DayLogStore, sleeper ports.SleepPreventer, clock ports.Clock, logger *log.Logger) *Tracker {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Tracker{
		store:   store,
		sleeper: sleeper,
		clock:   clock,
		logger:  logger,
	}
}

func (t *Tracker) Layer() domain.Layer {
	return t.layer
}

// Tracking reports the label of the open session, if any.
func (t *Tracker) Tracking() (string, bool) {
	if t.current == nil {
		return "", false
	}
	return t.current.session.Label, true
}

// Apply runs one transition. On a persistence failure the open session
// is retained in memory so a later action can retry the write; the
// returned LED state is valid either way.
func (t *Tracker) Apply(ctx context.Context, action domain.Action) (Result, error) {
	switch action.Kind {
	case domain.ActionStartSession:
		if err := t.closeCurrent(ctx); err != nil {
			return Result{Led: t.Led()}, err
		}
		t.open(action.Label, action.LED, action.Color)

	case domain.ActionToggleDefault:
		if t.current != nil {
			if err := t.closeCurrent(ctx); err != nil {
				return Result{Led: t.Led()}, err
			}
		} else {
			t.open(action.Label, domain.AllLEDs, domain.ColorGreen)
		}

	case domain.ActionShiftLayer:
		t.layer = t.layer.Toggle()
		t.logger.Debug("layer shifted", "layer", t.layer)

	case domain.ActionShowSummary:
		date := domain.DateOf(t.clock.Now())
		entries, err := t.store.ReadAll(ctx, date)
		if err != nil {
			return Result{Led: t.Led()}, fmt.Errorf("read day log: %w", err)
		}
		summary := Summarize(date, entries)
		return Result{Led: t.Led(), Summary: &summary}, nil

	case domain.ActionToggleSleep:
		t.toggleSleep(ctx)

	default:
		return Result{Led: t.Led()}, fmt.Errorf("unhandled action kind %q", action.Kind)
	}

	return Result{Led: t.Led()}, nil
}

// CloseOpen persists and discards the open session, if any. Called on
// shutdown and on device disconnect so no tracked time is lost.
func (t *Tracker) CloseOpen(ctx context.Context) error {
	return t.closeCurrent(ctx)
}

// Led recomputes the LED state from the current layer, session and
// sleep flag.
func (t *Tracker) Led() domain.LedState {
	state := domain.LedState{
		SleepPrevented: t.sleepPrevented,
		LayerActive:    t.layer == domain.LayerShifted,
		ProjectLED:     domain.AllLEDs,
	}
	if t.current != nil {
		state.Tracking = true
		state.ProjectLED = t.current.led
		state.ProjectColor = t.current.color
	}
	return state
}

func (t *Tracker) open(label string, led int, color domain.Color) {
	now := t.clock.Now()
	t.current = &openSession{
		session: domain.Session{Label: label, Start: now},
		led:     led,
		color:   color,
	}
	t.logger.Info("session started", "label", label, "start", now.Format("2006-01-02T15:04:05"))
}

func (t *Tracker) closeCurrent(ctx context.Context) error {
	if t.current == nil {
		return nil
	}

	entry := domain.CloseSession(t.current.session, t.clock.Now())
	if err := t.store.Append(ctx, domain.DateOf(entry.Start), entry); err != nil {
		return fmt.Errorf("persist session %q: %w", entry.Label, err)
	}

	t.logger.Info("session stopped", "label", entry.Label, "duration_seconds", entry.DurationSeconds)
	t.current = nil
	return nil
}

func (t *Tracker) toggleSleep(ctx context.Context) {
	t.sleepPrevented = !t.sleepPrevented

	var err error
	if t.sleepPrevented {
		err = t.sleeper.Prevent(ctx)
	} else {
		err = t.sleeper.Allow(ctx)
	}
	if err != nil {
		t.logger.Warn("sleep prevention toggle failed", "enabled", t.sleepPrevented, "err", err)
		return
	}
	t.logger.Info("sleep prevention", "enabled", t.sleepPrevented)
}
