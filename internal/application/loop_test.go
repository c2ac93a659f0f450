package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bnema/keytrack/internal/domain"
	"github.com/bnema/keytrack/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedTransport struct {
	events []int
	empty  func(ctx context.Context) (int, error)
	leds   []string
	closed bool
}

func (s *scriptedTransport) ReadEvent(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(s.events) == 0 {
		if s.empty != nil {
			return s.empty(ctx)
		}
		return 0, domain.ErrDeviceDisconnected
	}

	button := s.events[0]
	s.events = s.events[1:]
	return button, nil
}

func (s *scriptedTransport) SetLED(index int, color domain.Color) error {
	s.leds = append(s.leds, fmt.Sprintf("led:%d:%d,%d,%d", index, color.R, color.G, color.B))
	return nil
}

func (s *scriptedTransport) SetAllLEDs(color domain.Color) error {
	s.leds = append(s.leds, fmt.Sprintf("all:%d,%d,%d", color.R, color.G, color.B))
	return nil
}

func (s *scriptedTransport) Close() error {
	s.closed = true
	return nil
}

func cancelWhenDrained(cancel context.CancelFunc) func(ctx context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		cancel()
		<-ctx.Done()
		return 0, ctx.Err()
	}
}

func newLoopUnderTest(t *testing.T, store *fakeStore, dial func(ctx context.Context) (ports.Transport, error), cfg LoopConfig) (*Loop, *bytes.Buffer) {
	t.Helper()

	tracker := NewTracker(store, &fakeSleeper{}, testClock(), nil)
	out := &bytes.Buffer{}
	render := func(s Summary) (string, error) {
		return fmt.Sprintf("SUMMARY entries=%d", len(s.Entries)), nil
	}

	return NewLoop(dial, NewKeyMap(nil), tracker, render, out, nil, cfg), out
}

func TestLoopShutdownPersistsOpenSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	transport := &scriptedTransport{
		events: []int{2},
		empty:  cancelWhenDrained(cancel),
	}
	store := newFakeStore()
	loop, _ := newLoopUnderTest(t, store, func(context.Context) (ports.Transport, error) {
		return transport, nil
	}, LoopConfig{ReconnectAttempts: 1, ReconnectBackoff: time.Millisecond})

	require.NoError(t, loop.Run(ctx))

	entries := store.all()
	require.Len(t, entries, 1)
	assert.Equal(t, "General", entries[0].Label)

	assert.True(t, transport.closed)
	require.NotEmpty(t, transport.leds)
	assert.Equal(t, "all:0,0,0", transport.leds[len(transport.leds)-1])
}

func TestLoopDisconnectPersistsSessionBeforeFailing(t *testing.T) {
	transport := &scriptedTransport{events: []int{4}}
	store := newFakeStore()

	dials := 0
	dial := func(context.Context) (ports.Transport, error) {
		dials++
		if dials == 1 {
			return transport, nil
		}
		return nil, errors.New("port gone")
	}

	loop, _ := newLoopUnderTest(t, store, dial, LoopConfig{ReconnectAttempts: 2, ReconnectBackoff: time.Millisecond})

	err := loop.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrDeviceDisconnected)

	// The open session was persisted before the reconnect budget was
	// spent, and every allowed attempt was used.
	entries := store.all()
	require.Len(t, entries, 1)
	assert.Equal(t, "Project 1", entries[0].Label)
	assert.Equal(t, 3, dials)
	assert.True(t, transport.closed)
}

func TestLoopReconnectsAndKeepsTracking(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := &scriptedTransport{events: []int{4}}
	second := &scriptedTransport{
		events: []int{2},
		empty:  cancelWhenDrained(cancel),
	}
	store := newFakeStore()

	dials := 0
	dial := func(context.Context) (ports.Transport, error) {
		dials++
		if dials == 1 {
			return first, nil
		}
		return second, nil
	}

	loop, _ := newLoopUnderTest(t, store, dial, LoopConfig{ReconnectAttempts: 3, ReconnectBackoff: time.Millisecond})

	require.NoError(t, loop.Run(ctx))

	labels := make([]string, 0, 2)
	for _, e := range store.all() {
		labels = append(labels, e.Label)
	}
	assert.ElementsMatch(t, []string{"Project 1", "General"}, labels)

	// LED state was re-pushed to the fresh connection.
	assert.NotEmpty(t, second.leds)
}

func TestLoopDropsUnknownButtons(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	transport := &scriptedTransport{
		events: []int{42, 2},
		empty:  cancelWhenDrained(cancel),
	}
	store := newFakeStore()
	loop, _ := newLoopUnderTest(t, store, func(context.Context) (ports.Transport, error) {
		return transport, nil
	}, LoopConfig{ReconnectAttempts: 1, ReconnectBackoff: time.Millisecond})

	require.NoError(t, loop.Run(ctx))

	entries := store.all()
	require.Len(t, entries, 1)
	assert.Equal(t, "General", entries[0].Label)
}

func TestLoopPrintsSummaryOnRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	transport := &scriptedTransport{
		events: []int{8},
		empty:  cancelWhenDrained(cancel),
	}
	store := newFakeStore()
	loop, out := newLoopUnderTest(t, store, func(context.Context) (ports.Transport, error) {
		return transport, nil
	}, LoopConfig{ReconnectAttempts: 1, ReconnectBackoff: time.Millisecond})

	require.NoError(t, loop.Run(ctx))

	assert.Contains(t, out.String(), "SUMMARY entries=0")
}
