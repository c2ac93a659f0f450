// Package serial speaks the keypad's line protocol: the device sends
// "BTN:<n>" events, the host sends "LED:..." commands and "PING", and
// the device identifies itself with "PONG:<id>".
package serial

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/keytrack/internal/domain"
	"github.com/bnema/keytrack/internal/ports"
	serialport "go.bug.st/serial"
)

const (
	baudRate     = 115200
	readInterval = 200 * time.Millisecond
	ledCount     = 8
)

// wirePort is the slice of go.bug.st/serial.Port the transport needs;
// tests substitute an in-memory implementation.
type wirePort interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	Close() error
}

type Transport struct {
	port wirePort
	name string
	buf  bytes.Buffer
}

var _ ports.Transport = (*Transport)(nil)

// Open connects to the keypad on the named port and drains any events
// queued while no host was listening.
func Open(name string) (*Transport, error) {
	port, err := serialport.Open(name, &serialport.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", name, err)
	}

	if err := port.SetReadTimeout(readInterval); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", name, err)
	}

	_ = port.ResetInputBuffer()
	_ = port.ResetOutputBuffer()

	return &Transport{port: port, name: name}, nil
}

// ReadEvent blocks until one button press arrives. Long-press events
// and unknown lines are dropped here so only plain presses reach the
// key map. A read failure is reported as a device disconnect.
func (t *Transport) ReadEvent(ctx context.Context) (int, error) {
	for {
		line, err := t.readLine(ctx)
		if err != nil {
			return 0, err
		}

		button, ok := parseButtonEvent(line)
		if !ok {
			continue
		}
		return button, nil
	}
}

func (t *Transport) SetLED(index int, color domain.Color) error {
	if index < 0 || index >= ledCount {
		return fmt.Errorf("led index %d out of range", index)
	}
	return t.send(fmt.Sprintf("LED:%d:%d,%d,%d", index, color.R, color.G, color.B))
}

func (t *Transport) SetAllLEDs(color domain.Color) error {
	return t.send(fmt.Sprintf("LED:ALL:%d,%d,%d", color.R, color.G, color.B))
}

func (t *Transport) Close() error {
	return t.port.Close()
}

func (t *Transport) Name() string {
	return t.name
}

func (t *Transport) send(line string) error {
	if _, err := t.port.Write([]byte(line + "\n")); err != nil {
		return fmt.Errorf("write to %s: %w: %w", t.name, domain.ErrDeviceDisconnected, err)
	}
	return nil
}

// readLine accumulates bytes until a newline. The port read times out
// every readInterval so context cancellation is observed promptly.
func (t *Transport) readLine(ctx context.Context) (string, error) {
	chunk := make([]byte, 64)
	for {
		if i := bytes.IndexByte(t.buf.Bytes(), '\n'); i >= 0 {
			line := string(t.buf.Next(i + 1))
			return strings.TrimSpace(line), nil
		}

		if err := ctx.Err(); err != nil {
			return "", err
		}

		n, err := t.port.Read(chunk)
		if err != nil {
			return "", fmt.Errorf("read from %s: %w: %w", t.name, domain.ErrDeviceDisconnected, err)
		}
		t.buf.Write(chunk[:n])
	}
}

// parseButtonEvent extracts the button index from a "BTN:<n>" line.
// "BTN:<n>:LONG" is a firmware long-press marker with no bound action;
// it parses but is rejected along with everything else.
func parseButtonEvent(line string) (int, bool) {
	rest, ok := strings.CutPrefix(line, "BTN:")
	if !ok {
		return 0, false
	}
	if strings.Contains(rest, ":") {
		return 0, false
	}

	button, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return button, true
}
