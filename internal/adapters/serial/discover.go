package serial

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/bnema/keytrack/internal/domain"
	"github.com/charmbracelet/log"
	serialport "go.bug.st/serial"
)

// DeviceID is the identifier the keypad firmware answers PING with.
const DeviceID = "PICO-KEYPAD-V1"

const probeTimeout = time.Second

// Discover probes candidate USB serial ports and returns the name of
// the first one that identifies itself as the keypad. Ports are tried
// highest name first: with both CDC channels exposed the data channel
// usually enumerates after the console.
func Discover(ctx context.Context, logger *log.Logger) (string, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	names, err := serialport.GetPortsList()
	if err != nil {
		return "", fmt.Errorf("list serial ports: %w", err)
	}

	candidates := filterCandidates(names)
	if len(candidates) == 0 {
		return "", domain.ErrNoDeviceFound
	}
	logger.Debug("probing serial ports", "candidates", candidates)

	for _, name := range candidates {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if probe(name) {
			logger.Info("keypad found", "port", name)
			return name, nil
		}
		logger.Debug("not a keypad", "port", name)
	}

	return "", domain.ErrNoDeviceFound
}

func filterCandidates(names []string) []string {
	patterns := []string{"usbmodem", "usbserial", "ttyACM", "ttyUSB"}

	var candidates []string
	for _, name := range names {
		for _, pattern := range patterns {
			if strings.Contains(name, pattern) {
				candidates = append(candidates, name)
				break
			}
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(candidates)))
	return candidates
}

// probe sends PING and waits briefly for the firmware's PONG reply.
func probe(name string) bool {
	port, err := serialport.Open(name, &serialport.Mode{BaudRate: baudRate})
	if err != nil {
		return false
	}
	defer func() { _ = port.Close() }()

	if err := port.SetReadTimeout(probeTimeout); err != nil {
		return false
	}
	_ = port.ResetInputBuffer()

	if _, err := port.Write([]byte("PING\n")); err != nil {
		return false
	}

	deadline := time.Now().Add(probeTimeout)
	var buf []byte
	chunk := make([]byte, 64)
	for time.Now().Before(deadline) {
		n, err := port.Read(chunk)
		if err != nil {
			return false
		}
		buf = append(buf, chunk[:n]...)
		for _, line := range strings.Split(string(buf), "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "PONG:"+DeviceID) {
				return true
			}
		}
	}

	return false
}
