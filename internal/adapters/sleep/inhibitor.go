// Package sleep keeps the host awake by holding a child process:
// caffeinate on macOS, systemd-inhibit on Linux.
package sleep

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"sync"

	"github.com/bnema/keytrack/internal/ports"
)

type Inhibitor struct {
	command []string

	mu  sync.Mutex
	cmd *exec.Cmd
}

var _ ports.SleepPreventer = (*Inhibitor)(nil)

func New() *Inhibitor {
	return &Inhibitor{command: commandForOS(runtime.GOOS)}
}

func commandForOS(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"caffeinate", "-dims"}
	case "linux":
		return []string{
			"systemd-inhibit",
			"--what=idle:sleep",
			"--who=keytrack",
			"--why=time tracking session",
			"sleep", "infinity",
		}
	default:
		return nil
	}
}

// Prevent starts the inhibitor process. Already running is a no-op, so
// the call is idempotent.
func (i *Inhibitor) Prevent(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.cmd != nil {
		return nil
	}
	if len(i.command) == 0 {
		return fmt.Errorf("sleep prevention not supported on %s", runtime.GOOS)
	}

	cmd := exec.CommandContext(ctx, i.command[0], i.command[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", i.command[0], err)
	}

	i.cmd = cmd
	return nil
}

// Allow stops the inhibitor process if one is running.
func (i *Inhibitor) Allow(_ context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.cmd == nil {
		return nil
	}

	cmd := i.cmd
	i.cmd = nil

	if err := cmd.Process.Kill(); err != nil {
		return fmt.Errorf("stop %s: %w", i.command[0], err)
	}
	_ = cmd.Wait()
	return nil
}
