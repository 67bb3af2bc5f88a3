//go:build unix

package bootstrap

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// Handoff replaces the current process image with the given command, so the
// server owns the container's PID and receives its signals directly. It only
// returns on error.
func Handoff(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("handoff: no server command given")
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("handoff: %w", err)
	}
	if err := syscall.Exec(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("handoff: exec %s: %w", path, err)
	}
	return nil
}
