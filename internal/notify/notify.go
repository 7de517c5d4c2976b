// Package notify provides desktop notification support.
package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

// Send sends a freedesktop notification via notify-send. Title and message
// are passed as discrete arguments, never through a shell.
func Send(title, message string) error {
	cmd := exec.Command("notify-send", "--app-name=tasknag", "--urgency=critical", title, message)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("notify-send: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
