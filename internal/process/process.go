// Package process runs external commands so that a cancelled or timed-out
// command takes its child processes down with it.
package process

import (
	"os/exec"
	"time"
)

// WaitDelay bounds how long Wait blocks on I/O pipes after the command has
// been killed. Launchers such as npx leave grandchildren holding stderr.
const WaitDelay = 2 * time.Second

// Configure prepares cmd so that context cancellation kills the whole
// process tree instead of only the direct child.
func Configure(cmd *exec.Cmd) {
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		KillProcessGroup(cmd.Process.Pid)
		return nil
	}
	cmd.WaitDelay = WaitDelay
}
