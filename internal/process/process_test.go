package process

// Notes:
// - KillProcessGroup: only an invalid PID is exercised. PID 0 or a real PID
//   would signal this test's own process group or unrelated processes.
// - Configure: the kill-on-timeout path is exercised end to end by the
//   diagram package's ExecRunner tests on unix.
// These are acceptable gaps: we test observable behavior, not syscall internals.

import (
	"os/exec"
	"testing"
)

// ---------------------------------------------------------------------------
// TestKillProcessGroup - Invalid PID Handling
// ---------------------------------------------------------------------------

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}

// ---------------------------------------------------------------------------
// TestConfigure - Command preparation
// ---------------------------------------------------------------------------

func TestConfigure(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("mmdc", "--version")
	Configure(cmd)

	if cmd.Cancel == nil {
		t.Fatal("Cancel should be set")
	}
	if cmd.WaitDelay != WaitDelay {
		t.Errorf("WaitDelay = %v, want %v", cmd.WaitDelay, WaitDelay)
	}

	// Cancel before start must not panic.
	if err := cmd.Cancel(); err != nil {
		t.Errorf("Cancel() before start = %v, want nil", err)
	}
}
