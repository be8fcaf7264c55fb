package diagram

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/alnah/go-md2html/internal/process"
)

// maxStderr bounds how much renderer stderr is kept for notices.
const maxStderr = 4 << 10

// CommandRunner abstracts command execution so rendering can be tested
// without real subprocesses.
type CommandRunner interface {
	// Run executes name with args and returns its stderr. A non-nil error
	// means the command could not start, exited non-zero, or was killed.
	Run(ctx context.Context, name string, args ...string) (stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec. Cancelling ctx kills
// the whole process group, since npx leaves node children behind.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- candidates come from defaults or user config
	process.Configure(cmd)

	stderr := &cappedBuffer{max: maxStderr}
	cmd.Stderr = stderr

	err := cmd.Run()
	return stderr.String(), err
}

// LookPath reports where name resolves on PATH.
func LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// cappedBuffer keeps the first max bytes written and discards the rest.
type cappedBuffer struct {
	buf bytes.Buffer
	max int
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if room := b.max - b.buf.Len(); room > 0 {
		if len(p) > room {
			b.buf.Write(p[:room])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}

func (b *cappedBuffer) String() string {
	return b.buf.String()
}
