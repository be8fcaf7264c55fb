package diagram

// Notes:
// - The shell-based test is skipped on Windows; process group handling
//   there is covered by internal/process.

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestExecRunner_MissingExecutable(t *testing.T) {
	t.Parallel()

	_, err := ExecRunner{}.Run(context.Background(), "md2html-no-such-renderer")
	if err == nil {
		t.Fatal("expected error for missing executable")
	}
}

func TestExecRunner_Stderr(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}

	stderr, err := ExecRunner{}.Run(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("expected non-zero exit error")
	}
	if strings.TrimSpace(stderr) != "boom" {
		t.Errorf("stderr = %q, want boom", stderr)
	}
}

func TestExecRunner_Timeout(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := ExecRunner{}.Run(ctx, "sh", "-c", "sleep 10")
	if err == nil {
		t.Fatal("expected error for killed command")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Run took %v, want prompt kill", elapsed)
	}
}

func TestCappedBuffer(t *testing.T) {
	t.Parallel()

	b := &cappedBuffer{max: 4}
	n, err := b.Write([]byte("abcdef"))
	if err != nil || n != 6 {
		t.Fatalf("Write() = (%d, %v), want (6, nil)", n, err)
	}
	_, _ = b.Write([]byte("gh"))
	if got := b.String(); got != "abcd" {
		t.Errorf("String() = %q, want abcd", got)
	}
}
