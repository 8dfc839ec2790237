//go:build !windows

package terminal

import (
	"testing"

	"github.com/creack/pty"
)

func TestIsTerminalPTY(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer func() {
		_ = tty.Close()
		_ = ptmx.Close()
	}()

	if !IsTerminal(tty) {
		t.Fatalf("expected pty slave to be a terminal")
	}
	if !bothTerminals(tty, tty) {
		t.Fatalf("expected pty slave on both ends to be interactive")
	}
}
