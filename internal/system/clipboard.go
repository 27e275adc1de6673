// Package system wraps the host facilities ledge touches: the clipboard, the
// URL opener, and the wall clock.
package system

import (
	"os"

	"github.com/atotto/clipboard"
	"github.com/muesli/termenv"
)

// Clipboard copies text for the user.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard copies through the OS clipboard, or through the terminal
// with an OSC 52 sequence when running over SSH or inside a multiplexer where
// the local clipboard is not the user's.
type SystemClipboard struct{}

// Copy implements Clipboard.
func (SystemClipboard) Copy(text string) error {
	if shouldUseOSC52() || clipboard.Unsupported {
		termenv.DefaultOutput().Copy(text)
		return nil
	}
	return clipboard.WriteAll(text)
}

func shouldUseOSC52() bool {
	for _, key := range []string{"SSH_TTY", "SSH_CLIENT", "SSH_CONNECTION", "TMUX", "STY"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

// MemoryClipboard records copies. Used in tests and when --no-clipboard is set.
type MemoryClipboard struct {
	Text string
	Err  error
}

// Copy implements Clipboard.
func (c *MemoryClipboard) Copy(text string) error {
	if c.Err != nil {
		return c.Err
	}
	c.Text = text
	return nil
}
