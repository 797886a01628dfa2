// Package tui hosts the tetris engine in a Bubble Tea program, locally or
// per SSH session. The Bubble Tea update loop is the engine's only caller:
// keys and fall ticks are both messages, so they never interleave.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// FallMsg is delivered when a scheduled fall delay expires.
type FallMsg struct {
	Token tetris.Token
}

// teaTimer implements tetris.FallTimer on top of tea.Tick. The engine calls
// it synchronously during Update; the request is held until Update returns
// and then issued as a command.
type teaTimer struct {
	pending bool
	after   time.Duration
	token   tetris.Token
}

func (t *teaTimer) Schedule(after time.Duration, token tetris.Token) {
	t.pending = true
	t.after = after
	t.token = token
}

// Cancel drops a request not yet issued. A tick already in flight arrives
// with an old token and is ignored by the engine.
func (t *teaTimer) Cancel() {
	t.pending = false
}

// cmd returns the command for the pending request, if any, and clears it.
func (t *teaTimer) cmd() tea.Cmd {
	if !t.pending {
		return nil
	}
	t.pending = false
	token := t.token
	return tea.Tick(t.after, func(time.Time) tea.Msg {
		return FallMsg{Token: token}
	})
}

var _ tetris.FallTimer = (*teaTimer)(nil)
