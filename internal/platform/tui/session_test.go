package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

func newTestSession(store *storage.Store) SessionModel {
	return NewSessionModel(Options{
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 3},
		Store:   store,
		Player:  "ann",
	})
}

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	s, ok := next.(SessionModel)
	require.True(t, ok, "Update returned %T", next)
	return s, cmd
}

func TestSessionMenuStartsPresetGame(t *testing.T) {
	m := newTestSession(nil)
	assert.Contains(t, m.View(), "Welcome, ann")

	// Cursor starts on Normal
	m, cmd := updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenGame, m.screen)
	assert.NotNil(t, cmd, "the game's first fall tick")
	assert.Equal(t, 800*time.Millisecond, m.game.engine.Interval())
	assert.Equal(t, tetris.StatusRunning, m.game.engine.Status())
}

func TestSessionMenuHardPreset(t *testing.T) {
	m := newTestSession(nil)
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 500*time.Millisecond, m.game.engine.Interval())
}

func TestSessionScoresAndBack(t *testing.T) {
	store := openTestStore(t)
	seedScore(t, store, "zed", 42)
	m := newTestSession(store)

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, screenScores, m.screen)
	assert.Contains(t, m.View(), "zed")

	m, _ = updateSession(t, m, runeKey('b'))
	assert.Equal(t, screenMenu, m.screen)
	assert.False(t, m.quitting, "back does not quit the session")
}

func TestSessionFinishedGameReturnsToMenu(t *testing.T) {
	m := newTestSession(nil)
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// Back is ignored until the game is over
	m, _ = updateSession(t, m, runeKey('b'))
	require.Equal(t, screenGame, m.screen)

	for i := 0; i < 10000 && !m.game.Finished(); i++ {
		m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	require.True(t, m.game.Finished(), "game never ended")

	m, _ = updateSession(t, m, runeKey('b'))
	assert.Equal(t, screenMenu, m.screen)
}

func TestSessionQuit(t *testing.T) {
	m := newTestSession(nil)
	m, cmd := updateSession(t, m, runeKey('q'))
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())

	m = newTestSession(nil)
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd = updateSession(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.NotNil(t, cmd)
	assert.True(t, m.quitting, "ctrl+c quits from a game")
}

func TestSessionTracksWindowSize(t *testing.T) {
	m := newTestSession(nil)
	m, _ = updateSession(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 100, m.game.width)
	assert.Equal(t, 40, m.game.height)
}
