package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Snapshot captures the complete engine state for rendering and
// determinism testing. It shares nothing mutable with the engine.
type Snapshot struct {
	Status   Status
	Score    int
	Lines    int
	Interval time.Duration
	Grid     [][]core.Color
	Active   Tetromino
	Next     Tetromino
}

// Snapshot returns the current engine state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Status:   e.status,
		Score:    e.score,
		Lines:    e.lines,
		Interval: e.interval,
		Grid:     e.board.Grid(),
		Active:   e.active,
		Next:     e.next,
	}
}

// HasPiece reports whether Active and Next hold real pieces, which is
// false only before the first Start.
func (s Snapshot) HasPiece() bool {
	return s.Status != StatusIdle
}

// ActiveCells returns the board coordinates of the falling piece's cells.
func (s Snapshot) ActiveCells() []core.Point {
	if !s.HasPiece() {
		return nil
	}
	return s.Active.Cells()
}
