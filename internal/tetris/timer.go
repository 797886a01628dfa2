package tetris

import "time"

// Token identifies one scheduled fall tick. Every reschedule or cancel
// issues a new token, so a tick carrying an older token is stale and ignored.
type Token uint64

// FallTimer is the host-side scheduler that drives automatic falling.
//
// The engine calls Schedule whenever the active piece moves down or locks and
// Cancel on pause and game over. After the delay the host must call
// Engine.Tick with the same token from the goroutine that issues all other
// commands. Schedule replaces any pending tick; at most one is outstanding.
type FallTimer interface {
	Schedule(after time.Duration, token Token)
	Cancel()
}

// nopTimer is used when the host drives ticks itself.
type nopTimer struct{}

func (nopTimer) Schedule(time.Duration, Token) {}
func (nopTimer) Cancel()                       {}
