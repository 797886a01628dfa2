package tetris

// Collides reports whether piece, shifted by (dx, dy), would overlap a side
// wall, the floor, or a locked cell. Rows above the board (y < 0) never
// collide on their own, so pieces can spawn and hang above the visible area.
//
// It has no side effects and is used both for real moves and for
// speculative rotation checks.
func Collides(b *Board, piece Tetromino, dx, dy int) bool {
	for _, p := range piece.cellsAt(dx, dy) {
		if p.X < 0 || p.X >= b.Cols() || p.Y >= b.Rows() {
			return true
		}
		if p.Y >= 0 && b.IsOccupied(p.X, p.Y) {
			return true
		}
	}
	return false
}
