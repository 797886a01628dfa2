package tetris

import (
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// spawnY is the board row a new piece's grid starts on. It is negative so
// pieces enter from above the visible board.
const spawnY = -2

// Tetromino is a piece instance: a shape, a color, a rotation and a position.
// It is a value type; copying a Tetromino yields an independent piece. The
// rotation table stays private, and State hands out copies.
//
// Moves and rotations do no bounds checking. The engine validates them with
// Collides before committing.
type Tetromino struct {
	Name     Name
	Color    core.Color
	Rotation int
	X, Y     int

	states []State
}

// NewTetromino creates a piece in rotation 0 at column 0, row spawnY.
// Panics for an undefined name.
func NewTetromino(name Name, color core.Color) Tetromino {
	return Tetromino{
		Name:   name,
		Color:  color,
		Y:      spawnY,
		states: lookup(name),
	}
}

// Clone returns an independent copy, used for speculative moves.
func (t Tetromino) Clone() Tetromino {
	return t
}

// State returns a copy of the occupancy grid for the current rotation.
func (t Tetromino) State() State {
	return t.state().Clone()
}

// Filled reports whether sub-cell (r, c) of the current rotation is occupied.
func (t Tetromino) Filled(r, c int) bool {
	return t.state().Filled(r, c)
}

func (t Tetromino) state() State {
	return t.rotations()[t.Rotation]
}

// RotationCount returns how many distinct rotation states the piece has.
func (t Tetromino) RotationCount() int {
	return len(t.rotations())
}

// Size returns the dimension of the piece's bounding grid.
func (t Tetromino) Size() int {
	return t.state().Size()
}

// MoveDown moves the piece one row down.
func (t *Tetromino) MoveDown() {
	t.Y++
}

// MoveLeft moves the piece one column left.
func (t *Tetromino) MoveLeft() {
	t.X--
}

// MoveRight moves the piece one column right.
func (t *Tetromino) MoveRight() {
	t.X++
}

// Rotate advances to the next rotation state. Single-state pieces are unaffected.
func (t *Tetromino) Rotate() {
	t.Rotation = (t.Rotation + 1) % t.RotationCount()
}

// Cells returns the board coordinates of every occupied sub-cell.
func (t Tetromino) Cells() []core.Point {
	return t.cellsAt(0, 0)
}

// cellsAt returns occupied coordinates as if the piece were offset by (dx, dy).
func (t Tetromino) cellsAt(dx, dy int) []core.Point {
	cells := make([]core.Point, 0, 4)
	for r, row := range t.state() {
		for c, filled := range row {
			if filled {
				cells = append(cells, core.Point{X: t.X + c, Y: t.Y + r}.Add(dx, dy))
			}
		}
	}
	return cells
}

// rotations lets literals such as Tetromino{Name: T} resolve their table lazily.
func (t Tetromino) rotations() []State {
	if t.states == nil {
		return lookup(t.Name)
	}
	return t.states
}
