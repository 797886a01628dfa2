package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Block is a single colored cell to be written into the board.
type Block struct {
	X, Y  int
	Color core.Color
}

// Board is the grid of locked cells, indexed [row][col].
// A cell is non-empty iff a locked piece occupies it. The falling piece is
// never written here until it locks.
type Board struct {
	rows  int
	cols  int
	cells [][]core.Color
}

// NewBoard creates an empty board.
// Panics if either dimension is not positive.
func NewBoard(rows, cols int) *Board {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("tetris: invalid board size %dx%d", rows, cols))
	}
	b := &Board{
		rows:  rows,
		cols:  cols,
		cells: make([][]core.Color, rows),
	}
	for r := range b.cells {
		b.cells[r] = make([]core.Color, cols)
	}
	return b
}

// Rows returns the board height.
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the board width.
func (b *Board) Cols() int {
	return b.cols
}

// InBounds reports whether (x, y) is a cell of the board.
func (b *Board) InBounds(x, y int) bool {
	return core.NewRect(0, 0, b.cols, b.rows).Contains(x, y)
}

// At returns the color at (x, y). Panics if out of bounds.
func (b *Board) At(x, y int) core.Color {
	b.mustInBounds(x, y)
	return b.cells[y][x]
}

// IsOccupied reports whether a locked block is at (x, y). Panics if out of bounds.
func (b *Board) IsOccupied(x, y int) bool {
	return !b.At(x, y).IsEmpty()
}

// Place writes each block's color into the board.
// Panics on out-of-bounds coordinates or an empty color; callers only place
// pieces that passed collision checks.
func (b *Board) Place(blocks []Block) {
	for _, blk := range blocks {
		b.mustInBounds(blk.X, blk.Y)
		if blk.Color.IsEmpty() {
			panic(fmt.Sprintf("tetris: placing empty color at (%d, %d)", blk.X, blk.Y))
		}
	}
	for _, blk := range blocks {
		b.cells[blk.Y][blk.X] = blk.Color
	}
}

// IsRowFull reports whether every cell in row y is occupied.
func (b *Board) IsRowFull(y int) bool {
	for _, c := range b.cells[y] {
		if c.IsEmpty() {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row in one pass and returns how many
// were removed. Remaining rows keep their order and settle to the bottom;
// the same number of empty rows appear at the top.
func (b *Board) ClearFullRows() int {
	kept := make([][]core.Color, 0, b.rows)
	for y := 0; y < b.rows; y++ {
		if !b.IsRowFull(y) {
			kept = append(kept, b.cells[y])
		}
	}

	cleared := b.rows - len(kept)
	if cleared == 0 {
		return 0
	}

	for y := 0; y < cleared; y++ {
		b.cells[y] = make([]core.Color, b.cols)
	}
	copy(b.cells[cleared:], kept)
	return cleared
}

// Reset empties every cell.
func (b *Board) Reset() {
	for y := range b.cells {
		clear(b.cells[y])
	}
}

// Grid returns a copy of the cells for rendering.
func (b *Board) Grid() [][]core.Color {
	grid := make([][]core.Color, b.rows)
	for y, row := range b.cells {
		grid[y] = make([]core.Color, b.cols)
		copy(grid[y], row)
	}
	return grid
}

func (b *Board) mustInBounds(x, y int) {
	if !b.InBounds(x, y) {
		panic(fmt.Sprintf("tetris: cell (%d, %d) outside %dx%d board", x, y, b.cols, b.rows))
	}
}
