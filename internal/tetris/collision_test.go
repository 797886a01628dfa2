package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestCollides(t *testing.T) {
	b := NewBoard(20, 10)
	b.Place([]Block{{X: 5, Y: 10, Color: core.ColorRed}})

	tests := []struct {
		name     string
		piece    Tetromino
		dx, dy   int
		expected bool
	}{
		{"open space", piece(O, 0, 0, 5), 0, 1, false},
		{"left wall", piece(O, 0, 0, 5), -1, 0, true},
		{"right wall", piece(O, 0, 8, 5), 1, 0, true},
		{"next to right wall", piece(O, 0, 7, 5), 1, 0, false},
		{"floor", piece(O, 0, 0, 18), 0, 1, true},
		{"resting just above floor", piece(O, 0, 0, 17), 0, 1, false},
		{"locked cell below", piece(O, 0, 4, 8), 0, 1, true},
		{"locked cell beside", piece(O, 0, 3, 9), 1, 0, true},
		{"entirely above board", piece(I, 1, 3, -10), 0, 1, false},
		{"above board but past wall", piece(O, 0, 9, -5), 0, 0, true},
		{"empty grid cells may overhang wall", piece(I, 1, -2, 5), 0, 0, false},
		{"offset zero overlap", piece(O, 0, 5, 9), 0, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Collides(b, tc.piece, tc.dx, tc.dy))
		})
	}
}

func TestCollidesDownUntilFloorOrStack(t *testing.T) {
	for _, name := range Names() {
		for rot := range States(name) {
			b := NewBoard(20, 10)
			p := piece(name, rot, 3, -4)

			// Falls freely until the lowest cell sits on the floor
			for !Collides(b, p, 0, 1) {
				p.MoveDown()
			}
			lowest := -1
			for _, c := range p.Cells() {
				lowest = max(lowest, c.Y)
			}
			assert.Equal(t, 19, lowest, "piece %s rotation %d should rest on the floor", name, rot)

			// Lock it and drop the same piece on top
			blocks := make([]Block, 0, 4)
			for _, c := range p.Cells() {
				blocks = append(blocks, Block{X: c.X, Y: c.Y, Color: core.ColorRed})
			}
			b.Place(blocks)

			q := piece(name, rot, 3, -4)
			for !Collides(b, q, 0, 1) {
				q.MoveDown()
			}
			assert.Less(t, q.Y, p.Y, "piece %s rotation %d should rest above the first", name, rot)
			assert.False(t, Collides(b, q, 0, 0), "piece %s rotation %d overlaps the stack", name, rot)
		}
	}
}

func TestCollidesHasNoSideEffects(t *testing.T) {
	b := NewBoard(20, 10)
	p := piece(T, 2, 4, 4)
	before := b.Grid()

	Collides(b, p, 0, 1)
	Collides(b, p, -5, 0)

	assert.Equal(t, before, b.Grid())
	assert.Equal(t, 4, p.X)
	assert.Equal(t, 4, p.Y)
}
