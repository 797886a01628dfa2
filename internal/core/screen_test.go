package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(80, 24)

	assert.Equal(t, 80, s.Width())
	assert.Equal(t, 24, s.Height())
	assert.Equal(t, NewRect(0, 0, 80, 24), s.Bounds())

	for y := range s.Height() {
		for x := range s.Width() {
			require.Equal(t, Cell{Rune: ' '}, s.GetCell(x, y), "cell (%d, %d)", x, y)
		}
	}
}

func TestScreenSetAndGetCell(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	assert.Equal(t, Cell{Rune: 'X'}, s.GetCell(5, 5))

	s.SetCell(1, 2, Cell{Rune: '█', Color: ColorCyan})
	assert.Equal(t, Cell{Rune: '█', Color: ColorCyan}, s.GetCell(1, 2))

	// Out of bounds writes are dropped
	s.Set(-1, 0, 'A')
	s.Set(10, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 10, 'A')

	assert.Equal(t, Cell{Rune: ' '}, s.GetCell(-1, 0))
	assert.Equal(t, Cell{Rune: ' '}, s.GetCell(10, 0))
	assert.NotContains(t, s.String(), "A")
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetCell(1, 1, Cell{Rune: '#', Color: ColorRed})
	s.Clear()

	assert.Equal(t, Cell{Rune: ' '}, s.GetCell(1, 1))
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")
	assert.True(t, strings.HasPrefix(s.Row(1), "  Hello"), "row 1 = %q", s.Row(1))

	s.DrawText(18, 0, "Hello")
	assert.True(t, strings.HasSuffix(s.Row(0), "He"), "row 0 = %q", s.Row(0))
	assert.Len(t, []rune(s.Row(0)), 20)
}

func TestScreenRowOutOfRange(t *testing.T) {
	s := NewScreen(3, 2)
	assert.Equal(t, "   ", s.Row(-1))
	assert.Equal(t, "   ", s.Row(2))
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4))

	assert.Equal(t, "┌────┐\n│    │\n│    │\n└────┘", s.String())
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(1, 1, 'X')

	s.Resize(10, 10)
	assert.Equal(t, Cell{Rune: 'X'}, s.GetCell(1, 1), "same size keeps content")

	s.Resize(5, 3)
	require.Equal(t, 5, s.Width())
	require.Equal(t, 3, s.Height())
	assert.Equal(t, Cell{Rune: ' '}, s.GetCell(1, 1))
	assert.Len(t, strings.Split(s.String(), "\n"), 3)
}
