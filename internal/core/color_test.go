package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPieceColorsExcludeSentinels(t *testing.T) {
	colors := PieceColors()
	require.Len(t, colors, 12)

	assert.NotContains(t, colors, ColorEmpty)
	assert.NotContains(t, colors, ColorBlack)
	for _, c := range colors {
		assert.True(t, c.Valid(), "color %d", c)
	}
}

func TestColorString(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{ColorEmpty, "empty"},
		{ColorSkyBlue, "skyblue"},
		{ColorBlack, "black"},
		{Color(200), "unknown"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.c.String())
	}
}

func TestColorIsEmpty(t *testing.T) {
	assert.True(t, ColorEmpty.IsEmpty())
	assert.False(t, ColorBlack.IsEmpty(), "black is a real fill")
}
