package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// Layout constants, in screen characters.
const (
	cellWidth    = 2  // Each board cell is drawn as two runes
	panelWidth   = 16 // Side panel with preview and counters
	panelGap     = 1
	previewRows  = 4
	panelMinRows = 18
)

const blockRune = '█'

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorEmpty:   lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("201")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("27")),
	core.ColorViolet:  lipgloss.NewStyle().Foreground(lipgloss.Color("93")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	core.ColorBrown:   lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorSkyBlue: lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
	core.ColorTan:     lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
	core.ColorNavy:    lipgloss.NewStyle().Foreground(lipgloss.Color("18")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
	core.ColorCrimson: lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
	// Plain black would vanish on dark terminals
	core.ColorBlack: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// panel holds what the side panel shows besides the board snapshot.
type panel struct {
	next    tetris.Tetromino
	hasNext bool
	player  string
	best    int // Top of the score table
	own     int // Player's current score table entry
}

// screenSize returns the buffer size needed for a board of the given size.
func screenSize(rows, cols int) (width, height int) {
	width = cols*cellWidth + 2 + panelGap + panelWidth
	height = max(rows+2, panelMinRows)
	return width, height
}

// drawGame paints the board, the falling piece and the side panel. The
// screen is resized to fit the snapshot's board.
func drawGame(s *core.Screen, snap tetris.Snapshot, p panel) {
	rows, cols := len(snap.Grid), 0
	if rows > 0 {
		cols = len(snap.Grid[0])
	}
	s.Resize(screenSize(rows, cols))
	s.Clear()
	s.DrawBox(core.NewRect(0, 0, cols*cellWidth+2, rows+2))

	for y, row := range snap.Grid {
		for x, c := range row {
			if !c.IsEmpty() {
				drawCell(s, 1+x*cellWidth, 1+y, c)
			}
		}
	}

	// Cells above the top edge stay hidden
	for _, pt := range snap.ActiveCells() {
		if pt.Y >= 0 {
			drawCell(s, 1+pt.X*cellWidth, 1+pt.Y, snap.Active.Color)
		}
	}

	drawPanel(s, cols*cellWidth+2+panelGap, snap, p)

	switch snap.Status {
	case tetris.StatusPaused:
		drawBanner(s, cols*cellWidth+2, rows/2, "PAUSED")
	case tetris.StatusGameOver:
		drawBanner(s, cols*cellWidth+2, rows/2, "GAME OVER")
	}
}

func drawCell(s *core.Screen, x, y int, c core.Color) {
	for i := range cellWidth {
		s.SetCell(x+i, y, core.Cell{Rune: blockRune, Color: c})
	}
}

// drawPanel renders the next-piece preview and the counters at column x.
func drawPanel(s *core.Screen, x int, snap tetris.Snapshot, p panel) {
	s.DrawBox(core.NewRect(x, 0, panelWidth, previewRows+2))
	s.DrawText(x+2, 0, " NEXT ")

	if p.hasNext {
		n := p.next.Size()
		offX := x + (panelWidth-n*cellWidth)/2
		offY := 1 + (previewRows-n)/2
		for r := range n {
			for c := range n {
				if p.next.Filled(r, c) {
					drawCell(s, offX+c*cellWidth, offY+r, p.next.Color)
				}
			}
		}
	}

	y := previewRows + 3
	line := func(label, value string) {
		s.DrawText(x+1, y, label)
		s.DrawText(x+1, y+1, value)
		y += 2
	}
	line("SCORE", fmt.Sprintf("%d", snap.Score))
	line("LINES", fmt.Sprintf("%d", snap.Lines))
	line("SPEED", fmt.Sprintf("%dms", snap.Interval.Milliseconds()))
	if p.best > 0 {
		line("BEST", fmt.Sprintf("%d", p.best))
	}
	if p.own > 0 {
		line("YOU", fmt.Sprintf("%d", p.own))
	}
	if p.player != "" {
		s.DrawText(x+1, y, truncate(p.player, panelWidth-2))
	}
}

// drawBanner writes text centered within the first width columns of row y.
func drawBanner(s *core.Screen, width, y int, text string) {
	text = " " + text + " "
	s.DrawText((width-len(text))/2, y+1, text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorEmpty]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
