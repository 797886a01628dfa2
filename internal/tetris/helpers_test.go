package tetris

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// manualTimer records scheduling requests; tests fire ticks by hand.
type manualTimer struct {
	schedules int
	cancels   int
	pending   bool
	after     time.Duration
	token     Token
}

func (m *manualTimer) Schedule(after time.Duration, token Token) {
	m.schedules++
	m.pending = true
	m.after = after
	m.token = token
}

func (m *manualTimer) Cancel() {
	m.cancels++
	m.pending = false
}

// fire delivers the pending tick, as a host would after the delay.
func (m *manualTimer) fire(e *Engine) bool {
	if !m.pending {
		return false
	}
	m.pending = false
	return e.Tick(m.token)
}

// recorder captures notifications in the order they were delivered.
type recorder struct {
	events    []string
	gameOvers []int
	scores    []int
	nexts     []Tetromino
}

func (r *recorder) OnGameOver(finalScore int) {
	r.gameOvers = append(r.gameOvers, finalScore)
	r.events = append(r.events, fmt.Sprintf("gameover:%d", finalScore))
}

func (r *recorder) OnScoreChange(score int) {
	r.scores = append(r.scores, score)
	r.events = append(r.events, fmt.Sprintf("score:%d", score))
}

func (r *recorder) OnNextTetromino(next Tetromino) {
	r.nexts = append(r.nexts, next)
	r.events = append(r.events, "next:"+string(next.Name))
}

func (r *recorder) reset() {
	*r = recorder{}
}

// newTestEngine returns a started 20x10 engine with a manual timer.
func newTestEngine(seed int64) (*Engine, *manualTimer, *recorder) {
	timer := &manualTimer{}
	rec := &recorder{}
	e := New(Options{Seed: seed, Timer: timer})
	e.Subscribe(rec)
	e.Start()
	return e, timer, rec
}

// piece builds a tetromino at an exact rotation and position.
func piece(name Name, rotation, x, y int) Tetromino {
	t := NewTetromino(name, core.ColorCyan)
	t.Rotation = rotation
	t.X = x
	t.Y = y
	return t
}

// fillRow occupies every column of row y except the listed ones.
func fillRow(b *Board, y int, except ...int) {
	skip := make(map[int]bool, len(except))
	for _, x := range except {
		skip[x] = true
	}
	var blocks []Block
	for x := 0; x < b.Cols(); x++ {
		if !skip[x] {
			blocks = append(blocks, Block{X: x, Y: y, Color: core.ColorRed})
		}
	}
	b.Place(blocks)
}
