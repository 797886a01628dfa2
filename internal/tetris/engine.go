// Package tetris implements the falling-block game engine: the piece table,
// tetromino transforms, the board, collision detection and the timed-fall
// state machine. It has no UI dependencies; hosts feed it commands and fall
// ticks from a single goroutine and read its state back for rendering.
package tetris

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Status is the engine's lifecycle state.
type Status int

const (
	StatusIdle     Status = iota // Created, Start not called yet
	StatusRunning                // Accepting commands and ticks
	StatusPaused                 // Fall timer cancelled, commands ignored
	StatusGameOver               // Terminal until the next Start
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Options configures a new Engine. Zero fields take the defaults from
// config.DefaultTetrisConfig.
type Options struct {
	Rows          int
	Cols          int
	Speed         config.SpeedConfig
	PointsPerLine int
	Seed          int64
	Timer         FallTimer
	Logger        *log.Logger
}

// OptionsFromConfig builds engine options from a loaded game config.
func OptionsFromConfig(cfg config.TetrisConfig) Options {
	return Options{
		Rows:          cfg.Board.Rows,
		Cols:          cfg.Board.Cols,
		Speed:         cfg.Speed,
		PointsPerLine: cfg.Scoring.PointsPerLine,
	}
}

func (o Options) withDefaults() Options {
	def := config.DefaultTetrisConfig()
	if o.Rows == 0 {
		o.Rows = def.Board.Rows
	}
	if o.Cols == 0 {
		o.Cols = def.Board.Cols
	}
	if o.Speed == (config.SpeedConfig{}) {
		o.Speed = def.Speed
	}
	if o.PointsPerLine == 0 {
		o.PointsPerLine = def.Scoring.PointsPerLine
	}
	if o.Timer == nil {
		o.Timer = nopTimer{}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Engine owns the complete game state. It is not safe for concurrent use:
// all commands and ticks must come from one goroutine, and each runs to
// completion before the next.
type Engine struct {
	board  *Board
	active Tetromino
	next   Tetromino

	status   Status
	score    int
	lines    int
	interval time.Duration

	curve         config.SpeedCurve
	pointsPerLine int
	colors        []core.Color
	rng           *rand.Rand

	timer     FallTimer
	token     Token
	listeners []Listener
	logger    *log.Logger
}

// New creates an idle engine. Call Start to begin a game.
// Panics if the board is too small to hold every piece.
func New(opts Options) *Engine {
	opts = opts.withDefaults()
	if opts.Rows < config.MinRows || opts.Cols < config.MinCols {
		panic(fmt.Sprintf("tetris: board %dx%d smaller than %dx%d", opts.Cols, opts.Rows, config.MinCols, config.MinRows))
	}

	curve := config.NewSpeedCurve(opts.Speed)
	return &Engine{
		board:         NewBoard(opts.Rows, opts.Cols),
		interval:      curve.Initial(),
		curve:         curve,
		pointsPerLine: opts.PointsPerLine,
		colors:        core.PieceColors(),
		rng:           rand.New(rand.NewSource(opts.Seed)),
		timer:         opts.Timer,
		logger:        opts.Logger,
	}
}

// Subscribe registers a listener for engine notifications.
func (e *Engine) Subscribe(l Listener) {
	e.listeners = append(e.listeners, l)
}

// Start begins a new game. From Idle or GameOver it clears the board, resets
// score and speed, spawns the active and next pieces and starts the fall
// timer. It does nothing while a game is running or paused.
func (e *Engine) Start() {
	if e.status == StatusRunning || e.status == StatusPaused {
		return
	}

	e.board.Reset()
	e.score = 0
	e.lines = 0
	e.interval = e.curve.Initial()
	e.status = StatusRunning

	e.active = e.spawn()
	e.next = e.spawn()

	e.logger.Debug("game started",
		"rows", e.board.Rows(),
		"cols", e.board.Cols(),
		"interval", e.interval,
		"active", e.active.Name,
	)

	e.notifyNext()
	e.schedule()
}

// Tick handles a fall-timer expiry. Stale tokens and ticks outside a running
// game are ignored. Returns whether the tick was applied.
func (e *Engine) Tick(token Token) bool {
	if e.status != StatusRunning || token != e.token {
		return false
	}
	e.MoveDown()
	return true
}

// MoveDown moves the active piece one row down and restarts the fall timer,
// or locks it when it cannot move.
func (e *Engine) MoveDown() {
	if e.status != StatusRunning {
		return
	}
	if Collides(e.board, e.active, 0, 1) {
		e.lock()
		return
	}
	e.active.MoveDown()
	e.schedule()
}

// MoveLeft shifts the active piece one column left if nothing blocks it.
func (e *Engine) MoveLeft() {
	e.shift(-1)
}

// MoveRight shifts the active piece one column right if nothing blocks it.
func (e *Engine) MoveRight() {
	e.shift(1)
}

func (e *Engine) shift(dx int) {
	if e.status != StatusRunning || Collides(e.board, e.active, dx, 0) {
		return
	}
	e.active.X += dx
}

// Rotate advances the active piece's rotation. A rotation that collides gets
// one corrective nudge: a column toward the board center, and a lift so the
// piece's grid fits above the floor. If it still collides the rotation is
// dropped.
func (e *Engine) Rotate() {
	if e.status != StatusRunning {
		return
	}

	candidate := e.active.Clone()
	candidate.Rotate()

	if Collides(e.board, candidate, 0, 0) {
		cols, rows := e.board.Cols(), e.board.Rows()
		switch {
		case 2*candidate.X < cols:
			candidate.X++
		case 2*candidate.X > cols:
			candidate.X--
		}
		if candidate.Y+candidate.Size() > rows {
			candidate.Y = rows - candidate.Size()
		}
		if Collides(e.board, candidate, 0, 0) {
			return
		}
	}

	e.active = candidate
}

// Pause cancels the fall timer and ignores commands until Resume.
func (e *Engine) Pause() {
	if e.status != StatusRunning {
		return
	}
	e.status = StatusPaused
	e.cancel()
	e.logger.Debug("paused", "score", e.score)
}

// Resume continues a paused game at the current interval.
func (e *Engine) Resume() {
	if e.status != StatusPaused {
		return
	}
	e.status = StatusRunning
	e.schedule()
	e.logger.Debug("resumed", "interval", e.interval)
}

// TogglePause pauses a running game or resumes a paused one.
func (e *Engine) TogglePause() {
	switch e.status {
	case StatusRunning:
		e.Pause()
	case StatusPaused:
		e.Resume()
	}
}

// Apply executes the command for a platform action. Returns false for
// actions the engine does not handle.
func (e *Engine) Apply(a core.Action) bool {
	switch a {
	case core.ActionLeft:
		e.MoveLeft()
	case core.ActionRight:
		e.MoveRight()
	case core.ActionDown:
		e.MoveDown()
	case core.ActionRotate:
		e.Rotate()
	case core.ActionPause:
		e.TogglePause()
	case core.ActionRestart:
		e.Start()
	default:
		return false
	}
	return true
}

// lock writes the active piece into the board, clears full rows and brings
// in the next piece. A piece with any cell above row 0 ends the game instead
// and leaves the board untouched.
func (e *Engine) lock() {
	cells := e.active.Cells()
	for _, p := range cells {
		if p.Y < 0 {
			e.gameOver()
			return
		}
	}

	blocks := make([]Block, len(cells))
	for i, p := range cells {
		blocks[i] = Block{X: p.X, Y: p.Y, Color: e.active.Color}
	}
	e.board.Place(blocks)

	cleared := e.board.ClearFullRows()
	for range cleared {
		e.lines++
		e.score += e.pointsPerLine
		e.interval = e.curve.At(e.lines)
		e.notifyScore()
	}
	if cleared > 0 {
		e.logger.Debug("rows cleared",
			"count", cleared,
			"score", e.score,
			"interval", e.interval,
		)
	}

	e.active = e.next
	e.next = e.spawn()
	e.notifyNext()
	e.schedule()
}

func (e *Engine) gameOver() {
	e.status = StatusGameOver
	e.cancel()
	e.logger.Info("game over", "score", e.score, "lines", e.lines)
	for _, l := range e.listeners {
		l.OnGameOver(e.score)
	}
}

// spawn creates a random piece centered above the board. Every piece but O
// also gets a random starting rotation.
func (e *Engine) spawn() Tetromino {
	t := NewTetromino(names[e.rng.Intn(len(names))], e.colors[e.rng.Intn(len(e.colors))])
	if t.Name != O {
		t.Rotation = e.rng.Intn(t.RotationCount())
	}
	t.X = (e.board.Cols() - t.Size()) / 2
	return t
}

// schedule issues a fresh token and arms the fall timer at the current interval.
func (e *Engine) schedule() {
	e.token++
	e.timer.Schedule(e.interval, e.token)
}

// cancel invalidates any pending tick.
func (e *Engine) cancel() {
	e.token++
	e.timer.Cancel()
}

func (e *Engine) notifyScore() {
	for _, l := range e.listeners {
		l.OnScoreChange(e.score)
	}
}

func (e *Engine) notifyNext() {
	for _, l := range e.listeners {
		l.OnNextTetromino(e.next)
	}
}

// Status returns the lifecycle state.
func (e *Engine) Status() Status {
	return e.status
}

// IsGameOver reports whether the last game has ended.
func (e *Engine) IsGameOver() bool {
	return e.status == StatusGameOver
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// Lines returns the number of rows cleared this game.
func (e *Engine) Lines() int {
	return e.lines
}

// Interval returns the current fall interval.
func (e *Engine) Interval() time.Duration {
	return e.interval
}

// Rows returns the board height.
func (e *Engine) Rows() int {
	return e.board.Rows()
}

// Cols returns the board width.
func (e *Engine) Cols() int {
	return e.board.Cols()
}

// Grid returns a copy of the locked cells.
func (e *Engine) Grid() [][]core.Color {
	return e.board.Grid()
}

// Active returns a copy of the falling piece.
func (e *Engine) Active() Tetromino {
	return e.active
}

// Next returns a copy of the preview piece.
func (e *Engine) Next() Tetromino {
	return e.next
}
