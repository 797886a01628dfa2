package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestNewEngineIsIdle(t *testing.T) {
	timer := &manualTimer{}
	e := New(Options{Timer: timer})

	assert.Equal(t, StatusIdle, e.Status())
	assert.Equal(t, 20, e.Rows())
	assert.Equal(t, 10, e.Cols())
	assert.Equal(t, time.Second, e.Interval())
	assert.False(t, e.Snapshot().HasPiece())

	// Commands before Start do nothing
	e.MoveDown()
	e.Rotate()
	assert.False(t, e.Tick(0))
	assert.Equal(t, 0, timer.schedules)
}

func TestNewEnginePanicsOnTinyBoard(t *testing.T) {
	assert.Panics(t, func() { New(Options{Rows: 3, Cols: 10}) })
	assert.Panics(t, func() { New(Options{Rows: 20, Cols: 2}) })
}

func TestStartSpawnsPiecesAndArmsTimer(t *testing.T) {
	e, timer, rec := newTestEngine(7)

	require.Equal(t, StatusRunning, e.Status())

	for _, p := range []Tetromino{e.Active(), e.Next()} {
		assert.Contains(t, Names(), p.Name)
		assert.NotEqual(t, core.ColorEmpty, p.Color)
		assert.NotEqual(t, core.ColorBlack, p.Color)
		assert.Equal(t, (10-p.Size())/2, p.X, "piece %s should be centered", p.Name)
		assert.Less(t, p.Y, 0, "piece should start above the board")
		if p.Name == O {
			assert.Equal(t, 0, p.Rotation)
		}
	}

	assert.Equal(t, 1, timer.schedules)
	assert.Equal(t, time.Second, timer.after)
	require.Len(t, rec.nexts, 1)
	assert.Equal(t, e.Next(), rec.nexts[0])
}

func TestStartIsDeterministicForSeed(t *testing.T) {
	a, _, _ := newTestEngine(42)
	b, _, _ := newTestEngine(42)

	for range 50 {
		a.MoveDown()
		b.MoveDown()
	}

	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	e, timer, _ := newTestEngine(1)
	e.active = piece(T, 0, 3, 5)

	e.Start()

	assert.Equal(t, 5, e.Active().Y)
	assert.Equal(t, 1, timer.schedules)
}

func TestTickMovesDownAndReschedules(t *testing.T) {
	e, timer, _ := newTestEngine(1)
	e.active = piece(T, 0, 3, 5)
	first := timer.token

	require.True(t, timer.fire(e))

	assert.Equal(t, 6, e.Active().Y)
	assert.Equal(t, 2, timer.schedules)
	assert.NotEqual(t, first, timer.token)
	assert.True(t, timer.pending)
}

func TestManualMoveDownRestartsFallTimer(t *testing.T) {
	e, timer, _ := newTestEngine(1)
	e.active = piece(T, 0, 3, 5)
	stale := timer.token

	e.MoveDown()

	assert.Equal(t, 6, e.Active().Y)
	assert.Equal(t, 2, timer.schedules)
	assert.Equal(t, time.Second, timer.after)

	// The tick armed before the manual move no longer applies
	assert.False(t, e.Tick(stale))
	assert.Equal(t, 6, e.Active().Y)

	assert.True(t, timer.fire(e))
	assert.Equal(t, 7, e.Active().Y)
}

func TestMoveLeftAtWallIsNoop(t *testing.T) {
	e, timer, _ := newTestEngine(1)
	e.active = piece(O, 0, 0, 5)
	before := e.Snapshot()

	e.MoveLeft()

	assert.Equal(t, before, e.Snapshot())
	assert.Equal(t, 1, timer.schedules, "sideways moves do not touch the timer")
}

func TestMoveRightBlockedByLockedCell(t *testing.T) {
	e, _, _ := newTestEngine(1)
	e.board.Place([]Block{{X: 5, Y: 6, Color: core.ColorRed}})
	e.active = piece(O, 0, 2, 5)

	e.MoveRight()
	assert.Equal(t, 3, e.Active().X)

	e.MoveRight()
	assert.Equal(t, 3, e.Active().X, "cell (5,6) blocks the move")

	e.MoveLeft()
	assert.Equal(t, 2, e.Active().X)
}

func TestRotateFourTimesRestoresPiece(t *testing.T) {
	for _, name := range []Name{I, L, J, T, S, Z} {
		e, _, _ := newTestEngine(1)
		e.active = piece(name, 0, 3, 8)
		start := e.Active()

		for range 4 {
			e.Rotate()
		}

		assert.Equal(t, start, e.Active(), "piece %s", name)
	}
}

func TestRotateOPieceIsUnaffected(t *testing.T) {
	e, _, _ := newTestEngine(1)
	e.active = piece(O, 0, 8, 18)

	e.Rotate()

	assert.Equal(t, piece(O, 0, 8, 18), e.Active())
}

func TestRotateNearRightWallNudgesLeft(t *testing.T) {
	e, _, _ := newTestEngine(1)
	e.active = piece(I, 1, 7, 5) // vertical in column 9

	e.Rotate()

	got := e.Active()
	assert.Equal(t, 2, got.Rotation)
	assert.Equal(t, 6, got.X)
	assert.Equal(t, 5, got.Y)
	assert.Equal(t, []core.Point{{X: 6, Y: 7}, {X: 7, Y: 7}, {X: 8, Y: 7}, {X: 9, Y: 7}}, got.Cells())
}

func TestRotateNearLeftWallNudgesRight(t *testing.T) {
	e, _, _ := newTestEngine(1)
	e.active = piece(I, 3, -1, 5) // vertical in column 0

	e.Rotate()

	got := e.Active()
	assert.Equal(t, 0, got.Rotation)
	assert.Equal(t, 0, got.X)
	assert.Equal(t, []core.Point{{X: 0, Y: 6}, {X: 1, Y: 6}, {X: 2, Y: 6}, {X: 3, Y: 6}}, got.Cells())
}

func TestRotateNearFloorLiftsPiece(t *testing.T) {
	e, _, _ := newTestEngine(1)
	e.active = piece(I, 0, 3, 18) // horizontal on row 19

	e.Rotate()

	got := e.Active()
	assert.Equal(t, 1, got.Rotation)
	assert.Equal(t, 16, got.Y, "grid must fit above the floor")
	assert.Equal(t, 4, got.X, "nudged one column toward the center")
	for _, c := range got.Cells() {
		assert.Less(t, c.Y, 20)
	}
}

func TestRotateRejectedWhenNudgeDoesNotHelp(t *testing.T) {
	e, _, _ := newTestEngine(1)
	for y := 5; y <= 8; y++ {
		fillRow(e.board, y, 5)
	}
	e.active = piece(I, 1, 3, 5) // vertical in the column-5 shaft
	before := e.Active()

	e.Rotate()

	assert.Equal(t, before, e.Active())
}

func TestLockFillingRowClearsIt(t *testing.T) {
	e, timer, rec := newTestEngine(3)
	fillRow(e.board, 19, 0, 1, 2, 3)
	e.board.Place([]Block{{X: 9, Y: 18, Color: core.ColorBrown}})
	e.active = piece(I, 0, 0, 18) // horizontal on row 19, columns 0-3
	next := e.Next()
	rec.reset()

	e.MoveDown()

	assert.Equal(t, 1, e.Score())
	assert.Equal(t, 1, e.Lines())
	assert.Equal(t, 990*time.Millisecond, e.Interval())

	grid := e.Grid()
	assert.Equal(t, core.ColorBrown, grid[19][9], "row above dropped into the cleared row")
	for x := 0; x < 9; x++ {
		assert.Equal(t, core.ColorEmpty, grid[19][x])
	}
	for x := 0; x < 10; x++ {
		assert.Equal(t, core.ColorEmpty, grid[0][x], "new empty row at top")
	}

	assert.Equal(t, next, e.Active(), "preview piece becomes active")
	assert.Equal(t, []int{1}, rec.scores)
	require.Len(t, rec.nexts, 1)
	assert.Equal(t, e.Next(), rec.nexts[0])
	assert.Equal(t, []string{"score:1", "next:" + string(e.Next().Name)}, rec.events)

	assert.Equal(t, 990*time.Millisecond, timer.after, "timer restarts at the new interval")
	assert.True(t, timer.pending)
}

func TestLockWithoutClearKeepsScore(t *testing.T) {
	e, timer, rec := newTestEngine(3)
	e.active = piece(O, 0, 4, 18)
	rec.reset()
	schedules := timer.schedules

	e.MoveDown()

	grid := e.Grid()
	assert.Equal(t, core.ColorCyan, grid[18][4])
	assert.Equal(t, core.ColorCyan, grid[19][5])
	assert.Equal(t, 0, e.Score())
	assert.Empty(t, rec.scores)
	assert.Len(t, rec.nexts, 1)
	assert.Equal(t, schedules+1, timer.schedules)
}

func TestMultiRowClearScoresEachRow(t *testing.T) {
	e, _, rec := newTestEngine(3)
	for y := 16; y <= 19; y++ {
		fillRow(e.board, y, 0)
	}
	e.active = piece(I, 3, -1, 16) // vertical in column 0, rows 16-19
	rec.reset()

	e.MoveDown()

	assert.Equal(t, 4, e.Score())
	assert.Equal(t, 960*time.Millisecond, e.Interval())
	assert.Equal(t, []int{1, 2, 3, 4}, rec.scores)
	for y := 0; y < 20; y++ {
		assert.False(t, e.board.IsRowFull(y))
	}
}

func TestIntervalNeverBelowFloor(t *testing.T) {
	e, timer, _ := newTestEngine(3)
	e.lines = 79
	e.interval = 210 * time.Millisecond
	fillRow(e.board, 18, 0, 1)
	fillRow(e.board, 19, 0, 1)
	e.active = piece(O, 0, 0, 18)

	e.MoveDown()

	assert.Equal(t, 2, e.Score())
	assert.Equal(t, 81, e.Lines())
	assert.Equal(t, 200*time.Millisecond, e.Interval())
	assert.Equal(t, 200*time.Millisecond, timer.after)
}

func TestLockAboveBoardIsGameOver(t *testing.T) {
	e, timer, rec := newTestEngine(5)
	e.score = 12
	e.board.Place([]Block{{X: 4, Y: 1, Color: core.ColorRed}})
	e.active = piece(O, 0, 4, -1) // rows -1 and 0, resting on (4,1)
	before := e.Grid()
	cancels := timer.cancels
	rec.reset()

	e.MoveDown()

	assert.Equal(t, StatusGameOver, e.Status())
	assert.True(t, e.IsGameOver())
	assert.Equal(t, before, e.Grid(), "board untouched by the failed lock")
	assert.Equal(t, []int{12}, rec.gameOvers)
	assert.Empty(t, rec.nexts)
	assert.Equal(t, cancels+1, timer.cancels)
	assert.False(t, timer.pending)

	// Terminal: commands and ticks are ignored
	stale := timer.token
	e.MoveDown()
	e.MoveLeft()
	e.Rotate()
	assert.False(t, e.Tick(stale))
	assert.Equal(t, []int{12}, rec.gameOvers)
	assert.Equal(t, -1, e.Active().Y)
}

func TestGameEventuallyEnds(t *testing.T) {
	e, _, rec := newTestEngine(99)

	for i := 0; i < 10000 && !e.IsGameOver(); i++ {
		e.MoveDown()
	}

	require.True(t, e.IsGameOver())
	assert.Len(t, rec.gameOvers, 1)
}

func TestRestartAfterGameOver(t *testing.T) {
	e, timer, rec := newTestEngine(5)
	for i := 0; i < 10000 && !e.IsGameOver(); i++ {
		e.MoveDown()
	}
	require.True(t, e.IsGameOver())
	e.score = 9
	e.interval = 300 * time.Millisecond
	rec.reset()

	e.Start()

	assert.Equal(t, StatusRunning, e.Status())
	assert.Equal(t, 0, e.Score())
	assert.Equal(t, 0, e.Lines())
	assert.Equal(t, time.Second, e.Interval())
	for _, row := range e.Grid() {
		for _, c := range row {
			assert.Equal(t, core.ColorEmpty, c)
		}
	}
	assert.Len(t, rec.nexts, 1)
	assert.True(t, timer.pending)
}

func TestPauseAndResume(t *testing.T) {
	e, timer, _ := newTestEngine(1)
	e.active = piece(T, 0, 3, 5)
	stale := timer.token

	e.Pause()
	assert.Equal(t, StatusPaused, e.Status())
	assert.Equal(t, 1, timer.cancels)
	assert.False(t, timer.pending)

	e.MoveDown()
	e.MoveLeft()
	e.Rotate()
	assert.False(t, e.Tick(stale))
	assert.Equal(t, piece(T, 0, 3, 5), e.Active())

	e.Start()
	assert.Equal(t, StatusPaused, e.Status(), "Start does not reset a paused game")

	e.Resume()
	assert.Equal(t, StatusRunning, e.Status())
	assert.True(t, timer.pending)
	assert.True(t, timer.fire(e))
	assert.Equal(t, 6, e.Active().Y)
}

func TestApplyMapsActions(t *testing.T) {
	e, _, _ := newTestEngine(1)
	e.active = piece(T, 0, 3, 5)

	assert.True(t, e.Apply(core.ActionLeft))
	assert.Equal(t, 2, e.Active().X)
	assert.True(t, e.Apply(core.ActionRight))
	assert.Equal(t, 3, e.Active().X)
	assert.True(t, e.Apply(core.ActionDown))
	assert.Equal(t, 6, e.Active().Y)
	assert.True(t, e.Apply(core.ActionRotate))
	assert.Equal(t, 1, e.Active().Rotation)
	assert.True(t, e.Apply(core.ActionPause))
	assert.Equal(t, StatusPaused, e.Status())
	assert.True(t, e.Apply(core.ActionPause))
	assert.Equal(t, StatusRunning, e.Status())
	assert.False(t, e.Apply(core.ActionQuit))
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	cfg.Board.Rows = 12
	cfg.Board.Cols = 6
	cfg.Speed.InitialMs = 500
	cfg.Scoring.PointsPerLine = 100

	timer := &manualTimer{}
	opts := OptionsFromConfig(cfg)
	opts.Timer = timer
	e := New(opts)
	e.Start()

	assert.Equal(t, 12, e.Rows())
	assert.Equal(t, 6, e.Cols())
	assert.Equal(t, 500*time.Millisecond, timer.after)

	fillRow(e.board, 11, 0, 1)
	e.active = piece(O, 0, 0, 10)
	e.MoveDown()
	assert.Equal(t, 100, e.Score())
	assert.Equal(t, 1, e.Lines())
}

func TestListenerFuncsSkipsNil(t *testing.T) {
	var got []int
	e, _, _ := newTestEngine(1)
	e.Subscribe(ListenerFuncs{ScoreChange: func(s int) { got = append(got, s) }})
	fillRow(e.board, 19, 0, 1)
	e.active = piece(O, 0, 0, 18)

	assert.NotPanics(t, func() { e.MoveDown() })
	assert.Equal(t, []int{1}, got)
}
