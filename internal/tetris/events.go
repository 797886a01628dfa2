package tetris

// Listener receives engine notifications. Calls are synchronous, made from
// inside the command that triggered them and before the engine changes state
// again. Listeners must not call back into the engine.
type Listener interface {
	// OnGameOver fires once when a piece locks above the visible board.
	OnGameOver(finalScore int)
	// OnScoreChange fires once per cleared row with the updated score.
	OnScoreChange(score int)
	// OnNextTetromino fires whenever a new preview piece is generated.
	OnNextTetromino(next Tetromino)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	GameOver      func(finalScore int)
	ScoreChange   func(score int)
	NextTetromino func(next Tetromino)
}

func (f ListenerFuncs) OnGameOver(finalScore int) {
	if f.GameOver != nil {
		f.GameOver(finalScore)
	}
}

func (f ListenerFuncs) OnScoreChange(score int) {
	if f.ScoreChange != nil {
		f.ScoreChange(score)
	}
}

func (f ListenerFuncs) OnNextTetromino(next Tetromino) {
	if f.NextTetromino != nil {
		f.NextTetromino(next)
	}
}

var _ Listener = ListenerFuncs{}
