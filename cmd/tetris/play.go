package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagName       string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of Tetris.

Controls:
  Left/Right/A/D  - Move
  Down/S          - Move down one row
  Up/W/Space      - Rotate
  P/Esc           - Pause
  R               - New game (after game over)
  Q/Ctrl+C        - Quit

When the game ends you are asked for a name; the score is saved to the
score table under that name, replacing that player's previous score.

Difficulty options:
  easy   - 1000ms initial fall interval
  normal - 800ms initial fall interval
  hard   - 500ms initial fall interval
  fixed  - Speed never increases

Examples:
  tetris play
  tetris play --difficulty hard
  tetris play --config ./my-tetris.yaml
  tetris play --name ann --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		c.Flags().StringVar(&flagName, "name", storage.DefaultPlayer, "Default player name for the score table")
	}
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// loadGameConfig loads the YAML config and applies the difficulty preset.
func loadGameConfig() (config.TetrisConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.TetrisConfig{}, err
	}

	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return config.TetrisConfig{}, err
	}
	config.ApplyTetrisPreset(&cfg, preset)
	return cfg, nil
}

// sessionOptions gathers everything a local TUI session needs. The caller
// closes the returned func.
func sessionOptions() (tui.Options, func(), error) {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return tui.Options{}, nil, err
	}

	cfg, err := loadGameConfig()
	if err != nil {
		closeLog()
		return tui.Options{}, nil, err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store := openStore(logger)
	cleanup := func() {
		if store != nil {
			store.Close()
		}
		closeLog()
	}

	return tui.Options{
		Game: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    flagSeed,
		},
		Store:  store,
		Player: flagName,
		Logger: logger,
	}, cleanup, nil
}

// openStore opens the score database. The game still works without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, _ []string) error {
	opts, cleanup, err := sessionOptions()
	if err != nil {
		return err
	}
	defer cleanup()

	opts.Logger.Info("starting game",
		"rows", opts.Game.Board.Rows,
		"cols", opts.Game.Board.Cols,
		"initial_ms", opts.Game.Speed.InitialMs,
	)

	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
