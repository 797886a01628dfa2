package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a difficulty menu",
	Long: `Start Tetris in interactive menu mode.

Pick a difficulty to play, or open the score table. After a game ends,
press B or Esc to return to the menu and play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Score table
  Q            - Quit

Examples:
  tetris menu
  tetris menu --config ./my-tetris.yaml
  tetris menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	opts, cleanup, err := sessionOptions()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := tui.RunSession(opts); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
