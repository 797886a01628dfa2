// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris play              - Play a game
//	tetris menu              - Pick a difficulty from a menu, play repeatedly
//	tetris serve             - Start SSH server for remote play
//	tetris scores            - Show the score table
//	tetris pieces            - Print the piece set and its rotations
//
// Global flags:
//
//	--seed <value>      - Set RNG seed for a reproducible piece sequence
//	--db <path>         - Set database path (default: ~/.tetris/scores.db)
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
//
// Flag defaults may also come from the environment or a .env file:
// TETRIS_DB, TETRIS_CONFIG and TETRIS_LOG_LEVEL.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

// envFlags maps flag names to the environment variables that default them.
var envFlags = map[string]string{
	"db":        "TETRIS_DB",
	"config":    "TETRIS_CONFIG",
	"log-level": "TETRIS_LOG_LEVEL",
}

func main() {
	// A missing .env file is fine
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - falling blocks in your terminal",
	Long: `Tetris is the classic falling-block puzzle for the terminal.

Available commands:
  play     - Start a game directly
  menu     - Choose a difficulty from a menu
  serve    - Start SSH server for remote play
  scores   - View the score table
  pieces   - Show the piece set

Examples:
  tetris play
  tetris play --difficulty hard
  tetris menu
  tetris serve --ssh :2222
  tetris scores`,
	SilenceUsage:      true,
	PersistentPreRunE: applyEnvDefaults,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(piecesCmd)
}

// applyEnvDefaults fills flags not given on the command line from the
// environment.
func applyEnvDefaults(cmd *cobra.Command, _ []string) error {
	var errs []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		env, ok := envFlags[f.Name]
		if !ok || f.Changed {
			return
		}
		if v, set := os.LookupEnv(env); set && v != "" {
			if err := f.Value.Set(v); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", env, err))
			}
		}
	})
	return errors.Join(errs...)
}
