package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
	flagReset       bool
	flagRecent      int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the score table",
	Long: `Display the score table: the latest score of every player, best first,
followed by overall statistics.

Examples:
  tetris scores
  tetris scores --limit 5
  tetris scores --interactive
  tetris scores --recent 5
  tetris scores --reset`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of players to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the table in a scrollable view")
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete every recorded score")
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 0, "Also list this many of the latest finished games")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagReset {
		if err := store.ClearScores(); err != nil {
			return err
		}
		fmt.Println("Score table cleared.")
		return nil
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	scores, err := store.TopScores(flagLimit)
	if err != nil {
		return err
	}

	fmt.Println("Score Table - Tetris")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetris play' to set the first score!")
		return nil
	}

	fmt.Printf("  %-4s  %-20s  %-8s  %-6s  %s\n", "Rank", "Player", "Score", "Lines", "Date")
	fmt.Printf("  %-4s  %-20s  %-8s  %-6s  %s\n", "----", "------", "-----", "-----", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-20s  %-8d  %-6d  %s\n",
			i+1, entry.Name, entry.Score, entry.Lines, entry.UpdatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetStats()
	if err == nil {
		fmt.Println()
		fmt.Printf("Players: %d  Games: %d  Best: %d  Average: %.1f  Lines: %d\n",
			stats.Players, stats.GamesCount, stats.HighScore, stats.AvgScore, stats.TotalLines)
	}

	if flagRecent > 0 {
		return printRecentGames(store, flagRecent)
	}
	return nil
}

// printRecentGames lists the latest finished games, newest first.
func printRecentGames(store *storage.Store, limit int) error {
	games, err := store.RecentGames(limit)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Recent games")
	fmt.Printf("  %-20s  %-8s  %-6s  %-8s  %s\n", "Player", "Score", "Lines", "Time", "Played")
	for _, g := range games {
		fmt.Printf("  %-20s  %-8d  %-6d  %-8s  %s\n",
			g.Name, g.Score, g.Lines, g.Duration, g.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
