package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

var piecesCmd = &cobra.Command{
	Use:   "pieces",
	Short: "Show the piece set",
	Long:  `Prints every piece with all of its rotation states, in clockwise order.`,
	Args:  cobra.NoArgs,
	Run:   runPieces,
}

func runPieces(_ *cobra.Command, _ []string) {
	for _, name := range tetris.Names() {
		states := tetris.States(name)
		fmt.Printf("%s (%d rotation", name, len(states))
		if len(states) != 1 {
			fmt.Print("s")
		}
		fmt.Println(")")

		size := states[0].Size()
		for r := 0; r < size; r++ {
			cols := make([]string, len(states))
			for i, st := range states {
				cols[i] = formatRow(st[r])
			}
			fmt.Println("  " + strings.Join(cols, "   "))
		}
		fmt.Println()
	}
}

func formatRow(row []bool) string {
	var sb strings.Builder
	for _, filled := range row {
		if filled {
			sb.WriteString("[]")
		} else {
			sb.WriteString(" .")
		}
	}
	return sb.String()
}
