// sable-perft counts the legal move tree from a position, optionally
// splitting the count per root move.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/exp/slices"

	"github.com/sable-chess/sable/internal/board"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "FEN string (defaults to the initial position)")
	depth := flag.Int("depth", 0, "perft depth (required)")
	divide := flag.Bool("divide", false, "print per-move node counts at the root")
	phased := flag.Bool("phased", false, "generate quiets and captures in separate passes")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid FEN: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		div := board.PerftDivide(pos, *depth)

		moves := make([]board.Move, 0, len(div))
		for m := range div {
			moves = append(moves, m)
		}
		slices.SortFunc(moves, func(a, b board.Move) bool {
			return a.String() < b.String()
		})

		var total uint64
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, div[m])
			total += div[m]
		}
		fmt.Printf("\nNodes searched: %d\n", total)
		return
	}

	start := time.Now()
	var nodes uint64
	if *phased {
		nodes = board.PerftPhased(pos, *depth)
	} else {
		nodes = board.Perft(pos, *depth)
	}
	elapsed := time.Since(start)

	fmt.Printf("perft(%d) = %d in %v", *depth, nodes, elapsed)
	if elapsed > 0 {
		fmt.Printf(" (%.0f nps)", float64(nodes)/elapsed.Seconds())
	}
	fmt.Println()
}
