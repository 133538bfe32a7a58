// sable-bench runs a fixed-depth search over every position of an EPD file
// and reports node counts and speed.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sable-chess/sable/internal/board"
	"github.com/sable-chess/sable/internal/engine"
	"github.com/sable-chess/sable/internal/epd"
)

func main() {
	file := flag.String("file", "engine.epd", "EPD file with benchmark positions")
	depth := flag.Int("depth", 5, "search depth per position")
	hashMB := flag.Int("hash", 64, "transposition table size in MB")
	flag.Parse()

	records, err := epd.ParseFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", *file, err)
		os.Exit(2)
	}

	eng := engine.NewEngine(*hashMB)

	var totalNodes uint64
	var totalTime time.Duration

	for i, rec := range records {
		pos, err := board.ParseFEN(rec.FEN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "position %d: %v\n", i+1, err)
			os.Exit(2)
		}

		eng.Clear()
		start := time.Now()
		move, score := eng.SearchWithLimits(pos, engine.SearchLimits{Depth: *depth})
		elapsed := time.Since(start)

		nodes := eng.Nodes()
		totalNodes += nodes
		totalTime += elapsed

		fmt.Printf("%-28s depth %2d  move %-6s score %6d  nodes %10d  time %8s\n",
			rec.ID(), *depth, move, score, nodes, elapsed.Round(time.Millisecond))
	}

	fmt.Printf("\n%d positions, %d nodes in %s", len(records), totalNodes, totalTime.Round(time.Millisecond))
	if totalTime > 0 {
		fmt.Printf(" (%.0f nps)", float64(totalNodes)/totalTime.Seconds())
	}
	fmt.Println()
}
