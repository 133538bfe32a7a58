// Package uci implements the Universal Chess Interface protocol loop.
package uci

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sable-chess/sable/internal/board"
	"github.com/sable-chess/sable/internal/engine"
)

const (
	engineName   = "Sable"
	engineAuthor = "Sable authors"

	defaultHashMB = 64
)

// UCI is the protocol handler. It runs on the calling goroutine and spawns
// one search goroutine per "go" command; the two share only the engine's
// atomic stop flag, and the search goroutine closes searchDone when done.
type UCI struct {
	engine   *engine.Engine
	position *board.Position
	hashMB   int

	searching  bool
	searchDone chan struct{}
}

// New creates a new UCI protocol handler.
func New(eng *engine.Engine) *UCI {
	return &UCI{
		engine:   eng,
		position: board.NewPosition(),
		hashMB:   defaultHashMB,
	}
}

// Run reads commands from stdin until "quit" or EOF. Exactly one "bestmove"
// line is emitted per "go" command.
func (u *UCI) Run() {
	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "quit":
			u.handleStop()
			return
		case "setoption":
			u.handleSetOption(args)
		// Debug commands
		case "d":
			fmt.Println(RenderBoard(u.position))
			fmt.Printf("Fen: %s\nHash: %016x\n", u.position.ToFEN(), u.position.Hash)
		case "perft":
			u.handlePerft(args)
		case "eval":
			fmt.Printf("static eval: %d cp (side to move)\n", engine.Evaluate(u.position))
		default:
			fmt.Printf("info string unknown command: %s\n", cmd)
		}
	}
}

func (u *UCI) handleUCI() {
	fmt.Printf("id name %s\n", engineName)
	fmt.Printf("id author %s\n", engineAuthor)
	fmt.Println()
	fmt.Println("option name Hash type spin default 64 min 1 max 4096")
	fmt.Println("uciok")
}

func (u *UCI) handleNewGame() {
	u.engine.Clear()
	u.position = board.NewPosition()
}

// handlePosition parses and installs a position. Formats:
//   - position startpos [moves ...]
//   - position fen <fen> [moves ...]
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	fenEnd, moveStart := len(args), len(args)
	for i, arg := range args {
		if arg == "moves" {
			fenEnd, moveStart = i, i+1
			break
		}
	}

	switch args[0] {
	case "startpos":
		u.position = board.NewPosition()
	case "fen":
		pos, err := board.ParseFEN(strings.Join(args[1:fenEnd], " "))
		if err != nil {
			fmt.Fprintf(os.Stderr, "info string invalid FEN: %v\n", err)
			return
		}
		u.position = pos
	default:
		return
	}

	for _, moveStr := range args[moveStart:] {
		move, err := u.position.ParseMove(moveStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "info string invalid move %q: %v\n", moveStr, err)
			return
		}
		u.position.MakeMove(move)
		u.position.ResetPly()
	}
}

// goOptions holds the parsed budget hints of a "go" command.
type goOptions struct {
	depth     int
	nodes     uint64
	moveTime  time.Duration
	infinite  bool
	clock     engine.ClockInfo
	hasClock  bool
	movesToGo int
}

func (u *UCI) handleGo(args []string) {
	if u.searching {
		select {
		case <-u.searchDone:
		default:
			return
		}
	}

	opts := parseGoOptions(args)
	limits := u.resolveLimits(opts)

	u.searching = true
	u.searchDone = make(chan struct{})

	pos := u.position.Copy()

	u.engine.OnInfo = func(info engine.SearchInfo) {
		sendInfo(info)
	}

	go func() {
		defer close(u.searchDone)

		bestMove, _ := u.engine.SearchWithLimits(pos, limits)

		// A position with no legal moves answers with the null move.
		fmt.Printf("bestmove %s\n", bestMove.String())
	}()
}

func parseGoOptions(args []string) goOptions {
	opts := goOptions{}

	readMS := func(s string) time.Duration {
		ms, _ := strconv.Atoi(s)
		return time.Duration(ms) * time.Millisecond
	}

	for i := 0; i < len(args); i++ {
		if i+1 >= len(args) {
			if args[i] == "infinite" {
				opts.infinite = true
			}
			continue
		}
		switch args[i] {
		case "depth":
			opts.depth, _ = strconv.Atoi(args[i+1])
			i++
		case "nodes":
			opts.nodes, _ = strconv.ParseUint(args[i+1], 10, 64)
			i++
		case "movetime":
			opts.moveTime = readMS(args[i+1])
			i++
		case "wtime":
			opts.clock.Time[board.White] = readMS(args[i+1])
			opts.hasClock = true
			i++
		case "btime":
			opts.clock.Time[board.Black] = readMS(args[i+1])
			opts.hasClock = true
			i++
		case "winc":
			opts.clock.Inc[board.White] = readMS(args[i+1])
			i++
		case "binc":
			opts.clock.Inc[board.Black] = readMS(args[i+1])
			i++
		case "movestogo":
			opts.clock.MovesToGo, _ = strconv.Atoi(args[i+1])
			i++
		case "infinite":
			opts.infinite = true
		}
	}

	return opts
}

// resolveLimits converts go options into engine search limits.
func (u *UCI) resolveLimits(opts goOptions) engine.SearchLimits {
	limits := engine.SearchLimits{}

	if opts.infinite {
		limits.Infinite = true
		return limits
	}

	limits.Depth = opts.depth
	limits.Nodes = opts.nodes

	switch {
	case opts.moveTime > 0:
		limits.MoveTime = opts.moveTime
	case opts.hasClock:
		limits.MoveTime = engine.AllocateTime(opts.clock, u.position.SideToMove, u.position.FullMoveNumber)
	}

	return limits
}

// sendInfo prints one UCI info line per completed iteration.
func sendInfo(info engine.SearchInfo) {
	var parts []string

	parts = append(parts, fmt.Sprintf("depth %d", info.Depth))

	if engine.ScoreIsMate(info.Score) {
		parts = append(parts, fmt.Sprintf("score mate %d", engine.MateDistance(info.Score)))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %d", info.Score))
	}

	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))

	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}

	if info.HashFull > 0 {
		parts = append(parts, fmt.Sprintf("hashfull %d", info.HashFull))
	}

	if info.BestMove != board.NoMove {
		parts = append(parts, "pv "+info.BestMove.String())
	}

	fmt.Printf("info %s\n", strings.Join(parts, " "))
}

// handleStop requests termination and waits for the single bestmove line.
func (u *UCI) handleStop() {
	if u.searching {
		u.engine.Stop()
		<-u.searchDone
	}
}

func (u *UCI) handleSetOption(args []string) {
	var name, value string
	reading := ""

	for _, arg := range args {
		switch arg {
		case "name":
			reading = "name"
		case "value":
			reading = "value"
		default:
			switch reading {
			case "name":
				if name != "" {
					name += " "
				}
				name += arg
			case "value":
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	switch strings.ToLower(name) {
	case "hash":
		mb, err := strconv.Atoi(value)
		if err != nil || mb < 1 {
			fmt.Fprintf(os.Stderr, "info string invalid Hash value: %s\n", value)
			return
		}
		u.hashMB = mb
		u.engine = engine.NewEngine(mb)
	}
}

func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		depth, _ = strconv.Atoi(args[0])
	}

	start := time.Now()
	nodes := board.Perft(u.position, depth)
	elapsed := time.Since(start)

	fmt.Printf("Nodes: %d\n", nodes)
	fmt.Printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}
