package engine

import (
	"time"

	"github.com/sable-chess/sable/internal/board"
)

// SearchLimits specifies the budget for one search. Setting none of the
// fields (or Infinite) searches until stopped.
type SearchLimits struct {
	Depth    int           // maximum depth (0 = no limit)
	Nodes    uint64        // maximum nodes (0 = no limit)
	MoveTime time.Duration // time for this move (0 = no limit)
	Infinite bool          // search until stopped
}

// SearchInfo reports the state of the search after each completed iteration.
type SearchInfo struct {
	Depth    int
	Score    int
	Nodes    uint64
	Time     time.Duration
	BestMove board.Move
	HashFull int
}

// Engine drives iterative deepening over a Searcher.
type Engine struct {
	tt       *TranspositionTable
	searcher *Searcher

	// OnInfo, when set, is called after every completed iteration.
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine with a transposition table of the given size
// in MB.
func NewEngine(ttSizeMB int) *Engine {
	tt := NewTranspositionTable(ttSizeMB)
	return &Engine{
		tt:       tt,
		searcher: NewSearcher(tt),
	}
}

// SearchWithLimits runs iterative deepening on the position under the given
// limits and returns the best move and its score. The engine borrows the
// position mutably for the duration of the call but returns it unchanged.
//
// An interrupted iteration never degrades the result: the last completed
// iteration's move is kept, and if not even depth 1 completed, any legal
// move is returned. NoMove is returned only when the position has no legal
// moves.
func (e *Engine) SearchWithLimits(pos *board.Position, limits SearchLimits) (board.Move, int) {
	s := e.searcher
	s.pos = pos
	s.nodes = 0
	s.interrupted = false
	s.rootBest = board.NoMove
	s.stopFlag.Store(false)
	s.orderer.Clear()

	s.deadline = time.Time{}
	if limits.MoveTime > 0 && !limits.Infinite {
		s.deadline = time.Now().Add(limits.MoveTime)
	}
	s.nodeLimit = limits.Nodes

	maxDepth := MaxPly - 1
	if limits.Depth > 0 {
		maxDepth = limits.Depth
	}

	start := time.Now()
	best := board.NoMove
	bestScore := -Infinity

	for depth := 1; depth <= maxDepth; depth++ {
		move, score, completed := s.SearchRoot(depth)

		if !completed {
			// A partially searched iteration still yields a legal move if
			// nothing completed before the abort.
			if best == board.NoMove && move != board.NoMove {
				best, bestScore = move, score
			}
			break
		}

		best, bestScore = move, score
		s.rootBest = move

		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth:    depth,
				Score:    bestScore,
				Nodes:    s.nodes,
				Time:     time.Since(start),
				BestMove: best,
				HashFull: e.tt.HashFull(),
			})
		}

		// A forced mate found at this depth cannot improve.
		if bestScore >= MateScore-MaxPly || bestScore <= -MateScore+MaxPly {
			break
		}

		if move == board.NoMove {
			break // no legal moves: mate or stalemate at the root
		}
	}

	if best == board.NoMove {
		ml := pos.LegalMoves()
		if ml.Len() > 0 {
			best = ml.Get(0)
		}
	}

	return best, bestScore
}

// Stop requests termination of the current search.
func (e *Engine) Stop() {
	e.searcher.Stop()
}

// Clear resets the transposition table and ordering state between games.
func (e *Engine) Clear() {
	e.tt.Clear()
	e.searcher.orderer = NewMoveOrderer()
}

// Nodes returns the node count of the most recent search.
func (e *Engine) Nodes() uint64 {
	return e.searcher.Nodes()
}

// ScoreIsMate reports whether a score is in the forced-mate range.
func ScoreIsMate(score int) bool {
	return score >= MateScore-MaxPly || score <= -MateScore+MaxPly
}

// MateDistance converts a mate-range score into full moves until mate,
// negative when the side to move is being mated.
func MateDistance(score int) int {
	if score > 0 {
		return (MateScore - score + 1) / 2
	}
	return -(MateScore + score + 1) / 2
}
