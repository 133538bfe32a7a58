package engine

import (
	"sync/atomic"
	"time"

	"github.com/sable-chess/sable/internal/board"
)

// Score constants.
const (
	Infinity  = 30000
	MateScore = 29000
	DrawScore = 0

	MaxPly = board.MaxPly
)

// stopCheckMask bounds the cost of the interrupt predicate: the expensive
// checks run only once every 2^11 nodes.
const stopCheckMask = 2047

// Searcher runs negamax with alpha-beta pruning and quiescence over a
// borrowed position. It owns the position mutably for the duration of a
// search; the only state shared with other goroutines is the stop flag.
type Searcher struct {
	pos     *board.Position
	tt      *TranspositionTable
	orderer *MoveOrderer

	stopFlag atomic.Bool

	// Limits resolved for the current search.
	deadline  time.Time
	nodeLimit uint64

	nodes       uint64
	interrupted bool
	rootBest    board.Move // best move of the previous completed iteration
}

// NewSearcher creates a searcher backed by the given transposition table.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{
		tt:      tt,
		orderer: NewMoveOrderer(),
	}
}

// Stop requests cooperative termination of the current search.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// Nodes returns the number of nodes visited in the current search.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// checkStop evaluates the interrupt predicate. Once it trips, every later
// call reports true so the abort propagates up the recursion without the
// callers using the sentinel score.
func (s *Searcher) checkStop() bool {
	if s.interrupted {
		return true
	}
	if s.nodes&stopCheckMask != 0 {
		return false
	}
	if s.stopFlag.Load() {
		s.interrupted = true
		return true
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.interrupted = true
		return true
	}
	if s.nodeLimit > 0 && s.nodes >= s.nodeLimit {
		s.interrupted = true
		return true
	}
	return false
}

// SearchRoot searches every root move to the given depth. The returned
// boolean is false when the iteration was interrupted; the move returned in
// that case is the best of the fully searched root moves, which is still a
// legal move whenever any move was searched.
func (s *Searcher) SearchRoot(depth int) (board.Move, int, bool) {
	pos := s.pos

	var ml board.MoveList
	pos.GenerateMoves(board.GenAll, &ml)
	if ml.Len() == 0 {
		if pos.InCheck() {
			return board.NoMove, -MateScore, true
		}
		return board.NoMove, DrawScore, true
	}

	ttMove := board.NoMove
	if e, ok := s.tt.Probe(pos.Hash); ok {
		ttMove = e.BestMove
	}

	var scoresArr [board.MaxMoves]int
	scores := scoresArr[:ml.Len()]
	s.orderer.ScoreMoves(pos, &ml, 0, ttMove, scores)

	// The previous iteration's best move is searched first.
	if s.rootBest != board.NoMove {
		for i := 0; i < ml.Len(); i++ {
			if ml.Get(i) == s.rootBest {
				scores[i] = ttMoveScore + 1
				break
			}
		}
	}

	alpha, beta := -Infinity, Infinity
	best := board.NoMove

	for i := 0; i < ml.Len(); i++ {
		PickMove(&ml, scores, i)
		m := ml.Get(i)

		if s.checkStop() {
			return best, alpha, false
		}

		pos.MakeMove(m)
		score := -s.negamax(depth-1, 1, -beta, -alpha)
		pos.UnmakeMove()

		if s.interrupted {
			return best, alpha, false
		}

		if score > alpha || best == board.NoMove {
			alpha = score
			best = m
		}
	}

	s.tt.Store(pos.Hash, best, depth, ScoreToTT(alpha, 0), Exact)
	return best, alpha, true
}

// negamax searches to the given depth with alpha-beta pruning.
func (s *Searcher) negamax(depth, ply, alpha, beta int) int {
	if s.checkStop() {
		return 0
	}

	if depth == 0 {
		return s.quiescence(ply, alpha, beta)
	}

	s.nodes++
	pos := s.pos

	var ml board.MoveList
	pos.GenerateMoves(board.GenAll, &ml)
	if ml.Len() == 0 {
		if pos.InCheck() {
			return -MateScore + ply
		}
		return DrawScore
	}

	// Checkmate above takes precedence over the fifty-move rule.
	if pos.HalfMoveClock >= 100 {
		return DrawScore
	}

	ttMove := board.NoMove
	if e, ok := s.tt.Probe(pos.Hash); ok {
		ttMove = e.BestMove
		if int(e.Depth) >= depth {
			score := ScoreFromTT(int(e.Score), ply)
			switch e.Kind {
			case Exact:
				return score
			case FailHigh:
				if score >= beta {
					return score
				}
			case FailLow:
				if score <= alpha {
					return score
				}
			}
		}
	}

	var scoresArr [board.MaxMoves]int
	scores := scoresArr[:ml.Len()]
	s.orderer.ScoreMoves(pos, &ml, ply, ttMove, scores)

	kind := FailLow
	best := board.NoMove

	for i := 0; i < ml.Len(); i++ {
		PickMove(&ml, scores, i)
		m := ml.Get(i)

		pos.MakeMove(m)
		score := -s.negamax(depth-1, ply+1, -beta, -alpha)
		pos.UnmakeMove()

		if s.interrupted {
			return 0
		}

		if score > alpha {
			alpha = score
			best = m
			kind = Exact

			if alpha >= beta {
				kind = FailHigh
				if !m.IsCapture() && !m.IsPromotion() {
					s.orderer.UpdateKillers(m, ply)
					s.orderer.UpdateHistory(pos.SideToMove, m, depth)
				}
				break
			}
		}
	}

	s.tt.Store(pos.Hash, best, depth, ScoreToTT(alpha, ply), kind)
	return alpha
}

// quiescence resolves tactical volatility at the leaves: in check it
// searches every evasion, otherwise it stands pat on the static evaluation
// and follows captures and promotions only.
func (s *Searcher) quiescence(ply, alpha, beta int) int {
	if s.checkStop() {
		return 0
	}

	s.nodes++
	pos := s.pos

	if ply >= MaxPly {
		return Evaluate(pos)
	}

	var ci board.CheckInfo
	pos.ComputeCheckInfo(&ci)

	var ml board.MoveList
	if ci.Checkers != 0 {
		pos.GenerateMovesWithInfo(board.GenAll, &ci, &ml)
		if ml.Len() == 0 {
			return -MateScore + ply
		}
	} else {
		standPat := Evaluate(pos)
		if standPat >= beta {
			return beta
		}
		if standPat > alpha {
			alpha = standPat
		}
		pos.GenerateMovesWithInfo(board.GenCaptures, &ci, &ml)
	}

	var scoresArr [board.MaxMoves]int
	scores := scoresArr[:ml.Len()]
	s.orderer.ScoreMoves(pos, &ml, ply, board.NoMove, scores)

	for i := 0; i < ml.Len(); i++ {
		PickMove(&ml, scores, i)
		m := ml.Get(i)

		pos.MakeMove(m)
		score := -s.quiescence(ply+1, -beta, -alpha)
		pos.UnmakeMove()

		if s.interrupted {
			return 0
		}

		if score > alpha {
			alpha = score
			if alpha >= beta {
				return beta
			}
		}
	}

	return alpha
}
