package engine

import "github.com/sable-chess/sable/internal/board"

// Move ordering priorities. Anything above the history range is an absolute
// tier: TT move, then promotions, then captures, then killers.
const (
	ttMoveScore    = 10000000
	promotionBase  = 2000000
	captureBase    = 1000000
	killerScore1   = 900000
	killerScore2   = 800000
	historyCeiling = 400000
)

// mvvLva scores captures by Most Valuable Victim, Least Valuable Attacker.
// Indexed [victim][attacker]; higher is searched first.
var mvvLva = [6][6]int{
	//       P   N   B   R   Q   K  (attacker)
	/* P */ {15, 14, 13, 12, 11, 10},
	/* N */ {25, 24, 23, 22, 21, 20},
	/* B */ {35, 34, 33, 32, 31, 30},
	/* R */ {45, 44, 43, 42, 41, 40},
	/* Q */ {55, 54, 53, 52, 51, 50},
	/* K */ {0, 0, 0, 0, 0, 0},
}

// MoveOrderer scores moves for the search: the TT move first, then
// promotions, MVV-LVA captures, killer moves, and history-scored quiets.
type MoveOrderer struct {
	killers [MaxPly][2]board.Move
	history [2][64][64]int // [color][from][to]
}

// NewMoveOrderer creates a new move orderer.
func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{}
}

// Clear resets killers and ages history for a new search.
func (mo *MoveOrderer) Clear() {
	for i := range mo.killers {
		mo.killers[i][0] = board.NoMove
		mo.killers[i][1] = board.NoMove
	}
	for c := range mo.history {
		for from := range mo.history[c] {
			for to := range mo.history[c][from] {
				mo.history[c][from][to] /= 2
			}
		}
	}
}

// ScoreMoves assigns an ordering score to every move in the list.
func (mo *MoveOrderer) ScoreMoves(pos *board.Position, ml *board.MoveList, ply int, ttMove board.Move, scores []int) {
	for i := 0; i < ml.Len(); i++ {
		scores[i] = mo.scoreMove(pos, ml.Get(i), ply, ttMove)
	}
}

func (mo *MoveOrderer) scoreMove(pos *board.Position, m board.Move, ply int, ttMove board.Move) int {
	if m == ttMove {
		return ttMoveScore
	}

	if m.IsPromotion() {
		score := promotionBase + int(m.PromotionPiece())*100
		if m.IsCapture() {
			score += mo.captureScore(pos, m)
		}
		return score
	}

	if m.IsCapture() {
		return captureBase + mo.captureScore(pos, m)
	}

	if m == mo.killers[ply][0] {
		return killerScore1
	}
	if m == mo.killers[ply][1] {
		return killerScore2
	}

	return mo.history[pos.SideToMove][m.From()][m.To()]
}

func (mo *MoveOrderer) captureScore(pos *board.Position, m board.Move) int {
	attacker := pos.PieceMap[m.From()]
	victim := board.Pawn
	if !m.IsEnPassant() {
		victim = pos.PieceMap[m.To()]
	}
	return mvvLva[victim][attacker] * 1000
}

// PickMove moves the best remaining move to position index. Sorting lazily
// avoids ordering moves a cutoff never reaches.
func PickMove(ml *board.MoveList, scores []int, index int) {
	best := index
	for j := index + 1; j < ml.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		ml.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
}

// UpdateKillers records a quiet move that caused a beta cutoff.
func (mo *MoveOrderer) UpdateKillers(m board.Move, ply int) {
	if ply >= MaxPly || mo.killers[ply][0] == m {
		return
	}
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = m
}

// UpdateHistory rewards a quiet move that improved alpha at the given depth.
func (mo *MoveOrderer) UpdateHistory(c board.Color, m board.Move, depth int) {
	h := &mo.history[c][m.From()][m.To()]
	*h += depth * depth
	if *h > historyCeiling {
		for from := range mo.history[c] {
			for to := range mo.history[c][from] {
				mo.history[c][from][to] /= 2
			}
		}
	}
}
