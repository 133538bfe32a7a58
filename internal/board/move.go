package board

import "fmt"

// Move encodes a chess move in 16 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bit 12:     move type (0=quiet, 1=capture)
// bits 13-15: move flag (normal, en passant, castle, promotion piece)
type Move uint16

// MoveType distinguishes quiet moves from captures.
type MoveType uint16

const (
	Quiet MoveType = iota
	Capture
)

// MoveFlag marks special moves.
type MoveFlag uint16

const (
	Normal MoveFlag = iota
	EnPassant
	Castle
	PromotionBishop
	PromotionKnight
	PromotionRook
	PromotionQueen
)

// NoMove is the reserved all-zero null move.
const NoMove Move = 0

// NewMove packs a move from its components.
func NewMove(from, to Square, mtype MoveType, flag MoveFlag) Move {
	return Move(from) | Move(to)<<6 | Move(mtype)<<12 | Move(flag)<<13
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Type returns the move type (quiet or capture).
func (m Move) Type() MoveType {
	return MoveType((m >> 12) & 1)
}

// Flag returns the move flag.
func (m Move) Flag() MoveFlag {
	return MoveFlag((m >> 13) & 7)
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture() bool {
	return m.Type() == Capture
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Flag() >= PromotionBishop
}

// IsCastle returns true if this is a castling move.
func (m Move) IsCastle() bool {
	return m.Flag() == Castle
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flag() == EnPassant
}

// PromotionPiece returns the piece a promotion move promotes to.
// Only meaningful when IsPromotion() is true.
func (m Move) PromotionPiece() PieceType {
	switch m.Flag() {
	case PromotionKnight:
		return Knight
	case PromotionBishop:
		return Bishop
	case PromotionRook:
		return Rook
	case PromotionQueen:
		return Queen
	default:
		return NoPieceType
	}
}

// String returns the long algebraic (UCI) form of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()

	switch m.Flag() {
	case PromotionKnight:
		s += "n"
	case PromotionBishop:
		s += "b"
	case PromotionRook:
		s += "r"
	case PromotionQueen:
		s += "q"
	}

	return s
}

// ParseMove parses a long algebraic (UCI) move string against the position.
// It succeeds only if the string names a legal move, so the returned move
// carries the correct type and flag bits.
func (p *Position) ParseMove(s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	promo := NoPieceType
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
	}

	var ml MoveList
	p.GenerateMoves(GenAll, &ml)
	for i := 0; i < ml.Len(); i++ {
		mv := ml.Get(i)
		if mv.From() != from || mv.To() != to {
			continue
		}
		if promo != NoPieceType {
			if mv.IsPromotion() && mv.PromotionPiece() == promo {
				return mv, nil
			}
		} else if !mv.IsPromotion() {
			return mv, nil
		}
	}

	return NoMove, fmt.Errorf("illegal move: %q", s)
}

// MaxMoves is the capacity of a move list. No legal chess position has more
// than 218 moves.
const MaxMoves = 256

// MoveList is a fixed-capacity list of moves to avoid allocations.
type MoveList struct {
	moves [MaxMoves]Move
	count int
}

// Add appends a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear empties the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice backed by the list.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
