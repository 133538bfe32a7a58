package board

// GenMode selects which moves a generation pass emits.
type GenMode int

const (
	GenAll GenMode = iota
	GenQuiet
	GenCaptures // captures and promotions
)

// GenerateMoves appends the legal moves of the side to move for the given
// mode. Every emitted move is fully legal; there is no post-filtering pass.
func (p *Position) GenerateMoves(mode GenMode, ml *MoveList) {
	var ci CheckInfo
	p.ComputeCheckInfo(&ci)
	p.GenerateMovesWithInfo(mode, &ci, ml)
}

// GenerateMovesWithInfo generates moves using caller-computed check info,
// so a caller needing both quiet and capture batches pays for the check
// analysis once.
func (p *Position) GenerateMovesWithInfo(mode GenMode, ci *CheckInfo, ml *MoveList) {
	// Double check: only king moves can be legal, castling included out.
	if ci.Checkers.PopCount() == 2 {
		p.genPieceMoves(King, mode, ci, ml)
		return
	}

	if mode != GenCaptures {
		p.genCastlingMoves(ci, ml)
	}

	p.genPawnMoves(mode, ci, ml)
	p.genPieceMoves(Knight, mode, ci, ml)
	p.genPieceMoves(Bishop, mode, ci, ml)
	p.genPieceMoves(Rook, mode, ci, ml)
	p.genPieceMoves(Queen, mode, ci, ml)
	p.genPieceMoves(King, mode, ci, ml)
}

// LegalMoves returns all legal moves of the side to move.
func (p *Position) LegalMoves() *MoveList {
	ml := &MoveList{}
	p.GenerateMoves(GenAll, ml)
	return ml
}

// HasLegalMoves returns true if the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	return p.LegalMoves().Len() > 0
}

// IsCheckmate returns true if the side to move is checkmated.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move is stalemated.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// genPieceMoves generates knight, bishop, rook, queen and king moves.
func (p *Position) genPieceMoves(pt PieceType, mode GenMode, ci *CheckInfo, ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	empty := ^p.AllOccupied

	pieces := p.Pieces[us][pt]
	for pieces != 0 {
		from := pieces.PopLSB()

		var attacks Bitboard
		switch pt {
		case Knight:
			attacks = knightAttacks[from]
		case Bishop:
			attacks = BishopAttacks(from, p.AllOccupied)
		case Rook:
			attacks = RookAttacks(from, p.AllOccupied)
		case Queen:
			attacks = QueenAttacks(from, p.AllOccupied)
		case King:
			attacks = kingAttacks[from] &^ ci.Unsafe
		}

		attacks &^= p.Occupied[us]
		if pt != King {
			attacks &= ci.MustCover
			if ci.Pinned.IsSet(from) {
				attacks &= ci.Pins[from]
			}
		}

		if mode != GenCaptures {
			quiets := attacks & empty
			for quiets != 0 {
				ml.Add(NewMove(from, quiets.PopLSB(), Quiet, Normal))
			}
		}

		if mode != GenQuiet {
			captures := attacks & p.Occupied[them]
			for captures != 0 {
				to := captures.PopLSB()
				if pt == King {
					// A defender of the captured piece may only become
					// visible once the king leaves its square: re-test with
					// the king bit removed from the occupancy.
					occ := p.AllOccupied ^ SquareBB(from)
					if p.sliderAttacksTo(to, them, occ) != 0 {
						continue
					}
				}
				ml.Add(NewMove(from, to, Capture, Normal))
			}
		}
	}
}

// sliderAttacksTo returns the sliding pieces of the given color that attack
// sq under the given occupancy.
func (p *Position) sliderAttacksTo(sq Square, c Color, occupied Bitboard) Bitboard {
	return (BishopAttacks(sq, occupied) & (p.Pieces[c][Bishop] | p.Pieces[c][Queen])) |
		(RookAttacks(sq, occupied) & (p.Pieces[c][Rook] | p.Pieces[c][Queen]))
}

// genPawnMoves generates pawn pushes, captures, promotions and en passant
// by directional shifts of the pawn bitboard.
func (p *Position) genPawnMoves(mode GenMode, ci *CheckInfo, ml *MoveList) {
	us := p.SideToMove
	empty := ^p.AllOccupied
	enemy := p.Occupied[us.Other()]
	pawns := p.Pieces[us][Pawn]

	if us == White {
		promo := pawns & Rank7
		nonPromo := pawns &^ Rank7

		if mode != GenCaptures {
			single := nonPromo.North() & empty
			// The double push mask needs the unrestricted single-push set;
			// must-cover is applied to singles only afterwards.
			double := single.North() & empty & Rank4 & ci.MustCover
			single &= ci.MustCover

			p.emitPawnMoves(single, -8, Quiet, Normal, ci, ml)
			p.emitPawnMoves(double, -16, Quiet, Normal, ci, ml)
		}

		if mode != GenQuiet {
			p.emitPawnPromotions(promo.NorthEast()&enemy&ci.MustCover, -9, Capture, ci, ml)
			p.emitPawnPromotions(promo.NorthWest()&enemy&ci.MustCover, -7, Capture, ci, ml)
			p.emitPawnPromotions(promo.North()&empty&ci.MustCover, -8, Quiet, ci, ml)

			p.emitPawnMoves(nonPromo.NorthEast()&enemy&ci.MustCover, -9, Capture, Normal, ci, ml)
			p.emitPawnMoves(nonPromo.NorthWest()&enemy&ci.MustCover, -7, Capture, Normal, ci, ml)

			if p.EnPassant != NoSquare {
				epBB := SquareBB(p.EnPassant)
				p.emitEnPassant(nonPromo.NorthEast()&epBB, -9, ci, ml)
				p.emitEnPassant(nonPromo.NorthWest()&epBB, -7, ci, ml)
			}
		}
	} else {
		promo := pawns & Rank2
		nonPromo := pawns &^ Rank2

		if mode != GenCaptures {
			single := nonPromo.South() & empty
			double := single.South() & empty & Rank5 & ci.MustCover
			single &= ci.MustCover

			p.emitPawnMoves(single, 8, Quiet, Normal, ci, ml)
			p.emitPawnMoves(double, 16, Quiet, Normal, ci, ml)
		}

		if mode != GenQuiet {
			p.emitPawnPromotions(promo.SouthEast()&enemy&ci.MustCover, 7, Capture, ci, ml)
			p.emitPawnPromotions(promo.SouthWest()&enemy&ci.MustCover, 9, Capture, ci, ml)
			p.emitPawnPromotions(promo.South()&empty&ci.MustCover, 8, Quiet, ci, ml)

			p.emitPawnMoves(nonPromo.SouthEast()&enemy&ci.MustCover, 7, Capture, Normal, ci, ml)
			p.emitPawnMoves(nonPromo.SouthWest()&enemy&ci.MustCover, 9, Capture, Normal, ci, ml)

			if p.EnPassant != NoSquare {
				epBB := SquareBB(p.EnPassant)
				p.emitEnPassant(nonPromo.SouthEast()&epBB, 7, ci, ml)
				p.emitEnPassant(nonPromo.SouthWest()&epBB, 9, ci, ml)
			}
		}
	}
}

// emitPawnMoves adds a move for each destination in mask, deriving the
// source by the delta and dropping pinned pawns that leave their ray.
func (p *Position) emitPawnMoves(mask Bitboard, delta int, mtype MoveType, flag MoveFlag, ci *CheckInfo, ml *MoveList) {
	for mask != 0 {
		to := mask.PopLSB()
		from := Square(int(to) + delta)
		if ci.Pinned.IsSet(from) && !ci.Pins[from].IsSet(to) {
			continue
		}
		ml.Add(NewMove(from, to, mtype, flag))
	}
}

// emitPawnPromotions adds the four promotion moves per destination.
func (p *Position) emitPawnPromotions(mask Bitboard, delta int, mtype MoveType, ci *CheckInfo, ml *MoveList) {
	for mask != 0 {
		to := mask.PopLSB()
		from := Square(int(to) + delta)
		if ci.Pinned.IsSet(from) && !ci.Pins[from].IsSet(to) {
			continue
		}
		ml.Add(NewMove(from, to, mtype, PromotionQueen))
		ml.Add(NewMove(from, to, mtype, PromotionRook))
		ml.Add(NewMove(from, to, mtype, PromotionBishop))
		ml.Add(NewMove(from, to, mtype, PromotionKnight))
	}
}

// emitEnPassant validates and adds en passant captures. Beyond the pin
// filter, an en passant under check must capture the checker or land on the
// blocking line, and removing both pawns from the rank must not expose the
// king to a slider.
func (p *Position) emitEnPassant(mask Bitboard, delta int, ci *CheckInfo, ml *MoveList) {
	us := p.SideToMove
	for mask != 0 {
		to := mask.PopLSB()
		from := Square(int(to) + delta)
		if ci.Pinned.IsSet(from) && !ci.Pins[from].IsSet(to) {
			continue
		}

		var capSq Square
		if us == White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}

		if ci.Checkers != 0 {
			capturesChecker := ci.Checkers.IsSet(capSq)
			blocksLine := ci.MustCover.IsSet(to)
			if !capturesChecker && !blocksLine {
				continue
			}
		}

		// Discovered-check test: toggle the moving pawn, its destination
		// and the captured pawn in the occupancy, then look for a slider
		// hitting the king.
		occ := p.AllOccupied ^ SquareBB(from) ^ SquareBB(to) ^ SquareBB(capSq)
		if p.sliderAttacksTo(p.KingSquare[us], us.Other(), occ) != 0 {
			continue
		}

		ml.Add(NewMove(from, to, Capture, EnPassant))
	}
}

// genCastlingMoves generates castling when not in check, the rights remain,
// the path is clear, and the king never crosses an attacked square.
func (p *Position) genCastlingMoves(ci *CheckInfo, ml *MoveList) {
	if ci.Checkers != 0 {
		return
	}

	if p.SideToMove == White {
		if p.CastlingRights&WhiteShort != 0 &&
			p.AllOccupied&(SquareBB(F1)|SquareBB(G1)) == 0 &&
			ci.Unsafe&(SquareBB(F1)|SquareBB(G1)) == 0 {
			ml.Add(NewMove(E1, G1, Quiet, Castle))
		}
		if p.CastlingRights&WhiteLong != 0 &&
			p.AllOccupied&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == 0 &&
			ci.Unsafe&(SquareBB(C1)|SquareBB(D1)) == 0 {
			ml.Add(NewMove(E1, C1, Quiet, Castle))
		}
	} else {
		if p.CastlingRights&BlackShort != 0 &&
			p.AllOccupied&(SquareBB(F8)|SquareBB(G8)) == 0 &&
			ci.Unsafe&(SquareBB(F8)|SquareBB(G8)) == 0 {
			ml.Add(NewMove(E8, G8, Quiet, Castle))
		}
		if p.CastlingRights&BlackLong != 0 &&
			p.AllOccupied&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == 0 &&
			ci.Unsafe&(SquareBB(C8)|SquareBB(D8)) == 0 {
			ml.Add(NewMove(E8, C8, Quiet, Castle))
		}
	}
}
