package board

// MakeMove applies a legal move to the position. The irreversible state is
// pushed onto the internal stack; UnmakeMove pops it and restores the
// position byte for byte, hash included.
func (p *Position) MakeMove(m Move) {
	st := State{
		EnPassant:      p.EnPassant,
		CastlingRights: p.CastlingRights,
		HalfMoveClock:  p.HalfMoveClock,
		Captured:       NoPieceType,
	}

	from := m.From()
	to := m.To()
	us := p.SideToMove
	them := us.Other()
	moving := p.PieceMap[from]

	p.HalfMoveClock++
	if moving == Pawn {
		p.HalfMoveClock = 0
	}
	if us == Black {
		p.FullMoveNumber++
	}

	// A new en passant target exists only after a double pawn push.
	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
		p.EnPassant = NoSquare
	}
	if moving == Pawn {
		if us == White && from.Rank() == 1 && to.Rank() == 3 {
			p.EnPassant = from + 8
		} else if us == Black && from.Rank() == 6 && to.Rank() == 4 {
			p.EnPassant = from - 8
		}
		if p.EnPassant != NoSquare {
			p.Hash ^= zobristEnPassant[p.EnPassant.File()]
		}
	}

	p.removePiece(us, moving, from)

	if m.IsCapture() {
		capSq := to
		if m.IsEnPassant() {
			// The captured pawn sits one rank behind the target square.
			if us == White {
				capSq = to - 8
			} else {
				capSq = to + 8
			}
		}
		st.Captured = p.PieceMap[capSq]
		p.removePiece(them, st.Captured, capSq)
		p.HalfMoveClock = 0
	}

	if m.IsPromotion() {
		moving = m.PromotionPiece()
	}

	p.placePiece(us, moving, to)

	if m.IsCastle() {
		p.castleRook(us, to)
	}

	newRights := p.CastlingRights &^ (castleRightsUpdate[from] | castleRightsUpdate[to])
	p.Hash ^= zobristCastling[p.CastlingRights] ^ zobristCastling[newRights]
	p.CastlingRights = newRights

	p.Hash ^= zobristSideToMove
	p.SideToMove = them

	p.moves[p.Ply] = m
	p.states[p.Ply] = st
	p.Ply++
}

// UnmakeMove reverses the most recently made move.
func (p *Position) UnmakeMove() {
	p.Ply--
	m := p.moves[p.Ply]
	st := p.states[p.Ply]

	from := m.From()
	to := m.To()
	us := p.SideToMove.Other() // the color that made the move
	them := p.SideToMove

	if us == Black {
		p.FullMoveNumber--
	}

	moving := p.PieceMap[to]
	p.removePiece(us, moving, to)
	if m.IsPromotion() {
		moving = Pawn
	}
	p.placePiece(us, moving, from)

	if m.IsCapture() {
		capSq := to
		if m.IsEnPassant() {
			if us == White {
				capSq = to - 8
			} else {
				capSq = to + 8
			}
		}
		p.placePiece(them, st.Captured, capSq)
	}

	if m.IsCastle() {
		p.uncastleRook(us, to)
	}

	p.Hash ^= zobristCastling[p.CastlingRights] ^ zobristCastling[st.CastlingRights]
	p.CastlingRights = st.CastlingRights

	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}
	if st.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[st.EnPassant.File()]
	}
	p.EnPassant = st.EnPassant

	p.HalfMoveClock = st.HalfMoveClock

	p.Hash ^= zobristSideToMove
	p.SideToMove = us
}

// castleRook moves the rook along the castle pattern determined by the
// king's destination square.
func (p *Position) castleRook(us Color, kingTo Square) {
	switch kingTo {
	case G1:
		p.removePiece(us, Rook, H1)
		p.placePiece(us, Rook, F1)
	case C1:
		p.removePiece(us, Rook, A1)
		p.placePiece(us, Rook, D1)
	case G8:
		p.removePiece(us, Rook, H8)
		p.placePiece(us, Rook, F8)
	case C8:
		p.removePiece(us, Rook, A8)
		p.placePiece(us, Rook, D8)
	}
}

// uncastleRook returns the rook to its corner when a castle is unmade.
func (p *Position) uncastleRook(us Color, kingTo Square) {
	switch kingTo {
	case G1:
		p.removePiece(us, Rook, F1)
		p.placePiece(us, Rook, H1)
	case C1:
		p.removePiece(us, Rook, D1)
		p.placePiece(us, Rook, A1)
	case G8:
		p.removePiece(us, Rook, F8)
		p.placePiece(us, Rook, H8)
	case C8:
		p.removePiece(us, Rook, D8)
		p.placePiece(us, Rook, A8)
	}
}
