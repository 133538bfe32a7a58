package board

import (
	"fmt"
	"strings"
)

// ToSAN converts a move to Standard Algebraic Notation.
func (p *Position) ToSAN(m Move) string {
	if m == NoMove {
		return "-"
	}

	from := m.From()
	to := m.To()
	pt := p.PieceMap[from]

	var sb strings.Builder

	if m.IsCastle() {
		if to > from {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		if pt != Pawn {
			sb.WriteByte("PNBRQK"[pt])
			sb.WriteString(p.sanDisambiguation(m, pt))
		}

		if m.IsCapture() {
			if pt == Pawn {
				sb.WriteByte('a' + byte(from.File()))
			}
			sb.WriteByte('x')
		}

		sb.WriteString(to.String())

		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte("PNBRQK"[m.PromotionPiece()])
		}
	}

	// Check and mate markers need the post-move position.
	p.MakeMove(m)
	if p.IsCheckmate() {
		sb.WriteByte('#')
	} else if p.InCheck() {
		sb.WriteByte('+')
	}
	p.UnmakeMove()

	return sb.String()
}

// sanDisambiguation returns the file/rank prefix required when several
// pieces of the same type reach the same destination.
func (p *Position) sanDisambiguation(m Move, pt PieceType) string {
	from := m.From()
	to := m.To()

	sameFile := false
	sameRank := false
	ambiguous := false

	ml := p.LegalMoves()
	for i := 0; i < ml.Len(); i++ {
		other := ml.Get(i)
		if other.To() != to || other.From() == from {
			continue
		}
		if p.PieceMap[other.From()] != pt {
			continue
		}
		ambiguous = true
		if other.From().File() == from.File() {
			sameFile = true
		}
		if other.From().Rank() == from.Rank() {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(rune('a' + from.File()))
	case !sameRank:
		return string(rune('1' + from.Rank()))
	default:
		return from.String()
	}
}

// ParseSAN parses a Standard Algebraic Notation string. Decorations
// (+, #, !, ?) are accepted and ignored. Parsing succeeds only when exactly
// one legal move matches.
func (p *Position) ParseSAN(s string) (Move, error) {
	orig := s
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#!?")

	// Castling, in both letter and digit forms.
	if s == "O-O" || s == "0-0" {
		return p.matchCastle(true, orig)
	}
	if s == "O-O-O" || s == "0-0-0" {
		return p.matchCastle(false, orig)
	}

	promo := NoPieceType
	if idx := strings.Index(s, "="); idx >= 0 {
		if idx+1 >= len(s) {
			return NoMove, fmt.Errorf("invalid SAN: %q", orig)
		}
		switch s[idx+1] {
		case 'N':
			promo = Knight
		case 'B':
			promo = Bishop
		case 'R':
			promo = Rook
		case 'Q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid SAN promotion: %q", orig)
		}
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		switch s[0] {
		case 'N':
			pt = Knight
		case 'B':
			pt = Bishop
		case 'R':
			pt = Rook
		case 'Q':
			pt = Queen
		case 'K':
			pt = King
		default:
			return NoMove, fmt.Errorf("invalid SAN piece: %q", orig)
		}
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, fmt.Errorf("invalid SAN: %q", orig)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, fmt.Errorf("invalid SAN destination: %q", orig)
	}
	s = s[:len(s)-2]

	disambigFile, disambigRank := -1, -1
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'h':
			disambigFile = int(c - 'a')
		case c >= '1' && c <= '8':
			disambigRank = int(c - '1')
		default:
			return NoMove, fmt.Errorf("invalid SAN: %q", orig)
		}
	}

	var found Move
	matches := 0
	ml := p.LegalMoves()
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if m.To() != dest || m.IsCastle() {
			continue
		}
		if p.PieceMap[m.From()] != pt {
			continue
		}
		if disambigFile >= 0 && m.From().File() != disambigFile {
			continue
		}
		if disambigRank >= 0 && m.From().Rank() != disambigRank {
			continue
		}
		if isCapture && !m.IsCapture() {
			continue
		}
		if promo != NoPieceType {
			if !m.IsPromotion() || m.PromotionPiece() != promo {
				continue
			}
		} else if m.IsPromotion() {
			continue
		}
		if m != found {
			found = m
			matches++
		}
	}

	if matches != 1 {
		return NoMove, fmt.Errorf("SAN %q matches %d legal moves", orig, matches)
	}
	return found, nil
}

func (p *Position) matchCastle(short bool, orig string) (Move, error) {
	ml := p.LegalMoves()
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if !m.IsCastle() {
			continue
		}
		if short == (m.To() > m.From()) {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("SAN %q is not legal here", orig)
}
