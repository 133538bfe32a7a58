package board

import "testing"

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
		"8/8/8/KPp4r/1R3p1k/8/4P1P1/8 w - c6 0 1",
		"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1",
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Errorf("ParseFEN(%q): %v", fen, err)
			continue
		}
		if got := pos.ToFEN(); got != fen {
			t.Errorf("round trip changed FEN:\n in: %s\nout: %s", fen, got)
		}
	}
}

// TestFENDefaults verifies that missing trailing fields take sane defaults.
func TestFENDefaults(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR")
	if err != nil {
		t.Fatal(err)
	}

	if pos.SideToMove != White {
		t.Errorf("default side = %v, want white", pos.SideToMove)
	}
	if pos.CastlingRights != NoCastling {
		t.Errorf("default rights = %v, want none", pos.CastlingRights)
	}
	if pos.EnPassant != NoSquare {
		t.Errorf("default en passant = %v, want none", pos.EnPassant)
	}
	if pos.HalfMoveClock != 0 || pos.FullMoveNumber != 1 {
		t.Errorf("default clocks = %d/%d, want 0/1", pos.HalfMoveClock, pos.FullMoveNumber)
	}

	// Four-field EPD form.
	pos, err = ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatal(err)
	}
	if pos.CastlingRights != AllCastling {
		t.Errorf("rights = %v, want KQkq", pos.CastlingRights)
	}
}

func TestFENRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP", // seven ranks
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", // rank overflow
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // bad side
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KXkq - 0 1", // bad rights
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e9 0 1", // bad square
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1", // bad clock
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNz w KQkq - 0 1", // bad piece
		"8/8/8/8/8/8/8/8 w - - 0 1", // no kings
	}

	for _, fen := range bad {
		if _, err := ParseFEN(fen); err == nil {
			t.Errorf("ParseFEN(%q) succeeded, want error", fen)
		}
	}
}

func TestStartingPositionHash(t *testing.T) {
	a := NewPosition()
	b := NewPosition()
	if a.Hash != b.Hash {
		t.Error("identical positions hash differently")
	}
	if a.Hash == 0 {
		t.Error("starting position hash is zero")
	}

	c, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if a.Hash == c.Hash {
		t.Error("side to move not hashed")
	}
}
