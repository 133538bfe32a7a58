package board

import "testing"

// snapshot captures every externally visible field of a position for
// byte-identity comparison around make/unmake pairs.
type snapshot struct {
	pieces    [2][6]Bitboard
	occupied  [2]Bitboard
	all       Bitboard
	pieceMap  [64]PieceType
	kings     [2]Square
	material  [2]int
	side      Color
	rights    CastlingRights
	enPassant Square
	halfMove  int
	fullMove  int
	hash      uint64
	ply       int
}

func snap(p *Position) snapshot {
	return snapshot{
		pieces:    p.Pieces,
		occupied:  p.Occupied,
		all:       p.AllOccupied,
		pieceMap:  p.PieceMap,
		kings:     p.KingSquare,
		material:  p.Material,
		side:      p.SideToMove,
		rights:    p.CastlingRights,
		enPassant: p.EnPassant,
		halfMove:  p.HalfMoveClock,
		fullMove:  p.FullMoveNumber,
		hash:      p.Hash,
		ply:       p.Ply,
	}
}

var makeUnmakeFENs = []string{
	StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"8/8/8/KPp4r/1R3p1k/8/4P1P1/8 w - c6 0 1",
}

// TestMakeUnmakeReversibility verifies that unmake restores the position
// byte-identically for every legal move of several positions.
func TestMakeUnmakeReversibility(t *testing.T) {
	for _, fen := range makeUnmakeFENs {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}

		before := snap(pos)
		ml := pos.LegalMoves()
		for i := 0; i < ml.Len(); i++ {
			m := ml.Get(i)
			pos.MakeMove(m)
			pos.UnmakeMove()

			if after := snap(pos); after != before {
				t.Errorf("%s: make/unmake of %s did not restore the position", fen, m)
			}
		}
	}
}

// TestMakeUnmakeDeepWalk walks deterministic game lines, checking the
// structural invariants and the incremental hash at every node, then
// unwinds and expects the original position back.
func TestMakeUnmakeDeepWalk(t *testing.T) {
	for _, fen := range makeUnmakeFENs {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatal(err)
		}

		start := snap(pos)
		made := 0
		for ply := 0; ply < 80; ply++ {
			ml := pos.LegalMoves()
			if ml.Len() == 0 {
				break
			}

			m := ml.Get((ply*13 + 7) % ml.Len())
			pos.MakeMove(m)
			made++

			checkInvariants(t, pos, fen, ply)
		}

		for ; made > 0; made-- {
			pos.UnmakeMove()
		}

		if got := snap(pos); got != start {
			t.Errorf("%s: position not restored after full unwind", fen)
		}
	}
}

func checkInvariants(t *testing.T, p *Position, fen string, ply int) {
	t.Helper()

	if p.Occupied[White]&p.Occupied[Black] != 0 {
		t.Fatalf("%s ply %d: color occupancies overlap", fen, ply)
	}
	if p.Occupied[White]|p.Occupied[Black] != p.AllOccupied {
		t.Fatalf("%s ply %d: occupancy union mismatch", fen, ply)
	}

	for c := White; c <= Black; c++ {
		if p.Pieces[c][King].PopCount() != 1 {
			t.Fatalf("%s ply %d: %v has %d kings", fen, ply, c, p.Pieces[c][King].PopCount())
		}
		if p.KingSquare[c] != p.Pieces[c][King].LSB() {
			t.Fatalf("%s ply %d: cached king square out of sync", fen, ply)
		}

		material := 0
		union := Bitboard(0)
		for pt := Pawn; pt <= King; pt++ {
			material += p.Pieces[c][pt].PopCount() * PieceValue[pt]
			union |= p.Pieces[c][pt]
		}
		if material != p.Material[c] {
			t.Fatalf("%s ply %d: material[%v] = %d, recount = %d", fen, ply, c, p.Material[c], material)
		}
		if union != p.Occupied[c] {
			t.Fatalf("%s ply %d: piece bitboards disagree with occupancy", fen, ply)
		}
	}

	for sq := A1; sq <= H8; sq++ {
		pt := p.PieceMap[sq]
		if pt == NoPieceType {
			if p.AllOccupied.IsSet(sq) {
				t.Fatalf("%s ply %d: %s occupied but empty in piece map", fen, ply, sq)
			}
			continue
		}
		c := p.ColorAt(sq)
		if c == NoColor || !p.Pieces[c][pt].IsSet(sq) {
			t.Fatalf("%s ply %d: piece map and bitboards disagree at %s", fen, ply, sq)
		}
	}

	if p.Hash != p.ComputeHash() {
		t.Fatalf("%s ply %d: incremental hash diverged from recomputation", fen, ply)
	}
}

// TestMakeMoveEnPassantTarget verifies the en passant target appears only
// after a double pawn push.
func TestMakeMoveEnPassantTarget(t *testing.T) {
	pos := NewPosition()

	m, err := pos.ParseMove("e2e4")
	if err != nil {
		t.Fatal(err)
	}
	pos.MakeMove(m)
	if pos.EnPassant != E3 {
		t.Errorf("after e2e4, en passant target = %s, want e3", pos.EnPassant)
	}

	m, err = pos.ParseMove("g8f6")
	if err != nil {
		t.Fatal(err)
	}
	pos.MakeMove(m)
	if pos.EnPassant != NoSquare {
		t.Errorf("after g8f6, en passant target = %s, want none", pos.EnPassant)
	}
}

// TestMakeMoveCastlingRights verifies rights are lost when the king castles
// and when a rook leaves its home square, and that unmake restores them.
func TestMakeMoveCastlingRights(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	m, _ := pos.ParseMove("e1g1") // white castles short
	pos.MakeMove(m)
	if pos.CastlingRights&(WhiteShort|WhiteLong) != 0 {
		t.Errorf("white rights remain after castling: %v", pos.CastlingRights)
	}
	if pos.PieceMap[F1] != Rook || pos.PieceMap[G1] != King {
		t.Errorf("short castle left wrong pieces: f1=%v g1=%v", pos.PieceMap[F1], pos.PieceMap[G1])
	}

	m, _ = pos.ParseMove("a8a1") // black rook takes the a1 rook
	pos.MakeMove(m)
	if pos.CastlingRights&BlackLong != 0 {
		t.Errorf("black long right remains after a8 rook left home")
	}

	pos.UnmakeMove()
	pos.UnmakeMove()
	if pos.CastlingRights != AllCastling {
		t.Errorf("rights not restored on unmake: %v", pos.CastlingRights)
	}
}

// TestParseMakeUnmakeRoundTrip is the end-to-end scenario: parse e2e4 on
// the initial position, make, unmake, and expect the identical position.
func TestParseMakeUnmakeRoundTrip(t *testing.T) {
	pos := NewPosition()
	before := snap(pos)

	m, err := pos.ParseMove("e2e4")
	if err != nil {
		t.Fatal(err)
	}

	pos.MakeMove(m)
	pos.UnmakeMove()

	if got := snap(pos); got != before {
		t.Error("position differs after e2e4 make/unmake")
	}
	if pos.ToFEN() != StartFEN {
		t.Errorf("FEN changed: %s", pos.ToFEN())
	}
}
