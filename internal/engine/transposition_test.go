package engine

import (
	"testing"

	"github.com/sable-chess/sable/internal/board"
)

func TestTranspositionStoreProbe(t *testing.T) {
	tt := NewTranspositionTable(1)

	hash := uint64(0xDEADBEEFCAFE1234)
	move := board.NewMove(board.E2, board.E4, board.Quiet, board.Normal)

	if _, ok := tt.Probe(hash); ok {
		t.Error("probe hit on an empty table")
	}

	tt.Store(hash, move, 5, 42, Exact)

	e, ok := tt.Probe(hash)
	if !ok {
		t.Fatal("probe missed a stored entry")
	}
	if e.BestMove != move || e.Depth != 5 || e.Score != 42 || e.Kind != Exact {
		t.Errorf("entry mangled: %+v", e)
	}
}

func TestTranspositionCollisionGuard(t *testing.T) {
	tt := NewTranspositionTable(1)

	hash := uint64(0x1111111111111111)
	tt.Store(hash, board.NoMove, 3, 7, FailHigh)

	// A different hash mapping to the same slot must not be returned.
	numEntries := uint64(len(tt.entries))
	collider := hash + numEntries
	if _, ok := tt.Probe(collider); ok {
		t.Error("probe returned an entry for a colliding hash")
	}
}

func TestTranspositionAlwaysReplace(t *testing.T) {
	tt := NewTranspositionTable(1)

	hash := uint64(0x2222222222222222)
	tt.Store(hash, board.NoMove, 9, 100, Exact)
	tt.Store(hash, board.NoMove, 1, -5, FailLow)

	e, ok := tt.Probe(hash)
	if !ok {
		t.Fatal("probe missed")
	}
	if e.Depth != 1 || e.Score != -5 || e.Kind != FailLow {
		t.Errorf("later store did not replace: %+v", e)
	}
}

func TestTranspositionClear(t *testing.T) {
	tt := NewTranspositionTable(1)

	hash := uint64(0x3333333333333333)
	tt.Store(hash, board.NoMove, 2, 1, Exact)
	tt.Clear()

	if _, ok := tt.Probe(hash); ok {
		t.Error("entry survived Clear")
	}
}

func TestMateScoreNormalization(t *testing.T) {
	// A mate found at ply 7 scores MateScore-9 (mate two plies deeper).
	// Stored from ply 7 and probed at ply 3, the distance must adjust.
	score := MateScore - 9

	stored := ScoreToTT(score, 7)
	if got := ScoreFromTT(stored, 7); got != score {
		t.Errorf("round trip at the same ply changed the score: %d -> %d", score, got)
	}

	probed := ScoreFromTT(stored, 3)
	if probed != MateScore-5 {
		t.Errorf("probed at ply 3: got %d, want %d", probed, MateScore-5)
	}

	// Negative mate scores mirror.
	score = -(MateScore - 9)
	stored = ScoreToTT(score, 7)
	if got := ScoreFromTT(stored, 3); got != -(MateScore - 5) {
		t.Errorf("negative mate: got %d, want %d", got, -(MateScore - 5))
	}

	// Ordinary scores pass through untouched.
	if ScoreToTT(123, 30) != 123 || ScoreFromTT(-77, 12) != -77 {
		t.Error("non-mate scores must not be adjusted")
	}
}

func TestTableSizePowerOfTwo(t *testing.T) {
	for _, mb := range []int{1, 2, 3, 7, 16, 64} {
		tt := NewTranspositionTable(mb)
		n := uint64(len(tt.entries))
		if n == 0 || n&(n-1) != 0 {
			t.Errorf("%d MB: %d entries is not a power of two", mb, n)
		}
	}
}
