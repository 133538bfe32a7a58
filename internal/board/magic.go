package board

// Magic bitboard lookup for sliding piece attacks. Each square carries a
// relevant-blocker mask and a hard-coded multiplier; the multiply-shift of
// the masked occupancy is a collision-free perfect hash into a flat table
// of precomputed attack sets.

type magicEntry struct {
	mask   Bitboard // relevant occupancy mask (excludes board edges)
	magic  uint64   // magic multiplier
	shift  uint8    // 64 - popcount(mask)
	offset uint32   // base index into the attack table
}

var (
	bishopMagics [64]magicEntry
	rookMagics   [64]magicEntry

	bishopTable [5248]Bitboard
	rookTable   [102400]Bitboard
)

var bishopMagicNumbers = [64]uint64{
	0x0002020202020200, 0x0002020202020000, 0x0004010202000000, 0x0004040080000000,
	0x0001104000000000, 0x0000821040000000, 0x0000410410400000, 0x0000104104104000,
	0x0000040404040400, 0x0000020202020200, 0x0000040102020000, 0x0000040400800000,
	0x0000011040000000, 0x0000008210400000, 0x0000004104104000, 0x0000002082082000,
	0x0004000808080800, 0x0002000404040400, 0x0001000202020200, 0x0000800802004000,
	0x0000800400A00000, 0x0000200100884000, 0x0000400082082000, 0x0000200041041000,
	0x0002080010101000, 0x0001040008080800, 0x0000208004010400, 0x0000404004010200,
	0x0000840000802000, 0x0000404002011000, 0x0000808001041000, 0x0000404000820800,
	0x0001041000202000, 0x0000820800101000, 0x0000104400080800, 0x0000020080080080,
	0x0000404040040100, 0x0000808100020100, 0x0001010100020800, 0x0000808080010400,
	0x0000820820004000, 0x0000410410002000, 0x0000082088001000, 0x0000002011000800,
	0x0000080100400400, 0x0001010101000200, 0x0002020202000400, 0x0001010101000200,
	0x0000410410400000, 0x0000208208200000, 0x0000002084100000, 0x0000000020880000,
	0x0000001002020000, 0x0000040408020000, 0x0004040404040000, 0x0002020202020000,
	0x0000104104104000, 0x0000002082082000, 0x0000000020841000, 0x0000000000208800,
	0x0000000010020200, 0x0000000404080200, 0x0000040404040400, 0x0002020202020200,
}

var rookMagicNumbers = [64]uint64{
	0x0080001020400080, 0x0040001000200040, 0x0080081000200080, 0x0080040800100080,
	0x0080020400080080, 0x0080010200040080, 0x0080008001000200, 0x0080002040800100,
	0x0000800020400080, 0x0000400020005000, 0x0000801000200080, 0x0000800800100080,
	0x0000800400080080, 0x0000800200040080, 0x0000800100020080, 0x0000800040800100,
	0x0000208000400080, 0x0000404000201000, 0x0000808010002000, 0x0000808008001000,
	0x0000808004000800, 0x0000808002000400, 0x0000010100020004, 0x0000020000408104,
	0x0000208080004000, 0x0000200040005000, 0x0000100080200080, 0x0000080080100080,
	0x0000040080080080, 0x0000020080040080, 0x0000010080800200, 0x0000800080004100,
	0x0000204000800080, 0x0000200040401000, 0x0000100080802000, 0x0000080080801000,
	0x0000040080800800, 0x0000020080800400, 0x0000020001010004, 0x0000800040800100,
	0x0000204000808000, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000010002008080, 0x0000004081020004,
	0x0000204000800080, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000800100020080, 0x0000800041000080,
	0x00FFFCDDFCED714A, 0x007FFCDDFCED714A, 0x003FFFCDFFD88096, 0x0000040810002101,
	0x0001000204080011, 0x0001000204000801, 0x0001000082000401, 0x0001FFFAABFAD1A2,
}

func initMagics() {
	fillMagicTable(bishopMagics[:], bishopTable[:], bishopMagicNumbers[:], bishopBlockerMask, bishopAttacksSlow)
	fillMagicTable(rookMagics[:], rookTable[:], rookMagicNumbers[:], rookBlockerMask, rookAttacksSlow)
}

// fillMagicTable builds the per-square magic entries and enumerates every
// blocker subset of each mask to populate the flat attack table.
func fillMagicTable(
	magics []magicEntry,
	table []Bitboard,
	numbers []uint64,
	blockerMask func(Square) Bitboard,
	attacksSlow func(Square, Bitboard) Bitboard,
) {
	var offset uint32
	for sq := A1; sq <= H8; sq++ {
		mask := blockerMask(sq)
		bits := mask.PopCount()

		magics[sq] = magicEntry{
			mask:   mask,
			magic:  numbers[sq],
			shift:  uint8(64 - bits),
			offset: offset,
		}

		subsets := 1 << bits
		for i := 0; i < subsets; i++ {
			occ := subsetToOccupancy(i, bits, mask)
			idx := (uint64(occ) * numbers[sq]) >> (64 - bits)
			table[offset+uint32(idx)] = attacksSlow(sq, occ)
		}
		offset += uint32(subsets)
	}
}

// bishopBlockerMask returns the relevant occupancy mask for a bishop:
// its rays with the board edge stripped, since edge squares never affect
// the reachable set.
func bishopBlockerMask(sq Square) Bitboard {
	return bishopAttacksSlow(sq, 0) &^ (Rank1 | Rank8 | FileA | FileH)
}

// rookBlockerMask returns the relevant occupancy mask for a rook: the
// interior of its rank and file, excluding the rook's own square.
func rookBlockerMask(sq Square) Bitboard {
	rankInterior := RankMaskOf(sq.Rank()) &^ (FileA | FileH)
	fileInterior := FileMaskOf(sq.File()) &^ (Rank1 | Rank8)
	return (rankInterior | fileInterior) &^ SquareBB(sq)
}

// RankMaskOf returns the mask of the given rank (0-7).
func RankMaskOf(rank int) Bitboard {
	return Rank1 << (8 * rank)
}

// FileMaskOf returns the mask of the given file (0-7).
func FileMaskOf(file int) Bitboard {
	return FileA << file
}

// subsetToOccupancy maps an enumeration index to a blocker subset of mask.
func subsetToOccupancy(index, bits int, mask Bitboard) Bitboard {
	var occ Bitboard
	for i := 0; i < bits; i++ {
		sq := mask.PopLSB()
		if index&(1<<i) != 0 {
			occ |= SquareBB(sq)
		}
	}
	return occ
}

// bishopAttacksSlow computes bishop attacks by ray walking. Used only while
// building the magic tables.
func bishopAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	return rayAttacksSlow(sq, occupied, northEast) |
		rayAttacksSlow(sq, occupied, northWest) |
		rayAttacksSlow(sq, occupied, southEast) |
		rayAttacksSlow(sq, occupied, southWest)
}

// rookAttacksSlow computes rook attacks by ray walking. Used only while
// building the magic tables.
func rookAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	return rayAttacksSlow(sq, occupied, north) |
		rayAttacksSlow(sq, occupied, south) |
		rayAttacksSlow(sq, occupied, east) |
		rayAttacksSlow(sq, occupied, west)
}

func rayAttacksSlow(sq Square, occupied Bitboard, d direction) Bitboard {
	var attacks Bitboard
	step := shiftDir(SquareBB(sq), d)
	for step != 0 {
		attacks |= step
		if step&occupied != 0 {
			break
		}
		step = shiftDir(step, d)
	}
	return attacks
}

// getBishopAttacks returns bishop attacks using the magic tables.
func getBishopAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &bishopMagics[sq]
	idx := ((uint64(occupied) & uint64(m.mask)) * m.magic) >> m.shift
	return bishopTable[m.offset+uint32(idx)]
}

// getRookAttacks returns rook attacks using the magic tables.
func getRookAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &rookMagics[sq]
	idx := ((uint64(occupied) & uint64(m.mask)) * m.magic) >> m.shift
	return rookTable[m.offset+uint32(idx)]
}
