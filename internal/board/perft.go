package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
// It is the correctness oracle for the move generator.
func Perft(p *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var ml MoveList
	p.GenerateMoves(GenAll, &ml)

	if depth == 1 {
		return uint64(ml.Len())
	}

	var nodes uint64
	for i := 0; i < ml.Len(); i++ {
		p.MakeMove(ml.Get(i))
		nodes += Perft(p, depth-1)
		p.UnmakeMove()
	}
	return nodes
}

// PerftDivide returns the node count below each root move.
func PerftDivide(p *Position, depth int) map[Move]uint64 {
	div := make(map[Move]uint64)

	var ml MoveList
	p.GenerateMoves(GenAll, &ml)

	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		p.MakeMove(m)
		div[m] = Perft(p, depth-1)
		p.UnmakeMove()
	}
	return div
}

// PerftPhased counts leaves by generating quiet moves and captures in two
// separate passes over shared check info. Diverging from Perft on any
// position means the generation modes disagree.
func PerftPhased(p *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var ci CheckInfo
	p.ComputeCheckInfo(&ci)

	var quiets, captures MoveList
	p.GenerateMovesWithInfo(GenQuiet, &ci, &quiets)
	p.GenerateMovesWithInfo(GenCaptures, &ci, &captures)

	if depth == 1 {
		return uint64(quiets.Len() + captures.Len())
	}

	var nodes uint64
	for i := 0; i < quiets.Len(); i++ {
		p.MakeMove(quiets.Get(i))
		nodes += PerftPhased(p, depth-1)
		p.UnmakeMove()
	}
	for i := 0; i < captures.Len(); i++ {
		p.MakeMove(captures.Get(i))
		nodes += PerftPhased(p, depth-1)
		p.UnmakeMove()
	}
	return nodes
}
