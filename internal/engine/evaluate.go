// Package engine implements the alpha-beta search, quiescence, move
// ordering and the transposition table.
package engine

import "github.com/sable-chess/sable/internal/board"

// Evaluate returns the static evaluation of the position in centipawns,
// from the perspective of the side to move. The position tracks material
// incrementally, so this is a subtraction.
func Evaluate(pos *board.Position) int {
	us := pos.SideToMove
	return pos.Material[us] - pos.Material[us.Other()]
}
