package uci

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/sable-chess/sable/internal/board"
)

var (
	lightSquare = color.New(color.FgBlack, color.BgHiWhite)
	darkSquare  = color.New(color.FgBlack, color.BgCyan)
)

// RenderBoard returns the board as a colored checkerboard for the "d"
// debug command. Colors degrade to plain text when stdout is not a tty.
func RenderBoard(pos *board.Position) string {
	var sb strings.Builder

	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		sb.WriteString(fmt.Sprintf(" %d ", rank+1))
		for file := 0; file < 8; file++ {
			sq := board.NewSquare(file, rank)
			pt := pos.PieceAt(sq)

			cell := "   "
			if pt != board.NoPieceType {
				cell = fmt.Sprintf(" %c ", pos.PieceAt(sq).Char(pos.ColorAt(sq)))
			}

			if (file+rank)%2 == 0 {
				sb.WriteString(darkSquare.Sprint(cell))
			} else {
				sb.WriteString(lightSquare.Sprint(cell))
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("    a  b  c  d  e  f  g  h\n")

	return sb.String()
}
