package engine

import (
	"time"

	"github.com/sable-chess/sable/internal/board"
)

// ClockInfo carries the host's time control for one search request.
type ClockInfo struct {
	Time      [2]time.Duration // remaining time per color
	Inc       [2]time.Duration // increment per move per color
	MovesToGo int              // moves until the next time control (0 = sudden death)
}

// AllocateTime converts a remaining-time clock into a budget for the next
// move. fullMove is the game's full-move number, used to estimate how many
// moves remain under sudden death.
func AllocateTime(clock ClockInfo, us board.Color, fullMove int) time.Duration {
	timeLeft := clock.Time[us]
	inc := clock.Inc[us]

	mtg := clock.MovesToGo
	if mtg == 0 {
		// Sudden death: assume the game shortens as it progresses.
		mtg = 40 - fullMove/2
		if mtg < 12 {
			mtg = 12
		}
	}

	moveTime := timeLeft/time.Duration(mtg) + inc*9/10

	// Never commit more than 80% of the remaining clock to a single move.
	if limit := timeLeft * 8 / 10; moveTime > limit {
		moveTime = limit
	}
	if moveTime < 5*time.Millisecond {
		moveTime = 5 * time.Millisecond
	}

	return moveTime
}
