package tictactoe

// Result summarises a board for callers that track game status.
type Result uint8

const (
	InProgress Result = iota
	XWins
	OWins
	Draw
)

func (r Result) String() string {
	switch r {
	case XWins:
		return "x_wins"
	case OWins:
		return "o_wins"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

var Lines = [8][3]Move{
	// rows
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	// columns
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	// diagonals
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

func hasLine(b Board, mark Cell) bool {
	for _, line := range Lines {
		if b.Cell(line[0]) == mark && b.Cell(line[1]) == mark && b.Cell(line[2]) == mark {
			return true
		}
	}
	return false
}

// OutcomeValue is 1 when X has three in a row, -1 for O and 0 otherwise.
func OutcomeValue(b Board) int {
	for _, side := range [...]Side{X, O} {
		if hasLine(b, side.Mark()) {
			return side.Sign()
		}
	}
	return 0
}

func Winner(b Board) (Side, bool) {
	switch OutcomeValue(b) {
	case 1:
		return X, true
	case -1:
		return O, true
	default:
		return 0, false
	}
}

// IsTerminal is true for a full board or one with a completed line.
func IsTerminal(b Board) bool {
	if len(LegalMoves(b)) == 0 {
		return true
	}

	_, ok := Winner(b)
	return ok
}

func Evaluate(b Board) Result {
	if side, ok := Winner(b); ok {
		if side == X {
			return XWins
		}
		return OWins
	}

	if len(LegalMoves(b)) == 0 {
		return Draw
	}

	return InProgress
}
