package tictactoe

import "fmt"

const (
	// bounds lie outside the game value range so the first move always improves on them.
	lowerBound = -2
	upperBound = 2
)

// BestMove returns the optimal move for the side to play. ok is false on a
// terminal board. Among equally good moves the first in row-major order wins,
// except that a move reaching the mover's winning value is taken at once.
func BestMove(b Board) (Move, bool) {
	if IsTerminal(b) {
		return Move{}, false
	}

	moves := LegalMoves(b)
	side := Turn(b)

	scores := make([]int, 0, len(moves))
	for _, move := range moves {
		score := childValue(side, mustApply(b, move))
		scores = append(scores, score)
		if score == side.Sign() {
			break
		}
	}

	return pickMove(side, moves, scores), true
}

// Value is the game value of b assuming optimal play from both sides.
func Value(b Board) int {
	if Turn(b) == X {
		return maxValue(b)
	}
	return minValue(b)
}

// childValue scores the position reached after side has moved.
func childValue(side Side, next Board) int {
	if side == X {
		return minValue(next)
	}
	return maxValue(next)
}

// pickMove walks scores in enumeration order. It stops on the side's winning
// value and otherwise keeps the first strict improvement.
func pickMove(side Side, moves []Move, scores []int) Move {
	var best Move

	bestScore := lowerBound
	if side == O {
		bestScore = upperBound
	}

	for i, score := range scores {
		if score == side.Sign() {
			return moves[i]
		}

		if (side == X && score > bestScore) || (side == O && score < bestScore) {
			best = moves[i]
			bestScore = score
		}
	}

	return best
}

func maxValue(b Board) int {
	if IsTerminal(b) {
		return OutcomeValue(b)
	}

	value := lowerBound
	for _, move := range LegalMoves(b) {
		score := minValue(mustApply(b, move))
		if score == 1 {
			return 1
		}
		value = max(value, score)
	}

	return value
}

func minValue(b Board) int {
	if IsTerminal(b) {
		return OutcomeValue(b)
	}

	value := upperBound
	for _, move := range LegalMoves(b) {
		score := maxValue(mustApply(b, move))
		if score == -1 {
			return -1
		}
		value = min(value, score)
	}

	return value
}

// mustApply panics when LegalMoves and Apply disagree, which is a bug here.
func mustApply(b Board, m Move) Board {
	next, err := Apply(b, m)
	if err != nil {
		panic(fmt.Sprintf("tictactoe: legal move %s rejected on board\n%s: %v", m, b, err))
	}
	return next
}
