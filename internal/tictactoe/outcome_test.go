package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeValue(t *testing.T) {
	cases := []struct {
		name  string
		board string
		want  int
	}{
		{"X top row", "XXX|OO.|...", 1},
		{"X middle column", "OX.|OX.|.X.", 1},
		{"X main diagonal", "XO.|OX.|..X", 1},
		{"X anti diagonal", "O.X|OX.|X..", 1},
		{"O bottom row", "XX.|X..|OOO", -1},
		{"O left column", "OXX|OX.|O.X", -1},
		{"O anti diagonal", "XXO|XO.|O..", -1},
		{"empty board", "...|...|...", 0},
		{"ongoing", "XO.|.X.|..O", 0},
		{"full draw", "XOX|XOO|OXX", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Given: a fixture board
			b := mustParse(t, tc.board)

			// When: evaluating it
			value := OutcomeValue(b)

			// Then: the value matches the line on the board
			assert.Equal(t, tc.want, value)
		})
	}
}

func TestWinner(t *testing.T) {
	t.Run("X has completed the top row", func(t *testing.T) {
		// Given: X owns row 0
		b := mustParse(t, "XXX|OO.|...")

		// When: asking for the winner
		side, ok := Winner(b)

		// Then: X wins and the game is over
		require.True(t, ok)
		assert.Equal(t, X, side)
		assert.True(t, IsTerminal(b))
		assert.Equal(t, XWins, Evaluate(b))
	})

	t.Run("O wins", func(t *testing.T) {
		b := mustParse(t, "XX.|X..|OOO")

		side, ok := Winner(b)

		require.True(t, ok)
		assert.Equal(t, O, side)
		assert.Equal(t, OWins, Evaluate(b))
	})

	t.Run("No winner", func(t *testing.T) {
		b := mustParse(t, "XOX|XO.|O..")

		_, ok := Winner(b)

		assert.False(t, ok)
		assert.False(t, IsTerminal(b))
		assert.Equal(t, InProgress, Evaluate(b))
	})
}

func TestIsTerminal(t *testing.T) {
	t.Run("Full board without a line is a draw", func(t *testing.T) {
		b := mustParse(t, "XOX|XOO|OXX")

		assert.True(t, IsTerminal(b))
		assert.Equal(t, Draw, Evaluate(b))
	})

	t.Run("Full board with a line", func(t *testing.T) {
		b := mustParse(t, "XOX|OXO|OXX")

		assert.True(t, IsTerminal(b))
		assert.Equal(t, XWins, Evaluate(b))
	})

	t.Run("Matches moves and winner on every reachable board", func(t *testing.T) {
		for _, b := range reachableBoards(t) {
			_, won := Winner(b)
			require.Equal(t, len(LegalMoves(b)) == 0 || won, IsTerminal(b), b.String())
		}
	})

	t.Run("Never two winners on a reachable board", func(t *testing.T) {
		for _, b := range reachableBoards(t) {
			require.False(t, hasLine(b, MarkX) && hasLine(b, MarkO), b.String())
		}
	})
}

func TestResult_String(t *testing.T) {
	assert.Equal(t, "in_progress", InProgress.String())
	assert.Equal(t, "x_wins", XWins.String())
	assert.Equal(t, "o_wins", OWins.String())
	assert.Equal(t, "draw", Draw.String())
}
