package tictactoe

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ParallelBestMove scores every first-level move in its own goroutine and
// combines the scores in enumeration order, so it always agrees with BestMove.
func ParallelBestMove(ctx context.Context, b Board) (Move, bool, error) {
	if IsTerminal(b) {
		return Move{}, false, nil
	}

	moves := LegalMoves(b)
	side := Turn(b)
	scores := make([]int, len(moves))

	g, ctx := errgroup.WithContext(ctx)
	for i, move := range moves {
		i := i
		next := mustApply(b, move)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scores[i] = childValue(side, next)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Move{}, false, fmt.Errorf("parallel search: %w", err)
	}

	return pickMove(side, moves, scores), true, nil
}
