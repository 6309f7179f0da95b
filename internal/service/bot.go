package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

var (
	ErrBotNotFound      = errors.New("bot player not found")
	ErrNoAvailableMoves = errors.New("no available moves")
)

type BotService interface {
	MakeTurn(ctx context.Context, game *entity.Game) error
}

type botService struct {
	logger   *slog.Logger
	parallel bool
}

// NewBotService returns a bot that always plays the minimax move. With
// parallel set the first-level moves are searched concurrently.
func NewBotService(logger *slog.Logger, parallel bool) BotService {
	return &botService{
		logger:   logger.With("component", "bot"),
		parallel: parallel,
	}
}

func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) error {
	side := tictactoe.Turn(game.Board)

	botPlayer, ok := lo.Find(game.Players, func(player *entity.Player) bool {
		return player.IsBot() && player.Mark == side.String()
	})
	if !ok {
		return fmt.Errorf("%w: %s to move", ErrBotNotFound, side)
	}

	move, found, err := that.bestMove(ctx, game.Board)
	if err != nil {
		return fmt.Errorf("bot search failed: %w", err)
	}

	if !found {
		return ErrNoAvailableMoves
	}

	that.logger.Debug("bot move", "gameID", game.ID, "player", botPlayer.ID, "mark", side.String(), "move", move.String())

	if err = game.MakeTurn(side, move); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

func (that *botService) bestMove(ctx context.Context, board tictactoe.Board) (tictactoe.Move, bool, error) {
	if that.parallel {
		return tictactoe.ParallelBestMove(ctx, board)
	}

	move, ok := tictactoe.BestMove(board)
	return move, ok, nil
}
