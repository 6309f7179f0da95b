package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-solver/internal/config"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-solver/internal/service"
)

var (
	ErrAddrNotFound    = errors.New("redis address string is empty")
	ErrDecisiveOutcome = errors.New("optimal self-play did not end in a draw")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gamePlay := NewGamePlay(logger, conf, redisStorage)

	return RunSelfPlay(ctx, log, gamePlay, conf.SelfPlay.Games)
}

// NewGamePlay wires repositories and services on top of redisStorage.
func NewGamePlay(logger *slog.Logger, conf *config.Config, redisStorage *storage.RedisStorage) service.GamePlayService {
	playerRepo := repository.NewPlayerRepository(redisStorage.Connection)
	gameRepo := repository.NewGameRepository(redisStorage.Connection)

	return service.NewGamePlayService(
		logger,
		service.NewPlayerService(playerRepo),
		service.NewGameService(gameRepo),
		service.NewBotService(logger, conf.Bot.ParallelSearch),
	)
}

// RunSelfPlay plays the given number of bot-vs-bot games and removes them afterwards.
func RunSelfPlay(ctx context.Context, log *slog.Logger, gamePlay service.GamePlayService, games int) error {
	for i := 0; i < games; i++ {
		game, err := gamePlay.SelfPlay(ctx)
		if game != nil {
			gamePlay.CleanupGame(context.WithoutCancel(ctx), game)
		}

		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Info("Self-play canceled", "game", i)
				return nil
			}
			return fmt.Errorf("self-play game %d: %w", i, err)
		}

		if game.Winner != entity.PlayerTie {
			return fmt.Errorf("%w: game %s won by %s", ErrDecisiveOutcome, game.ID, game.Winner)
		}

		log.Info("Self-play game drawn", "game", i, "gameID", game.ID)
	}

	return nil
}
