package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

type gamePlayFixture struct {
	gameRepo   *mockGameRepo
	playerRepo *mockPlayerRepo
	service    GamePlayService
}

func newGamePlayFixture(t *testing.T) *gamePlayFixture {
	t.Helper()

	gameRepo := &mockGameRepo{}
	playerRepo := &mockPlayerRepo{}
	t.Cleanup(func() {
		gameRepo.AssertExpectations(t)
		playerRepo.AssertExpectations(t)
	})

	logger := discardLogger()

	return &gamePlayFixture{
		gameRepo:   gameRepo,
		playerRepo: playerRepo,
		service: NewGamePlayService(
			logger,
			NewPlayerService(playerRepo),
			NewGameService(gameRepo),
			NewBotService(logger, false),
		),
	}
}

func TestGamePlayService_SelfPlay(t *testing.T) {
	// Given: storage that accepts every write
	fx := newGamePlayFixture(t)
	fx.gameRepo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(nil)
	fx.playerRepo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Player")).Return(nil).Twice()

	// When: two bots play each other
	game, err := fx.service.SelfPlay(context.Background())
	require.NoError(t, err)

	// Then: optimal play fills the board without a winner
	assert.True(t, game.IsFinished())
	assert.Equal(t, entity.PlayerTie, game.Winner)
	assert.Equal(t, 0, game.Board.Count(tictactoe.Empty))
	assert.Len(t, game.Players, 2)

	// And: the game was stored after creation and after each of the nine moves
	fx.gameRepo.AssertNumberOfCalls(t, "CreateOrUpdate", 10)
}

func TestGamePlayService_SelfPlay_Canceled(t *testing.T) {
	fx := newGamePlayFixture(t)
	fx.gameRepo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(nil).Once()
	fx.playerRepo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Player")).Return(nil).Twice()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	game, err := fx.service.SelfPlay(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, tictactoe.InitialBoard(), game.Board)
}

func TestGamePlayService_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Bot answers the human move", func(t *testing.T) {
		// Given: an ongoing bot game where the human plays X
		fx := newGamePlayFixture(t)
		game := botGame(t, "...|...|...", tictactoe.O)
		human := game.Players[0]

		fx.playerRepo.On("GetByID", ctx, human.ID).Return(human, nil).Once()
		fx.gameRepo.On("GetByID", ctx, game.ID).Return(game, nil).Once()
		fx.gameRepo.On("CreateOrUpdate", ctx, game).Return(nil).Once()

		// When: the human takes the centre
		updated, err := fx.service.MakeTurn(ctx, human.ID, tictactoe.Move{Row: 1, Col: 1})
		require.NoError(t, err)

		// Then: the bot has replied with the minimax move
		afterHuman, err := tictactoe.Apply(tictactoe.InitialBoard(), tictactoe.Move{Row: 1, Col: 1})
		require.NoError(t, err)
		reply, ok := tictactoe.BestMove(afterHuman)
		require.True(t, ok)

		assert.Equal(t, tictactoe.MarkX, updated.Board[1][1])
		assert.Equal(t, tictactoe.MarkO, updated.Board.Cell(reply))
		assert.Equal(t, entity.PlayerX, updated.Turn)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: the human plays O and X is to move
		fx := newGamePlayFixture(t)
		game := entity.NewGame("g1", entity.PrivateType)
		game.Status = entity.StatusOngoing
		player := &entity.Player{ID: "p2", GameID: game.ID, Mark: entity.PlayerO}

		fx.playerRepo.On("GetByID", ctx, player.ID).Return(player, nil).Once()
		fx.gameRepo.On("GetByID", ctx, game.ID).Return(game, nil).Once()

		// When: O tries to move first
		_, err := fx.service.MakeTurn(ctx, player.ID, tictactoe.Move{Row: 0, Col: 0})

		// Then: ErrNotYourTurn is returned and nothing is stored
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Error on occupied cell", func(t *testing.T) {
		fx := newGamePlayFixture(t)
		game := botGame(t, "X..|.O.|...", tictactoe.O)
		human := game.Players[0]

		fx.playerRepo.On("GetByID", ctx, human.ID).Return(human, nil).Once()
		fx.gameRepo.On("GetByID", ctx, game.ID).Return(game, nil).Once()

		_, err := fx.service.MakeTurn(ctx, human.ID, tictactoe.Move{Row: 1, Col: 1})

		require.ErrorIs(t, err, tictactoe.ErrIllegalMove)
	})

	t.Run("Error on finished game", func(t *testing.T) {
		fx := newGamePlayFixture(t)
		game := botGame(t, "XXX|OO.|...", tictactoe.O)
		human := game.Players[0]

		fx.playerRepo.On("GetByID", ctx, human.ID).Return(human, nil).Once()
		fx.gameRepo.On("GetByID", ctx, game.ID).Return(game, nil).Once()

		_, err := fx.service.MakeTurn(ctx, human.ID, tictactoe.Move{Row: 2, Col: 2})

		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Error on unseated player", func(t *testing.T) {
		fx := newGamePlayFixture(t)
		game := botGame(t, "...|...|...", tictactoe.O)
		stranger := &entity.Player{ID: "p9", GameID: game.ID}

		fx.playerRepo.On("GetByID", ctx, stranger.ID).Return(stranger, nil).Once()
		fx.gameRepo.On("GetByID", ctx, game.ID).Return(game, nil).Once()

		_, err := fx.service.MakeTurn(ctx, stranger.ID, tictactoe.Move{Row: 0, Col: 0})

		require.ErrorIs(t, err, apperror.ErrNotAPlayer)
		require.ErrorIs(t, err, entity.ErrPlayerHasNoMark)
	})
}

func TestGamePlayService_GetOrCreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a bot game with opposite marks", func(t *testing.T) {
		// Given: a player without a game
		fx := newGamePlayFixture(t)
		player := &entity.Player{ID: "p1"}

		fx.gameRepo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Game")).Return(nil)
		fx.playerRepo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Player")).Return(nil)

		// When: asking for a bot game
		game, err := fx.service.GetOrCreateGame(ctx, player, entity.WithBotType)
		require.NoError(t, err)

		// Then: the game is ongoing with the player and a bot on opposite sides
		require.Len(t, game.Players, 2)
		assert.True(t, game.IsOngoing())
		assert.Equal(t, game.ID, player.GameID)

		bot := game.Players[1]
		require.True(t, bot.IsBot())
		assert.NotEqual(t, player.Mark, bot.Mark)

		// And: a bot holding X has already opened in the corner
		if bot.Mark == entity.PlayerX {
			assert.Equal(t, tictactoe.MarkX, game.Board[0][0])
			assert.Equal(t, entity.PlayerO, game.Turn)
		} else {
			assert.Equal(t, tictactoe.InitialBoard(), game.Board)
		}
	})

	t.Run("Returns the existing game", func(t *testing.T) {
		fx := newGamePlayFixture(t)
		game := entity.NewGame("g1", entity.PrivateType)
		player := &entity.Player{ID: "p1", GameID: game.ID, Mark: entity.PlayerX}

		fx.gameRepo.On("GetByID", ctx, game.ID).Return(game, nil).Once()

		got, err := fx.service.GetOrCreateGame(ctx, player, entity.PrivateType)

		require.NoError(t, err)
		assert.Equal(t, game, got)
	})
}

func TestGamePlayService_JoinGameByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Second player joins as O", func(t *testing.T) {
		// Given: a waiting private game created by p1
		fx := newGamePlayFixture(t)
		game := entity.NewGame("g1", entity.PrivateType)
		game.Players = []*entity.Player{{ID: "p1", GameID: game.ID, Mark: entity.PlayerX}}
		joiner := &entity.Player{ID: "p2"}

		fx.gameRepo.On("GetByID", ctx, game.ID).Return(game, nil).Once()
		fx.playerRepo.On("GetByID", ctx, joiner.ID).Return(joiner, nil).Once()
		fx.playerRepo.On("CreateOrUpdate", ctx, joiner).Return(nil).Once()
		fx.gameRepo.On("CreateOrUpdate", ctx, game).Return(nil).Once()

		// When: p2 joins
		joined, err := fx.service.JoinGameByID(ctx, game.ID, joiner.ID)
		require.NoError(t, err)

		// Then: the game starts with p2 as O
		assert.True(t, joined.IsOngoing())
		assert.Len(t, joined.Players, 2)
		assert.Equal(t, entity.PlayerO, joiner.Mark)
	})

	t.Run("Full game", func(t *testing.T) {
		fx := newGamePlayFixture(t)
		game := botGame(t, "...|...|...", tictactoe.O)
		joiner := &entity.Player{ID: "p3"}

		fx.gameRepo.On("GetByID", ctx, game.ID).Return(game, nil).Once()
		fx.playerRepo.On("GetByID", ctx, joiner.ID).Return(joiner, nil).Once()

		_, err := fx.service.JoinGameByID(ctx, game.ID, joiner.ID)

		require.ErrorIs(t, err, apperror.ErrGameAlreadyExists)
	})
}

func TestGamePlayService_CleanupGame(t *testing.T) {
	ctx := context.Background()

	// Given: a finished bot game
	fx := newGamePlayFixture(t)
	game := botGame(t, "XXX|OO.|...", tictactoe.O)
	human, bot := game.Players[0], game.Players[1]

	fx.gameRepo.On("DeleteByID", ctx, game.ID).Return(nil).Once()
	fx.playerRepo.On("DeleteByID", ctx, bot.ID).Return(nil).Once()
	fx.playerRepo.On("CreateOrUpdate", ctx, mock.MatchedBy(func(player *entity.Player) bool {
		return player.ID == human.ID && player.GameID == "" && player.Mark == ""
	})).Return(nil).Once()

	// When: the game is cleaned up
	fx.service.CleanupGame(ctx, game)

	// Then: the human keeps the mark in memory for rendering the final state
	assert.Equal(t, entity.PlayerX, human.Mark)
	assert.Empty(t, human.GameID)
}
