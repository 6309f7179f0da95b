package entity

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"
)

const (
	PrivateType  = "private"
	WithBotType  = "bot"
	SelfPlayType = "selfplay"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

type Game struct {
	ID      string          `json:"id"`
	Board   tictactoe.Board `json:"board"`
	Winner  string          `json:"winner"`
	Status  string          `json:"status"`
	Turn    string          `json:"player_turn"`
	Players []*Player       `json:"players,omitempty"`
	Type    string          `json:"type,omitempty"`
}

func NewGame(id, gameType string) *Game {
	return &Game{
		ID:     id,
		Board:  tictactoe.InitialBoard(),
		Turn:   PlayerX,
		Status: StatusWaiting,
		Type:   gameType,
	}
}

// DetermineGameResult returns the winning mark, PlayerTie, or "" while the game continues.
func (that *Game) DetermineGameResult() string {
	switch tictactoe.Evaluate(that.Board) {
	case tictactoe.XWins:
		return PlayerX
	case tictactoe.OWins:
		return PlayerO
	case tictactoe.Draw:
		return PlayerTie
	default:
		return ""
	}
}

func (that *Game) UpdateGameState() {
	switch winner := that.DetermineGameResult(); winner {
	// one player wins
	case PlayerX, PlayerO:
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = ""
	// tie
	case PlayerTie:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = ""
	// game continue
	default:
		that.Status = StatusOngoing
		that.Turn = tictactoe.Turn(that.Board).String()
	}
}

// MakeTurn plays move for mark. The board decides whose turn it is.
func (that *Game) MakeTurn(mark tictactoe.Side, move tictactoe.Move) error {
	if tictactoe.Turn(that.Board) != mark {
		return apperror.ErrNotYourTurn
	}

	board, err := tictactoe.Apply(that.Board, move)
	if err != nil {
		return fmt.Errorf("apply %s: %w", move, err)
	}

	that.Board = board
	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

func (that *Game) IsSelfPlay() bool {
	return that.Type == SelfPlayType
}

func (that *Game) GetRandomMarks() (tictactoe.Side, tictactoe.Side) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return tictactoe.X, tictactoe.O
	}
	return tictactoe.O, tictactoe.X
}
