package entity

import (
	"errors"

	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

const botIDPrefix = "bot:"

var ErrPlayerHasNoMark = errors.New("player has no mark")

type Player struct {
	ID     string `json:"id"`
	Mark   string `json:"mark,omitempty"`
	GameID string `json:"game_id,omitempty"`
	Bot    bool   `json:"bot,omitempty"`
}

// NewBotPlayer seats a bot in gameID. suffix tells bots of one game apart.
func NewBotPlayer(gameID, suffix string) *Player {
	return &Player{
		ID:     botIDPrefix + gameID + suffix,
		GameID: gameID,
		Bot:    true,
	}
}

func (that *Player) IsBot() bool {
	return that.Bot
}

func (that *Player) SetSide(side tictactoe.Side) {
	that.Mark = side.String()
}

func (that *Player) Side() (tictactoe.Side, error) {
	switch that.Mark {
	case PlayerX:
		return tictactoe.X, nil
	case PlayerO:
		return tictactoe.O, nil
	default:
		return 0, ErrPlayerHasNoMark
	}
}
