package tictactoe

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds    = errors.New("move out of bounds")
	ErrIllegalMove    = errors.New("illegal move")
	ErrUnknownMark    = errors.New("unknown mark")
	ErrMalformedBoard = errors.New("malformed board")
)

type Axis string

const (
	AxisRow Axis = "row"
	AxisCol Axis = "column"
)

// OutOfBoundsError is returned by Apply when a coordinate falls off the board.
type OutOfBoundsError struct {
	Axis  Axis
	Coord int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s index out of bounds: %d, valid range is 0..%d", e.Axis, e.Coord, Size-1)
}

func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// IllegalMoveError is returned by Apply when the target cell is taken.
type IllegalMoveError struct {
	Move Move
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("move at row (%d), column (%d) is not an empty cell", e.Move.Row, e.Move.Col)
}

func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}
