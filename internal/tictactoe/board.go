package tictactoe

import (
	"fmt"
	"strings"
)

const Size = 3

// Cell is the content of a single board square.
type Cell uint8

const (
	Empty Cell = iota
	MarkX
	MarkO
)

func (c Cell) String() string {
	switch c {
	case MarkX:
		return "X"
	case MarkO:
		return "O"
	default:
		return ""
	}
}

func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cell) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*c = Empty
	case "X":
		*c = MarkX
	case "O":
		*c = MarkO
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMark, text)
	}

	return nil
}

// Side is one of the two players. X always moves first and maximizes.
type Side uint8

const (
	X Side = iota + 1
	O
)

func (s Side) String() string {
	switch s {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

func (s Side) Opponent() Side {
	if s == X {
		return O
	}
	return X
}

// Sign maps a side onto the game value it is playing for.
func (s Side) Sign() int {
	if s == X {
		return 1
	}
	return -1
}

func (s Side) Mark() Cell {
	if s == X {
		return MarkX
	}
	return MarkO
}

// Move addresses a single cell by row and column.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// Board is a 3x3 grid stored by value; copying a Board copies every cell.
type Board [Size][Size]Cell

func InitialBoard() Board {
	return Board{}
}

func (b Board) Cell(m Move) Cell {
	return b[m.Row][m.Col]
}

func (b Board) Count(c Cell) int {
	n := 0
	for _, row := range b {
		for _, cell := range row {
			if cell == c {
				n++
			}
		}
	}
	return n
}

// String renders the board as three rows using '.' for empty cells.
func (b Board) String() string {
	var sb strings.Builder
	for i, row := range b {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, cell := range row {
			if cell == Empty {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(cell.String())
		}
	}
	return sb.String()
}

// ParseBoard reads the compact "XO.|.X.|..O" form. Row separators are optional.
func ParseBoard(s string) (Board, error) {
	var b Board

	cells := strings.ReplaceAll(s, "|", "")
	if len(cells) != Size*Size {
		return b, fmt.Errorf("%w: want %d cells, got %d", ErrMalformedBoard, Size*Size, len(cells))
	}

	for i, ch := range cells {
		var cell Cell
		switch ch {
		case '.', '_', ' ':
			cell = Empty
		case 'X', 'x':
			cell = MarkX
		case 'O', 'o':
			cell = MarkO
		default:
			return b, fmt.Errorf("%w: unexpected %q at %d", ErrMalformedBoard, ch, i)
		}
		b[i/Size][i%Size] = cell
	}

	return b, nil
}

// Turn reports who moves next. It is derived from the marks on the board,
// never stored, so it cannot drift from the board contents.
func Turn(b Board) Side {
	if b.Count(MarkX) <= b.Count(MarkO) {
		return X
	}
	return O
}

// LegalMoves lists the empty cells in row-major order.
func LegalMoves(b Board) []Move {
	moves := make([]Move, 0, Size*Size)
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if b[i][j] == Empty {
				moves = append(moves, Move{Row: i, Col: j})
			}
		}
	}
	return moves
}

// Apply returns a copy of b with the side to move placed at m.
func Apply(b Board, m Move) (Board, error) {
	if m.Row < 0 || m.Row >= Size {
		return b, &OutOfBoundsError{Axis: AxisRow, Coord: m.Row}
	}

	if m.Col < 0 || m.Col >= Size {
		return b, &OutOfBoundsError{Axis: AxisCol, Coord: m.Col}
	}

	if b[m.Row][m.Col] != Empty {
		return b, &IllegalMoveError{Move: m}
	}

	next := b
	next[m.Row][m.Col] = Turn(b).Mark()

	return next, nil
}
