package othello

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

const (
	// Size is the width and height of the board.
	Size = 8

	// Squares is the number of squares on the board.
	Squares = Size * Size
)

// Color is the state of a square, or the player to move when it is Black or White.
type Color int8

const (
	Empty Color = iota
	Black
	White
)

var (
	ErrInvalidCoordinate = errors.New("coordinate out of bounds")
	ErrIllegalMove       = errors.New("illegal move")
	ErrInvalidBoard      = errors.New("invalid board")
	ErrInvalidColor      = errors.New("invalid color")
)

// Opponent returns the other player. It panics for Empty.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		panic("opponent of empty color")
	}
}

// String returns the lowercase name of the color.
func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// ParseColor parses a player color: "black" or "x", "white" or "o", case-insensitive.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black", "x":
		return Black, nil
	case "white", "o":
		return White, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
}

// Board represents an Othello board as two bitboards. Bit i holds the square with index i, where
// index is row*8 + col. Board is a value type: assigning it copies it.
type Board struct {
	black uint64
	white uint64
}

// NewBoardStart creates a new board with the starting position.
func NewBoardStart() Board {
	return Board{
		black: 0x0000000810000000,
		white: 0x0000001008000000,
	}
}

// NewBoardEmpty creates a new board without any discs.
func NewBoardEmpty() Board {
	return Board{}
}

// NewBoardFromBitboards creates a board from black and white bitboards.
func NewBoardFromBitboards(black, white uint64) (Board, error) {
	if black&white != 0 {
		return Board{}, fmt.Errorf("%w: black and white discs cannot overlap", ErrInvalidBoard)
	}

	return Board{black: black, white: white}, nil
}

// NewBoardFromString parses a board from 64 characters: X for black, O for white and - for empty.
// Whitespace is ignored so boards can be written one row per line.
func NewBoardFromString(s string) (Board, error) {
	s = strings.Join(strings.Fields(s), "")

	if len(s) != Squares {
		return Board{}, fmt.Errorf("%w: board string must be %d characters long, got %d", ErrInvalidBoard, Squares, len(s))
	}

	var board Board
	for i := range Squares {
		switch s[i] {
		case 'X', 'x', '*':
			board.black |= 1 << i
		case 'O', 'o':
			board.white |= 1 << i
		case '-', '.':
		default:
			return Board{}, fmt.Errorf("%w: unexpected character %q at index %d", ErrInvalidBoard, s[i], i)
		}
	}

	return board, nil
}

// Clone returns a copy of the board.
func (b Board) Clone() Board {
	return b
}

// Bitboard returns the bitboard for the discs of color c.
func (b Board) Bitboard(c Color) uint64 {
	switch c {
	case Black:
		return b.black
	case White:
		return b.white
	default:
		return ^(b.black | b.white)
	}
}

// At returns the color of the square at row, col. It panics on coordinates outside the board.
func (b Board) At(row, col int) Color {
	mustBeOnBoard(row, col)
	return b.AtIndex(PosToIndex(row, col))
}

// AtIndex returns the color of the square at index.
func (b Board) AtIndex(index int) Color {
	mask := uint64(1) << index
	switch {
	case b.black&mask != 0:
		return Black
	case b.white&mask != 0:
		return White
	default:
		return Empty
	}
}

// Set returns a board with the square at row, col set to c.
// It panics on coordinates outside the board.
func (b Board) Set(row, col int, c Color) Board {
	mustBeOnBoard(row, col)
	return b.SetIndex(PosToIndex(row, col), c)
}

// SetIndex returns a board with the square at index set to c.
func (b Board) SetIndex(index int, c Color) Board {
	mask := uint64(1) << index
	b.black &^= mask
	b.white &^= mask

	switch c {
	case Black:
		b.black |= mask
	case White:
		b.white |= mask
	}

	return b
}

// Count returns the number of squares with color c.
func (b Board) Count(c Color) int {
	return bits.OnesCount64(b.Bitboard(c))
}

// Counts returns the number of black, white and empty squares.
func (b Board) Counts() (black, white, empty int) {
	black = bits.OnesCount64(b.black)
	white = bits.OnesCount64(b.white)
	return black, white, Squares - black - white
}

// Empties returns the number of empty squares.
func (b Board) Empties() int {
	return Squares - bits.OnesCount64(b.black|b.white)
}

// DiscDifference returns the number of discs of c minus the number of discs of its opponent.
func (b Board) DiscDifference(c Color) int {
	return b.Count(c) - b.Count(c.Opponent())
}

// IndexToPos converts a square index into row and column.
func IndexToPos(index int) (row, col int) {
	return index / Size, index % Size
}

// PosToIndex converts a row and column into a square index.
func PosToIndex(row, col int) int {
	return row*Size + col
}

// IsOnBoard checks if row and col are both in [0,8).
func IsOnBoard(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

func mustBeOnBoard(row, col int) {
	if !IsOnBoard(row, col) {
		panic(fmt.Sprintf("%v: row=%d col=%d", ErrInvalidCoordinate, row, col))
	}
}

// IsCorner checks if the square is one of the four corners.
func IsCorner(row, col int) bool {
	return (row == 0 || row == 7) && (col == 0 || col == 7)
}

// IsXSquare checks if the square is diagonally adjacent to a corner.
func IsXSquare(row, col int) bool {
	return (row == 1 || row == 6) && (col == 1 || col == 6)
}

// IsCSquare checks if the square is on an edge and adjacent to a corner.
func IsCSquare(row, col int) bool {
	return ((row == 0 || row == 7) && (col == 1 || col == 6)) ||
		((col == 0 || col == 7) && (row == 1 || row == 6))
}

// String returns the 64 character representation accepted by NewBoardFromString.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(Squares)

	for i := range Squares {
		switch b.AtIndex(i) {
		case Black:
			sb.WriteByte('X')
		case White:
			sb.WriteByte('O')
		default:
			sb.WriteByte('-')
		}
	}

	return sb.String()
}

// ASCIIArtLines returns the ascii art lines for the board, marking legal moves for turn.
func (b Board) ASCIIArtLines(turn Color) []string {
	moves := b.Moves(turn)
	lines := make([]string, Size+2)

	lines[0] = "+-a-b-c-d-e-f-g-h-+"
	for row := range Size {
		line := fmt.Sprintf("%d ", row+1)

		for col := range Size {
			index := PosToIndex(row, col)
			mask := uint64(1) << index

			switch {
			case b.white&mask != 0:
				line += "○ "
			case b.black&mask != 0:
				line += "● "
			case moves&mask != 0:
				line += "· "
			default:
				line += "  "
			}
		}

		lines[row+1] = line + "|"
	}

	lines[Size+1] = "+-----------------+"

	return lines
}

// Print prints the board to the console. This is used for debugging.
func (b Board) Print(turn Color) {
	for _, line := range b.ASCIIArtLines(turn) {
		fmt.Println(line)
	}
}
