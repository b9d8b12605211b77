package othello //nolint:testpackage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBoardStart(t *testing.T) {
	board := NewBoardStart()

	require.Equal(t, White, board.At(3, 3))
	require.Equal(t, Black, board.At(3, 4))
	require.Equal(t, Black, board.At(4, 3))
	require.Equal(t, White, board.At(4, 4))

	black, white, empty := board.Counts()
	require.Equal(t, 2, black)
	require.Equal(t, 2, white)
	require.Equal(t, 60, empty)
}

func TestNewBoardFromBitboards(t *testing.T) {
	_, err := NewBoardFromBitboards(1, 1)
	require.ErrorIs(t, err, ErrInvalidBoard)

	board, err := NewBoardFromBitboards(0x0000000810000000, 0x0000001008000000)
	require.NoError(t, err)
	require.Equal(t, NewBoardStart(), board)
}

func TestBoard_StringRoundTrip(t *testing.T) {
	board := NewBoardStart()
	s := board.String()

	require.Len(t, s, Squares)
	require.Equal(t, "---------------------------OX------XO---------------------------", s)

	parsed, err := NewBoardFromString(s)
	require.NoError(t, err)
	require.Equal(t, board, parsed)
}

func TestNewBoardFromString_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "too short", input: "XO"},
		{name: "bad character", input: "Z" + NewBoardStart().String()[1:]},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewBoardFromString(test.input)
			require.ErrorIs(t, err, ErrInvalidBoard)
		})
	}
}

func TestNewBoardFromString_Rows(t *testing.T) {
	board, err := NewBoardFromString(`
		X-------
		--------
		--------
		---OX---
		---XO---
		--------
		--------
		-------O
	`)
	require.NoError(t, err)
	require.Equal(t, Black, board.At(0, 0))
	require.Equal(t, White, board.At(7, 7))
	require.Equal(t, 3, board.Count(Black))
	require.Equal(t, 3, board.Count(White))
}

func TestBoard_SetDoesNotAlias(t *testing.T) {
	before := NewBoardStart()
	after := before.Set(0, 0, Black)

	require.Equal(t, Empty, before.At(0, 0))
	require.Equal(t, Black, after.At(0, 0))

	cleared := after.Set(3, 3, Empty)
	require.Equal(t, Empty, cleared.At(3, 3))
	require.Equal(t, White, after.At(3, 3))

	clone := after.Clone()
	clone = clone.Set(7, 7, White)
	require.Equal(t, Empty, after.At(7, 7))
}

func TestBoard_AtPanicsOffBoard(t *testing.T) {
	board := NewBoardStart()

	require.Panics(t, func() { board.At(8, 0) })
	require.Panics(t, func() { board.At(0, -1) })
	require.Panics(t, func() { board.Set(-1, 0, Black) })
}

func TestBoard_Conservation(t *testing.T) {
	board := NewBoardStart()
	turn := Black

	for !IsGameOver(board) {
		moves := ValidMoves(board, turn)
		if len(moves) > 0 {
			board = board.Play(moves[len(moves)/2], turn)
		}
		turn = turn.Opponent()

		black, white, empty := board.Counts()
		require.Equal(t, Squares, black+white+empty)
		require.Equal(t, empty, board.Empties())
	}
}

func TestIndexConversion(t *testing.T) {
	for index := range Squares {
		row, col := IndexToPos(index)
		require.True(t, IsOnBoard(row, col))
		require.Equal(t, index, PosToIndex(row, col))
	}

	require.False(t, IsOnBoard(8, 0))
	require.False(t, IsOnBoard(0, -1))
}

func TestSquareClassification(t *testing.T) {
	corners, xSquares, cSquares := 0, 0, 0

	for row := range Size {
		for col := range Size {
			kinds := 0
			if IsCorner(row, col) {
				corners++
				kinds++
			}
			if IsXSquare(row, col) {
				xSquares++
				kinds++
			}
			if IsCSquare(row, col) {
				cSquares++
				kinds++
			}
			require.LessOrEqual(t, kinds, 1, "square (%d,%d) has more than one kind", row, col)
		}
	}

	require.Equal(t, 4, corners)
	require.Equal(t, 4, xSquares)
	require.Equal(t, 8, cSquares)

	require.True(t, IsCorner(7, 0))
	require.True(t, IsXSquare(6, 1))
	require.True(t, IsCSquare(0, 6))
	require.True(t, IsCSquare(6, 7))
	require.False(t, IsCSquare(0, 2))
}

func TestColor_Opponent(t *testing.T) {
	require.Equal(t, White, Black.Opponent())
	require.Equal(t, Black, White.Opponent())
	require.Panics(t, func() { Empty.Opponent() })
}

func TestParseColor(t *testing.T) {
	for input, want := range map[string]Color{"black": Black, "X": Black, " White": White, "o": White} {
		c, err := ParseColor(input)
		require.NoError(t, err)
		require.Equal(t, want, c)
	}

	_, err := ParseColor("empty")
	require.ErrorIs(t, err, ErrInvalidColor)
}

func TestBoard_ASCIIArtLines(t *testing.T) {
	lines := NewBoardStart().ASCIIArtLines(Black)

	require.Len(t, lines, 10)
	require.Equal(t, "+-a-b-c-d-e-f-g-h-+", lines[0])
	require.Equal(t, "3       ·         |", lines[3])
	require.Equal(t, "4     · ○ ●       |", lines[4])
	require.Equal(t, "+-----------------+", lines[9])
}
