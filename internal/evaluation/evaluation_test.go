package evaluation //nolint:testpackage

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lk16/flippy/reversi/internal/othello"
)

func mustBoard(t *testing.T, s string) othello.Board {
	t.Helper()
	board, err := othello.NewBoardFromString(s)
	require.NoError(t, err)
	return board
}

// randomBoards returns boards from random games, skipping terminal ones.
func randomBoards(games int) []othello.Board {
	rng := rand.New(rand.NewSource(7)) //nolint:gosec
	var boards []othello.Board

	for range games {
		board := othello.NewBoardStart()
		turn := othello.Black

		for !othello.IsGameOver(board) {
			boards = append(boards, board)
			moves := othello.ValidMoves(board, turn)
			if len(moves) > 0 {
				board = board.Play(moves[rng.Intn(len(moves))], turn)
			}
			turn = turn.Opponent()
		}
	}

	return boards
}

// naiveFrontier counts discs of c with an empty neighbour one square at a time.
func naiveFrontier(board othello.Board, c othello.Color) int {
	count := 0
	for index := range othello.Squares {
		row, col := othello.IndexToPos(index)
		if board.AtIndex(index) == c && othello.CountAdjacentEmpty(board, row, col) > 0 {
			count++
		}
	}
	return count
}

func TestPositional_StartBoardIsZero(t *testing.T) {
	board := othello.NewBoardStart()

	require.Equal(t, 0, Positional(board, othello.Black))
	require.Equal(t, 0, Positional(board, othello.White))
}

func TestPositional(t *testing.T) {
	board := mustBoard(t, "X------O"+"-O------"+strings.Repeat("-", 48))

	// black: a1 (100); white: h1 (100) and b2 (-50)
	require.Equal(t, 50, Positional(board, othello.Black))
	require.Equal(t, -50, Positional(board, othello.White))
	require.Equal(t, 100, PositionWeight(0, 0))
	require.Equal(t, -50, PositionWeight(6, 6))
	require.Equal(t, -20, PositionWeight(0, 1))
}

func TestMobility(t *testing.T) {
	require.Equal(t, 0, Mobility(othello.NewBoardStart(), othello.Black))
	require.Equal(t, 0, Mobility(othello.NewBoardEmpty(), othello.Black))

	// white can take c1, black has no move
	board := mustBoard(t, "OX"+strings.Repeat("-", 62))
	require.Equal(t, -1, Mobility(board, othello.Black))
	require.Equal(t, 1, Mobility(board, othello.White))
}

func TestStableCount(t *testing.T) {
	tests := []struct {
		name  string
		board string
		black int
		white int
	}{
		{
			name:  "start board",
			board: othello.NewBoardStart().String(),
		},
		{
			name:  "corner only",
			board: "X" + strings.Repeat("-", 63),
			black: 1,
		},
		{
			name:  "edge run from corner stops at gap",
			board: "XXX-XX--" + strings.Repeat("-", 56),
			black: 3,
		},
		{
			name: "filled triangle",
			board: "" +
				"XXXO----" +
				"XX------" +
				"X-------" +
				"O-------" +
				strings.Repeat("-", 32),
			black: 6,
		},
		{
			name: "interior square needs both neighbours",
			board: "" +
				"XX------" +
				"XOX-----" +
				"--------" +
				strings.Repeat("-", 40),
			black: 3,
		},
		{
			name:  "opposite corners",
			board: "X------O" + strings.Repeat("-", 48) + "O------X",
			black: 2,
			white: 2,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board := mustBoard(t, test.board)
			require.Equal(t, test.black, StableCount(board, othello.Black))
			require.Equal(t, test.white, StableCount(board, othello.White))
		})
	}
}

func TestStableCount_FullBoard(t *testing.T) {
	board := mustBoard(t, strings.Repeat("X", 64))
	require.Equal(t, 64, StableCount(board, othello.Black))
	require.Equal(t, 0, StableCount(board, othello.White))
}

func TestFrontier(t *testing.T) {
	for _, board := range randomBoards(3) {
		own, opp := Frontier(board, othello.Black)
		require.Equal(t, naiveFrontier(board, othello.Black), own)
		require.Equal(t, naiveFrontier(board, othello.White), opp)
	}

	own, opp := Frontier(othello.NewBoardStart(), othello.Black)
	require.Equal(t, 2, own)
	require.Equal(t, 2, opp)
}

func TestEvaluate_NegamaxSymmetry(t *testing.T) {
	for _, board := range randomBoards(5) {
		require.Equal(t, -Standard.Evaluate(board, othello.White), Standard.Evaluate(board, othello.Black))

		if board.Empties() > Enhanced.ParityMaxEmpties {
			require.Equal(t, -Enhanced.Evaluate(board, othello.White), Enhanced.Evaluate(board, othello.Black))
		}

		require.Equal(t, -Quick(board, othello.White), Quick(board, othello.Black))
	}
}

func TestEvaluate_FullBoardIsExact(t *testing.T) {
	board := mustBoard(t, strings.Repeat("X", 40)+strings.Repeat("O", 24))

	require.Equal(t, 16*ExactScale, Standard.Evaluate(board, othello.Black))
	require.Equal(t, -16*ExactScale, Enhanced.Evaluate(board, othello.White))
	require.Equal(t, 16*ExactScale, Evaluate(board, othello.Black))
}

func TestEvaluate_StabilityGate(t *testing.T) {
	// Black owns corner a1, so stability differs, but it only counts past the disc threshold.
	board := mustBoard(t, "X-------"+"-O------"+strings.Repeat("-", 48))

	withoutStability := Positional(board, othello.Black) + Mobility(board, othello.Black)*Standard.Mobility
	require.Equal(t, withoutStability, Standard.Evaluate(board, othello.Black))
}

func TestEvaluate_Parity(t *testing.T) {
	base := strings.Repeat("X", 26) + strings.Repeat("O", 27)

	odd := mustBoard(t, base+strings.Repeat("-", 11))
	even := mustBoard(t, base+"O"+strings.Repeat("-", 10))

	noParity := Enhanced
	noParity.Parity = 0

	require.Equal(t, noParity.Evaluate(odd, othello.Black)+Enhanced.Parity, Enhanced.Evaluate(odd, othello.Black))
	require.Equal(t, noParity.Evaluate(even, othello.Black)-Enhanced.Parity, Enhanced.Evaluate(even, othello.Black))
}
