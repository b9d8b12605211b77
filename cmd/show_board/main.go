package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lk16/flippy/reversi/internal/evaluation"
	"github.com/lk16/flippy/reversi/internal/othello"
)

func main() {
	boardString := flag.String("board", "", "the board to show, 64 characters of X, O and -")
	movesString := flag.String("moves", "", "moves from the start position, such as \"d3c3c4\"")
	turnString := flag.String("turn", "black", "the player to move on -board")
	flag.Parse()

	board, turn, err := loadPosition(*boardString, *movesString, *turnString)
	if err != nil {
		slog.Error("Cannot load position", "error", err)
		os.Exit(1)
	}

	board.Print(turn)
	fmt.Println()

	if othello.IsGameOver(board) {
		black, white, _ := board.Counts()
		fmt.Printf("Game over: %d - %d\n", black, white)
		return
	}

	fmt.Printf("%s to move, standard %d, enhanced %d\n",
		turn, evaluation.Standard.Evaluate(board, turn), evaluation.Enhanced.Evaluate(board, turn))

	for _, move := range othello.ValidMovesWithOpenness(board, turn) {
		after := board.Play(move, turn)
		fmt.Printf("%s  flips %2d  openness %2d  standard %6d  enhanced %6d\n",
			move, len(move.Flips), move.Openness,
			evaluation.Standard.Evaluate(after, turn), evaluation.Enhanced.Evaluate(after, turn))
	}
}

// loadPosition builds the position from either a board string or a move list.
func loadPosition(boardString, movesString, turnString string) (othello.Board, othello.Color, error) {
	if boardString != "" && movesString != "" {
		return othello.Board{}, othello.Empty, errors.New("use either -board or -moves")
	}

	if boardString != "" {
		board, err := othello.NewBoardFromString(boardString)
		if err != nil {
			return othello.Board{}, othello.Empty, err
		}

		turn, err := othello.ParseColor(turnString)
		if err != nil {
			return othello.Board{}, othello.Empty, err
		}

		return board, turn, nil
	}

	moves, err := othello.ParseMoves(movesString)
	if err != nil {
		return othello.Board{}, othello.Empty, err
	}

	game, err := othello.NewGameFromMoves(moves)
	if err != nil {
		return othello.Board{}, othello.Empty, err
	}

	return game.Board(), game.Turn(), nil
}
