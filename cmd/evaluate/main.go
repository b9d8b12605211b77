package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lk16/flippy/reversi/internal/ai"
	"github.com/lk16/flippy/reversi/internal/config"
	"github.com/lk16/flippy/reversi/internal/othello"
)

func main() {
	config.SetLogLevel()

	movesString := flag.String("moves", "", "moves played before the graded move, such as \"d3c3\"")
	moveString := flag.String("move", "", "the move to grade, such as \"c4\"")
	levelString := flag.String("level", "", "also show the move this level would play")
	flag.Parse()

	if err := run(context.Background(), *movesString, *moveString, *levelString); err != nil {
		slog.Error("Evaluation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, movesString, moveString, levelString string) error {
	if moveString == "" {
		return errors.New("missing -move")
	}

	moves, err := othello.ParseMoves(movesString)
	if err != nil {
		return fmt.Errorf("invalid -moves: %w", err)
	}

	game, err := othello.NewGameFromMoves(moves)
	if err != nil {
		return fmt.Errorf("invalid -moves: %w", err)
	}

	move, err := othello.ParseMove(moveString)
	if err != nil {
		return fmt.Errorf("invalid -move: %w", err)
	}

	board, turn := game.Board(), game.Turn()
	board.Print(turn)
	fmt.Println()

	if levelString != "" {
		level, err := ai.ParseLevel(levelString)
		if err != nil {
			return fmt.Errorf("invalid -level: %w", err)
		}

		if choice, ok := ai.ChooseMove(ctx, board, turn, level); ok {
			fmt.Printf("%s would play %s\n", level, choice)
		}
	}

	evaluation, err := ai.EvaluateMoveQuality(ctx, board, turn, move)
	if err != nil {
		return err
	}

	fmt.Printf("%s plays %s: %s (score difference %d)\n", turn, move, evaluation.Quality, evaluation.ScoreDiff)
	if evaluation.BestMove != nil {
		fmt.Printf("Best move: %s\n", evaluation.BestMove)
	}
	fmt.Println(evaluation.Message)

	return nil
}
