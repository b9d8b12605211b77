package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/lk16/flippy/reversi/internal/ai"
	"github.com/lk16/flippy/reversi/internal/config"
	"github.com/lk16/flippy/reversi/internal/match"
	"github.com/lk16/flippy/reversi/internal/othello"
)

func main() {
	config.SetLogLevel()

	cfg := config.LoadSelfPlayConfigMust()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	seriesConfig := match.SeriesConfig{
		First:    cfg.Black,
		Second:   cfg.White,
		Games:    cfg.Games,
		Parallel: cfg.Parallel,
	}

	if cfg.Coach {
		seriesConfig.Options = func(int) []match.Option {
			return []match.Option{match.WithGrading(ai.NewQualityEvaluator(ai.WithParallelism(1)))}
		}
	}

	summary, err := match.RunSeries(ctx, seriesConfig)
	if err != nil {
		slog.Error("Self-play failed", "error", err)
		os.Exit(1)
	}

	for i, result := range summary.Results {
		printResult(i+1, result)
	}

	if len(summary.Results) > 1 {
		fmt.Println(summary)
	}
}

func printResult(number int, result *match.Result) {
	winner := "draw"
	if result.Winner != othello.Empty {
		winner = fmt.Sprintf("%s (%s) wins", result.Level(result.Winner), result.Winner)
	}

	fmt.Printf("Game %d: %s (black) %d - %d %s (white), %s\n",
		number, result.Black, result.BlackDiscs, result.WhiteDiscs, result.White, winner)
	fmt.Printf("Moves: %s\n", othello.FormatMoves(result.Moves))

	if len(result.Evaluations) == 0 {
		return
	}

	counts := map[othello.Color]map[ai.Quality]int{
		othello.Black: {},
		othello.White: {},
	}

	game := othello.NewGame()
	for _, evaluation := range result.Evaluations {
		turn := game.Turn()
		counts[turn][evaluation.Quality]++

		if err := game.PushMove(evaluation.Move.Move); err != nil {
			slog.Error("Cannot replay game", "error", err)
			return
		}
	}

	for _, c := range []othello.Color{othello.Black, othello.White} {
		fmt.Printf("%s: %d good, %d ok, %d bad\n",
			c, counts[c][ai.Good], counts[c][ai.OK], counts[c][ai.Bad])
	}
}
