package match

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lk16/flippy/reversi/internal/ai"
	"github.com/lk16/flippy/reversi/internal/othello"
)

// SeriesConfig describes a number of games between two levels.
type SeriesConfig struct {
	// First plays black in even games, Second plays black in odd games.
	First  ai.Level
	Second ai.Level

	Games int

	// Parallel is the maximum number of games played at the same time. Zero uses all CPUs.
	Parallel int

	// Options returns the options of the game with the given index. It may be nil.
	Options func(game int) []Option
}

// Summary is the outcome of a series.
type Summary struct {
	First  ai.Level
	Second ai.Level

	// Results holds the games in the order they were configured, not the order they finished.
	Results []*Result

	FirstWins  int
	SecondWins int
	Draws      int

	// FirstDiscs and SecondDiscs sum the final disc counts over all games.
	FirstDiscs  int
	SecondDiscs int
}

// Validate checks the configuration.
func (c SeriesConfig) Validate() error {
	if !c.First.IsValid() || !c.Second.IsValid() {
		return fmt.Errorf("%w: %s vs %s", ai.ErrUnknownLevel, c.First, c.Second)
	}
	if c.Games < 1 {
		return errors.New("a series needs at least one game")
	}
	if c.Parallel < 0 {
		return errors.New("parallel cannot be negative")
	}
	return nil
}

// RunSeries plays all games of a series, swapping colors after every game.
func RunSeries(ctx context.Context, cfg SeriesConfig) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	parallel := cfg.Parallel
	if parallel == 0 {
		parallel = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, cfg.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i := range cfg.Games {
		black, white := cfg.First, cfg.Second
		if i%2 == 1 {
			black, white = white, black
		}

		var opts []Option
		if cfg.Options != nil {
			opts = cfg.Options(i)
		}

		g.Go(func() error {
			result, err := Play(ctx, black, white, opts...)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summarize(cfg, results), nil
}

func summarize(cfg SeriesConfig, results []*Result) *Summary {
	summary := &Summary{
		First:   cfg.First,
		Second:  cfg.Second,
		Results: results,
	}

	for i, result := range results {
		firstColor := othello.Black
		if i%2 == 1 {
			firstColor = othello.White
		}

		if firstColor == othello.Black {
			summary.FirstDiscs += result.BlackDiscs
			summary.SecondDiscs += result.WhiteDiscs
		} else {
			summary.FirstDiscs += result.WhiteDiscs
			summary.SecondDiscs += result.BlackDiscs
		}

		switch result.Winner {
		case othello.Empty:
			summary.Draws++
		case firstColor:
			summary.FirstWins++
		default:
			summary.SecondWins++
		}
	}

	return summary
}

// String formats the summary in one line.
func (s *Summary) String() string {
	return fmt.Sprintf("%s %d - %d %s (%d draws, discs %d - %d)",
		s.First, s.FirstWins, s.SecondWins, s.Second, s.Draws, s.FirstDiscs, s.SecondDiscs)
}
