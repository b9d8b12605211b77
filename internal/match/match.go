package match

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lk16/flippy/reversi/internal/ai"
	"github.com/lk16/flippy/reversi/internal/othello"
	"github.com/lk16/flippy/reversi/internal/session"
)

// Result is a finished game between two computer levels.
type Result struct {
	ID    uuid.UUID
	Black ai.Level
	White ai.Level

	// Moves holds all moves including passes.
	Moves []othello.Move

	BlackDiscs int
	WhiteDiscs int

	// Winner is othello.Empty for a draw.
	Winner othello.Color

	// Evaluations holds the grade of every move that is not a pass, when grading is enabled.
	Evaluations []*ai.MoveEvaluation

	Duration time.Duration
}

// Level returns the level that played c.
func (r *Result) Level(c othello.Color) ai.Level {
	if c == othello.White {
		return r.White
	}
	return r.Black
}

type options struct {
	selector  *ai.Selector
	evaluator *ai.QualityEvaluator
}

// Option configures Play.
type Option func(*options)

// WithSelector replaces the move selector.
func WithSelector(selector *ai.Selector) Option {
	return func(o *options) {
		o.selector = selector
	}
}

// WithGrading grades every move with evaluator.
func WithGrading(evaluator *ai.QualityEvaluator) Option {
	return func(o *options) {
		o.evaluator = evaluator
	}
}

// Play plays a full game between two computer levels.
func Play(ctx context.Context, black, white ai.Level, opts ...Option) (*Result, error) {
	o := options{selector: ai.NewSelector()}
	for _, opt := range opts {
		opt(&o)
	}

	if !white.IsValid() {
		return nil, fmt.Errorf("failed to start game: %w: %s", ai.ErrUnknownLevel, white)
	}

	s, err := session.New(session.GameSettings{
		Mode:       session.Local,
		Level:      black,
		HumanColor: othello.Black,
	}, session.WithSelector(o.selector))
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	result := &Result{
		ID:    uuid.New(),
		Black: black,
		White: white,
	}

	start := time.Now()

	for !s.IsOver() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("game %s interrupted: %w", result.ID, err)
		}

		board, turn := s.Board(), s.Turn()

		move, ok, err := s.PlayLevel(ctx, result.Level(turn))
		if err != nil {
			return nil, fmt.Errorf("game %s: %w", result.ID, err)
		}
		if !ok {
			break
		}

		if o.evaluator != nil {
			evaluation, err := o.evaluator.Evaluate(ctx, board, turn, move.Move)
			if err != nil {
				return nil, fmt.Errorf("game %s: failed to grade %s: %w", result.ID, move, err)
			}
			result.Evaluations = append(result.Evaluations, evaluation)
		}
	}

	result.Moves = s.Moves()
	result.BlackDiscs, result.WhiteDiscs = s.Score()
	result.Winner = s.Winner()
	result.Duration = time.Since(start)

	slog.Info("Game finished",
		"id", result.ID.String(),
		"black", black.String(),
		"white", white.String(),
		"score", fmt.Sprintf("%d-%d", result.BlackDiscs, result.WhiteDiscs),
		"seconds", result.Duration.Seconds(),
	)

	return result, nil
}
