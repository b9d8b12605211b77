package match //nolint:testpackage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"

	"github.com/lk16/flippy/reversi/internal/ai"
	"github.com/lk16/flippy/reversi/internal/othello"
)

type frozenClock struct{}

func (frozenClock) Now() time.Time {
	return time.Unix(0, 0)
}

func seededSelector(seed byte) *ai.Selector {
	key := make([]byte, 32)
	key[0] = seed
	return ai.NewSelector(ai.WithRand(frand.NewCustom(key, 1024, 12)), ai.WithClock(frozenClock{}))
}

func TestPlay(t *testing.T) {
	result, err := Play(context.Background(), ai.Beginner, ai.Intermediate, WithSelector(seededSelector(1)))
	require.NoError(t, err)

	require.NotEqual(t, uuid.Nil, result.ID)
	require.Equal(t, ai.Beginner, result.Black)
	require.Equal(t, ai.Intermediate, result.White)
	require.Equal(t, ai.Intermediate, result.Level(othello.White))
	require.Nil(t, result.Evaluations)

	game, err := othello.NewGameFromMoves(result.Moves)
	require.NoError(t, err)
	require.True(t, game.IsOver())

	black, white := game.Score()
	require.Equal(t, black, result.BlackDiscs)
	require.Equal(t, white, result.WhiteDiscs)
	require.Equal(t, game.Winner(), result.Winner)
}

func TestPlay_SameSeedSameGame(t *testing.T) {
	first, err := Play(context.Background(), ai.Beginner, ai.Elementary, WithSelector(seededSelector(2)))
	require.NoError(t, err)

	second, err := Play(context.Background(), ai.Beginner, ai.Elementary, WithSelector(seededSelector(2)))
	require.NoError(t, err)

	require.Equal(t, first.Moves, second.Moves)
	require.NotEqual(t, first.ID, second.ID)
}

func TestPlay_Grading(t *testing.T) {
	evaluator := ai.NewQualityEvaluator(ai.WithClock(frozenClock{}))

	result, err := Play(context.Background(), ai.Elementary, ai.Beginner,
		WithSelector(seededSelector(3)), WithGrading(evaluator))
	require.NoError(t, err)

	plies := 0
	for _, move := range result.Moves {
		if !move.IsPass() {
			plies++
		}
	}

	require.Len(t, result.Evaluations, plies)
	for _, evaluation := range result.Evaluations {
		require.GreaterOrEqual(t, evaluation.ScoreDiff, 0)
		require.Equal(t, ai.Classify(evaluation.ScoreDiff), evaluation.Quality)
	}
}

func TestPlay_Errors(t *testing.T) {
	_, err := Play(context.Background(), ai.Level(-1), ai.Beginner)
	require.ErrorIs(t, err, ai.ErrUnknownLevel)

	_, err = Play(context.Background(), ai.Beginner, ai.Level(10))
	require.ErrorIs(t, err, ai.ErrUnknownLevel)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Play(ctx, ai.Beginner, ai.Beginner)
	require.ErrorIs(t, err, context.Canceled)
}
