package ai

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lk16/flippy/reversi/internal/evaluation"
	"github.com/lk16/flippy/reversi/internal/othello"
	"github.com/lk16/flippy/reversi/internal/search"
)

const (
	// QualityDepth is the depth every move is scored at.
	QualityDepth = 6

	// QualityBudget is the soft time budget shared by all moves of one grading.
	QualityBudget = 2 * time.Second

	GoodMaxDiff = 3
	OKMaxDiff   = 15
)

// Quality grades a played move by how much worse it scored than the best move.
type Quality string

const (
	Good Quality = "good"
	OK   Quality = "ok"
	Bad  Quality = "bad"
)

// Classify grades a score difference.
func Classify(diff int) Quality {
	switch {
	case diff <= GoodMaxDiff:
		return Good
	case diff <= OKMaxDiff:
		return OK
	default:
		return Bad
	}
}

// MoveEvaluation is the coaching feedback on one move.
type MoveEvaluation struct {
	Move    othello.ValidMove
	Quality Quality
	Message string

	// BestMove is the best scoring move, or nil if Move was already best.
	BestMove *othello.ValidMove

	// ScoreDiff is the score of BestMove minus the score of Move. It is never negative.
	ScoreDiff int
}

// QualityEvaluator grades moves by searching all alternatives.
type QualityEvaluator struct {
	opts options
}

func NewQualityEvaluator(opts ...Option) *QualityEvaluator {
	return &QualityEvaluator{opts: newOptions(opts)}
}

var defaultQualityEvaluator = NewQualityEvaluator()

// EvaluateMoveQuality grades move, played by c on board, with the default QualityEvaluator.
func EvaluateMoveQuality(ctx context.Context, board othello.Board, c othello.Color, move othello.Move) (*MoveEvaluation, error) {
	return defaultQualityEvaluator.Evaluate(ctx, board, c, move)
}

// Evaluate grades move, played by c on board. The board is not modified. Moves are scored in
// parallel, each by its own Searcher.
func (q *QualityEvaluator) Evaluate(ctx context.Context, board othello.Board, c othello.Color, move othello.Move) (*MoveEvaluation, error) {
	moves := othello.ValidMoves(board, c)

	played := -1
	for i := range moves {
		if moves[i].Move == move {
			played = i
			break
		}
	}

	if played == -1 {
		return nil, fmt.Errorf("%w: %s for %s", othello.ErrIllegalMove, move, c)
	}

	scores, err := q.scoreMoves(ctx, board, c, moves)
	if err != nil {
		return nil, err
	}

	best := played
	for i, score := range scores {
		if score > scores[best] {
			best = i
		}
	}

	eval := &MoveEvaluation{
		Move:      moves[played],
		ScoreDiff: scores[best] - scores[played],
	}
	eval.Quality = Classify(eval.ScoreDiff)

	if best != played {
		bestMove := moves[best]
		eval.BestMove = &bestMove
	}

	eval.Message = feedbackMessage(board, eval)

	return eval, nil
}

func (q *QualityEvaluator) scoreMoves(ctx context.Context, board othello.Board, c othello.Color, moves []othello.ValidMove) ([]int, error) {
	cfg := search.Config{
		MaxDepth: QualityDepth,
		Profile:  evaluation.Standard,
	}
	deadline := q.opts.clock.Now().Add(QualityBudget)

	scores := make([]int, len(moves))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(q.opts.parallelism)

	for i, move := range moves {
		g.Go(func() error {
			searcher := search.New(cfg, search.WithClock(q.opts.clock), search.WithDeadline(deadline))
			scores[i] = searcher.ScoreMove(ctx, board, c, move, QualityDepth)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring moves: %w", err)
	}

	return scores, nil
}

// feedbackMessage explains the grade of a move in one sentence.
func feedbackMessage(board othello.Board, eval *MoveEvaluation) string {
	move := eval.Move

	switch eval.Quality {
	case Good:
		if othello.IsCorner(move.Row, move.Col) {
			return "Great move, you took a corner!"
		}
		if othello.Openness(board, move) <= 1 {
			return "Great quiet move, it flips discs with hardly any empty neighbours."
		}
		return "Good move, it keeps the game going your way."
	case OK:
		return "Not bad, but there was a better move."
	}

	if othello.IsXSquare(move.Row, move.Col) {
		return "Playing on an X-square makes it easy for your opponent to take the corner!"
	}

	if othello.IsCSquare(move.Row, move.Col) {
		return "A C-square without a good reason risks giving away the corner."
	}

	if eval.BestMove != nil && othello.IsCorner(eval.BestMove.Row, eval.BestMove.Col) {
		return fmt.Sprintf("You missed the chance to take the corner at %s!", eval.BestMove.Move)
	}

	if othello.Openness(board, move) >= 5 {
		return "This move is too open, look for moves that flip fewer exposed discs."
	}

	return "This gives your opponent the upper hand, be careful not to flip too many discs."
}
