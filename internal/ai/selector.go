package ai

import (
	"context"
	"runtime"

	"lukechampine.com/frand"

	"github.com/lk16/flippy/reversi/internal/evaluation"
	"github.com/lk16/flippy/reversi/internal/othello"
	"github.com/lk16/flippy/reversi/internal/search"
)

// Rand is the random source of the beginner and elementary levels. *frand.RNG implements it.
type Rand interface {
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int {
	return frand.Intn(n)
}

type options struct {
	rand        Rand
	clock       search.Clock
	parallelism int
}

// Option configures a Selector or a QualityEvaluator.
type Option func(*options)

// WithRand replaces the random source. A Selector must not be used concurrently when r is not safe
// for concurrent use.
func WithRand(r Rand) Option {
	return func(o *options) {
		o.rand = r
	}
}

// WithClock replaces the wall clock used for time budgets.
func WithClock(clock search.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithParallelism sets the number of moves a QualityEvaluator scores at the same time.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = max(n, 1)
	}
}

func newOptions(opts []Option) options {
	o := options{
		rand:        globalRand{},
		clock:       search.SystemClock,
		parallelism: runtime.GOMAXPROCS(0),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Selector picks moves for the computer player.
type Selector struct {
	opts options
}

func NewSelector(opts ...Option) *Selector {
	return &Selector{opts: newOptions(opts)}
}

var defaultSelector = NewSelector()

// ChooseMove picks a move for c on board with the default Selector.
func ChooseMove(ctx context.Context, board othello.Board, c othello.Color, level Level) (othello.ValidMove, bool) {
	return defaultSelector.ChooseMove(ctx, board, c, level)
}

// ChooseMove picks a move for c on board at the given level. It returns false when c has no legal
// move and has to pass. An unknown level plays like Beginner.
func (s *Selector) ChooseMove(ctx context.Context, board othello.Board, c othello.Color, level Level) (othello.ValidMove, bool) {
	moves := othello.ValidMoves(board, c)
	if len(moves) == 0 {
		return othello.ValidMove{}, false
	}

	switch level {
	case Elementary:
		return s.elementary(moves), true
	case Intermediate:
		return intermediate(board, c, moves), true
	case SemiAdvanced, Advanced, Expert:
		cfg, _ := level.SearchConfig()
		searcher := search.New(cfg, search.WithClock(s.opts.clock))
		result, _ := searcher.Search(ctx, board, c, moves)
		return result.Move, true
	default:
		return moves[s.opts.rand.Intn(len(moves))], true
	}
}

// elementary takes a random corner if possible. Otherwise it flips as many discs as possible,
// staying off X-squares unless there is nothing else.
func (s *Selector) elementary(moves []othello.ValidMove) othello.ValidMove {
	var corners, safe []othello.ValidMove

	for _, move := range moves {
		if othello.IsCorner(move.Row, move.Col) {
			corners = append(corners, move)
		}
		if !othello.IsXSquare(move.Row, move.Col) {
			safe = append(safe, move)
		}
	}

	if len(corners) > 0 {
		return corners[s.opts.rand.Intn(len(corners))]
	}

	candidates := moves
	if len(safe) > 0 {
		candidates = safe
	}

	best := candidates[0]
	for _, move := range candidates[1:] {
		if len(move.Flips) > len(best.Flips) {
			best = move
		}
	}

	return best
}

// intermediateScore scores a move without looking ahead.
func intermediateScore(board othello.Board, c othello.Color, move othello.ValidMove) int {
	after := board.Play(move, c)
	mobility := after.MoveCount(c) - after.MoveCount(c.Opponent())

	return -3*othello.Openness(board, move) + evaluation.PositionWeight(move.Row, move.Col) + 2*mobility
}

func intermediate(board othello.Board, c othello.Color, moves []othello.ValidMove) othello.ValidMove {
	best := moves[0]
	bestScore := intermediateScore(board, c, best)

	for _, move := range moves[1:] {
		if score := intermediateScore(board, c, move); score > bestScore {
			best = move
			bestScore = score
		}
	}

	return best
}
