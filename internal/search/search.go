package search

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/lk16/flippy/reversi/internal/evaluation"
	"github.com/lk16/flippy/reversi/internal/othello"
)

const (
	// TerminalScale multiplies the disc differential of a finished game, so that any won game
	// outscores any heuristic evaluation.
	TerminalScale = 10000

	inf = 1 << 30

	// ctxCheckInterval is the number of nodes between two checks of the context.
	ctxCheckInterval = 1024

	// orderThreshold is the number of moves above which interior nodes are ordered.
	orderThreshold = 3
)

// Config describes one search tier.
type Config struct {
	// MaxDepth is the search depth outside the endgame.
	MaxDepth int

	// Iterative enables iterative deepening, starting at depth 2 and adding DepthStep each time.
	Iterative bool
	DepthStep int

	// EndgameThreshold sets the depth to the number of empty squares once there are at most this
	// many. Zero disables it.
	EndgameThreshold int

	// TimeBudget is the wall-clock budget of one search. Zero means unlimited.
	TimeBudget time.Duration

	// OrderInterior sorts moves by evaluation.Quick at interior nodes with more than 3 moves.
	OrderInterior bool

	Profile evaluation.Profile
}

// Result is the outcome of a search.
type Result struct {
	Move othello.ValidMove

	// Score is the score of Move from the perspective of the searching player.
	Score int

	// Depth is the depth of the iteration Move comes from.
	Depth int

	// Completed is false when the iteration at Depth was interrupted.
	Completed bool

	Nodes uint64
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithClock replaces the wall clock.
func WithClock(clock Clock) Option {
	return func(s *Searcher) {
		s.clock = clock
	}
}

// WithDeadline stops every search at deadline, in addition to the time budget. This lets several
// searchers share one budget.
func WithDeadline(deadline time.Time) Option {
	return func(s *Searcher) {
		s.fixedDeadline = deadline
	}
}

// Searcher runs negamax alpha-beta searches. A Searcher is not safe for concurrent use, but
// separate Searchers can run in parallel since boards are values.
type Searcher struct {
	cfg   Config
	clock Clock

	fixedDeadline time.Time

	ctx      context.Context
	start    time.Time
	deadline time.Time
	timed    bool
	nodes    uint64
	stopped  bool
}

// New creates a Searcher. A zero Profile is replaced with evaluation.Standard.
func New(cfg Config, opts ...Option) *Searcher {
	if cfg.Profile.Name == "" {
		cfg.Profile = evaluation.Standard
	}
	if cfg.DepthStep < 1 {
		cfg.DepthStep = 1
	}

	s := &Searcher{
		cfg:   cfg,
		clock: SystemClock,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Config returns the configuration of the searcher.
func (s *Searcher) Config() Config {
	return s.cfg
}

// MaxDepth returns the depth the search goes to on board.
func (s *Searcher) MaxDepth(board othello.Board) int {
	empties := board.Empties()
	if s.cfg.EndgameThreshold > 0 && empties <= s.cfg.EndgameThreshold {
		return empties
	}
	return s.cfg.MaxDepth
}

// Search picks the best of moves for c on board. The moves must be the legal moves of c. It returns
// false only when moves is empty. Running out of time or a cancelled context is not an error: the
// best move found so far is returned.
func (s *Searcher) Search(ctx context.Context, board othello.Board, c othello.Color, moves []othello.ValidMove) (Result, bool) {
	if len(moves) == 0 {
		return Result{}, false
	}

	s.begin(ctx)

	if len(moves) == 1 {
		return Result{Move: moves[0], Completed: true}, true
	}

	ordered := orderMoves(board, c, moves, s.cfg.Profile.Evaluate)
	maxDepth := s.MaxDepth(board)

	var result Result
	if s.cfg.Iterative {
		result = s.deepen(board, c, ordered, maxDepth)
	} else {
		result, _ = s.searchRoot(board, c, ordered, maxDepth)
	}

	result.Nodes = s.nodes
	s.logStats(result)

	return result, true
}

// ScoreMove returns the exact score of move for c at depth, searched with a full window.
func (s *Searcher) ScoreMove(ctx context.Context, board othello.Board, c othello.Color, move othello.ValidMove, depth int) int {
	s.begin(ctx)
	return -s.negamax(board.Play(move, c), c.Opponent(), depth-1, -inf, inf)
}

// Nodes returns the number of nodes visited by the last search.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

func (s *Searcher) begin(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	s.ctx = ctx
	s.nodes = 0
	s.stopped = false
	s.start = s.clock.Now()
	s.deadline = s.start.Add(s.cfg.TimeBudget)
	s.timed = s.cfg.TimeBudget > 0

	if !s.fixedDeadline.IsZero() && (!s.timed || s.fixedDeadline.Before(s.deadline)) {
		s.deadline = s.fixedDeadline
		s.timed = true
	}
}

// deepen runs iterations of increasing depth. An interrupted iteration is only used if no
// iteration completed before it.
func (s *Searcher) deepen(board othello.Board, c othello.Color, ordered []othello.ValidMove, maxDepth int) Result {
	best := Result{Move: ordered[0]}

	for depth := min(2, maxDepth); ; depth = min(depth+s.cfg.DepthStep, maxDepth) {
		if s.expired() {
			break
		}

		result, updated := s.searchRoot(board, c, ordered, depth)
		if result.Completed || (!best.Completed && updated) {
			best = result
		}

		if !result.Completed || depth >= maxDepth {
			break
		}

		if s.cfg.TimeBudget > 0 && s.clock.Now().Sub(s.start) > s.cfg.TimeBudget/2 {
			break
		}
	}

	return best
}

// searchRoot searches all root moves at depth. The returned bool reports if any move was fully
// searched.
func (s *Searcher) searchRoot(board othello.Board, c othello.Color, ordered []othello.ValidMove, depth int) (Result, bool) {
	result := Result{Move: ordered[0], Depth: depth, Score: -inf}
	alpha := -inf
	updated := false

	for _, move := range ordered {
		if s.expired() {
			return result, updated
		}

		score := -s.negamax(board.Play(move, c), c.Opponent(), depth-1, -inf, -alpha)

		// The score of an interrupted subtree is unreliable.
		if s.stopped {
			return result, updated
		}

		if score > alpha {
			alpha = score
			result.Move = move
			result.Score = score
			updated = true
		}
	}

	result.Completed = true
	return result, updated
}

// negamax returns the score of board for c, the player to move.
func (s *Searcher) negamax(board othello.Board, c othello.Color, depth, alpha, beta int) int {
	s.nodes++

	if s.expired() {
		return s.cfg.Profile.Evaluate(board, c)
	}

	if !board.HasMoves(c) {
		if !board.HasMoves(c.Opponent()) {
			return board.DiscDifference(c) * TerminalScale
		}

		// Passing does not use up depth.
		return -s.negamax(board, c.Opponent(), depth, -beta, -alpha)
	}

	if depth <= 0 {
		return s.cfg.Profile.Evaluate(board, c)
	}

	moves := othello.ValidMoves(board, c)
	if s.cfg.OrderInterior && len(moves) > orderThreshold {
		moves = orderMoves(board, c, moves, evaluation.Quick)
	}

	for _, move := range moves {
		score := -s.negamax(board.Play(move, c), c.Opponent(), depth-1, -beta, -alpha)

		if score > alpha {
			alpha = score
		}

		if alpha >= beta {
			break
		}
	}

	return alpha
}

// expired checks the context and the time budget.
func (s *Searcher) expired() bool {
	if s.stopped {
		return true
	}

	if s.nodes%ctxCheckInterval == 0 && s.ctx.Err() != nil {
		s.stopped = true
		return true
	}

	if s.timed && s.clock.Now().After(s.deadline) {
		s.stopped = true
	}

	return s.stopped
}

type scoredMove struct {
	move  othello.ValidMove
	score int
}

// orderMoves sorts moves by the score of the resulting board for c, best first. Ties keep their
// original order.
func orderMoves(board othello.Board, c othello.Color, moves []othello.ValidMove, score func(othello.Board, othello.Color) int) []othello.ValidMove {
	scored := make([]scoredMove, len(moves))
	for i, move := range moves {
		scored[i] = scoredMove{move: move, score: score(board.Play(move, c), c)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	ordered := make([]othello.ValidMove, len(scored))
	for i := range scored {
		ordered[i] = scored[i].move
	}

	return ordered
}

func (s *Searcher) logStats(result Result) {
	elapsedSeconds := s.clock.Now().Sub(s.start).Seconds()

	nodesPerSecond := int64(0)
	if elapsedSeconds > 0.000001 {
		nodesPerSecond = int64(float64(s.nodes) / elapsedSeconds)
	}

	slog.Debug("Search finished",
		"move", result.Move.String(),
		"score", result.Score,
		"depth", result.Depth,
		"completed", result.Completed,
		"nodes", s.nodes,
		"seconds", elapsedSeconds,
		"nodes_per_second", nodesPerSecond,
	)
}
