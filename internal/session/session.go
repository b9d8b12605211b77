package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lk16/flippy/reversi/internal/ai"
	"github.com/lk16/flippy/reversi/internal/othello"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrNotYourTurn = errors.New("not your turn")
)

// Option configures a Session.
type Option func(*Session)

// WithSelector replaces the move selector of the computer player.
func WithSelector(selector *ai.Selector) Option {
	return func(s *Session) {
		s.selector = selector
	}
}

// WithQualityEvaluator replaces the evaluator that grades moves when coaching.
func WithQualityEvaluator(evaluator *ai.QualityEvaluator) Option {
	return func(s *Session) {
		s.evaluator = evaluator
	}
}

// WithStart starts the game from a custom board with turn to move, also after a Reset.
func WithStart(board othello.Board, turn othello.Color) Option {
	return func(s *Session) {
		s.start = board
		s.startTurn = turn
	}
}

// Session is one game as seen by the player: the game itself, the settings and the last coaching
// feedback. A Session is not safe for concurrent use.
type Session struct {
	settings  GameSettings
	start     othello.Board
	startTurn othello.Color
	game      *othello.Game
	selector  *ai.Selector
	evaluator *ai.QualityEvaluator

	evaluation *ai.MoveEvaluation
}

// New starts a game with the given settings.
func New(settings GameSettings, opts ...Option) (*Session, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	s := &Session{
		settings:  settings,
		start:     othello.NewBoardStart(),
		startTurn: othello.Black,
		selector:  ai.NewSelector(),
		evaluator: ai.NewQualityEvaluator(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.Reset()
	return s, nil
}

// Reset starts a new game with the same settings.
func (s *Session) Reset() {
	s.game = othello.NewGameWithStart(s.start, s.startTurn)
	s.evaluation = nil
}

func (s *Session) Settings() GameSettings {
	return s.settings
}

// ToggleOpenness flips the ShowOpenness setting.
func (s *Session) ToggleOpenness() {
	s.settings.ShowOpenness = !s.settings.ShowOpenness
}

func (s *Session) Board() othello.Board {
	return s.game.Board()
}

// Turn returns the player to move. After the game is over it is meaningless.
func (s *Session) Turn() othello.Color {
	return s.game.Turn()
}

// Moves returns the moves played so far, including passes.
func (s *Session) Moves() []othello.Move {
	return s.game.Moves()
}

// LastMove returns the last move that was not a pass.
func (s *Session) LastMove() (othello.Move, bool) {
	return s.game.LastMove()
}

// Passed checks if the opponent of the player to move just had to pass.
func (s *Session) Passed() bool {
	return s.game.Passed() && !s.game.IsOver()
}

// ValidMoves returns the moves of the player to move, with openness if ShowOpenness is set.
func (s *Session) ValidMoves() []othello.ValidMove {
	if s.game.IsOver() {
		return nil
	}

	if s.settings.ShowOpenness {
		return othello.ValidMovesWithOpenness(s.Board(), s.Turn())
	}
	return othello.ValidMoves(s.Board(), s.Turn())
}

// IsHumanTurn checks if a human plays the next move.
func (s *Session) IsHumanTurn() bool {
	return s.settings.Mode == Local || s.Turn() == s.settings.HumanColor
}

func (s *Session) IsOver() bool {
	return s.game.IsOver()
}

// Score returns the number of black and white discs.
func (s *Session) Score() (black, white int) {
	return s.game.Score()
}

// Winner returns the color with the most discs, or othello.Empty for a draw.
func (s *Session) Winner() othello.Color {
	return s.game.Winner()
}

// Evaluation returns the feedback on the last move of the human, or nil.
func (s *Session) Evaluation() *ai.MoveEvaluation {
	return s.evaluation
}

func (s *Session) ClearEvaluation() {
	s.evaluation = nil
}

// PlayHuman plays move for the player to move. When coaching in VsCPU mode the move is graded
// first and the feedback is returned, otherwise the returned feedback is nil.
func (s *Session) PlayHuman(ctx context.Context, move othello.Move) (*ai.MoveEvaluation, error) {
	if s.game.IsOver() {
		return nil, ErrGameOver
	}

	if !s.IsHumanTurn() {
		return nil, fmt.Errorf("%w: %s is played by the computer", ErrNotYourTurn, s.Turn())
	}

	var evaluation *ai.MoveEvaluation

	if s.settings.Coaching && s.settings.Mode == VsCPU {
		var err error
		evaluation, err = s.evaluator.Evaluate(ctx, s.Board(), s.Turn(), move)
		if err != nil {
			return nil, fmt.Errorf("failed to grade move: %w", err)
		}
	}

	if err := s.game.PushMove(move); err != nil {
		return nil, fmt.Errorf("failed to play move: %w", err)
	}

	s.evaluation = evaluation
	return evaluation, nil
}

// PlayCPU lets the computer play a move at the configured level. It returns false when the game
// is over.
func (s *Session) PlayCPU(ctx context.Context) (othello.ValidMove, bool, error) {
	if s.settings.Mode == VsCPU && s.Turn() == s.settings.HumanColor && !s.game.IsOver() {
		return othello.ValidMove{}, false, fmt.Errorf("%w: %s is played by a human", ErrNotYourTurn, s.Turn())
	}

	return s.PlayLevel(ctx, s.settings.Level)
}

// PlayLevel lets the computer play a move for the player to move at level, regardless of the mode.
// It returns false when the game is over. The last feedback is kept.
func (s *Session) PlayLevel(ctx context.Context, level ai.Level) (othello.ValidMove, bool, error) {
	turn := s.Turn()

	move, ok := s.selector.ChooseMove(ctx, s.Board(), turn, level)
	if !ok {
		return othello.ValidMove{}, false, nil
	}

	if err := s.game.PushMove(move.Move); err != nil {
		return othello.ValidMove{}, false, fmt.Errorf("failed to play computer move: %w", err)
	}

	slog.Debug("Computer played", "level", level.String(), "color", turn.String(), "move", move.String())

	return move, true, nil
}

func (s *Session) undoSteps() int {
	if s.settings.Mode == VsCPU {
		return 2
	}
	return 1
}

// CanUndo checks if Undo would take back a full turn.
func (s *Session) CanUndo() bool {
	return !s.game.IsOver() && s.game.Plies() >= s.undoSteps()
}

// Undo takes back the last move in Local mode, or the last two moves in VsCPU mode. It returns
// false if there was nothing to undo.
func (s *Session) Undo() bool {
	steps := min(s.undoSteps(), s.game.Plies())
	if steps == 0 {
		return false
	}

	for range steps {
		s.game.PopMove()
	}

	s.evaluation = nil
	return true
}
