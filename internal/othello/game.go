package othello

import (
	"fmt"
)

// Game represents an Othello game, either complete or in progress.
type Game struct {
	// moves is the list of moves in the game. Pass moves are added automatically.
	moves []Move

	// start is the board before any move is played. This allows for custom start positions.
	start Board

	// startTurn is the player to move on start.
	startTurn Color
}

// NewGameWithStart creates a new empty game with a custom start board.
func NewGameWithStart(start Board, turn Color) *Game {
	game := &Game{
		moves:     make([]Move, 0),
		start:     start,
		startTurn: turn,
	}

	// A start board where the first player cannot move begins with a pass.
	if !start.HasMoves(turn) && start.HasMoves(turn.Opponent()) {
		game.moves = append(game.moves, PassMove)
	}

	return game
}

// NewGame creates a new empty game.
func NewGame() *Game {
	return NewGameWithStart(NewBoardStart(), Black)
}

// NewGameFromMoves creates a new game from a list of moves. Pass moves in the list are skipped,
// since passes are inserted automatically.
func NewGameFromMoves(moves []Move) (*Game, error) {
	game := NewGame()

	for i, move := range moves {
		if move.IsPass() {
			continue
		}
		if err := game.PushMove(move); err != nil {
			return nil, fmt.Errorf("failed to push move %d: %w", i+1, err)
		}
	}

	return game, nil
}

// Board returns the last board in the game.
func (g *Game) Board() Board {
	board, _ := g.replay(len(g.moves))
	return board
}

// Turn returns the player to move on the last board.
func (g *Game) Turn() Color {
	_, turn := g.replay(len(g.moves))
	return turn
}

// replay returns the board and player to move after doing the moves up to moveIndex.
func (g *Game) replay(moveIndex int) (Board, Color) {
	board := g.start
	turn := g.startTurn

	for _, move := range g.moves[:moveIndex] {
		if !move.IsPass() {
			// Moves were validated when they were pushed.
			board, _ = ApplyMove(board, move, turn)
		}
		turn = turn.Opponent()
	}

	return board, turn
}

// Moves returns a copy of the move list, including passes.
func (g *Game) Moves() []Move {
	moves := make([]Move, len(g.moves))
	copy(moves, g.moves)
	return moves
}

// Len returns the number of moves played, including passes.
func (g *Game) Len() int {
	return len(g.moves)
}

// Plies returns the number of moves played, not counting passes.
func (g *Game) Plies() int {
	plies := 0
	for _, move := range g.moves {
		if !move.IsPass() {
			plies++
		}
	}
	return plies
}

// LastMove returns the last move that was not a pass.
func (g *Game) LastMove() (Move, bool) {
	for i := len(g.moves) - 1; i >= 0; i-- {
		if !g.moves[i].IsPass() {
			return g.moves[i], true
		}
	}
	return PassMove, false
}

// Passed checks if the player to move got the turn because the opponent had to pass.
func (g *Game) Passed() bool {
	return len(g.moves) > 0 && g.moves[len(g.moves)-1].IsPass()
}

// PushMove plays move for the player to move. If the next player has no moves but the other player
// does, a pass is appended.
func (g *Game) PushMove(move Move) error {
	board, turn := g.replay(len(g.moves))

	next, err := ApplyMove(board, move, turn)
	if err != nil {
		return err
	}

	g.moves = append(g.moves, move)

	// Add pass move if the next player doesn't have moves but the player who just moved does.
	if !next.HasMoves(turn.Opponent()) && next.HasMoves(turn) {
		g.moves = append(g.moves, PassMove)
	}

	return nil
}

// PopMove undoes the last move, together with the pass that followed it.
func (g *Game) PopMove() {
	end := len(g.moves)

	// Prevent having a last board without moves.
	if end > 0 && g.moves[end-1].IsPass() {
		end--
	}

	// Only the pass the start board begins with is left.
	if end == 0 {
		return
	}

	g.moves = g.moves[:end-1]
}

// IsOver checks if neither player can move.
func (g *Game) IsOver() bool {
	return IsGameOver(g.Board())
}

// Score returns the number of black and white discs on the last board.
func (g *Game) Score() (black, white int) {
	black, white, _ = g.Board().Counts()
	return black, white
}

// Winner returns the color with the most discs, or Empty for a draw.
func (g *Game) Winner() Color {
	black, white := g.Score()
	switch {
	case black > white:
		return Black
	case white > black:
		return White
	default:
		return Empty
	}
}

// String returns the move list in field notation.
func (g *Game) String() string {
	return FormatMoves(g.moves)
}
