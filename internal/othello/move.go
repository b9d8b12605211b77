package othello

import (
	"fmt"
	"strings"
)

// Move is a square on the board, both coordinates 0-indexed.
type Move struct {
	Row int
	Col int
}

// PassMove is recorded in a Game when a player has no legal move.
var PassMove = Move{Row: -1, Col: -1}

// NewMove creates a move after checking the coordinates.
func NewMove(row, col int) (Move, error) {
	if !IsOnBoard(row, col) {
		return Move{}, fmt.Errorf("%w: row=%d col=%d", ErrInvalidCoordinate, row, col)
	}
	return Move{Row: row, Col: col}, nil
}

// MoveFromIndex creates the move for a square index.
func MoveFromIndex(index int) Move {
	row, col := IndexToPos(index)
	return Move{Row: row, Col: col}
}

// Index returns the square index of the move.
func (m Move) Index() int {
	return PosToIndex(m.Row, m.Col)
}

// IsPass checks if the move is a pass.
func (m Move) IsPass() bool {
	return m == PassMove
}

// IsValid checks if the move is on the board.
func (m Move) IsValid() bool {
	return IsOnBoard(m.Row, m.Col)
}

// String returns the field notation of the move, for example "d3". Passes are "--".
func (m Move) String() string {
	if m.IsPass() {
		return "--"
	}
	if !m.IsValid() {
		return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+m.Col, m.Row+1)
}

// ParseMove converts a field notation (e.g. "a1", "h8") to a move.
// PassMove is returned if the field is "--", "ps", or "pa".
func ParseMove(field string) (Move, error) {
	if len(field) != 2 {
		return Move{}, fmt.Errorf("%w: invalid field length: %q", ErrInvalidCoordinate, field)
	}

	field = strings.ToLower(field)

	if field == "--" || field == "ps" || field == "pa" {
		return PassMove, nil
	}

	if !('a' <= field[0] && field[0] <= 'h' && '1' <= field[1] && field[1] <= '8') {
		return Move{}, fmt.Errorf("%w: invalid field: %q", ErrInvalidCoordinate, field)
	}

	return Move{Row: int(field[1] - '1'), Col: int(field[0] - 'a')}, nil
}

// ParseMoves parses a sequence of fields, either concatenated ("d3c5f6") or separated by
// whitespace ("d3 c5 f6").
func ParseMoves(s string) ([]Move, error) {
	s = strings.Join(strings.Fields(s), "")

	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: move sequence has odd length %d", ErrInvalidCoordinate, len(s))
	}

	moves := make([]Move, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		move, err := ParseMove(s[i : i+2])
		if err != nil {
			return nil, fmt.Errorf("failed to parse move %d: %w", i/2+1, err)
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves returns the concatenated field notation of moves.
func FormatMoves(moves []Move) string {
	var sb strings.Builder
	for _, move := range moves {
		sb.WriteString(move.String())
	}
	return sb.String()
}

// ValidMove is a legal move together with the squares it flips. It is only meaningful for the
// board and player that produced it.
type ValidMove struct {
	Move

	// Flips holds the indices of the discs that change color, in direction order.
	Flips []int

	// Openness is only filled in by ValidMovesWithOpenness.
	Openness int
}
