package othello

import (
	"fmt"
	"math/bits"
)

// Directions lists the 8 compass directions as (row, col) deltas.
var Directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Moves returns a bitset with all valid moves for c.
// This code is adapted from Edax
func (b Board) Moves(c Color) uint64 {
	player := b.Bitboard(c)
	opponent := b.Bitboard(c.Opponent())

	mask := opponent & 0x7E7E7E7E7E7E7E7E

	flipL := mask & (player << 1)
	flipL |= mask & (flipL << 1)
	maskL := mask & (mask << 1)
	flipL |= maskL & (flipL << (2 * 1))
	flipL |= maskL & (flipL << (2 * 1))
	flipR := mask & (player >> 1)
	flipR |= mask & (flipR >> 1)
	maskR := mask & (mask >> 1)
	flipR |= maskR & (flipR >> (2 * 1))
	flipR |= maskR & (flipR >> (2 * 1))
	movesSet := (flipL << 1) | (flipR >> 1)

	flipL = mask & (player << 7)
	flipL |= mask & (flipL << 7)
	maskL = mask & (mask << 7)
	flipL |= maskL & (flipL << (2 * 7))
	flipL |= maskL & (flipL << (2 * 7))
	flipR = mask & (player >> 7)
	flipR |= mask & (flipR >> 7)
	maskR = mask & (mask >> 7)
	flipR |= maskR & (flipR >> (2 * 7))
	flipR |= maskR & (flipR >> (2 * 7))
	movesSet |= (flipL << 7) | (flipR >> 7)

	flipL = mask & (player << 9)
	flipL |= mask & (flipL << 9)
	maskL = mask & (mask << 9)
	flipL |= maskL & (flipL << (2 * 9))
	flipL |= maskL & (flipL << (2 * 9))
	flipR = mask & (player >> 9)
	flipR |= mask & (flipR >> 9)
	maskR = mask & (mask >> 9)
	flipR |= maskR & (flipR >> (2 * 9))
	flipR |= maskR & (flipR >> (2 * 9))
	movesSet |= (flipL << 9) | (flipR >> 9)

	flipL = opponent & (player << 8)
	flipL |= opponent & (flipL << 8)
	maskL = opponent & (opponent << 8)
	flipL |= maskL & (flipL << (2 * 8))
	flipL |= maskL & (flipL << (2 * 8))
	flipR = opponent & (player >> 8)
	flipR |= opponent & (flipR >> 8)
	maskR = opponent & (opponent >> 8)
	flipR |= maskR & (flipR >> (2 * 8))
	flipR |= maskR & (flipR >> (2 * 8))
	movesSet |= (flipL << 8) | (flipR >> 8)

	movesSet &^= player | opponent
	return movesSet
}

// HasMoves checks if c has at least one legal move.
func (b Board) HasMoves(c Color) bool {
	return b.Moves(c) != 0
}

// MoveCount returns the number of legal moves for c.
func (b Board) MoveCount(c Color) int {
	return bits.OnesCount64(b.Moves(c))
}

// FindFlips returns the indices of the discs that flip when c plays at row, col. The result is
// empty if the square is occupied or the move brackets nothing, so an empty result means the move
// is illegal.
func FindFlips(b Board, row, col int, c Color) []int {
	if !IsOnBoard(row, col) || b.At(row, col) != Empty {
		return nil
	}

	opp := c.Opponent()
	var flips []int

	for _, dir := range Directions {
		dr, dc := dir[0], dir[1]
		r, cc := row+dr, col+dc
		walked := 0

		for IsOnBoard(r, cc) && b.At(r, cc) == opp {
			walked++
			r += dr
			cc += dc
		}

		if walked == 0 || !IsOnBoard(r, cc) || b.At(r, cc) != c {
			continue
		}

		for dist := 1; dist <= walked; dist++ {
			flips = append(flips, PosToIndex(row+dist*dr, col+dist*dc))
		}
	}

	return flips
}

// ValidMoves returns all legal moves for c in row-major order.
func ValidMoves(b Board, c Color) []ValidMove {
	candidates := b.Moves(c)
	moves := make([]ValidMove, 0, bits.OnesCount64(candidates))

	for candidates != 0 {
		index := bits.TrailingZeros64(candidates)
		candidates &= candidates - 1

		row, col := IndexToPos(index)
		flips := FindFlips(b, row, col, c)
		if len(flips) == 0 {
			continue
		}

		moves = append(moves, ValidMove{
			Move:  Move{Row: row, Col: col},
			Flips: flips,
		})
	}

	return moves
}

// ValidMovesWithOpenness works like ValidMoves, but also computes the openness of every move.
func ValidMovesWithOpenness(b Board, c Color) []ValidMove {
	moves := ValidMoves(b, c)
	for i := range moves {
		moves[i].Openness = Openness(b, moves[i])
	}
	return moves
}

// Play returns the board after c plays vm. The move is not checked: vm must come from ValidMoves
// for this board and player. The receiver is left untouched.
func (b Board) Play(vm ValidMove, c Color) Board {
	mask := uint64(1) << vm.Index()
	for _, index := range vm.Flips {
		mask |= uint64(1) << index
	}

	switch c {
	case Black:
		b.black |= mask
		b.white &^= mask
	case White:
		b.white |= mask
		b.black &^= mask
	}

	return b
}

// ApplyMove returns the board after c plays move, rejecting moves that are not legal.
func ApplyMove(b Board, move Move, c Color) (Board, error) {
	if !move.IsValid() {
		return Board{}, fmt.Errorf("%w: %s", ErrInvalidCoordinate, move)
	}

	flips := FindFlips(b, move.Row, move.Col, c)
	if len(flips) == 0 {
		return Board{}, fmt.Errorf("%w: %s for %s", ErrIllegalMove, move, c)
	}

	return b.Play(ValidMove{Move: move, Flips: flips}, c), nil
}

// Openness sums, over all discs flipped by vm, the number of empty neighbours on the board before
// the move. The square vm is played on is not counted.
func Openness(b Board, vm ValidMove) int {
	openness := 0

	for _, index := range vm.Flips {
		row, col := IndexToPos(index)

		for _, dir := range Directions {
			nr, nc := row+dir[0], col+dir[1]
			if !IsOnBoard(nr, nc) || b.At(nr, nc) != Empty {
				continue
			}
			if nr == vm.Row && nc == vm.Col {
				continue
			}
			openness++
		}
	}

	return openness
}

// CountAdjacentEmpty returns the number of empty neighbours of a square.
func CountAdjacentEmpty(b Board, row, col int) int {
	count := 0
	for _, dir := range Directions {
		nr, nc := row+dir[0], col+dir[1]
		if IsOnBoard(nr, nc) && b.At(nr, nc) == Empty {
			count++
		}
	}
	return count
}

// IsGameOver checks if neither player has a legal move.
func IsGameOver(b Board) bool {
	return !b.HasMoves(Black) && !b.HasMoves(White)
}
