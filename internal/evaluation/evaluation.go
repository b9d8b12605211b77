package evaluation

import (
	"math/bits"

	"github.com/lk16/flippy/reversi/internal/othello"
)

// ExactScale multiplies the disc differential of a board without empty squares.
const ExactScale = 1000

// positionWeights scores every square for the player owning it.
var positionWeights = [othello.Squares]int{
	100, -20, 10, 5, 5, 10, -20, 100,
	-20, -50, -2, -2, -2, -2, -50, -20,
	10, -2, 1, 1, 1, 1, -2, 10,
	5, -2, 1, 0, 0, 1, -2, 5,
	5, -2, 1, 0, 0, 1, -2, 5,
	10, -2, 1, 1, 1, 1, -2, 10,
	-20, -50, -2, -2, -2, -2, -50, -20,
	100, -20, 10, 5, 5, 10, -20, 100,
}

// Profile holds the weights of the evaluation terms.
type Profile struct {
	Name string

	// PositionalPercent scales the positional score, 100 means unscaled.
	PositionalPercent int

	// Mobility multiplies the legal move count difference.
	Mobility int

	// Stability multiplies the stable disc difference. It is only used when the board holds more
	// than StabilityMinDiscs discs.
	Stability         int
	StabilityMinDiscs int

	// Frontier multiplies the opponent frontier discs minus own frontier discs. Zero disables it.
	Frontier int

	// Parity is added for an odd number of empty squares and subtracted for an even one, once
	// the number of empty squares is at most ParityMaxEmpties. Zero disables it.
	Parity           int
	ParityMaxEmpties int
}

var (
	// Standard is used by all search tiers below expert.
	Standard = Profile{
		Name:              "standard",
		PositionalPercent: 100,
		Mobility:          3,
		Stability:         15,
		StabilityMinDiscs: 20,
	}

	// Enhanced is used by the expert tier.
	Enhanced = Profile{
		Name:              "enhanced",
		PositionalPercent: 150,
		Mobility:          5,
		Stability:         25,
		StabilityMinDiscs: 16,
		Frontier:          3,
		Parity:            5,
		ParityMaxEmpties:  12,
	}
)

// PositionWeight returns the weight of a square.
func PositionWeight(row, col int) int {
	return positionWeights[othello.PosToIndex(row, col)]
}

// Positional returns the sum of the weights of the squares of c minus those of the opponent.
func Positional(board othello.Board, c othello.Color) int {
	score := 0
	own := board.Bitboard(c)
	opp := board.Bitboard(c.Opponent())

	for own != 0 {
		score += positionWeights[bits.TrailingZeros64(own)]
		own &= own - 1
	}

	for opp != 0 {
		score -= positionWeights[bits.TrailingZeros64(opp)]
		opp &= opp - 1
	}

	return score
}

// Mobility returns the number of legal moves of c minus those of the opponent.
func Mobility(board othello.Board, c othello.Color) int {
	own := board.MoveCount(c)
	opp := board.MoveCount(c.Opponent())

	if own+opp == 0 {
		return 0
	}

	return own - opp
}

// corners lists each corner with the row and column steps pointing into the board.
var corners = [4][4]int{
	{0, 0, 1, 1},
	{0, 7, 1, -1},
	{7, 0, -1, 1},
	{7, 7, -1, -1},
}

// StableCount returns a lower bound of the number of discs of c that can never be flipped. Starting
// from each owned corner, it grows along both edges and then fills the rectangle, admitting a
// square only if its neighbours towards the corner along both axes are stable.
func StableCount(board othello.Board, c othello.Color) int {
	own := board.Bitboard(c)
	var stable uint64

	isOwn := func(row, col int) bool {
		return own&(uint64(1)<<othello.PosToIndex(row, col)) != 0
	}
	isStable := func(row, col int) bool {
		return stable&(uint64(1)<<othello.PosToIndex(row, col)) != 0
	}
	mark := func(row, col int) {
		stable |= uint64(1) << othello.PosToIndex(row, col)
	}

	for _, corner := range corners {
		startRow, startCol, dr, dc := corner[0], corner[1], corner[2], corner[3]

		if !isOwn(startRow, startCol) {
			continue
		}
		mark(startRow, startCol)

		for col := startCol + dc; col >= 0 && col < othello.Size && isOwn(startRow, col); col += dc {
			mark(startRow, col)
		}

		for row := startRow + dr; row >= 0 && row < othello.Size && isOwn(row, startCol); row += dr {
			mark(row, startCol)
		}

		for row := startRow + dr; row >= 0 && row < othello.Size; row += dr {
			if !isStable(row, startCol) {
				break
			}

			for col := startCol + dc; col >= 0 && col < othello.Size; col += dc {
				if !isOwn(row, col) || !isStable(row, col-dc) || !isStable(row-dr, col) {
					break
				}
				mark(row, col)
			}
		}
	}

	return bits.OnesCount64(stable)
}

// frontierMask returns all squares that have at least one empty neighbour.
func frontierMask(board othello.Board) uint64 {
	empty := board.Bitboard(othello.Empty)

	const notA = 0xFEFEFEFEFEFEFEFE // clears column a
	const notH = 0x7F7F7F7F7F7F7F7F // clears column h

	west := (empty >> 1) & notH
	east := (empty << 1) & notA

	mask := west | east
	mask |= empty<<8 | empty>>8
	mask |= west<<8 | west>>8
	mask |= east<<8 | east>>8

	return mask
}

// Frontier returns the number of frontier discs of c and of its opponent.
func Frontier(board othello.Board, c othello.Color) (own, opp int) {
	mask := frontierMask(board)
	own = bits.OnesCount64(board.Bitboard(c) & mask)
	opp = bits.OnesCount64(board.Bitboard(c.Opponent()) & mask)
	return own, opp
}

// Evaluate scores board from the perspective of c. A board without empty squares is scored by its
// disc differential times ExactScale.
func (p Profile) Evaluate(board othello.Board, c othello.Color) int {
	black, white, empties := board.Counts()

	if empties == 0 {
		return board.DiscDifference(c) * ExactScale
	}

	score := Positional(board, c) * p.PositionalPercent / 100
	score += Mobility(board, c) * p.Mobility

	if black+white > p.StabilityMinDiscs {
		score += (StableCount(board, c) - StableCount(board, c.Opponent())) * p.Stability
	}

	if p.Frontier != 0 {
		own, opp := Frontier(board, c)
		score += (opp - own) * p.Frontier
	}

	if p.Parity != 0 && empties <= p.ParityMaxEmpties {
		if empties%2 == 0 {
			score -= p.Parity
		} else {
			score += p.Parity
		}
	}

	return score
}

// Evaluate scores board from the perspective of c with the Standard profile.
func Evaluate(board othello.Board, c othello.Color) int {
	return Standard.Evaluate(board, c)
}

// Quick is a cheap score without stability, used to order moves inside the search tree.
func Quick(board othello.Board, c othello.Color) int {
	return Positional(board, c) + Mobility(board, c)*3
}
