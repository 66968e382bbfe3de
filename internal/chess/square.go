package chess

import (
	"fmt"
	"math/bits"
)

// Size is the number of files and ranks on the board.
const Size = 8

// Square is a 0-indexed (file, rank) coordinate. It is a value type and may
// point off the board; Valid reports whether it does not.
type Square struct {
	File int `json:"x"`
	Rank int `json:"y"`
}

// Offset is a displacement between squares, used for leaps and sliding directions.
type Offset struct {
	DX int
	DY int
}

func (o Offset) neg() Offset {
	return Offset{DX: -o.DX, DY: -o.DY}
}

func (s Square) Valid() bool {
	return s.File >= 0 && s.File < Size && s.Rank >= 0 && s.Rank < Size
}

func (s Square) Shift(o Offset) Square {
	return Square{File: s.File + o.DX, Rank: s.Rank + o.DY}
}

func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.File, s.Rank)
	}
	return fmt.Sprintf("%c%d", 'a'+s.File, s.Rank+1)
}

func (s Square) index() int {
	return s.Rank*Size + s.File
}

func squareAt(i int) Square {
	return Square{File: i % Size, Rank: i / Size}
}

// SquareSet is a set of on-board squares packed into a 64-bit mask.
type SquareSet uint64

func SetOf(squares ...Square) SquareSet {
	var s SquareSet
	for _, sq := range squares {
		s = s.Add(sq)
	}
	return s
}

func (s SquareSet) Has(sq Square) bool {
	if !sq.Valid() {
		return false
	}
	return s&(1<<uint(sq.index())) != 0
}

// Add returns s with sq included. Off-board squares are ignored.
func (s SquareSet) Add(sq Square) SquareSet {
	if !sq.Valid() {
		return s
	}
	return s | 1<<uint(sq.index())
}

func (s SquareSet) Remove(sq Square) SquareSet {
	if !sq.Valid() {
		return s
	}
	return s &^ (1 << uint(sq.index()))
}

func (s SquareSet) Union(o SquareSet) SquareSet     { return s | o }
func (s SquareSet) Intersect(o SquareSet) SquareSet { return s & o }
func (s SquareSet) Without(o SquareSet) SquareSet   { return s &^ o }
func (s SquareSet) Empty() bool                     { return s == 0 }
func (s SquareSet) Len() int                        { return bits.OnesCount64(uint64(s)) }

// Squares lists the members ordered by rank, then file.
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Len())
	for rest := uint64(s); rest != 0; rest &= rest - 1 {
		out = append(out, squareAt(bits.TrailingZeros64(rest)))
	}
	return out
}
