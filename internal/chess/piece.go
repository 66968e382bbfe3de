package chess

import (
	"fmt"
	"math"
	"strings"
)

type Kind int

const (
	Pawn Kind = iota + 1
	Knight
	Bishop
	Rook
	Queen
	King
)

// KingValue keeps the King out of reach of any capture-value comparison while
// leaving headroom so sums of scores cannot overflow.
const KingValue = math.MaxInt32 - 1000

var kindNames = map[Kind]string{
	Pawn:   "pawn",
	Knight: "knight",
	Bishop: "bishop",
	Rook:   "rook",
	Queen:  "queen",
	King:   "king",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

var (
	orthogonal  = []Offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal    = []Offset{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	allDirs     = []Offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	knightLeaps = []Offset{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	pawnAttacks = []Offset{{1, 1}, {-1, 1}}
	pawnAdvance = Offset{0, 1}
)

// Leaps are offsets evaluated once each, before direction scaling.
func (k Kind) Leaps() []Offset {
	switch k {
	case Knight:
		return knightLeaps
	case King:
		return allDirs
	}
	return nil
}

// Slides are unit directions walked until blocked, before direction scaling.
func (k Kind) Slides() []Offset {
	switch k {
	case Bishop:
		return diagonal
	case Rook:
		return orthogonal
	case Queen:
		return allDirs
	}
	return nil
}

func (k Kind) Value() int {
	switch k {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	case King:
		return KingValue
	}
	return 0
}

type PieceID int

// NoPiece is the zero handle; the arena never hands it out.
const NoPiece PieceID = 0

// Piece is a snapshot of one arena entry. OnBoard turns false once the piece
// is captured or replaced by promotion.
type Piece struct {
	ID       PieceID  `json:"id"`
	Kind     Kind     `json:"kind"`
	Owner    PlayerID `json:"owner"`
	Pos      Square   `json:"position"`
	HasMoved bool     `json:"hasMoved"`
	OnBoard  bool     `json:"onBoard"`
}

func (p Piece) Value() int {
	return p.Kind.Value()
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, text)
	}
	*k = parsed
	return nil
}
