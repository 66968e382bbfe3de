package chess

import (
	"sort"

	"golang.org/x/exp/maps"
)

type PlayerID int

// Player owns a set of live piece handles, a facing direction (+1 or -1) and
// the score accumulated from captures.
type Player struct {
	id        PlayerID
	name      string
	direction int
	score     int
	king      PieceID
	pieces    map[PieceID]struct{}
}

func newPlayer(id PlayerID, name string, direction int) *Player {
	return &Player{
		id:        id,
		name:      name,
		direction: direction,
		pieces:    make(map[PieceID]struct{}),
	}
}

func (p *Player) ID() PlayerID    { return p.id }
func (p *Player) Name() string    { return p.name }
func (p *Player) Direction() int  { return p.direction }
func (p *Player) Score() int      { return p.score }
func (p *Player) King() PieceID   { return p.king }
func (p *Player) String() string  { return p.name }
func (p *Player) PieceCount() int { return len(p.pieces) }

func (p *Player) Has(id PieceID) bool {
	_, ok := p.pieces[id]
	return ok
}

// Pieces lists the live piece handles in ascending order.
func (p *Player) Pieces() []PieceID {
	ids := maps.Keys(p.pieces)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// homeRank is the back rank a player starts from, the far edge is the other one.
func (p *Player) homeRank() int {
	if p.direction > 0 {
		return 0
	}
	return Size - 1
}

func (p *Player) farRank() int {
	return Size - 1 - p.homeRank()
}
