package chess

// relative scales the forward component of o by the owner's facing direction,
// so one rule set serves both sides.
func (m *Match) relative(p *Piece, o Offset) Offset {
	return Offset{DX: o.DX, DY: o.DY * m.players[p.Owner].direction}
}

// Threatens returns every square the piece could capture on if an enemy
// stood there, whether or not one does.
func (m *Match) Threatens(id PieceID) SquareSet {
	p := m.piece(id)
	if p == nil || !p.OnBoard {
		return 0
	}
	return m.threatensOn(&m.board, p)
}

func (m *Match) threatensOn(b *Board, p *Piece) SquareSet {
	var out SquareSet
	if p.Kind == Pawn {
		for _, o := range pawnAttacks {
			out = out.Add(p.Pos.Shift(m.relative(p, o)))
		}
		return out
	}
	for _, o := range p.Kind.Leaps() {
		out = out.Add(p.Pos.Shift(m.relative(p, o)))
	}
	for _, d := range p.Kind.Slides() {
		out = out.Union(ray(b, p.Pos, m.relative(p, d)))
	}
	return out
}

// ray collects every empty square from 'from' along d plus the first
// occupied one, whoever owns it.
func ray(b *Board, from Square, d Offset) SquareSet {
	var out SquareSet
	for sq := from.Shift(d); ; sq = sq.Shift(d) {
		_, occ := b.Get(sq)
		if occ == OffBoard {
			return out
		}
		out = out.Add(sq)
		if occ == Occupied {
			return out
		}
	}
}

// reach is the movement geometry of a piece before any king-safety filter.
func (m *Match) reach(p *Piece) SquareSet {
	if p.Kind == Pawn {
		return m.pawnReach(p)
	}
	return m.threatensOn(&m.board, p).Without(m.occupiedBy(p.Owner))
}

func (m *Match) pawnReach(p *Piece) SquareSet {
	var out SquareSet
	step := m.relative(p, pawnAdvance)
	one := p.Pos.Shift(step)
	if _, occ := m.board.Get(one); occ == Empty {
		out = out.Add(one)
		two := one.Shift(step)
		if _, occ := m.board.Get(two); occ == Empty && !p.HasMoved {
			out = out.Add(two)
		}
	}
	for _, o := range pawnAttacks {
		sq := p.Pos.Shift(m.relative(p, o))
		if m.enemyAt(sq, p.Owner) {
			out = out.Add(sq)
		}
	}
	return out
}

func (m *Match) enemyAt(sq Square, owner PlayerID) bool {
	id, occ := m.board.Get(sq)
	return occ == Occupied && m.pieces[id].Owner != owner
}

func (m *Match) occupiedBy(owner PlayerID) SquareSet {
	var out SquareSet
	for id := range m.players[owner].pieces {
		out = out.Add(m.pieces[id].Pos)
	}
	return out
}

// lineBetween returns the unit step from a towards b when both share a
// rank, file or diagonal.
func lineBetween(a, b Square) (Offset, bool) {
	dx, dy := b.File-a.File, b.Rank-a.Rank
	if dx == 0 && dy == 0 {
		return Offset{}, false
	}
	if dx != 0 && dy != 0 && abs(dx) != abs(dy) {
		return Offset{}, false
	}
	return Offset{DX: sign(dx), DY: sign(dy)}, true
}

// slidesAlong reports whether p slides on the line through d, either way.
func (m *Match) slidesAlong(p *Piece, d Offset) bool {
	for _, s := range p.Kind.Slides() {
		rel := m.relative(p, s)
		if rel == d || rel == d.neg() {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
