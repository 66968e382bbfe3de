package chess

// kingSafety is derived fresh on every query; nothing here survives a move.
type kingSafety struct {
	king         *Piece
	threatenedBy []PieceID
	// defensive is only meaningful with exactly one attacker.
	defensive SquareSet
	pins      map[PieceID]SquareSet
}

func (s kingSafety) inCheck() bool {
	return len(s.threatenedBy) > 0
}

func (m *Match) kingSafety(owner PlayerID) kingSafety {
	var s kingSafety
	king := m.livingKing(owner)
	if king == nil {
		return s
	}
	s.king = king
	s.threatenedBy = m.attackers(king)
	if len(s.threatenedBy) == 1 {
		s.defensive = m.defensiveSet(m.pieces[s.threatenedBy[0]], king.Pos)
	}
	s.pins = m.pins(king)
	return s
}

func (m *Match) livingKing(owner PlayerID) *Piece {
	player, ok := m.Player(owner)
	if !ok {
		return nil
	}
	king := m.piece(player.king)
	if king == nil || !king.OnBoard {
		return nil
	}
	return king
}

// attackers lists the opposing pieces whose threatened squares include the
// King's square, in handle order.
func (m *Match) attackers(king *Piece) []PieceID {
	var out []PieceID
	for _, opp := range m.Opponents(king.Owner) {
		for _, id := range m.players[opp].Pieces() {
			if m.threatensOn(&m.board, m.pieces[id]).Has(king.Pos) {
				out = append(out, id)
			}
		}
	}
	return out
}

// enemyThreats is the union of threatened squares of every opponent of owner,
// scanned over b.
func (m *Match) enemyThreats(owner PlayerID, b *Board) SquareSet {
	var out SquareSet
	for _, opp := range m.Opponents(owner) {
		for id := range m.players[opp].pieces {
			out = out.Union(m.threatensOn(b, m.pieces[id]))
		}
	}
	return out
}

// defensiveSet holds the attacker's square and, for a slider attacking along
// one of its directions, the squares strictly between it and target.
func (m *Match) defensiveSet(attacker *Piece, target Square) SquareSet {
	out := SetOf(attacker.Pos)
	d, ok := lineBetween(attacker.Pos, target)
	if !ok || !m.slidesAlong(attacker, d) {
		return out
	}
	for sq := attacker.Pos.Shift(d); sq != target && sq.Valid(); sq = sq.Shift(d) {
		out = out.Add(sq)
	}
	return out
}

// pins scans the eight lines out of the King. A friendly piece followed by an
// opposing slider moving on that line is pinned to the squares of the line up
// to and including the pinner.
func (m *Match) pins(king *Piece) map[PieceID]SquareSet {
	pins := make(map[PieceID]SquareSet)
	for _, d := range allDirs {
		var line SquareSet
		blocker := NoPiece
	scan:
		for sq := king.Pos.Shift(d); ; sq = sq.Shift(d) {
			id, occ := m.board.Get(sq)
			switch occ {
			case OffBoard:
				break scan
			case Empty:
				line = line.Add(sq)
				continue
			}
			line = line.Add(sq)
			p := m.pieces[id]
			if blocker == NoPiece {
				if p.Owner != king.Owner {
					break scan
				}
				blocker = id
				continue
			}
			if p.Owner != king.Owner && m.slidesAlong(p, d) {
				pins[blocker] = line
			}
			break scan
		}
	}
	return pins
}

// InCheck reports whether the given King stands on a square threatened by
// an opposing piece. Handles that are not a live King report false.
func (m *Match) InCheck(king PieceID) bool {
	return len(m.ThreatenedBy(king)) > 0
}

func (m *Match) ThreatenedBy(king PieceID) []PieceID {
	p := m.piece(king)
	if p == nil || !p.OnBoard || p.Kind != King {
		return nil
	}
	return m.attackers(p)
}
