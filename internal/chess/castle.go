package chess

// CastleMove is the rook half of a castle, applied together with the King.
type CastleMove struct {
	Rook     PieceID `json:"rook"`
	KingTo   Square  `json:"kingTo"`
	RookFrom Square  `json:"rookFrom"`
	RookTo   Square  `json:"rookTo"`
}

// castles lists the castles open to an unmoved King: an unmoved Rook of the
// same owner on the King's rank, at least three files away, with only empty
// squares in between. The King lands two files towards the Rook and the Rook
// on the square it crossed.
func (m *Match) castles(king *Piece) []CastleMove {
	if king.HasMoved {
		return nil
	}
	strict := m.opts.StrictCastling
	var threats SquareSet
	if strict {
		threats = m.enemyThreats(king.Owner, &m.board)
		if threats.Has(king.Pos) {
			return nil
		}
	}

	var out []CastleMove
	for _, id := range m.players[king.Owner].Pieces() {
		rook := m.pieces[id]
		if rook.Kind != Rook || rook.HasMoved || rook.Pos.Rank != king.Pos.Rank {
			continue
		}
		dist := rook.Pos.File - king.Pos.File
		if abs(dist) < 3 {
			continue
		}
		step := Offset{DX: sign(dist)}
		if !m.emptyBetween(king.Pos, rook.Pos, step) {
			continue
		}
		transit := king.Pos.Shift(step)
		if strict && threats.Has(transit) {
			continue
		}
		out = append(out, CastleMove{
			Rook:     id,
			KingTo:   transit.Shift(step),
			RookFrom: rook.Pos,
			RookTo:   transit,
		})
	}
	return out
}

func (m *Match) emptyBetween(from, to Square, step Offset) bool {
	for sq := from.Shift(step); sq != to; sq = sq.Shift(step) {
		if _, occ := m.board.Get(sq); occ != Empty {
			return false
		}
	}
	return true
}

// CastleTargets returns the King destinations that castling currently
// offers, before the destination safety check.
func (m *Match) CastleTargets(king PieceID) SquareSet {
	p := m.piece(king)
	if p == nil || !p.OnBoard || p.Kind != King {
		return 0
	}
	var out SquareSet
	for _, c := range m.castles(p) {
		out = out.Add(c.KingTo)
	}
	return out
}
