package chess

// LegalMoves returns the target squares the piece may move to now. The
// result is computed from the current position on every call.
func (m *Match) LegalMoves(id PieceID) SquareSet {
	p := m.piece(id)
	if p == nil || !p.OnBoard {
		return 0
	}
	if p.Kind == King {
		return m.kingMoves(p)
	}

	moves := m.reach(p)
	safety := m.kingSafety(p.Owner)
	switch n := len(safety.threatenedBy); {
	case n >= 2:
		// double check: only the King may answer
		return 0
	case n == 1:
		moves = moves.Intersect(safety.defensive)
	}
	if line, pinned := safety.pins[id]; pinned {
		moves = moves.Intersect(line)
	}
	return moves
}

// kingMoves drops every square an opponent threatens. The King is lifted off
// the board for that scan so a slider's line reaches past its current square.
func (m *Match) kingMoves(king *Piece) SquareSet {
	moves := m.reach(king)
	for _, c := range m.castles(king) {
		moves = moves.Add(c.KingTo)
	}
	scratch := m.board
	scratch.Clear(king.Pos)
	return moves.Without(m.enemyThreats(king.Owner, &scratch))
}

// LegalMovesFor maps every live piece of the player to its legal targets,
// leaving out pieces that cannot move.
func (m *Match) LegalMovesFor(owner PlayerID) map[PieceID]SquareSet {
	player, ok := m.Player(owner)
	if !ok {
		return nil
	}
	out := make(map[PieceID]SquareSet)
	for _, id := range player.Pieces() {
		if moves := m.LegalMoves(id); !moves.Empty() {
			out[id] = moves
		}
	}
	return out
}

func (m *Match) HasLegalMove(owner PlayerID) bool {
	player, ok := m.Player(owner)
	if !ok {
		return false
	}
	for _, id := range player.Pieces() {
		if !m.LegalMoves(id).Empty() {
			return true
		}
	}
	return false
}
