package chess

import "fmt"

// Move describes an applied move. Captured, Castle and Promotion are only set
// when the move did that.
type Move struct {
	Piece     PieceID     `json:"piece"`
	From      Square      `json:"from"`
	To        Square      `json:"to"`
	Captured  PieceID     `json:"captured,omitempty"`
	Value     int         `json:"value,omitempty"`
	Castle    *CastleMove `json:"castle,omitempty"`
	Promotion PieceID     `json:"promotion,omitempty"`
}

// Execute moves the piece to target. Validation happens before any mutation,
// so a rejected move leaves the match untouched.
func (m *Match) Execute(id PieceID, target Square) (Move, error) {
	p := m.piece(id)
	if p == nil || !p.OnBoard {
		return Move{}, fmt.Errorf("move %d: %w", id, ErrUnknownPiece)
	}
	if !target.Valid() {
		return Move{}, fmt.Errorf("move %s to %v: %w", p.Kind, target, ErrOutOfBounds)
	}
	if !m.LegalMoves(id).Has(target) {
		return Move{}, fmt.Errorf("move %s %v to %v: %w", p.Kind, p.Pos, target, ErrIllegalMove)
	}

	mv := Move{Piece: id, From: p.Pos, To: target}
	if p.Kind == King {
		for _, c := range m.castles(p) {
			if c.KingTo == target {
				castle := c
				mv.Castle = &castle
			}
		}
	}

	mover := m.players[p.Owner]
	m.board.Clear(p.Pos)
	if victimID, occ := m.board.Get(target); occ == Occupied {
		victim := m.pieces[victimID]
		mv.Captured = victimID
		mv.Value = victim.Value()
		mover.score += mv.Value
		m.remove(victim)
	}
	p.Pos = target
	p.HasMoved = true
	m.board.Set(target, id)

	if mv.Castle != nil {
		rook := m.pieces[mv.Castle.Rook]
		m.board.Clear(rook.Pos)
		rook.Pos = mv.Castle.RookTo
		rook.HasMoved = true
		m.board.Set(rook.Pos, rook.ID)
	}

	if p.Kind == Pawn && target.Rank == mover.farRank() {
		mv.Promotion = m.promote(p)
	}
	return mv, nil
}

// Play executes a move for the player whose turn it is and passes the turn on.
func (m *Match) Play(id PieceID, target Square) (Move, error) {
	p := m.piece(id)
	if p == nil || !p.OnBoard {
		return Move{}, fmt.Errorf("play %d: %w", id, ErrUnknownPiece)
	}
	if p.Owner != m.turn {
		return Move{}, fmt.Errorf("play %s at %v: %w", p.Kind, p.Pos, ErrNotYourTurn)
	}
	mv, err := m.Execute(id, target)
	if err != nil {
		return Move{}, err
	}
	m.turn = PlayerID((int(m.turn) + 1) % len(m.players))
	return mv, nil
}

// remove takes a piece out of play: off the board and out of its owner's set.
func (m *Match) remove(p *Piece) {
	if id, _ := m.board.Get(p.Pos); id == p.ID {
		m.board.Clear(p.Pos)
	}
	p.OnBoard = false
	delete(m.players[p.Owner].pieces, p.ID)
}

// promote replaces a pawn on the far rank with a Queen of the same owner.
// There is no choice of piece.
func (m *Match) promote(pawn *Piece) PieceID {
	owner := m.players[pawn.Owner]
	m.remove(pawn)
	id := m.place(Queen, owner, pawn.Pos)
	m.pieces[id].HasMoved = true
	return id
}
