package chess

import (
	"fmt"

	"golang.org/x/exp/maps"
)

// Options selects rule strictness for a match.
type Options struct {
	// StrictCastling additionally forbids castling out of check and through
	// an attacked transit square. Without it only the King's destination is
	// tested against enemy threats.
	StrictCastling bool
}

// Match is the context of one game: the board, the players taking part and
// the arena every piece handle points into. It is not safe for concurrent use.
type Match struct {
	board   Board
	pieces  []*Piece
	players []*Player
	turn    PlayerID
	opts    Options
}

func NewMatch(opts Options) *Match {
	return &Match{
		// slot 0 backs NoPiece
		pieces: []*Piece{nil},
		opts:   opts,
	}
}

func (m *Match) Options() Options {
	return m.opts
}

// AddPlayer registers a player facing direction (+1 towards higher ranks,
// -1 towards lower ranks). The first player added moves first.
func (m *Match) AddPlayer(name string, direction int) (PlayerID, error) {
	if direction != 1 && direction != -1 {
		return 0, fmt.Errorf("add player %q: %w", name, ErrBadDirection)
	}
	id := PlayerID(len(m.players))
	m.players = append(m.players, newPlayer(id, name, direction))
	return id, nil
}

func (m *Match) Player(id PlayerID) (*Player, bool) {
	if id < 0 || int(id) >= len(m.players) {
		return nil, false
	}
	return m.players[id], true
}

func (m *Match) Players() []PlayerID {
	ids := make([]PlayerID, len(m.players))
	for i := range m.players {
		ids[i] = PlayerID(i)
	}
	return ids
}

func (m *Match) Opponents(id PlayerID) []PlayerID {
	var out []PlayerID
	for _, p := range m.players {
		if p.id != id {
			out = append(out, p.id)
		}
	}
	return out
}

// Turn reports the player to move next under Play.
func (m *Match) Turn() PlayerID {
	return m.turn
}

func (m *Match) SetTurn(id PlayerID) error {
	if _, ok := m.Player(id); !ok {
		return fmt.Errorf("set turn %d: %w", id, ErrUnknownPlayer)
	}
	m.turn = id
	return nil
}

// Board returns a copy of the current board.
func (m *Match) Board() Board {
	return m.board
}

func (m *Match) At(sq Square) (PieceID, Occupancy) {
	return m.board.Get(sq)
}

func (m *Match) Piece(id PieceID) (Piece, bool) {
	p := m.piece(id)
	if p == nil {
		return Piece{}, false
	}
	return *p, true
}

// PieceAt returns the piece standing on sq, if any.
func (m *Match) PieceAt(sq Square) (Piece, bool) {
	id, occ := m.board.Get(sq)
	if occ != Occupied {
		return Piece{}, false
	}
	return m.Piece(id)
}

func (m *Match) piece(id PieceID) *Piece {
	if id <= NoPiece || int(id) >= len(m.pieces) {
		return nil
	}
	return m.pieces[id]
}

// CreatePiece places a new piece for owner. Coordinates in [-Size, 0) wrap
// around, so rank -1 addresses the last rank. A second King for the same
// player is a programming error and panics.
func (m *Match) CreatePiece(kind Kind, owner PlayerID, sq Square) (PieceID, error) {
	if _, ok := kindNames[kind]; !ok {
		return NoPiece, fmt.Errorf("create %d at %v: %w", kind, sq, ErrUnknownKind)
	}
	player, ok := m.Player(owner)
	if !ok {
		return NoPiece, fmt.Errorf("create %s for %d: %w", kind, owner, ErrUnknownPlayer)
	}
	sq = wrap(sq)
	_, occ := m.board.Get(sq)
	switch occ {
	case OffBoard:
		return NoPiece, fmt.Errorf("create %s at %v: %w", kind, sq, ErrOutOfBounds)
	case Occupied:
		return NoPiece, fmt.Errorf("create %s at %v: %w", kind, sq, ErrSquareOccupied)
	}
	if kind == King && player.king != NoPiece {
		panic(fmt.Sprintf("chess: player %s already has a king", player.name))
	}
	return m.place(kind, player, sq), nil
}

func (m *Match) place(kind Kind, player *Player, sq Square) PieceID {
	id := PieceID(len(m.pieces))
	m.pieces = append(m.pieces, &Piece{
		ID:      id,
		Kind:    kind,
		Owner:   player.id,
		Pos:     sq,
		OnBoard: true,
	})
	player.pieces[id] = struct{}{}
	if kind == King {
		player.king = id
	}
	m.board.Set(sq, id)
	return id
}

// SetMoved overrides the has-moved flag, for setups restored from a
// position where castling rights or pawn starts were already spent.
func (m *Match) SetMoved(id PieceID, moved bool) error {
	p := m.piece(id)
	if p == nil {
		return fmt.Errorf("set moved %d: %w", id, ErrUnknownPiece)
	}
	p.HasMoved = moved
	return nil
}

func wrap(sq Square) Square {
	if sq.File < 0 && sq.File >= -Size {
		sq.File += Size
	}
	if sq.Rank < 0 && sq.Rank >= -Size {
		sq.Rank += Size
	}
	return sq
}

// Clone returns an independent copy of the match, for exploring moves
// without touching the original.
func (m *Match) Clone() *Match {
	c := &Match{
		board:   m.board,
		pieces:  make([]*Piece, len(m.pieces)),
		players: make([]*Player, len(m.players)),
		turn:    m.turn,
		opts:    m.opts,
	}
	for i, p := range m.pieces {
		if p != nil {
			cp := *p
			c.pieces[i] = &cp
		}
	}
	for i, p := range m.players {
		cp := *p
		cp.pieces = maps.Clone(p.pieces)
		c.players[i] = &cp
	}
	return c
}
