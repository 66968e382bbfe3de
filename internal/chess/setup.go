package chess

import "fmt"

var backRow = [Size]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewStandardMatch sets up the usual 32 pieces: white faces up the board from
// rank 0 and moves first, black faces down from the last rank.
func NewStandardMatch(white, black string, opts Options) (*Match, error) {
	m := NewMatch(opts)
	for _, side := range []struct {
		name      string
		direction int
	}{
		{white, 1},
		{black, -1},
	} {
		id, err := m.AddPlayer(side.name, side.direction)
		if err != nil {
			return nil, err
		}
		if err := m.SetUpPieces(id); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// SetUpPieces places a full army for owner on its own side of the board.
func (m *Match) SetUpPieces(owner PlayerID) error {
	player, ok := m.Player(owner)
	if !ok {
		return fmt.Errorf("set up %d: %w", owner, ErrUnknownPlayer)
	}
	// 0 facing up, -1 (the last rank once wrapped) facing down
	row := (player.direction - 1) / 2
	for file := 0; file < Size; file++ {
		if _, err := m.CreatePiece(Pawn, owner, Square{File: file, Rank: row + player.direction}); err != nil {
			return fmt.Errorf("set up %s: %w", player.name, err)
		}
	}
	for file, kind := range backRow {
		if _, err := m.CreatePiece(kind, owner, Square{File: file, Rank: row}); err != nil {
			return fmt.Errorf("set up %s: %w", player.name, err)
		}
	}
	return nil
}
