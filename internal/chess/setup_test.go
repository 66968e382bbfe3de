package chess

import (
	"errors"
	"testing"
)

func TestStandardMatch(t *testing.T) {
	m, err := NewStandardMatch("White", "Black", Options{})
	if err != nil {
		t.Fatalf("standard match: %v", err)
	}
	players := m.Players()
	if len(players) != 2 {
		t.Fatalf("got %d players", len(players))
	}

	for _, owner := range players {
		player, _ := m.Player(owner)
		if player.PieceCount() != 16 {
			t.Fatalf("%s has %d pieces", player, player.PieceCount())
		}
		total := 0
		for _, moves := range m.LegalMovesFor(owner) {
			total += moves.Len()
		}
		if total != 20 {
			t.Fatalf("%s: got %d opening moves, want 20", player, total)
		}
		if got := m.Status(owner); got != Ongoing {
			t.Fatalf("%s: got %s at the start", player, got)
		}
	}

	tests := []struct {
		square Square
		kind   Kind
		owner  PlayerID
	}{
		{sq(4, 0), King, players[0]},
		{sq(3, 0), Queen, players[0]},
		{sq(0, 1), Pawn, players[0]},
		{sq(4, 7), King, players[1]},
		{sq(3, 7), Queen, players[1]},
		{sq(7, 6), Pawn, players[1]},
		{sq(6, 7), Knight, players[1]},
	}
	for _, tt := range tests {
		p := pieceAt(t, m, tt.square)
		if p.Kind != tt.kind || p.Owner != tt.owner {
			t.Fatalf("%v: got %s of %d, want %s of %d", tt.square, p.Kind, p.Owner, tt.kind, tt.owner)
		}
	}
	if _, occ := m.At(sq(4, 4)); occ != Empty {
		t.Fatalf("middle of the board should be empty")
	}
}

func TestCreatePiece(t *testing.T) {
	t.Run("negative coordinates wrap", func(t *testing.T) {
		m, white, _ := newTestMatch(t, Options{})
		id := put(t, m, Rook, white, 0, -1)
		p, _ := m.Piece(id)
		if p.Pos != sq(0, 7) {
			t.Fatalf("got %v, want a8", p.Pos)
		}
		id = put(t, m, Rook, white, -8, 0)
		if p, _ := m.Piece(id); p.Pos != sq(0, 0) {
			t.Fatalf("got %v, want a1", p.Pos)
		}
	})

	tests := []struct {
		name    string
		kind    Kind
		owner   PlayerID
		square  Square
		wantErr error
	}{
		{"past the last rank", Rook, 0, sq(0, 8), ErrOutOfBounds},
		{"wraps only once", Rook, 0, sq(-9, 0), ErrOutOfBounds},
		{"occupied square", Knight, 1, sq(3, 3), ErrSquareOccupied},
		{"unknown kind", Kind(42), 0, sq(1, 1), ErrUnknownKind},
		{"unknown player", Pawn, 5, sq(1, 1), ErrUnknownPlayer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, white, _ := newTestMatch(t, Options{})
			put(t, m, Bishop, white, 3, 3)
			if _, err := m.CreatePiece(tt.kind, tt.owner, tt.square); !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("second king panics", func(t *testing.T) {
		m, white, _ := newTestMatch(t, Options{})
		put(t, m, King, white, 4, 0)
		defer func() {
			if recover() == nil {
				t.Fatalf("expected a panic for a second king")
			}
		}()
		_, _ = m.CreatePiece(King, white, sq(4, 1))
	})
}

func TestAddPlayerDirection(t *testing.T) {
	m := NewMatch(Options{})
	if _, err := m.AddPlayer("Sideways", 0); !errors.Is(err, ErrBadDirection) {
		t.Fatalf("got %v, want ErrBadDirection", err)
	}
	if err := m.SetTurn(3); !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("got %v, want ErrUnknownPlayer", err)
	}
}

func TestParseKind(t *testing.T) {
	for _, name := range []string{"pawn", "Knight", " queen "} {
		if _, ok := ParseKind(name); !ok {
			t.Fatalf("ParseKind(%q) failed", name)
		}
	}
	if _, ok := ParseKind("archbishop"); ok {
		t.Fatalf("unexpected kind accepted")
	}
	var k Kind
	if err := k.UnmarshalText([]byte("rook")); err != nil || k != Rook {
		t.Fatalf("got %s, %v", k, err)
	}
	if err := k.UnmarshalText([]byte("dragon")); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("got %v, want ErrUnknownKind", err)
	}
}
