package chess

import "testing"

func newTestMatch(t *testing.T, opts Options) (*Match, PlayerID, PlayerID) {
	t.Helper()
	m := NewMatch(opts)
	white, err := m.AddPlayer("White", 1)
	if err != nil {
		t.Fatalf("add white: %v", err)
	}
	black, err := m.AddPlayer("Black", -1)
	if err != nil {
		t.Fatalf("add black: %v", err)
	}
	return m, white, black
}

func put(t *testing.T, m *Match, kind Kind, owner PlayerID, file, rank int) PieceID {
	t.Helper()
	id, err := m.CreatePiece(kind, owner, sq(file, rank))
	if err != nil {
		t.Fatalf("create %s at (%d,%d): %v", kind, file, rank, err)
	}
	return id
}

func sq(file, rank int) Square {
	return Square{File: file, Rank: rank}
}

func wantSet(t *testing.T, label string, got SquareSet, want ...Square) {
	t.Helper()
	if got != SetOf(want...) {
		t.Fatalf("%s: got %v, want %v", label, got.Squares(), SetOf(want...).Squares())
	}
}

func pieceAt(t *testing.T, m *Match, s Square) Piece {
	t.Helper()
	p, ok := m.PieceAt(s)
	if !ok {
		t.Fatalf("no piece at %v", s)
	}
	return p
}

func mustPlay(t *testing.T, m *Match, from, to Square) Move {
	t.Helper()
	p := pieceAt(t, m, from)
	mv, err := m.Play(p.ID, to)
	if err != nil {
		t.Fatalf("play %v-%v: %v", from, to, err)
	}
	return mv
}
