package chess

import "testing"

func TestBoardGetDistinguishesOffBoard(t *testing.T) {
	var b Board
	b.Set(sq(3, 4), PieceID(7))

	tests := []struct {
		name   string
		square Square
		id     PieceID
		occ    Occupancy
	}{
		{"occupied", sq(3, 4), 7, Occupied},
		{"empty", sq(4, 4), NoPiece, Empty},
		{"negative file", sq(-1, 0), NoPiece, OffBoard},
		{"past last rank", sq(0, Size), NoPiece, OffBoard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, occ := b.Get(tt.square)
			if id != tt.id || occ != tt.occ {
				t.Fatalf("Get(%v) = %d, %s; want %d, %s", tt.square, id, occ, tt.id, tt.occ)
			}
		})
	}

	b.Clear(sq(3, 4))
	if _, occ := b.Get(sq(3, 4)); occ != Empty {
		t.Fatalf("expected cleared square to be empty, got %s", occ)
	}
	b.Set(sq(9, 9), PieceID(1))
	if _, occ := b.Get(sq(9, 9)); occ != OffBoard {
		t.Fatalf("off-board set must not land anywhere")
	}
}

func TestSquareSet(t *testing.T) {
	s := SetOf(sq(0, 0), sq(7, 7), sq(-1, 3), sq(3, 8))
	if s.Len() != 2 {
		t.Fatalf("off-board squares must be dropped, got %v", s.Squares())
	}
	if !s.Has(sq(7, 7)) || s.Has(sq(1, 1)) || s.Has(sq(-1, 3)) {
		t.Fatalf("unexpected membership in %v", s.Squares())
	}
	other := SetOf(sq(7, 7), sq(2, 2))
	wantSet(t, "intersect", s.Intersect(other), sq(7, 7))
	wantSet(t, "union", s.Union(other), sq(0, 0), sq(2, 2), sq(7, 7))
	wantSet(t, "without", s.Without(other), sq(0, 0))
	wantSet(t, "remove", s.Remove(sq(0, 0)), sq(7, 7))

	got := SetOf(sq(5, 1), sq(2, 0), sq(0, 1)).Squares()
	want := []Square{sq(2, 0), sq(0, 1), sq(5, 1)}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Squares order: got %v, want %v", got, want)
		}
	}
}

func TestSquareString(t *testing.T) {
	if got := sq(4, 1).String(); got != "e2" {
		t.Fatalf("got %q, want e2", got)
	}
	if got := sq(-1, 2).String(); got != "(-1,2)" {
		t.Fatalf("got %q", got)
	}
}
