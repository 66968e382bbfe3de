package chess

import "testing"

func TestKingOnAttackedFile(t *testing.T) {
	m, white, black := newTestMatch(t, Options{})
	king := put(t, m, King, white, 4, 4)
	rook := put(t, m, Rook, black, 4, 7)

	if !m.InCheck(king) {
		t.Fatalf("expected king on e5 to be in check from e8")
	}
	if got := m.ThreatenedBy(king); len(got) != 1 || got[0] != rook {
		t.Fatalf("threatened by: got %v, want [%d]", got, rook)
	}
	// stepping back along the file stays on the rook's line
	wantSet(t, "king", m.LegalMoves(king),
		sq(3, 3), sq(5, 3), sq(3, 4), sq(5, 4), sq(3, 5), sq(5, 5))
}

func TestPawnCannotAnswerDiagonalCheck(t *testing.T) {
	m, white, black := newTestMatch(t, Options{})
	king := put(t, m, King, white, 5, 0)
	pawn := put(t, m, Pawn, white, 6, 1)
	put(t, m, Bishop, black, 4, 1)

	if !m.InCheck(king) {
		t.Fatalf("expected check from the bishop")
	}
	wantSet(t, "pawn", m.LegalMoves(pawn))
	if !m.LegalMoves(king).Has(sq(4, 1)) {
		t.Fatalf("king should be able to take the undefended bishop")
	}
}

func TestDoubleCheckLeavesOnlyKingMoves(t *testing.T) {
	build := func(t *testing.T, withKnight bool) (*Match, PieceID, PieceID) {
		m, white, black := newTestMatch(t, Options{})
		king := put(t, m, King, black, 4, 7)
		rook := put(t, m, Rook, black, 0, 4)
		put(t, m, Rook, white, 4, 0)
		put(t, m, King, white, 7, 0)
		if withKnight {
			put(t, m, Knight, white, 3, 5)
		}
		return m, king, rook
	}

	t.Run("single check allows a block", func(t *testing.T) {
		m, _, rook := build(t, false)
		wantSet(t, "rook", m.LegalMoves(rook), sq(4, 4))
	})

	t.Run("double check", func(t *testing.T) {
		m, king, rook := build(t, true)
		if n := len(m.ThreatenedBy(king)); n != 2 {
			t.Fatalf("expected two attackers, got %d", n)
		}
		wantSet(t, "rook", m.LegalMoves(rook))
		moves := m.LegalMoves(king)
		if !moves.Has(sq(3, 7)) {
			t.Fatalf("king should escape to d8, got %v", moves.Squares())
		}
		if moves.Has(sq(4, 6)) || moves.Has(sq(5, 6)) {
			t.Fatalf("king may not step onto attacked squares, got %v", moves.Squares())
		}
	})
}

func TestCheckResponses(t *testing.T) {
	t.Run("block a slider", func(t *testing.T) {
		m, white, black := newTestMatch(t, Options{})
		put(t, m, King, white, 4, 0)
		bishop := put(t, m, Bishop, white, 2, 2)
		put(t, m, Rook, black, 4, 7)
		wantSet(t, "bishop", m.LegalMoves(bishop), sq(4, 4))
	})

	t.Run("capture the checker", func(t *testing.T) {
		m, white, black := newTestMatch(t, Options{})
		put(t, m, King, white, 4, 0)
		knight := put(t, m, Knight, white, 3, 5)
		put(t, m, Rook, black, 4, 7)
		wantSet(t, "knight", m.LegalMoves(knight), sq(4, 7), sq(4, 3))
	})

	t.Run("a leaper cannot be blocked", func(t *testing.T) {
		m, white, black := newTestMatch(t, Options{})
		put(t, m, King, white, 4, 0)
		rook := put(t, m, Rook, white, 3, 7)
		put(t, m, Knight, black, 3, 2)
		wantSet(t, "rook", m.LegalMoves(rook), sq(3, 2))
	})
}

func TestPins(t *testing.T) {
	t.Run("rook pinned on a file slides along it", func(t *testing.T) {
		m, white, black := newTestMatch(t, Options{})
		put(t, m, King, white, 4, 0)
		rook := put(t, m, Rook, white, 4, 2)
		put(t, m, Rook, black, 4, 6)
		wantSet(t, "rook", m.LegalMoves(rook), sq(4, 1), sq(4, 3), sq(4, 4), sq(4, 5), sq(4, 6))
	})

	t.Run("bishop pinned on a file cannot move", func(t *testing.T) {
		m, white, black := newTestMatch(t, Options{})
		put(t, m, King, white, 4, 0)
		bishop := put(t, m, Bishop, white, 4, 2)
		put(t, m, Queen, black, 4, 6)
		wantSet(t, "bishop", m.LegalMoves(bishop))
	})

	t.Run("diagonal pin allows capturing the pinner", func(t *testing.T) {
		m, white, black := newTestMatch(t, Options{})
		put(t, m, King, white, 0, 0)
		bishop := put(t, m, Bishop, white, 2, 2)
		put(t, m, Bishop, black, 5, 5)
		wantSet(t, "bishop", m.LegalMoves(bishop), sq(1, 1), sq(3, 3), sq(4, 4), sq(5, 5))
	})

	t.Run("no pin from a piece that does not slide that way", func(t *testing.T) {
		m, white, black := newTestMatch(t, Options{})
		put(t, m, King, white, 4, 0)
		rook := put(t, m, Rook, white, 4, 2)
		put(t, m, Bishop, black, 4, 6)
		if !m.LegalMoves(rook).Has(sq(0, 2)) {
			t.Fatalf("rook should be free to leave the file")
		}
	})

	t.Run("two friendly pieces on the line are not pinned", func(t *testing.T) {
		m, white, black := newTestMatch(t, Options{})
		put(t, m, King, white, 4, 0)
		put(t, m, Knight, white, 4, 1)
		rook := put(t, m, Rook, white, 4, 2)
		put(t, m, Rook, black, 4, 6)
		if !m.LegalMoves(rook).Has(sq(7, 2)) {
			t.Fatalf("rook shielded by the knight should move freely")
		}
	})
}

func TestKingSafety(t *testing.T) {
	t.Run("defended piece cannot be taken by the king", func(t *testing.T) {
		m, white, black := newTestMatch(t, Options{})
		king := put(t, m, King, white, 4, 0)
		put(t, m, Rook, black, 4, 1)
		put(t, m, Rook, black, 4, 7)
		wantSet(t, "king", m.LegalMoves(king), sq(3, 0), sq(5, 0))
	})

	t.Run("kings never become adjacent", func(t *testing.T) {
		m, white, black := newTestMatch(t, Options{})
		king := put(t, m, King, white, 4, 4)
		put(t, m, King, black, 4, 6)
		wantSet(t, "king", m.LegalMoves(king), sq(3, 3), sq(4, 3), sq(5, 3), sq(3, 4), sq(5, 4))
	})

	t.Run("non-king handles are never in check", func(t *testing.T) {
		m, white, black := newTestMatch(t, Options{})
		rook := put(t, m, Rook, white, 4, 0)
		put(t, m, Rook, black, 4, 7)
		if m.InCheck(rook) {
			t.Fatalf("InCheck only applies to kings")
		}
	})
}
