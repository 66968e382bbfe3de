package chess

// Occupancy is the three-way result of a board lookup. Ray scans stop at
// OffBoard, slide through Empty and inspect the owner on Occupied.
type Occupancy int

const (
	OffBoard Occupancy = iota
	Empty
	Occupied
)

func (o Occupancy) String() string {
	switch o {
	case Empty:
		return "empty"
	case Occupied:
		return "occupied"
	}
	return "off-board"
}

// Board holds at most one piece handle per square, indexed [file][rank].
// It is a plain value so a scratch copy can be taken for hypothetical scans.
type Board struct {
	cells [Size][Size]PieceID
}

func (b *Board) Get(sq Square) (PieceID, Occupancy) {
	if !sq.Valid() {
		return NoPiece, OffBoard
	}
	id := b.cells[sq.File][sq.Rank]
	if id == NoPiece {
		return NoPiece, Empty
	}
	return id, Occupied
}

// Set places id on sq. Off-board squares are ignored.
func (b *Board) Set(sq Square, id PieceID) {
	if sq.Valid() {
		b.cells[sq.File][sq.Rank] = id
	}
}

func (b *Board) Clear(sq Square) {
	b.Set(sq, NoPiece)
}
