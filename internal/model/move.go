package model

type WSMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// LegalMovesRequest asks for the targets of the piece standing on From.
type LegalMovesRequest struct {
	From Position `json:"from"`
}

type LegalMovesResponse struct {
	From  Position   `json:"from"`
	Moves []Position `json:"moves"`
}

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type Ply struct {
	Piece          *Piece          `json:"piece"`
	From           Position        `json:"from"`
	To             Position        `json:"to"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	Promotion      PieceType       `json:"promotion,omitempty"`
}

type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  PlayerColor `json:"color"`
}
