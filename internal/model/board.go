package model

import (
	"github.com/benbeisheim/chessrules/internal/chess"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func pieceType(k chess.Kind) PieceType {
	return PieceType(k.String())
}

// BoardState is the client view of the board, indexed [y][x].
type BoardState struct {
	Board             [][]*Piece `json:"board"`
	BlackKingPosition Position   `json:"blackKingPosition"`
	WhiteKingPosition Position   `json:"whiteKingPosition"`
}

type Piece struct {
	Type     PieceType   `json:"type"`
	Color    PlayerColor `json:"color"`
	Position Position    `json:"position"`
	HasMoved bool        `json:"hasMoved"`
}

// Position is a board coordinate as the client sends it: X is the file,
// Y the rank, both from 0, with white's back rank at Y = 0.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) square() chess.Square {
	return chess.Square{File: p.X, Rank: p.Y}
}

func (p Position) String() string {
	return p.square().String()
}

func positionOf(sq chess.Square) Position {
	return Position{X: sq.File, Y: sq.Rank}
}

func positionsOf(set chess.SquareSet) []Position {
	squares := set.Squares()
	out := make([]Position, len(squares))
	for i, sq := range squares {
		out[i] = positionOf(sq)
	}
	return out
}

func (g *Game) clientPiece(p chess.Piece) *Piece {
	return &Piece{
		Type:     pieceType(p.Kind),
		Color:    g.colors[p.Owner],
		Position: positionOf(p.Pos),
		HasMoved: p.HasMoved,
	}
}

func (g *Game) boardState() *BoardState {
	board := &BoardState{Board: make([][]*Piece, chess.Size)}
	for y := 0; y < chess.Size; y++ {
		board.Board[y] = make([]*Piece, chess.Size)
		for x := 0; x < chess.Size; x++ {
			p, ok := g.match.PieceAt(chess.Square{File: x, Rank: y})
			if !ok {
				continue
			}
			board.Board[y][x] = g.clientPiece(p)
			if p.Kind == chess.King {
				if g.colors[p.Owner] == PlayerColorWhite {
					board.WhiteKingPosition = positionOf(p.Pos)
				} else {
					board.BlackKingPosition = positionOf(p.Pos)
				}
			}
		}
	}
	return board
}
