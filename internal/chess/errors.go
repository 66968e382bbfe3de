package chess

import "errors"

var (
	ErrOutOfBounds    = errors.New("square out of bounds")
	ErrSquareOccupied = errors.New("square occupied")
	ErrIllegalMove    = errors.New("illegal move")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrNoPiece        = errors.New("no piece")
	ErrUnknownPiece   = errors.New("unknown piece")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrUnknownKind    = errors.New("unknown piece kind")
	ErrBadDirection   = errors.New("direction must be +1 or -1")
)
