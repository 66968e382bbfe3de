package model

import "errors"

var (
	ErrGameFull      = errors.New("game is full")
	ErrNotSeated     = errors.New("player not in game")
	ErrNotYourPiece  = errors.New("piece belongs to the opponent")
	ErrGameOver      = errors.New("game is over")
	ErrNotAuthorized = errors.New("not authorized to join this game")
	ErrAlreadyQueued = errors.New("player already in queue")
)
