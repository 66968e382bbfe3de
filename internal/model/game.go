package model

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/chessrules/internal/chess"
	"github.com/benbeisheim/chessrules/internal/position"
	"github.com/benbeisheim/chessrules/internal/ws"
)

// Connection is the part of a websocket connection a game writes to.
type Connection interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Connection // playerID -> connection
	mu          sync.RWMutex
	// writes to one connection must not interleave
	writeMu sync.Mutex
}

// The Game struct focuses on a single game's rules state and its observers
type Game struct {
	ID          string
	mu          sync.Mutex
	match       *chess.Match
	colors      map[chess.PlayerID]PlayerColor
	seats       map[PlayerColor]string
	captured    CapturedPieces
	lastMove    *Ply
	plies       int
	connections *GameConnections // Connections just for this game
	logger      *log.Logger
}

type GameState struct {
	ID             string         `json:"id"`
	Board          *BoardState    `json:"boardState"`
	FEN            string         `json:"fen"`
	ToMove         PlayerColor    `json:"toMove"`
	Status         chess.Status   `json:"status"`
	IsCheck        bool           `json:"isCheck"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	Resolve        *string        `json:"resolve"`
	Winner         *PlayerColor   `json:"winner"`
	Players        struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
	LastMove *Ply `json:"lastMove"`
	Plies    int  `json:"plies"`
}

// CapturedPieces lists the pieces each side has taken.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// Outcome summarises a finished game.
type Outcome struct {
	Status     chess.Status
	Winner     PlayerColor
	WhiteScore int
	BlackScore int
	Plies      int
}

// NewGame wraps a two-player match. The player facing up the board is white.
func NewGame(id string, match *chess.Match, logger *log.Logger) (*Game, error) {
	players := match.Players()
	if len(players) != 2 {
		return nil, fmt.Errorf("game %s: want 2 players, got %d", id, len(players))
	}
	colors := make(map[chess.PlayerID]PlayerColor, 2)
	for _, pid := range players {
		p, _ := match.Player(pid)
		if p.Direction() > 0 {
			colors[pid] = PlayerColorWhite
		} else {
			colors[pid] = PlayerColorBlack
		}
	}
	if colors[players[0]] == colors[players[1]] {
		return nil, fmt.Errorf("game %s: both players face the same way", id)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		ID:          id,
		match:       match,
		colors:      colors,
		seats:       make(map[PlayerColor]string, 2),
		captured:    newCapturedPieces(),
		connections: NewGameConnections(),
		logger:      logger.With("game", id),
	}, nil
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Connection),
	}
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]Piece, 0),
		Black: make([]Piece, 0),
	}
}

// AddPlayer seats the player as white, then black. A player already seated
// gets their color back.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.colorOf(playerID); ok {
		return color, nil
	}
	for _, color := range []PlayerColor{PlayerColorWhite, PlayerColorBlack} {
		if g.seats[color] == "" {
			g.seats[color] = playerID
			g.logger.Info("player seated", "player", playerID, "color", color)
			return color, nil
		}
	}
	return "", ErrGameFull
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.colorOf(playerID)
	return ok
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.seats[PlayerColorWhite] == "" || g.seats[PlayerColorBlack] == ""
}

func (g *Game) colorOf(playerID string) (PlayerColor, bool) {
	if playerID == "" {
		return "", false
	}
	for color, id := range g.seats {
		if id == playerID {
			return color, true
		}
	}
	return "", false
}

func (g *Game) status() chess.Status {
	return g.match.Status(g.match.Turn())
}

// LegalMoves lists the squares the piece on from may move to now.
func (g *Game) LegalMoves(from Position) ([]Position, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.match.PieceAt(from.square())
	if !ok {
		return nil, fmt.Errorf("legal moves from %v: %w", from, chess.ErrNoPiece)
	}
	return positionsOf(g.match.LegalMoves(p.ID)), nil
}

// MakeMove plays a move for a seated player and broadcasts the new state.
func (g *Game) MakeMove(playerID string, move WSMove) (Ply, error) {
	g.mu.Lock()
	ply, err := g.makeMove(playerID, move)
	state := g.snapshot()
	g.mu.Unlock()
	if err != nil {
		return Ply{}, err
	}

	g.logger.Debug("move played", "player", playerID, "from", move.From, "to", move.To, "status", state.Status)
	g.broadcast(state)
	return ply, nil
}

func (g *Game) makeMove(playerID string, move WSMove) (Ply, error) {
	color, ok := g.colorOf(playerID)
	if !ok {
		return Ply{}, ErrNotSeated
	}
	if g.status().Over() {
		return Ply{}, ErrGameOver
	}
	p, ok := g.match.PieceAt(move.From.square())
	if !ok {
		return Ply{}, fmt.Errorf("move from %v: %w", move.From, chess.ErrNoPiece)
	}
	if g.colors[p.Owner] != color {
		return Ply{}, ErrNotYourPiece
	}

	mv, err := g.match.Play(p.ID, move.To.square())
	if err != nil {
		return Ply{}, err
	}

	ply := g.ply(mv)
	if ply.CapturedPiece != nil {
		if color == PlayerColorWhite {
			g.captured.White = append(g.captured.White, *ply.CapturedPiece)
		} else {
			g.captured.Black = append(g.captured.Black, *ply.CapturedPiece)
		}
	}
	g.lastMove = &ply
	g.plies++
	return ply, nil
}

func (g *Game) ply(mv chess.Move) Ply {
	moved, _ := g.match.Piece(mv.Piece)
	ply := Ply{
		Piece: g.clientPiece(moved),
		From:  positionOf(mv.From),
		To:    positionOf(mv.To),
	}
	if mv.Captured != chess.NoPiece {
		victim, _ := g.match.Piece(mv.Captured)
		ply.CapturedPiece = g.clientPiece(victim)
	}
	if mv.Castle != nil {
		ply.CastleRookMove = &CastleRookMove{
			From: positionOf(mv.Castle.RookFrom),
			To:   positionOf(mv.Castle.RookTo),
		}
	}
	if mv.Promotion != chess.NoPiece {
		ply.Promotion = Queen
	}
	return ply
}

// Outcome reports how the game ended, if it has.
func (g *Game) Outcome() (Outcome, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	status := g.status()
	if !status.Over() {
		return Outcome{}, false
	}
	out := Outcome{Status: status, Plies: g.plies}
	if status == chess.Checkmate {
		out.Winner = g.colors[g.match.Turn()].Opponent()
	}
	for pid, color := range g.colors {
		p, _ := g.match.Player(pid)
		if color == PlayerColorWhite {
			out.WhiteScore = p.Score()
		} else {
			out.BlackScore = p.Score()
		}
	}
	return out, true
}

func (g *Game) snapshot() GameState {
	status := g.status()
	state := GameState{
		ID:             g.ID,
		Board:          g.boardState(),
		FEN:            position.ToFEN(g.match),
		ToMove:         g.colors[g.match.Turn()],
		Status:         status,
		IsCheck:        status == chess.Check || status == chess.Checkmate,
		CapturedPieces: CapturedPieces{
			White: append([]Piece(nil), g.captured.White...),
			Black: append([]Piece(nil), g.captured.Black...),
		},
		Plies: g.plies,
	}
	if status.Over() {
		resolve := status.String()
		state.Resolve = &resolve
		if status == chess.Checkmate {
			winner := state.ToMove.Opponent()
			state.Winner = &winner
		}
	}
	for pid, color := range g.colors {
		p, _ := g.match.Player(pid)
		cp := ClientPlayer{ID: g.seats[color], Color: color, Score: p.Score()}
		if color == PlayerColorWhite {
			state.Players.White = cp
		} else {
			state.Players.Black = cp
		}
	}
	if g.lastMove != nil {
		last := *g.lastMove
		state.LastMove = &last
	}
	return state
}

func (g *Game) RegisterConnection(playerID string, conn Connection) error {
	g.mu.Lock()
	_, seated := g.colorOf(playerID)
	isAuthorized := seated || g.canSpectate()
	state := g.snapshot()
	g.mu.Unlock()

	if !isAuthorized {
		return ErrNotAuthorized
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// keep the healthy connection and turn the new one away
		g.connections.mu.Unlock()
		g.connections.writeMu.Lock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		g.connections.writeMu.Unlock()
		conn.Close()
		g.logger.Warn("duplicate connection rejected", "player", playerID)
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	g.logger.Info("connection registered", "player", playerID)

	go g.broadcast(state)
	return nil
}

// UnregisterConnection drops the player's connection if it is still conn.
func (g *Game) UnregisterConnection(playerID string, conn Connection) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		g.logger.Info("connection unregistered", "player", playerID)
	}
}

// Reply writes one message to a single connection of this game.
func (g *Game) Reply(conn Connection, msg ws.Message) error {
	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	return conn.WriteJSON(msg)
}

func (g *Game) broadcast(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		g.logger.Error("failed to marshal state", "err", err)
		return
	}
	msg := ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: json.RawMessage(payload),
	}

	// Get a snapshot of connections under the connections mutex
	g.connections.mu.RLock()
	activeConnections := make(map[string]Connection, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range activeConnections {
		if err := g.Reply(conn, msg); err != nil {
			g.logger.Warn("failed to send state", "player", playerID, "err", err)
			g.UnregisterConnection(playerID, conn)
		}
	}
}
