package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/benbeisheim/chessrules/internal/ws"
)

var errUnknownMessage = errors.New("unknown message type")

type WebSocketController struct {
	gameService *service.GameService
	logger      *log.Logger
}

func NewWebSocketController(gameService *service.GameService, logger *log.Logger) *WebSocketController {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &WebSocketController{
		gameService: gameService,
		logger:      logger,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)
	logger := wsc.logger.With("game", gameID, "player", playerID)

	game, err := wsc.gameService.GetGame(gameID)
	if err != nil {
		logger.Warn("connection to unknown game", "err", err)
		c.Close()
		return
	}
	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		logger.Warn("failed to register connection", "err", err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug("connection closed", "err", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.Debug("unreadable message", "err", err)
			wsc.sendError(game, c, "malformed message")
			continue
		}

		reply, err := wsc.handleMessage(gameID, playerID, msg)
		if err != nil {
			logger.Debug("message rejected", "type", msg.Type, "err", err)
			wsc.sendError(game, c, err.Error())
			continue
		}
		if reply != nil {
			if err := game.Reply(c, *reply); err != nil {
				logger.Warn("failed to reply", "err", err)
				return
			}
		}
	}
}

// handleMessage runs one client request. Moves answer through the game
// broadcast, so only queries return a reply.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) (*ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return nil, fmt.Errorf("decode move: %w", err)
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, move)
		return nil, err

	case ws.MessageTypeLegalMoves:
		var req model.LegalMovesRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return nil, fmt.Errorf("decode legal moves request: %w", err)
		}
		moves, err := wsc.gameService.LegalMoves(gameID, req.From)
		if err != nil {
			return nil, err
		}
		reply, err := ws.NewMessage(ws.MessageTypeLegalMoves, model.LegalMovesResponse{From: req.From, Moves: moves})
		if err != nil {
			return nil, err
		}
		return &reply, nil

	default:
		return nil, fmt.Errorf("%w: %s", errUnknownMessage, msg.Type)
	}
}

func (wsc *WebSocketController) sendError(game *model.Game, c model.Connection, errorMsg string) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		return
	}
	if err := game.Reply(c, msg); err != nil {
		wsc.logger.Debug("failed to send error", "err", err)
	}
}

// HandleMatchmaking queues the player and holds the connection open until a
// match is found or the client goes away.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID := c.Locals("playerID").(string)
	logger := wsc.logger.With("player", playerID)
	defer c.Close()

	ch := make(chan string, 1)
	if err := wsc.gameService.RegisterMatchmakingChannel(playerID, ch); err != nil {
		logger.Warn("failed to register matchmaking channel", "err", err)
		return
	}
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, ch)

	if err := wsc.gameService.JoinMatchmaking(playerID); err != nil && !errors.Is(err, model.ErrAlreadyQueued) {
		logger.Warn("failed to join matchmaking", "err", err)
		return
	}

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-ch:
		if !ok {
			logger.Debug("matchmaking channel replaced")
			return
		}
		msg := ws.Message{Type: ws.MessageTypeMatchFound, Payload: json.RawMessage(event)}
		if err := c.WriteJSON(msg); err != nil {
			logger.Warn("failed to send match", "err", err)
		}
	case <-gone:
		logger.Debug("player left matchmaking")
	}
}
