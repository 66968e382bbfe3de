package controller

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/benbeisheim/chessrules/internal/chess"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/benbeisheim/chessrules/internal/ws"
)

func TestHandleMessage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	gs := service.NewGameService(service.NewGameManager(ctx, nil, chess.Options{}, nil))
	wsc := NewWebSocketController(gs, nil)

	gameID, err := gs.CreateGame("")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := gs.JoinGame(gameID, "alice"); err != nil {
		t.Fatalf("join: %v", err)
	}

	msg := func(typ ws.MessageType, payload interface{}) ws.Message {
		m, err := ws.NewMessage(typ, payload)
		if err != nil {
			t.Fatalf("new message: %v", err)
		}
		return m
	}

	t.Run("legal moves", func(t *testing.T) {
		from := model.Position{X: 4, Y: 1}
		reply, err := wsc.handleMessage(gameID, "alice", msg(ws.MessageTypeLegalMoves, model.LegalMovesRequest{From: from}))
		if err != nil {
			t.Fatalf("legal moves: %v", err)
		}
		if reply == nil || reply.Type != ws.MessageTypeLegalMoves {
			t.Fatalf("reply %+v", reply)
		}
		var resp model.LegalMovesResponse
		if err := json.Unmarshal(reply.Payload, &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.From != from || len(resp.Moves) != 2 {
			t.Fatalf("got %+v", resp)
		}
	})

	t.Run("move", func(t *testing.T) {
		move := model.WSMove{From: model.Position{X: 4, Y: 1}, To: model.Position{X: 4, Y: 3}}
		reply, err := wsc.handleMessage(gameID, "alice", msg(ws.MessageTypeMove, move))
		if err != nil || reply != nil {
			t.Fatalf("move: %+v, %v", reply, err)
		}
		if _, err := wsc.handleMessage(gameID, "alice", msg(ws.MessageTypeMove, move)); !errors.Is(err, chess.ErrNoPiece) {
			t.Fatalf("replayed move: got %v, want ErrNoPiece", err)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		if _, err := wsc.handleMessage(gameID, "alice", ws.Message{Type: "resign"}); !errors.Is(err, errUnknownMessage) {
			t.Fatalf("got %v, want errUnknownMessage", err)
		}
	})
}
