package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/benbeisheim/chessrules/internal/chess"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/position"
	"github.com/benbeisheim/chessrules/internal/storage"
)

// ResultStore keeps finished games.
type ResultStore interface {
	RecordResult(result storage.Result) error
	LoadStats() (*storage.Stats, error)
}

type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan string
	mu               sync.RWMutex
	store            ResultStore
	opts             chess.Options
	logger           *log.Logger
}

// NewGameManager starts the matchmaking loop, which runs until ctx is done.
func NewGameManager(ctx context.Context, store ResultStore, opts chess.Options, logger *log.Logger) *GameManager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	gm := &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		store:            store,
		opts:             opts,
		logger:           logger,
	}

	go gm.processMatchmaking(ctx)

	return gm
}

func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	// a newer channel replaces the old one, which is closed so its reader stops
	if existingCh, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existingCh)
	}

	gm.matchingChannels[playerID] = ch
	gm.logger.Debug("matchmaking channel registered", "player", playerID)
	return nil
}

// UnregisterMatchmakingChannel forgets the player's channel if it is still ch
// and takes them out of the queue. The channel is not closed here; its
// creator owns it.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if current, ok := gm.matchingChannels[playerID]; ok && current == ch {
		delete(gm.matchingChannels, playerID)
		gm.queue.Remove(playerID)
	}
}

func (gm *GameManager) processMatchmaking(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			gm.matchPlayers()
		}
	}
}

// matchPlayers seats every pair of waiting players in a fresh game and
// tells each of them where to go.
func (gm *GameManager) matchPlayers() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for {
		player1, player2, ok := gm.queue.GetNextPair()
		if !ok {
			return
		}

		gameID := uuid.New().String()
		game, err := gm.newGame(gameID, "")
		if err != nil {
			gm.logger.Error("failed to create matched game", "err", err)
			return
		}
		p1Color, err := game.AddPlayer(player1.ID)
		if err != nil {
			gm.logger.Error("failed to seat player", "player", player1.ID, "err", err)
			continue
		}
		p2Color, err := game.AddPlayer(player2.ID)
		if err != nil {
			gm.logger.Error("failed to seat player", "player", player2.ID, "err", err)
			continue
		}
		gm.games[gameID] = game
		gm.logger.Info("match found", "game", gameID, "white", player1.ID, "black", player2.ID)

		gm.notifyMatch(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
		gm.notifyMatch(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
	}
}

// notifyMatch must be called with gm.mu held.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		gm.logger.Warn("matched player has no channel", "player", playerID, "game", event.GameID)
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		gm.logger.Error("failed to marshal match event", "err", err)
		return
	}
	select {
	case ch <- string(payload):
	default:
		gm.logger.Warn("failed to send match event", "player", playerID)
	}
	delete(gm.matchingChannels, playerID)
	close(ch)
}

func (gm *GameManager) newGame(gameID, fen string) (*model.Game, error) {
	var match *chess.Match
	var err error
	if fen == "" {
		match, err = chess.NewStandardMatch("White", "Black", gm.opts)
	} else {
		match, err = position.FromFEN(fen, gm.opts)
	}
	if err != nil {
		return nil, err
	}
	return model.NewGame(gameID, match, gm.logger)
}

// CreateGame registers a new game, from the standard setup or from fen when
// it is not empty.
func (gm *GameManager) CreateGame(gameID, fen string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return fmt.Errorf("create %s: %w", gameID, ErrGameExists)
	}

	game, err := gm.newGame(gameID, fen)
	if err != nil {
		return err
	}
	gm.games[gameID] = game
	gm.logger.Info("game created", "game", gameID, "fen", fen != "")
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrGameNotFound)
	}

	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.PlayerColor, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	if err := gm.queue.AddPlayer(model.Player{ID: playerID}); err != nil {
		return err
	}
	gm.logger.Debug("player queued", "player", playerID)
	return nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) LegalMoves(gameID string, from model.Position) ([]model.Position, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMoves(from)
}

// MakeMove plays the move and records the result once the game is over.
func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) (model.Ply, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.Ply{}, err
	}

	ply, err := game.MakeMove(playerID, move)
	if err != nil {
		return model.Ply{}, err
	}

	if outcome, over := game.Outcome(); over {
		gm.recordResult(gameID, outcome)
	}
	return ply, nil
}

func (gm *GameManager) recordResult(gameID string, outcome model.Outcome) {
	gm.logger.Info("game over", "game", gameID, "status", outcome.Status, "winner", outcome.Winner)
	if gm.store == nil {
		return
	}
	err := gm.store.RecordResult(storage.Result{
		GameID:     gameID,
		Outcome:    outcome.Status,
		Winner:     string(outcome.Winner),
		WhiteScore: outcome.WhiteScore,
		BlackScore: outcome.BlackScore,
		Plies:      outcome.Plies,
	})
	if err != nil {
		gm.logger.Error("failed to record result", "game", gameID, "err", err)
	}
}

func (gm *GameManager) Stats() (*storage.Stats, error) {
	if gm.store == nil {
		return storage.NewStats(), nil
	}
	return gm.store.LoadStats()
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Connection) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Connection) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
