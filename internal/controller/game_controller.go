package controller

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/chessrules/internal/chess"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/position"
	"github.com/benbeisheim/chessrules/internal/service"
)

type GameController struct {
	gameService *service.GameService
	logger      *log.Logger
}

func NewGameController(gameService *service.GameService, logger *log.Logger) *GameController {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &GameController{gameService: gameService, logger: logger}
}

type createGameRequest struct {
	FEN string `json:"fen"`
}

// statusFor maps a service error onto the HTTP status it is reported with.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound), errors.Is(err, chess.ErrNoPiece):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotSeated), errors.Is(err, model.ErrNotYourPiece),
		errors.Is(err, model.ErrNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameFull), errors.Is(err, model.ErrGameOver),
		errors.Is(err, model.ErrAlreadyQueued), errors.Is(err, chess.ErrNotYourTurn):
		return fiber.StatusConflict
	case errors.Is(err, position.ErrInvalidFEN), errors.Is(err, chess.ErrIllegalMove),
		errors.Is(err, chess.ErrOutOfBounds):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func (gc *GameController) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		gc.logger.Error("request failed", "path", c.Path(), "err", err)
	} else {
		gc.logger.Debug("request rejected", "path", c.Path(), "status", status, "err", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// CreateGame starts a game from the standard setup, or from the optional
// "fen" field of the body.
func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	gameID, err := gc.gameService.CreateGame(req.FEN)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(gameState)
}

// LegalMoves lists the targets of the piece on ?x=&y=.
func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	from := model.Position{X: c.QueryInt("x", -1), Y: c.QueryInt("y", -1)}

	moves, err := gc.gameService.LegalMoves(gameID, from)
	if err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(model.LegalMovesResponse{From: from, Moves: moves})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var move model.WSMove
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move",
		})
	}

	ply, err := gc.gameService.HandleMove(gameID, playerID, move)
	if err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(ply)
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (gc *GameController) Stats(c *fiber.Ctx) error {
	stats, err := gc.gameService.Stats()
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(stats)
}
