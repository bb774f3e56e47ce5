package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

type boardRequest struct {
	Board []string `json:"board"`
	Side  string   `json:"side,omitempty"`
}

type evaluateResponse struct {
	Status string `json:"status"`
	Winner string `json:"winner"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// analysisHandler answers stateless questions about a board, no game session is involved.
type analysisHandler struct {
	logger *slog.Logger
}

func newAnalysisHandler(logger *slog.Logger) *analysisHandler {
	return &analysisHandler{
		logger: logger.With("component", "analysis"),
	}
}

// BestMove - the move minimax picks for side, O when side is omitted.
func (that *analysisHandler) BestMove(ctx echo.Context) error {
	log := that.logger.With("method", "BestMove")

	req, board, err := bindBoard(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	side := entity.ComputerMark
	if req.Side != "" {
		side = entity.Mark(req.Side)
	}

	move, err := tictactoe.BestMove(&board, side)
	switch {
	case errors.Is(err, apperror.ErrInvalidMark):
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, apperror.ErrTerminalBoard):
		return ctx.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case err != nil:
		log.Error("failed to search best move", "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}

	log.Debug("best move found", "side", side, "index", move.Index, "score", move.Score)

	return ctx.JSON(http.StatusOK, move)
}

func (that *analysisHandler) Evaluate(ctx echo.Context) error {
	_, board, err := bindBoard(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	outcome := board.Evaluate()

	return ctx.JSON(http.StatusOK, evaluateResponse{
		Status: outcome.Status(),
		Winner: outcome.WinnerLabel(),
	})
}

func bindBoard(ctx echo.Context) (boardRequest, entity.Board, error) {
	var req boardRequest

	if err := ctx.Bind(&req); err != nil {
		return req, entity.Board{}, errors.New("malformed request body")
	}

	board, err := entity.ParseBoard(req.Board)
	if err != nil {
		return req, entity.Board{}, err
	}

	return req, board, nil
}
