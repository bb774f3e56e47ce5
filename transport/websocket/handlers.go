package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	var playerID string
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.uGame.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get", "player", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new player")
	}

	that.bindConnection(player.ID, conn)

	payloadResp := Payload{
		Player: player,
	}

	if player.GameID != "" {
		game, err := that.uGame.GetGameByPlayerID(ctx, player.ID)
		if err != nil {
			log.Warn("failed to get the game of the connected player", "gameID", player.GameID, "error", err)
		} else {
			payloadResp.Game = game.State()
		}
	}

	if err = conn.send(msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

// handleNewGame - starts over: the current game of the player is dropped.
func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	that.bindConnection(payloadReq.Player.ID, conn)

	game, err := that.uGame.NewGame(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to create game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new game")
	}

	if err = conn.send(msg.Action, Payload{Game: game.State()}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("new game started", "gameID", game.ID)

	return nil
}

func (that *Server) handleGameState(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleGameState")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	that.bindConnection(payloadReq.Player.ID, conn)

	game, err := that.uGame.GetOrCreateGame(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to get game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to get the game")
	}

	return conn.send(msg.Action, Payload{Game: game.State()})
}

// handleGameTurn - the resulting board is pushed by Notify, only rejected turns are answered here.
func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	if payloadReq.Cell == nil {
		log.Error("Cell is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Cell is required")
	}

	that.bindConnection(payloadReq.Player.ID, conn)

	log = log.With("playerID", payloadReq.Player.ID, "cell", *payloadReq.Cell)

	_, err = that.uGame.MakeTurn(ctx, payloadReq.Player.ID, *payloadReq.Cell)
	if err != nil {
		log.Warn("turn rejected", "error", err)
		return that.sendErrorResponse(conn, msg.Action, turnErrorMessage(err))
	}

	log.Info("Player made a turn")

	return nil
}

func turnErrorMessage(err error) string {
	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		return apperror.ErrGameFinished.Error()
	case errors.Is(err, apperror.ErrNotYourTurn):
		return apperror.ErrNotYourTurn.Error()
	case errors.Is(err, apperror.ErrCellOccupied):
		return apperror.ErrCellOccupied.Error()
	case errors.Is(err, apperror.ErrInvalidCell):
		return apperror.ErrInvalidCell.Error()
	case errors.Is(err, apperror.ErrNoActiveGame):
		return apperror.ErrNoActiveGame.Error()
	default:
		return "failed to make turn"
	}
}

func decodePayload(msg *Message) (Payload, error) {
	var payload Payload

	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}

func (that *Server) sendErrorResponse(conn *connection, action, errorMsg string) error {
	if err := conn.send(action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
