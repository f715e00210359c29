package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleNewGame")

	game, err := that.gameUseCase.CreateGame(ctx)
	if err != nil {
		log.Error("failed to create game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new game")
	}

	return that.sendGame(conn, msg.Action, game)
}

func (that *Server) handleGameState(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payloadReq, err := that.readPayload(msg, conn)
	if payloadReq == nil {
		return err
	}

	game, err := that.gameUseCase.GetGame(ctx, payloadReq.GameID)
	if err != nil {
		return that.sendUseCaseError(conn, msg.Action, err)
	}

	return that.sendGame(conn, msg.Action, game)
}

func (that *Server) handlePlay(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payloadReq, err := that.readPayload(msg, conn)
	if payloadReq == nil {
		return err
	}

	if payloadReq.Cell == nil {
		return that.sendErrorResponse(conn, msg.Action, "Cell is required")
	}

	game, err := that.gameUseCase.Play(ctx, payloadReq.GameID, *payloadReq.Cell)
	if err != nil {
		return that.sendUseCaseError(conn, msg.Action, err)
	}

	return that.sendGame(conn, msg.Action, game)
}

func (that *Server) handleJump(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payloadReq, err := that.readPayload(msg, conn)
	if payloadReq == nil {
		return err
	}

	if payloadReq.Move == nil {
		return that.sendErrorResponse(conn, msg.Action, "Move is required")
	}

	game, err := that.gameUseCase.JumpTo(ctx, payloadReq.GameID, *payloadReq.Move)
	if err != nil {
		return that.sendUseCaseError(conn, msg.Action, err)
	}

	return that.sendGame(conn, msg.Action, game)
}

// readPayload - decodes the request payload. On a bad payload it answers the client and returns nil.
func (that *Server) readPayload(msg *Message, conn *websocket.Conn) (*RequestPayload, error) {
	var payloadReq RequestPayload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return nil, that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	if payloadReq.GameID == "" {
		return nil, that.sendErrorResponse(conn, msg.Action, "Game ID is required")
	}

	return &payloadReq, nil
}

func (that *Server) sendUseCaseError(conn *websocket.Conn, action string, err error) error {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound),
		errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidMove):
		return that.sendErrorResponse(conn, action, err.Error())
	default:
		that.logger.Error("request failed", "action", action, "error", err)
		return that.sendErrorResponse(conn, action, "Internal Server Error")
	}
}

func (that *Server) sendGame(conn *websocket.Conn, action string, game *entity.Game) error {
	return that.sendMessage(conn, action, ResponsePayload{Game: game.State()})
}

func (that *Server) sendErrorResponse(conn *websocket.Conn, action, errorMsg string) error {
	if err := that.sendMessage(conn, action, ResponsePayload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
