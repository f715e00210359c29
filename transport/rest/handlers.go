package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

// maxBodyBytes - play and jump bodies hold a single small integer.
const maxBodyBytes = 1 << 10

var (
	errInvalidBody  = errors.New("invalid request body")
	errBodyTooLarge = errors.New("request body too large")
)

type playRequest struct {
	Cell *int `json:"cell"`
}

type jumpRequest struct {
	Move *int `json:"move"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.CreateGame(r.Context())
	if err != nil {
		that.writeError(w, "handleCreateGame", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game.State())
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.GetGame(r.Context(), mux.Vars(r)["gameID"])
	if err != nil {
		that.writeError(w, "handleGetGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game.State())
}

func (that *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameUseCase.DeleteGame(r.Context(), mux.Vars(r)["gameID"]); err != nil {
		that.writeError(w, "handleDeleteGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if err := decodeBody(w, r, &req); err != nil {
		that.writeError(w, "handlePlay", err)
		return
	}

	if req.Cell == nil {
		that.writeError(w, "handlePlay", errInvalidBody)
		return
	}

	game, err := that.gameUseCase.Play(r.Context(), mux.Vars(r)["gameID"], *req.Cell)
	if err != nil {
		that.writeError(w, "handlePlay", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game.State())
}

func (that *Server) handleJump(w http.ResponseWriter, r *http.Request) {
	var req jumpRequest
	if err := decodeBody(w, r, &req); err != nil {
		that.writeError(w, "handleJump", err)
		return
	}

	if req.Move == nil {
		that.writeError(w, "handleJump", errInvalidBody)
		return
	}

	game, err := that.gameUseCase.JumpTo(r.Context(), mux.Vars(r)["gameID"], *req.Move)
	if err != nil {
		that.writeError(w, "handleJump", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game.State())
}

// decodeBody - reads at most maxBodyBytes of JSON into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return errBodyTooLarge
		}

		return errInvalidBody
	}

	return nil
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, state *entity.GameState) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(state); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *Server) writeError(w http.ResponseWriter, method string, err error) {
	status := http.StatusInternalServerError
	message := "Internal Server Error"

	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		status = http.StatusNotFound
		message = apperror.ErrGameNotFound.Error()
	case errors.Is(err, apperror.ErrInvalidCell), errors.Is(err, apperror.ErrInvalidMove), errors.Is(err, errInvalidBody):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, errBodyTooLarge):
		status = http.StatusRequestEntityTooLarge
		message = err.Error()
	default:
		that.logger.Error("request failed", "method", method, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if encodeErr := json.NewEncoder(w).Encode(errorResponse{Error: message}); encodeErr != nil {
		that.logger.Error("failed to write response", "error", encodeErr)
	}
}
