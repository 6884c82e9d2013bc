package handler

import (
	"net/http"

	"github.com/homegame/api/internal/middleware"
	"github.com/homegame/api/internal/model"
	"github.com/homegame/api/internal/service"
)

// BoardHandler handles the message board endpoints
type BoardHandler struct {
	board *service.BoardService
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(board *service.BoardService) *BoardHandler {
	return &BoardHandler{board: board}
}

// NewMessage handles POST /api/new_message
func (h *BoardHandler) NewMessage(w http.ResponseWriter, r *http.Request) {
	var req model.NewMessageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	post, err := h.board.NewMessage(r.Context(), middleware.GetSessionUser(r.Context()), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusCreated, map[string]interface{}{"post": post})
}

// DeleteMessage handles POST /api/delete_message
func (h *BoardHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	var req model.DeleteMessageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.board.DeleteMessage(r.Context(), middleware.GetSessionUser(r.Context()), &req); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, nil)
}
