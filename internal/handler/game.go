package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/homegame/api/internal/middleware"
	"github.com/homegame/api/internal/model"
	"github.com/homegame/api/internal/service"
)

// GameHandler handles game lifecycle and membership endpoints
type GameHandler struct {
	games *service.GameService
}

// NewGameHandler creates a new game handler
func NewGameHandler(games *service.GameService) *GameHandler {
	return &GameHandler{games: games}
}

// List handles GET /api/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.ListGames(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, map[string]interface{}{"games": games})
}

// Details handles GET /api/games/{gameId}
func (h *GameHandler) Details(w http.ResponseWriter, r *http.Request) {
	details, err := h.games.GameDetails(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("gameId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, map[string]interface{}{
		"game":    details.Game,
		"members": details.Members,
		"session": details.Session,
		"isAdmin": details.IsAdmin,
	})
}

// Posts handles GET /api/posts/{gameId}
func (h *GameHandler) Posts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.games.GamePosts(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("gameId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, map[string]interface{}{"posts": posts})
}

// Create handles POST /api/create_game
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.GameFormRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	game, err := h.games.CreateGame(r.Context(), middleware.GetSessionUser(r.Context()), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusCreated, map[string]interface{}{"gameId": game.ID})
}

// Edit handles POST /api/edit_game
func (h *GameHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req model.GameFormRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	game, err := h.games.EditGame(r.Context(), middleware.GetSessionUser(r.Context()), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, map[string]interface{}{"gameId": game.ID})
}

// Delete handles POST /api/delete_game
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req model.GameIDRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.games.DeleteGame(r.Context(), middleware.GetSessionUser(r.Context()), req.GameID); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, nil)
}

// AddMember handles POST /api/add_member
func (h *GameHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	var req model.AddMemberRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.games.AddMember(r.Context(), middleware.GetSessionUser(r.Context()), &req); err != nil {
		if errors.Is(err, service.ErrExistingInvite) {
			WriteErrors(w, http.StatusConflict, model.NamedError("ExistingInvite",
				fmt.Sprintf("%s already has an invitation to this game", req.Username)))
			return
		}
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, nil)
}

// Join handles POST /api/join_game
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req model.GameIDRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.games.JoinGame(r.Context(), middleware.GetSessionUser(r.Context()), req.GameID); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, nil)
}

// Leave handles POST /api/leave_game
func (h *GameHandler) Leave(w http.ResponseWriter, r *http.Request) {
	var req model.GameIDRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.games.LeaveGame(r.Context(), middleware.GetSessionUser(r.Context()), req.GameID); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, nil)
}

// KickMember handles POST /api/kick_member
func (h *GameHandler) KickMember(w http.ResponseWriter, r *http.Request) {
	var req model.MemberTargetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.games.KickMember(r.Context(), middleware.GetSessionUser(r.Context()), &req); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, nil)
}

// UpdateProfit handles POST /api/update_profit
func (h *GameHandler) UpdateProfit(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProfitRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.games.UpdateProfit(r.Context(), middleware.GetSessionUser(r.Context()), &req); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, nil)
}
