package handler

import (
	"net/http"

	"github.com/homegame/api/internal/middleware"
	"github.com/homegame/api/internal/model"
	"github.com/homegame/api/internal/service"
)

// SessionHandler handles session scheduling, RSVPs, and cashout
type SessionHandler struct {
	sessions *service.SessionService
	cashouts *service.CashoutService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *service.SessionService, cashouts *service.CashoutService) *SessionHandler {
	return &SessionHandler{sessions: sessions, cashouts: cashouts}
}

// Create handles POST /api/create_session
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.SessionFormRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.sessions.CreateSession(r.Context(), middleware.GetSessionUser(r.Context()), &req); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusCreated, map[string]interface{}{"gameId": req.GameID})
}

// Edit handles POST /api/edit_session
func (h *SessionHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req model.SessionFormRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.sessions.EditSession(r.Context(), middleware.GetSessionUser(r.Context()), &req); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, map[string]interface{}{"gameId": req.GameID})
}

// Delete handles POST /api/delete_session
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req model.GameIDRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.sessions.DeleteSession(r.Context(), middleware.GetSessionUser(r.Context()), req.GameID); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, nil)
}

// SendRSVPInvite handles POST /api/send_rsvp_invite
func (h *SessionHandler) SendRSVPInvite(w http.ResponseWriter, r *http.Request) {
	var req model.RSVPInviteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.sessions.SendRSVPInvite(r.Context(), middleware.GetSessionUser(r.Context()), &req); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, nil)
}

// AcceptRSVP handles POST /api/member_accept_rsvp and POST /api/join_session
func (h *SessionHandler) AcceptRSVP(w http.ResponseWriter, r *http.Request) {
	var req model.GameIDRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.sessions.JoinSession(r.Context(), middleware.GetSessionUser(r.Context()), req.GameID); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, nil)
}

// DeclineRSVP handles POST /api/member_decline_rsvp
func (h *SessionHandler) DeclineRSVP(w http.ResponseWriter, r *http.Request) {
	var req model.GameIDRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.sessions.DeclineRSVP(r.Context(), middleware.GetSessionUser(r.Context()), req.GameID); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, nil)
}

// Leave handles POST /api/leave_session
func (h *SessionHandler) Leave(w http.ResponseWriter, r *http.Request) {
	var req model.GameIDRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.sessions.LeaveSession(r.Context(), middleware.GetSessionUser(r.Context()), req.GameID); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, nil)
}

// RemoveMember handles POST /api/remove_session_member
func (h *SessionHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	var req model.MemberTargetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.sessions.RemoveSessionMember(r.Context(), middleware.GetSessionUser(r.Context()), &req); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, nil)
}

// SubmitCashout handles POST /api/submit_cashout
func (h *SessionHandler) SubmitCashout(w http.ResponseWriter, r *http.Request) {
	var req model.CashoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.cashouts.SubmitCashout(r.Context(), middleware.GetSessionUser(r.Context()), &req); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, nil)
}
