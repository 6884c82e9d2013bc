package handler

import (
	"errors"
	"net/http"

	"github.com/homegame/api/internal/middleware"
	"github.com/homegame/api/internal/model"
	"github.com/homegame/api/internal/service"
)

// AccountHandler handles account-settings endpoints
type AccountHandler struct {
	users        *service.UserService
	httpSessions *service.HTTPSessionService
	cookieName   string
}

// AccountHandlerConfig holds configuration for the account handler
type AccountHandlerConfig struct {
	Users        *service.UserService
	HTTPSessions *service.HTTPSessionService
	CookieName   string
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(cfg AccountHandlerConfig) *AccountHandler {
	return &AccountHandler{
		users:        cfg.Users,
		httpSessions: cfg.HTTPSessions,
		cookieName:   cfg.CookieName,
	}
}

// PasswordCheck handles POST /api/password_check
func (h *AccountHandler) PasswordCheck(w http.ResponseWriter, r *http.Request) {
	var req model.PasswordCheckRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	match, err := h.users.PasswordCheck(r.Context(), middleware.GetUserID(r.Context()), req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, map[string]interface{}{"isMatch": match})
}

// ChangeEmail handles POST /api/change_email
func (h *AccountHandler) ChangeEmail(w http.ResponseWriter, r *http.Request) {
	var req model.ChangeEmailRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user := middleware.GetSessionUser(r.Context())
	if err := h.users.ChangeEmail(r.Context(), user, req.Email); err != nil {
		writeServiceError(w, err)
		return
	}

	user.Email = req.Email
	WriteOK(w, http.StatusOK, map[string]interface{}{"user": user})
}

// ChangeUsername handles POST /api/change_username
func (h *AccountHandler) ChangeUsername(w http.ResponseWriter, r *http.Request) {
	var req model.ChangeUsernameRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.users.ChangeUsername(r.Context(), middleware.GetSessionUser(r.Context()), req.Username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, map[string]interface{}{"user": updated})
}

// ChangePassword handles POST /api/change_password. The route accepts
// either a live session or an emailed reset token, so it sits outside
// the session middleware.
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req model.ChangePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if req.Token != "" {
		if err := h.users.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
			writeServiceError(w, err)
			return
		}
		WriteOK(w, http.StatusOK, nil)
		return
	}

	cookie, err := r.Cookie(h.cookieName)
	if err != nil {
		WriteErrors(w, http.StatusUnauthorized,
			model.NamedError("NoUserSession", "Your session has expired"))
		return
	}
	sess, err := h.httpSessions.Resolve(r.Context(), cookie.Value)
	if err != nil {
		WriteErrors(w, http.StatusUnauthorized,
			model.NamedError("NoUserSession", "Your session has expired"))
		return
	}

	if err := h.users.ChangePassword(r.Context(), sess.User.ID, req.Password); err != nil {
		writeServiceError(w, err)
		return
	}
	WriteOK(w, http.StatusOK, nil)
}

// VenmoUsername handles GET /api/venmo_username
func (h *AccountHandler) VenmoUsername(w http.ResponseWriter, r *http.Request) {
	venmo, err := h.users.VenmoUsername(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, map[string]interface{}{"venmoUsername": venmo})
}

// DeleteAccount handles POST /api/delete_account
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.users.DeleteAccount(r.Context(), middleware.GetSessionUser(r.Context())); err != nil {
		writeServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	WriteOK(w, http.StatusOK, nil)
}

// SendPasswordLink handles POST /api/send_password_link
func (h *AccountHandler) SendPasswordLink(w http.ResponseWriter, r *http.Request) {
	var req model.SendPasswordLinkRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.users.SendPasswordLink(r.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			WriteErrors(w, http.StatusNotFound,
				model.NamedError("NoUser", "The email provided is not associated with an account"))
			return
		}
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, nil)
}

// PasswordReset handles GET /api/password_reset/{token}: validate the
// emailed token and bounce the browser to the frontend reset form.
func (h *AccountHandler) PasswordReset(w http.ResponseWriter, r *http.Request) {
	target, err := h.users.ValidatePasswordLink(r.Context(), r.PathValue("token"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	http.Redirect(w, r, target, http.StatusFound)
}

// SubmitContactForm handles POST /api/submit_contact_form
func (h *AccountHandler) SubmitContactForm(w http.ResponseWriter, r *http.Request) {
	var req model.ContactFormRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.users.SubmitContactForm(r.Context(), &req); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusOK, nil)
}
