package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/homegame/api/internal/middleware"
	"github.com/homegame/api/internal/model"
	"github.com/homegame/api/internal/service"
)

// AuthHandler handles signup, login, and logout
type AuthHandler struct {
	users        *service.UserService
	httpSessions *service.HTTPSessionService
	cookieName   string
	secureCookie bool
}

// AuthHandlerConfig holds configuration for the auth handler
type AuthHandlerConfig struct {
	Users        *service.UserService
	HTTPSessions *service.HTTPSessionService
	CookieName   string
	SecureCookie bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cfg AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		users:        cfg.Users,
		httpSessions: cfg.HTTPSessions,
		cookieName:   cfg.CookieName,
		secureCookie: cfg.SecureCookie,
	}
}

// Signup handles POST /api/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.Password != req.PasswordConf {
		WriteErrors(w, http.StatusUnprocessableEntity,
			model.ValidationError("password_conf", "Password does not match confirmation", ""))
		return
	}

	if err := h.users.Signup(r.Context(), &req); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteOK(w, http.StatusCreated, nil)
}

// Login handles POST /api/login: authenticate, open a server-side
// session, and set the signed cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			WriteErrors(w, http.StatusUnauthorized,
				model.ValidationError("email", "Sorry, we couldn't find an account with that email", req.Email))
		case errors.Is(err, service.ErrAccountLocked):
			WriteErrors(w, http.StatusUnauthorized, model.FieldError{
				Msg: fmt.Sprintf("Sorry, maximum login attempts reached, try again in %d minute(s)",
					h.users.LockMinutes()),
				Location: "body",
			})
		default:
			writeServiceError(w, err)
		}
		return
	}

	_, cookieValue, err := h.httpSessions.Create(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.setSessionCookie(w, cookieValue)
	WriteOK(w, http.StatusOK, map[string]interface{}{"user": user})
}

// Me handles GET /api/login. Login state is an answer here, never an
// error, so the route sits outside the session middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.cookieName)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]interface{}{"loggedIn": false, "user": nil})
		return
	}

	sess, err := h.httpSessions.Resolve(r.Context(), cookie.Value)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]interface{}{"loggedIn": false, "user": nil})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"loggedIn": true, "user": sess.User})
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.GetSession(r.Context()); sess != nil {
		if err := h.httpSessions.Destroy(r.Context(), sess.ID); err != nil {
			writeServiceError(w, err)
			return
		}
	}

	h.clearSessionCookie(w)
	WriteOK(w, http.StatusOK, nil)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(h.httpSessions.Lifetime().Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
