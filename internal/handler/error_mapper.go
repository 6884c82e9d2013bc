package handler

import (
	"errors"
	"net/http"

	"github.com/homegame/api/internal/model"
	"github.com/homegame/api/internal/service"
)

// MapServiceError converts a service error to an HTTP status and the
// wire-level field errors for the envelope. Handlers intercept errors
// whose message depends on request data before calling this.
func MapServiceError(err error) (int, []model.FieldError) {
	switch {
	// ===== Account Errors =====
	case errors.Is(err, service.ErrEmailTaken) && errors.Is(err, service.ErrUsernameTaken):
		return http.StatusConflict, []model.FieldError{
			model.NamedError("email-conflict", "An account with this email already exists"),
			model.NamedError("username-conflict", "An account with this username already exists"),
		}
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, []model.FieldError{
			model.NamedError("email-conflict", "An account with this email already exists"),
		}
	case errors.Is(err, service.ErrUsernameTaken):
		return http.StatusConflict, []model.FieldError{
			model.NamedError("username-conflict", "An account with this username already exists"),
		}
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, []model.FieldError{
			model.NamedError("NoUser", "No account found with that username (usernames are case sensitive)"),
		}
	case errors.Is(err, service.ErrPasswordIncorrect):
		return http.StatusUnauthorized, []model.FieldError{
			model.NamedError("password", "Sorry, that password is incorrect"),
		}
	case errors.Is(err, service.ErrTokenInvalid):
		return http.StatusBadRequest, []model.FieldError{
			model.NamedError("tokenErro", "The URL token is invalid"),
		}

	// ===== Game Errors =====
	case errors.Is(err, service.ErrGameNotFound):
		return http.StatusNotFound, []model.FieldError{
			model.NamedError("NoGame", "That game no longer exists"),
		}
	case errors.Is(err, service.ErrNameConflict):
		return http.StatusConflict, []model.FieldError{
			model.NamedError("name-conflict", "You're already an admin for a game with that name"),
		}
	case errors.Is(err, service.ErrNotAdmin):
		return http.StatusForbidden, []model.FieldError{
			model.NamedError("NotAdmin", "Only the game admin can do that"),
		}
	case errors.Is(err, service.ErrNotMember):
		return http.StatusForbidden, []model.FieldError{
			model.NamedError("NotMember", "You are not a member of that game"),
		}
	case errors.Is(err, service.ErrSelfInvite):
		return http.StatusUnprocessableEntity, []model.FieldError{
			model.NamedError("SameUser", "You cannot invite yourself"),
		}
	case errors.Is(err, service.ErrExistingInvite):
		return http.StatusConflict, []model.FieldError{
			model.NamedError("ExistingInvite", "That member already has an invitation"),
		}
	case errors.Is(err, service.ErrNoInvite):
		return http.StatusForbidden, []model.FieldError{
			model.NamedError("NoInvite", "You do not have an invitation for that game"),
		}

	// ===== Session Errors =====
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound, []model.FieldError{
			model.NamedError("NoSession", "That session no longer exists"),
		}
	case errors.Is(err, service.ErrSessionExists):
		return http.StatusConflict, []model.FieldError{
			model.NamedError("session-exists", "This game already has a session in progress"),
		}
	case errors.Is(err, service.ErrNoSession):
		return http.StatusNotFound, []model.FieldError{
			model.NamedError("NoSession", "This game has no session in progress"),
		}
	case errors.Is(err, service.ErrNotJoined):
		return http.StatusForbidden, []model.FieldError{
			model.NamedError("NotJoined", "You have not joined the upcoming session"),
		}

	// ===== Board Errors =====
	case errors.Is(err, service.ErrPostNotFound):
		return http.StatusNotFound, []model.FieldError{
			model.NamedError("NoPost", "That post no longer exists"),
		}
	case errors.Is(err, service.ErrTooManyPosts):
		return http.StatusUnprocessableEntity, []model.FieldError{
			model.NamedError("TooManyMesssages", "Posts are capped at two per member"),
		}
	case errors.Is(err, service.ErrNotAdminOrAuthor):
		return http.StatusForbidden, []model.FieldError{
			model.NamedError("NotAdminOrAuthor", "You cannot delete a post unless you are the author or the game admin"),
		}

	// ===== Notification Errors =====
	case errors.Is(err, service.ErrNotificationNotFound):
		return http.StatusNotFound, []model.FieldError{
			model.NamedError("NoNotification", "That notification no longer exists"),
		}
	case errors.Is(err, service.ErrNotRecipient):
		return http.StatusForbidden, []model.FieldError{
			model.NamedError("NotRecipient", "You cannot delete another member's notification"),
		}
	}

	// Infrastructure failures never leak detail
	return http.StatusInternalServerError, []model.FieldError{model.InternalError()}
}

// writeServiceError maps and writes a service error in one step
func writeServiceError(w http.ResponseWriter, err error) {
	status, errs := MapServiceError(err)
	WriteErrors(w, status, errs...)
}
