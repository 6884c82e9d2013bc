package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/homegame/api/internal/model"
	"github.com/homegame/api/pkg/signer"
)

// SessionLoader loads a server-side session record by ID
type SessionLoader interface {
	Load(ctx context.Context, sessionID string) (*model.HTTPSession, error)
}

// Session returns a middleware that requires a valid session cookie.
// The cookie carries the signed session ID; the session record itself
// lives in the database so logout and expiry are server-authoritative.
func Session(cookieName string, s *signer.Signer, loader SessionLoader) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil {
				writeExpired(w)
				return
			}

			sessionID, err := s.Verify(cookie.Value)
			if err != nil {
				writeExpired(w)
				return
			}

			sess, err := loader.Load(r.Context(), sessionID)
			if err != nil || sess.Expired(time.Now()) {
				writeExpired(w)
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, sess)
			ctx = context.WithValue(ctx, SessionUserKey, sess.User)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeExpired(w http.ResponseWriter) {
	writeEnvelope(w, http.StatusUnauthorized,
		model.NamedError("NoUserSession", "Your session has expired"))
}

// GetSession extracts the session record from context
func GetSession(ctx context.Context) *model.HTTPSession {
	if sess, ok := ctx.Value(SessionKey).(*model.HTTPSession); ok {
		return sess
	}
	return nil
}

// GetSessionUser extracts the authenticated user snapshot from context
func GetSessionUser(ctx context.Context) model.SessionUser {
	if user, ok := ctx.Value(SessionUserKey).(model.SessionUser); ok {
		return user
	}
	return model.SessionUser{}
}

// GetUserID extracts the authenticated user's ID from context
func GetUserID(ctx context.Context) string {
	return GetSessionUser(ctx).ID
}
