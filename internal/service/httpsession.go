package service

import (
	"context"
	"errors"
	"time"

	"github.com/homegame/api/internal/database"
	"github.com/homegame/api/internal/model"
	"github.com/homegame/api/pkg/signer"
)

// HTTPSessionRepository defines the interface for HTTP session storage
type HTTPSessionRepository interface {
	Create(ctx context.Context, sess *model.HTTPSession) error
	GetByID(ctx context.Context, id string) (*model.HTTPSession, error)
	UpdateUser(ctx context.Context, user model.SessionUser) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context, now time.Time) error
}

// HTTPSessionService manages server-side login sessions and the signed
// cookie values that reference them.
type HTTPSessionService struct {
	sessions HTTPSessionRepository
	signer   *signer.Signer
	lifetime time.Duration
}

// HTTPSessionServiceConfig holds configuration for the session service
type HTTPSessionServiceConfig struct {
	Sessions HTTPSessionRepository
	Signer   *signer.Signer
	Lifetime time.Duration
}

// NewHTTPSessionService creates a new HTTP session service
func NewHTTPSessionService(cfg HTTPSessionServiceConfig) *HTTPSessionService {
	return &HTTPSessionService{
		sessions: cfg.Sessions,
		signer:   cfg.Signer,
		lifetime: cfg.Lifetime,
	}
}

// Lifetime returns the configured session lifetime, for cookie expiry
func (s *HTTPSessionService) Lifetime() time.Duration {
	return s.lifetime
}

// Create opens a session for a logged-in user and returns the record
// along with the signed cookie value.
func (s *HTTPSessionService) Create(ctx context.Context, user *model.User) (*model.HTTPSession, string, error) {
	sess := &model.HTTPSession{
		User: model.SessionUser{
			ID:            user.ID,
			Username:      user.Username,
			Email:         user.Email,
			VenmoUsername: user.VenmoUsername,
		},
		ExpiresAt: time.Now().Add(s.lifetime),
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, "", err
	}

	return sess, s.signer.Sign(sess.ID), nil
}

// Load retrieves a session record by ID. Satisfies the middleware's
// session loader interface.
func (s *HTTPSessionService) Load(ctx context.Context, sessionID string) (*model.HTTPSession, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sess, nil
}

// Resolve verifies a signed cookie value and loads the live session it
// references. Tampered values, unknown sessions, and expired sessions
// all come back as ErrUserNotFound, for endpoints where a missing login
// is an answer rather than an error.
func (s *HTTPSessionService) Resolve(ctx context.Context, signedValue string) (*model.HTTPSession, error) {
	sessionID, err := s.signer.Verify(signedValue)
	if err != nil {
		return nil, ErrUserNotFound
	}
	sess, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Expired(time.Now()) {
		return nil, ErrUserNotFound
	}
	return sess, nil
}

// Destroy removes a session record (logout)
func (s *HTTPSessionService) Destroy(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// PurgeExpired drops sessions past their lifetime
func (s *HTTPSessionService) PurgeExpired(ctx context.Context) error {
	return s.sessions.DeleteExpired(ctx, time.Now())
}
