package repository

import (
	"context"
	"time"

	"github.com/homegame/api/internal/database"
	"github.com/homegame/api/internal/model"
)

// HTTPSessionRepository handles server-side HTTP session records
type HTTPSessionRepository struct {
	db database.Database
}

// NewHTTPSessionRepository creates a new HTTP session repository
func NewHTTPSessionRepository(db database.Database) *HTTPSessionRepository {
	return &HTTPSessionRepository{db: db}
}

// Create stores a new session record
func (r *HTTPSessionRepository) Create(ctx context.Context, sess *model.HTTPSession) error {
	query := `
		CREATE http_session CONTENT {
			user: $user,
			expires_at: $expires_at,
			created_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"user":       sess.User,
		"expires_at": sess.ExpiresAt.Format(time.RFC3339),
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return err
	}

	created := &model.HTTPSession{}
	if err := decodeRecord(result, created); err != nil {
		return err
	}

	sess.ID = created.ID
	sess.CreatedOn = created.CreatedOn
	return nil
}

// GetByID retrieves a session record
func (r *HTTPSessionRepository) GetByID(ctx context.Context, id string) (*model.HTTPSession, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	sess := &model.HTTPSession{}
	if err := decodeRecord(result, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// UpdateUser refreshes the user snapshot inside every live session for
// that user, so profile changes show up without re-login.
func (r *HTTPSessionRepository) UpdateUser(ctx context.Context, user model.SessionUser) error {
	query := `UPDATE http_session SET user = $user WHERE user.id = $user_id`
	vars := map[string]interface{}{
		"user":    user,
		"user_id": user.ID,
	}

	return r.db.Execute(ctx, query, vars)
}

// Delete removes one session record (logout)
func (r *HTTPSessionRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}

// DeleteByUser removes every session for a user
func (r *HTTPSessionRepository) DeleteByUser(ctx context.Context, userID string) error {
	query := `DELETE http_session WHERE user.id = $user_id`
	vars := map[string]interface{}{"user_id": userID}

	return r.db.Execute(ctx, query, vars)
}

// DeleteExpired removes sessions past their lifetime
func (r *HTTPSessionRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	query := `DELETE http_session WHERE expires_at < $now`
	vars := map[string]interface{}{"now": now.Format(time.RFC3339)}

	return r.db.Execute(ctx, query, vars)
}
