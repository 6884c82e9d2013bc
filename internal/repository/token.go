package repository

import (
	"context"
	"time"

	"github.com/homegame/api/internal/database"
	"github.com/homegame/api/internal/model"
)

// TokenRepository handles password-reset token data access
type TokenRepository struct {
	db database.Database
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db database.Database) *TokenRepository {
	return &TokenRepository{db: db}
}

// Create stores a reset token for a user, replacing any earlier one so
// only the most recent emailed link works.
func (r *TokenRepository) Create(ctx context.Context, userID, token string, expiresAt time.Time) (*model.Token, error) {
	batch := database.NewAtomicBatch()
	batch.Add(`DELETE token WHERE user = $user`, map[string]interface{}{
		"user": userID,
	})
	batch.Add(`
		CREATE token CONTENT {
			user: $user,
			token: $token,
			expires_at: $expires_at,
			created_on: time::now()
		}
	`, map[string]interface{}{
		"user":       userID,
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})

	if err := batch.Execute(ctx, r.db); err != nil {
		return nil, err
	}

	return &model.Token{
		User:      userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// GetByToken retrieves a reset token by its value
func (r *TokenRepository) GetByToken(ctx context.Context, token string) (*model.Token, error) {
	query := `SELECT * FROM token WHERE token = $token LIMIT 1`
	vars := map[string]interface{}{"token": token}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	t := &model.Token{}
	if err := decodeRecord(result, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteByUser removes all reset tokens for a user
func (r *TokenRepository) DeleteByUser(ctx context.Context, userID string) error {
	query := `DELETE token WHERE user = $user`
	vars := map[string]interface{}{"user": userID}

	return r.db.Execute(ctx, query, vars)
}

// DeleteExpired removes tokens past their expiry
func (r *TokenRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	query := `DELETE token WHERE expires_at < $now`
	vars := map[string]interface{}{"now": now.Format(time.RFC3339)}

	return r.db.Execute(ctx, query, vars)
}
