package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/homegame/api/internal/database"
	"github.com/homegame/api/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user account
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		CREATE user CONTENT {
			username: $username,
			email: $email,
			password: $password,
			login_attempts: 0,
			lock_until: 0,
			games: [],
			venmo_username: $venmo_username,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"username":       user.Username,
		"email":          user.Email,
		"password":       user.Password,
		"venmo_username": user.VenmoUsername,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: user already exists", database.ErrDuplicate)
		}
		return err
	}

	created := &model.User{}
	if err := decodeRecord(result, created); err != nil {
		return err
	}

	user.ID = created.ID
	user.CreatedOn = created.CreatedOn
	user.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a user by record ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	user := &model.User{}
	if err := decodeRecord(result, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	user := &model.User{}
	if err := decodeRecord(result, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT * FROM user WHERE username = $username LIMIT 1`
	vars := map[string]interface{}{"username": username}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	user := &model.User{}
	if err := decodeRecord(result, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByIDs retrieves multiple users. Missing IDs are skipped rather
// than failing the whole lookup.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	users := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		user, err := r.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// UpdateEmail changes a user's email address
func (r *UserRepository) UpdateEmail(ctx context.Context, userID, email string) error {
	query := `UPDATE type::record($id) SET email = $email, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":    userID,
		"email": email,
	}

	return r.db.Execute(ctx, query, vars)
}

// UpdateUsername changes a user's username
func (r *UserRepository) UpdateUsername(ctx context.Context, userID, username string) error {
	query := `UPDATE type::record($id) SET username = $username, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":       userID,
		"username": username,
	}

	return r.db.Execute(ctx, query, vars)
}

// UpdatePassword replaces a user's bcrypt hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID, hash string) error {
	query := `UPDATE type::record($id) SET password = $password, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":       userID,
		"password": hash,
	}

	return r.db.Execute(ctx, query, vars)
}

// SetLoginState records the lockout counters after a login attempt.
func (r *UserRepository) SetLoginState(ctx context.Context, userID string, attempts int, lockUntil int64) error {
	query := `
		UPDATE type::record($id) SET
			login_attempts = $attempts,
			lock_until = $lock_until,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":         userID,
		"attempts":   attempts,
		"lock_until": lockUntil,
	}

	return r.db.Execute(ctx, query, vars)
}

// AddGame links a game onto the user's game list
func (r *UserRepository) AddGame(ctx context.Context, userID, gameID string) error {
	query := `UPDATE type::record($id) SET games += $game, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":   userID,
		"game": gameID,
	}

	return r.db.Execute(ctx, query, vars)
}

// RemoveGame unlinks a game from the user's game list
func (r *UserRepository) RemoveGame(ctx context.Context, userID, gameID string) error {
	query := `UPDATE type::record($id) SET games -= $game, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":   userID,
		"game": gameID,
	}

	return r.db.Execute(ctx, query, vars)
}

// Delete removes the user record
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}
