package repository

import (
	"context"

	"github.com/homegame/api/internal/database"
	"github.com/homegame/api/internal/model"
)

// SessionRepository handles poker session data access
type SessionRepository struct {
	db database.Database
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db database.Database) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create creates a new session for a game
func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	query := `
		CREATE session CONTENT {
			game: $game,
			date: $date,
			time: $time,
			address: $address,
			rsvp_map: $rsvp_map,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"game":     session.Game,
		"date":     session.Date,
		"time":     session.Time,
		"address":  session.Address,
		"rsvp_map": session.RSVPMap,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return err
	}

	created := &model.Session{}
	if err := decodeRecord(result, created); err != nil {
		return err
	}

	session.ID = created.ID
	session.CreatedOn = created.CreatedOn
	session.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a session by record ID
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*model.Session, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	session := &model.Session{}
	if err := decodeRecord(result, session); err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateDetails updates the schedule fields of a session
func (r *SessionRepository) UpdateDetails(ctx context.Context, session *model.Session) error {
	query := `
		UPDATE type::record($id) SET
			date = $date,
			time = $time,
			address = $address,
			updated_on = time::now()
	`

	vars := map[string]interface{}{
		"id":      session.ID,
		"date":    session.Date,
		"time":    session.Time,
		"address": session.Address,
	}

	return r.db.Execute(ctx, query, vars)
}

// SetRSVP records one member's RSVP state
func (r *SessionRepository) SetRSVP(ctx context.Context, sessionID, userID string, state model.RSVPState) error {
	query := `
		UPDATE type::record($id) SET
			rsvp_map[$member] = $state,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":     sessionID,
		"member": userID,
		"state":  string(state),
	}

	return r.db.Execute(ctx, query, vars)
}

// RemoveRSVP drops a member from the RSVP map entirely
func (r *SessionRepository) RemoveRSVP(ctx context.Context, sessionID, userID string) error {
	query := `
		UPDATE type::record($id) SET
			rsvp_map = object::remove(rsvp_map, $member),
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":     sessionID,
		"member": userID,
	}

	return r.db.Execute(ctx, query, vars)
}

// Delete removes the session record
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}

// DeleteByGame removes all sessions belonging to a game
func (r *SessionRepository) DeleteByGame(ctx context.Context, gameID string) error {
	query := `DELETE session WHERE game = $game`
	vars := map[string]interface{}{"game": gameID}

	return r.db.Execute(ctx, query, vars)
}
