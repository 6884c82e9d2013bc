package repository

import (
	"context"

	"github.com/homegame/api/internal/database"
	"github.com/homegame/api/internal/model"
)

// GameRepository handles game data access
type GameRepository struct {
	db database.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db database.Database) *GameRepository {
	return &GameRepository{db: db}
}

// Create creates a new game with the admin as its only member
func (r *GameRepository) Create(ctx context.Context, game *model.Game) error {
	query := `
		CREATE game CONTENT {
			name: $name,
			game_type: $game_type,
			stakes: $stakes,
			max_buyin: $max_buyin,
			venmo_username: $venmo_username,
			current_session: "",
			members: $members,
			member_profit_map: $profit_map,
			admin: $admin,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"name":           game.Name,
		"game_type":      game.GameType,
		"stakes":         game.Stakes,
		"max_buyin":      game.MaxBuyin,
		"venmo_username": game.VenmoUsername,
		"members":        game.Members,
		"profit_map":     game.ProfitMap,
		"admin":          game.Admin,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return err
	}

	created := &model.Game{}
	if err := decodeRecord(result, created); err != nil {
		return err
	}

	game.ID = created.ID
	game.CreatedOn = created.CreatedOn
	game.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a game by record ID
func (r *GameRepository) GetByID(ctx context.Context, id string) (*model.Game, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	game := &model.Game{}
	if err := decodeRecord(result, game); err != nil {
		return nil, err
	}
	return game, nil
}

// GetByNameAndAdmin finds a game with the given name run by the given
// admin, for name-conflict checks.
func (r *GameRepository) GetByNameAndAdmin(ctx context.Context, name, adminID string) (*model.Game, error) {
	query := `SELECT * FROM game WHERE name = $name AND admin = $admin LIMIT 1`
	vars := map[string]interface{}{
		"name":  name,
		"admin": adminID,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	game := &model.Game{}
	if err := decodeRecord(result, game); err != nil {
		return nil, err
	}
	return game, nil
}

// ListByMember retrieves all games a user belongs to
func (r *GameRepository) ListByMember(ctx context.Context, userID string) ([]*model.Game, error) {
	query := `SELECT * FROM game WHERE $user IN members ORDER BY created_on DESC`
	vars := map[string]interface{}{"user": userID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	var games []*model.Game
	if err := decodeList(result, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// UpdateDetails updates the editable game fields
func (r *GameRepository) UpdateDetails(ctx context.Context, game *model.Game) error {
	query := `
		UPDATE type::record($id) SET
			name = $name,
			game_type = $game_type,
			stakes = $stakes,
			max_buyin = $max_buyin,
			venmo_username = $venmo_username,
			updated_on = time::now()
	`

	vars := map[string]interface{}{
		"id":             game.ID,
		"name":           game.Name,
		"game_type":      game.GameType,
		"stakes":         game.Stakes,
		"max_buyin":      game.MaxBuyin,
		"venmo_username": game.VenmoUsername,
	}

	return r.db.Execute(ctx, query, vars)
}

// AddMember appends a member and opens their profit ledger entry at
// zero in one statement, keeping the member and ledger sets aligned.
func (r *GameRepository) AddMember(ctx context.Context, gameID, userID string) error {
	query := `
		UPDATE type::record($id) SET
			members += $member,
			member_profit_map[$member] = 0,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":     gameID,
		"member": userID,
	}

	return r.db.Execute(ctx, query, vars)
}

// RemoveMember drops a member and their profit ledger entry together
func (r *GameRepository) RemoveMember(ctx context.Context, gameID, userID string) error {
	query := `
		UPDATE type::record($id) SET
			members -= $member,
			member_profit_map = object::remove(member_profit_map, $member),
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":     gameID,
		"member": userID,
	}

	return r.db.Execute(ctx, query, vars)
}

// SetCurrentSession points the game at its live session. Pass an empty
// string to clear it.
func (r *GameRepository) SetCurrentSession(ctx context.Context, gameID, sessionID string) error {
	query := `UPDATE type::record($id) SET current_session = $session, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":      gameID,
		"session": sessionID,
	}

	return r.db.Execute(ctx, query, vars)
}

// SetProfit overwrites one member's cumulative profit in cents
func (r *GameRepository) SetProfit(ctx context.Context, gameID, memberID string, cents int64) error {
	query := `
		UPDATE type::record($id) SET
			member_profit_map[$member] = $profit,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":     gameID,
		"member": memberID,
		"profit": cents,
	}

	return r.db.Execute(ctx, query, vars)
}

// ApplyProfitDeltas adds cashout results to the ledger atomically so a
// partially applied cashout never becomes visible.
func (r *GameRepository) ApplyProfitDeltas(ctx context.Context, gameID string, deltas map[string]int64) error {
	batch := database.NewAtomicBatch()
	for memberID, delta := range deltas {
		batch.Add(`
			UPDATE type::record($id) SET
				member_profit_map[$member] = member_profit_map[$member] + $delta,
				updated_on = time::now()
		`, map[string]interface{}{
			"id":     gameID,
			"member": memberID,
			"delta":  delta,
		})
	}
	if batch.Len() == 0 {
		return nil
	}
	return batch.Execute(ctx, r.db)
}

// Delete removes the game record
func (r *GameRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}
