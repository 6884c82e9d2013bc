package repository

import (
	"context"
	"errors"

	"github.com/homegame/api/internal/database"
	"github.com/homegame/api/internal/model"
)

// PostRepository handles message board data access
type PostRepository struct {
	db database.Database
}

// NewPostRepository creates a new post repository
func NewPostRepository(db database.Database) *PostRepository {
	return &PostRepository{db: db}
}

// Create creates a new board post
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	query := `
		CREATE post CONTENT {
			game: $game,
			author: $author,
			body: $body,
			date: time::now(),
			created_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"game":   post.Game,
		"author": post.Author,
		"body":   post.Body,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return err
	}

	created := &model.Post{}
	if err := decodeRecord(result, created); err != nil {
		return err
	}

	post.ID = created.ID
	post.Date = created.Date
	post.CreatedOn = created.CreatedOn
	return nil
}

// GetByID retrieves a post by record ID
func (r *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	post := &model.Post{}
	if err := decodeRecord(result, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListByGame retrieves a game's board, newest first
func (r *PostRepository) ListByGame(ctx context.Context, gameID string) ([]*model.Post, error) {
	query := `SELECT * FROM post WHERE game = $game ORDER BY date DESC`
	vars := map[string]interface{}{"game": gameID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	var posts []*model.Post
	if err := decodeList(result, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CountByAuthorInGame counts a member's live posts on a board, for the
// per-member post cap.
func (r *PostRepository) CountByAuthorInGame(ctx context.Context, gameID, authorID string) (int, error) {
	query := `SELECT count() AS count FROM post WHERE game = $game AND author = $author GROUP ALL`
	vars := map[string]interface{}{
		"game":   gameID,
		"author": authorID,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return extractCount(result), nil
}

// Delete removes one post
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}

// DeleteByGame removes every post on a game's board
func (r *PostRepository) DeleteByGame(ctx context.Context, gameID string) error {
	query := `DELETE post WHERE game = $game`
	vars := map[string]interface{}{"game": gameID}

	return r.db.Execute(ctx, query, vars)
}

// DeleteByAuthorInGame removes a departing member's posts from a board
func (r *PostRepository) DeleteByAuthorInGame(ctx context.Context, gameID, authorID string) error {
	query := `DELETE post WHERE game = $game AND author = $author`
	vars := map[string]interface{}{
		"game":   gameID,
		"author": authorID,
	}

	return r.db.Execute(ctx, query, vars)
}
