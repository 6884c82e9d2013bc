package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/homegame/api/internal/database"
	"github.com/homegame/api/internal/model"
)

// PostRepository defines the interface for message board storage
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	ListByGame(ctx context.Context, gameID string) ([]*model.Post, error)
	CountByAuthorInGame(ctx context.Context, gameID, authorID string) (int, error)
	Delete(ctx context.Context, id string) error
	DeleteByGame(ctx context.Context, gameID string) error
	DeleteByAuthorInGame(ctx context.Context, gameID, authorID string) error
}

// BoardService handles the per-game message board
type BoardService struct {
	posts         PostRepository
	games         GameRepository
	notifications NotificationRepository
}

// BoardServiceConfig holds configuration for the board service
type BoardServiceConfig struct {
	Posts         PostRepository
	Games         GameRepository
	Notifications NotificationRepository
}

// NewBoardService creates a new board service
func NewBoardService(cfg BoardServiceConfig) *BoardService {
	return &BoardService{
		posts:         cfg.Posts,
		games:         cfg.Games,
		notifications: cfg.Notifications,
	}
}

// NewMessage posts to a game's board and notifies the other members.
// Non-admin members are capped at MaxPostsPerMember live posts.
func (s *BoardService) NewMessage(ctx context.Context, user model.SessionUser, req *model.NewMessageRequest) (*model.Post, error) {
	game, err := s.games.GetByID(ctx, req.GameID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if !game.IsMember(user.ID) {
		return nil, ErrNotMember
	}

	if !game.IsAdmin(user.ID) {
		count, err := s.posts.CountByAuthorInGame(ctx, game.ID, user.ID)
		if err != nil {
			return nil, err
		}
		if count >= model.MaxPostsPerMember {
			return nil, ErrTooManyPosts
		}
	}

	post := &model.Post{
		Game:   game.ID,
		Author: user.ID,
		Body:   req.Message,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	for _, member := range game.Members {
		if member == user.ID {
			continue
		}
		notice := &model.Notification{
			Sender:    user.ID,
			Recipient: member,
			Game:      game.ID,
			Label:     model.LabelNewMessage,
			Message:   fmt.Sprintf("%s posted in %s", user.Username, game.Name),
		}
		if err := s.notifications.Create(ctx, notice); err != nil {
			slog.Error("new message: notice failed", slog.String("member_id", member), slog.Any("error", err))
		}
	}

	return post, nil
}

// DeleteMessage removes a post. Only the author or the game admin may.
func (s *BoardService) DeleteMessage(ctx context.Context, user model.SessionUser, req *model.DeleteMessageRequest) error {
	game, err := s.games.GetByID(ctx, req.GameID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrGameNotFound
		}
		return err
	}

	post, err := s.posts.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	if !game.IsAdmin(user.ID) && post.Author != user.ID {
		return ErrNotAdminOrAuthor
	}

	return s.posts.Delete(ctx, post.ID)
}
