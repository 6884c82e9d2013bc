package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/homegame/api/internal/database"
	"github.com/homegame/api/internal/model"
)

// GameRepository defines the interface for game storage
type GameRepository interface {
	Create(ctx context.Context, game *model.Game) error
	GetByID(ctx context.Context, id string) (*model.Game, error)
	GetByNameAndAdmin(ctx context.Context, name, adminID string) (*model.Game, error)
	ListByMember(ctx context.Context, userID string) ([]*model.Game, error)
	UpdateDetails(ctx context.Context, game *model.Game) error
	AddMember(ctx context.Context, gameID, userID string) error
	RemoveMember(ctx context.Context, gameID, userID string) error
	SetCurrentSession(ctx context.Context, gameID, sessionID string) error
	SetProfit(ctx context.Context, gameID, memberID string, cents int64) error
	ApplyProfitDeltas(ctx context.Context, gameID string, deltas map[string]int64) error
	Delete(ctx context.Context, id string) error
}

// GameService handles game lifecycle and membership business logic
type GameService struct {
	games         GameRepository
	users         UserRepository
	sessions      SessionRepository
	posts         PostRepository
	notifications NotificationRepository
}

// GameServiceConfig holds configuration for the game service
type GameServiceConfig struct {
	Games         GameRepository
	Users         UserRepository
	Sessions      SessionRepository
	Posts         PostRepository
	Notifications NotificationRepository
}

// NewGameService creates a new game service
func NewGameService(cfg GameServiceConfig) *GameService {
	return &GameService{
		games:         cfg.Games,
		users:         cfg.Users,
		sessions:      cfg.Sessions,
		posts:         cfg.Posts,
		notifications: cfg.Notifications,
	}
}

// getGame loads a game or maps the storage error to a sentinel
func (s *GameService) getGame(ctx context.Context, gameID string) (*model.Game, error) {
	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

// CreateGame creates a game with the caller as admin and sole member
func (s *GameService) CreateGame(ctx context.Context, user model.SessionUser, req *model.GameFormRequest) (*model.Game, error) {
	existing, err := s.games.GetByNameAndAdmin(ctx, req.Name, user.ID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNameConflict
	}

	game := &model.Game{
		Name:          req.Name,
		GameType:      req.GameType,
		Stakes:        req.Stakes,
		MaxBuyin:      req.MaxBuyin,
		VenmoUsername: req.VenmoUsername,
		Members:       []string{user.ID},
		ProfitMap:     map[string]int64{user.ID: 0},
		Admin:         user.ID,
	}
	if err := s.games.Create(ctx, game); err != nil {
		return nil, err
	}

	if err := s.users.AddGame(ctx, user.ID, game.ID); err != nil {
		return nil, err
	}

	slog.Info("game created", slog.String("game_id", game.ID), slog.String("admin_id", user.ID))
	return game, nil
}

// EditGame updates the game form fields. Admin only.
func (s *GameService) EditGame(ctx context.Context, user model.SessionUser, req *model.GameFormRequest) (*model.Game, error) {
	game, err := s.getGame(ctx, req.GameID)
	if err != nil {
		return nil, err
	}
	if !game.IsAdmin(user.ID) {
		return nil, ErrNotAdmin
	}

	game.Name = req.Name
	game.GameType = req.GameType
	game.Stakes = req.Stakes
	game.MaxBuyin = req.MaxBuyin
	game.VenmoUsername = req.VenmoUsername

	if err := s.games.UpdateDetails(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// DeleteGame removes a game and cascades to its sessions, posts, and
// notifications. Venmo Cashout notices are spared so settled debts stay
// visible. Every former member except the admin gets a notice.
func (s *GameService) DeleteGame(ctx context.Context, user model.SessionUser, gameID string) error {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return err
	}
	if !game.IsAdmin(user.ID) {
		return ErrNotAdmin
	}

	if err := s.games.Delete(ctx, game.ID); err != nil {
		return err
	}

	if err := s.sessions.DeleteByGame(ctx, game.ID); err != nil {
		slog.Error("delete game: session purge failed", slog.String("game_id", game.ID), slog.Any("error", err))
	}
	if err := s.posts.DeleteByGame(ctx, game.ID); err != nil {
		slog.Error("delete game: post purge failed", slog.String("game_id", game.ID), slog.Any("error", err))
	}
	if err := s.notifications.DeleteByGameExceptLabel(ctx, game.ID, model.LabelVenmoCashout); err != nil {
		slog.Error("delete game: notification purge failed", slog.String("game_id", game.ID), slog.Any("error", err))
	}

	for _, member := range game.Members {
		if err := s.users.RemoveGame(ctx, member, game.ID); err != nil {
			slog.Error("delete game: member unlink failed", slog.String("member_id", member), slog.Any("error", err))
		}
		if member == game.Admin {
			continue
		}
		notice := &model.Notification{
			Sender:    user.ID,
			Recipient: member,
			Game:      game.ID,
			Label:     model.LabelGameDeleted,
			Message:   fmt.Sprintf("%s deleted their poker game: %s", user.Username, game.Name),
		}
		if err := s.notifications.Create(ctx, notice); err != nil {
			slog.Error("delete game: member notice failed", slog.String("member_id", member), slog.Any("error", err))
		}
	}

	return nil
}

// AddMember sends a game invite notification to a user by username.
// The target joins later through JoinGame.
func (s *GameService) AddMember(ctx context.Context, user model.SessionUser, req *model.AddMemberRequest) error {
	if req.Username == user.Username {
		return ErrSelfInvite
	}

	game, err := s.getGame(ctx, req.GameID)
	if err != nil {
		return err
	}
	if !game.IsAdmin(user.ID) {
		return ErrNotAdmin
	}

	target, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	existing, err := s.notifications.FindByRecipientGameLabel(ctx, target.ID, game.ID, model.LabelGameInvite)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return err
	}
	if existing != nil {
		return ErrExistingInvite
	}

	invite := &model.Notification{
		Sender:    user.ID,
		Recipient: target.ID,
		Game:      game.ID,
		Label:     model.LabelGameInvite,
		Message:   fmt.Sprintf("%s invited you to their poker game: %s", user.Username, game.Name),
	}
	return s.notifications.Create(ctx, invite)
}

// JoinGame accepts a pending game invite: the caller becomes a member
// with a zeroed ledger entry and the invite is consumed.
func (s *GameService) JoinGame(ctx context.Context, user model.SessionUser, gameID string) error {
	invite, err := s.notifications.FindByRecipientGameLabel(ctx, user.ID, gameID, model.LabelGameInvite)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return err
	}
	if invite == nil {
		return ErrNoInvite
	}

	if err := s.games.AddMember(ctx, gameID, user.ID); err != nil {
		return err
	}
	if err := s.users.AddGame(ctx, user.ID, gameID); err != nil {
		return err
	}
	return s.notifications.Delete(ctx, invite.ID)
}

// LeaveGame removes the caller from a game's members, ledger, and any
// live session RSVP, clears their pending notifications for the game,
// and notifies the admin.
func (s *GameService) LeaveGame(ctx context.Context, user model.SessionUser, gameID string) error {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return err
	}
	if !game.IsMember(user.ID) {
		return ErrNotMember
	}

	if err := s.games.RemoveMember(ctx, game.ID, user.ID); err != nil {
		return err
	}
	if err := s.users.RemoveGame(ctx, user.ID, game.ID); err != nil {
		return err
	}
	if game.CurrentSession != "" {
		if err := s.sessions.RemoveRSVP(ctx, game.CurrentSession, user.ID); err != nil {
			slog.Error("leave game: rsvp removal failed", slog.String("game_id", game.ID), slog.Any("error", err))
		}
	}
	if err := s.notifications.DeleteByRecipientAndGame(ctx, user.ID, game.ID); err != nil {
		slog.Error("leave game: notification purge failed", slog.String("game_id", game.ID), slog.Any("error", err))
	}

	notice := &model.Notification{
		Sender:    user.ID,
		Recipient: game.Admin,
		Game:      game.ID,
		Label:     model.LabelGameNotice,
		Message:   fmt.Sprintf("%s left your poker game: %s", user.Username, game.Name),
	}
	return s.notifications.Create(ctx, notice)
}

// KickMember removes a member from the game. Admin only; the admin
// cannot kick themselves (they delete the game instead).
func (s *GameService) KickMember(ctx context.Context, user model.SessionUser, req *model.MemberTargetRequest) error {
	game, err := s.getGame(ctx, req.GameID)
	if err != nil {
		return err
	}
	if !game.IsAdmin(user.ID) {
		return ErrNotAdmin
	}
	if !game.IsMember(req.UserID) || req.UserID == game.Admin {
		return ErrNotMember
	}

	if err := s.games.RemoveMember(ctx, game.ID, req.UserID); err != nil {
		return err
	}
	if err := s.users.RemoveGame(ctx, req.UserID, game.ID); err != nil {
		return err
	}
	if game.CurrentSession != "" {
		if err := s.sessions.RemoveRSVP(ctx, game.CurrentSession, req.UserID); err != nil {
			slog.Error("kick member: rsvp removal failed", slog.String("game_id", game.ID), slog.Any("error", err))
		}
	}

	notice := &model.Notification{
		Sender:    user.ID,
		Recipient: req.UserID,
		Game:      game.ID,
		Label:     model.LabelGameNotice,
		Message:   fmt.Sprintf("%s kicked you from their poker game: %s", user.Username, game.Name),
	}
	return s.notifications.Create(ctx, notice)
}

// UpdateProfit overwrites one member's cumulative profit. Admin only.
func (s *GameService) UpdateProfit(ctx context.Context, user model.SessionUser, req *model.UpdateProfitRequest) error {
	game, err := s.getGame(ctx, req.GameID)
	if err != nil {
		return err
	}
	if !game.IsAdmin(user.ID) {
		return ErrNotAdmin
	}
	if !game.IsMember(req.MemberID) {
		return ErrNotMember
	}

	return s.games.SetProfit(ctx, game.ID, req.MemberID, req.Profit)
}

// ListGames returns the caller's games in summary form
func (s *GameService) ListGames(ctx context.Context, userID string) ([]model.GameSummary, error) {
	games, err := s.games.ListByMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.GameSummary, 0, len(games))
	for _, game := range games {
		summaries = append(summaries, game.Summary())
	}
	return summaries, nil
}

// GameDetails returns a game with its member profiles and live session.
// Members only.
func (s *GameService) GameDetails(ctx context.Context, userID, gameID string) (*model.GameDetails, error) {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !game.IsMember(userID) {
		return nil, ErrNotMember
	}

	members, err := s.users.GetByIDs(ctx, game.Members)
	if err != nil {
		return nil, err
	}
	for i, m := range members {
		members[i] = m.Public()
	}

	details := &model.GameDetails{
		Game:    game,
		Members: members,
		IsAdmin: game.IsAdmin(userID),
	}

	if game.CurrentSession != "" {
		session, err := s.sessions.GetByID(ctx, game.CurrentSession)
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			return nil, err
		}
		details.Session = session
	}

	return details, nil
}

// GamePosts returns a game's message board, newest first. Members only.
func (s *GameService) GamePosts(ctx context.Context, userID, gameID string) ([]*model.Post, error) {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !game.IsMember(userID) {
		return nil, ErrNotMember
	}

	return s.posts.ListByGame(ctx, gameID)
}
