package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/homegame/api/internal/database"
	"github.com/homegame/api/internal/model"
)

// SessionRepository defines the interface for poker session storage
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id string) (*model.Session, error)
	UpdateDetails(ctx context.Context, session *model.Session) error
	SetRSVP(ctx context.Context, sessionID, userID string, state model.RSVPState) error
	RemoveRSVP(ctx context.Context, sessionID, userID string) error
	Delete(ctx context.Context, id string) error
	DeleteByGame(ctx context.Context, gameID string) error
}

// SessionService handles the session and RSVP lifecycle. RSVP states
// move no-relationship -> invited -> accepted/declined; the admin can
// revoke an accepted RSVP back to no-relationship.
type SessionService struct {
	sessions      SessionRepository
	games         GameRepository
	notifications NotificationRepository
}

// SessionServiceConfig holds configuration for the session service
type SessionServiceConfig struct {
	Sessions      SessionRepository
	Games         GameRepository
	Notifications NotificationRepository
}

// NewSessionService creates a new session service
func NewSessionService(cfg SessionServiceConfig) *SessionService {
	return &SessionService{
		sessions:      cfg.Sessions,
		games:         cfg.Games,
		notifications: cfg.Notifications,
	}
}

func (s *SessionService) getGame(ctx context.Context, gameID string) (*model.Game, error) {
	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

// currentSession loads the game's live session or fails with ErrNoSession
func (s *SessionService) currentSession(ctx context.Context, game *model.Game) (*model.Session, error) {
	if game.CurrentSession == "" {
		return nil, ErrNoSession
	}
	session, err := s.sessions.GetByID(ctx, game.CurrentSession)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	return session, nil
}

// CreateSession schedules a meetup for a game. Admin only; fails if the
// game already has a live session.
func (s *SessionService) CreateSession(ctx context.Context, user model.SessionUser, req *model.SessionFormRequest) (*model.Session, error) {
	game, err := s.getGame(ctx, req.GameID)
	if err != nil {
		return nil, err
	}
	if !game.IsAdmin(user.ID) {
		return nil, ErrNotAdmin
	}
	if game.CurrentSession != "" {
		return nil, ErrSessionExists
	}

	session := &model.Session{
		Game:    game.ID,
		Date:    req.Date,
		Time:    req.Time,
		Address: req.Address,
		RSVPMap: map[string]model.RSVPState{},
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	if err := s.games.SetCurrentSession(ctx, game.ID, session.ID); err != nil {
		return nil, err
	}

	slog.Info("session created", slog.String("game_id", game.ID), slog.String("session_id", session.ID))
	return session, nil
}

// EditSession updates the schedule fields of the live session. Admin only.
func (s *SessionService) EditSession(ctx context.Context, user model.SessionUser, req *model.SessionFormRequest) (*model.Session, error) {
	game, err := s.getGame(ctx, req.GameID)
	if err != nil {
		return nil, err
	}
	if !game.IsAdmin(user.ID) {
		return nil, ErrNotAdmin
	}

	session, err := s.sessions.GetByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	session.Date = req.Date
	session.Time = req.Time
	session.Address = req.Address

	if err := s.sessions.UpdateDetails(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteSession cancels the live session, clears the game's reference,
// and purges pending session invites.
func (s *SessionService) DeleteSession(ctx context.Context, user model.SessionUser, gameID string) error {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return err
	}
	if !game.IsAdmin(user.ID) {
		return ErrNotAdmin
	}

	session, err := s.currentSession(ctx, game)
	if err != nil {
		return err
	}

	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return err
	}
	if err := s.games.SetCurrentSession(ctx, game.ID, ""); err != nil {
		return err
	}
	if err := s.notifications.DeleteByGameAndLabel(ctx, game.ID, model.LabelSessionInvite); err != nil {
		slog.Error("delete session: invite purge failed", slog.String("game_id", game.ID), slog.Any("error", err))
	}
	return nil
}

// SendRSVPInvite marks a member invited to the live session and sends
// the invite notification. Admin only; the target must be a member.
func (s *SessionService) SendRSVPInvite(ctx context.Context, user model.SessionUser, req *model.RSVPInviteRequest) error {
	game, err := s.getGame(ctx, req.GameID)
	if err != nil {
		return err
	}
	if !game.IsAdmin(user.ID) {
		return ErrNotAdmin
	}
	if !game.IsMember(req.UserID) {
		return ErrNotMember
	}

	session, err := s.currentSession(ctx, game)
	if err != nil {
		return err
	}
	if _, exists := session.RSVPMap[req.UserID]; exists {
		return ErrExistingInvite
	}

	if err := s.sessions.SetRSVP(ctx, session.ID, req.UserID, model.RSVPInvited); err != nil {
		return err
	}

	invite := &model.Notification{
		Sender:    user.ID,
		Recipient: req.UserID,
		Game:      game.ID,
		Label:     model.LabelSessionInvite,
		Message:   fmt.Sprintf("%s invited you to the upcoming session for %s", user.Username, game.Name),
	}
	return s.notifications.Create(ctx, invite)
}

// JoinSession accepts a pending session invite and consumes the invite
// notification. Requires the invited state.
func (s *SessionService) JoinSession(ctx context.Context, user model.SessionUser, gameID string) error {
	return s.answerInvite(ctx, user, gameID, model.RSVPAccepted)
}

// DeclineRSVP turns down a pending session invite. Requires the invited
// state; the invite notification is consumed either way.
func (s *SessionService) DeclineRSVP(ctx context.Context, user model.SessionUser, gameID string) error {
	return s.answerInvite(ctx, user, gameID, model.RSVPDeclined)
}

func (s *SessionService) answerInvite(ctx context.Context, user model.SessionUser, gameID string, state model.RSVPState) error {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return err
	}
	session, err := s.currentSession(ctx, game)
	if err != nil {
		return err
	}
	if session.RSVPMap[user.ID] != model.RSVPInvited {
		return ErrNoInvite
	}

	if err := s.sessions.SetRSVP(ctx, session.ID, user.ID, state); err != nil {
		return err
	}

	invite, err := s.notifications.FindByRecipientGameLabel(ctx, user.ID, game.ID, model.LabelSessionInvite)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return err
	}
	if invite != nil {
		if err := s.notifications.Delete(ctx, invite.ID); err != nil {
			slog.Error("rsvp answer: invite delete failed", slog.String("game_id", game.ID), slog.Any("error", err))
		}
	}
	return nil
}

// LeaveSession backs out of a session the caller had accepted. Requires
// the accepted state.
func (s *SessionService) LeaveSession(ctx context.Context, user model.SessionUser, gameID string) error {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return err
	}
	session, err := s.currentSession(ctx, game)
	if err != nil {
		return err
	}
	if session.RSVPMap[user.ID] != model.RSVPAccepted {
		return ErrNotJoined
	}

	return s.sessions.SetRSVP(ctx, session.ID, user.ID, model.RSVPDeclined)
}

// RemoveSessionMember revokes an accepted RSVP, returning the member to
// no-relationship and notifying them. Admin only.
func (s *SessionService) RemoveSessionMember(ctx context.Context, user model.SessionUser, req *model.MemberTargetRequest) error {
	game, err := s.getGame(ctx, req.GameID)
	if err != nil {
		return err
	}
	if !game.IsAdmin(user.ID) {
		return ErrNotAdmin
	}

	session, err := s.currentSession(ctx, game)
	if err != nil {
		return err
	}
	if session.RSVPMap[req.UserID] != model.RSVPAccepted {
		return ErrNotJoined
	}

	if err := s.sessions.RemoveRSVP(ctx, session.ID, req.UserID); err != nil {
		return err
	}

	notice := &model.Notification{
		Sender:    user.ID,
		Recipient: req.UserID,
		Game:      game.ID,
		Label:     model.LabelRSVPRevoked,
		Message:   fmt.Sprintf("%s removed you from the upcoming session for %s", user.Username, game.Name),
	}
	return s.notifications.Create(ctx, notice)
}
