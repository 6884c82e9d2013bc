package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/homegame/api/internal/database"
	"github.com/homegame/api/internal/model"
)

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.User, error)
	UpdateEmail(ctx context.Context, userID, email string) error
	UpdateUsername(ctx context.Context, userID, username string) error
	UpdatePassword(ctx context.Context, userID, hash string) error
	SetLoginState(ctx context.Context, userID string, attempts int, lockUntil int64) error
	AddGame(ctx context.Context, userID, gameID string) error
	RemoveGame(ctx context.Context, userID, gameID string) error
	Delete(ctx context.Context, id string) error
}

// TokenRepository defines the interface for password-reset token storage
type TokenRepository interface {
	Create(ctx context.Context, userID, token string, expiresAt time.Time) (*model.Token, error)
	GetByToken(ctx context.Context, token string) (*model.Token, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// Mailer defines the interface for outbound email
type Mailer interface {
	SendPasswordReset(ctx context.Context, recipient, username, link string) error
	SendContactForm(ctx context.Context, name, email, message string) error
}

// UserService handles account business logic
type UserService struct {
	users         UserRepository
	tokens        TokenRepository
	games         GameRepository
	sessions      SessionRepository
	posts         PostRepository
	notifications NotificationRepository
	httpSessions  HTTPSessionRepository
	mailer        Mailer

	bcryptCost       int
	maxLoginAttempts int
	lockTime         time.Duration
	resetTokenTTL    time.Duration
	publicBaseURL    string
	frontendURL      string
}

// UserServiceConfig holds configuration for the user service
type UserServiceConfig struct {
	Users         UserRepository
	Tokens        TokenRepository
	Games         GameRepository
	Sessions      SessionRepository
	Posts         PostRepository
	Notifications NotificationRepository
	HTTPSessions  HTTPSessionRepository
	Mailer        Mailer

	BcryptCost       int
	MaxLoginAttempts int
	LockTime         time.Duration
	ResetTokenTTL    time.Duration
	PublicBaseURL    string
	FrontendURL      string
}

// NewUserService creates a new user service
func NewUserService(cfg UserServiceConfig) *UserService {
	return &UserService{
		users:            cfg.Users,
		tokens:           cfg.Tokens,
		games:            cfg.Games,
		sessions:         cfg.Sessions,
		posts:            cfg.Posts,
		notifications:    cfg.Notifications,
		httpSessions:     cfg.HTTPSessions,
		mailer:           cfg.Mailer,
		bcryptCost:       cfg.BcryptCost,
		maxLoginAttempts: cfg.MaxLoginAttempts,
		lockTime:         cfg.LockTime,
		resetTokenTTL:    cfg.ResetTokenTTL,
		publicBaseURL:    cfg.PublicBaseURL,
		frontendURL:      cfg.FrontendURL,
	}
}

// LockMinutes reports the lockout duration in whole minutes, for the
// login failure message.
func (s *UserService) LockMinutes() int {
	return int(s.lockTime.Minutes())
}

// Signup registers a new account. Both conflict errors can be present
// at once; check with errors.Is.
func (s *UserService) Signup(ctx context.Context, req *model.SignupRequest) error {
	var conflicts []error

	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return err
	}
	if existing != nil {
		conflicts = append(conflicts, ErrEmailTaken)
	}

	existing, err = s.users.GetByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return err
	}
	if existing != nil {
		conflicts = append(conflicts, ErrUsernameTaken)
	}

	if len(conflicts) > 0 {
		return errors.Join(conflicts...)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Games:    []string{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	slog.Info("user signed up", slog.String("user_id", user.ID))
	return nil
}

// Login authenticates a user, tracking failed attempts and locking the
// account once the limit is reached.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := time.Now()
	if user.IsLocked(now) {
		return nil, ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		attempts := user.LoginAttempts + 1
		lockUntil := int64(0)
		if attempts >= s.maxLoginAttempts {
			lockUntil = now.Add(s.lockTime).UnixMilli()
			attempts = 0
		}
		if err := s.users.SetLoginState(ctx, user.ID, attempts, lockUntil); err != nil {
			return nil, err
		}
		if lockUntil > 0 {
			slog.Warn("account locked", slog.String("user_id", user.ID))
			return nil, ErrAccountLocked
		}
		return nil, ErrPasswordIncorrect
	}

	// Successful login clears the counters
	if user.LoginAttempts > 0 || user.LockUntil > 0 {
		if err := s.users.SetLoginState(ctx, user.ID, 0, 0); err != nil {
			return nil, err
		}
	}

	return user.Public(), nil
}

// PasswordCheck verifies the current user's password, for confirm
// dialogs before destructive settings changes.
func (s *UserService) PasswordCheck(ctx context.Context, userID, password string) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	return err == nil, nil
}

// ChangeEmail updates the account email and refreshes live sessions
func (s *UserService) ChangeEmail(ctx context.Context, user model.SessionUser, email string) error {
	if err := s.users.UpdateEmail(ctx, user.ID, email); err != nil {
		return err
	}

	user.Email = email
	return s.httpSessions.UpdateUser(ctx, user)
}

// ChangeUsername updates the account username, refreshes live sessions,
// and returns the new session snapshot.
func (s *UserService) ChangeUsername(ctx context.Context, user model.SessionUser, username string) (model.SessionUser, error) {
	if err := s.users.UpdateUsername(ctx, user.ID, username); err != nil {
		return user, err
	}

	user.Username = username
	if err := s.httpSessions.UpdateUser(ctx, user); err != nil {
		return user, err
	}
	return user, nil
}

// ChangePassword sets a new password for a logged-in user
func (s *UserService) ChangePassword(ctx context.Context, userID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

// ResetPassword sets a new password through an emailed token, consuming
// the token on success.
func (s *UserService) ResetPassword(ctx context.Context, token, password string) error {
	t, err := s.tokens.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrTokenInvalid
		}
		return err
	}
	if time.Now().After(t.ExpiresAt) {
		return ErrTokenInvalid
	}

	if err := s.ChangePassword(ctx, t.User, password); err != nil {
		return err
	}
	return s.tokens.DeleteByUser(ctx, t.User)
}

// SendPasswordLink emails a reset link to the account holder
func (s *UserService) SendPasswordLink(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}

	token, err := s.tokens.Create(ctx, user.ID, hex.EncodeToString(raw), time.Now().Add(s.resetTokenTTL))
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/api/password_reset/%s", s.publicBaseURL, token.Token)
	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.Username, link); err != nil {
		slog.Error("password reset email failed", slog.String("user_id", user.ID), slog.Any("error", err))
		return ErrMailDelivery
	}
	return nil
}

// ValidatePasswordLink checks an emailed token and returns the frontend
// reset URL to redirect to.
func (s *UserService) ValidatePasswordLink(ctx context.Context, token string) (string, error) {
	t, err := s.tokens.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return "", ErrTokenInvalid
		}
		return "", err
	}
	if time.Now().After(t.ExpiresAt) {
		return "", ErrTokenInvalid
	}

	return fmt.Sprintf("%s/password_reset/%s", s.frontendURL, t.Token), nil
}

// VenmoUsername returns the user's Venmo handle
func (s *UserService) VenmoUsername(ctx context.Context, userID string) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return user.VenmoUsername, nil
}

// SubmitContactForm relays a contact-form submission to the site inbox
func (s *UserService) SubmitContactForm(ctx context.Context, req *model.ContactFormRequest) error {
	if err := s.mailer.SendContactForm(ctx, req.Name, req.Email, req.Message); err != nil {
		slog.Error("contact form email failed", slog.Any("error", err))
		return ErrMailDelivery
	}
	return nil
}

// DeleteAccount removes the account and unwinds its memberships: games
// it administered are deleted outright with their sessions, posts, and
// notifications; other games just lose the member. Each former
// co-member or admin is notified. The cascade is sequential and
// best-effort past the point of user deletion.
func (s *UserService) DeleteAccount(ctx context.Context, sessUser model.SessionUser) error {
	user, err := s.users.GetByID(ctx, sessUser.ID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}

	if err := s.notifications.DeleteByRecipient(ctx, user.ID); err != nil {
		slog.Error("delete account: clearing notifications failed", slog.Any("error", err))
	}

	for _, gameID := range user.Games {
		game, err := s.games.GetByID(ctx, gameID)
		if err != nil {
			slog.Error("delete account: game lookup failed",
				slog.String("game_id", gameID), slog.Any("error", err))
			continue
		}

		if game.IsAdmin(user.ID) {
			s.deleteAdministeredGame(ctx, user, game)
		} else {
			s.leaveGameOnDeletion(ctx, user, game)
		}
	}

	return s.httpSessions.DeleteByUser(ctx, user.ID)
}

func (s *UserService) deleteAdministeredGame(ctx context.Context, user *model.User, game *model.Game) {
	if err := s.games.Delete(ctx, game.ID); err != nil {
		slog.Error("delete account: game delete failed", slog.String("game_id", game.ID), slog.Any("error", err))
		return
	}
	if err := s.sessions.DeleteByGame(ctx, game.ID); err != nil {
		slog.Error("delete account: session purge failed", slog.String("game_id", game.ID), slog.Any("error", err))
	}
	if err := s.posts.DeleteByGame(ctx, game.ID); err != nil {
		slog.Error("delete account: post purge failed", slog.String("game_id", game.ID), slog.Any("error", err))
	}
	if err := s.notifications.DeleteByGameExceptLabel(ctx, game.ID, model.LabelVenmoCashout); err != nil {
		slog.Error("delete account: notification purge failed", slog.String("game_id", game.ID), slog.Any("error", err))
	}

	for _, member := range game.Members {
		if err := s.users.RemoveGame(ctx, member, game.ID); err != nil {
			slog.Error("delete account: member unlink failed", slog.String("member_id", member), slog.Any("error", err))
		}
		if member == user.ID {
			continue
		}
		notice := &model.Notification{
			Sender:    user.ID,
			Recipient: member,
			Game:      game.ID,
			Label:     model.LabelGameDeleted,
			Message: fmt.Sprintf("%s deleted their account, so their poker game, %s, no longer exists",
				user.Username, game.Name),
		}
		if err := s.notifications.Create(ctx, notice); err != nil {
			slog.Error("delete account: member notice failed", slog.String("member_id", member), slog.Any("error", err))
		}
	}
}

func (s *UserService) leaveGameOnDeletion(ctx context.Context, user *model.User, game *model.Game) {
	if err := s.games.RemoveMember(ctx, game.ID, user.ID); err != nil {
		slog.Error("delete account: member removal failed", slog.String("game_id", game.ID), slog.Any("error", err))
		return
	}
	if game.CurrentSession != "" {
		if err := s.sessions.RemoveRSVP(ctx, game.CurrentSession, user.ID); err != nil {
			slog.Error("delete account: rsvp removal failed", slog.String("game_id", game.ID), slog.Any("error", err))
		}
	}
	if err := s.posts.DeleteByAuthorInGame(ctx, game.ID, user.ID); err != nil {
		slog.Error("delete account: post removal failed", slog.String("game_id", game.ID), slog.Any("error", err))
	}

	notice := &model.Notification{
		Sender:    user.ID,
		Recipient: game.Admin,
		Game:      game.ID,
		Label:     model.LabelGameNotice,
		Message: fmt.Sprintf("%s deleted their account, so they are no longer in your poker game, %s, and all of their posts have been deleted",
			user.Username, game.Name),
	}
	if err := s.notifications.Create(ctx, notice); err != nil {
		slog.Error("delete account: admin notice failed", slog.String("game_id", game.ID), slog.Any("error", err))
	}
}
