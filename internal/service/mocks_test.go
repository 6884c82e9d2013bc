package service

import (
	"context"
	"time"

	"github.com/homegame/api/internal/database"
	"github.com/homegame/api/internal/model"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockUserRepo struct {
	createFunc        func(ctx context.Context, user *model.User) error
	getByIDFunc       func(ctx context.Context, id string) (*model.User, error)
	getByEmailFunc    func(ctx context.Context, email string) (*model.User, error)
	getByUsernameFunc func(ctx context.Context, username string) (*model.User, error)
	getByIDsFunc      func(ctx context.Context, ids []string) ([]*model.User, error)
	updateEmailFunc   func(ctx context.Context, userID, email string) error
	updateUserFunc    func(ctx context.Context, userID, username string) error
	updatePassFunc    func(ctx context.Context, userID, hash string) error
	setLoginStateFunc func(ctx context.Context, userID string, attempts int, lockUntil int64) error
	addGameFunc       func(ctx context.Context, userID, gameID string) error
	removeGameFunc    func(ctx context.Context, userID, gameID string) error
	deleteFunc        func(ctx context.Context, id string) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = "user:new"
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, database.ErrNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, database.ErrNotFound
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFunc != nil {
		return m.getByUsernameFunc(ctx, username)
	}
	return nil, database.ErrNotFound
}

func (m *mockUserRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	if m.getByIDsFunc != nil {
		return m.getByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockUserRepo) UpdateEmail(ctx context.Context, userID, email string) error {
	if m.updateEmailFunc != nil {
		return m.updateEmailFunc(ctx, userID, email)
	}
	return nil
}

func (m *mockUserRepo) UpdateUsername(ctx context.Context, userID, username string) error {
	if m.updateUserFunc != nil {
		return m.updateUserFunc(ctx, userID, username)
	}
	return nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, userID, hash string) error {
	if m.updatePassFunc != nil {
		return m.updatePassFunc(ctx, userID, hash)
	}
	return nil
}

func (m *mockUserRepo) SetLoginState(ctx context.Context, userID string, attempts int, lockUntil int64) error {
	if m.setLoginStateFunc != nil {
		return m.setLoginStateFunc(ctx, userID, attempts, lockUntil)
	}
	return nil
}

func (m *mockUserRepo) AddGame(ctx context.Context, userID, gameID string) error {
	if m.addGameFunc != nil {
		return m.addGameFunc(ctx, userID, gameID)
	}
	return nil
}

func (m *mockUserRepo) RemoveGame(ctx context.Context, userID, gameID string) error {
	if m.removeGameFunc != nil {
		return m.removeGameFunc(ctx, userID, gameID)
	}
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockTokenRepo struct {
	createFunc       func(ctx context.Context, userID, token string, expiresAt time.Time) (*model.Token, error)
	getByTokenFunc   func(ctx context.Context, token string) (*model.Token, error)
	deleteByUserFunc func(ctx context.Context, userID string) error
}

func (m *mockTokenRepo) Create(ctx context.Context, userID, token string, expiresAt time.Time) (*model.Token, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, token, expiresAt)
	}
	return &model.Token{User: userID, Token: token, ExpiresAt: expiresAt}, nil
}

func (m *mockTokenRepo) GetByToken(ctx context.Context, token string) (*model.Token, error) {
	if m.getByTokenFunc != nil {
		return m.getByTokenFunc(ctx, token)
	}
	return nil, database.ErrNotFound
}

func (m *mockTokenRepo) DeleteByUser(ctx context.Context, userID string) error {
	if m.deleteByUserFunc != nil {
		return m.deleteByUserFunc(ctx, userID)
	}
	return nil
}

type mockGameRepo struct {
	createFunc            func(ctx context.Context, game *model.Game) error
	getByIDFunc           func(ctx context.Context, id string) (*model.Game, error)
	getByNameAndAdminFunc func(ctx context.Context, name, adminID string) (*model.Game, error)
	listByMemberFunc      func(ctx context.Context, userID string) ([]*model.Game, error)
	updateDetailsFunc     func(ctx context.Context, game *model.Game) error
	addMemberFunc         func(ctx context.Context, gameID, userID string) error
	removeMemberFunc      func(ctx context.Context, gameID, userID string) error
	setCurrentSessionFunc func(ctx context.Context, gameID, sessionID string) error
	setProfitFunc         func(ctx context.Context, gameID, memberID string, cents int64) error
	applyDeltasFunc       func(ctx context.Context, gameID string, deltas map[string]int64) error
	deleteFunc            func(ctx context.Context, id string) error
}

func (m *mockGameRepo) Create(ctx context.Context, game *model.Game) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, game)
	}
	game.ID = "game:new"
	return nil
}

func (m *mockGameRepo) GetByID(ctx context.Context, id string) (*model.Game, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, database.ErrNotFound
}

func (m *mockGameRepo) GetByNameAndAdmin(ctx context.Context, name, adminID string) (*model.Game, error) {
	if m.getByNameAndAdminFunc != nil {
		return m.getByNameAndAdminFunc(ctx, name, adminID)
	}
	return nil, database.ErrNotFound
}

func (m *mockGameRepo) ListByMember(ctx context.Context, userID string) ([]*model.Game, error) {
	if m.listByMemberFunc != nil {
		return m.listByMemberFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockGameRepo) UpdateDetails(ctx context.Context, game *model.Game) error {
	if m.updateDetailsFunc != nil {
		return m.updateDetailsFunc(ctx, game)
	}
	return nil
}

func (m *mockGameRepo) AddMember(ctx context.Context, gameID, userID string) error {
	if m.addMemberFunc != nil {
		return m.addMemberFunc(ctx, gameID, userID)
	}
	return nil
}

func (m *mockGameRepo) RemoveMember(ctx context.Context, gameID, userID string) error {
	if m.removeMemberFunc != nil {
		return m.removeMemberFunc(ctx, gameID, userID)
	}
	return nil
}

func (m *mockGameRepo) SetCurrentSession(ctx context.Context, gameID, sessionID string) error {
	if m.setCurrentSessionFunc != nil {
		return m.setCurrentSessionFunc(ctx, gameID, sessionID)
	}
	return nil
}

func (m *mockGameRepo) SetProfit(ctx context.Context, gameID, memberID string, cents int64) error {
	if m.setProfitFunc != nil {
		return m.setProfitFunc(ctx, gameID, memberID, cents)
	}
	return nil
}

func (m *mockGameRepo) ApplyProfitDeltas(ctx context.Context, gameID string, deltas map[string]int64) error {
	if m.applyDeltasFunc != nil {
		return m.applyDeltasFunc(ctx, gameID, deltas)
	}
	return nil
}

func (m *mockGameRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockSessionRepo struct {
	createFunc        func(ctx context.Context, session *model.Session) error
	getByIDFunc       func(ctx context.Context, id string) (*model.Session, error)
	updateDetailsFunc func(ctx context.Context, session *model.Session) error
	setRSVPFunc       func(ctx context.Context, sessionID, userID string, state model.RSVPState) error
	removeRSVPFunc    func(ctx context.Context, sessionID, userID string) error
	deleteFunc        func(ctx context.Context, id string) error
	deleteByGameFunc  func(ctx context.Context, gameID string) error
}

func (m *mockSessionRepo) Create(ctx context.Context, session *model.Session) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, session)
	}
	session.ID = "session:new"
	return nil
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, database.ErrNotFound
}

func (m *mockSessionRepo) UpdateDetails(ctx context.Context, session *model.Session) error {
	if m.updateDetailsFunc != nil {
		return m.updateDetailsFunc(ctx, session)
	}
	return nil
}

func (m *mockSessionRepo) SetRSVP(ctx context.Context, sessionID, userID string, state model.RSVPState) error {
	if m.setRSVPFunc != nil {
		return m.setRSVPFunc(ctx, sessionID, userID, state)
	}
	return nil
}

func (m *mockSessionRepo) RemoveRSVP(ctx context.Context, sessionID, userID string) error {
	if m.removeRSVPFunc != nil {
		return m.removeRSVPFunc(ctx, sessionID, userID)
	}
	return nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockSessionRepo) DeleteByGame(ctx context.Context, gameID string) error {
	if m.deleteByGameFunc != nil {
		return m.deleteByGameFunc(ctx, gameID)
	}
	return nil
}

type mockPostRepo struct {
	createFunc          func(ctx context.Context, post *model.Post) error
	getByIDFunc         func(ctx context.Context, id string) (*model.Post, error)
	listByGameFunc      func(ctx context.Context, gameID string) ([]*model.Post, error)
	countByAuthorFunc   func(ctx context.Context, gameID, authorID string) (int, error)
	deleteFunc          func(ctx context.Context, id string) error
	deleteByGameFunc    func(ctx context.Context, gameID string) error
	deleteByAuthorInGme func(ctx context.Context, gameID, authorID string) error
}

func (m *mockPostRepo) Create(ctx context.Context, post *model.Post) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, post)
	}
	post.ID = "post:new"
	return nil
}

func (m *mockPostRepo) GetByID(ctx context.Context, id string) (*model.Post, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, database.ErrNotFound
}

func (m *mockPostRepo) ListByGame(ctx context.Context, gameID string) ([]*model.Post, error) {
	if m.listByGameFunc != nil {
		return m.listByGameFunc(ctx, gameID)
	}
	return nil, nil
}

func (m *mockPostRepo) CountByAuthorInGame(ctx context.Context, gameID, authorID string) (int, error) {
	if m.countByAuthorFunc != nil {
		return m.countByAuthorFunc(ctx, gameID, authorID)
	}
	return 0, nil
}

func (m *mockPostRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockPostRepo) DeleteByGame(ctx context.Context, gameID string) error {
	if m.deleteByGameFunc != nil {
		return m.deleteByGameFunc(ctx, gameID)
	}
	return nil
}

func (m *mockPostRepo) DeleteByAuthorInGame(ctx context.Context, gameID, authorID string) error {
	if m.deleteByAuthorInGme != nil {
		return m.deleteByAuthorInGme(ctx, gameID, authorID)
	}
	return nil
}

type mockNotificationRepo struct {
	createFunc             func(ctx context.Context, n *model.Notification) error
	getByIDFunc            func(ctx context.Context, id string) (*model.Notification, error)
	listByRecipientFunc    func(ctx context.Context, userID string) ([]*model.Notification, error)
	findByRGLFunc          func(ctx context.Context, recipientID, gameID, label string) (*model.Notification, error)
	deleteFunc             func(ctx context.Context, id string) error
	deleteByRecipientFunc  func(ctx context.Context, userID string) error
	deleteByRecipGameFunc  func(ctx context.Context, recipientID, gameID string) error
	deleteByGameLabelFunc  func(ctx context.Context, gameID, label string) error
	deleteByGameExceptFunc func(ctx context.Context, gameID, keepLabel string) error
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, n)
	}
	n.ID = "notification:new"
	return nil
}

func (m *mockNotificationRepo) GetByID(ctx context.Context, id string) (*model.Notification, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, database.ErrNotFound
}

func (m *mockNotificationRepo) ListByRecipient(ctx context.Context, userID string) ([]*model.Notification, error) {
	if m.listByRecipientFunc != nil {
		return m.listByRecipientFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockNotificationRepo) FindByRecipientGameLabel(ctx context.Context, recipientID, gameID, label string) (*model.Notification, error) {
	if m.findByRGLFunc != nil {
		return m.findByRGLFunc(ctx, recipientID, gameID, label)
	}
	return nil, database.ErrNotFound
}

func (m *mockNotificationRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockNotificationRepo) DeleteByRecipient(ctx context.Context, userID string) error {
	if m.deleteByRecipientFunc != nil {
		return m.deleteByRecipientFunc(ctx, userID)
	}
	return nil
}

func (m *mockNotificationRepo) DeleteByRecipientAndGame(ctx context.Context, recipientID, gameID string) error {
	if m.deleteByRecipGameFunc != nil {
		return m.deleteByRecipGameFunc(ctx, recipientID, gameID)
	}
	return nil
}

func (m *mockNotificationRepo) DeleteByGameAndLabel(ctx context.Context, gameID, label string) error {
	if m.deleteByGameLabelFunc != nil {
		return m.deleteByGameLabelFunc(ctx, gameID, label)
	}
	return nil
}

func (m *mockNotificationRepo) DeleteByGameExceptLabel(ctx context.Context, gameID, keepLabel string) error {
	if m.deleteByGameExceptFunc != nil {
		return m.deleteByGameExceptFunc(ctx, gameID, keepLabel)
	}
	return nil
}

type mockHTTPSessionRepo struct {
	createFunc        func(ctx context.Context, sess *model.HTTPSession) error
	getByIDFunc       func(ctx context.Context, id string) (*model.HTTPSession, error)
	updateUserFunc    func(ctx context.Context, user model.SessionUser) error
	deleteFunc        func(ctx context.Context, id string) error
	deleteByUserFunc  func(ctx context.Context, userID string) error
	deleteExpiredFunc func(ctx context.Context, now time.Time) error
}

func (m *mockHTTPSessionRepo) Create(ctx context.Context, sess *model.HTTPSession) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, sess)
	}
	sess.ID = "http_session:new"
	return nil
}

func (m *mockHTTPSessionRepo) GetByID(ctx context.Context, id string) (*model.HTTPSession, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, database.ErrNotFound
}

func (m *mockHTTPSessionRepo) UpdateUser(ctx context.Context, user model.SessionUser) error {
	if m.updateUserFunc != nil {
		return m.updateUserFunc(ctx, user)
	}
	return nil
}

func (m *mockHTTPSessionRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockHTTPSessionRepo) DeleteByUser(ctx context.Context, userID string) error {
	if m.deleteByUserFunc != nil {
		return m.deleteByUserFunc(ctx, userID)
	}
	return nil
}

func (m *mockHTTPSessionRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	if m.deleteExpiredFunc != nil {
		return m.deleteExpiredFunc(ctx, now)
	}
	return nil
}

type mockMailer struct {
	sendResetFunc   func(ctx context.Context, recipient, username, link string) error
	sendContactFunc func(ctx context.Context, name, email, message string) error
}

func (m *mockMailer) SendPasswordReset(ctx context.Context, recipient, username, link string) error {
	if m.sendResetFunc != nil {
		return m.sendResetFunc(ctx, recipient, username, link)
	}
	return nil
}

func (m *mockMailer) SendContactForm(ctx context.Context, name, email, message string) error {
	if m.sendContactFunc != nil {
		return m.sendContactFunc(ctx, name, email, message)
	}
	return nil
}

// ============================================================================
// Fixtures
// ============================================================================

func testGame() *model.Game {
	return &model.Game{
		ID:      "game:1",
		Name:    "Friday Night",
		Members: []string{"user:admin", "user:member"},
		ProfitMap: map[string]int64{
			"user:admin":  0,
			"user:member": 0,
		},
		Admin:         "user:admin",
		VenmoUsername: "friday-bank",
	}
}

func adminUser() model.SessionUser {
	return model.SessionUser{ID: "user:admin", Username: "alice", Email: "alice@example.com"}
}

func memberUser() model.SessionUser {
	return model.SessionUser{ID: "user:member", Username: "bob", Email: "bob@example.com"}
}

func outsiderUser() model.SessionUser {
	return model.SessionUser{ID: "user:outsider", Username: "carol", Email: "carol@example.com"}
}
