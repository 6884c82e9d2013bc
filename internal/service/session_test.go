package service

import (
	"context"
	"errors"
	"testing"

	"github.com/homegame/api/internal/model"
)

func newTestSessionService(sessions *mockSessionRepo, games *mockGameRepo, notifications *mockNotificationRepo) *SessionService {
	if sessions == nil {
		sessions = &mockSessionRepo{}
	}
	if games == nil {
		games = &mockGameRepo{}
	}
	if notifications == nil {
		notifications = &mockNotificationRepo{}
	}
	return NewSessionService(SessionServiceConfig{
		Sessions:      sessions,
		Games:         games,
		Notifications: notifications,
	})
}

func liveSession(rsvps map[string]model.RSVPState) *model.Session {
	if rsvps == nil {
		rsvps = map[string]model.RSVPState{}
	}
	return &model.Session{
		ID:      "session:live",
		Game:    "game:1",
		Date:    "Friday 10.3",
		Time:    "7:00 pm",
		Address: "12 River Rd",
		RSVPMap: rsvps,
	}
}

func gameWithSession() *model.Game {
	game := testGame()
	game.CurrentSession = "session:live"
	return game
}

// ============================================================================
// Create / Edit / Delete Session Tests
// ============================================================================

func TestCreateSession_LinksGame(t *testing.T) {
	t.Parallel()

	var linkedSession string
	games := &mockGameRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Game, error) {
			return testGame(), nil
		},
		setCurrentSessionFunc: func(_ context.Context, _, sessionID string) error {
			linkedSession = sessionID
			return nil
		},
	}
	svc := newTestSessionService(nil, games, nil)

	session, err := svc.CreateSession(context.Background(), adminUser(), &model.SessionFormRequest{
		GameID: "game:1", Date: "Friday 10.3", Time: "7:00 pm", Address: "12 River Rd",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.RSVPMap == nil || len(session.RSVPMap) != 0 {
		t.Errorf("expected empty RSVP map, got %v", session.RSVPMap)
	}
	if linkedSession != session.ID {
		t.Errorf("expected game linked to %q, got %q", session.ID, linkedSession)
	}
}

func TestCreateSession_SecondSessionRejected(t *testing.T) {
	t.Parallel()

	games := &mockGameRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Game, error) {
			return gameWithSession(), nil
		},
	}
	svc := newTestSessionService(nil, games, nil)

	_, err := svc.CreateSession(context.Background(), adminUser(), &model.SessionFormRequest{
		GameID: "game:1", Date: "Saturday 10.4", Time: "8:00 pm", Address: "12 River Rd",
	})
	if !errors.Is(err, ErrSessionExists) {
		t.Errorf("expected ErrSessionExists, got %v", err)
	}
}

func TestCreateSession_NonAdminRejected(t *testing.T) {
	t.Parallel()

	games := &mockGameRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Game, error) {
			return testGame(), nil
		},
	}
	svc := newTestSessionService(nil, games, nil)

	_, err := svc.CreateSession(context.Background(), memberUser(), &model.SessionFormRequest{
		GameID: "game:1", Date: "Friday 10.3", Time: "7:00 pm", Address: "12 River Rd",
	})
	if !errors.Is(err, ErrNotAdmin) {
		t.Errorf("expected ErrNotAdmin, got %v", err)
	}
}

func TestEditSession_UpdatesScheduleOnly(t *testing.T) {
	t.Parallel()

	existing := liveSession(map[string]model.RSVPState{"user:member": model.RSVPAccepted})
	var saved *model.Session
	games := &mockGameRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Game, error) {
			return gameWithSession(), nil
		},
	}
	sessions := &mockSessionRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Session, error) {
			return existing, nil
		},
		updateDetailsFunc: func(_ context.Context, s *model.Session) error {
			saved = s
			return nil
		},
	}
	svc := newTestSessionService(sessions, games, nil)

	_, err := svc.EditSession(context.Background(), adminUser(), &model.SessionFormRequest{
		GameID: "game:1", SessionID: "session:live", Date: "Saturday 10.4", Time: "8:00 pm", Address: "44 Oak St",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Date != "Saturday 10.4" || saved.Address != "44 Oak St" {
		t.Errorf("expected schedule updated, got %+v", saved)
	}
	if saved.RSVPMap["user:member"] != model.RSVPAccepted {
		t.Error("editing the schedule should not touch RSVPs")
	}
}

func TestDeleteSession_ClearsGameAndPurgesInvites(t *testing.T) {
	t.Parallel()

	var deleted, cleared bool
	var purgedLabel string
	games := &mockGameRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Game, error) {
			return gameWithSession(), nil
		},
		setCurrentSessionFunc: func(_ context.Context, _, sessionID string) error {
			cleared = sessionID == ""
			return nil
		},
	}
	sessions := &mockSessionRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Session, error) {
			return liveSession(nil), nil
		},
		deleteFunc: func(_ context.Context, id string) error {
			deleted = id == "session:live"
			return nil
		},
	}
	notifications := &mockNotificationRepo{
		deleteByGameLabelFunc: func(_ context.Context, _, label string) error {
			purgedLabel = label
			return nil
		},
	}
	svc := newTestSessionService(sessions, games, notifications)

	if err := svc.DeleteSession(context.Background(), adminUser(), "game:1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted || !cleared {
		t.Error("expected session deleted and game reference cleared")
	}
	if purgedLabel != model.LabelSessionInvite {
		t.Errorf("expected pending session invites purged, got label %q", purgedLabel)
	}
}

func TestDeleteSession_NoLiveSession(t *testing.T) {
	t.Parallel()

	games := &mockGameRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Game, error) {
			return testGame(), nil
		},
	}
	svc := newTestSessionService(nil, games, nil)

	if err := svc.DeleteSession(context.Background(), adminUser(), "game:1"); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

// ============================================================================
// RSVP Invite Tests
// ============================================================================

func TestSendRSVPInvite_MarksInvitedAndNotifies(t *testing.T) {
	t.Parallel()

	var gotState model.RSVPState
	var invite *model.Notification
	games := &mockGameRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Game, error) {
			return gameWithSession(), nil
		},
	}
	sessions := &mockSessionRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Session, error) {
			return liveSession(nil), nil
		},
		setRSVPFunc: func(_ context.Context, _, _ string, state model.RSVPState) error {
			gotState = state
			return nil
		},
	}
	notifications := &mockNotificationRepo{
		createFunc: func(_ context.Context, n *model.Notification) error {
			invite = n
			return nil
		},
	}
	svc := newTestSessionService(sessions, games, notifications)

	err := svc.SendRSVPInvite(context.Background(), adminUser(), &model.RSVPInviteRequest{GameID: "game:1", UserID: "user:member"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotState != model.RSVPInvited {
		t.Errorf("expected invited state, got %q", gotState)
	}
	if invite == nil || invite.Label != model.LabelSessionInvite || invite.Recipient != "user:member" {
		t.Fatalf("expected session invite notification, got %+v", invite)
	}
	if invite.Message != "alice invited you to the upcoming session for Friday Night" {
		t.Errorf("unexpected invite message %q", invite.Message)
	}
}

func TestSendRSVPInvite_ExistingEntryRejected(t *testing.T) {
	t.Parallel()

	games := &mockGameRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Game, error) {
			return gameWithSession(), nil
		},
	}
	sessions := &mockSessionRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Session, error) {
			return liveSession(map[string]model.RSVPState{"user:member": model.RSVPDeclined}), nil
		},
	}
	svc := newTestSessionService(sessions, games, nil)

	err := svc.SendRSVPInvite(context.Background(), adminUser(), &model.RSVPInviteRequest{GameID: "game:1", UserID: "user:member"})
	if !errors.Is(err, ErrExistingInvite) {
		t.Errorf("expected ErrExistingInvite, got %v", err)
	}
}

func TestSendRSVPInvite_NonMemberTarget(t *testing.T) {
	t.Parallel()

	games := &mockGameRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Game, error) {
			return gameWithSession(), nil
		},
	}
	svc := newTestSessionService(nil, games, nil)

	err := svc.SendRSVPInvite(context.Background(), adminUser(), &model.RSVPInviteRequest{GameID: "game:1", UserID: "user:outsider"})
	if !errors.Is(err, ErrNotMember) {
		t.Errorf("expected ErrNotMember, got %v", err)
	}
}

// ============================================================================
// Join / Decline / Leave Session Tests
// ============================================================================

func TestJoinSession_RequiresInvitedState(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		rsvps map[string]model.RSVPState
		want  error
	}{
		{"no relationship", nil, ErrNoInvite},
		{"already accepted", map[string]model.RSVPState{"user:member": model.RSVPAccepted}, ErrNoInvite},
		{"already declined", map[string]model.RSVPState{"user:member": model.RSVPDeclined}, ErrNoInvite},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			games := &mockGameRepo{
				getByIDFunc: func(_ context.Context, _ string) (*model.Game, error) {
					return gameWithSession(), nil
				},
			}
			sessions := &mockSessionRepo{
				getByIDFunc: func(_ context.Context, _ string) (*model.Session, error) {
					return liveSession(tc.rsvps), nil
				},
			}
			svc := newTestSessionService(sessions, games, nil)

			if err := svc.JoinSession(context.Background(), memberUser(), "game:1"); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestJoinSession_AcceptsAndConsumesInvite(t *testing.T) {
	t.Parallel()

	var gotState model.RSVPState
	var consumed string
	games := &mockGameRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Game, error) {
			return gameWithSession(), nil
		},
	}
	sessions := &mockSessionRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Session, error) {
			return liveSession(map[string]model.RSVPState{"user:member": model.RSVPInvited}), nil
		},
		setRSVPFunc: func(_ context.Context, _, _ string, state model.RSVPState) error {
			gotState = state
			return nil
		},
	}
	notifications := &mockNotificationRepo{
		findByRGLFunc: func(_ context.Context, _, _, label string) (*model.Notification, error) {
			return &model.Notification{ID: "notification:invite", Label: label}, nil
		},
		deleteFunc: func(_ context.Context, id string) error {
			consumed = id
			return nil
		},
	}
	svc := newTestSessionService(sessions, games, notifications)

	if err := svc.JoinSession(context.Background(), memberUser(), "game:1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotState != model.RSVPAccepted {
		t.Errorf("expected accepted state, got %q", gotState)
	}
	if consumed != "notification:invite" {
		t.Errorf("expected invite notification consumed, deleted %q", consumed)
	}
}

func TestDeclineRSVP_RecordsDeclined(t *testing.T) {
	t.Parallel()

	var gotState model.RSVPState
	games := &mockGameRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Game, error) {
			return gameWithSession(), nil
		},
	}
	sessions := &mockSessionRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Session, error) {
			return liveSession(map[string]model.RSVPState{"user:member": model.RSVPInvited}), nil
		},
		setRSVPFunc: func(_ context.Context, _, _ string, state model.RSVPState) error {
			gotState = state
			return nil
		},
	}
	svc := newTestSessionService(sessions, games, nil)

	if err := svc.DeclineRSVP(context.Background(), memberUser(), "game:1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotState != model.RSVPDeclined {
		t.Errorf("expected declined state, got %q", gotState)
	}
}

func TestLeaveSession_RequiresAcceptedState(t *testing.T) {
	t.Parallel()

	games := &mockGameRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Game, error) {
			return gameWithSession(), nil
		},
	}
	sessions := &mockSessionRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Session, error) {
			return liveSession(map[string]model.RSVPState{"user:member": model.RSVPDeclined}), nil
		},
	}
	svc := newTestSessionService(sessions, games, nil)

	if err := svc.LeaveSession(context.Background(), memberUser(), "game:1"); !errors.Is(err, ErrNotJoined) {
		t.Errorf("expected ErrNotJoined, got %v", err)
	}
}

func TestLeaveSession_MovesToDeclined(t *testing.T) {
	t.Parallel()

	var gotState model.RSVPState
	games := &mockGameRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Game, error) {
			return gameWithSession(), nil
		},
	}
	sessions := &mockSessionRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Session, error) {
			return liveSession(map[string]model.RSVPState{"user:member": model.RSVPAccepted}), nil
		},
		setRSVPFunc: func(_ context.Context, _, _ string, state model.RSVPState) error {
			gotState = state
			return nil
		},
	}
	svc := newTestSessionService(sessions, games, nil)

	if err := svc.LeaveSession(context.Background(), memberUser(), "game:1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotState != model.RSVPDeclined {
		t.Errorf("expected declined state after leaving, got %q", gotState)
	}
}

// ============================================================================
// Remove Session Member Tests
// ============================================================================

func TestRemoveSessionMember_RevokesAndNotifies(t *testing.T) {
	t.Parallel()

	var removed bool
	var notice *model.Notification
	games := &mockGameRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Game, error) {
			return gameWithSession(), nil
		},
	}
	sessions := &mockSessionRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Session, error) {
			return liveSession(map[string]model.RSVPState{"user:member": model.RSVPAccepted}), nil
		},
		removeRSVPFunc: func(_ context.Context, _, userID string) error {
			removed = userID == "user:member"
			return nil
		},
	}
	notifications := &mockNotificationRepo{
		createFunc: func(_ context.Context, n *model.Notification) error {
			notice = n
			return nil
		},
	}
	svc := newTestSessionService(sessions, games, notifications)

	err := svc.RemoveSessionMember(context.Background(), adminUser(), &model.MemberTargetRequest{GameID: "game:1", UserID: "user:member"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !removed {
		t.Error("expected RSVP entry removed entirely")
	}
	if notice == nil || notice.Label != model.LabelRSVPRevoked || notice.Recipient != "user:member" {
		t.Fatalf("expected revocation notice, got %+v", notice)
	}
}

func TestRemoveSessionMember_RequiresAcceptedState(t *testing.T) {
	t.Parallel()

	games := &mockGameRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Game, error) {
			return gameWithSession(), nil
		},
	}
	sessions := &mockSessionRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Session, error) {
			return liveSession(map[string]model.RSVPState{"user:member": model.RSVPInvited}), nil
		},
	}
	svc := newTestSessionService(sessions, games, nil)

	err := svc.RemoveSessionMember(context.Background(), adminUser(), &model.MemberTargetRequest{GameID: "game:1", UserID: "user:member"})
	if !errors.Is(err, ErrNotJoined) {
		t.Errorf("expected ErrNotJoined, got %v", err)
	}
}

func TestRemoveSessionMember_NonAdminRejected(t *testing.T) {
	t.Parallel()

	games := &mockGameRepo{
		getByIDFunc: func(_ context.Context, _ string) (*model.Game, error) {
			return gameWithSession(), nil
		},
	}
	svc := newTestSessionService(nil, games, nil)

	err := svc.RemoveSessionMember(context.Background(), memberUser(), &model.MemberTargetRequest{GameID: "game:1", UserID: "user:admin"})
	if !errors.Is(err, ErrNotAdmin) {
		t.Errorf("expected ErrNotAdmin, got %v", err)
	}
}
