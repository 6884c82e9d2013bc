package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/homegame/api/internal/database"
	"github.com/homegame/api/internal/model"
)

// CashoutService settles a session: it folds each player's net result
// into the game ledger, sends Venmo deep links to players who asked for
// them, and tears the session down.
type CashoutService struct {
	games         GameRepository
	sessions      SessionRepository
	notifications NotificationRepository
}

// CashoutServiceConfig holds configuration for the cashout service
type CashoutServiceConfig struct {
	Games         GameRepository
	Sessions      SessionRepository
	Notifications NotificationRepository
}

// NewCashoutService creates a new cashout service
func NewCashoutService(cfg CashoutServiceConfig) *CashoutService {
	return &CashoutService{
		games:         cfg.Games,
		sessions:      cfg.Sessions,
		notifications: cfg.Notifications,
	}
}

// SubmitCashout applies one session's results. The ledger update is a
// single atomic batch, so profits never apply partially; the notification
// fan-out and session teardown that follow are sequential best-effort.
func (s *CashoutService) SubmitCashout(ctx context.Context, user model.SessionUser, req *model.CashoutRequest) error {
	game, err := s.games.GetByID(ctx, req.GameID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrGameNotFound
		}
		return err
	}
	if !game.IsAdmin(user.ID) {
		return ErrNotAdmin
	}
	if game.CurrentSession == "" {
		return ErrNoSession
	}

	deltas := make(map[string]int64, len(req.Players))
	for _, player := range req.Players {
		if !game.IsMember(player.UserID) {
			return ErrNotMember
		}
		deltas[player.UserID] = player.Cashout - player.Buyin
	}

	if err := s.games.ApplyProfitDeltas(ctx, game.ID, deltas); err != nil {
		return err
	}

	for _, player := range req.Players {
		if !player.Venmo || game.VenmoUsername == "" {
			continue
		}
		net := player.Cashout - player.Buyin
		if net == 0 {
			continue
		}
		notice := &model.Notification{
			Sender:    user.ID,
			Recipient: player.UserID,
			Game:      game.ID,
			Label:     model.LabelVenmoCashout,
			Message: fmt.Sprintf("Settle up for %s: %s",
				game.Name, VenmoLink(game.VenmoUsername, net, game.Name)),
		}
		if err := s.notifications.Create(ctx, notice); err != nil {
			slog.Error("cashout: venmo notice failed",
				slog.String("player_id", player.UserID), slog.Any("error", err))
		}
	}

	if err := s.sessions.Delete(ctx, game.CurrentSession); err != nil {
		slog.Error("cashout: session delete failed", slog.String("game_id", game.ID), slog.Any("error", err))
	}
	if err := s.games.SetCurrentSession(ctx, game.ID, ""); err != nil {
		slog.Error("cashout: session unlink failed", slog.String("game_id", game.ID), slog.Any("error", err))
	}
	if err := s.notifications.DeleteByGameAndLabel(ctx, game.ID, model.LabelSessionInvite); err != nil {
		slog.Error("cashout: invite purge failed", slog.String("game_id", game.ID), slog.Any("error", err))
	}

	slog.Info("cashout settled",
		slog.String("game_id", game.ID), slog.Int("players", len(req.Players)))
	return nil
}

// VenmoLink builds a Venmo deep link settling a player's net result in
// cents against the game's payee handle. A losing player is charged;
// a winning player is paid.
func VenmoLink(payee string, netCents int64, note string) string {
	txn := "pay"
	amount := netCents
	if netCents < 0 {
		txn = "charge"
		amount = -netCents
	}

	q := url.Values{}
	q.Set("txn", txn)
	q.Set("amount", fmt.Sprintf("%d.%02d", amount/100, amount%100))
	q.Set("note", note)

	return fmt.Sprintf("https://venmo.com/%s?%s", url.PathEscape(payee), q.Encode())
}
