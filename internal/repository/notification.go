package repository

import (
	"context"

	"github.com/homegame/api/internal/database"
	"github.com/homegame/api/internal/model"
)

// NotificationRepository handles notification data access
type NotificationRepository struct {
	db database.Database
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db database.Database) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create creates a new notification
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		CREATE notification CONTENT {
			sender: $sender,
			recipient: $recipient,
			game: $game,
			label: $label,
			message: $message,
			date: time::now()
		}
	`

	vars := map[string]interface{}{
		"sender":    n.Sender,
		"recipient": n.Recipient,
		"game":      n.Game,
		"label":     n.Label,
		"message":   n.Message,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return err
	}

	created := &model.Notification{}
	if err := decodeRecord(result, created); err != nil {
		return err
	}

	n.ID = created.ID
	n.Date = created.Date
	return nil
}

// GetByID retrieves a notification by record ID
func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*model.Notification, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	n := &model.Notification{}
	if err := decodeRecord(result, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListByRecipient retrieves a user's notifications, newest first
func (r *NotificationRepository) ListByRecipient(ctx context.Context, userID string) ([]*model.Notification, error) {
	query := `SELECT * FROM notification WHERE recipient = $recipient ORDER BY date DESC`
	vars := map[string]interface{}{"recipient": userID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	var notifications []*model.Notification
	if err := decodeList(result, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// FindByRecipientGameLabel looks up a pending notification by its
// label, used to detect duplicate invites and to consume them.
func (r *NotificationRepository) FindByRecipientGameLabel(ctx context.Context, recipientID, gameID, label string) (*model.Notification, error) {
	query := `
		SELECT * FROM notification
		WHERE recipient = $recipient AND game = $game AND label = $label
		LIMIT 1
	`
	vars := map[string]interface{}{
		"recipient": recipientID,
		"game":      gameID,
		"label":     label,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	n := &model.Notification{}
	if err := decodeRecord(result, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Delete removes one notification
func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}

// DeleteByRecipient removes all of a user's notifications
func (r *NotificationRepository) DeleteByRecipient(ctx context.Context, userID string) error {
	query := `DELETE notification WHERE recipient = $recipient`
	vars := map[string]interface{}{"recipient": userID}

	return r.db.Execute(ctx, query, vars)
}

// DeleteByRecipientAndGame removes a user's pending notifications for
// one game, used when they leave it.
func (r *NotificationRepository) DeleteByRecipientAndGame(ctx context.Context, recipientID, gameID string) error {
	query := `DELETE notification WHERE recipient = $recipient AND game = $game`
	vars := map[string]interface{}{
		"recipient": recipientID,
		"game":      gameID,
	}

	return r.db.Execute(ctx, query, vars)
}

// DeleteByGameAndLabel removes a game's notifications carrying a label,
// used to purge session invites when the session goes away.
func (r *NotificationRepository) DeleteByGameAndLabel(ctx context.Context, gameID, label string) error {
	query := `DELETE notification WHERE game = $game AND label = $label`
	vars := map[string]interface{}{
		"game":  gameID,
		"label": label,
	}

	return r.db.Execute(ctx, query, vars)
}

// DeleteByGameExceptLabel removes a game's notifications while sparing
// one label. Venmo Cashout notices outlive the game they settled.
func (r *NotificationRepository) DeleteByGameExceptLabel(ctx context.Context, gameID, keepLabel string) error {
	query := `DELETE notification WHERE game = $game AND label != $keep`
	vars := map[string]interface{}{
		"game": gameID,
		"keep": keepLabel,
	}

	return r.db.Execute(ctx, query, vars)
}
