package model

import "time"

// Notification labels. Labels are part of the wire contract: game
// invites and session invites are looked up by label, and "Venmo
// Cashout" notifications survive game deletion.
const (
	LabelGameInvite    = "Game Invite"
	LabelSessionInvite = "Session Invite"
	LabelNewMessage    = "New Message"
	LabelGameNotice    = "Game Notice"
	LabelGameDeleted   = "Game Deleted"
	LabelRSVPRevoked   = "Session RSVP Revoked"
	LabelVenmoCashout  = "Venmo Cashout"
)

// Notification is a directed, labeled message from one user to another,
// optionally tied to a game.
type Notification struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Recipient string    `json:"recipient"`
	Game      string    `json:"game,omitempty"`
	Label     string    `json:"label"`
	Message   string    `json:"message"`
	Date      time.Time `json:"date"`
}
