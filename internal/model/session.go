package model

import "time"

// RSVPState is a member's attendance status for a session. Absence from
// the map means no relationship yet.
type RSVPState string

const (
	RSVPInvited  RSVPState = "invited"
	RSVPAccepted RSVPState = "accepted"
	RSVPDeclined RSVPState = "declined"
)

// IsValid reports whether the state is one of the known RSVP states.
func (s RSVPState) IsValid() bool {
	switch s {
	case RSVPInvited, RSVPAccepted, RSVPDeclined:
		return true
	default:
		return false
	}
}

// Session is one scheduled meetup belonging to a game. Date and time are
// free-form display strings, matching what members type into the form.
type Session struct {
	ID        string               `json:"id"`
	Game      string               `json:"game"`
	Date      string               `json:"date"`
	Time      string               `json:"time"`
	Address   string               `json:"address"`
	RSVPMap   map[string]RSVPState `json:"rsvp_map"`
	CreatedOn time.Time            `json:"created_on"`
	UpdatedOn time.Time            `json:"updated_on"`
}

// SessionFormRequest is the body of POST /api/create_session and
// POST /api/edit_session (SessionID set only when editing).
type SessionFormRequest struct {
	GameID    string `json:"gameId" validate:"required" errmsg:"Game ID is required"`
	SessionID string `json:"sessionId,omitempty"`
	Date      string `json:"date" validate:"required,max=20,datefield" errmsg:"Required input date must be less than 20 letters, numbers, periods, and/or spaces (not at start or end)"`
	Time      string `json:"time" validate:"required,max=20,timefield" errmsg:"Required input time must be less than 20 letters, numbers, colons, and/or spaces (not at start or end)"`
	Address   string `json:"address" validate:"required,max=30" errmsg:"Required input address must be less than 30 characters long"`
}

// RSVPInviteRequest is the body of POST /api/send_rsvp_invite.
type RSVPInviteRequest struct {
	GameID string `json:"gameId" validate:"required" errmsg:"Game ID is required"`
	UserID string `json:"userId" validate:"required" errmsg:"User ID is required"`
}

// CashoutPlayer is one settled player in a cashout submission. Buyin and
// Cashout are non-negative cents; Venmo requests a settlement deep link.
type CashoutPlayer struct {
	UserID  string `json:"userId" validate:"required" errmsg:"User ID is required"`
	Buyin   int64  `json:"buyin" validate:"min=0" errmsg:"Buy-in cannot be negative"`
	Cashout int64  `json:"cashout" validate:"min=0" errmsg:"Cashout cannot be negative"`
	Venmo   bool   `json:"venmo"`
}

// CashoutRequest is the body of POST /api/submit_cashout.
type CashoutRequest struct {
	GameID  string          `json:"gameId" validate:"required" errmsg:"Game ID is required"`
	Players []CashoutPlayer `json:"players" validate:"required,min=1,dive" errmsg:"At least one player is required"`
}
