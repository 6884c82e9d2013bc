package model

import "time"

// Game is a persistent poker group: an ordered member list, exactly one
// admin, a running profit ledger, and at most one active session.
//
// Invariants maintained by the service layer:
//   - Admin is always present in Members.
//   - ProfitMap keys are exactly the Members set.
//   - CurrentSession is empty or references one live session.
//
// Profit amounts are fixed-point cents (int64). The upstream data was
// inconsistent between strings and floats; cents are exact and sortable.
type Game struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	GameType       string           `json:"game_type,omitempty"`
	Stakes         string           `json:"stakes,omitempty"`
	MaxBuyin       int64            `json:"max_buyin,omitempty"` // cents, 0 = no cap
	VenmoUsername  string           `json:"venmo_username,omitempty"`
	CurrentSession string           `json:"current_session,omitempty"`
	Members        []string         `json:"members"`
	ProfitMap      map[string]int64 `json:"member_profit_map"`
	Admin          string           `json:"admin"`
	CreatedOn      time.Time        `json:"created_on"`
	UpdatedOn      time.Time        `json:"updated_on"`
}

// URL is the frontend path for the game.
func (g *Game) URL() string {
	return "/game/" + g.ID
}

// IsAdmin reports whether the user administers this game.
func (g *Game) IsAdmin(userID string) bool {
	return g.Admin == userID
}

// IsMember reports whether the user belongs to this game.
func (g *Game) IsMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// GameSummary is the shape returned by the game list endpoint.
type GameSummary struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Admin     string           `json:"admin"`
	ProfitMap map[string]int64 `json:"member_profit_map"`
	URL       string           `json:"url"`
}

// Summary projects the list shape from a full game.
func (g *Game) Summary() GameSummary {
	return GameSummary{
		ID:        g.ID,
		Name:      g.Name,
		Admin:     g.Admin,
		ProfitMap: g.ProfitMap,
		URL:       g.URL(),
	}
}

// GameDetails is the shape returned by the game details endpoint:
// the game, its members with credentials redacted, the live session if
// one exists, and whether the viewer administers it.
type GameDetails struct {
	Game    *Game    `json:"game"`
	Members []*User  `json:"members"`
	Session *Session `json:"session,omitempty"`
	IsAdmin bool     `json:"isAdmin"`
}

// GameFormRequest is the body of POST /api/create_game and
// POST /api/edit_game (GameID set only when editing).
type GameFormRequest struct {
	GameID        string `json:"gameId,omitempty"`
	Name          string `json:"name" validate:"required,min=5,max=20,gamename" errmsg:"Name must be 5 to 20 letters, numbers, apostrophes, and/or spaces (not at start or end)"`
	GameType      string `json:"game_type" validate:"max=20,gamename" errmsg:"Game type must be less than 20 letters, numbers, apostrophes and/or spaces (not at start or end)"`
	Stakes        string `json:"stakes" validate:"max=20" errmsg:"Stakes must be less than 20 characters long"`
	MaxBuyin      int64  `json:"max_buyin" validate:"min=0" errmsg:"Max buy-in cannot be negative"`
	VenmoUsername string `json:"venmo_username" validate:"max=30" errmsg:"Venmo username must be less than 30 characters long"`
}

// GameIDRequest is the body of game-scoped posts that carry only the
// target game (delete_game, join_game, leave_game).
type GameIDRequest struct {
	GameID string `json:"gameId" validate:"required" errmsg:"Game ID is required"`
}

// AddMemberRequest is the body of POST /api/add_member.
type AddMemberRequest struct {
	GameID   string `json:"gameId" validate:"required" errmsg:"Game ID is required"`
	Username string `json:"username" validate:"required,min=3,max=20,username" errmsg:"Username must be 3 to 20 letters, numbers, and/or underscores"`
}

// MemberTargetRequest is the body of POST /api/kick_member and
// POST /api/remove_session_member.
type MemberTargetRequest struct {
	GameID string `json:"gameId" validate:"required" errmsg:"Game ID is required"`
	UserID string `json:"userId" validate:"required" errmsg:"User ID is required"`
}

// UpdateProfitRequest is the body of POST /api/update_profit. Profit is
// the member's new cumulative amount in cents.
type UpdateProfitRequest struct {
	GameID   string `json:"gameId" validate:"required" errmsg:"Game ID is required"`
	MemberID string `json:"memberId" validate:"required" errmsg:"Member ID is required"`
	Profit   int64  `json:"profit"`
}
