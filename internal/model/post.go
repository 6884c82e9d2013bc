package model

import "time"

// Post is one message on a game's board.
type Post struct {
	ID        string    `json:"id"`
	Game      string    `json:"game"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	Date      time.Time `json:"date"`
	CreatedOn time.Time `json:"created_on"`
}

// MaxPostsPerMember caps live posts per non-admin member per game.
const MaxPostsPerMember = 2

// NewMessageRequest is the body of POST /api/new_message.
type NewMessageRequest struct {
	GameID  string `json:"gameId" validate:"required" errmsg:"Game ID is required"`
	Message string `json:"message" validate:"required,min=1,max=140" errmsg:"Message must be between 1 and 140 characters"`
}

// DeleteMessageRequest is the body of POST /api/delete_message.
type DeleteMessageRequest struct {
	GameID string `json:"gameId" validate:"required" errmsg:"Game ID is required"`
	PostID string `json:"postId" validate:"required" errmsg:"Post ID is required"`
}
