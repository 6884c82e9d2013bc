package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Account Errors =====
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already registered")
	ErrUsernameTaken     = errors.New("username already registered")
	ErrPasswordIncorrect = errors.New("password incorrect")
	ErrAccountLocked     = errors.New("account locked from too many login attempts")
	ErrTokenInvalid      = errors.New("reset token invalid or expired")
)

// ===== Game Errors =====
var (
	ErrGameNotFound   = errors.New("game not found")
	ErrNameConflict   = errors.New("admin already runs a game with this name")
	ErrNotAdmin       = errors.New("not the game admin")
	ErrNotMember      = errors.New("not a member of this game")
	ErrSelfInvite     = errors.New("cannot invite yourself")
	ErrExistingInvite = errors.New("invite already pending")
	ErrNoInvite       = errors.New("no pending invite")
)

// ===== Session Errors =====
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("game already has a session in progress")
	ErrNoSession       = errors.New("game has no session in progress")
	ErrNotJoined       = errors.New("member has not joined the session")
)

// ===== Board Errors =====
var (
	ErrPostNotFound     = errors.New("post not found")
	ErrTooManyPosts     = errors.New("post cap reached for member")
	ErrNotAdminOrAuthor = errors.New("only the author or the game admin may delete a post")
)

// ===== Notification Errors =====
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotRecipient         = errors.New("notification belongs to another user")
)

// ===== Mail Errors =====
var (
	ErrMailDelivery = errors.New("email delivery failed")
)
