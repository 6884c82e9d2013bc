package model

import "time"

// User represents an account. Password holds the bcrypt hash; it is
// redacted before the user is placed in a session or a response.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Password      string    `json:"password,omitempty"`
	LoginAttempts int       `json:"login_attempts"`
	LockUntil     int64     `json:"lock_until,omitempty"` // unix millis, 0 = unlocked
	Games         []string  `json:"games"`
	VenmoUsername string    `json:"venmo_username,omitempty"`
	CreatedOn     time.Time `json:"created_on"`
	UpdatedOn     time.Time `json:"updated_on"`
}

// IsLocked reports whether the account is currently locked out.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockUntil > 0 && u.LockUntil > now.UnixMilli()
}

// Public returns a copy safe to place in sessions and responses.
func (u *User) Public() *User {
	pub := *u
	pub.Password = ""
	return &pub
}

// SessionUser is the snapshot of a user stored in the server-side HTTP
// session and exposed to handlers through the request context.
type SessionUser struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	VenmoUsername string `json:"venmo_username,omitempty"`
}

// HTTPSession is a server-side session record. The cookie carries only
// the session ID, signed with HMAC-SHA256.
type HTTPSession struct {
	ID        string      `json:"id"`
	User      SessionUser `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
	CreatedOn time.Time   `json:"created_on"`
}

// Expired reports whether the session is past its lifetime.
func (s *HTTPSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Token is a one-time password-reset token bound to a user.
type Token struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedOn time.Time `json:"created_on"`
}

// Username and password constraints, matching the signup form rules.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
	MinPasswordLength = 8
	MaxPasswordLength = 64
)

// SignupRequest is the body of POST /api/signup.
type SignupRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=20,username" errmsg:"Username must be 3 to 20 letters, numbers, and/or underscores"`
	Email        string `json:"email" validate:"required,email" errmsg:"Please enter a valid email"`
	Password     string `json:"password" validate:"required,strongpassword" errmsg:"Password must be 8 to 20 characters with one uppercase and one lowercase letter, one number, and one symbol"`
	PasswordConf string `json:"password_conf" validate:"required" errmsg:"Password confirmation cannot be empty"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required" errmsg:"Email cannot be empty"`
	Password string `json:"password" validate:"required" errmsg:"Password cannot be empty"`
}

// PasswordCheckRequest is the body of POST /api/password_check.
type PasswordCheckRequest struct {
	Password string `json:"password" validate:"required" errmsg:"Password cannot be empty"`
}

// ChangeEmailRequest is the body of POST /api/change_email.
type ChangeEmailRequest struct {
	Email string `json:"email" validate:"required,email" errmsg:"Please enter a valid email"`
}

// ChangeUsernameRequest is the body of POST /api/change_username.
type ChangeUsernameRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20,username" errmsg:"Username must be 3 to 20 letters, numbers, and/or underscores"`
}

// ChangePasswordRequest is the body of POST /api/change_password. Token
// is set when resetting via an emailed link instead of a live session.
type ChangePasswordRequest struct {
	Password string `json:"password" validate:"required,strongpassword" errmsg:"Password must be 8 to 20 characters with one uppercase and one lowercase letter, one number, and one symbol"`
	Token    string `json:"token,omitempty"`
}

// SendPasswordLinkRequest is the body of POST /api/send_password_link.
type SendPasswordLinkRequest struct {
	Email string `json:"email" validate:"required,email" errmsg:"Please enter a valid email"`
}

// ContactFormRequest is the body of POST /api/submit_contact_form.
type ContactFormRequest struct {
	Name    string `json:"name" validate:"required,max=50" errmsg:"Name must be 1 to 50 characters"`
	Email   string `json:"email" validate:"required,email" errmsg:"Please enter a valid email"`
	Message string `json:"message" validate:"required,max=1000" errmsg:"Message must be 1 to 1000 characters"`
}

// DeleteNotificationRequest is the body of POST /api/delete_notification.
type DeleteNotificationRequest struct {
	NotificationID string `json:"notificationId" validate:"required" errmsg:"Notification ID is required"`
}
