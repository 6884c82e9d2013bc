// Package config loads and validates environment-driven configuration
// for the HomeGame API: server, database, session-cookie, auth lockout,
// rate limiting, and outbound mail settings.
package config
