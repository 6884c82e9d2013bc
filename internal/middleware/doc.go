// Package middleware provides the HTTP middleware chain for the
// HomeGame API: panic recovery, request IDs, structured request
// logging, security headers, CORS for the development frontend, per-IP
// rate limiting, and cookie-session authentication.
package middleware
