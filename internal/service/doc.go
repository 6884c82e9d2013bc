// Package service holds the business logic of the HomeGame API:
// account lifecycle with login lockout, game membership and its
// invariants, session RSVP transitions, the message board cap, cashout
// settlement, and notification fan-out.
//
// Services depend on repository interfaces declared here, return
// sentinel errors from errors.go, and leave wire formatting to the
// handler layer. Cross-document cascades run sequentially; only
// single-document multi-statement writes are atomic.
package service
