// Package model defines the domain entities and request/response shapes
// for the HomeGame API: users, games, sessions, posts, notifications,
// password-reset tokens, and the wire-level error envelope.
//
// Entities are passive documents persisted in SurrealDB; cross-document
// consistency (cascading deletes, profit-map bookkeeping) is enforced by
// the service layer, not the store.
package model
