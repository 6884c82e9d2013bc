// Package repository implements SurrealDB data access for the HomeGame
// API. Each repository owns one table and speaks SurrealQL through the
// database.Database interface; multi-statement writes against a single
// record go through database.AtomicBatch.
//
// Repositories return database sentinel errors (ErrNotFound,
// ErrDuplicate) so services can branch with errors.Is without knowing
// about SurrealDB.
package repository
