package database

// Atomic batches for single-aggregate writes.
//
// SurrealDB transactions here are BATCH-BASED: statements accumulate in
// memory and execute together inside BEGIN TRANSACTION / COMMIT
// TRANSACTION. There is no isolation between Add() calls; everything
// succeeds or fails at Execute time. Variables are namespaced per
// statement so two statements may both bind $id without colliding.

import (
	"context"
	"fmt"
	"strings"
)

// AtomicBatch accumulates statements that must succeed together.
type AtomicBatch struct {
	statements []string
	vars       map[string]interface{}
	counter    int
}

// NewAtomicBatch creates an empty batch.
func NewAtomicBatch() *AtomicBatch {
	return &AtomicBatch{
		vars: make(map[string]interface{}),
	}
}

// Add appends a statement, renaming its variables to avoid collisions
// with other statements in the batch ($id becomes $v1_id, $v2_id, ...).
func (b *AtomicBatch) Add(query string, vars map[string]interface{}) *AtomicBatch {
	b.counter++
	for name, value := range vars {
		renamed := fmt.Sprintf("v%d_%s", b.counter, name)
		query = strings.ReplaceAll(query, "$"+name, "$"+renamed)
		b.vars[renamed] = value
	}
	b.statements = append(b.statements, query)
	return b
}

// Len returns the number of statements in the batch.
func (b *AtomicBatch) Len() int {
	return len(b.statements)
}

// Execute runs all statements as a single transaction. An empty batch
// is a no-op.
func (b *AtomicBatch) Execute(ctx context.Context, db Database) error {
	if len(b.statements) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("BEGIN TRANSACTION;\n")
	for _, stmt := range b.statements {
		sb.WriteString(stmt)
		if !strings.HasSuffix(strings.TrimSpace(stmt), ";") {
			sb.WriteString(";")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("COMMIT TRANSACTION;")

	_, err := db.Query(ctx, sb.String(), b.vars)
	return err
}
