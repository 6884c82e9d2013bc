package database

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// recordingDB captures the query and vars passed to Query
type recordingDB struct {
	query string
	vars  map[string]interface{}
	err   error
}

func (db *recordingDB) Connect(_ context.Context) error { return nil }
func (db *recordingDB) Close() error                    { return nil }
func (db *recordingDB) Ping(_ context.Context) error    { return nil }

func (db *recordingDB) Query(_ context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	db.query = query
	db.vars = vars
	return nil, db.err
}

func (db *recordingDB) QueryOne(_ context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	return nil, nil
}

func (db *recordingDB) Execute(_ context.Context, query string, vars map[string]interface{}) error {
	return nil
}

func TestAtomicBatchNamespacesVariables(t *testing.T) {
	db := &recordingDB{}

	batch := NewAtomicBatch()
	batch.Add("UPDATE $id SET profit += $delta", map[string]interface{}{
		"id":    "game:1",
		"delta": 2500,
	})
	batch.Add("UPDATE $id SET profit += $delta", map[string]interface{}{
		"id":    "game:2",
		"delta": -2500,
	})

	if batch.Len() != 2 {
		t.Fatalf("expected 2 statements, got %d", batch.Len())
	}

	if err := batch.Execute(context.Background(), db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(db.query, "BEGIN TRANSACTION;") {
		t.Errorf("query does not begin a transaction: %q", db.query)
	}
	if !strings.HasSuffix(db.query, "COMMIT TRANSACTION;") {
		t.Errorf("query does not commit: %q", db.query)
	}
	if !strings.Contains(db.query, "$v1_id") || !strings.Contains(db.query, "$v2_id") {
		t.Errorf("statement variables not namespaced: %q", db.query)
	}
	if strings.Contains(db.query, "$id ") {
		t.Errorf("original variable name leaked into query: %q", db.query)
	}

	if db.vars["v1_id"] != "game:1" || db.vars["v2_id"] != "game:2" {
		t.Errorf("vars not namespaced per statement: %#v", db.vars)
	}
	if db.vars["v1_delta"] != 2500 || db.vars["v2_delta"] != -2500 {
		t.Errorf("values mixed up across statements: %#v", db.vars)
	}
}

func TestAtomicBatchAppendsMissingSemicolons(t *testing.T) {
	db := &recordingDB{}

	batch := NewAtomicBatch()
	batch.Add("DELETE $id", map[string]interface{}{"id": "session:1"})
	batch.Add("UPDATE $id SET current_session = NONE;", map[string]interface{}{"id": "game:1"})

	if err := batch.Execute(context.Background(), db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(db.query, ";;") {
		t.Errorf("double semicolon in query: %q", db.query)
	}
	for _, line := range strings.Split(db.query, "\n") {
		if line == "" {
			continue
		}
		if !strings.HasSuffix(strings.TrimSpace(line), ";") {
			t.Errorf("statement missing terminator: %q", line)
		}
	}
}

func TestAtomicBatchEmptyIsNoOp(t *testing.T) {
	db := &recordingDB{err: errors.New("should not be called")}

	if err := NewAtomicBatch().Execute(context.Background(), db); err != nil {
		t.Fatalf("empty batch should be a no-op, got %v", err)
	}
	if db.query != "" {
		t.Errorf("empty batch hit the database: %q", db.query)
	}
}

func TestAtomicBatchPropagatesQueryError(t *testing.T) {
	db := &recordingDB{err: ErrQuery}

	batch := NewAtomicBatch()
	batch.Add("DELETE $id", map[string]interface{}{"id": "session:1"})

	if err := batch.Execute(context.Background(), db); !errors.Is(err, ErrQuery) {
		t.Fatalf("expected ErrQuery, got %v", err)
	}
}
