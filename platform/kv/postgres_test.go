package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeRow struct {
	value []byte
	err   error
}

func (r fakeRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.value
	return nil
}

type fakeDB struct {
	rows    map[string][]byte
	execErr error
	queries []string
}

func newFakeDB() *fakeDB {
	return &fakeDB{rows: make(map[string][]byte)}
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	f.queries = append(f.queries, sql)
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	key := args[0].(string)
	if len(args) == 2 {
		f.rows[key] = args[1].([]byte)
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}
	delete(f.rows, key)
	return pgconn.NewCommandTag("DELETE 1"), nil
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...interface{}) pgx.Row {
	f.queries = append(f.queries, sql)
	value, ok := f.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{value: value}
}

func TestPostgresStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newFakeDB()
	store := NewPostgresStore(db)

	if _, err := store.Get(ctx, "cart"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Set(ctx, "cart", []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.Get(ctx, "cart")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "[]" {
		t.Fatalf("expected [], got %q", got)
	}
	if err := store.Delete(ctx, "cart"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := db.rows["cart"]; ok {
		t.Fatal("expected row to be deleted")
	}
}

func TestPostgresStoreWrapsErrors(t *testing.T) {
	ctx := context.Background()
	db := newFakeDB()
	db.execErr = errors.New("connection refused")
	store := NewPostgresStore(db)

	err := store.Set(ctx, "cart", []byte(`[]`))
	if err == nil || !errors.Is(err, db.execErr) {
		t.Fatalf("expected wrapped exec error, got %v", err)
	}
	if err := store.Delete(ctx, "cart"); !errors.Is(err, db.execErr) {
		t.Fatalf("expected wrapped exec error, got %v", err)
	}
}
