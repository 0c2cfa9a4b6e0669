package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mbolis/campus-footprint/records"
	"golang.org/x/crypto/bcrypt"
)

func openTestDB(t *testing.T) *RowStore {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRowStore(db)
}

func TestRowStoreEmpty(t *testing.T) {
	store := openTestDB(t)

	rows, err := store.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
	if len(rows[0]) != len(records.Header) || rows[0][0] != records.ColID {
		t.Fatalf("unexpected header %v", rows[0])
	}
}

func TestRowStoreAppendOrder(t *testing.T) {
	ctx := context.Background()
	store := openTestDB(t)

	for _, name := range []string{"first", "second", "third"} {
		row := make([]string, len(records.Header))
		row[2] = name
		row[17] = "12.5"
		if err := store.Append(ctx, row); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	// short rows are padded
	if err := store.Append(ctx, []string{"id-4", "", "fourth"}); err != nil {
		t.Fatalf("append short row: %v", err)
	}

	recs, err := records.Snapshot(ctx, store)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("expected 4 records, got %d", len(recs))
	}
	for i, want := range []string{"first", "second", "third", "fourth"} {
		if recs[i].Name != want {
			t.Fatalf("record %d: expected %s, got %s", i, want, recs[i].Name)
		}
	}
	if recs[0].Total != 12.5 || recs[3].Total != 0 {
		t.Fatalf("unexpected totals %v %v", recs[0].Total, recs[3].Total)
	}
}

func TestRowStoreRejectsWideRow(t *testing.T) {
	store := openTestDB(t)
	row := make([]string, len(records.Header)+1)
	if err := store.Append(context.Background(), row); err == nil {
		t.Fatalf("expected too many cells to fail")
	}
}

func TestUpsertUser(t *testing.T) {
	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "users.sqlite"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if err := UpsertUser(ctx, db, "admin", "first"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := UpsertUser(ctx, db, "admin", "second"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := UpsertUser(ctx, db, "", "x"); err == nil {
		t.Fatalf("expected empty username to fail")
	}

	var hash []byte
	if err := db.QueryRow("SELECT password_hash FROM user WHERE username = ?", "admin").Scan(&hash); err != nil {
		t.Fatalf("select: %v", err)
	}
	if bcrypt.CompareHashAndPassword(hash, []byte("second")) != nil {
		t.Fatalf("password was not replaced")
	}
}
