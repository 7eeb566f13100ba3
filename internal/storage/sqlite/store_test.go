package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sbplanet/currencybank/internal/bank"
)

func mustOpen(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "Database.sqlite"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRoundtrip(t *testing.T) {
	s := mustOpen(t)
	ctx := context.Background()

	if err := s.InsertAccount(ctx, bank.Account{ID: 7, Name: "Alice", Balance: 100}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.InsertAccount(ctx, bank.Account{ID: 3, Name: "Bob", Balance: 0}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	rows, err := s.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != 3 || rows[1].ID != 7 {
		t.Fatalf("list = %+v, want Bob(3) then Alice(7)", rows)
	}

	affected, err := s.UpdateBalance(ctx, 7, 250)
	if err != nil || affected != 1 {
		t.Fatalf("update: affected=%d err=%v, want 1, nil", affected, err)
	}
	rows, _ = s.ListAccounts(ctx)
	if rows[1].Balance != 250 {
		t.Fatalf("balance after update = %d, want 250", rows[1].Balance)
	}

	if n, err := s.Count(ctx); err != nil || n != 2 {
		t.Fatalf("count = %d, %v, want 2, nil", n, err)
	}
}

func TestUpdateBalanceMissingRow(t *testing.T) {
	s := mustOpen(t)
	affected, err := s.UpdateBalance(context.Background(), 999, 10)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if affected != 0 {
		t.Fatalf("affected = %d, want 0", affected)
	}
}

func TestDeleteByName(t *testing.T) {
	s := mustOpen(t)
	ctx := context.Background()
	if err := s.InsertAccount(ctx, bank.Account{ID: 1, Name: "Alice", Balance: 5}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	affected, err := s.DeleteByName(ctx, "Alice")
	if err != nil || affected != 1 {
		t.Fatalf("delete existing: affected=%d err=%v, want 1, nil", affected, err)
	}
	affected, err = s.DeleteByName(ctx, "Alice")
	if err != nil || affected != 0 {
		t.Fatalf("delete missing: affected=%d err=%v, want 0, nil", affected, err)
	}
}

func TestDuplicateNameRejected(t *testing.T) {
	s := mustOpen(t)
	ctx := context.Background()
	if err := s.InsertAccount(ctx, bank.Account{ID: 1, Name: "Alice"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.InsertAccount(ctx, bank.Account{ID: 2, Name: "Alice"}); err == nil {
		t.Fatal("duplicate account name must violate the unique index")
	}
}

func TestDuplicateIDRejected(t *testing.T) {
	s := mustOpen(t)
	ctx := context.Background()
	if err := s.InsertAccount(ctx, bank.Account{ID: 1, Name: "Alice"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.InsertAccount(ctx, bank.Account{ID: 1, Name: "Bob"}); err == nil {
		t.Fatal("duplicate ID must violate the primary key")
	}
}
