package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/sbplanet/currencybank/internal/bank"
)

func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres store tests")
	}
	return dsn
}

func mustOpen(t *testing.T, dsn string) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func truncate(t *testing.T, s *Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := s.pool.Exec(ctx, `truncate table BankAccounts`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func TestStoreRoundtrip(t *testing.T) {
	dsn := getTestDSN(t)
	s := mustOpen(t, dsn)
	defer s.Close()
	truncate(t, s)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

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

	affected, err = s.DeleteByName(ctx, "Bob")
	if err != nil || affected != 1 {
		t.Fatalf("delete: affected=%d err=%v, want 1, nil", affected, err)
	}
	if n, err := s.Count(ctx); err != nil || n != 1 {
		t.Fatalf("count = %d, %v, want 1, nil", n, err)
	}
}

func TestDuplicateNameRejected(t *testing.T) {
	dsn := getTestDSN(t)
	s := mustOpen(t, dsn)
	defer s.Close()
	truncate(t, s)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.InsertAccount(ctx, bank.Account{ID: 1, Name: "Alice"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.InsertAccount(ctx, bank.Account{ID: 2, Name: "Alice"}); err == nil {
		t.Fatal("duplicate account name must violate the unique index")
	}
}
