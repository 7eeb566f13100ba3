// Package sqlite provides the embedded file-based storage backend.
//
// It drives database/sql with the mattn/go-sqlite3 driver and bootstraps the
// BankAccounts schema on open. WAL journaling is enabled so external readers
// (the host's admin tooling) can inspect the file while the ledger holds it.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/sbplanet/currencybank/internal/bank"
)

const schema = `
CREATE TABLE IF NOT EXISTS BankAccounts (
    ID INTEGER PRIMARY KEY,
    AccountName TEXT,
    Balance BIGINT
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_bank_accounts_name
    ON BankAccounts(AccountName);
`

// Store holds a single shared sqlite connection. Concurrent callers
// coordinate through the ledger service's lock rather than a pool.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates the parent directory if absent, opens the database file and
// ensures the schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	connStr := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping verifies connectivity.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// InsertAccount adds a row for the account.
func (s *Store) InsertAccount(ctx context.Context, a bank.Account) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO BankAccounts (ID, AccountName, Balance) VALUES (?, ?, ?)`,
		a.ID, a.Name, a.Balance)
	return err
}

// ListAccounts returns every account row.
func (s *Store) ListAccounts(ctx context.Context) ([]bank.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ID, AccountName, Balance FROM BankAccounts ORDER BY ID`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]bank.Account, 0)
	for rows.Next() {
		var a bank.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Balance); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateBalance sets the balance of the row keyed by ID.
func (s *Store) UpdateBalance(ctx context.Context, id int, balance int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE BankAccounts SET Balance = ? WHERE ID = ?`, balance, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteByName removes rows matching the exact account name.
func (s *Store) DeleteByName(ctx context.Context, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM BankAccounts WHERE AccountName = ?`, name)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Count returns the number of account rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM BankAccounts`).Scan(&n)
	return n, err
}
