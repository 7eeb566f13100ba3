// Package postgres provides the networked storage backend on a pgx pool.
//
// It is intentionally small and explicit: it maps bank.Account to the
// BankAccounts table and runs the necessary statements. The ledger service
// owns all concurrency discipline above it.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
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

// Store holds a pgx connection pool. All methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string and
// ensures the schema exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// Ping verifies connectivity.
func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

// InsertAccount adds a row for the account.
func (s *Store) InsertAccount(ctx context.Context, a bank.Account) error {
	_, err := s.pool.Exec(ctx, `
        insert into BankAccounts (ID, AccountName, Balance)
        values ($1, $2, $3)
    `, a.ID, a.Name, a.Balance)
	return err
}

// ListAccounts returns every account row.
func (s *Store) ListAccounts(ctx context.Context) ([]bank.Account, error) {
	rows, err := s.pool.Query(ctx, `
        select ID, AccountName, Balance
        from BankAccounts
        order by ID
    `)
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
	ct, err := s.pool.Exec(ctx, `
        update BankAccounts set Balance = $1 where ID = $2
    `, balance, id)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

// DeleteByName removes rows matching the exact account name.
func (s *Store) DeleteByName(ctx context.Context, name string) (int64, error) {
	ct, err := s.pool.Exec(ctx, `
        delete from BankAccounts where AccountName = $1
    `, name)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

// Count returns the number of account rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `select count(*) from BankAccounts`).Scan(&n)
	return n, err
}
