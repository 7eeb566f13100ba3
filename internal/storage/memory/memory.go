package memory

// Package memory provides a simple in-memory implementation used for
// development and tests. It keeps code paths easy to follow while allowing a
// real DB backend to be plugged in unchanged.

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/sbplanet/currencybank/internal/bank"
)

// ErrDuplicate mirrors the unique-key violations a SQL backend would raise
// for a duplicate ID or account name.
var ErrDuplicate = errors.New("duplicate key")

// Store is an in-memory implementation of storage.Store guarded by an
// RWMutex for concurrent reads/writes.
type Store struct {
	mu       sync.RWMutex
	accounts map[int]bank.Account
	byName   map[string]int
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		accounts: make(map[int]bank.Account),
		byName:   make(map[string]int),
	}
}

// Seed inserts an account without uniqueness checks, for test setup.
func (s *Store) Seed(a bank.Account) {
	s.mu.Lock()
	s.accounts[a.ID] = a
	s.byName[a.Name] = a.ID
	s.mu.Unlock()
}

// Reset drops all rows.
func (s *Store) Reset() {
	s.mu.Lock()
	s.accounts = map[int]bank.Account{}
	s.byName = map[string]int{}
	s.mu.Unlock()
}

// InsertAccount adds a row, enforcing ID and name uniqueness like the SQL
// backends do.
func (s *Store) InsertAccount(_ context.Context, a bank.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[a.ID]; ok {
		return ErrDuplicate
	}
	if _, ok := s.byName[a.Name]; ok {
		return ErrDuplicate
	}
	s.accounts[a.ID] = a
	s.byName[a.Name] = a.ID
	return nil
}

// ListAccounts returns every row ordered by ID.
func (s *Store) ListAccounts(_ context.Context) ([]bank.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]bank.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateBalance sets the balance of the row keyed by ID.
func (s *Store) UpdateBalance(_ context.Context, id int, balance int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return 0, nil
	}
	a.Balance = balance
	s.accounts[id] = a
	return 1, nil
}

// DeleteByName removes rows matching the exact account name.
func (s *Store) DeleteByName(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byName[name]
	if !ok {
		return 0, nil
	}
	delete(s.accounts, id)
	delete(s.byName, name)
	return 1, nil
}

// Count returns the number of rows.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts), nil
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() error { return nil }
