// Package ledger implements the account manager: ID allocation, CRUD against
// the store, the non-negative balance invariant, and the concurrency
// discipline around balance mutation.
//
// The service keeps a full in-memory mirror of the BankAccounts table,
// refreshed by Reload. Every read-compute-write span runs inside one
// exclusive critical section so concurrent ChangeBy calls on the same
// account cannot lose an update.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sbplanet/currencybank/internal/bank"
	"github.com/sbplanet/currencybank/internal/errs"
	"github.com/sbplanet/currencybank/internal/storage"
)

// maxIDTries bounds random ID sampling before giving up. Exhaustion is
// negligible except near full capacity and is logged as anomalous.
const maxIDTries = 10000

const defaultStoreTimeout = 5 * time.Second

// Service owns the accounts mirror and all mutations against the store.
// Construct one at startup and hand it to every collaborator; there is no
// ambient singleton.
type Service struct {
	store  storage.Store
	logger *slog.Logger

	maxAccounts  int
	storeTimeout time.Duration
	randIntN     func(n int) int

	mu       sync.RWMutex
	accounts map[int]bank.Account
	byName   map[string]int
}

// Option tweaks service construction.
type Option func(*Service)

// WithMaxAccounts overrides the account ceiling. Used by tests; production
// code keeps bank.MaxAccounts.
func WithMaxAccounts(n int) Option { return func(s *Service) { s.maxAccounts = n } }

// WithStoreTimeout overrides the per-call store timeout.
func WithStoreTimeout(d time.Duration) Option { return func(s *Service) { s.storeTimeout = d } }

// WithRandIntN overrides the ID sampler. Used by tests to force collisions.
func WithRandIntN(fn func(n int) int) Option { return func(s *Service) { s.randIntN = fn } }

// New constructs a ledger service over the given store. The mirror starts
// empty; call Reload before serving lookups.
func New(store storage.Store, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		store:        store,
		logger:       logger,
		maxAccounts:  bank.MaxAccounts,
		storeTimeout: defaultStoreTimeout,
		randIntN:     rand.IntN,
		accounts:     make(map[int]bank.Account),
		byName:       make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// storeCtx bounds a store call so a stalled backend surfaces as ErrStore
// instead of hanging the caller.
func (s *Service) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}

// Create allocates a fresh ID, inserts the row and adds it to the mirror.
func (s *Service) Create(ctx context.Context, name string, startingBalance int64) (bank.Account, error) {
	if name == "" || startingBalance < 0 {
		return bank.Account{}, errs.ErrInvalid
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.accounts) >= s.maxAccounts {
		opsTotal.WithLabelValues("create", "error").Inc()
		return bank.Account{}, errs.ErrCapacityExceeded
	}
	if _, taken := s.byName[name]; taken {
		opsTotal.WithLabelValues("create", "error").Inc()
		return bank.Account{}, fmt.Errorf("account name %q already exists: %w", name, errs.ErrStore)
	}
	id, err := s.genIDLocked()
	if err != nil {
		opsTotal.WithLabelValues("create", "error").Inc()
		return bank.Account{}, err
	}
	account := bank.Account{ID: id, Name: name, Balance: startingBalance}

	cctx, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.store.InsertAccount(cctx, account); err != nil {
		opsTotal.WithLabelValues("create", "error").Inc()
		return bank.Account{}, fmt.Errorf("insert account %q: %w: %v", name, errs.ErrStore, err)
	}
	s.accounts[id] = account
	s.byName[name] = id
	opsTotal.WithLabelValues("create", "ok").Inc()
	s.logger.Info("bank account created", "id", id, "name", name, "balance", startingBalance)
	return account, nil
}

// genIDLocked draws a uniformly random unused ID in [1, maxAccounts].
// Retry-based sampling beats a gap scan or a global counter here: the ID
// space is large relative to expected account counts and churn is low.
// Callers must hold s.mu.
func (s *Service) genIDLocked() (int, error) {
	if len(s.accounts) >= s.maxAccounts {
		return 0, errs.ErrCapacityExceeded
	}
	for i := 0; i < maxIDTries; i++ {
		id := s.randIntN(s.maxAccounts) + 1
		if _, used := s.accounts[id]; !used {
			if i > 0 {
				idRetries.Add(float64(i))
			}
			return id, nil
		}
	}
	s.logger.Error("ID allocation exhausted retry budget",
		"tries", maxIDTries, "accounts", len(s.accounts), "ceiling", s.maxAccounts)
	return 0, errs.ErrIDAllocation
}

// Get resolves an identifier against the mirror. A zero identifier means "no
// lookup performed" and short-circuits to ErrNotFound without touching
// anything. A miss is a normal result, reported as errs.ErrNotFound.
func (s *Service) Get(_ context.Context, ident bank.Identifier) (bank.Account, error) {
	if ident.IsZero() {
		return bank.Account{}, errs.ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.lookupLocked(ident)
	if !ok {
		return bank.Account{}, errs.ErrNotFound
	}
	return a, nil
}

// lookupLocked resolves an identifier against the mirror indexes. Callers
// must hold s.mu (read or write).
func (s *Service) lookupLocked(ident bank.Identifier) (bank.Account, bool) {
	if id, ok := ident.ID(); ok {
		a, found := s.accounts[id]
		return a, found
	}
	if name, ok := ident.Name(); ok {
		if id, found := s.byName[name]; found {
			return s.accounts[id], true
		}
	}
	return bank.Account{}, false
}

// ChangeBy applies a signed delta to an account's balance. Debits exceeding
// the balance clamp to zero rather than erroring; callers that need
// insufficient-funds semantics check the balance before calling. The whole
// read-compute-write span holds the write lock, so concurrent ChangeBy calls
// on one account serialize and no update is lost.
func (s *Service) ChangeBy(ctx context.Context, ident bank.Identifier, delta int64) (bank.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.lookupLocked(ident)
	if !ok {
		opsTotal.WithLabelValues("change_by", "error").Inc()
		return bank.Account{}, errs.ErrAccountNotFound
	}

	// Balances can't be negative; over-large debits zero out.
	newBalance := account.Balance + delta
	if newBalance < 0 {
		newBalance = 0
	}

	cctx, cancel := s.storeCtx(ctx)
	defer cancel()
	affected, err := s.store.UpdateBalance(cctx, account.ID, newBalance)
	if err != nil {
		opsTotal.WithLabelValues("change_by", "error").Inc()
		return bank.Account{}, fmt.Errorf("update balance for %d: %w: %v", account.ID, errs.ErrStore, err)
	}
	if affected != 1 {
		opsTotal.WithLabelValues("change_by", "error").Inc()
		return bank.Account{}, fmt.Errorf("update balance for %d affected %d rows: %w",
			account.ID, affected, errs.ErrConcurrentModification)
	}

	account.Balance = newBalance
	s.accounts[account.ID] = account
	opsTotal.WithLabelValues("change_by", "ok").Inc()
	return account, nil
}

// Delete removes the account with the exact name and reports whether exactly
// one row went away. Deleting a nonexistent account is not an error.
func (s *Service) Delete(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cctx, cancel := s.storeCtx(ctx)
	defer cancel()
	affected, err := s.store.DeleteByName(cctx, name)
	if err != nil {
		opsTotal.WithLabelValues("delete", "error").Inc()
		return false, fmt.Errorf("delete account %q: %w: %v", name, errs.ErrStore, err)
	}
	if id, ok := s.byName[name]; ok {
		delete(s.accounts, id)
		delete(s.byName, name)
	}
	opsTotal.WithLabelValues("delete", "ok").Inc()
	if affected == 1 {
		s.logger.Info("bank account deleted", "name", name)
	}
	return affected == 1, nil
}

// Reload re-synchronizes the mirror from the store in full. The new mirror is
// built aside and swapped under the write lock, so readers see either the old
// or the new state, never a partially-cleared one.
func (s *Service) Reload(ctx context.Context) error {
	cctx, cancel := s.storeCtx(ctx)
	defer cancel()
	rows, err := s.store.ListAccounts(cctx)
	if err != nil {
		opsTotal.WithLabelValues("reload", "error").Inc()
		return fmt.Errorf("load accounts: %w: %v", errs.ErrStore, err)
	}
	accounts := make(map[int]bank.Account, len(rows))
	byName := make(map[string]int, len(rows))
	for _, a := range rows {
		accounts[a.ID] = a
		byName[a.Name] = a.ID
	}
	s.mu.Lock()
	s.accounts = accounts
	s.byName = byName
	s.mu.Unlock()
	opsTotal.WithLabelValues("reload", "ok").Inc()
	s.logger.Info("ledger mirror reloaded", "accounts", len(rows))
	return nil
}

// Count returns the number of accounts in the mirror.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// List returns a snapshot of all accounts, ordered by ID.
func (s *Service) List() []bank.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]bank.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Pay moves amount from one account to another as a debit followed by a
// credit. The two halves are independent ChangeBy calls, not one atomic
// transaction: a crash between them loses the amount mid-transfer. Both
// halves carry the same operation ID in the structured log so the audit
// trail can stitch them back together.
func (s *Service) Pay(ctx context.Context, from, to bank.Identifier, amount int64) (sender, receiver bank.Account, err error) {
	if amount <= 0 {
		return bank.Account{}, bank.Account{}, errs.ErrInvalid
	}
	src, err := s.Get(ctx, from)
	if err != nil {
		return bank.Account{}, bank.Account{}, errs.ErrAccountNotFound
	}
	dst, err := s.Get(ctx, to)
	if err != nil {
		return bank.Account{}, bank.Account{}, errs.ErrAccountNotFound
	}
	if src.ID == dst.ID {
		return bank.Account{}, bank.Account{}, errs.ErrInvalid
	}
	if src.Balance < amount {
		return bank.Account{}, bank.Account{}, errs.ErrInsufficientFunds
	}

	opID := uuid.New()
	sender, err = s.ChangeBy(ctx, from, -amount)
	if err != nil {
		return bank.Account{}, bank.Account{}, err
	}
	s.logger.Info("payment debit", "op_id", opID, "from", sender.Name, "amount", amount)
	receiver, err = s.ChangeBy(ctx, to, amount)
	if err != nil {
		// The debit already committed; the credit did not. Surface loudly so
		// the audit log can be used for forensic recovery.
		s.logger.Error("payment credit failed after debit", "op_id", opID,
			"from", sender.Name, "to", dst.Name, "amount", amount, "err", err)
		return sender, bank.Account{}, err
	}
	s.logger.Info("payment credit", "op_id", opID, "to", receiver.Name, "amount", amount)
	return sender, receiver, nil
}
