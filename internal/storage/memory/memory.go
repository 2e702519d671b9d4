// Package memory provides a simple in-memory backend used for development, the demo and tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/tinoosan/smartbudget/internal/errs"
	"github.com/tinoosan/smartbudget/internal/ledger"
)

// Store keeps users and per-user transactions in insertion order.
// It is guarded by an RWMutex for concurrent reads/writes.
type Store struct {
	mu           sync.RWMutex
	users        map[uuid.UUID]ledger.User
	usersByEmail map[string]uuid.UUID
	txnsByUser   map[uuid.UUID][]ledger.Transaction
}

// New constructs an empty in-memory store.
func New() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset drops every user and transaction.
func (s *Store) Reset() {
	s.mu.Lock()
	s.users = map[uuid.UUID]ledger.User{}
	s.usersByEmail = map[string]uuid.UUID{}
	s.txnsByUser = map[uuid.UUID][]ledger.Transaction{}
	s.mu.Unlock()
}

// Ready always succeeds.
func (s *Store) Ready(context.Context) error { return nil }

// CreateUser implements user.Writer.
func (s *Store) CreateUser(_ context.Context, u ledger.User) (ledger.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.usersByEmail[u.Email]; ok {
		return ledger.User{}, errs.ErrConflict
	}
	s.users[u.ID] = u
	s.usersByEmail[u.Email] = u.ID
	return u, nil
}

// UserByEmail implements user.Repo.
func (s *Store) UserByEmail(_ context.Context, email string) (ledger.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usersByEmail[email]
	if !ok {
		return ledger.User{}, errs.ErrNotFound
	}
	return s.users[id], nil
}

// UserByID implements user.Repo.
func (s *Store) UserByID(_ context.Context, id uuid.UUID) (ledger.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return ledger.User{}, errs.ErrNotFound
	}
	return u, nil
}

// InsertTransaction implements budget.Writer. No deduplication is done.
func (s *Store) InsertTransaction(_ context.Context, userID uuid.UUID, txn ledger.Transaction) (ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txnsByUser[userID] = append(s.txnsByUser[userID], txn)
	return txn, nil
}

// ListTransactions implements budget.Repo.
func (s *Store) ListTransactions(_ context.Context, userID uuid.UUID) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.txnsByUser[userID]
	out := make([]ledger.Transaction, len(src))
	copy(out, src)
	return out, nil
}

// ClearTransactions implements budget.Writer.
func (s *Store) ClearTransactions(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	delete(s.txnsByUser, userID)
	s.mu.Unlock()
	return nil
}
