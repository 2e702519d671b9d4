package ledger

import "sync"

// Store is an ordered, in-memory collection of transactions.
// It is guarded by an RWMutex so a shared instance stays consistent, but
// callers normally build one per request from persistent storage.
type Store struct {
	mu   sync.RWMutex
	txns []Transaction
}

// NewStore returns a store holding txns in the given order.
func NewStore(txns ...Transaction) *Store {
	s := &Store{}
	s.Reload(txns)
	return s
}

// Record appends txn. Duplicates are kept.
func (s *Store) Record(txn Transaction) {
	s.mu.Lock()
	s.txns = append(s.txns, txn)
	s.mu.Unlock()
}

// Clear removes every transaction.
func (s *Store) Clear() {
	s.mu.Lock()
	s.txns = nil
	s.mu.Unlock()
}

// Reload replaces the contents with txns under a single lock, so readers
// never observe a partially refilled store.
func (s *Store) Reload(txns []Transaction) {
	cp := make([]Transaction, len(txns))
	copy(cp, txns)
	s.mu.Lock()
	s.txns = cp
	s.mu.Unlock()
}

// All returns a copy of the transactions in insertion order.
func (s *Store) All() []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Transaction, len(s.txns))
	copy(out, s.txns)
	return out
}

// Len returns the number of recorded transactions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.txns)
}
