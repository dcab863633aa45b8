package ledger

import (
	"fmt"
	"sync"

	"github.com/pbarbosa/novabank/internal/domain"
)

// Store is the in-memory append-only transaction set. It is the single
// shared mutable resource of the process and is safe for concurrent use.
// Transactions are kept newest first for display; aggregate correctness
// never depends on the order. Data is lost on restart - the next process
// starts again from the seed list.
type Store struct {
	mu  sync.RWMutex
	txs []domain.Transaction
	ids map[string]bool
}

// NewStore creates a store pre-loaded with the given transactions,
// typically domain.SeedTransactions().
func NewStore(initial []domain.Transaction) (*Store, error) {
	s := &Store{
		txs: make([]domain.Transaction, 0, len(initial)),
		ids: make(map[string]bool, len(initial)),
	}
	for _, tx := range initial {
		if err := s.appendLocked(tx); err != nil {
			return nil, fmt.Errorf("NewStore: %w", err)
		}
	}
	return s, nil
}

// appendLocked prepends a transaction. Caller must hold mu (or own the
// store exclusively, as NewStore does).
func (s *Store) appendLocked(tx domain.Transaction) error {
	if tx.ID == "" {
		return fmt.Errorf("transaction ID is required")
	}
	if s.ids[tx.ID] {
		return fmt.Errorf("duplicate transaction ID: %s", tx.ID)
	}
	s.ids[tx.ID] = true
	s.txs = append([]domain.Transaction{tx}, s.txs...)
	return nil
}

// Append adds one transaction to the set. No transaction is ever deleted
// or mutated in place.
func (s *Store) Append(tx domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(tx)
}

// All returns a copy of the transaction set, newest first.
func (s *Store) All() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}

// Recent returns a copy of the newest n transactions, or all of them if
// the set is smaller.
func (s *Store) Recent(n int) []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.txs) {
		n = len(s.txs)
	}
	out := make([]domain.Transaction, n)
	copy(out, s.txs[:n])
	return out
}

// Len returns the number of transactions in the set.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.txs)
}

// update runs fn with the lock held. fn gets the live slice and returns
// an optional transaction to append; the read-then-append happens inside
// one critical section so conditional appends cannot race.
func (s *Store) update(fn func(txs []domain.Transaction) (*domain.Transaction, error)) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := fn(s.txs)
	if err != nil || tx == nil {
		return nil, err
	}
	if err := s.appendLocked(*tx); err != nil {
		return nil, err
	}
	return tx, nil
}
