package ledger

import (
	"fmt"
	"sync"
	"testing"

	"github.com/pbarbosa/novabank/internal/domain"
)

func TestStoreAppendNewestFirst(t *testing.T) {
	store, err := NewStore(nil)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	for _, id := range []string{"a", "b", "c"} {
		tx := domain.Transaction{ID: id, Date: "2026-01-01", Status: domain.StatusCompleted}
		if err := store.Append(tx); err != nil {
			t.Fatalf("Append(%s) failed: %v", id, err)
		}
	}

	all := store.All()
	want := []string{"c", "b", "a"}
	if len(all) != len(want) {
		t.Fatalf("len = %d, want %d", len(all), len(want))
	}
	for i, tx := range all {
		if tx.ID != want[i] {
			t.Errorf("all[%d].ID = %s, want %s", i, tx.ID, want[i])
		}
	}
}

func TestStoreRejectsDuplicateID(t *testing.T) {
	store, err := NewStore([]domain.Transaction{
		{ID: "t1", Date: "2026-01-01", Status: domain.StatusCompleted},
	})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	err = store.Append(domain.Transaction{ID: "t1", Date: "2026-01-02", Status: domain.StatusCompleted})
	if err == nil {
		t.Error("expected error for duplicate ID")
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
}

func TestStoreRejectsEmptyID(t *testing.T) {
	store, err := NewStore(nil)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if err := store.Append(domain.Transaction{Date: "2026-01-01"}); err == nil {
		t.Error("expected error for empty ID")
	}
}

func TestStoreAllReturnsCopy(t *testing.T) {
	store, err := NewStore([]domain.Transaction{
		{ID: "t1", Date: "2026-01-01", Amount: 100, Status: domain.StatusCompleted},
	})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	snapshot := store.All()
	snapshot[0].Amount = -999

	if got := store.All()[0].Amount; got != 100 {
		t.Errorf("mutating the returned slice reached the store: Amount = %v", got)
	}
}

func TestStoreRecent(t *testing.T) {
	var seed []domain.Transaction
	for i := 0; i < 5; i++ {
		seed = append(seed, domain.Transaction{ID: fmt.Sprintf("t%d", i), Date: "2026-01-01"})
	}
	store, err := NewStore(seed)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	tests := []struct {
		n    int
		want int
	}{
		{n: 0, want: 0},
		{n: 3, want: 3},
		{n: 5, want: 5},
		{n: 50, want: 5},
	}
	for _, tt := range tests {
		if got := len(store.Recent(tt.n)); got != tt.want {
			t.Errorf("Recent(%d) returned %d transactions, want %d", tt.n, got, tt.want)
		}
	}

	// Seeding preserves newest-first: the last seeded entry is on top
	if got := store.Recent(1)[0].ID; got != "t4" {
		t.Errorf("Recent(1)[0].ID = %s, want t4", got)
	}
}

func TestStoreConcurrentConditionalAppend(t *testing.T) {
	store, err := NewStore([]domain.Transaction{
		{ID: "base", Date: "2026-01-01", Amount: 100, Status: domain.StatusCompleted},
	})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	// Many goroutines race the same check-then-append; exactly one may win.
	const marker = "único"
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.update(func(txs []domain.Transaction) (*domain.Transaction, error) {
				for _, tx := range txs {
					if tx.Description == marker {
						return nil, nil
					}
				}
				return &domain.Transaction{
					ID:          fmt.Sprintf("race-%d", i),
					Date:        "2026-01-02",
					Description: marker,
					Status:      domain.StatusCompleted,
				}, nil
			})
		}(i)
	}
	wg.Wait()

	var got int
	for _, tx := range store.All() {
		if tx.Description == marker {
			got++
		}
	}
	if got != 1 {
		t.Errorf("conditional append won %d times, want exactly 1", got)
	}
}
