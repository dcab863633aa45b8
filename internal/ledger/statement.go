package ledger

import (
	"time"

	"github.com/pbarbosa/novabank/internal/domain"
)

// DateGroup is one section of the statement view: all transactions that
// share a calendar date, labeled for display.
type DateGroup struct {
	// Date is the ISO date shared by every transaction in the group.
	Date string `json:"date"`

	// Label is "Hoje" or "Ontem" relative to the engine clock, or the
	// ISO date itself otherwise.
	Label string `json:"label"`

	Transactions []domain.Transaction `json:"transactions"`
}

// Statement groups the transaction set by calendar date, preserving the
// newest-first display order within and across groups.
func (e *Engine) Statement() []DateGroup {
	txs := e.store.All()
	today := e.now().Format(domain.DateLayout)
	yesterday := e.now().AddDate(0, 0, -1).Format(domain.DateLayout)

	var groups []DateGroup
	index := make(map[string]int)

	for _, tx := range txs {
		i, ok := index[tx.Date]
		if !ok {
			label := tx.Date
			switch tx.Date {
			case today:
				label = "Hoje"
			case yesterday:
				label = "Ontem"
			}
			groups = append(groups, DateGroup{Date: tx.Date, Label: label})
			i = len(groups) - 1
			index[tx.Date] = i
		}
		groups[i].Transactions = append(groups[i].Transactions, tx)
	}

	return groups
}

// TransactionsBetween returns the transactions whose date falls inside
// the inclusive [start, end] range, newest first.
func (e *Engine) TransactionsBetween(start, end time.Time) []domain.Transaction {
	var out []domain.Transaction
	for _, tx := range e.store.All() {
		d, err := time.Parse(domain.DateLayout, tx.Date)
		if err != nil {
			continue
		}
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, tx)
	}
	return out
}
