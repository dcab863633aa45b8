package ledger

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pbarbosa/novabank/internal/domain"
)

// ErrInvalidAmount is returned when a user transaction carries an amount
// that is not a positive finite number. Amounts are never silently
// coerced to zero.
var ErrInvalidAmount = errors.New("invalid transaction amount")

// Kind identifies the kind of user-initiated transaction.
type Kind string

const (
	KindPix      Kind = "pix"
	KindTransfer Kind = "transfer"
	KindPayment  Kind = "payment"
	KindDeposit  Kind = "deposit"
)

// Engine owns the transaction store and implements every ledger
// operation: summary derivation, the daily yield accrual and recording
// of user-initiated transactions. All mutation goes through the engine;
// there are no ad hoc writes to the store.
type Engine struct {
	store *Store
	rate  float64
	now   func() time.Time
}

// NewEngine creates an engine over the given store using the default
// daily yield rate and the system clock.
func NewEngine(store *Store) *Engine {
	return &Engine{
		store: store,
		rate:  domain.DailyYieldRate,
		now:   time.Now,
	}
}

// WithClock replaces the engine's clock. Used by tests and the CLI to
// pin "today".
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Transactions returns a copy of the full transaction set, newest first.
func (e *Engine) Transactions() []domain.Transaction {
	return e.store.All()
}

// Recent returns a copy of the newest n transactions.
func (e *Engine) Recent(n int) []domain.Transaction {
	return e.store.Recent(n)
}

// Summary recomputes the account summary from the current transaction
// set. Pure derivation: COMPLETED transactions only, income is the sum
// of positive amounts, expenses the sum of negative amounts. Zero-amount
// transactions contribute to neither side; that is an explicit policy,
// not an accident of the comparison. Order-independent.
func (e *Engine) Summary() domain.AccountSummary {
	return computeSummary(e.store.All())
}

func computeSummary(txs []domain.Transaction) domain.AccountSummary {
	var income, expenses, pendingIn float64
	for _, tx := range txs {
		switch tx.Status {
		case domain.StatusCompleted:
			if tx.Amount > 0 {
				income += tx.Amount
			} else if tx.Amount < 0 {
				expenses += tx.Amount
			}
		case domain.StatusPending:
			if tx.Amount > 0 {
				pendingIn += tx.Amount
			}
		}
	}

	return domain.AccountSummary{
		Balance:        income + expenses,
		Income:         income,
		Expenses:       expenses,
		CreditLimit:    domain.CreditLimit,
		CreditUsed:     math.Abs(expenses),
		PendingBalance: pendingIn,
	}
}

// AccrueDailyYield applies the automatic daily yield for the given ISO
// date. At most one yield transaction exists per calendar day: if one is
// already present for today, or the balance is not positive, it returns
// (nil, nil). The existence check and the append run under a single
// critical section, so concurrent pollers cannot both pass the check and
// double-accrue. Safe to invoke on any cadence.
func (e *Engine) AccrueDailyYield(today string) (*domain.Transaction, error) {
	if _, err := time.Parse(domain.DateLayout, today); err != nil {
		return nil, fmt.Errorf("AccrueDailyYield: bad date %q: %w", today, err)
	}

	return e.store.update(func(txs []domain.Transaction) (*domain.Transaction, error) {
		for _, tx := range txs {
			if tx.Date == today && tx.Description == domain.YieldDescription {
				return nil, nil
			}
		}

		balance := computeSummary(txs).Balance
		if balance <= 0 {
			return nil, nil
		}

		return &domain.Transaction{
			ID:          uuid.NewString(),
			Date:        today,
			Description: domain.YieldDescription,
			Amount:      balance * e.rate,
			Type:        domain.TypeDeposit,
			Category:    domain.CategoryInvestment,
			Merchant:    domain.YieldMerchant,
			Status:      domain.StatusCompleted,
		}, nil
	})
}

// AccrueToday runs AccrueDailyYield for the engine clock's current date.
func (e *Engine) AccrueToday() (*domain.Transaction, error) {
	return e.AccrueDailyYield(e.now().Format(domain.DateLayout))
}

// RecordUserTransaction appends one confirmed user transaction. The
// caller supplies an unsigned magnitude; the engine owns the sign:
// deposits are stored positive, every other kind negative. The
// transaction is created atomically here, at confirmation - an abandoned
// flow records nothing.
func (e *Engine) RecordUserTransaction(kind Kind, amount float64, counterparty, description string, category domain.Category) (*domain.Transaction, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, fmt.Errorf("RecordUserTransaction: %w: %v", ErrInvalidAmount, amount)
	}

	signed := -math.Abs(amount)
	if kind == KindDeposit {
		signed = math.Abs(amount)
	}

	if description == "" {
		description = defaultDescription(kind, counterparty)
	}
	if category == "" {
		category = defaultCategory(kind)
	}
	merchant := counterparty
	if merchant == "" {
		merchant = "Banco"
	}

	tx := domain.Transaction{
		ID:          uuid.NewString(),
		Date:        e.now().Format(domain.DateLayout),
		Description: description,
		Amount:      signed,
		Type:        typeForKind(kind),
		Category:    category,
		Merchant:    merchant,
		Status:      domain.StatusCompleted,
	}

	if err := e.store.Append(tx); err != nil {
		return nil, fmt.Errorf("RecordUserTransaction: %w", err)
	}
	return &tx, nil
}

func typeForKind(kind Kind) domain.TransactionType {
	switch kind {
	case KindDeposit:
		return domain.TypeDeposit
	case KindPix:
		return domain.TypePixOut
	case KindTransfer:
		return domain.TypeTransfer
	default:
		return domain.TypePayment
	}
}

func defaultDescription(kind Kind, counterparty string) string {
	switch kind {
	case KindPix:
		return "Pix para " + counterparty
	case KindPayment:
		return "Boleto Bancário"
	case KindDeposit:
		return "Depósito"
	default:
		return "Transferência Enviada"
	}
}

func defaultCategory(kind Kind) domain.Category {
	switch kind {
	case KindPayment:
		return domain.CategoryUtilities
	case KindPix, KindTransfer:
		return domain.CategoryTransferLabel
	default:
		return domain.CategoryOther
	}
}
