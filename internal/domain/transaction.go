package domain

// TransactionStatus tells whether a transaction counts toward the balance.
// Only COMPLETED transactions do; PENDING and FAILED are display-only.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusPending   TransactionStatus = "PENDING"
	StatusFailed    TransactionStatus = "FAILED"
)

// TransactionType describes how the money moved.
type TransactionType string

const (
	TypeDeposit    TransactionType = "DEPOSIT"
	TypeWithdrawal TransactionType = "WITHDRAWAL"
	TypeTransfer   TransactionType = "TRANSFER"
	TypePayment    TransactionType = "PAYMENT"
	TypePixOut     TransactionType = "PIX_OUT"
	TypePixIn      TransactionType = "PIX_IN"
)

// Transaction is one ledger entry. It is immutable once appended; all
// aggregates (balance, income, expenses) are derived from the full set.
type Transaction struct {
	// ID is unique within the ledger for the transaction's lifetime.
	ID string `json:"id"`

	// Date is the calendar date in ISO format "YYYY-MM-DD", no time
	// component. It is the dedup key for the daily yield accrual.
	Date string `json:"date"`

	// Description is a free-form label shown in the statement.
	Description string `json:"description"`

	// Amount is a signed value: positive for money in, negative for
	// money out. Single implicit currency (BRL).
	Amount float64 `json:"amount"`

	Type     TransactionType   `json:"type"`
	Category Category          `json:"category"`
	Merchant string            `json:"merchant,omitempty"`
	Status   TransactionStatus `json:"status"`
}

// DateLayout is the ISO calendar-date layout used by Transaction.Date.
const DateLayout = "2006-01-02"
