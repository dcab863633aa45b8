package domain

import "time"

// CreditLimit is the fixed credit limit of the simulated account.
const CreditLimit = 14500.00

// DailyYieldRate is the fractional daily yield applied by the automatic
// accrual, roughly 0.04% per day (~100% of CDI).
const DailyYieldRate = 0.0004

// YieldDescription and YieldMerchant label the synthetic daily yield
// transaction. The description doubles as the accrual dedup key.
const (
	YieldDescription = "Rendimento Automático"
	YieldMerchant    = "NuInvest"
)

// AccountSummary is the read-only aggregate view of the ledger. It is
// recomputed in full from the transaction set on every read and never
// stored, so it cannot go stale.
type AccountSummary struct {
	// Balance = Income + Expenses over COMPLETED transactions.
	Balance float64 `json:"balance"`

	// Income is the sum of positive COMPLETED amounts.
	Income float64 `json:"income"`

	// Expenses is the sum of negative COMPLETED amounts (itself negative).
	Expenses float64 `json:"expenses"`

	CreditLimit float64 `json:"creditLimit"`
	CreditUsed  float64 `json:"creditUsed"`

	// PendingBalance is the sum of PENDING inflows. It never counts
	// toward Balance.
	PendingBalance float64 `json:"pendingBalance"`
}

// AnalysisResult is the structured output of the AI financial analysis.
type AnalysisResult struct {
	Summary     string   `json:"summary"`
	SavingsTips []string `json:"savingsTips"`
	Anomalies   []string `json:"anomalies"`
}

// ChatMessage is one turn in the advisor conversation.
type ChatMessage struct {
	// Role is "user" or "model".
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
