package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/pbarbosa/novabank/internal/api/middleware"
	"github.com/pbarbosa/novabank/internal/domain"
	"github.com/pbarbosa/novabank/internal/ledger"
)

// AccountHandler serves the ledger-backed endpoints: summary,
// transactions, statement and the manual accrual trigger.
type AccountHandler struct {
	engine *ledger.Engine
	log    zerolog.Logger
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(engine *ledger.Engine, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{engine: engine, log: log}
}

// GetSummary handles GET /api/summary. The summary is derived in full
// from the current transaction set on every request.
func (h *AccountHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.engine.Summary())
}

// ListTransactions handles GET /api/transactions with optional
// start_date / end_date query parameters (ISO dates, inclusive).
func (h *AccountHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	startDateStr := query.Get("start_date")
	endDateStr := query.Get("end_date")

	if startDateStr == "" && endDateStr == "" {
		middleware.WriteJSON(w, http.StatusOK, h.engine.Transactions())
		return
	}

	start := time.Time{}
	end := time.Now().AddDate(1, 0, 0)
	var err error

	if startDateStr != "" {
		start, err = time.Parse(domain.DateLayout, startDateStr)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid start_date format")
			return
		}
	}
	if endDateStr != "" {
		end, err = time.Parse(domain.DateLayout, endDateStr)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid end_date format")
			return
		}
	}

	txs := h.engine.TransactionsBetween(start, end)
	if txs == nil {
		txs = []domain.Transaction{}
	}
	middleware.WriteJSON(w, http.StatusOK, txs)
}

// GetStatement handles GET /api/statement: the transaction set grouped
// by calendar date with display labels.
func (h *AccountHandler) GetStatement(w http.ResponseWriter, r *http.Request) {
	groups := h.engine.Statement()
	if groups == nil {
		groups = []ledger.DateGroup{}
	}
	middleware.WriteJSON(w, http.StatusOK, groups)
}

// createTransactionRequest is the confirmation payload of the
// input -> review -> confirm flow. The amount is an unsigned magnitude;
// the engine owns the sign.
type createTransactionRequest struct {
	Kind         string  `json:"kind"`
	Amount       float64 `json:"amount"`
	Counterparty string  `json:"counterparty"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
}

var validKinds = map[ledger.Kind]bool{
	ledger.KindPix:      true,
	ledger.KindTransfer: true,
	ledger.KindPayment:  true,
	ledger.KindDeposit:  true,
}

// CreateTransaction handles POST /api/transactions. The transaction is
// created atomically here, at confirmation; an abandoned client flow
// records nothing.
func (h *AccountHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	kind := ledger.Kind(req.Kind)
	if !validKinds[kind] {
		middleware.WriteError(w, http.StatusBadRequest, "Unknown transaction kind")
		return
	}

	var category domain.Category
	if req.Category != "" {
		category = domain.ParseCategory(req.Category)
	}

	tx, err := h.engine.RecordUserTransaction(kind, req.Amount, req.Counterparty, req.Description, category)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidAmount) {
			middleware.WriteError(w, http.StatusUnprocessableEntity, "Invalid amount")
			return
		}
		h.log.Error().Err(err).Str("kind", req.Kind).Msg("Failed to record transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to record transaction")
		return
	}

	h.log.Info().
		Str("transaction_id", tx.ID).
		Str("kind", req.Kind).
		Float64("amount", tx.Amount).
		Msg("Transaction recorded")

	middleware.WriteJSON(w, http.StatusCreated, tx)
}

// TriggerAccrual handles POST /api/accrual: a manual poll of the daily
// yield rule. Safe to call any number of times; at most one yield
// transaction per day ever results.
func (h *AccountHandler) TriggerAccrual(w http.ResponseWriter, r *http.Request) {
	tx, err := h.engine.AccrueToday()
	if err != nil {
		h.log.Error().Err(err).Msg("Accrual failed")
		middleware.WriteError(w, http.StatusInternalServerError, "Accrual failed")
		return
	}
	if tx == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, tx)
}
