package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pbarbosa/novabank/internal/advisor"
	"github.com/pbarbosa/novabank/internal/api/middleware"
	"github.com/pbarbosa/novabank/internal/domain"
	"github.com/pbarbosa/novabank/internal/jobs"
	"github.com/pbarbosa/novabank/internal/ledger"
)

// AdvisorHandler serves the AI-backed endpoints: chat, categorization
// and asynchronous analysis. The advisor only ever reads snapshots of
// the ledger; its output never mutates it.
type AdvisorHandler struct {
	svc       *advisor.Service
	engine    *ledger.Engine
	publisher jobs.Publisher
	store     jobs.JobStore
	log       zerolog.Logger
}

// NewAdvisorHandler creates a new advisor handler.
func NewAdvisorHandler(svc *advisor.Service, engine *ledger.Engine, publisher jobs.Publisher, store jobs.JobStore, log zerolog.Logger) *AdvisorHandler {
	return &AdvisorHandler{
		svc:       svc,
		engine:    engine,
		publisher: publisher,
		store:     store,
		log:       log,
	}
}

// Chat handles POST /api/advisor/chat. The current ledger is injected
// as read-only context for the conversation.
func (h *AdvisorHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		History []domain.ChatMessage `json:"history"`
		Message string               `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Message is required")
		return
	}

	reply := h.svc.Chat(r.Context(), req.History, req.Message, h.engine.Recent(advisor.ContextWindowSize))
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// Categorize handles POST /api/advisor/categorize. The suggestion is
// returned to the caller; applying it is the caller's decision.
func (h *AdvisorHandler) Categorize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Description == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Description is required")
		return
	}

	category := h.svc.Categorize(r.Context(), req.Description, req.Amount)
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"category": string(category)})
}

// EnqueueAnalysis handles POST /api/analysis: snapshots the ledger and
// queues an analysis job.
func (h *AdvisorHandler) EnqueueAnalysis(w http.ResponseWriter, r *http.Request) {
	job := &jobs.AnalysisJob{
		Transactions: h.engine.Transactions(),
	}
	if sess := middleware.SessionFromContext(r.Context()); sess != nil {
		job.SessionToken = sess.Token
	}

	if err := h.publisher.PublishAnalysis(r.Context(), job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue analysis job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue analysis")
		return
	}

	h.log.Info().Str("job_id", job.JobID).Int("transactions", job.TransactionCount).Msg("Analysis job enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id": job.JobID,
		"status": string(job.Status),
	})
}

// GetAnalysis handles GET /api/analysis/{id}. While the job is still
// running the response carries the status and no result.
func (h *AdvisorHandler) GetAnalysis(w http.ResponseWriter, r *http.Request, jobID string) {
	job, err := h.store.GetJob(r.Context(), jobID)
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Analysis not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}
