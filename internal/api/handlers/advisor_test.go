package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pbarbosa/novabank/internal/advisor"
	"github.com/pbarbosa/novabank/internal/domain"
	"github.com/pbarbosa/novabank/internal/jobs"
	"github.com/pbarbosa/novabank/internal/jobs/inmemory"
	"github.com/pbarbosa/novabank/internal/ledger"
	"github.com/pbarbosa/novabank/internal/logger"
)

type advisorHandlerDeps struct {
	handler *AdvisorHandler
	store   *inmemory.Store
	queue   *inmemory.Queue
}

// newTestAdvisorHandler wires a demo-mode advisor over the seed ledger.
// The queue is created but not started, so enqueued jobs stay pending.
func newTestAdvisorHandler(t *testing.T) advisorHandlerDeps {
	t.Helper()

	svc, err := advisor.New(context.Background(), "", logger.NewWithWriter(nil))
	if err != nil {
		t.Fatalf("advisor.New failed: %v", err)
	}

	store, err := ledger.NewStore(domain.SeedTransactions())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	engine := ledger.NewEngine(store)

	jobStore := inmemory.NewStore()
	queue := inmemory.NewQueue(10, 1, jobStore)
	t.Cleanup(func() { queue.Close() })

	return advisorHandlerDeps{
		handler: NewAdvisorHandler(svc, engine, queue, jobStore, logger.NewWithWriter(nil)),
		store:   jobStore,
		queue:   queue,
	}
}

func TestChatEndpoint(t *testing.T) {
	deps := newTestAdvisorHandler(t)

	body := `{"message":"Qual é meu saldo?","history":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/advisor/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	deps.handler.Chat(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// Demo mode: the offline reply, never an error
	if !strings.Contains(resp["reply"], "offline") {
		t.Errorf("reply = %q, want the offline notice", resp["reply"])
	}
}

func TestChatEndpointRequiresMessage(t *testing.T) {
	deps := newTestAdvisorHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/advisor/chat", strings.NewReader(`{"history":[]}`))
	rec := httptest.NewRecorder()
	deps.handler.Chat(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCategorizeEndpoint(t *testing.T) {
	deps := newTestAdvisorHandler(t)

	body := `{"description":"Uber do Brasil","amount":24.90}`
	req := httptest.NewRequest(http.MethodPost, "/api/advisor/categorize", strings.NewReader(body))
	rec := httptest.NewRecorder()
	deps.handler.Categorize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["category"] != string(domain.CategoryOther) {
		t.Errorf("category = %q, want %q in demo mode", resp["category"], domain.CategoryOther)
	}
}

func TestCategorizeEndpointRequiresDescription(t *testing.T) {
	deps := newTestAdvisorHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/advisor/categorize", strings.NewReader(`{"amount":10}`))
	rec := httptest.NewRecorder()
	deps.handler.Categorize(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestEnqueueAnalysisEndpoint(t *testing.T) {
	deps := newTestAdvisorHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/analysis", nil)
	rec := httptest.NewRecorder()
	deps.handler.EnqueueAnalysis(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["job_id"] == "" {
		t.Fatal("expected a job_id")
	}
	if resp["status"] != string(jobs.JobStatusPending) {
		t.Errorf("status = %q, want pending", resp["status"])
	}

	// The snapshot travels with the job
	job, err := deps.store.GetJob(context.Background(), resp["job_id"])
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if job.TransactionCount != 9 {
		t.Errorf("TransactionCount = %d, want 9", job.TransactionCount)
	}
}

func TestGetAnalysisEndpoint(t *testing.T) {
	deps := newTestAdvisorHandler(t)

	rec := httptest.NewRecorder()
	deps.handler.EnqueueAnalysis(rec, httptest.NewRequest(http.MethodPost, "/api/analysis", nil))
	var created map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	rec = httptest.NewRecorder()
	deps.handler.GetAnalysis(rec, httptest.NewRequest(http.MethodGet, "/api/analysis/"+created["job_id"], nil), created["job_id"])

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var job jobs.AnalysisJob
	if err := json.NewDecoder(rec.Body).Decode(&job); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if job.JobID != created["job_id"] {
		t.Errorf("JobID = %q, want %q", job.JobID, created["job_id"])
	}
	if job.Result != nil {
		t.Error("unprocessed job should carry no result")
	}
}

func TestGetAnalysisEndpointUnknownJob(t *testing.T) {
	deps := newTestAdvisorHandler(t)

	rec := httptest.NewRecorder()
	deps.handler.GetAnalysis(rec, httptest.NewRequest(http.MethodGet, "/api/analysis/missing", nil), "missing")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
