package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pbarbosa/novabank/internal/advisor"
	"github.com/pbarbosa/novabank/internal/api/handlers"
	"github.com/pbarbosa/novabank/internal/api/middleware"
	"github.com/pbarbosa/novabank/internal/domain"
	"github.com/pbarbosa/novabank/internal/jobs"
	"github.com/pbarbosa/novabank/internal/jobs/inmemory"
	"github.com/pbarbosa/novabank/internal/ledger"
	"github.com/pbarbosa/novabank/internal/logger"
	"github.com/pbarbosa/novabank/internal/session"
)

func main() {
	// Load .env if present; real env vars win
	_ = godotenv.Load()

	// Parse command-line flags
	var (
		port            = flag.String("port", "8080", "HTTP server port")
		accrualInterval = flag.Duration("accrual-interval", 30*time.Second, "How often to poll the daily yield accrual")
	)
	flag.Parse()

	// Initialize logger
	log := logger.New()

	ctx := context.Background()

	// Seed the in-memory ledger. No persistence: every start begins
	// from the same seed list.
	store, err := ledger.NewStore(domain.SeedTransactions())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed ledger")
	}
	engine := ledger.NewEngine(store)

	// Advisor (Gemini). Without an API key it runs in demo mode.
	advisorSvc, err := advisor.New(ctx, os.Getenv("GEMINI_API_KEY"), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create advisor service")
	}

	// Sessions for the simulated login/verification flow
	sessions := session.NewStore()

	// Initialize job infrastructure for asynchronous analysis
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, 2, jobStore)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	// Job handler running the AI analysis over the job's snapshot
	jobHandler := func(ctx context.Context, job jobs.Job) error {
		analysisJob, ok := job.(*jobs.AnalysisJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		log.Info().
			Str("job_id", analysisJob.JobID).
			Int("transactions", analysisJob.TransactionCount).
			Msg("Processing analysis job")

		analysisJob.Result = advisorSvc.Analyze(ctx, analysisJob.Transactions)

		log.Info().
			Str("job_id", analysisJob.JobID).
			Msg("Analysis job completed")

		return nil
	}

	// Start job consumer in background
	go func() {
		log.Info().Msg("Starting analysis worker")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Analysis worker stopped with error")
		}
	}()

	// Start the accrual scheduler. Cadence is irrelevant to
	// correctness; the engine enforces at-most-once-per-day.
	scheduler := ledger.NewScheduler(engine, *accrualInterval, log)
	go scheduler.Start(workerCtx)

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(engine, log)
	authHandler := handlers.NewAuthHandler(sessions, log)
	advisorHandler := handlers.NewAdvisorHandler(advisorSvc, engine, jobQueue, jobStore, log)
	jobsHandler := handlers.NewJobsHandler(jobStore, log)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			authHandler.Login(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/verify", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			authHandler.Verify(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/logout", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			authHandler.Logout(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/summary", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			accountHandler.GetSummary(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			accountHandler.ListTransactions(w, r)
		case http.MethodPost:
			accountHandler.CreateTransaction(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/statement", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			accountHandler.GetStatement(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/accrual", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			accountHandler.TriggerAccrual(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/advisor/chat", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			advisorHandler.Chat(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/advisor/categorize", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			advisorHandler.Categorize(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/analysis", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			advisorHandler.EnqueueAnalysis(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/analysis/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobID := strings.TrimPrefix(r.URL.Path, "/api/analysis/")
			if jobID == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Job ID is required")
				return
			}
			advisorHandler.GetAnalysis(w, r, jobID)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobsHandler.ListJobs(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobID := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
			if jobID == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Job ID is required")
				return
			}
			jobsHandler.GetJob(w, r, jobID)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(
					middleware.Auth(sessions)(mux),
				),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", *port).Bool("advisor_live", advisorSvc.Live()).Msg("Starting NovaBank API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Stop scheduler and worker
	scheduler.Stop()
	cancelWorker()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Stop job queue and wait for in-flight jobs
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	log.Info().Msg("Server exited")
}
