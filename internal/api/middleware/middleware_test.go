package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pbarbosa/novabank/internal/logger"
	"github.com/pbarbosa/novabank/internal/session"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	sessions := session.NewStore()

	unverified, err := sessions.Login("123.456.789-00", "senha123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	verified, err := sessions.Login("987.654.321-00", "senha123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := sessions.Verify(verified.Token); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	tests := []struct {
		name       string
		path       string
		authHeader string
		wantStatus int
	}{
		{name: "exempt health check", path: "/health", wantStatus: http.StatusOK},
		{name: "exempt login", path: "/api/login", wantStatus: http.StatusOK},
		{name: "exempt verify", path: "/api/verify", wantStatus: http.StatusOK},
		{name: "missing token", path: "/api/summary", wantStatus: http.StatusUnauthorized},
		{name: "not a bearer token", path: "/api/summary", authHeader: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", path: "/api/summary", authHeader: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "unverified session", path: "/api/summary", authHeader: "Bearer " + unverified.Token, wantStatus: http.StatusForbidden},
		{name: "verified session", path: "/api/summary", authHeader: "Bearer " + verified.Token, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Auth(sessions)(okHandler())

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestAuthAttachesSession(t *testing.T) {
	sessions := session.NewStore()
	sess, err := sessions.Login("123.456.789-00", "senha123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := sessions.Verify(sess.Token); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	var got *session.Session
	handler := Auth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("session not attached to request context")
	}
	if got.Token != sess.Token {
		t.Errorf("Token = %q, want %q", got.Token, sess.Token)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/summary", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
}

func TestRequestID(t *testing.T) {
	handler := RequestID(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing generated X-Request-ID header")
	}

	// A caller-supplied ID is preserved
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "fixed-id" {
		t.Errorf("X-Request-ID = %q, want fixed-id", got)
	}
}

func TestRecovery(t *testing.T) {
	handler := Recovery(logger.NewWithWriter(nil))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
