package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pbarbosa/novabank/internal/logger"
	"github.com/pbarbosa/novabank/internal/session"
)

func TestLoginEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "well-formed credentials", body: `{"cpf":"123.456.789-00","password":"senha123"}`, wantStatus: http.StatusOK},
		{name: "bad cpf format", body: `{"cpf":"12345678900","password":"senha123"}`, wantStatus: http.StatusUnauthorized},
		{name: "missing password", body: `{"cpf":"123.456.789-00"}`, wantStatus: http.StatusUnauthorized},
		{name: "malformed body", body: `{"cpf":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(session.NewStore(), logger.NewWithWriter(nil))

			req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.Login(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var sess session.Session
			if err := json.NewDecoder(rec.Body).Decode(&sess); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if sess.Token == "" {
				t.Error("expected a session token")
			}
			if sess.Verified {
				t.Error("fresh session must start unverified")
			}
		})
	}
}

func TestVerifyEndpoint(t *testing.T) {
	sessions := session.NewStore()
	handler := NewAuthHandler(sessions, logger.NewWithWriter(nil))

	sess, err := sessions.Login("123.456.789-00", "senha123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	body := `{"token":"` + sess.Token + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/verify", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Verify(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var verified session.Session
	if err := json.NewDecoder(rec.Body).Decode(&verified); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !verified.Verified {
		t.Error("session not marked verified")
	}
}

func TestVerifyEndpointUnknownToken(t *testing.T) {
	handler := NewAuthHandler(session.NewStore(), logger.NewWithWriter(nil))

	req := httptest.NewRequest(http.MethodPost, "/api/verify", strings.NewReader(`{"token":"nope"}`))
	rec := httptest.NewRecorder()
	handler.Verify(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestLogoutEndpoint(t *testing.T) {
	handler := NewAuthHandler(session.NewStore(), logger.NewWithWriter(nil))

	// Logout without a session in context is still a 204
	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rec := httptest.NewRecorder()
	handler.Logout(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}
