// Package advisor is the boundary to the external generative-language
// service. It supplies the model a read-only slice of ledger data and
// degrades to static fallbacks on any failure; nothing it returns ever
// mutates the ledger directly.
package advisor

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

const (
	// ModelName is the Gemini model used for every call. Flash is
	// sufficient and fast at this data volume.
	ModelName = "gemini-2.5-flash"

	// ContextWindowSize bounds how many recent transactions are sent
	// to the model as context.
	ContextWindowSize = 30

	// DefaultTimeout caps every model call. The service must degrade,
	// not hang the caller.
	DefaultTimeout = 30 * time.Second
)

// generateFunc performs one model call and returns the response text.
// It is the seam that lets tests run without a live client.
type generateFunc func(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error)

// Service wraps the Gemini client. A Service with no API key runs in
// demo mode: every operation returns its offline fallback.
type Service struct {
	generate generateFunc
	timeout  time.Duration
	log      zerolog.Logger
}

// New creates a Service. An empty apiKey yields a demo-mode service
// rather than an error, matching the product behavior of running
// without credentials.
func New(ctx context.Context, apiKey string, log zerolog.Logger) (*Service, error) {
	s := &Service{timeout: DefaultTimeout, log: log}
	if apiKey == "" {
		log.Warn().Msg("No Gemini API key configured - advisor running in demo mode")
		return s, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, err
	}

	s.generate = func(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
		resp, err := client.Models.GenerateContent(ctx, ModelName, contents, cfg)
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}
	return s, nil
}

// Live reports whether the service has a configured model client.
func (s *Service) Live() bool {
	return s.generate != nil
}

// callContext derives the bounded context every model call runs under.
func (s *Service) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}
