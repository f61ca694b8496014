package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/yungbote/careergraph-backend/internal/platform/logger"
)

var ErrNotConfigured = errors.New("gemini: missing GEMINI_API_KEY")

// Client is the Gemini API client used by the résumé parser.
type Client interface {
	// GenerateJSONText asks the model for a JSON response and returns the raw
	// text, fences and all.
	GenerateJSONText(ctx context.Context, system string, user string) (string, error)
	Model() string
}

type client struct {
	log     *logger.Logger
	api     *genai.Client
	model   string
	timeout time.Duration
}

func NewClient(ctx context.Context, log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	model := strings.TrimSpace(os.Getenv("GEMINI_MODEL"))
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeoutSec := 120
	if v := os.Getenv("GEMINI_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: init client: %w", err)
	}
	return &client{
		log:     log.With("client", "Gemini"),
		api:     api,
		model:   model,
		timeout: time.Duration(timeoutSec) * time.Second,
	}, nil
}

func (c *client) Model() string { return c.model }

func (c *client) GenerateJSONText(ctx context.Context, system string, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0),
	}
	if strings.TrimSpace(system) != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	start := time.Now()
	resp, err := c.api.Models.GenerateContent(ctx, c.model, genai.Text(user), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: generate: %w", err)
	}
	text := resp.Text()
	c.log.Debug("gemini generate", "model", c.model, "duration_ms", time.Since(start).Milliseconds(), "chars", len(text))
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
}

// CleanJSON strips a surrounding markdown code fence, with or without a
// language tag, from model output.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
		if i := strings.IndexAny(clean, "\r\n"); i >= 0 && !strings.ContainsAny(clean[:i], "{[") {
			clean = clean[i:]
		}
		clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	}
	return strings.TrimSpace(clean)
}
