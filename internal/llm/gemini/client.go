package gemini

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"resume-tailor-backend/internal/llm"
)

// Options configures the Gemini client.
type Options struct {
	APIKey          string
	Model           string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
	// Timeout bounds a single generation exchange end to end. Large
	// documents can take minutes; the default keeps runaway calls finite.
	Timeout time.Duration
}

const defaultTimeout = 540 * time.Second

// Client implements llm.Client using the Gemini generateContent API.
type Client struct {
	genai *genai.Client
	opts  Options
}

// NewClient constructs a Gemini client.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(opts.Model) == "" {
		return nil, fmt.Errorf("GEMINI_MODEL is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = 8192
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPClient: &http.Client{
			Timeout: opts.Timeout,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{genai: client, opts: opts}, nil
}

// Generate sends the prompt and returns the raw reply text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	genCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.opts.Temperature),
		TopP:            genai.Ptr(c.opts.TopP),
		MaxOutputTokens: c.opts.MaxOutputTokens,
	}

	resp, err := c.genai.Models.GenerateContent(genCtx, c.opts.Model, genai.Text(prompt), cfg)
	if err != nil {
		return "", wrapProviderError(err)
	}

	logUsage(c.opts.Model, resp.UsageMetadata)

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini response empty content")
	}
	return text, nil
}

// wrapProviderError converts genai API errors into llm.StatusError so
// callers can classify on status codes instead of message text.
func wrapProviderError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &llm.StatusError{
			Code:    apiErr.Code,
			Status:  apiErr.Status,
			Message: apiErr.Message,
		}
	}
	return err
}

func logUsage(model string, usage *genai.GenerateContentResponseUsageMetadata) {
	if usage == nil {
		log.Printf("llm response model=%s", model)
		return
	}
	log.Printf("llm response model=%s prompt_tokens=%d completion_tokens=%d total_tokens=%d",
		model, usage.PromptTokenCount, usage.CandidatesTokenCount, usage.TotalTokenCount)
}

var _ llm.Client = (*Client)(nil)
