package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/lauraluxe/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with the Gemini generateContent API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Gemini API client. The timeout bounds each
// outbound call; expiry is treated like any other transport failure.
func NewClient(apiKey, baseURL, model string, temperature float64, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// Free-tier Gemini allows 15 requests per minute, so 15/60 = 0.25 requests/sec
	limiter := rate.NewLimiter(rate.Limit(0.25), 5) // burst of 5 requests

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		model:       model,
		temperature: temperature,
		rateLimiter: limiter,
	}
}

// SetDebug toggles verbose request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the delay before the given retry attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// GenerateReply sends one prompt plus system instruction to the model and
// returns the reply text. Transient failures are retried up to 3 times;
// client errors are terminal. A reply without a usable text body yields
// ErrEmptyReply.
func (c *Client) GenerateReply(ctx context.Context, systemInstruction, prompt string) (string, error) {
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	params := url.Values{}
	params.Add("key", c.apiKey)
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	body := domain.GenerateRequest{
		SystemInstruction: &domain.GenerateContent{
			Parts: []domain.GeneratePart{{Text: systemInstruction}},
		},
		Contents: []domain.GenerateContent{
			{
				Role:  "user",
				Parts: []domain.GeneratePart{{Text: prompt}},
			},
		},
		GenerationConfig: &domain.GenerationConfig{
			Temperature: c.temperature,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	if c.debug {
		log.Printf("[GENAI] Request to model %s: %s", c.model, string(payload))
	}

	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(payload))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", "LAuraLuxe/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			log.Printf("[GENAI] Request error (attempt %d): %v", attempt, err)
			lastErr = fmt.Errorf("%w: %v", domain.ErrGenAIFailure, err)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		// 429 and 5xx are retriable; other non-200 statuses are terminal
		if resp.StatusCode != http.StatusOK {
			log.Printf("[GENAI] API error (attempt %d) - Status: %d, Body: %s", attempt, resp.StatusCode, string(respBody))
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				lastErr = fmt.Errorf("%w: status %d", domain.ErrGenAIFailure, resp.StatusCode)
				time.Sleep(exponentialBackoff(attempt))
				continue
			}
			return "", fmt.Errorf("%w: status %d", domain.ErrGenAIFailure, resp.StatusCode)
		}

		var genResp domain.GenerateResponse
		if err := json.Unmarshal(respBody, &genResp); err != nil {
			log.Printf("[GENAI] JSON decode error: %v", err)
			return "", fmt.Errorf("%w: %v", domain.ErrGenAIFailure, err)
		}

		text := genResp.Text()
		if text == "" {
			log.Printf("[GENAI] Reply carried no text body")
			return "", domain.ErrEmptyReply
		}

		if c.debug {
			log.Printf("[GENAI] Reply: %q", text)
		}
		return text, nil
	}

	log.Printf("[GENAI] All retries failed")
	return "", lastErr
}
