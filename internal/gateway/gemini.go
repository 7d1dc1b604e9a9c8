package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash"
	maxErrorBody   = 512
)

type GeminiOptions struct {
	BaseURL    string
	Model      string
	Keys       *KeyPool
	Timeout    time.Duration
	HTTPClient *http.Client
}

// GeminiBackend calls the generateContent endpoint, picking a credential from
// the key pool for every request.
type GeminiBackend struct {
	client *resty.Client
	model  string
	keys   *KeyPool
}

func NewGeminiBackend(opts GeminiOptions) *GeminiBackend {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	keys := opts.Keys
	if keys == nil {
		keys, _ = NewKeyPool(nil, StrategyRandom)
	}

	var c *resty.Client
	if opts.HTTPClient != nil {
		c = resty.NewWithClient(opts.HTTPClient)
	} else {
		c = resty.New()
	}
	c.SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &GeminiBackend{client: c, model: model, keys: keys}
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

func (r generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String())
}

func (b *GeminiBackend) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	key, err := b.keys.Next()
	if err != nil {
		return "", err
	}

	resp, err := b.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", key).
		SetBody(&req).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", b.model))
	if err != nil {
		return "", fmt.Errorf("execute gemini request: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		body := resp.String()
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return "", &StatusError{Code: resp.StatusCode(), Body: body}
	}

	var parsed generateResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	text := parsed.text()
	if text == "" {
		if reason := parsed.PromptFeedback.BlockReason; reason != "" {
			return "", fmt.Errorf("%w (blocked: %s)", ErrEmptyResponse, reason)
		}
		return "", ErrEmptyResponse
	}
	return text, nil
}
