/**
* Name: 			client.go
* Description: 		Gemini generateContent client for meal analysis
* Workflow: 		request build (prompt + inline image), single blocking call, text extraction
 */

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"CaloriesAdvisor/internal/config"
	"CaloriesAdvisor/internal/lib/sl"
	"CaloriesAdvisor/internal/models"

	"google.golang.org/api/googleapi"
)

var ErrRequestFailed = errors.New("model request failed")

// Analyzer sends one prompt plus one image and returns the model's text.
type Analyzer interface {
	Analyze(ctx context.Context, prompt string, image models.ImagePayload) (string, error)
}

type GenerateRequest struct {
	Contents []Content `json:"contents"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

type InlineData struct {
	MimeType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

type GenerateResponse struct {
	Candidates     []Candidate     `json:"candidates"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
}

type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type PromptFeedback struct {
	BlockReason string `json:"blockReason"`
}

type GeminiClient struct {
	httpClient *http.Client
	endpoint   string
	model      string
	apiKey     string
	log        *slog.Logger
}

type Option func(*GeminiClient)

func WithHTTPClient(c *http.Client) Option {
	return func(g *GeminiClient) {
		g.httpClient = c
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(g *GeminiClient) {
		g.log = log
	}
}

func NewGeminiClient(cfg *config.Config, opts ...Option) *GeminiClient {
	g := &GeminiClient{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		model:      cfg.Model,
		apiKey:     cfg.GoogleAPIKey,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With(sl.Module("llm.gemini"))
	g.log.With(
		slog.String("model", g.model),
		sl.Secret("api_key", g.apiKey),
	).Debug("gemini client ready")
	return g
}

func (g *GeminiClient) Analyze(ctx context.Context, prompt string, image models.ImagePayload) (string, error) {
	reqBody, err := json.Marshal(GenerateRequest{
		Contents: []Content{{
			Role: "user",
			Parts: []Part{
				{Text: prompt},
				{InlineData: &InlineData{MimeType: image.MimeType, Data: image.Data}},
			},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrRequestFailed, err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.endpoint, url.PathEscape(g.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	g.log.With(
		slog.String("mime_type", image.MimeType),
		slog.Int("image_bytes", len(image.Data)),
	).Debug("Analyze(): sending generateContent")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return "", fmt.Errorf("%w: status %d: %s", ErrRequestFailed, apiErr.Code, apiErr.Message)
		}
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	var genResp GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrRequestFailed, err)
	}
	return genResp.text()
}

func (r *GenerateResponse) text() (string, error) {
	if r.PromptFeedback != nil && r.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s", ErrRequestFailed, r.PromptFeedback.BlockReason)
	}
	if len(r.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", ErrRequestFailed)
	}

	var b strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: empty response (finish reason %s)", ErrRequestFailed, r.Candidates[0].FinishReason)
	}
	return b.String(), nil
}
