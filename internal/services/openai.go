package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/vibecheck/internal/shared"
	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	DefaultOpenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultOpenAIModel   = "gemini-1.5-flash"
)

// OpenAIProvider generates text through an OpenAI compatible chat completions API.
type OpenAIProvider struct {
	client openaigo.Client
	model  string
}

// NewOpenAIProvider builds a provider from cfg. A nil httpClient uses [http.DefaultClient].
//
// The client never retries. A zero cfg.RequestTimeout leaves calls unbounded.
func NewOpenAIProvider(cfg shared.ProviderConfig, httpClient *http.Client) (*OpenAIProvider, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: provider api key", shared.ErrMissingCredentials)
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultOpenAIModel
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	opts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.RequestTimeout))
	}

	return &OpenAIProvider{client: openaigo.NewClient(opts...), model: model}, nil
}

// Generate sends prompt as a single user message and returns the first choice's content.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openaigo.ChatCompletionNewParams{
		Model:    openaigo.ChatModel(p.model),
		Messages: []openaigo.ChatCompletionMessageParamUnion{openaigo.UserMessage(prompt)},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", shared.ErrProviderRequest, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: model %s", shared.ErrEmptyCompletion, p.model)
	}

	return resp.Choices[0].Message.Content, nil
}

// Name returns "openai".
func (p *OpenAIProvider) Name() string { return "openai" }

// Model returns the configured model name.
func (p *OpenAIProvider) Model() string { return p.model }
