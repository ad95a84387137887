package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/kyleowen12345/math-problem-generator/internal/config"
	"github.com/kyleowen12345/math-problem-generator/internal/llm"
	"github.com/kyleowen12345/math-problem-generator/internal/metrics"
	"github.com/kyleowen12345/math-problem-generator/internal/usage"
)

var (
	// ErrMissingAPIKey is returned when no Gemini API key is configured.
	ErrMissingAPIKey = errors.New("missing gemini api key")
	// ErrEmptyResponse is returned when the model produces no text.
	ErrEmptyResponse = errors.New("empty model response")
)

// Request is a single Gemini generation request.
type Request struct {
	Prompt       string
	SystemPrompt string
	Model        string
}

// Client calls the Gemini API with round-robin key rotation.
type Client struct {
	cfg           *config.Config
	metrics       *metrics.Store
	usageRecorder *usage.Recorder
	mu            sync.Mutex
	clients       map[string]*genai.Client
	apiKeys       []string
	apiKeyIdx     int
}

// NewClient creates a Gemini client.
func NewClient(cfg *config.Config, metricsStore *metrics.Store, usageRecorder *usage.Recorder) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if metricsStore == nil {
		return nil, errors.New("metrics store is nil")
	}
	return &Client{
		cfg:           cfg,
		metrics:       metricsStore,
		usageRecorder: usageRecorder,
		clients:       make(map[string]*genai.Client),
		apiKeys:       cfg.Gemini.APIKeys,
	}, nil
}

// Chat performs a text generation request and returns the response text
// together with the model name that served it.
func (c *Client) Chat(ctx context.Context, req Request) (string, string, error) {
	start := time.Now()
	response, model, err := c.generate(ctx, req)
	if err != nil {
		c.metrics.RecordError(time.Since(start))
		return "", model, err
	}

	tokens := extractUsage(response)
	c.metrics.RecordSuccess(time.Since(start), tokens)
	c.recordUsage(ctx, tokens)

	text := response.Text()
	if strings.TrimSpace(text) == "" {
		return "", model, ErrEmptyResponse
	}
	return text, model, nil
}

func (c *Client) recordUsage(ctx context.Context, tokens llm.Usage) {
	if c.usageRecorder == nil {
		return
	}
	c.usageRecorder.Record(ctx, int64(tokens.InputTokens), int64(tokens.OutputTokens))
}

func (c *Client) generate(ctx context.Context, req Request) (*genai.GenerateContentResponse, string, error) {
	client, err := c.selectClient(ctx)
	if err != nil {
		return nil, "", err
	}

	model := req.Model
	if model == "" {
		model = c.cfg.Gemini.Model
	}

	genConfig := c.buildGenerateConfig(req.SystemPrompt)
	contents := []*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}
	response, err := client.Models.GenerateContent(ctx, model, contents, genConfig)
	if err != nil {
		return nil, model, fmt.Errorf("generate content: %w", err)
	}
	return response, model, nil
}

func (c *Client) selectClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.apiKeys) == 0 {
		return nil, ErrMissingAPIKey
	}

	key := c.apiKeys[c.apiKeyIdx%len(c.apiKeys)]
	c.apiKeyIdx++
	if client, ok := c.clients[key]; ok {
		return client, nil
	}

	timeout := time.Duration(c.cfg.Gemini.TimeoutSeconds) * time.Second
	client, err := genai.NewClient(context.WithoutCancel(ctx), &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			Timeout: genai.Ptr(timeout),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	c.clients[key] = client
	return client, nil
}

func (c *Client) buildGenerateConfig(systemPrompt string) *genai.GenerateContentConfig {
	genConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(c.cfg.Gemini.Temperature)),
		MaxOutputTokens: int32(c.cfg.Gemini.MaxOutputTokens),
	}
	if systemPrompt != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}
	return genConfig
}

func extractUsage(response *genai.GenerateContentResponse) llm.Usage {
	if response == nil || response.UsageMetadata == nil {
		return llm.Usage{}
	}
	meta := response.UsageMetadata
	return llm.Usage{
		InputTokens:  int(meta.PromptTokenCount),
		OutputTokens: int(meta.CandidatesTokenCount) + int(meta.ThoughtsTokenCount),
		TotalTokens:  int(meta.TotalTokenCount),
	}
}
