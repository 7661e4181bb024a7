package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrUnavailable is returned when no real provider is configured. Callers
// with a deterministic fallback must treat it as a signal to degrade, not
// as a session failure.
var ErrUnavailable = errors.New("llm provider not configured")

// Chat message roles as used by the conversation engine. The candidate role
// is remapped to user before messages reach a provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of an ordered chat history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest describes one dialogue-generation call: a system instruction,
// a bounded history window, and the prompt for the next reply.
type ChatRequest struct {
	System  string
	History []Message
	Prompt  string
}

// Client is an abstraction over LLM providers.
type Client interface {
	// GenerateJSON generates JSON content using the specified model tier
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// StreamChat starts a dialogue generation and returns a pull-based
	// token stream; consumption may be abandoned at any point via Close
	StreamChat(ctx context.Context, req ChatRequest) (Stream, error)
	// Available reports whether a real provider backs this client
	Available() bool
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates an LLM client. An empty API key yields the scripted
// offline client so the screening flow never blocks on a missing provider.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if apiKey == "" || config.Provider == ProviderScripted {
		return NewScriptedClient(), nil
	}
	return NewGeminiClient(ctx, config, apiKey)
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateJSON generates JSON content using the specified model tier.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	return CleanJSONBlock(text), nil
}

// StreamChat starts a streaming dialogue turn on the standard tier.
func (c *GeminiClient) StreamChat(ctx context.Context, req ChatRequest) (Stream, error) {
	modelName := c.config.GetModel(TierStandard)
	if modelName == "" {
		return nil, fmt.Errorf("no model configured for tier %s", TierStandard)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.2)
	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}

	cs := model.StartChat()
	cs.History = toGeminiHistory(req.History)

	iter := cs.SendMessageStream(ctx, genai.Text(req.Prompt))
	return &geminiStream{iter: iter}, nil
}

// Available reports that a real provider backs this client.
func (c *GeminiClient) Available() bool { return true }

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// toGeminiHistory maps chat messages onto Gemini's two-role history model.
// Assistant turns become "model"; everything else becomes "user".
func toGeminiHistory(messages []Message) []*genai.Content {
	history := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return history
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
