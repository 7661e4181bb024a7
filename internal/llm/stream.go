package llm

import (
	"context"
	"io"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
)

// Stream is a lazy, finite, non-restartable sequence of text tokens.
// Next returns io.EOF once the sequence is exhausted; any other error is
// terminal for the stream. The consumer drives the pace and may stop at any
// point by calling Close without draining.
type Stream interface {
	Next() (string, error)
	Close()
}

// geminiStream adapts the Gemini response iterator to the Stream interface.
type geminiStream struct {
	iter   *genai.GenerateContentResponseIterator
	closed bool
}

func (s *geminiStream) Next() (string, error) {
	if s.closed {
		return "", io.EOF
	}
	for {
		resp, err := s.iter.Next()
		if err == iterator.Done {
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}
		token := chunkText(resp)
		// Skip empty chunks (e.g. safety metadata without text parts)
		if token != "" {
			return token, nil
		}
	}
}

func (s *geminiStream) Close() { s.closed = true }

// chunkText concatenates the text parts of one streamed response chunk.
func chunkText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}

// scriptedStream yields a fixed reply word by word. It honors context
// cancellation so an abandoned consumer stops cleanly.
type scriptedStream struct {
	ctx    context.Context
	tokens []string
	pos    int
	closed bool
}

func (s *scriptedStream) Next() (string, error) {
	if s.closed || s.pos >= len(s.tokens) {
		return "", io.EOF
	}
	if err := s.ctx.Err(); err != nil {
		return "", err
	}
	token := s.tokens[s.pos]
	s.pos++
	return token, nil
}

func (s *scriptedStream) Close() { s.closed = true }

// scriptedReply is the canned opener used when no provider is configured,
// so a demo screening session still produces a sensible first question.
const scriptedReply = "Great, let's start. First, could you share your salary expectation?"

// ScriptedClient is the offline Client implementation. StreamChat yields a
// canned reply; GenerateJSON reports ErrUnavailable so callers fall back to
// their deterministic paths.
type ScriptedClient struct{}

// NewScriptedClient creates the offline fallback client.
func NewScriptedClient() *ScriptedClient { return &ScriptedClient{} }

// GenerateJSON always fails with ErrUnavailable.
func (c *ScriptedClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return "", ErrUnavailable
}

// StreamChat yields the canned opener, token by token.
func (c *ScriptedClient) StreamChat(ctx context.Context, req ChatRequest) (Stream, error) {
	words := strings.Split(scriptedReply, " ")
	tokens := make([]string, len(words))
	for i, w := range words {
		if i == 0 {
			tokens[i] = w
		} else {
			tokens[i] = " " + w
		}
	}
	return &scriptedStream{ctx: ctx, tokens: tokens}, nil
}

// Available reports that no real provider backs this client.
func (c *ScriptedClient) Available() bool { return false }

// Close is a no-op for the scripted client.
func (c *ScriptedClient) Close() error { return nil }
