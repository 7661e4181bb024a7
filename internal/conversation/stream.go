package conversation

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/screening-agent/internal/llm"
	"github.com/jonathan/screening-agent/internal/types"
)

// TurnStream is the pull-based token stream for one assistant turn. The
// caller reads tokens via Next until io.EOF, then calls Commit to persist
// the full trimmed reply as one assistant turn. A stream abandoned before
// end-of-stream persists nothing.
type TurnStream struct {
	stream      llm.Stream
	turns       TurnStore
	screeningID uuid.UUID

	buf      strings.Builder
	complete bool
}

// Next returns the next token. io.EOF is the terminal signal; any other
// error means the turn failed and must not be persisted.
func (s *TurnStream) Next() (string, error) {
	token, err := s.stream.Next()
	if err == io.EOF {
		s.complete = true
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	s.buf.WriteString(token)
	return token, nil
}

// Content returns the trimmed text accumulated so far.
func (s *TurnStream) Content() string {
	return strings.TrimSpace(s.buf.String())
}

// Commit appends the accumulated assistant turn. It refuses to persist
// unless the stream reached its clean end-of-stream signal.
func (s *TurnStream) Commit(ctx context.Context) error {
	if !s.complete {
		return ErrStreamIncomplete
	}
	content := strings.TrimSpace(s.buf.String())
	if content == "" {
		return nil
	}
	_, err := s.turns.AppendTurn(ctx, s.screeningID, types.RoleAssistant, content)
	return err
}

// Close releases the underlying provider stream. Safe to call at any point.
func (s *TurnStream) Close() {
	s.stream.Close()
}
