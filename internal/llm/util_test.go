package llm

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"whitespace", "  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.input))
		})
	}
}

func TestRepairJSON_TrailingCommas(t *testing.T) {
	assert.Equal(t, `{"a":1}`, RepairJSON(`{"a":1,}`))
	assert.Equal(t, `{"a":[1,2]}`, RepairJSON(`{"a":[1,2,]}`))
	assert.Equal(t, `{"a":[1,2] }`, RepairJSON(`{"a":[1,2, ] ,}`))
	// Valid JSON passes through unchanged
	assert.Equal(t, `{"a":[1,2],"b":{}}`, RepairJSON(`{"a":[1,2],"b":{}}`))
}

func TestScriptedClient_StreamChat(t *testing.T) {
	client := NewScriptedClient()
	assert.False(t, client.Available())

	stream, err := client.StreamChat(context.Background(), ChatRequest{Prompt: "ask"})
	require.NoError(t, err)

	var collected string
	for {
		token, err := stream.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		collected += token
	}
	assert.Equal(t, scriptedReply, collected)
}

func TestScriptedClient_StreamChat_Cancelled(t *testing.T) {
	client := NewScriptedClient()
	ctx, cancel := context.WithCancel(context.Background())

	stream, err := client.StreamChat(ctx, ChatRequest{Prompt: "ask"})
	require.NoError(t, err)

	_, err = stream.Next()
	require.NoError(t, err)

	cancel()
	_, err = stream.Next()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScriptedClient_GenerateJSON_Unavailable(t *testing.T) {
	client := NewScriptedClient()
	_, err := client.GenerateJSON(context.Background(), "prompt", TierStandard)
	assert.ErrorIs(t, err, ErrUnavailable)
}
