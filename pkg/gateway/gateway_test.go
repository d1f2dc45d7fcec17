package gateway

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harun/alya/pkg/memory"
)

func TestModelResponseKind(t *testing.T) {
	t.Run("should be text when no tool calls", func(t *testing.T) {
		resp := &ModelResponse{Text: "hello"}
		assert.Equal(t, KindText, resp.Kind())
	})

	t.Run("should be text when empty", func(t *testing.T) {
		resp := &ModelResponse{}
		assert.Equal(t, KindText, resp.Kind())
	})

	t.Run("should be tool calls when any are present", func(t *testing.T) {
		resp := &ModelResponse{ToolCalls: []memory.ToolCall{{ID: "c1", Name: "add"}}}
		assert.Equal(t, KindToolCalls, resp.Kind())
	})
}

func TestTokenUsageAdd(t *testing.T) {
	t.Run("should accumulate across calls", func(t *testing.T) {
		total := &TokenUsage{}
		total.Add(&TokenUsage{InputTokens: 10, OutputTokens: 4})
		total.Add(&TokenUsage{InputTokens: 7, OutputTokens: 3})

		assert.Equal(t, 17, total.InputTokens)
		assert.Equal(t, 7, total.OutputTokens)
	})

	t.Run("should ignore nil", func(t *testing.T) {
		total := &TokenUsage{InputTokens: 5}
		total.Add(nil)
		assert.Equal(t, 5, total.InputTokens)
	})
}

func TestGatewayError(t *testing.T) {
	t.Run("should unwrap the cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := &GatewayError{Err: cause}
		assert.ErrorIs(t, err, cause)
	})

	t.Run("should mark transience in the message", func(t *testing.T) {
		err := &GatewayError{Transient: true, Err: errors.New("429")}
		assert.Contains(t, err.Error(), "transient")
	})
}

func TestWrapErr(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{"should mark rate limits transient", errors.New("request failed with status 429"), true},
		{"should mark rate limit wording transient", errors.New("rate limit exceeded"), true},
		{"should mark server errors transient", errors.New("502 bad gateway"), true},
		{"should mark connection resets transient", errors.New("read tcp: ECONNRESET"), true},
		{"should mark refused connections transient", errors.New("dial tcp: connection refused"), true},
		{"should mark unexpected EOF transient", errors.New("unexpected EOF"), true},
		{"should mark auth failures fatal", errors.New("401 unauthorized"), false},
		{"should mark bad requests fatal", errors.New("400 invalid request"), false},
		{"should mark unknown errors fatal", errors.New("something else"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := wrapErr(tt.err)
			assert.Equal(t, tt.transient, wrapped.Transient)
			assert.ErrorIs(t, wrapped, tt.err)
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("should build an openai gateway", func(t *testing.T) {
		gw, err := New("openai", "sk-test", zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, "openai", gw.Provider())
	})

	t.Run("should build an anthropic gateway", func(t *testing.T) {
		gw, err := New("anthropic", "sk-ant-test", zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, "anthropic", gw.Provider())
	})

	t.Run("should reject unsupported providers", func(t *testing.T) {
		_, err := New("ollama", "key", zerolog.Nop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported provider")
	})
}

func ExampleModelResponse_Kind() {
	resp := &ModelResponse{Text: "42"}
	fmt.Println(resp.Kind())
	// Output: text
}
