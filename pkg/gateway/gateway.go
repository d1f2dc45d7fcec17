package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/harun/alya/pkg/memory"
	"github.com/harun/alya/pkg/registry"
)

// ResponseKind tags the two shapes a model response can take.
type ResponseKind string

const (
	KindText      ResponseKind = "text"
	KindToolCalls ResponseKind = "tool_calls"
)

// CallOptions carries per-call model parameters. The loop uses different
// option sets per phase (fast model for planning, default model for solving).
type CallOptions struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

// TokenUsage tracks token consumption across one or more calls.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Add accumulates usage from another call.
func (u *TokenUsage) Add(other *TokenUsage) {
	if other == nil {
		return
	}
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

// ModelResponse is the tagged result of a completion: either final text or an
// ordered sequence of tool call requests, never both.
type ModelResponse struct {
	Text      string            `json:"text,omitempty"`
	ToolCalls []memory.ToolCall `json:"tool_calls,omitempty"`
	Usage     *TokenUsage       `json:"usage,omitempty"`
}

// Kind reports which variant this response carries.
func (r *ModelResponse) Kind() ResponseKind {
	if len(r.ToolCalls) > 0 {
		return KindToolCalls
	}
	return KindText
}

// Gateway is the single boundary between the agent loop and a model service.
type Gateway interface {
	// Complete sends the ordered messages and tool definitions and returns
	// the model's response. Failures are *GatewayError.
	Complete(ctx context.Context, messages []memory.Message, tools []registry.Definition, opts CallOptions) (*ModelResponse, error)

	// Provider returns the provider name.
	Provider() string
}

// GatewayError wraps a transport or service failure. Transient errors may
// succeed on retry; retrying is the caller's concern, never the loop's.
type GatewayError struct {
	Transient bool
	Err       error
}

func (e *GatewayError) Error() string {
	if e.Transient {
		return fmt.Sprintf("gateway error (transient): %v", e.Err)
	}
	return fmt.Sprintf("gateway error: %v", e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// wrapErr classifies a provider error as transient or fatal.
func wrapErr(err error) *GatewayError {
	return &GatewayError{Transient: isTransient(err), Err: err}
}

// isTransient checks whether an error is worth retrying: network resets,
// rate limits and server-side failures.
func isTransient(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()

	if strings.Contains(msg, "ECONNRESET") || strings.Contains(msg, "ETIMEDOUT") ||
		strings.Contains(msg, "connection refused") || strings.Contains(msg, "EOF") {
		return true
	}

	if strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") {
		return true
	}

	for _, code := range []string{"500", "502", "503", "504"} {
		if strings.Contains(msg, code) {
			return true
		}
	}

	return false
}
