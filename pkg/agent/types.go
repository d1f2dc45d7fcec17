package agent

import (
	"github.com/rs/zerolog"

	"github.com/harun/alya/pkg/gateway"
	"github.com/harun/alya/pkg/memory"
	"github.com/harun/alya/pkg/registry"
)

// Phase names used in structured logs.
const (
	PhasePlanning   = "planning"
	PhaseActing     = "acting"
	PhaseReflecting = "reflecting"
)

// Config holds the loop's collaborators and per-phase call options. All
// dependencies are injected explicitly; the loop keeps no global state.
type Config struct {
	Gateway  gateway.Gateway
	Registry *registry.Registry
	Logger   zerolog.Logger

	// SystemPrompt seeds the conversation; it is pinned and never evicted.
	SystemPrompt string

	// PlanOptions drives the planning completion (fast model, higher
	// temperature). SolveOptions drives acting, ReflectOptions reflection.
	PlanOptions    gateway.CallOptions
	SolveOptions   gateway.CallOptions
	ReflectOptions gateway.CallOptions

	// MemoryCapacity bounds the conversation buffer. Zero means unbounded.
	MemoryCapacity int
}

// RunOptions parameterizes a single run.
type RunOptions struct {
	// Question, when set, is solved directly and the planning completion is
	// skipped. When empty the model proposes its own question.
	Question string

	// EnableReflection turns on the verification phase.
	EnableReflection bool

	// MaxToolRounds caps acting/tool-resolution cycles. Zero or less selects
	// the default cap.
	MaxToolRounds int
}

// Result is the terminal output of one successful run.
type Result struct {
	RunID     string              `json:"run_id"`
	Question  string              `json:"question"`
	Answer    string              `json:"answer"`
	Reflected bool                `json:"reflected"`
	ToolCalls []memory.ToolCall   `json:"tool_calls,omitempty"`
	Usage     *gateway.TokenUsage `json:"usage,omitempty"`
}

// DefaultConfig returns call options mirroring the stock model tiers: fast
// model for planning and reflection, default model for solving.
func DefaultConfig(defaultModel, fastModel string) (plan, solve, reflect gateway.CallOptions) {
	plan = gateway.CallOptions{Model: fastModel, Temperature: 0.7}
	solve = gateway.CallOptions{Model: defaultModel, Temperature: 0.2}
	reflect = gateway.CallOptions{Model: fastModel, Temperature: 0.2}
	return plan, solve, reflect
}
