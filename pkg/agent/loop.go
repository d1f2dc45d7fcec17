package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/harun/alya/pkg/gateway"
	"github.com/harun/alya/pkg/memory"
	"github.com/harun/alya/pkg/registry"
)

// DefaultMaxToolRounds caps acting/tool-resolution cycles when RunOptions
// does not specify a limit.
const DefaultMaxToolRounds = 8

// Loop drives the planning, acting and reflecting phases of one agent run.
type Loop struct {
	gw     gateway.Gateway
	reg    *registry.Registry
	logger zerolog.Logger
	cfg    Config

	// Serializes runs: one conversation, one run at a time.
	runMu sync.Mutex
}

// New creates an agent loop from explicit collaborators.
func New(cfg Config) (*Loop, error) {
	if cfg.Gateway == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	if cfg.Registry == nil {
		return nil, fmt.Errorf("tool registry is required")
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}

	return &Loop{
		gw:     cfg.Gateway,
		reg:    cfg.Registry,
		logger: cfg.Logger.With().Str("component", "agent").Logger(),
		cfg:    cfg,
	}, nil
}

// runState carries the mutable state of one run.
type runState struct {
	conv      *memory.Conversation
	usage     *gateway.TokenUsage
	toolCalls []memory.ToolCall
	logger    zerolog.Logger
}

// Run executes one plan, act, reflect session and returns its result. A
// failed run returns a nil result and the triggering error; no partial
// result is ever produced.
func (l *Loop) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	l.runMu.Lock()
	defer l.runMu.Unlock()

	if opts.MaxToolRounds <= 0 {
		opts.MaxToolRounds = DefaultMaxToolRounds
	}

	runID := uuid.New().String()
	logger := l.logger.With().Str("run_id", runID).Logger()

	rs := &runState{
		conv:   memory.New(l.cfg.MemoryCapacity),
		usage:  &gateway.TokenUsage{},
		logger: logger,
	}
	rs.conv.Append(memory.Message{Role: memory.RoleSystem, Content: l.cfg.SystemPrompt})

	question, err := l.plan(ctx, rs, opts)
	if err != nil {
		logger.Error().Err(err).Str("phase", PhasePlanning).Msg("Run failed")
		return nil, err
	}
	logger.Info().Str("phase", PhasePlanning).Str("question", question).Msg("Question settled")

	rs.conv.Append(memory.Message{Role: memory.RoleUser, Content: solvePrompt(question)})
	answer, err := l.act(ctx, rs, opts.MaxToolRounds)
	if err != nil {
		logger.Error().Err(err).Str("phase", PhaseActing).Msg("Run failed")
		return nil, err
	}

	reflected := false
	if opts.EnableReflection {
		reflected = true
		answer, err = l.reflect(ctx, rs, question, answer, opts.MaxToolRounds)
		if err != nil {
			logger.Error().Err(err).Str("phase", PhaseReflecting).Msg("Run failed")
			return nil, err
		}
	}

	logger.Info().
		Int("tool_calls", len(rs.toolCalls)).
		Int("messages", rs.conv.Len()).
		Bool("reflected", reflected).
		Msg("Run complete")

	return &Result{
		RunID:     runID,
		Question:  question,
		Answer:    answer,
		Reflected: reflected,
		ToolCalls: rs.toolCalls,
		Usage:     rs.usage,
	}, nil
}

// plan settles the question to solve. A caller-supplied question skips the
// planning completion; otherwise the model proposes one. Tool calls are not
// allowed in this phase.
func (l *Loop) plan(ctx context.Context, rs *runState, opts RunOptions) (string, error) {
	if q := strings.TrimSpace(opts.Question); q != "" {
		return q, nil
	}

	rs.conv.Append(memory.Message{Role: memory.RoleUser, Content: planningPrompt})

	resp, err := l.gw.Complete(ctx, rs.conv.Snapshot(), nil, l.cfg.PlanOptions)
	if err != nil {
		return "", err
	}
	rs.usage.Add(resp.Usage)

	if resp.Kind() == gateway.KindToolCalls {
		return "", &PlanningError{Reason: "model requested tool calls while proposing a question"}
	}

	question := strings.TrimSpace(resp.Text)
	if question == "" {
		return "", &PlanningError{Reason: "model proposed an empty question"}
	}

	rs.conv.Append(memory.Message{Role: memory.RoleAssistant, Content: question})
	return question, nil
}

// act runs acting/tool-resolution cycles until the model produces a text
// answer or the round cap is hit. The solve instruction must already be in
// the conversation.
func (l *Loop) act(ctx context.Context, rs *runState, maxRounds int) (string, error) {
	rounds := 0

	for {
		resp, err := l.gw.Complete(ctx, rs.conv.Snapshot(), l.reg.Definitions(), l.cfg.SolveOptions)
		if err != nil {
			return "", err
		}
		rs.usage.Add(resp.Usage)

		if resp.Kind() == gateway.KindText {
			answer := strings.TrimSpace(resp.Text)
			if answer == "" {
				return "", fmt.Errorf("model returned an empty answer")
			}
			rs.conv.Append(memory.Message{Role: memory.RoleAssistant, Content: answer})
			return answer, nil
		}

		rounds++
		if rounds > maxRounds {
			return "", &ToolLoopExceededError{MaxRounds: maxRounds}
		}

		rs.conv.Append(memory.Message{
			Role:      memory.RoleAssistant,
			Content:   resp.Text,
			ToolCalls: resp.ToolCalls,
		})

		// Resolve in request order so the appended sequence is deterministic.
		for _, call := range resp.ToolCalls {
			content := l.resolveToolCall(ctx, rs, call)
			rs.toolCalls = append(rs.toolCalls, call)
			rs.conv.Append(memory.Message{
				Role:       memory.RoleTool,
				Content:    content,
				ToolCallID: call.ID,
			})
		}
	}
}

// resolveToolCall invokes one requested tool and renders its outcome as the
// tool-role message content. Failures become a structured error payload fed
// back to the model; they never abort the run.
func (l *Loop) resolveToolCall(ctx context.Context, rs *runState, call memory.ToolCall) string {
	out, err := l.reg.Invoke(ctx, call.Name, call.Arguments)
	if err != nil {
		rs.logger.Warn().
			Str("phase", PhaseActing).
			Str("tool", call.Name).
			Str("tool_call_id", call.ID).
			Err(err).
			Msg("Tool call failed")

		payload, _ := json.Marshal(map[string]string{
			"tool":  call.Name,
			"code":  registry.ErrorCode(err),
			"error": err.Error(),
		})
		return string(payload)
	}

	return stringifyToolResult(out)
}

// reflect asks the model to verify the candidate answer. On disagreement the
// loop does exactly one corrective acting pass and accepts whatever answer
// results.
func (l *Loop) reflect(ctx context.Context, rs *runState, question, answer string, maxRounds int) (string, error) {
	rs.conv.Append(memory.Message{Role: memory.RoleUser, Content: reflectPrompt(question, answer)})

	resp, err := l.gw.Complete(ctx, rs.conv.Snapshot(), nil, l.cfg.ReflectOptions)
	if err != nil {
		return "", err
	}
	rs.usage.Add(resp.Usage)

	if resp.Kind() == gateway.KindToolCalls {
		// Verification is tool-free; accept the candidate answer.
		rs.logger.Warn().Str("phase", PhaseReflecting).Msg("Model requested tools during verification")
		return answer, nil
	}

	verdict := strings.TrimSpace(resp.Text)
	rs.conv.Append(memory.Message{Role: memory.RoleAssistant, Content: verdict})

	if !disagrees(verdict) {
		rs.logger.Info().Str("phase", PhaseReflecting).Msg("Answer verified")
		return answer, nil
	}

	rs.logger.Info().Str("phase", PhaseReflecting).Msg("Verification disagreed, running corrective pass")

	rs.conv.Append(memory.Message{Role: memory.RoleUser, Content: correctivePrompt(verdict)})
	return l.act(ctx, rs, maxRounds)
}

// disagrees reports whether a verification reply opens with a disagree
// verdict. Anything else counts as agreement, keeping reflection bounded.
func disagrees(verdict string) bool {
	v := strings.ToLower(verdict)
	return strings.HasPrefix(v, "verdict: disagree") || strings.HasPrefix(v, "disagree")
}

// stringifyToolResult renders a handler result as message content. Strings
// pass through; everything else is JSON-encoded.
func stringifyToolResult(out interface{}) string {
	if s, ok := out.(string); ok {
		return s
	}
	encoded, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf("%v", out)
	}
	return string(encoded)
}
