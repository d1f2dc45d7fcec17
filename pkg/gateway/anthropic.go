package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"github.com/harun/alya/pkg/memory"
	"github.com/harun/alya/pkg/registry"
)

// AnthropicGateway implements Gateway on the Anthropic messages API.
type AnthropicGateway struct {
	client anthropic.Client
	logger zerolog.Logger
}

// NewAnthropicGateway creates an Anthropic-backed gateway.
func NewAnthropicGateway(apiKey string, logger zerolog.Logger) *AnthropicGateway {
	return &AnthropicGateway{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		logger: logger.With().Str("component", "gateway").Str("provider", "anthropic").Logger(),
	}
}

// Provider returns the provider name.
func (g *AnthropicGateway) Provider() string {
	return "anthropic"
}

// Complete sends the conversation and tool definitions to Anthropic. System
// messages are lifted out of the timeline into the system parameter.
func (g *AnthropicGateway) Complete(ctx context.Context, messages []memory.Message, tools []registry.Definition, opts CallOptions) (*ModelResponse, error) {
	reqID, _ := gonanoid.New()
	logger := g.logger.With().Str("request_id", reqID).Logger()

	systemPrompt := ""
	anthropicMessages := []anthropic.MessageParam{}

	for _, msg := range messages {
		switch msg.Role {
		case memory.RoleSystem:
			systemPrompt = msg.Content
		case memory.RoleTool:
			anthropicMessages = append(anthropicMessages, anthropic.NewUserMessage(
				anthropic.NewToolResultBlock(msg.ToolCallID, msg.Content, false),
			))
		case memory.RoleAssistant:
			if len(msg.ToolCalls) > 0 {
				blocks := []anthropic.ContentBlockParamUnion{}
				if msg.Content != "" {
					blocks = append(blocks, anthropic.NewTextBlock(msg.Content))
				}
				for _, tc := range msg.ToolCalls {
					blocks = append(blocks, anthropic.NewToolUseBlock(tc.ID, tc.Arguments, tc.Name))
				}
				anthropicMessages = append(anthropicMessages, anthropic.MessageParam{
					Role:    anthropic.MessageParamRoleAssistant,
					Content: blocks,
				})
			} else {
				anthropicMessages = append(anthropicMessages, anthropic.MessageParam{
					Role: anthropic.MessageParamRoleAssistant,
					Content: []anthropic.ContentBlockParamUnion{
						anthropic.NewTextBlock(msg.Content),
					},
				})
			}
		case memory.RoleUser:
			anthropicMessages = append(anthropicMessages, anthropic.NewUserMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		}
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	reqParams := anthropic.MessageNewParams{
		Model:     anthropic.Model(opts.Model),
		Messages:  anthropicMessages,
		MaxTokens: int64(maxTokens),
	}

	if systemPrompt != "" {
		reqParams.System = []anthropic.TextBlockParam{
			{Text: systemPrompt},
		}
	}

	if opts.Temperature > 0 {
		reqParams.Temperature = anthropic.Float(opts.Temperature)
	}

	if len(tools) > 0 {
		anthropicTools := []anthropic.ToolUnionParam{}
		for _, tool := range tools {
			toolParam := anthropic.ToolParam{
				Name:        tool.Name,
				Description: anthropic.String(tool.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: tool.InputSchema["properties"],
				},
			}

			if required, ok := tool.InputSchema["required"]; ok {
				switch req := required.(type) {
				case []string:
					toolParam.InputSchema.Required = req
				case []interface{}:
					strs := make([]string, len(req))
					for i, v := range req {
						strs[i], _ = v.(string)
					}
					toolParam.InputSchema.Required = strs
				}
			}

			anthropicTools = append(anthropicTools, anthropic.ToolUnionParam{OfTool: &toolParam})
		}
		reqParams.Tools = anthropicTools
	}

	logger.Debug().
		Str("model", opts.Model).
		Int("messages", len(anthropicMessages)).
		Int("tools", len(tools)).
		Msg("Completion request")

	response, err := g.client.Messages.New(ctx, reqParams)
	if err != nil {
		logger.Warn().Err(err).Msg("Completion failed")
		return nil, wrapErr(err)
	}

	content := ""
	toolCalls := []memory.ToolCall{}

	for _, block := range response.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			content += b.Text
		case anthropic.ToolUseBlock:
			var args map[string]interface{}
			if err := json.Unmarshal([]byte(b.JSON.Input.Raw()), &args); err != nil {
				return nil, &GatewayError{Err: fmt.Errorf("failed to parse tool input: %w", err)}
			}
			toolCalls = append(toolCalls, memory.ToolCall{
				ID:        b.ID,
				Name:      b.Name,
				Arguments: args,
			})
		}
	}

	logger.Debug().
		Int("tool_calls", len(toolCalls)).
		Str("stop_reason", string(response.StopReason)).
		Msg("Completion response")

	return &ModelResponse{
		Text:      content,
		ToolCalls: toolCalls,
		Usage: &TokenUsage{
			InputTokens:  int(response.Usage.InputTokens),
			OutputTokens: int(response.Usage.OutputTokens),
		},
	}, nil
}
