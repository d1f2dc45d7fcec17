package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"

	"github.com/harun/alya/pkg/memory"
	"github.com/harun/alya/pkg/registry"
)

// OpenAIGateway implements Gateway on the OpenAI chat completions API.
type OpenAIGateway struct {
	client openai.Client
	logger zerolog.Logger
}

// NewOpenAIGateway creates an OpenAI-backed gateway.
func NewOpenAIGateway(apiKey string, logger zerolog.Logger) *OpenAIGateway {
	return &OpenAIGateway{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		logger: logger.With().Str("component", "gateway").Str("provider", "openai").Logger(),
	}
}

// Provider returns the provider name.
func (g *OpenAIGateway) Provider() string {
	return "openai"
}

// Complete sends the conversation and tool definitions to OpenAI.
func (g *OpenAIGateway) Complete(ctx context.Context, messages []memory.Message, tools []registry.Definition, opts CallOptions) (*ModelResponse, error) {
	reqID, _ := gonanoid.New()
	logger := g.logger.With().Str("request_id", reqID).Logger()

	oaiMessages := []openai.ChatCompletionMessageParamUnion{}

	for _, msg := range messages {
		switch msg.Role {
		case memory.RoleSystem:
			oaiMessages = append(oaiMessages, openai.SystemMessage(msg.Content))
		case memory.RoleUser:
			oaiMessages = append(oaiMessages, openai.UserMessage(msg.Content))
		case memory.RoleAssistant:
			if len(msg.ToolCalls) > 0 {
				toolCalls := []openai.ChatCompletionMessageToolCall{}
				for _, tc := range msg.ToolCalls {
					argsJSON, err := json.Marshal(tc.Arguments)
					if err != nil {
						return nil, &GatewayError{Err: fmt.Errorf("failed to marshal tool arguments: %w", err)}
					}
					toolCalls = append(toolCalls, openai.ChatCompletionMessageToolCall{
						ID:   tc.ID,
						Type: "function",
						Function: openai.ChatCompletionMessageToolCallFunction{
							Name:      tc.Name,
							Arguments: string(argsJSON),
						},
					})
				}
				assistantMsg := openai.ChatCompletionMessage{
					Role:      "assistant",
					Content:   msg.Content,
					ToolCalls: toolCalls,
				}
				oaiMessages = append(oaiMessages, assistantMsg.ToParam())
			} else {
				oaiMessages = append(oaiMessages, openai.AssistantMessage(msg.Content))
			}
		case memory.RoleTool:
			oaiMessages = append(oaiMessages, openai.ToolMessage(msg.ToolCallID, msg.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(opts.Model),
		Messages: oaiMessages,
	}

	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}
	if opts.Temperature > 0 {
		params.Temperature = openai.Float(opts.Temperature)
	}

	if len(tools) > 0 {
		oaiTools := []openai.ChatCompletionToolParam{}
		for _, tool := range tools {
			oaiTools = append(oaiTools, openai.ChatCompletionToolParam{
				Type: "function",
				Function: openai.FunctionDefinitionParam{
					Name:        tool.Name,
					Description: openai.String(tool.Description),
					Parameters:  openai.FunctionParameters(tool.InputSchema),
				},
			})
		}
		params.Tools = oaiTools
	}

	logger.Debug().
		Str("model", opts.Model).
		Int("messages", len(oaiMessages)).
		Int("tools", len(tools)).
		Msg("Completion request")

	response, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		logger.Warn().Err(err).Msg("Completion failed")
		return nil, wrapErr(err)
	}

	if len(response.Choices) == 0 {
		return nil, &GatewayError{Err: fmt.Errorf("no response choices returned")}
	}

	choice := response.Choices[0]

	toolCalls := []memory.ToolCall{}
	for _, tc := range choice.Message.ToolCalls {
		var args map[string]interface{}
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			return nil, &GatewayError{Err: fmt.Errorf("failed to parse tool arguments: %w", err)}
		}
		toolCalls = append(toolCalls, memory.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: args,
		})
	}

	logger.Debug().
		Int("tool_calls", len(toolCalls)).
		Str("finish_reason", string(choice.FinishReason)).
		Msg("Completion response")

	return &ModelResponse{
		Text:      choice.Message.Content,
		ToolCalls: toolCalls,
		Usage: &TokenUsage{
			InputTokens:  int(response.Usage.PromptTokens),
			OutputTokens: int(response.Usage.CompletionTokens),
		},
	}, nil
}
