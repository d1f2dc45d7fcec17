package memory

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Message roles understood by the model gateway.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall represents a tool invocation requested by the model.
type ToolCall struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// Message represents a single entry in the conversation timeline.
type Message struct {
	ID         string     `json:"id"`
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// Conversation is an ordered, bounded buffer of messages for one agent run.
// It is not safe for concurrent use; a run owns its conversation exclusively.
type Conversation struct {
	capacity int
	messages []Message
}

// New creates a conversation buffer. A capacity of zero or less means unbounded.
func New(capacity int) *Conversation {
	return &Conversation{
		capacity: capacity,
		messages: []Message{},
	}
}

// Append adds a message to the end of the conversation, stamping an ID if the
// caller did not provide one, then evicts the oldest non-pinned messages until
// the buffer is back within capacity. The stored message is returned.
func (c *Conversation) Append(msg Message) Message {
	if msg.ID == "" {
		id, _ := gonanoid.New()
		msg.ID = id
	}

	c.messages = append(c.messages, msg)
	c.evict()

	return msg
}

// evict drops oldest messages while the buffer exceeds capacity. The leading
// system message is pinned and skipped.
func (c *Conversation) evict() {
	if c.capacity <= 0 {
		return
	}

	for len(c.messages) > c.capacity {
		idx := 0
		if c.messages[0].Role == RoleSystem {
			idx = 1
		}
		if idx >= len(c.messages) {
			return
		}
		c.messages = append(c.messages[:idx], c.messages[idx+1:]...)
	}
}

// Snapshot returns a copy of the conversation in timeline order. Mutating the
// returned slice, including tool call payloads, does not affect the buffer.
func (c *Conversation) Snapshot() []Message {
	out := make([]Message, len(c.messages))
	for i, msg := range c.messages {
		out[i] = msg
		if len(msg.ToolCalls) > 0 {
			calls := make([]ToolCall, len(msg.ToolCalls))
			for j, call := range msg.ToolCalls {
				calls[j] = call
				if call.Arguments != nil {
					args := make(map[string]interface{}, len(call.Arguments))
					for k, v := range call.Arguments {
						args[k] = v
					}
					calls[j].Arguments = args
				}
			}
			out[i].ToolCalls = calls
		}
	}
	return out
}

// Len returns the number of buffered messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Clear resets the buffer to empty. Intended for reuse between independent
// runs, never mid-run.
func (c *Conversation) Clear() {
	c.messages = c.messages[:0]
}
