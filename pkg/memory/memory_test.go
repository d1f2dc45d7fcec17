package memory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend(t *testing.T) {
	t.Run("should keep timeline order", func(t *testing.T) {
		conv := New(0)
		conv.Append(Message{Role: RoleUser, Content: "first"})
		conv.Append(Message{Role: RoleAssistant, Content: "second"})
		conv.Append(Message{Role: RoleUser, Content: "third"})

		msgs := conv.Snapshot()
		require.Len(t, msgs, 3)
		assert.Equal(t, "first", msgs[0].Content)
		assert.Equal(t, "second", msgs[1].Content)
		assert.Equal(t, "third", msgs[2].Content)
	})

	t.Run("should stamp an ID when missing", func(t *testing.T) {
		conv := New(0)
		stored := conv.Append(Message{Role: RoleUser, Content: "hello"})
		assert.NotEmpty(t, stored.ID)
	})

	t.Run("should keep a caller-provided ID", func(t *testing.T) {
		conv := New(0)
		stored := conv.Append(Message{ID: "msg-1", Role: RoleUser, Content: "hello"})
		assert.Equal(t, "msg-1", stored.ID)
	})
}

func TestEviction(t *testing.T) {
	t.Run("should never exceed capacity after any append", func(t *testing.T) {
		conv := New(3)
		for i := 0; i < 10; i++ {
			conv.Append(Message{Role: RoleUser, Content: fmt.Sprintf("msg %d", i)})
			assert.LessOrEqual(t, conv.Len(), 3)
		}
	})

	t.Run("should evict oldest non-pinned first", func(t *testing.T) {
		conv := New(3)
		conv.Append(Message{Role: RoleUser, Content: "a"})
		conv.Append(Message{Role: RoleUser, Content: "b"})
		conv.Append(Message{Role: RoleUser, Content: "c"})
		conv.Append(Message{Role: RoleUser, Content: "d"})

		msgs := conv.Snapshot()
		require.Len(t, msgs, 3)
		assert.Equal(t, "b", msgs[0].Content)
		assert.Equal(t, "d", msgs[2].Content)
	})

	t.Run("should never evict the leading system message", func(t *testing.T) {
		conv := New(3)
		conv.Append(Message{Role: RoleSystem, Content: "system prompt"})
		for i := 0; i < 10; i++ {
			conv.Append(Message{Role: RoleUser, Content: fmt.Sprintf("msg %d", i)})
		}

		msgs := conv.Snapshot()
		require.Len(t, msgs, 3)
		assert.Equal(t, RoleSystem, msgs[0].Role)
		assert.Equal(t, "system prompt", msgs[0].Content)
		assert.Equal(t, "msg 9", msgs[2].Content)
	})

	t.Run("should leave unbounded conversations alone", func(t *testing.T) {
		conv := New(0)
		for i := 0; i < 100; i++ {
			conv.Append(Message{Role: RoleUser, Content: "x"})
		}
		assert.Equal(t, 100, conv.Len())
	})
}

func TestSnapshot(t *testing.T) {
	t.Run("should not alias internal storage", func(t *testing.T) {
		conv := New(0)
		conv.Append(Message{Role: RoleUser, Content: "original"})

		msgs := conv.Snapshot()
		msgs[0].Content = "mutated"

		assert.Equal(t, "original", conv.Snapshot()[0].Content)
	})

	t.Run("should copy tool call arguments", func(t *testing.T) {
		conv := New(0)
		conv.Append(Message{
			Role: RoleAssistant,
			ToolCalls: []ToolCall{
				{ID: "call-1", Name: "add", Arguments: map[string]interface{}{"a": 1.0}},
			},
		})

		msgs := conv.Snapshot()
		msgs[0].ToolCalls[0].Arguments["a"] = 99.0

		fresh := conv.Snapshot()
		assert.Equal(t, 1.0, fresh[0].ToolCalls[0].Arguments["a"])
	})
}

func TestClear(t *testing.T) {
	t.Run("should reset to empty", func(t *testing.T) {
		conv := New(0)
		conv.Append(Message{Role: RoleSystem, Content: "system"})
		conv.Append(Message{Role: RoleUser, Content: "hello"})

		conv.Clear()

		assert.Equal(t, 0, conv.Len())
		assert.Empty(t, conv.Snapshot())
	})
}
