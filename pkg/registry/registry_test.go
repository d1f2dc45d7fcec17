package registry

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberSchema(required ...string) map[string]interface{} {
	props := map[string]interface{}{}
	for _, name := range required {
		props[name] = map[string]interface{}{"type": "number"}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

func echoSpec(name string) ToolSpec {
	return ToolSpec{
		Name:        name,
		Description: "Echo input",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"text": map[string]interface{}{"type": "string"},
			},
			"required": []string{"text"},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			return args["text"], nil
		},
	}
}

func TestRegister(t *testing.T) {
	t.Run("should register a valid tool", func(t *testing.T) {
		reg := New(zerolog.Nop())
		require.NoError(t, reg.Register(echoSpec("echo")))

		spec, err := reg.Get("echo")
		require.NoError(t, err)
		assert.Equal(t, "echo", spec.Name)
	})

	t.Run("should reject duplicate names", func(t *testing.T) {
		reg := New(zerolog.Nop())
		require.NoError(t, reg.Register(echoSpec("echo")))

		err := reg.Register(echoSpec("echo"))
		var dup *DuplicateToolError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "echo", dup.Name)
	})

	t.Run("should reject empty names", func(t *testing.T) {
		reg := New(zerolog.Nop())
		err := reg.Register(ToolSpec{Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) { return nil, nil }})
		assert.Error(t, err)
	})

	t.Run("should reject missing handlers", func(t *testing.T) {
		reg := New(zerolog.Nop())
		err := reg.Register(ToolSpec{Name: "no_handler"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "handler")
	})

	t.Run("should reject invalid schemas", func(t *testing.T) {
		reg := New(zerolog.Nop())
		err := reg.Register(ToolSpec{
			Name:       "bad_schema",
			Parameters: map[string]interface{}{"type": 42},
			Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				return nil, nil
			},
		})
		assert.Error(t, err)
	})
}

func TestGet(t *testing.T) {
	t.Run("should fail for unknown tools", func(t *testing.T) {
		reg := New(zerolog.Nop())

		_, err := reg.Get("missing")
		var unknown *UnknownToolError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "missing", unknown.Name)
	})
}

func TestDefinitions(t *testing.T) {
	t.Run("should preserve registration order", func(t *testing.T) {
		reg := New(zerolog.Nop())
		for _, name := range []string{"zeta", "alpha", "mid"} {
			require.NoError(t, reg.Register(echoSpec(name)))
		}

		defs := reg.Definitions()
		require.Len(t, defs, 3)
		assert.Equal(t, "zeta", defs[0].Name)
		assert.Equal(t, "alpha", defs[1].Name)
		assert.Equal(t, "mid", defs[2].Name)
	})
}

func TestInvoke(t *testing.T) {
	t.Run("should run the handler with valid arguments", func(t *testing.T) {
		reg := New(zerolog.Nop())
		require.NoError(t, reg.Register(ToolSpec{
			Name:       "add",
			Parameters: numberSchema("a", "b"),
			Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				return args["a"].(float64) + args["b"].(float64), nil
			},
		}))

		out, err := reg.Invoke(context.Background(), "add", map[string]interface{}{"a": 3.0, "b": 4.0})
		require.NoError(t, err)
		assert.Equal(t, 7.0, out)
	})

	t.Run("should fail for unknown tools", func(t *testing.T) {
		reg := New(zerolog.Nop())
		_, err := reg.Invoke(context.Background(), "missing", nil)
		var unknown *UnknownToolError
		assert.ErrorAs(t, err, &unknown)
	})

	t.Run("should reject invalid arguments without running the handler", func(t *testing.T) {
		reg := New(zerolog.Nop())
		invoked := 0
		require.NoError(t, reg.Register(ToolSpec{
			Name:       "add",
			Parameters: numberSchema("a", "b"),
			Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				invoked++
				return nil, nil
			},
		}))

		_, err := reg.Invoke(context.Background(), "add", map[string]interface{}{"a": "three"})
		var invalid *InvalidArgumentsError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "add", invalid.Tool)
		assert.NotEmpty(t, invalid.Violations)
		assert.Equal(t, 0, invoked, "handler must not run on invalid arguments")
	})

	t.Run("should wrap handler errors", func(t *testing.T) {
		reg := New(zerolog.Nop())
		cause := errors.New("boom")
		require.NoError(t, reg.Register(ToolSpec{
			Name: "failing",
			Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				return nil, cause
			},
		}))

		_, err := reg.Invoke(context.Background(), "failing", nil)
		var execErr *ToolExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, "failing", execErr.Tool)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("should recover handler panics", func(t *testing.T) {
		reg := New(zerolog.Nop())
		require.NoError(t, reg.Register(ToolSpec{
			Name: "panicky",
			Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				panic("unexpected")
			},
		}))

		_, err := reg.Invoke(context.Background(), "panicky", nil)
		var execErr *ToolExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.Contains(t, execErr.Error(), "panic")
	})
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"unknown tool", &UnknownToolError{Name: "x"}, CodeUnknownTool},
		{"invalid arguments", &InvalidArgumentsError{Tool: "x"}, CodeInvalidArguments},
		{"execution failure", &ToolExecutionError{Tool: "x", Err: fmt.Errorf("boom")}, CodeExecutionFailed},
		{"generic error", fmt.Errorf("boom"), CodeExecutionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, ErrorCode(tt.err))
		})
	}
}
