// Package coretools registers the baseline math tools exposed to the agent loop.
package coretools

import (
	"context"
	"errors"
	"fmt"

	"github.com/harun/alya/pkg/registry"
)

// RegisterCoreTools registers the builtin tools.
func RegisterCoreTools(reg *registry.Registry) error {
	if reg == nil {
		return errors.New("tool registry is required")
	}

	tools := []registry.ToolSpec{
		evaluateMathTool(),
		addTool(),
	}

	for _, tool := range tools {
		if err := reg.Register(tool); err != nil {
			return fmt.Errorf("failed to register tool %s: %w", tool.Name, err)
		}
	}
	return nil
}

func evaluateMathTool() registry.ToolSpec {
	return registry.ToolSpec{
		Name:        "evaluate_math",
		Description: "Safely evaluate arithmetic, sqrt, or factorial.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"expression": map[string]interface{}{
					"type":        "string",
					"description": "Expression or number to evaluate",
				},
				"mode": map[string]interface{}{
					"type": "string",
					"enum": []string{"eval", "sqrt", "factorial"},
				},
			},
			"required": []string{"expression", "mode"},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			expr, _ := args["expression"].(string)
			mode, _ := args["mode"].(string)
			return EvaluateMath(expr, mode)
		},
	}
}

func addTool() registry.ToolSpec {
	return registry.ToolSpec{
		Name:        "add",
		Description: "Add two numbers.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"a": map[string]interface{}{"type": "number"},
				"b": map[string]interface{}{"type": "number"},
			},
			"required": []string{"a", "b"},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			a, aok := args["a"].(float64)
			b, bok := args["b"].(float64)
			if !aok || !bok {
				return nil, errors.New("a and b must be numbers")
			}
			return formatNumber(a + b), nil
		},
	}
}
