// Package registry registers and invokes schema-validated tools for the agent loop.
//
// Invariants:
// - Tool names are unique.
// - Arguments are validated against the declared JSON schema before the handler runs.
// - Handler errors and panics never propagate unhandled to the caller.
// - Definitions are returned in registration order.
//
// Usage:
//
//	reg := registry.New(logger)
//	_ = reg.Register(registry.ToolSpec{
//		Name:        "add",
//		Description: "Add two numbers",
//		Parameters: map[string]interface{}{
//			"type": "object",
//			"properties": map[string]interface{}{
//				"a": map[string]interface{}{"type": "number"},
//				"b": map[string]interface{}{"type": "number"},
//			},
//			"required": []string{"a", "b"},
//		},
//		Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
//			return args["a"].(float64) + args["b"].(float64), nil
//		},
//	})
package registry
