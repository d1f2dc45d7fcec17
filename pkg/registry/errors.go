package registry

import (
	"fmt"
	"strings"
)

// Error codes reported back to the model when an invocation fails.
const (
	CodeUnknownTool      = "UNKNOWN_TOOL"
	CodeInvalidArguments = "INVALID_ARGUMENTS"
	CodeExecutionFailed  = "EXECUTION_FAILED"
)

// DuplicateToolError indicates a registration under an already-taken name.
type DuplicateToolError struct {
	Name string
}

func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("tool already registered: %s", e.Name)
}

// UnknownToolError indicates a lookup or invocation of an unregistered tool.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// InvalidArgumentsError indicates arguments that violate the tool's parameter
// schema. The handler is never invoked in this case.
type InvalidArgumentsError struct {
	Tool       string
	Violations []string
}

func (e *InvalidArgumentsError) Error() string {
	return fmt.Sprintf("invalid arguments for tool %s: %s", e.Tool, strings.Join(e.Violations, "; "))
}

// ToolExecutionError wraps a failure raised by the tool handler itself,
// including recovered panics.
type ToolExecutionError struct {
	Tool string
	Err  error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("tool %s failed: %v", e.Tool, e.Err)
}

func (e *ToolExecutionError) Unwrap() error {
	return e.Err
}

// ErrorCode maps an invocation error to its wire code. Unrecognized errors
// map to EXECUTION_FAILED.
func ErrorCode(err error) string {
	switch err.(type) {
	case *UnknownToolError:
		return CodeUnknownTool
	case *InvalidArgumentsError:
		return CodeInvalidArguments
	default:
		return CodeExecutionFailed
	}
}
