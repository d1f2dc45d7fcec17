package agent

import "fmt"

// PlanningError indicates the planning phase could not produce a question,
// for example because the model requested tool calls there.
type PlanningError struct {
	Reason string
}

func (e *PlanningError) Error() string {
	return fmt.Sprintf("planning failed: %s", e.Reason)
}

// ToolLoopExceededError indicates the act phase hit its tool round cap
// without the model producing a final answer.
type ToolLoopExceededError struct {
	MaxRounds int
}

func (e *ToolLoopExceededError) Error() string {
	return fmt.Sprintf("maximum tool execution rounds exceeded (%d)", e.MaxRounds)
}
