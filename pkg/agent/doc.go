// Package agent orchestrates a single-session plan, act, reflect loop over a
// model gateway and a tool registry.
//
// Invariants:
// - One run executes to completion before the next begins.
// - Tool call requests are resolved and appended in the order received.
// - Tool failures are reported back to the model; they never abort the run.
// - The act phase never exceeds its configured tool round cap.
// - Conversation state lives for exactly one run.
//
// Usage:
//
//	loop, _ := agent.New(agent.Config{Gateway: gw, Registry: reg, Logger: logger})
//	result, _ := loop.Run(ctx, agent.RunOptions{EnableReflection: true, MaxToolRounds: 8})
//	_ = result
package agent
