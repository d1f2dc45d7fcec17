// Package gateway adapts model provider APIs to the single contract the agent
// loop relies on: send ordered messages plus tool definitions, get back either
// a text completion or an ordered set of tool call requests.
//
// Invariants:
// - A response is exactly one of text or tool calls (tagged variant).
// - Transport and service failures surface as *GatewayError with a transient flag.
// - No retries happen here or in the loop; retry policy belongs to the caller.
package gateway
