// Package memory holds the in-run conversation buffer exchanged with the model.
//
// Invariants:
// - Messages are append-only and never reordered.
// - A leading system message is pinned and survives eviction.
// - Eviction keeps the buffer within its configured capacity after every append.
// - Snapshots never alias internal storage.
//
// Usage:
//
//	conv := memory.New(64)
//	conv.Append(memory.Message{Role: memory.RoleSystem, Content: "You are a solver."})
//	conv.Append(memory.Message{Role: memory.RoleUser, Content: "What is 3+4?"})
//	msgs := conv.Snapshot()
//	_ = msgs
package memory
