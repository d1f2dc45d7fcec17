package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/xeipuuv/gojsonschema"
)

// Handler is the function signature for tool execution. Arguments have been
// validated against the tool's parameter schema before the handler runs.
type Handler func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// ToolSpec declares a callable tool: unique name, model-facing description,
// a JSON schema for its arguments and the handler itself. Specs are immutable
// after registration.
type ToolSpec struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
	Handler     Handler                `json:"-"`
}

// Definition is the declarative view of a tool handed to the model gateway.
type Definition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"input_schema"`
}

// Registry holds registered tools keyed by name. It is read-only after
// initialization and safe to share across runs.
type Registry struct {
	mu      sync.RWMutex
	specs   map[string]*ToolSpec
	schemas map[string]*gojsonschema.Schema
	order   []string
	logger  zerolog.Logger
}

// New creates an empty tool registry.
func New(logger zerolog.Logger) *Registry {
	return &Registry{
		specs:   make(map[string]*ToolSpec),
		schemas: make(map[string]*gojsonschema.Schema),
		logger:  logger.With().Str("component", "registry").Logger(),
	}
}

// Register adds a tool. The parameter schema is compiled up front so invalid
// schemas fail here rather than at invocation time.
func (r *Registry) Register(spec ToolSpec) error {
	if spec.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if spec.Handler == nil {
		return fmt.Errorf("tool %s has no handler", spec.Name)
	}

	params := spec.Parameters
	if params == nil {
		params = map[string]interface{}{"type": "object"}
		spec.Parameters = params
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(params))
	if err != nil {
		return fmt.Errorf("invalid parameter schema for tool %s: %w", spec.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.specs[spec.Name]; exists {
		return &DuplicateToolError{Name: spec.Name}
	}

	r.specs[spec.Name] = &spec
	r.schemas[spec.Name] = schema
	r.order = append(r.order, spec.Name)

	r.logger.Info().Str("tool", spec.Name).Msg("Tool registered")

	return nil
}

// Get returns the spec for a registered tool.
func (r *Registry) Get(name string) (*ToolSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, ok := r.specs[name]
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}
	return spec, nil
}

// Names returns registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Definitions returns the model-facing view of every tool, in registration
// order so prompt construction stays deterministic.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		spec := r.specs[name]
		defs = append(defs, Definition{
			Name:        spec.Name,
			Description: spec.Description,
			InputSchema: spec.Parameters,
		})
	}
	return defs
}

// Invoke validates args against the tool's schema, then runs the handler.
// Validation failures return *InvalidArgumentsError without touching the
// handler; handler errors and panics come back as *ToolExecutionError.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]interface{}) (result interface{}, err error) {
	r.mu.RLock()
	spec, ok := r.specs[name]
	schema := r.schemas[name]
	r.mu.RUnlock()

	if !ok {
		r.logger.Warn().Str("tool", name).Msg("Invocation of unknown tool")
		return nil, &UnknownToolError{Name: name}
	}

	if args == nil {
		args = map[string]interface{}{}
	}

	validation, verr := schema.Validate(gojsonschema.NewGoLoader(args))
	if verr != nil {
		return nil, &InvalidArgumentsError{Tool: name, Violations: []string{verr.Error()}}
	}
	if !validation.Valid() {
		violations := make([]string, 0, len(validation.Errors()))
		for _, desc := range validation.Errors() {
			violations = append(violations, desc.String())
		}
		r.logger.Warn().Str("tool", name).Strs("violations", violations).Msg("Argument validation failed")
		return nil, &InvalidArgumentsError{Tool: name, Violations: violations}
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().Str("tool", name).Interface("panic", rec).Msg("Tool handler panicked")
			result = nil
			err = &ToolExecutionError{Tool: name, Err: fmt.Errorf("handler panic: %v", rec)}
		}
	}()

	start := time.Now()
	out, herr := spec.Handler(ctx, args)
	if herr != nil {
		r.logger.Warn().Str("tool", name).Err(herr).Msg("Tool handler failed")
		return nil, &ToolExecutionError{Tool: name, Err: herr}
	}

	r.logger.Debug().
		Str("tool", name).
		Dur("duration", time.Since(start)).
		Msg("Tool invoked")

	return out, nil
}
