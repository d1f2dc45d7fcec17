package config

// Config represents the main Alya configuration
type Config struct {
	// Provider selects the model backend: openai or anthropic
	Provider string `json:"provider" mapstructure:"provider"`

	// APIKey authenticates against the provider
	APIKey string `json:"api_key" mapstructure:"api_key"`

	// Models
	Models ModelsConfig `json:"models" mapstructure:"models"`

	// Agent behavior
	Agent AgentConfig `json:"agent" mapstructure:"agent"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ModelsConfig holds the model tiers: default for solving, fast for planning
// and reflection, tiny reserved for cheap auxiliary calls.
type ModelsConfig struct {
	Default string `json:"default" mapstructure:"default"`
	Fast    string `json:"fast" mapstructure:"fast"`
	Tiny    string `json:"tiny" mapstructure:"tiny"`
}

// AgentConfig configures the agent loop
type AgentConfig struct {
	SystemPrompt     string  `json:"system_prompt" mapstructure:"system_prompt"`
	MaxToolRounds    int     `json:"max_tool_rounds" mapstructure:"max_tool_rounds"`
	Reflection       bool    `json:"reflection" mapstructure:"reflection"`
	MemoryCapacity   int     `json:"memory_capacity" mapstructure:"memory_capacity"`
	PlanTemperature  float64 `json:"plan_temperature" mapstructure:"plan_temperature"`
	SolveTemperature float64 `json:"solve_temperature" mapstructure:"solve_temperature"`
	MaxTokens        int     `json:"max_tokens" mapstructure:"max_tokens"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level     string `json:"level" mapstructure:"level"`
	File      string `json:"file" mapstructure:"file"`
	Console   bool   `json:"console" mapstructure:"console"`
	Pretty    bool   `json:"pretty" mapstructure:"pretty"`
	Redaction bool   `json:"redaction" mapstructure:"redaction"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: "openai",
		Models: ModelsConfig{
			Default: "gpt-4.1",
			Fast:    "gpt-4.1-mini",
			Tiny:    "gpt-4.1-nano",
		},
		Agent: AgentConfig{
			MaxToolRounds:    8,
			Reflection:       true,
			MemoryCapacity:   64,
			PlanTemperature:  0.7,
			SolveTemperature: 0.2,
			MaxTokens:        4096,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Console:   true,
			Pretty:    true,
			Redaction: true,
		},
	}
}
