package config

import (
	"fmt"
	"strings"
)

// Validator validates configuration values
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks the whole configuration
func (v *Validator) Validate(cfg *Config) error {
	if err := v.ValidateProvider(cfg.Provider); err != nil {
		return err
	}
	if err := v.ValidateModel(cfg.Models.Default); err != nil {
		return err
	}
	if err := v.ValidateModel(cfg.Models.Fast); err != nil {
		return err
	}
	if cfg.Agent.MaxToolRounds < 0 {
		return fmt.Errorf("max tool rounds cannot be negative")
	}
	if cfg.Agent.MemoryCapacity < 0 {
		return fmt.Errorf("memory capacity cannot be negative")
	}
	if err := v.ValidateTemperature(cfg.Agent.PlanTemperature); err != nil {
		return err
	}
	if err := v.ValidateTemperature(cfg.Agent.SolveTemperature); err != nil {
		return err
	}
	return nil
}

// ValidateProvider checks the provider name
func (v *Validator) ValidateProvider(provider string) error {
	switch provider {
	case "openai", "anthropic":
		return nil
	default:
		return fmt.Errorf("unsupported provider: %s (expected openai or anthropic)", provider)
	}
}

// ValidateAPIKey validates an API key format
func (v *Validator) ValidateAPIKey(key string, provider string) error {
	if key == "" {
		return fmt.Errorf("%s API key cannot be empty", provider)
	}

	switch provider {
	case "anthropic":
		if !strings.HasPrefix(key, "sk-ant-") {
			return fmt.Errorf("invalid Anthropic API key format (should start with sk-ant-)")
		}
	case "openai":
		if !strings.HasPrefix(key, "sk-") {
			return fmt.Errorf("invalid OpenAI API key format (should start with sk-)")
		}
	}

	return nil
}

// ValidateModel validates a model name
func (v *Validator) ValidateModel(model string) error {
	if model == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	return nil
}

// ValidateTemperature validates a sampling temperature
func (v *Validator) ValidateTemperature(temp float64) error {
	if temp < 0 || temp > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	return nil
}
