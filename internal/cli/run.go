package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/harun/alya/internal/config"
	"github.com/harun/alya/internal/logger"
	"github.com/harun/alya/pkg/agent"
	"github.com/harun/alya/pkg/coretools"
	"github.com/harun/alya/pkg/gateway"
	"github.com/harun/alya/pkg/registry"
)

var (
	runQuestion  string
	runReflect   bool
	runNoReflect bool
	runMaxRounds int
	runTimeout   time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one plan, act, reflect session",
	Long: `Execute one agent session. Without --question the model proposes its
own challenging question first; with --question the given question is solved
directly.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runQuestion, "question", "q", "", "question to solve (skips the planning completion)")
	runCmd.Flags().BoolVar(&runReflect, "reflect", false, "force the reflection phase on")
	runCmd.Flags().BoolVar(&runNoReflect, "no-reflect", false, "force the reflection phase off")
	runCmd.Flags().IntVar(&runMaxRounds, "max-tool-rounds", 0, "cap on tool resolution rounds (0 uses the configured default)")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 5*time.Minute, "overall run timeout")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, log, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	reg := registry.New(log)
	if err := coretools.RegisterCoreTools(reg); err != nil {
		return fmt.Errorf("failed to register core tools: %w", err)
	}

	if err := config.NewValidator().ValidateAPIKey(cfg.APIKey, cfg.Provider); err != nil {
		return err
	}

	gw, err := gateway.New(cfg.Provider, cfg.APIKey, log)
	if err != nil {
		return err
	}

	plan, solve, reflect := agent.DefaultConfig(cfg.Models.Default, cfg.Models.Fast)
	plan.Temperature = cfg.Agent.PlanTemperature
	solve.Temperature = cfg.Agent.SolveTemperature
	plan.MaxTokens = cfg.Agent.MaxTokens
	solve.MaxTokens = cfg.Agent.MaxTokens
	reflect.MaxTokens = cfg.Agent.MaxTokens

	loop, err := agent.New(agent.Config{
		Gateway:        gw,
		Registry:       reg,
		Logger:         log,
		SystemPrompt:   cfg.Agent.SystemPrompt,
		PlanOptions:    plan,
		SolveOptions:   solve,
		ReflectOptions: reflect,
		MemoryCapacity: cfg.Agent.MemoryCapacity,
	})
	if err != nil {
		return err
	}

	reflection := cfg.Agent.Reflection
	if runReflect {
		reflection = true
	}
	if runNoReflect {
		reflection = false
	}

	maxRounds := runMaxRounds
	if maxRounds <= 0 {
		maxRounds = cfg.Agent.MaxToolRounds
	}

	// The only supported abort path is this caller-level timeout.
	ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
	defer cancel()

	result, err := loop.Run(ctx, agent.RunOptions{
		Question:         runQuestion,
		EnableReflection: reflection,
		MaxToolRounds:    maxRounds,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Question: %s\n", result.Question)
	fmt.Printf("Answer:   %s\n", result.Answer)
	if result.Reflected {
		fmt.Println("(answer verified by reflection)")
	}
	if result.Usage != nil {
		fmt.Printf("Tokens:   %d in / %d out, %d tool call(s)\n",
			result.Usage.InputTokens, result.Usage.OutputTokens, len(result.ToolCalls))
	}

	return nil
}

// setup loads configuration and builds the logger shared by all commands.
func setup() (*config.Config, zerolog.Logger, func(), error) {
	cfg, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}

	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}

	lg, err := logger.New(logger.Config{
		Level:     level,
		File:      cfg.Logging.File,
		Console:   cfg.Logging.Console,
		Pretty:    cfg.Logging.Pretty,
		Redaction: cfg.Logging.Redaction,
	})
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}

	return cfg, *lg.Zerolog(), func() { _ = lg.Close() }, nil
}
