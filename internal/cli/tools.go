package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harun/alya/pkg/coretools"
	"github.com/harun/alya/pkg/registry"
)

var toolsVerbose bool

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the registered tools",
	RunE:  runTools,
}

func init() {
	rootCmd.AddCommand(toolsCmd)

	toolsCmd.Flags().BoolVarP(&toolsVerbose, "verbose", "v", false, "include parameter schemas")
}

func runTools(cmd *cobra.Command, args []string) error {
	_, log, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	reg := registry.New(log)
	if err := coretools.RegisterCoreTools(reg); err != nil {
		return fmt.Errorf("failed to register core tools: %w", err)
	}

	for _, def := range reg.Definitions() {
		fmt.Printf("%s\t%s\n", def.Name, def.Description)
		if toolsVerbose {
			schema, err := json.MarshalIndent(def.InputSchema, "  ", "  ")
			if err == nil {
				fmt.Printf("  %s\n", schema)
			}
		}
	}

	return nil
}
