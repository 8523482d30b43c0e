package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/specular-eng/specular/cmd/specular/commands"
	"github.com/specular-eng/specular/logger"
)

var rootCmd = &cobra.Command{
	Use:   "specular",
	Short: "Specular - reflection graph generator for Go source",
	Long: `Specular converts Go source files into a documentation reflection graph.

Each input file becomes a module reflection; its declarations become
struct, interface, function, and value reflections with resolved type
references between them.

Available commands:
  generate - Convert source files into a reflection graph
  config   - Manage specular configuration
  version  - Show version information

Examples:
  specular generate ./pkg/api.go            # Render the graph as a tree
  specular generate --json ./pkg/api.go     # Emit the graph as JSON
  specular generate --watch ./pkg/api.go    # Re-run on config changes
  specular config show                      # Show effective configuration`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json")
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Emit machine-readable JSON output")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
