package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/specular-eng/specular/config"
	"github.com/specular-eng/specular/display"
	"github.com/specular-eng/specular/errors"
)

// ConfigCmd manages specular configuration.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage specular configuration",
	Long: `Display and manage specular configuration.

Configuration sources (in order of precedence):
1. Environment variables (SPECULAR_* prefix)
2. Project config (specular.toml, discovered walking up from the
   working directory)
3. Default values

Examples:
  specular config show                 # Show effective configuration
  specular config show --format json   # Show configuration as JSON
  specular config init                 # Write a default specular.toml
  specular config where                # Show which config file is in use`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Long:  "Display the effective configuration after merging all sources",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long:  "Write a specular.toml with default values to the working directory",
	RunE:  runConfigInit,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show which configuration file is in use",
	RunE:  runConfigWhere,
}

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configWhereCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	switch configFormat {
	case "json":
		return display.OutputJSON(cfg)
	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Printf("# specular configuration\n%s", string(data))
		return nil
	default:
		return errors.Newf("unsupported format: %s (supported: toml, json)", configFormat)
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ConfigFileName
	if _, err := os.Stat(path); err == nil {
		return errors.Newf("%s already exists", path)
	}

	if err := config.Save(config.Default(), path); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	fmt.Printf("Wrote %s\n", abs)
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	path := config.FindProjectConfig()
	if path == "" {
		fmt.Printf("No %s found; defaults are in effect\n", config.ConfigFileName)
		return nil
	}
	fmt.Println(path)
	return nil
}
