package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/specular-eng/specular/config"
	"github.com/specular-eng/specular/converter"
	"github.com/specular-eng/specular/converter/native"
	"github.com/specular-eng/specular/display"
	"github.com/specular-eng/specular/errors"
	"github.com/specular-eng/specular/frontend"
	"github.com/specular-eng/specular/logger"
	"github.com/specular-eng/specular/version"
)

// GenerateCmd converts source files into a reflection graph.
var GenerateCmd = &cobra.Command{
	Use:   "generate <file>...",
	Short: "Convert Go source files into a reflection graph",
	Long: `Convert the given Go source files into a documentation reflection graph.

The graph is rendered as a tree by default; pass --json for the full
machine-readable form, or --output to write the JSON to a file.

With --watch, specular re-runs the conversion whenever the project
configuration file changes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

var (
	generateOutput  string
	generateWatch   bool
	generateProject string
)

func init() {
	GenerateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Write the JSON result to a file instead of stdout")
	GenerateCmd.Flags().BoolVar(&generateWatch, "watch", false, "Re-run conversion when the configuration file changes")
	GenerateCmd.Flags().StringVar(&generateProject, "project", "", "Override the configured project name")
	GenerateCmd.Flags().Bool("json", false, "Emit the reflection graph as JSON")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	if generateProject != "" {
		cfg.ProjectName = generateProject
	}

	if err := runConversion(cmd, cfg, args); err != nil {
		return err
	}
	if !generateWatch {
		return nil
	}

	configPath := config.FindProjectConfig()
	if configPath == "" {
		return errors.Newf("no %s found to watch", config.ConfigFileName)
	}

	watcher, err := config.NewWatcher(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to create config watcher")
	}
	defer watcher.Close()

	watcher.OnReload(func(reloaded *config.Config) error {
		if generateProject != "" {
			reloaded.ProjectName = generateProject
		}
		if err := runConversion(cmd, reloaded, args); err != nil {
			logger.Errorw("Conversion after config reload failed", "error", err)
			return err
		}
		return nil
	})
	watcher.Start()

	logger.Infow("Watching configuration for changes", "path", configPath)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}

// runConversion performs one full conversion and renders the result.
func runConversion(cmd *cobra.Command, cfg *config.Config, files []string) error {
	reg := converter.NewRegistry(version.Version)
	conv := converter.New(frontend.NewGoFrontend(), reg, cfg)
	if err := native.Install(conv); err != nil {
		return errors.Wrap(err, "failed to install native strategies")
	}

	result, err := conv.Convert(files)
	if err != nil {
		return err
	}

	if generateOutput != "" {
		data, err := display.MarshalJSON(result)
		if err != nil {
			return errors.Wrap(err, "failed to marshal result")
		}
		if err := os.WriteFile(generateOutput, data, 0o644); err != nil {
			return errors.Wrapf(err, "failed to write %s", generateOutput)
		}
		logger.Infow("Result written", "path", generateOutput, "reflections", result.Project.Count())
		return nil
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(result)
	}

	display.RenderDiagnostics(result.Diagnostics)
	if err := display.RenderProject(result.Project); err != nil {
		return errors.Wrap(err, "failed to render graph")
	}
	display.RenderSummary(result.Project, result.Diagnostics)
	return nil
}
