// Package cli implements the builder-generator commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"builder-generator/internal/config"
	"builder-generator/internal/logger"
)

// flagPaths maps command-line flags to config paths.
var flagPaths = map[string]string{
	"type":           "types",
	"tags":           "build_tags",
	"suffix":         "output.suffix",
	"comments":       "output.comments",
	"errors-package": "errors_package",
	"log-level":      "log.level",
	"log-json":       "log.json",
}

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "builder-generator",
		Short: "Generate builder types for Go structs",
		Long: `builder-generator writes a <Type>Builder next to each requested struct:
chainable setters, an append setter for slice fields tagged builder:"each=Name",
and a Build method that fails on the first required field left unset.

Typical use from the package declaring the struct:

	//go:generate go run builder-generator/cmd/builder-generator gen -t Command`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Path to the config file (default "+config.DefaultFile+" if present)")
	flags.String("log-level", string(logger.InfoLevel), "Log level (debug, info, warn, error, disabled)")
	flags.Bool("log-json", false, "Log as JSON")
	flags.StringSlice("tags", nil, "Build tags used when loading packages")

	root.AddCommand(
		GenCmd(),
		CheckCmd(),
		AnalyzeCmd(),
	)

	return root
}

// addGenerationFlags adds the flags shared by commands that plan builders.
func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("type", "t", nil, "Type to generate a builder for; repeatable (Name or import/path.Name)")
	cmd.Flags().String("suffix", "", "Output file suffix (default _builder.go)")
	cmd.Flags().Bool("comments", true, "Emit doc comments")
	cmd.Flags().String("errors-package", "", "Import path providing NotSet")
}

// setup loads the configuration, with package patterns taken from args, and
// stores a logger in the command context.
func setup(cmd *cobra.Command, args []string) (*config.Config, error) {
	overrides, err := flagOverrides(cmd.Flags())
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		overrides["patterns"] = args
	}

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, err := config.Load(path, overrides)
	if err != nil {
		return nil, err
	}

	logCfg := cfg.LoggerConfig()
	logCfg.Output = cmd.ErrOrStderr()
	cmd.SetContext(logger.ContextWithLogger(cmd.Context(), logger.NewLogger(logCfg)))

	return cfg, nil
}

// flagOverrides collects the flags set on the command line.
func flagOverrides(flags *pflag.FlagSet) (map[string]any, error) {
	overrides := make(map[string]any)

	var err error
	flags.Visit(func(f *pflag.Flag) {
		path, ok := flagPaths[f.Name]
		if !ok || err != nil {
			return
		}

		var value any
		switch f.Value.Type() {
		case "stringSlice":
			value, err = flags.GetStringSlice(f.Name)
		case "bool":
			value, err = flags.GetBool(f.Name)
		default:
			value = f.Value.String()
		}

		overrides[path] = value
	})

	if err != nil {
		return nil, fmt.Errorf("failed to read flags: %w", err)
	}

	return overrides, nil
}
