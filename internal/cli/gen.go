package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"builder-generator/internal/gen"
	"builder-generator/internal/logger"
	"builder-generator/internal/run"
)

// ErrStale is returned by check when generated files are out of date.
var ErrStale = errors.New("generated builders are out of date")

func GenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen [packages...]",
		Short: "Write builders for the requested types",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd, args)
			if err != nil {
				return err
			}

			res, err := run.Run(cmd.Context(), run.Options{Config: cfg})
			if err != nil {
				return err
			}

			if err := gen.WriteFiles(res.Files); err != nil {
				return err
			}

			log := logger.FromContext(cmd.Context())
			for _, f := range res.Files {
				log.Info("wrote builder", "record", f.Record, "file", f.Path())
			}

			return nil
		},
	}

	addGenerationFlags(cmd)

	return cmd
}

func CheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [packages...]",
		Short: "Fail when a generated builder differs from fresh output",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd, args)
			if err != nil {
				return err
			}

			res, err := run.Run(cmd.Context(), run.Options{Config: cfg})
			if err != nil {
				return err
			}

			stale, err := gen.StaleFiles(res.Files)
			if err != nil {
				return err
			}

			if len(stale) > 0 {
				return fmt.Errorf("%w:\n  %s", ErrStale, strings.Join(stale, "\n  "))
			}

			logger.FromContext(cmd.Context()).Info("builders up to date", "files", len(res.Files))

			return nil
		},
	}

	addGenerationFlags(cmd)

	return cmd
}
