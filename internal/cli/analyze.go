package cli

import (
	"github.com/spf13/cobra"

	"builder-generator/internal/analyze"
	"builder-generator/internal/plan"
	"builder-generator/internal/run"
)

func AnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [packages...]",
		Short: "Print how each record would be built, as YAML",
		Long: `Print the builder plan of each requested type, or of every struct in the
loaded packages when no type is given. Nothing is written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd, args)
			if err != nil {
				return err
			}

			graph, err := run.Load(cmd.Context(), run.Options{Config: cfg})
			if err != nil {
				return err
			}

			var (
				plans  []*plan.BuilderPlan
				failed map[analyze.TypeID]error
			)

			if len(cfg.Types) > 0 {
				plans, err = run.Plan(graph, cfg.Types)
				if err != nil {
					return err
				}
			} else {
				plans, failed = run.PlanAll(graph, cfg.Output.Suffix)
			}

			out, err := run.NewReport(plans, failed, cfg.GeneratorConfig()).YAML()
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(out)

			return err
		},
	}

	addGenerationFlags(cmd)

	return cmd
}
