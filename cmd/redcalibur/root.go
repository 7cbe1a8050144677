package main

import (
	"github.com/spf13/cobra"

	"redcalibur/internal/application/port/output"
	"redcalibur/internal/di"
)

type rootOptions struct {
	configPath string
	noColor    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "redcalibur",
		Short:         "Multi-agent penetration testing assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default is ./config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newWorkflowCmd(opts),
		newAgentCmd(opts),
		newAgentsCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

func (o *rootOptions) container(cmd *cobra.Command, observers ...output.WorkflowObserver) (*di.Container, error) {
	return di.NewContainer(cmd.Context(), di.Options{
		ConfigPath: o.configPath,
		Observers:  observers,
	})
}
