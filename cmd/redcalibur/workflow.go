package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"redcalibur/internal/application/port/input"
	"redcalibur/internal/application/port/output"
	"redcalibur/internal/infrastructure/progress"
)

var errWorkflowFailed = errors.New("workflow did not complete")

func newWorkflowCmd(root *rootOptions) *cobra.Command {
	var (
		objective     string
		target        string
		maxIterations int
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "workflow",
		Short: "Run the planner, recon, exploit and reporting agents against a target",
		RunE: func(cmd *cobra.Command, _ []string) error {
			console := progress.NewConsole(cmd.OutOrStdout(), root.noColor)
			var observers []output.WorkflowObserver
			if !asJSON {
				observers = append(observers, console)
			}

			c, err := root.container(cmd, observers...)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := c.Workflow.ExecuteWorkflow(ctx, input.WorkflowRequest{
				Objective:     objective,
				Target:        target,
				MaxIterations: maxIterations,
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			} else {
				console.WorkflowFinished(res)
				fmt.Fprintln(cmd.OutOrStdout(), c.Workflow.Summary())
			}

			if !res.Success {
				return fmt.Errorf("%w: stopped at %s", errWorkflowFailed, res.FailedAgent)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&objective, "objective", "o", "", "assessment objective")
	cmd.Flags().StringVarP(&target, "target", "t", "", "target URL, domain or IP address")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "maximum number of stages (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the workflow result as JSON")
	_ = cmd.MarkFlagRequired("objective")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}
