package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"redcalibur/internal/application/port/input"
	"redcalibur/internal/domain/entity"
)

func newAgentCmd(root *rootOptions) *cobra.Command {
	var (
		objective string
		target    string
		extra     map[string]string
	)

	cmd := &cobra.Command{
		Use:       "agent <planner|recon|exploit|reporting>",
		Short:     "Run a single agent once",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"planner", "recon", "exploit", "reporting"},
		RunE: func(cmd *cobra.Command, args []string) error {
			role, ok := entity.ParseAgentRole(strings.ToLower(args[0]))
			if !ok {
				return fmt.Errorf("%w: %s", entity.ErrAgentNotFound, args[0])
			}

			c, err := root.container(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			payload := map[string]any{
				entity.KeyObjective: objective,
				entity.KeyTarget:    target,
			}
			for k, v := range extra {
				payload[k] = v
			}
			// list-valued keys arrive comma separated
			if vulns, ok := extra[entity.KeyVulnerabilities]; ok {
				payload[entity.KeyVulnerabilities] = splitList(vulns)
			}
			if findings, ok := extra[entity.KeyFindings]; ok {
				payload[entity.KeyFindings] = splitList(findings)
			}

			resp, execErr := c.AgentExecutor.Execute(cmd.Context(), input.AgentRequest{
				Role:    role,
				Payload: payload,
			})
			if resp != nil {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(resp); err != nil {
					return err
				}
			}
			return execErr
		},
	}

	cmd.Flags().StringVarP(&objective, "objective", "o", "", "assessment objective")
	cmd.Flags().StringVarP(&target, "target", "t", "not specified", "target URL, domain or IP address")
	cmd.Flags().StringToStringVar(&extra, "set", nil, "extra context values, e.g. --set vulnerabilities=sqli,xss")
	return cmd
}

func newAgentsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List the agents and their tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := root.container(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ROLE\tNAME\tAI\tTOOLS")
			for _, a := range c.Workflow.Agents() {
				tools := make([]string, len(a.Tools))
				for i, t := range a.Tools {
					tools[i] = t.String()
				}
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", a.Role, a.Name, a.AIEnabled, strings.Join(tools, ", "))
			}
			return w.Flush()
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
