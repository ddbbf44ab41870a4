package commands

import (
	"fmt"
	"strings"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/workflow"

	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph [entity]",
	Short: "Print the status graph of one or every entity type",
	Long: `Print every status of an entity type with the statuses reachable from it
in one step. Terminal statuses are marked. Without an argument all four graphs
are printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		types := entities.EntityTypes
		if len(args) == 1 {
			et, err := entities.ParseEntityType(args[0])
			if err != nil {
				return err
			}
			types = []entities.EntityType{et}
		}

		out := cmd.OutOrStdout()
		for i, et := range types {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, renderGraph(et))
		}
		return nil
	},
}

// GetGraphCmd returns the graph command
func GetGraphCmd() *cobra.Command {
	return graphCmd
}

func renderGraph(et entities.EntityType) string {
	var b strings.Builder
	initial, _ := workflow.InitialStatus(et)
	fmt.Fprintf(&b, "%s (initial: %s)", et, initial)
	for _, s := range workflow.Statuses(et) {
		targets := workflow.AllowedTargets(et, s)
		if len(targets) == 0 {
			fmt.Fprintf(&b, "\n  %-12s (terminal)", s)
			continue
		}
		names := make([]string, len(targets))
		for i, t := range targets {
			names[i] = string(t)
		}
		fmt.Fprintf(&b, "\n  %-12s -> %s", s, strings.Join(names, ", "))
	}
	return b.String()
}
