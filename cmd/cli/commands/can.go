package commands

import (
	"encoding/json"
	"fmt"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/workflow"

	"github.com/spf13/cobra"
)

func init() {
	canCmd.Flags().Bool("json", false, "print the capability table as JSON")
}

var canCmd = &cobra.Command{
	Use:   "can <role>",
	Short: "Print the capabilities granted to a role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := entities.ParseRole(args[0])
		if err != nil {
			return err
		}
		caps := workflow.Capabilities(role)
		out := cmd.OutOrStdout()

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			table := make(map[string][]string, len(caps))
			for et, actions := range caps {
				names := make([]string, len(actions))
				for i, a := range actions {
					names[i] = string(a)
				}
				table[string(et)] = names
			}
			prettyJSON, err := json.MarshalIndent(map[string]any{"role": role, "capabilities": table}, "", "  ")
			if err != nil {
				return fmt.Errorf("error formatting response: %w", err)
			}
			fmt.Fprintln(out, string(prettyJSON))
			return nil
		}

		fmt.Fprintf(out, "%s\n", role)
		for _, et := range entities.EntityTypes {
			actions := caps[et]
			if len(actions) == 0 {
				fmt.Fprintf(out, "  %-9s -\n", et)
				continue
			}
			fmt.Fprintf(out, "  %-9s", et)
			for _, a := range actions {
				fmt.Fprintf(out, " %s", a)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

// GetCanCmd returns the capability command
func GetCanCmd() *cobra.Command {
	return canCmd
}
