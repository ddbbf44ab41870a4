package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(GetGraphCmd())
	RootCmd.AddCommand(GetCanCmd())
	RootCmd.AddCommand(GetMigrateCmd())
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "fieldservice",
	Short: "Field service CLI - inspect the workflow rules and manage the database",
	Long: `fieldservice prints the status graphs and role capabilities enforced by the
API and runs schema migrations for the postgres backend.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// A missing .env is fine; the environment may already be set.
		_ = godotenv.Load()
	},
}
