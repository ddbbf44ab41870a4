package commands

import (
	"fmt"

	"fieldservice/internal/adapter/persistence/gormstore"
	"fieldservice/internal/config"
	"fieldservice/internal/infrastructure/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the postgres schema",
	Long: `Connect to the database described by the DB_* environment variables and
auto-migrate the jobs, visits, estimates, invoices and payments tables.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}
		db, err := database.ConnectPostgres(cfg.Database, database.Options{})
		if err != nil {
			return err
		}
		if err := gormstore.Migrate(db); err != nil {
			return fmt.Errorf("error migrating schema: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema migrated on %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
		return nil
	},
}

// GetMigrateCmd returns the migrate command
func GetMigrateCmd() *cobra.Command {
	return migrateCmd
}
