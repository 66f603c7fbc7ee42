package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// migrateCmd applies the schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create missing tables, columns, indexes and foreign keys for every model.

Examples:
  yatube-server migrate
  yatube-server migrate --db-driver postgres --db postgres://localhost/yatube`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		logger, _, err := setup(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		fmt.Fprintln(cmd.OutOrStdout(), "Database migrations completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
