package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the relational schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(loadConfig())
		if err != nil {
			return err
		}
		defer db.CloseDB()

		fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
		return nil
	},
}
