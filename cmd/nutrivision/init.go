package nutrivision

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the local nutrivision database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(env *runtimeEnv, _ *sql.DB, path string) error {
			fmt.Fprintf(env.out, "Initialized nutrivision database at %s\n", path)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
