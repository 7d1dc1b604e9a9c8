package nutrivision

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "nutrivision",
	Short: "nutrivision logs meals from food photos",
	Long: "nutrivision is a local-first food log: photos are analysed into calorie and macro estimates,\n" +
		"edited, and saved to a personal history with daily progress, hydration, streaks and coaching.",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (default $NUTRIVISION_DB_PATH or user config dir)")
}
