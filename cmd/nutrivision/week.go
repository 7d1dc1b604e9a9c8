package nutrivision

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jayparmar2411/Nutrivision/internal/service"
)

var weekLimit int

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show calories and protein of the most recent entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		if weekLimit <= 0 {
			return fmt.Errorf("--limit must be > 0")
		}
		return withStore(cmd, func(env *runtimeEnv) error {
			points := service.RecentEntries(env.store.All(), weekLimit)
			if len(points) == 0 {
				fmt.Fprintln(env.out, "No entries yet")
				return nil
			}
			fmt.Fprintln(env.out, "DAY\tKCAL\tPROTEIN")
			for _, p := range points {
				fmt.Fprintf(env.out, "%s\t%d\t%dg\n", p.Label, p.Calories, p.Protein)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(weekCmd)
	weekCmd.Flags().IntVar(&weekLimit, "limit", 7, "Number of entries to show")
}
