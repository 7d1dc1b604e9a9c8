package nutrivision

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jayparmar2411/Nutrivision/internal/service"
)

var (
	todayDate string
	todayJSON bool
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's intake, goal progress, hydration and health score",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseDateOrToday(todayDate)
		if err != nil {
			return err
		}
		return withStore(cmd, func(env *runtimeEnv) error {
			snap, err := service.Dashboard(env.store, target)
			if err != nil {
				return err
			}
			if todayJSON {
				enc := json.NewEncoder(env.out)
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			}
			fmt.Fprintf(env.out, "Date: %s\n", snap.Date)
			fmt.Fprintf(env.out, "Calories: %d / %d kcal (%d%%)\n", snap.Calories.Consumed, snap.Calories.Goal, snap.Calories.Percent)
			fmt.Fprintf(env.out, "Protein: %d / %dg (%d%%)\n", snap.Protein.Consumed, snap.Protein.Goal, snap.Protein.Percent)
			fmt.Fprintf(env.out, "Carbs: %d / %dg (%d%%)\n", snap.Carbs.Consumed, snap.Carbs.Goal, snap.Carbs.Percent)
			fmt.Fprintf(env.out, "Fat: %d / %dg (%d%%)\n", snap.Fat.Consumed, snap.Fat.Goal, snap.Fat.Percent)
			fmt.Fprintf(env.out, "Water: %d / %d glasses\n", snap.Water.Consumed, snap.Water.Goal)
			fmt.Fprintf(env.out, "Meals: %d\n", snap.Totals.Count)
			fmt.Fprintf(env.out, "Health score: %d (%s)\n", snap.HealthScore, snap.HealthLabel)
			fmt.Fprintf(env.out, "Streak: %d day(s)\n", snap.Streak)
			fmt.Fprintf(env.out, "Tip: %s\n", snap.Tip)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Output JSON")
}
