package nutrivision

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jayparmar2411/Nutrivision/internal/model"
	"github.com/Jayparmar2411/Nutrivision/internal/service"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage daily calorie, protein and hydration goals",
}

var (
	goalCalories int
	goalProtein  int
	goalWater    int
)

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update one or more daily goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if !flags.Changed("calories") && !flags.Changed("protein") && !flags.Changed("water") {
			return fmt.Errorf("set at least one of --calories, --protein or --water")
		}
		for name, v := range map[string]int{"calories": goalCalories, "protein": goalProtein, "water": goalWater} {
			if flags.Changed(name) && v <= 0 {
				return fmt.Errorf("--%s: %w", name, service.ErrInvalidGoal)
			}
		}
		return withStore(cmd, func(env *runtimeEnv) error {
			var goals model.Goals
			var err error
			if flags.Changed("calories") {
				if goals, err = service.SetCalorieGoal(env.store, goalCalories); err != nil {
					return fmt.Errorf("calorie goal: %w", err)
				}
			}
			if flags.Changed("protein") {
				if goals, err = service.SetProteinGoal(env.store, goalProtein); err != nil {
					return fmt.Errorf("protein goal: %w", err)
				}
			}
			if flags.Changed("water") {
				if goals, err = service.SetHydrationGoal(env.store, goalWater); err != nil {
					return fmt.Errorf("hydration goal: %w", err)
				}
			}
			printGoals(env, goals)
			return nil
		})
	},
}

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(env *runtimeEnv) error {
			goals, err := env.store.Goals()
			if err != nil {
				return err
			}
			printGoals(env, goals)
			return nil
		})
	},
}

func printGoals(env *runtimeEnv, g model.Goals) {
	fmt.Fprintf(env.out, "Calories: %d\nProtein: %dg\nCarbs: %dg\nFat: %dg\nWater: %d glasses\n",
		g.DailyCalorieGoal, g.DailyProteinGoal, model.CarbsGoalG, model.FatGoalG, g.HydrationGoal)
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalSetCmd, goalShowCmd)

	goalSetCmd.Flags().IntVar(&goalCalories, "calories", 0, "Daily calorie target")
	goalSetCmd.Flags().IntVar(&goalProtein, "protein", 0, "Daily protein target grams")
	goalSetCmd.Flags().IntVar(&goalWater, "water", 0, "Daily water target in glasses")
}
