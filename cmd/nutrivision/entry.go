package nutrivision

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jayparmar2411/Nutrivision/internal/model"
	"github.com/Jayparmar2411/Nutrivision/internal/service"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage logged food entries",
}

var (
	entryName     string
	entryCalories int
	entryProtein  int
	entryCarbs    int
	entryFat      int
)

var entryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a food item manually",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.ManualEntryInput{
			Name:     entryName,
			Calories: entryCalories,
			Protein:  entryProtein,
			Carbs:    entryCarbs,
			Fat:      entryFat,
		}
		return withStore(cmd, func(env *runtimeEnv) error {
			e, err := service.AddManualEntry(env.store, in, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(env.out, "Added entry %s\n", e.ID)
			return nil
		})
	},
}

var (
	listDate    string
	listJSON    bool
	listLimit   int
	listReverse bool
)

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the latest entries, newest first",
	Long: "Without --date, list the 20 most recent entries, newest first.\n" +
		"With --date, list every entry of that day in the order it was logged.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if listLimit < 0 {
			return fmt.Errorf("--limit must be >= 0")
		}
		return withStore(cmd, func(env *runtimeEnv) error {
			entries := env.store.All()
			limit, newestFirst := service.HistoryLimit, true
			if strings.TrimSpace(listDate) != "" {
				day, err := parseDateOrToday(listDate)
				if err != nil {
					return err
				}
				entries = service.EntriesForDay(entries, day)
				limit, newestFirst = 0, false
			}
			if cmd.Flags().Changed("limit") {
				limit = listLimit
			}
			if listReverse {
				newestFirst = !newestFirst
			}
			entries = service.HistoryView(entries, limit, newestFirst)
			if listJSON {
				enc := json.NewEncoder(env.out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			fmt.Fprintln(env.out, "ID\tDATE\tNAME\tKCAL\tP\tC\tF\tCONF")
			for _, e := range entries {
				fmt.Fprintf(env.out, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\n", e.ID, formatEntryTime(e.Timestamp), e.FoodName, e.Calories, e.Macros.Protein, e.Macros.Carbs, e.Macros.Fat, e.ConfidenceScore)
			}
			return nil
		})
	},
}

var entryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(env *runtimeEnv) error {
			e, ok := env.store.Get(args[0])
			if !ok {
				return fmt.Errorf("entry %s not found", args[0])
			}
			printEntry(env, e)
			return nil
		})
	},
}

var entryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(env *runtimeEnv) error {
			if _, ok := env.store.Get(args[0]); !ok {
				fmt.Fprintf(env.out, "No entry %s\n", args[0])
				return nil
			}
			if err := env.store.Remove(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(env.out, "Deleted entry %s\n", args[0])
			return nil
		})
	},
}

var entrySetCaloriesCmd = &cobra.Command{
	Use:   "set-calories <id> <kcal>",
	Short: "Correct the calories of an entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kcal, err := strconv.Atoi(strings.TrimSpace(args[1]))
		if err != nil {
			return fmt.Errorf("invalid calories %q", args[1])
		}
		return withStore(cmd, func(env *runtimeEnv) error {
			if _, ok := env.store.Get(args[0]); !ok {
				return fmt.Errorf("entry %s not found", args[0])
			}
			if err := env.store.PatchCalories(args[0], kcal); err != nil {
				return err
			}
			fmt.Fprintf(env.out, "Updated entry %s to %d kcal\n", args[0], kcal)
			return nil
		})
	},
}

func printEntry(env *runtimeEnv, e model.FoodEntry) {
	fmt.Fprintf(env.out, "ID: %s\n", e.ID)
	fmt.Fprintf(env.out, "Date: %s\n", formatEntryTime(e.Timestamp))
	printAnalysis(env, e.Analysis)
	if e.ImageURL != "" {
		fmt.Fprintf(env.out, "Image: %s\n", e.ImageURL)
	}
}

func printAnalysis(env *runtimeEnv, a model.Analysis) {
	fmt.Fprintf(env.out, "Name: %s\n", a.FoodName)
	fmt.Fprintf(env.out, "Calories: %d\n", a.Calories)
	fmt.Fprintf(env.out, "Protein: %dg\nCarbs: %dg\nFat: %dg\n", a.Macros.Protein, a.Macros.Carbs, a.Macros.Fat)
	if len(a.Ingredients) > 0 {
		fmt.Fprintf(env.out, "Ingredients: %s\n", strings.Join(a.Ingredients, ", "))
	}
	fmt.Fprintf(env.out, "Tip: %s\n", a.HealthTip)
	fmt.Fprintf(env.out, "Confidence: %d%%\n", a.ConfidenceScore)
}

func init() {
	rootCmd.AddCommand(entryCmd)
	entryCmd.AddCommand(entryAddCmd, entryListCmd, entryShowCmd, entryDeleteCmd, entrySetCaloriesCmd)

	entryAddCmd.Flags().StringVar(&entryName, "name", "", "Food name")
	entryAddCmd.Flags().IntVar(&entryCalories, "calories", 0, "Calories")
	entryAddCmd.Flags().IntVar(&entryProtein, "protein", 0, "Protein grams")
	entryAddCmd.Flags().IntVar(&entryCarbs, "carbs", 0, "Carbs grams")
	entryAddCmd.Flags().IntVar(&entryFat, "fat", 0, "Fat grams")
	_ = entryAddCmd.MarkFlagRequired("name")
	_ = entryAddCmd.MarkFlagRequired("calories")

	entryListCmd.Flags().StringVar(&listDate, "date", "", "Only entries on date YYYY-MM-DD")
	entryListCmd.Flags().BoolVar(&listJSON, "json", false, "Output JSON")
	entryListCmd.Flags().IntVar(&listLimit, "limit", 0, "Show at most this many of the newest entries (0 for all; default 20 without --date)")
	entryListCmd.Flags().BoolVar(&listReverse, "reverse", false, "Flip the listing order")
}
