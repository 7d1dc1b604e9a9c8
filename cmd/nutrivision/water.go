package nutrivision

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jayparmar2411/Nutrivision/internal/service"
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Track glasses of water for today",
}

var waterAddCmd = &cobra.Command{
	Use:   "add [glasses]",
	Short: "Add glasses of water (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return adjustWater(cmd, args, 1)
	},
}

var waterRemoveCmd = &cobra.Command{
	Use:   "remove [glasses]",
	Short: "Remove glasses of water (default 1, never below zero)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return adjustWater(cmd, args, -1)
	},
}

var waterShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show today's water count",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(env *runtimeEnv) error {
			now := time.Now()
			n, err := service.WaterFor(env.store, now)
			if err != nil {
				return err
			}
			return printWater(env, now, n)
		})
	},
}

func adjustWater(cmd *cobra.Command, args []string, sign int) error {
	glasses := 1
	if len(args) == 1 {
		v, err := parseCountArg("glasses", args[0])
		if err != nil {
			return err
		}
		glasses = v
	}
	return withStore(cmd, func(env *runtimeEnv) error {
		now := time.Now()
		n, err := service.AdjustWater(env.store, now, sign*glasses)
		if err != nil {
			return err
		}
		return printWater(env, now, n)
	})
}

func printWater(env *runtimeEnv, day time.Time, n int) error {
	goals, err := env.store.Goals()
	if err != nil {
		return err
	}
	fmt.Fprintf(env.out, "Water %s: %d/%d glasses (%d%%)\n", service.DayKey(day), n, goals.HydrationGoal, service.ProgressPercent(n, goals.HydrationGoal))
	return nil
}

func init() {
	rootCmd.AddCommand(waterCmd)
	waterCmd.AddCommand(waterAddCmd, waterRemoveCmd, waterShowCmd)
}
