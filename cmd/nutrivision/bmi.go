package nutrivision

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jayparmar2411/Nutrivision/internal/service"
)

var (
	bmiHeight float64
	bmiWeight float64
)

var bmiCmd = &cobra.Command{
	Use:   "bmi",
	Short: "Calculate body-mass index with an improvement plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := service.BMI(bmiHeight, bmiWeight)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "BMI: %.1f (%s)\n", res.Value, res.Category)
		fmt.Fprintf(out, "Plan: %s\n", res.Summary)
		fmt.Fprintf(out, "Focus: %s\n", res.Focus)
		fmt.Fprintf(out, "Exercises: %s\n", res.Exercises)
		fmt.Fprintf(out, "Frequency: %s\n", res.Frequency)
		fmt.Fprintf(out, "Protein: %s\n", res.Protein)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bmiCmd)
	bmiCmd.Flags().Float64Var(&bmiHeight, "height", 0, "Height in centimetres")
	bmiCmd.Flags().Float64Var(&bmiWeight, "weight", 0, "Weight in kilograms")
	_ = bmiCmd.MarkFlagRequired("height")
	_ = bmiCmd.MarkFlagRequired("weight")
}
