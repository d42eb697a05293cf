package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/ossimg/internal/tone"
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the shadow lookup table for an amount",
	Args:  cobra.NoArgs,
	RunE:  runCurve,
}

func init() {
	curveCmd.Flags().Float64("amount", 0, "Shadow amount in [-2, 2]")
	curveCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(curveCmd)
}

func runCurve(cmd *cobra.Command, args []string) error {
	amount, _ := cmd.Flags().GetFloat64("amount")
	lut := tone.ShadowCurve(amount)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "amount %g, gamma %g\n", amount, tone.DeriveGamma(amount))
	for row := 0; row < len(lut); row += 16 {
		fmt.Fprintf(out, "%3d:", row)
		for _, v := range lut[row : row+16] {
			fmt.Fprintf(out, " %3d", v)
		}
		fmt.Fprintln(out)
	}
	return nil
}
