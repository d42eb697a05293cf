package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ironsheep/ossimg/internal/imaging"
	"github.com/ironsheep/ossimg/internal/pipeline"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply adjustment steps to an image",
	Long: `Apply adjustment steps to an image, in the order given.

Each --step is op=value where op is one of brightness, contrast, saturation,
sharpness, gamma or shadows. --amount is shorthand for a single shadows step
and runs before any --step.

  ossimg apply -i in.jpg -o out.jpg --amount 0.7
  ossimg apply -i in.png -o out.png --step contrast=1.2 --step shadows=-0.3`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringP("input", "i", "", "Input image file")
	applyCmd.Flags().StringP("output", "o", "", "Output image file (format from extension)")
	applyCmd.Flags().StringArray("step", nil, "Adjustment as op=value (repeatable)")
	applyCmd.Flags().Float64("amount", 0, "Shadow amount in [-2, 2]; positive lifts dark tones")
	applyCmd.Flags().Int("quality", 90, "JPEG quality (1-100)")
	applyCmd.Flags().Bool("stats", false, "Print tone statistics before and after")
	applyCmd.MarkFlagRequired("input")
	applyCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	texts, _ := cmd.Flags().GetStringArray("step")
	steps, err := pipeline.ParseSteps(texts)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("amount") {
		amount, _ := cmd.Flags().GetFloat64("amount")
		steps = append([]pipeline.Step{{Op: pipeline.OpShadows, Value: amount}}, steps...)
	}
	if len(steps) == 0 {
		return errors.New("nothing to apply: give --amount or at least one --step")
	}

	_, err = applySteps(cmd, steps)
	return err
}

// applySteps runs steps on the --input image and writes the --output image.
func applySteps(cmd *cobra.Command, steps []pipeline.Step) (*pipeline.Result, error) {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	quality, _ := cmd.Flags().GetInt("quality")
	showStats, _ := cmd.Flags().GetBool("stats")

	img, err := imaging.NewImageCache().Load(inputPath)
	if err != nil {
		return nil, err
	}

	result, err := pipeline.Run(img, steps)
	if err != nil {
		return nil, err
	}

	if err := imaging.Save(result.Final, outputPath, quality); err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	bounds := result.Final.Bounds()
	fmt.Fprintf(out, "Adjusted %dx%d image\n", bounds.Dx(), bounds.Dy())
	for i, step := range steps {
		fmt.Fprintf(out, "  %d. %s\n", i+1, step)
	}
	fmt.Fprintf(out, "Input:  %s\n", inputPath)
	fmt.Fprintf(out, "Output: %s\n", outputPath)

	if showStats {
		cmp, err := imaging.CompareTone(img, result.Final)
		if err != nil {
			return nil, err
		}
		printCompare(out, cmp)
	}

	return result, nil
}

func printCompare(w io.Writer, c *imaging.Compare) {
	fmt.Fprintf(w, "%-12s %10s %10s\n", "", "before", "after")
	rows := []struct {
		name          string
		before, after float64
	}{
		{"mean luma", c.Before.MeanLuma, c.After.MeanLuma},
		{"lightness", c.Before.MeanLightness, c.After.MeanLightness},
		{"shadows", c.Before.ShadowFraction, c.After.ShadowFraction},
		{"highlights", c.Before.HighlightFraction, c.After.HighlightFraction},
		{"black clip", c.Before.ClippedBlack, c.After.ClippedBlack},
		{"white clip", c.Before.ClippedWhite, c.After.ClippedWhite},
		{"edges", c.Before.EdgeEnergy, c.After.EdgeEnergy},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-12s %10.4f %10.4f\n", r.name, r.before, r.after)
	}
}
