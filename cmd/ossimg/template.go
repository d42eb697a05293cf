package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/ossimg/internal/pipeline"
)

var templateCmd = &cobra.Command{
	Use:   "template [name]",
	Short: "Apply a preset look, or list the presets",
	Long: `Apply a preset look to an image. Without a name, list the presets and
the steps each one runs.

  ossimg template
  ossimg template pastel_matte -i in.jpg -o out.jpg`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTemplate,
}

func init() {
	templateCmd.Flags().StringP("input", "i", "", "Input image file")
	templateCmd.Flags().StringP("output", "o", "", "Output image file (format from extension)")
	templateCmd.Flags().Int("quality", 90, "JPEG quality (1-100)")
	templateCmd.Flags().Bool("stats", false, "Print tone statistics before and after")
	rootCmd.AddCommand(templateCmd)
}

func runTemplate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		out := cmd.OutOrStdout()
		for _, name := range pipeline.TemplateNames() {
			steps, err := pipeline.Template(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\n", name)
			for _, step := range steps {
				fmt.Fprintf(out, "  %s\n", step)
			}
		}
		return nil
	}

	steps, err := pipeline.Template(args[0])
	if err != nil {
		return err
	}

	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	if inputPath == "" || outputPath == "" {
		return fmt.Errorf("template %s: --input and --output are required", args[0])
	}

	_, err = applySteps(cmd, steps)
	return err
}
