package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ironsheep/ossimg/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch [files...]",
	Short: "Apply a preset or steps to many images at once",
	Long: `Apply a preset or a list of steps to every file given, writing each
result under --out-dir with its original file name.

  ossimg batch --template gritty --out-dir edited photos/*.jpg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("template", "", "Preset to apply")
	batchCmd.Flags().StringArray("step", nil, "Adjustment as op=value (repeatable)")
	batchCmd.Flags().String("out-dir", "", "Directory for the results")
	batchCmd.Flags().Int("workers", 0, "Concurrent images (0 = CPU count)")
	batchCmd.Flags().Int("quality", 90, "JPEG quality (1-100)")
	batchCmd.MarkFlagRequired("out-dir")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	templateName, _ := cmd.Flags().GetString("template")
	texts, _ := cmd.Flags().GetStringArray("step")
	outDir, _ := cmd.Flags().GetString("out-dir")
	workers, _ := cmd.Flags().GetInt("workers")
	quality, _ := cmd.Flags().GetInt("quality")

	if (templateName == "") == (len(texts) == 0) {
		return errors.New("give exactly one of --template or --step")
	}

	var steps []pipeline.Step
	var err error
	if templateName != "" {
		steps, err = pipeline.Template(templateName)
	} else {
		steps, err = pipeline.ParseSteps(texts)
	}
	if err != nil {
		return err
	}

	jobs := make([]pipeline.Job, 0, len(args))
	for _, in := range args {
		jobs = append(jobs, pipeline.Job{Input: in, Output: filepath.Join(outDir, filepath.Base(in))})
	}
	outputs := lo.Map(jobs, func(j pipeline.Job, _ int) string { return j.Output })
	if dups := lo.FindDuplicates(outputs); len(dups) > 0 {
		return fmt.Errorf("several inputs would be written to %s", dups[0])
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results, err := pipeline.RunBatch(ctx, jobs, steps, pipeline.BatchOptions{
		Workers: workers,
		Quality: quality,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintf(out, "%s -> %s (%dx%d)\n", r.Input, r.Output, r.Width, r.Height)
	}
	return nil
}
