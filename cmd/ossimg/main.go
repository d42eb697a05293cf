package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "ossimg",
	Short: "Tone curves, adjustments and preset looks for images",
	Long: `ossimg adjusts images with a shadow tone curve, PIL-style enhancers
(brightness, contrast, saturation, sharpness) and gamma, either one-shot from
the command line or as an MCP server over stdin/stdout.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
