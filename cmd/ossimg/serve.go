package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/ossimg/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdin/stdout",
	Long: `Run the MCP server on stdin/stdout.

Environment variables:
  OSSIMG_LOG_LEVEL=debug     Enable debug logging
  OSSIMG_WORKERS=N           Concurrent images in batch runs
  OSSIMG_PREVIEW_SIZE=N      Longest side of returned previews
  OSSIMG_JPEG_QUALITY=N      Quality for .jpg outputs

Flags override the environment.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("workers", 0, "Concurrent images in batch runs (0 = CPU count)")
	serveCmd.Flags().Int("preview-size", 0, "Longest side of returned previews (0 = 512)")
	serveCmd.Flags().Int("jpeg-quality", 0, "JPEG quality for saved outputs (0 = 90)")
	serveCmd.Flags().Bool("debug", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// stdout is reserved for the protocol
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := configFromEnv(os.Getenv)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("preview-size") {
		cfg.PreviewSize, _ = cmd.Flags().GetInt("preview-size")
	}
	if cmd.Flags().Changed("jpeg-quality") {
		cfg.JPEGQuality, _ = cmd.Flags().GetInt("jpeg-quality")
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug, _ = cmd.Flags().GetBool("debug")
	}

	if cfg.Debug {
		log.Printf("%s v%s (built %s, commit %s)", server.ServerName, Version, BuildTime, GitCommit)
	}

	srv := server.NewWithConfig(cfg)
	if err := srv.Run(); err != nil {
		log.Printf("Server error: %v", err)
		return err
	}
	return nil
}
