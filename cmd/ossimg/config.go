package main

import (
	"fmt"
	"strconv"

	"github.com/ironsheep/ossimg/internal/server"
)

// Environment variables read by serve.
const (
	envLogLevel    = "OSSIMG_LOG_LEVEL"
	envWorkers     = "OSSIMG_WORKERS"
	envPreviewSize = "OSSIMG_PREVIEW_SIZE"
	envJPEGQuality = "OSSIMG_JPEG_QUALITY"
)

// configFromEnv builds the server configuration from environment variables.
// Unset variables keep the server defaults.
func configFromEnv(getenv func(string) string) (server.Config, error) {
	cfg := server.Config{
		Debug: getenv(envLogLevel) == "debug",
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{envWorkers, &cfg.Workers},
		{envPreviewSize, &cfg.PreviewSize},
		{envJPEGQuality, &cfg.JPEGQuality},
	}
	for _, v := range ints {
		raw := getenv(v.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return server.Config{}, fmt.Errorf("%s: expected a non-negative integer, got %q", v.name, raw)
		}
		*v.dst = n
	}

	return cfg, nil
}
