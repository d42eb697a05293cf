package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/ossimg/internal/imaging"
)

// Job names one input image and where its adjusted version is written.
type Job struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// BatchResult describes one completed job.
type BatchResult struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// BatchOptions controls RunBatch.
type BatchOptions struct {
	// Workers bounds the number of images processed at once.
	// Zero or less uses runtime.NumCPU().
	Workers int

	// Quality is the JPEG quality for .jpg outputs; zero uses the encoder default.
	Quality int

	// Cache, when set, is used to load inputs and has each output path evicted
	// after it is written. When nil a private cache is used.
	Cache *imaging.ImageCache
}

// RunBatch loads every job's input, runs steps on it and saves the result.
//
// Jobs are independent and run concurrently. The first failure cancels jobs
// that have not started yet and is returned; results are only returned when
// every job succeeded, in the order of jobs.
func RunBatch(ctx context.Context, jobs []Job, steps []Step, opts BatchOptions) ([]BatchResult, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	cache := opts.Cache
	if cache == nil {
		cache = imaging.NewImageCache()
	}

	results := make([]BatchResult, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if job.Input == "" || job.Output == "" {
				return fmt.Errorf("job %d: input and output paths are required", i+1)
			}

			img, err := cache.Load(job.Input)
			if err != nil {
				return fmt.Errorf("job %d (%s): %w", i+1, job.Input, err)
			}
			res, err := Run(img, steps)
			if err != nil {
				return fmt.Errorf("job %d (%s): %w", i+1, job.Input, err)
			}
			if err := imaging.Save(res.Final, job.Output, opts.Quality); err != nil {
				return fmt.Errorf("job %d (%s): %w", i+1, job.Output, err)
			}
			cache.Evict(job.Output)

			bounds := res.Final.Bounds()
			results[i] = BatchResult{
				Input:  job.Input,
				Output: job.Output,
				Width:  bounds.Dx(),
				Height: bounds.Dy(),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
