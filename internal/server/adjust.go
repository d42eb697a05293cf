package server

import (
	"github.com/ironsheep/ossimg/internal/imaging"
	"github.com/ironsheep/ossimg/internal/pipeline"
)

// outputArgs holds the options shared by every tool that produces an image.
type outputArgs struct {
	OutputPath   string `json:"output_path"`
	Preview      *bool  `json:"preview"`
	PreviewSize  int    `json:"preview_size"`
	IncludeStats bool   `json:"include_stats"`
}

// StageResult is the preview of one intermediate step.
type StageResult struct {
	Step    string                 `json:"step"`
	Preview *imaging.PreviewResult `json:"preview"`
}

// AdjustResult is returned by every tool that produces an image.
type AdjustResult struct {
	Width      int                    `json:"width"`
	Height     int                    `json:"height"`
	Template   string                 `json:"template,omitempty"`
	Steps      []pipeline.Step        `json:"steps"`
	OutputPath string                 `json:"output_path,omitempty"`
	Preview    *imaging.PreviewResult `json:"preview,omitempty"`
	Stages     []StageResult          `json:"stages,omitempty"`
	Stats      *imaging.Compare       `json:"stats,omitempty"`
}

// runSteps loads path, runs steps and then saves, previews and measures the
// result as requested by out. With stages set, every intermediate image is
// previewed as well.
func (s *Server) runSteps(path string, steps []pipeline.Step, out outputArgs, stages bool) (*AdjustResult, error) {
	img, err := s.loadPath(path)
	if err != nil {
		return nil, err
	}

	res, err := pipeline.Run(img, steps)
	if err != nil {
		return nil, err
	}

	bounds := res.Final.Bounds()
	result := &AdjustResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Steps:  steps,
	}

	if out.OutputPath != "" {
		if err := imaging.Save(res.Final, out.OutputPath, s.cfg.JPEGQuality); err != nil {
			return nil, err
		}
		s.cache.Evict(out.OutputPath)
		result.OutputPath = out.OutputPath
	}

	size := out.PreviewSize
	if size <= 0 {
		size = s.cfg.PreviewSize
	}

	if out.Preview == nil || *out.Preview {
		if result.Preview, err = imaging.EncodePreview(res.Final, size); err != nil {
			return nil, err
		}
	}

	if stages {
		for _, stage := range res.Stages {
			p, err := imaging.EncodePreview(stage.Image, size)
			if err != nil {
				return nil, err
			}
			result.Stages = append(result.Stages, StageResult{Step: stage.Step.String(), Preview: p})
		}
	}

	if out.IncludeStats {
		if result.Stats, err = imaging.CompareTone(img, res.Final); err != nil {
			return nil, err
		}
	}

	return result, nil
}
