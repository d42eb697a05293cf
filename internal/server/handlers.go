package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/samber/lo"

	"github.com/ironsheep/ossimg/internal/imaging"
	"github.com/ironsheep/ossimg/internal/pipeline"
	"github.com/ironsheep/ossimg/internal/tone"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_adjust_shadows").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.cfg.Debug {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate tone/imaging/pipeline function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if s.cfg.Debug {
		log.Printf("tool %s", name)
	}
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Tone Curve
	case "image_tone_curve":
		return s.handleImageToneCurve(args)
	case "image_adjust_shadows":
		return s.handleImageAdjustShadows(args)

	// Adjustments
	case "image_adjust":
		return s.handleImageAdjust(args)
	case "image_apply_steps":
		return s.handleImageApplySteps(args)
	case "image_apply_template":
		return s.handleImageApplyTemplate(args)
	case "image_list_templates":
		return s.handleImageListTemplates()
	case "image_manual_edit":
		return s.handleImageManualEdit(args)
	case "image_batch_apply":
		return s.handleImageBatchApply(args)

	// Analysis
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_tone_stats":
		return s.handleImageToneStats(args)
	case "image_compare_tone":
		return s.handleImageCompareTone(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// loadPath loads an image from the cache, rejecting an empty path up front.
func (s *Server) loadPath(path string) (image.Image, error) {
	if path == "" {
		return nil, errors.New("path is required")
	}
	return s.cache.Load(path)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Tone Curve Handlers ===

type imageToneCurveArgs struct {
	Amount *float64 `json:"amount"`
}

// ToneCurveResult describes the lookup table derived from a shadow amount.
type ToneCurveResult struct {
	Amount        float64 `json:"amount"`
	ClampedAmount float64 `json:"clamped_amount"`
	Gamma         float64 `json:"gamma"`
	Identity      bool    `json:"identity"`
	LUT           []int   `json:"lut"`
}

func (s *Server) handleImageToneCurve(args json.RawMessage) (interface{}, error) {
	var a imageToneCurveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Amount == nil {
		return nil, errors.New("amount is required")
	}

	lut := tone.ShadowCurve(*a.Amount)
	return &ToneCurveResult{
		Amount:        *a.Amount,
		ClampedAmount: lo.Clamp(*a.Amount, tone.MinAmount, tone.MaxAmount),
		Gamma:         tone.DeriveGamma(*a.Amount),
		Identity:      lut.IsIdentity(),
		LUT:           lo.Map(lut[:], func(v uint8, _ int) int { return int(v) }),
	}, nil
}

type imageAdjustShadowsArgs struct {
	outputArgs
	Path   string   `json:"path"`
	Amount *float64 `json:"amount"`
}

func (s *Server) handleImageAdjustShadows(args json.RawMessage) (interface{}, error) {
	var a imageAdjustShadowsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Amount == nil {
		return nil, errors.New("amount is required")
	}
	return s.runSteps(a.Path, []pipeline.Step{{Op: pipeline.OpShadows, Value: *a.Amount}}, a.outputArgs, false)
}

// === Adjustment Handlers ===

type imageAdjustArgs struct {
	outputArgs
	Path  string   `json:"path"`
	Op    string   `json:"op"`
	Value *float64 `json:"value"`
}

func (s *Server) handleImageAdjust(args json.RawMessage) (interface{}, error) {
	var a imageAdjustArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Value == nil {
		return nil, errors.New("value is required")
	}
	op := pipeline.Op(a.Op)
	if !op.Valid() {
		return nil, fmt.Errorf("%w: %q", pipeline.ErrUnknownOp, a.Op)
	}
	return s.runSteps(a.Path, []pipeline.Step{{Op: op, Value: *a.Value}}, a.outputArgs, false)
}

type imageApplyStepsArgs struct {
	outputArgs
	Path          string          `json:"path"`
	Steps         []pipeline.Step `json:"steps"`
	StagePreviews bool            `json:"stage_previews"`
}

func (s *Server) handleImageApplySteps(args json.RawMessage) (interface{}, error) {
	var a imageApplyStepsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Steps) == 0 {
		return nil, errors.New("at least one step is required")
	}
	return s.runSteps(a.Path, a.Steps, a.outputArgs, a.StagePreviews)
}

type imageApplyTemplateArgs struct {
	outputArgs
	Path     string `json:"path"`
	Template string `json:"template"`
}

func (s *Server) handleImageApplyTemplate(args json.RawMessage) (interface{}, error) {
	var a imageApplyTemplateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	steps, err := pipeline.Template(a.Template)
	if err != nil {
		return nil, err
	}
	result, err := s.runSteps(a.Path, steps, a.outputArgs, false)
	if err != nil {
		return nil, err
	}
	result.Template = a.Template
	return result, nil
}

// TemplateInfo names a preset and the steps it applies.
type TemplateInfo struct {
	Name  string          `json:"name"`
	Steps []pipeline.Step `json:"steps"`
}

func (s *Server) handleImageListTemplates() (interface{}, error) {
	infos := make([]TemplateInfo, 0, len(pipeline.TemplateNames()))
	for _, name := range pipeline.TemplateNames() {
		steps, err := pipeline.Template(name)
		if err != nil {
			return nil, err
		}
		infos = append(infos, TemplateInfo{Name: name, Steps: steps})
	}
	return map[string]interface{}{"templates": infos}, nil
}

type imageManualEditArgs struct {
	outputArgs
	Path       string   `json:"path"`
	Brightness *float64 `json:"brightness"`
	Gamma      *float64 `json:"gamma"`
}

func (s *Server) handleImageManualEdit(args json.RawMessage) (interface{}, error) {
	var a imageManualEditArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	brightness, gamma := 1.0, 1.0
	if a.Brightness != nil {
		brightness = *a.Brightness
	}
	if a.Gamma != nil {
		gamma = *a.Gamma
	}

	steps, err := pipeline.ManualEdit(brightness, gamma)
	if err != nil {
		return nil, err
	}
	return s.runSteps(a.Path, steps, a.outputArgs, true)
}

type imageBatchApplyArgs struct {
	Jobs     []pipeline.Job  `json:"jobs"`
	Template string          `json:"template"`
	Steps    []pipeline.Step `json:"steps"`
	Workers  int             `json:"workers"`
}

// BatchApplyResult lists the files written by image_batch_apply.
type BatchApplyResult struct {
	Steps   []pipeline.Step        `json:"steps"`
	Results []pipeline.BatchResult `json:"results"`
}

func (s *Server) handleImageBatchApply(args json.RawMessage) (interface{}, error) {
	var a imageBatchApplyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Jobs) == 0 {
		return nil, errors.New("at least one job is required")
	}
	if (a.Template == "") == (len(a.Steps) == 0) {
		return nil, errors.New("exactly one of template or steps is required")
	}

	steps := a.Steps
	if a.Template != "" {
		var err error
		if steps, err = pipeline.Template(a.Template); err != nil {
			return nil, err
		}
	}
	for _, step := range steps {
		if !step.Op.Valid() {
			return nil, fmt.Errorf("%w: %q", pipeline.ErrUnknownOp, step.Op)
		}
	}

	workers := a.Workers
	if workers <= 0 {
		workers = s.cfg.Workers
	}

	results, err := pipeline.RunBatch(context.Background(), a.Jobs, steps, pipeline.BatchOptions{
		Workers: workers,
		Quality: s.cfg.JPEGQuality,
		Cache:   s.cache,
	})
	if err != nil {
		return nil, err
	}
	return &BatchApplyResult{Steps: steps, Results: results}, nil
}

// === Analysis Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadPath(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

func (s *Server) handleImageToneStats(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadPath(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.ToneStats(img)
}

type imageCompareToneArgs struct {
	Path      string `json:"path"`
	OtherPath string `json:"other_path"`
}

func (s *Server) handleImageCompareTone(args json.RawMessage) (interface{}, error) {
	var a imageCompareToneArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	before, err := s.loadPath(a.Path)
	if err != nil {
		return nil, err
	}
	after, err := s.loadPath(a.OtherPath)
	if err != nil {
		return nil, err
	}
	return imaging.CompareTone(before, after)
}
