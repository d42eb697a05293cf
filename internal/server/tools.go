package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema shared by every tool that reads an image file.
var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

// stepsProperty describes an ordered list of adjustments.
var stepsProperty = map[string]interface{}{
	"type": "array",
	"items": map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"op": map[string]interface{}{
				"type": "string",
				"enum": []string{"brightness", "contrast", "saturation", "sharpness", "gamma", "shadows"},
			},
			"value": map[string]interface{}{"type": "number"},
		},
		"required": []string{"op", "value"},
	},
	"description": "Adjustments applied in order. Factors use 1.0 as neutral; shadows uses 0.0 as neutral and clips to [-2, 2].",
}

// withOutputProperties adds the options shared by every tool that produces an image.
func withOutputProperties(props map[string]interface{}) map[string]interface{} {
	props["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional path to save the result. Format follows the extension (.png, .jpg, .gif, .bmp, .tif).",
	}
	props["preview"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Return the result as a base64 PNG preview (default true)",
		"default":     true,
	}
	props["preview_size"] = map[string]interface{}{
		"type":        "integer",
		"description": "Longest side of the preview in pixels; larger results are scaled down (default 512)",
		"default":     512,
	}
	props["include_stats"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Include before/after tone statistics (default false)",
		"default":     false,
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Tone Curve
		{
			Name:        "image_tone_curve",
			Description: "Compute the shadow tone curve for an amount without touching an image. Returns the gamma and the 256-entry lookup table.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"amount": map[string]interface{}{
						"type":        "number",
						"description": "Shadow amount. Positive lifts shadows, negative crushes them, 0 is identity. Clipped to [-2, 2].",
					},
				},
				"required": []string{"amount"},
			},
		},
		{
			Name:        "image_adjust_shadows",
			Description: "Lift or crush the shadows of an image with a gamma curve. Pure black and pure white are never changed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutputProperties(map[string]interface{}{
					"path": pathProperty,
					"amount": map[string]interface{}{
						"type":        "number",
						"description": "Shadow amount in [-2, 2]; values outside are clipped",
					},
				}),
				"required": []string{"path", "amount"},
			},
		},

		// Adjustments
		{
			Name:        "image_adjust",
			Description: "Apply a single adjustment (brightness, contrast, saturation, sharpness, gamma or shadows) to an image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutputProperties(map[string]interface{}{
					"path": pathProperty,
					"op": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"brightness", "contrast", "saturation", "sharpness", "gamma", "shadows"},
						"description": "Adjustment to apply",
					},
					"value": map[string]interface{}{
						"type":        "number",
						"description": "Adjustment parameter (1.0 is neutral for factors, 0.0 for shadows)",
					},
				}),
				"required": []string{"path", "op", "value"},
			},
		},
		{
			Name:        "image_apply_steps",
			Description: "Apply an ordered list of adjustments to an image. Optionally returns a preview after every step.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutputProperties(map[string]interface{}{
					"path":  pathProperty,
					"steps": stepsProperty,
					"stage_previews": map[string]interface{}{
						"type":        "boolean",
						"description": "Return a preview for every intermediate step (default false)",
						"default":     false,
					},
				}),
				"required": []string{"path", "steps"},
			},
		},
		{
			Name:        "image_apply_template",
			Description: "Apply a preset look (golden_hour, gritty, pastel_matte) to an image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutputProperties(map[string]interface{}{
					"path": pathProperty,
					"template": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"golden_hour", "gritty", "pastel_matte"},
						"description": "Preset name",
					},
				}),
				"required": []string{"path", "template"},
			},
		},
		{
			Name:        "image_list_templates",
			Description: "List the preset looks and the adjustment steps each one applies.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "image_manual_edit",
			Description: "Apply brightness and then gamma, returning a preview after each step for side-by-side comparison.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutputProperties(map[string]interface{}{
					"path": pathProperty,
					"brightness": map[string]interface{}{
						"type":        "number",
						"description": "Brightness factor in [0, 3] (default 1.0)",
						"default":     1.0,
					},
					"gamma": map[string]interface{}{
						"type":        "number",
						"description": "Gamma in [0.1, 5]; larger is brighter (default 1.0)",
						"default":     1.0,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_batch_apply",
			Description: "Apply a template or a list of steps to many images concurrently, saving each result.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"jobs": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"input":  map[string]interface{}{"type": "string", "description": "Source image path"},
								"output": map[string]interface{}{"type": "string", "description": "Destination image path"},
							},
							"required": []string{"input", "output"},
						},
						"description": "Images to process",
					},
					"template": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"golden_hour", "gritty", "pastel_matte"},
						"description": "Preset to apply. Exactly one of template or steps is required.",
					},
					"steps": stepsProperty,
					"workers": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum images processed at once (default: server setting)",
					},
				},
				"required": []string{"jobs"},
			},
		},

		// Analysis
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate, including HSL and CIE lightness.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_tone_stats",
			Description: "Summarize the tonal distribution of an image: luma histogram, mean luma and lightness, shadow/highlight shares, clipping and edge energy.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_compare_tone",
			Description: "Compare the tone statistics of two images, typically an original and its adjusted version.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"other_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image to compare against",
					},
				},
				"required": []string{"path", "other_path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
