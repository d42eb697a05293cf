package server

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/ossimg/internal/pipeline"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"image_tone_curve",
		"image_adjust_shadows",
		"image_adjust",
		"image_apply_steps",
		"image_apply_template",
		"image_list_templates",
		"image_manual_edit",
		"image_batch_apply",
		"image_sample_color",
		"image_tone_stats",
		"image_compare_tone",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	// Check all expected tools exist
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			// Name should not be empty
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}

			// Description should not be empty
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}

			// InputSchema should exist
			if tool.InputSchema == nil {
				t.Error("Tool InputSchema is nil")
			}

			// InputSchema should be an object type
			schemaType, ok := tool.InputSchema["type"]
			if !ok {
				t.Error("InputSchema missing 'type' field")
			}
			if schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			// InputSchema should have properties
			props, ok := tool.InputSchema["properties"]
			if !ok {
				t.Error("InputSchema missing 'properties' field")
			}
			if props == nil {
				t.Error("InputSchema properties is nil")
			}
		})
	}
}

func TestToolDefinitions_RequiredPath(t *testing.T) {
	// Most tools require a 'path' parameter
	toolsRequiringPath := []string{
		"image_load",
		"image_dimensions",
		"image_adjust_shadows",
		"image_adjust",
		"image_apply_steps",
		"image_apply_template",
		"image_manual_edit",
		"image_sample_color",
		"image_tone_stats",
		"image_compare_tone",
	}

	tools := GetToolDefinitions()
	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for _, name := range toolsRequiringPath {
		tool, ok := toolMap[name]
		if !ok {
			continue // Skip if tool not found
		}

		t.Run(name, func(t *testing.T) {
			required, ok := tool.InputSchema["required"]
			if !ok {
				t.Error("InputSchema missing 'required' field")
				return
			}

			requiredList, ok := required.([]string)
			if !ok {
				t.Error("'required' should be a string slice")
				return
			}

			hasPath := false
			for _, r := range requiredList {
				if r == "path" {
					hasPath = true
					break
				}
			}

			if !hasPath {
				t.Error("Tool should require 'path' parameter")
			}
		})
	}
}

// findTool returns the named tool definition or fails the test.
func findTool(t *testing.T, name string) Tool {
	t.Helper()
	for _, tool := range GetToolDefinitions() {
		if tool.Name == name {
			return tool
		}
	}
	t.Fatalf("%s tool not found", name)
	return Tool{}
}

func TestToolDefinitions_TemplateEnum(t *testing.T) {
	for _, name := range []string{"image_apply_template", "image_batch_apply"} {
		t.Run(name, func(t *testing.T) {
			props, ok := findTool(t, name).InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("properties should be a map")
			}
			templateProp, ok := props["template"].(map[string]interface{})
			if !ok {
				t.Fatal("template property should exist and be a map")
			}
			enum, ok := templateProp["enum"].([]string)
			if !ok {
				t.Fatal("template should have enum")
			}
			if diff := cmp.Diff(pipeline.TemplateNames(), enum); diff != "" {
				t.Errorf("template enum mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToolDefinitions_StepOps(t *testing.T) {
	items, ok := stepsProperty["items"].(map[string]interface{})
	if !ok {
		t.Fatal("steps items should be a map")
	}
	props, ok := items["properties"].(map[string]interface{})
	if !ok {
		t.Fatal("steps item properties should be a map")
	}
	opProp, ok := props["op"].(map[string]interface{})
	if !ok {
		t.Fatal("op property should exist and be a map")
	}
	enum, ok := opProp["enum"].([]string)
	if !ok {
		t.Fatal("op should have enum")
	}

	want := make([]string, 0, len(pipeline.Ops()))
	for _, op := range pipeline.Ops() {
		want = append(want, string(op))
	}
	if diff := cmp.Diff(want, enum); diff != "" {
		t.Errorf("op enum mismatch (-want +got):\n%s", diff)
	}

	adjust := findTool(t, "image_adjust").InputSchema["properties"].(map[string]interface{})
	adjustOp := adjust["op"].(map[string]interface{})
	if diff := cmp.Diff(want, adjustOp["enum"]); diff != "" {
		t.Errorf("image_adjust op enum mismatch (-want +got):\n%s", diff)
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	tools := GetToolDefinitions()

	// Tools with optional parameters that should have defaults
	toolDefaults := map[string]map[string]interface{}{
		"image_adjust_shadows": {"preview": true, "preview_size": 512, "include_stats": false},
		"image_apply_steps":    {"preview": true, "stage_previews": false},
		"image_manual_edit":    {"brightness": 1.0, "gamma": 1.0},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for toolName, expectedDefaults := range toolDefaults {
		tool, ok := toolMap[toolName]
		if !ok {
			t.Errorf("Tool %s not found", toolName)
			continue
		}

		props, ok := tool.InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Errorf("%s: properties should be a map", toolName)
			continue
		}

		for paramName, expectedDefault := range expectedDefaults {
			param, ok := props[paramName].(map[string]interface{})
			if !ok {
				t.Errorf("%s.%s: parameter not found or not a map", toolName, paramName)
				continue
			}

			actualDefault, ok := param["default"]
			if !ok {
				t.Errorf("%s.%s: missing default value", toolName, paramName)
				continue
			}

			// Compare defaults (handle type differences)
			switch expected := expectedDefault.(type) {
			case float64:
				actual, ok := actualDefault.(float64)
				if !ok || actual != expected {
					t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actualDefault, expected)
				}
			case int:
				// JSON numbers are float64
				actual, ok := actualDefault.(int)
				if !ok {
					actualFloat, ok := actualDefault.(float64)
					if !ok || int(actualFloat) != expected {
						t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actualDefault, expected)
					}
				} else if actual != expected {
					t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actualDefault, expected)
				}
			case string:
				actual, ok := actualDefault.(string)
				if !ok || actual != expected {
					t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actualDefault, expected)
				}
			case bool:
				actual, ok := actualDefault.(bool)
				if !ok || actual != expected {
					t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actualDefault, expected)
				}
			}
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	tools, ok := result["tools"]
	if !ok {
		t.Fatal("Result should contain 'tools' key")
	}

	toolsList, ok := tools.([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	// Should match GetToolDefinitions
	expected := GetToolDefinitions()
	if len(toolsList) != len(expected) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(expected))
	}
}
