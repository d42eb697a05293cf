// Package server implements the MCP (Model Context Protocol) server for image
// tone editing tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the tone curve,
// the enhancement adjustments and the preset templates through the MCP
// protocol, so that MCP-compatible clients can adjust images, look at
// previews and save the results.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Tone Curve:
//   - image_tone_curve: Show the lookup table for a shadow amount
//   - image_adjust_shadows: Lift or deepen dark tones
//
// Adjustments:
//   - image_adjust: Apply one adjustment
//   - image_apply_steps: Apply an ordered list of adjustments
//   - image_apply_template: Apply a preset look
//   - image_list_templates: List presets and their steps
//   - image_manual_edit: Brightness then gamma, with a preview per step
//   - image_batch_apply: Apply a preset or steps to many files concurrently
//
// Analysis:
//   - image_sample_color: Get color at pixel
//   - image_tone_stats: Histogram and tonal summary
//   - image_compare_tone: Tonal summary of two images and their differences
//
// Every tool that produces an image accepts output_path, preview,
// preview_size and include_stats. Writing to output_path evicts that path
// from the cache so a later load sees the new file.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// Adjustments never modify a cached image.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.NewWithConfig(server.Config{PreviewSize: 256})
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
