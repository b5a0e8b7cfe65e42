// Package server implements the MCP (Model Context Protocol) server for
// colorimetry and image adjustment tools.
//
// This package provides a JSON-RPC 2.0 server that exposes one active image
// and its adjustment pipeline through the MCP protocol. A client loads an
// image, adjusts it, renders it into a display canvas, picks pixels from
// that canvas and converts their colors between color models.
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
// Active Image:
//   - image_load: Load an image file and make it the active image
//   - image_info: Describe the active image and pipeline state
//
// Adjustment Pipeline:
//   - image_adjust: Brightness, contrast, saturation, sharpness and mode,
//     always recomputed from the original
//   - image_morphology: Erosion, dilation, opening, closing and gradient,
//     chained on the current image
//   - image_reset: Return to the original
//
// Display Mapping:
//   - image_render: Letterbox the current image into a canvas
//   - image_pick_pixel: Map a canvas click to a source pixel and convert it
//
// Color Operations:
//   - image_sample_color: Get and convert the color at a source pixel
//   - image_sample_colors_multi: Sample multiple points
//   - image_histogram: Channel histograms of the current image
//   - image_save: Encode the current image to a file
//
// Color Conversion:
//   - color_convert: Convert a color to HSV, HSL, CMY, CMYK, XYZ, Lab,
//     Hunter Lab and YCbCr
//   - color_models: List the models and the fixed reference white
//   - color_reference_white: Look up a tabulated reference white
//
// # State
//
// A Server holds a single pipeline, so tool calls from one client share the
// active image. Decoded files are cached by path for the lifetime of the
// process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: a [ToolError] with the Go error string and, for known failures,
//     an error_kind such as "uninitialized_image" or "invalid_kernel"
//
// # Logging
//
// The server is silent by default. Call [SetLogger] to receive log records;
// they must not go to stdout, which carries the protocol.
//
// # Usage
//
//	srv := server.New(server.WithVersion(version))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
