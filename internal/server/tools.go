package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var modelEnum = []string{"HSV", "HSL", "CMY", "CMYK", "XYZ", "LAB", "HUNTER_LAB", "YCbCr", "YCbCr_BT709"}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Active Image
		{
			Name:        "image_load",
			Description: "Load an image file and make it the active image. Returns its dimensions, format, color mode and depth. Any previous adjustments, morphology and pixel selection are discarded.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_info",
			Description: "Describe the active image: its current size and mode, the adjustments that produced it, the number of morphology operations applied and the selected pixel.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Adjustment Pipeline
		{
			Name:        "image_adjust",
			Description: "Recompute the active image from the original with enhancement factors applied in the fixed order brightness, contrast, saturation, sharpness, mode. Each factor is a multiplier in [0,2] where 1 means unchanged; omitted factors keep their previous value. Morphology applied since the last adjustment is discarded.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"brightness": map[string]interface{}{
						"type":        "number",
						"description": "0 is black, 1 unchanged, 2 twice as bright",
						"minimum":     0,
						"maximum":     2,
					},
					"contrast": map[string]interface{}{
						"type":        "number",
						"description": "0 is flat mean gray, 1 unchanged",
						"minimum":     0,
						"maximum":     2,
					},
					"saturation": map[string]interface{}{
						"type":        "number",
						"description": "0 is grayscale, 1 unchanged",
						"minimum":     0,
						"maximum":     2,
					},
					"sharpness": map[string]interface{}{
						"type":        "number",
						"description": "0 is smoothed, 1 unchanged, 2 sharpened",
						"minimum":     0,
						"maximum":     2,
					},
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"keep", "L", "RGB", "RGBA"},
						"description": "Color mode of the result. Default keep",
					},
				},
			},
		},
		{
			Name:        "image_morphology",
			Description: "Apply a morphological operation to the current image. Operations chain: each one starts from the result of the previous one. On failure the current image is left unchanged.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"operation": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"erosion", "dilation", "opening", "closing", "gradient"},
						"description": "Morphological operation",
					},
					"kernel_shape": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"rect", "cross", "ellipse"},
						"description": "Shape of a generated structuring element (default rect). Ignored when kernel is given",
					},
					"kernel_size": map[string]interface{}{
						"type":        "integer",
						"description": "Size of a generated structuring element, odd and at least 3 (default 3)",
					},
					"kernel": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type":  "array",
							"items": map[string]interface{}{"type": "integer", "enum": []int{0, 1}},
						},
						"description": "Explicit square structuring element of 0/1 entries",
					},
					"anchor": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x": map[string]interface{}{"type": "integer"},
							"y": map[string]interface{}{"type": "integer"},
						},
						"description": "Anchor inside the explicit kernel. Default is the center",
					},
					"iterations": map[string]interface{}{
						"type":        "integer",
						"description": "Number of times the operation is repeated (default 1)",
					},
				},
				"required": []string{"operation"},
			},
		},
		{
			Name:        "image_reset",
			Description: "Restore the active image to the loaded original, dropping adjustments, morphology and the pixel selection.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Display Mapping
		{
			Name:        "image_render",
			Description: "Letterbox the current image into a display canvas and return the render geometry (scaled size and offset). Subsequent image_pick_pixel calls use this canvas.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"canvas_width": map[string]interface{}{
						"type":        "integer",
						"description": "Canvas width in display pixels",
					},
					"canvas_height": map[string]interface{}{
						"type":        "integer",
						"description": "Canvas height in display pixels",
					},
					"include_image": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the rendered canvas as base64-encoded PNG. Default false",
						"default":     false,
					},
					"background": map[string]interface{}{
						"type":        "string",
						"description": "Letterbox bar color as #rrggbb. Default #000000",
					},
				},
				"required": []string{"canvas_width", "canvas_height"},
			},
		},
		{
			Name:        "image_pick_pixel",
			Description: "Map a display click on the rendered canvas back to a source pixel, select it and return its color. Clicks on the letterbox bars select nothing.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Canvas X coordinate",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Canvas Y coordinate",
					},
					"model": map[string]interface{}{
						"type":        "string",
						"enum":        modelEnum,
						"description": "Color model to convert the pixel to. Omit for all models",
					},
				},
				"required": []string{"x", "y"},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the exact color of the current image at a source pixel coordinate and select that pixel.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
					"model": map[string]interface{}{
						"type":        "string",
						"enum":        modelEnum,
						"description": "Color model to convert the pixel to. Omit for all models",
					},
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Get the colors of the current image at multiple source pixel coordinates in a single call.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string", "description": "Optional label for this point"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Array of points to sample",
					},
				},
				"required": []string{"points"},
			},
		},
		{
			Name:        "image_histogram",
			Description: "Return 256-bin channel histograms of the current image (L for grayscale, R/G/B for color) and the peak bin of each channel.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "image_save",
			Description: "Encode the current image to a file. The format follows the extension: png, jpg/jpeg, gif, tif/tiff, bmp.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the output file",
					},
					"quality": map[string]interface{}{
						"type":        "integer",
						"description": "JPEG quality 1-100 (default 95)",
					},
				},
				"required": []string{"path"},
			},
		},

		// Color Conversion
		{
			Name:        "color_convert",
			Description: "Convert an RGB color to other color models. The color is given as hex or as r/g/b; when neither is given the selected pixel is used. Lab and Hunter Lab use illuminant A with the 2 degree observer.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"hex": map[string]interface{}{
						"type":        "string",
						"description": "Color as #rrggbb or #rgb",
					},
					"r": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255},
					"g": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255},
					"b": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255},
					"model": map[string]interface{}{
						"type":        "string",
						"enum":        modelEnum,
						"description": "Target color model. Omit for all models",
					},
				},
			},
		},
		{
			Name:        "color_models",
			Description: "List the supported color models and the reference white used for Lab and Hunter Lab.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "color_reference_white",
			Description: "Look up the tabulated XYZ reference white of a CIE illuminant and standard observer.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"illuminant": map[string]interface{}{
						"type":        "string",
						"description": "Illuminant name: A, B, C, D50, D55, D65, D75, E, F1-F12",
					},
					"observer": map[string]interface{}{
						"type":        "integer",
						"enum":        []int{2, 10},
						"description": "Observer angle in degrees (default 2)",
					},
				},
				"required": []string{"illuminant"},
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
