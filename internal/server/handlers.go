package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/ironsheep/colorimetry-mcp/internal/colorspace"
	"github.com/ironsheep/colorimetry-mcp/internal/imaging"
	"github.com/ironsheep/colorimetry-mcp/internal/morphology"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "color_convert").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// ToolError is the data attached to a failed tool call.
type ToolError struct {
	// Error is the full error text.
	Error string `json:"error"`

	// Kind classifies known failures: "uninitialized_image", "no_render",
	// "unsupported_conversion", "degenerate_color_input", "invalid_kernel"
	// or "morphology_failure". Empty for anything else.
	Kind string `json:"error_kind,omitempty"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000
// and a ToolError as data.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		kind := errorKind(err)
		Logger().Warn("tool failed", "tool", params.Name, "kind", kind, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", ToolError{Error: err.Error(), Kind: kind})
	}
	Logger().Debug("tool executed", "tool", params.Name, "duration", time.Since(start))

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
//  3. Runs the operation on the server's pipeline or the color converters
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Active Image
	case "image_load":
		return s.handleImageLoad(args)
	case "image_info":
		return s.handleImageInfo(args)

	// Adjustment Pipeline
	case "image_adjust":
		return s.handleImageAdjust(args)
	case "image_morphology":
		return s.handleImageMorphology(args)
	case "image_reset":
		return s.handleImageReset(args)

	// Display Mapping
	case "image_render":
		return s.handleImageRender(args)
	case "image_pick_pixel":
		return s.handleImagePickPixel(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)
	case "image_histogram":
		return s.handleImageHistogram(args)
	case "image_save":
		return s.handleImageSave(args)

	// Color Conversion
	case "color_convert":
		return s.handleColorConvert(args)
	case "color_models":
		return s.handleColorModels(args)
	case "color_reference_white":
		return s.handleColorReferenceWhite(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorKind maps an error to the ToolError kind string.
func errorKind(err error) string {
	var opErr *morphology.OpError
	switch {
	case errors.Is(err, imaging.ErrUninitializedImage):
		return "uninitialized_image"
	case errors.Is(err, imaging.ErrNoRender):
		return "no_render"
	case errors.Is(err, colorspace.ErrUnsupportedConversion):
		return "unsupported_conversion"
	case errors.Is(err, colorspace.ErrDegenerateColorInput):
		return "degenerate_color_input"
	case errors.Is(err, morphology.ErrInvalidKernel):
		return "invalid_kernel"
	case errors.As(err, &opErr):
		return "morphology_failure"
	}
	return ""
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
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

// === Active Image Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	info, err := s.pipeline.LoadFile(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.activePath = a.Path
	s.mu.Unlock()

	Logger().Info("image loaded", "path", a.Path, "width", info.Width, "height", info.Height, "mode", info.Mode)
	return info, nil
}

// ImageState describes the active image.
type ImageState struct {
	Path            string                  `json:"path"`
	Original        *imaging.ImageInfo      `json:"original"`
	Current         *imaging.ImageInfo      `json:"current"`
	Adjustments     imaging.Adjustments     `json:"adjustments"`
	MorphologyCount int                     `json:"morphology_count"`
	Geometry        *imaging.RenderGeometry `json:"geometry,omitempty"`
	SelectedPixel   *imaging.PixelSample    `json:"selected_pixel,omitempty"`
}

func (s *Server) handleImageInfo(json.RawMessage) (interface{}, error) {
	return s.state()
}

func (s *Server) state() (*ImageState, error) {
	snap, err := s.pipeline.Snapshot()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	path := s.activePath
	s.mu.Unlock()

	st := &ImageState{
		Path:            path,
		Original:        imaging.Describe(snap.Original),
		Current:         imaging.Describe(snap.Current),
		Adjustments:     snap.Adjustments,
		MorphologyCount: snap.MorphologyCount,
		Geometry:        snap.Geometry,
		SelectedPixel:   snap.Selected,
	}
	st.Original.Path = path
	return st, nil
}

// === Adjustment Pipeline Handlers ===

type imageAdjustArgs struct {
	Brightness *float64 `json:"brightness"`
	Contrast   *float64 `json:"contrast"`
	Saturation *float64 `json:"saturation"`
	Sharpness  *float64 `json:"sharpness"`
	Mode       *string  `json:"mode"`
}

func (s *Server) handleImageAdjust(args json.RawMessage) (interface{}, error) {
	var a imageAdjustArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	// Omitted values keep their previous setting.
	adj := s.pipeline.Adjustments()
	if a.Brightness != nil {
		adj.Brightness = *a.Brightness
	}
	if a.Contrast != nil {
		adj.Contrast = *a.Contrast
	}
	if a.Saturation != nil {
		adj.Saturation = *a.Saturation
	}
	if a.Sharpness != nil {
		adj.Sharpness = *a.Sharpness
	}
	if a.Mode != nil {
		m, err := imaging.ParseMode(*a.Mode)
		if err != nil {
			return nil, err
		}
		adj.Mode = m
	}

	if _, err := s.pipeline.Apply(adj); err != nil {
		return nil, err
	}
	return s.state()
}

type anchorArg struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type imageMorphologyArgs struct {
	Operation   string     `json:"operation"`
	KernelShape string     `json:"kernel_shape"`
	KernelSize  int        `json:"kernel_size"`
	Kernel      [][]int    `json:"kernel"`
	Anchor      *anchorArg `json:"anchor"`
	Iterations  int        `json:"iterations"`
}

func (s *Server) handleImageMorphology(args json.RawMessage) (interface{}, error) {
	var a imageMorphologyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Iterations == 0 {
		a.Iterations = 1
	}

	op, err := morphology.ParseOperation(a.Operation)
	if err != nil {
		return nil, err
	}
	k, err := buildKernel(a)
	if err != nil {
		return nil, err
	}

	if _, err := s.pipeline.ApplyMorphology(op, k, a.Iterations); err != nil {
		return nil, err
	}
	return s.state()
}

// buildKernel returns the explicit kernel of a when one is given and a
// generated one otherwise.
func buildKernel(a imageMorphologyArgs) (morphology.Kernel, error) {
	if a.Kernel != nil {
		rows := make([][]uint8, len(a.Kernel))
		for y, row := range a.Kernel {
			rows[y] = make([]uint8, len(row))
			for x, v := range row {
				if v != 0 && v != 1 {
					return morphology.Kernel{}, fmt.Errorf("%w: entry (%d,%d) is %d, want 0 or 1", morphology.ErrInvalidKernel, x, y, v)
				}
				rows[y][x] = uint8(v)
			}
		}
		if a.Anchor != nil {
			return morphology.NewKernelWithAnchor(rows, image.Pt(a.Anchor.X, a.Anchor.Y))
		}
		return morphology.NewKernel(rows)
	}

	size := a.KernelSize
	if size == 0 {
		size = 3
	}
	return morphology.ShapeKernel(a.KernelShape, size)
}

func (s *Server) handleImageReset(json.RawMessage) (interface{}, error) {
	if err := s.pipeline.Reset(); err != nil {
		return nil, err
	}
	return s.state()
}

// === Display Mapping Handlers ===

type imageRenderArgs struct {
	CanvasWidth  int    `json:"canvas_width"`
	CanvasHeight int    `json:"canvas_height"`
	IncludeImage bool   `json:"include_image"`
	Background   string `json:"background"`
}

// RenderResult is the geometry of a render, optionally with the canvas.
type RenderResult struct {
	Geometry imaging.RenderGeometry `json:"geometry"`
	Canvas   *imaging.EncodedImage  `json:"canvas,omitempty"`
}

func (s *Server) handleImageRender(args json.RawMessage) (interface{}, error) {
	var a imageRenderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Background == "" {
		a.Background = "#000000"
	}
	bg, err := colorspace.ParseHex(a.Background)
	if err != nil {
		return nil, err
	}

	r, err := s.pipeline.Render(a.CanvasWidth, a.CanvasHeight)
	if err != nil {
		return nil, err
	}
	res := &RenderResult{Geometry: r.Geometry}
	if a.IncludeImage {
		canvas := r.Canvas(color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: 0xff})
		if res.Canvas, err = imaging.EncodeBase64(canvas, "png", 0); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// convert converts c to the named model, or to every model when model is
// empty. Only a single named conversion fails; in the every-model form a
// failing conversion is reported through its Error field.
func convert(c colorspace.RGB, model string) ([]colorspace.Conversion, error) {
	if model == "" {
		return colorspace.ConvertAll(c), nil
	}
	m, err := colorspace.ParseModel(model)
	if err != nil {
		return nil, err
	}
	v, err := colorspace.Convert(c, m)
	if err != nil {
		return nil, err
	}
	return []colorspace.Conversion{{Model: m, Value: v, Display: colorspace.Format(v)}}, nil
}

// PixelResult is a sampled pixel and its conversions.
type PixelResult struct {
	Selected    bool                    `json:"selected"`
	Pixel       *imaging.PixelSample    `json:"pixel,omitempty"`
	Conversions []colorspace.Conversion `json:"conversions,omitempty"`
}

func pixelResult(p *imaging.PixelSample, model string) (*PixelResult, error) {
	conv, err := convert(p.RGB, model)
	if err != nil {
		return nil, err
	}
	return &PixelResult{Selected: true, Pixel: p, Conversions: conv}, nil
}

type imagePointArgs struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Model string `json:"model"`
}

func (s *Server) handleImagePickPixel(args json.RawMessage) (interface{}, error) {
	var a imagePointArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	p, ok, err := s.pipeline.PixelColor(a.X, a.Y)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &PixelResult{Selected: false}, nil
	}
	return pixelResult(p, a.Model)
}

// === Color Operation Handlers ===

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imagePointArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	p, err := s.pipeline.PixelAt(a.X, a.Y)
	if err != nil {
		return nil, err
	}
	return pixelResult(p, a.Model)
}

type imageSampleColorsMultiArgs struct {
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label"`
	} `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	img := s.pipeline.Current()
	if img == nil {
		return nil, imaging.ErrUninitializedImage
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	samples, err := imaging.SampleColorsMulti(img, points)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"samples": samples}, nil
}

// HistogramResult is the histogram of the current image with the peak bin
// of each channel.
type HistogramResult struct {
	*imaging.Histogram
	Peaks map[string]int `json:"peaks"`
}

func (s *Server) handleImageHistogram(json.RawMessage) (interface{}, error) {
	img := s.pipeline.Current()
	if img == nil {
		return nil, imaging.ErrUninitializedImage
	}

	h := imaging.ComputeHistogram(img)
	peaks := make(map[string]int)
	for name, bins := range map[string][]int{"l": h.L, "r": h.R, "g": h.G, "b": h.B} {
		if bins != nil {
			peaks[name] = imaging.Peak(bins)
		}
	}
	return &HistogramResult{Histogram: h, Peaks: peaks}, nil
}

type imageSaveArgs struct {
	Path    string `json:"path"`
	Quality int    `json:"quality"`
}

func (s *Server) handleImageSave(args json.RawMessage) (interface{}, error) {
	var a imageSaveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	img := s.pipeline.Current()
	if img == nil {
		return nil, imaging.ErrUninitializedImage
	}
	if err := imaging.Save(img, a.Path, a.Quality); err != nil {
		return nil, err
	}
	// The saved file may replace one held in the cache.
	s.cache.Evict(a.Path)

	info := imaging.Describe(img)
	info.Path = a.Path
	Logger().Info("image saved", "path", a.Path)
	return info, nil
}

// === Color Conversion Handlers ===

type colorConvertArgs struct {
	Hex   string `json:"hex"`
	R     *int   `json:"r"`
	G     *int   `json:"g"`
	B     *int   `json:"b"`
	Model string `json:"model"`
}

// ConvertResult is a color with its conversions.
type ConvertResult struct {
	RGB         colorspace.RGB          `json:"rgb"`
	Hex         string                  `json:"hex"`
	Conversions []colorspace.Conversion `json:"conversions"`
}

func (s *Server) handleColorConvert(args json.RawMessage) (interface{}, error) {
	var a colorConvertArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	c, err := s.colorArg(a)
	if err != nil {
		return nil, err
	}
	conv, err := convert(c, a.Model)
	if err != nil {
		return nil, err
	}
	return &ConvertResult{RGB: c, Hex: c.Hex(), Conversions: conv}, nil
}

// colorArg resolves the input color: hex first, then r/g/b, then the
// selected pixel.
func (s *Server) colorArg(a colorConvertArgs) (colorspace.RGB, error) {
	if a.Hex != "" {
		return colorspace.ParseHex(a.Hex)
	}

	if a.R != nil || a.G != nil || a.B != nil {
		if a.R == nil || a.G == nil || a.B == nil {
			return colorspace.RGB{}, fmt.Errorf("r, g and b must be given together")
		}
		var out [3]uint8
		for i, v := range []int{*a.R, *a.G, *a.B} {
			if v < 0 || v > 255 {
				return colorspace.RGB{}, fmt.Errorf("channel value %d outside 0-255", v)
			}
			out[i] = uint8(v)
		}
		return colorspace.RGB{R: out[0], G: out[1], B: out[2]}, nil
	}

	sel, ok := s.pipeline.SelectedPixel()
	if !ok {
		return colorspace.RGB{}, fmt.Errorf("no color given and no pixel selected")
	}
	return sel.RGB, nil
}

// ModelsResult lists the color models and the fixed reference white.
type ModelsResult struct {
	Models         []colorspace.Model     `json:"models"`
	Illuminant     colorspace.Illuminant  `json:"illuminant"`
	Observer       colorspace.Observer    `json:"observer"`
	ReferenceWhite colorspace.Tristimulus `json:"reference_white"`
}

func (s *Server) handleColorModels(json.RawMessage) (interface{}, error) {
	return &ModelsResult{
		Models:         colorspace.Models(),
		Illuminant:     colorspace.IlluminantA,
		Observer:       colorspace.Observer2,
		ReferenceWhite: colorspace.DefaultReference(),
	}, nil
}

type colorReferenceWhiteArgs struct {
	Illuminant string `json:"illuminant"`
	Observer   int    `json:"observer"`
}

func (s *Server) handleColorReferenceWhite(args json.RawMessage) (interface{}, error) {
	var a colorReferenceWhiteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Observer == 0 {
		a.Observer = int(colorspace.Observer2)
	}

	ill := colorspace.Illuminant(strings.ToUpper(strings.TrimSpace(a.Illuminant)))
	obs := colorspace.Observer(a.Observer)
	w, ok := colorspace.ReferenceWhite(ill, obs)
	if !ok {
		return nil, fmt.Errorf("no reference white for illuminant %q and %d degree observer (known: %v)",
			a.Illuminant, a.Observer, colorspace.Illuminants())
	}
	return map[string]interface{}{
		"illuminant":      ill,
		"observer":        obs,
		"reference_white": w,
	}, nil
}
