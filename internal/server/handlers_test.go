package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/colorimetry-mcp/internal/imaging"
)

// createTestImageFile creates a test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return writeTestImage(t, img)
}

// createPatternImageFile writes a 10x10 image with red, green, blue and white
// quadrants (TL, TR, BL, BR).
func createPatternImageFile(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			switch {
			case x < 5 && y < 5:
				img.Set(x, y, color.RGBA{255, 0, 0, 255})
			case y < 5:
				img.Set(x, y, color.RGBA{0, 255, 0, 255})
			case x < 5:
				img.Set(x, y, color.RGBA{0, 0, 255, 255})
			default:
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			}
		}
	}
	return writeTestImage(t, img)
}

func writeTestImage(t *testing.T, img image.Image) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "handler-test-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return tmpFile.Name()
}

// callTool sends a tools/call request through handleRequest.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{"name": name}
	if args != nil {
		params["arguments"] = args
	}
	paramsJSON, _ := json.Marshal(params)

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// mustCall calls a tool that is expected to succeed and decodes its text
// content into out.
func mustCall(t *testing.T, s *Server, name string, args map[string]interface{}, out interface{}) {
	t.Helper()

	resp := callTool(t, s, name, args)
	if resp.Error != nil {
		t.Fatalf("%s: unexpected error: %+v", name, resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("%s: result should be a map", name)
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("%s: unexpected content %v", name, result["content"])
	}
	text, _ := content[0]["text"].(string)
	if out != nil {
		if err := json.Unmarshal([]byte(text), out); err != nil {
			t.Fatalf("%s: invalid result JSON: %v\n%s", name, err, text)
		}
	}
}

// toolError asserts that resp failed as a tool execution error.
func toolError(t *testing.T, resp *MCPResponse) ToolError {
	t.Helper()

	if resp.Error == nil {
		t.Fatal("expected error response")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
	te, ok := resp.Error.Data.(ToolError)
	if !ok {
		t.Fatalf("Error data: got %T, want ToolError", resp.Error.Data)
	}
	return te
}

// conversionResult mirrors the JSON of ConvertResult and PixelResult.
type conversionResult struct {
	Selected bool   `json:"selected"`
	Hex      string `json:"hex"`
	Pixel    *struct {
		X   int    `json:"x"`
		Y   int    `json:"y"`
		Hex string `json:"hex"`
	} `json:"pixel"`
	Conversions []struct {
		Model   string             `json:"model"`
		Value   map[string]float64 `json:"value"`
		Display string             `json:"display"`
		Error   string             `json:"error"`
	} `json:"conversions"`
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255})

	var info imaging.ImageInfo
	mustCall(t, s, "image_load", map[string]interface{}{"path": imgPath}, &info)

	if info.Width != 100 || info.Height != 80 {
		t.Errorf("size: got %dx%d, want 100x80", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format: got %s, want png", info.Format)
	}
	if info.Mode != imaging.ModeRGB || info.Depth != 24 {
		t.Errorf("mode: got %s/%d, want RGB/24", info.Mode, info.Depth)
	}
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s := New()

	resp := callTool(t, s, "image_load", map[string]interface{}{"path": "/nonexistent/image.png"})
	te := toolError(t, resp)
	if te.Kind != "" {
		t.Errorf("Kind: got %q, want empty", te.Kind)
	}
}

func TestHandleToolsCall_MissingArguments(t *testing.T) {
	s := New()

	resp := callTool(t, s, "image_load", nil)
	if te := toolError(t, resp); !strings.Contains(te.Error, "path is required") {
		t.Errorf("Error: got %q", te.Error)
	}
}

func TestHandleToolsCall_Uninitialized(t *testing.T) {
	tools := []struct {
		name string
		args map[string]interface{}
	}{
		{"image_info", nil},
		{"image_adjust", map[string]interface{}{"brightness": 1.5}},
		{"image_morphology", map[string]interface{}{"operation": "erosion"}},
		{"image_reset", nil},
		{"image_render", map[string]interface{}{"canvas_width": 100, "canvas_height": 100}},
		{"image_pick_pixel", map[string]interface{}{"x": 1, "y": 1}},
		{"image_sample_color", map[string]interface{}{"x": 1, "y": 1}},
		{"image_sample_colors_multi", map[string]interface{}{"points": []map[string]interface{}{{"x": 1, "y": 1}}}},
		{"image_histogram", nil},
		{"image_save", map[string]interface{}{"path": filepath.Join(t.TempDir(), "out.png")}},
	}

	s := New()
	for _, tt := range tools {
		t.Run(tt.name, func(t *testing.T) {
			te := toolError(t, callTool(t, s, tt.name, tt.args))
			if te.Kind != "uninitialized_image" {
				t.Errorf("Kind: got %q, want uninitialized_image", te.Kind)
			}
		})
	}
}

func TestHandleToolsCall_AdjustRenderPick(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255})
	mustCall(t, s, "image_load", map[string]interface{}{"path": imgPath}, nil)

	var st ImageState
	mustCall(t, s, "image_adjust", map[string]interface{}{"brightness": 0.5}, &st)
	if st.Adjustments.Brightness != 0.5 || st.Adjustments.Contrast != 1 {
		t.Errorf("adjustments: got %+v", st.Adjustments)
	}
	if st.Path != imgPath {
		t.Errorf("path: got %s, want %s", st.Path, imgPath)
	}

	// Omitted factors keep their previous value.
	mustCall(t, s, "image_adjust", map[string]interface{}{"contrast": 1.5}, &st)
	if st.Adjustments.Brightness != 0.5 || st.Adjustments.Contrast != 1.5 {
		t.Errorf("adjustments after second call: got %+v", st.Adjustments)
	}
	mustCall(t, s, "image_adjust", map[string]interface{}{"contrast": 1}, &st)

	// Picking before any render has no geometry to map through.
	te := toolError(t, callTool(t, s, "image_pick_pixel", map[string]interface{}{"x": 10, "y": 10}))
	if te.Kind != "no_render" {
		t.Errorf("Kind: got %q, want no_render", te.Kind)
	}

	var render RenderResult
	mustCall(t, s, "image_render", map[string]interface{}{"canvas_width": 200, "canvas_height": 200}, &render)
	want := imaging.RenderGeometry{
		CanvasWidth: 200, CanvasHeight: 200,
		ImageWidth: 100, ImageHeight: 80,
		ScaledWidth: 200, ScaledHeight: 160,
		OffsetX: 0, OffsetY: 20,
	}
	if diff := cmp.Diff(want, render.Geometry); diff != "" {
		t.Errorf("geometry mismatch (-want +got):\n%s", diff)
	}
	if render.Canvas != nil {
		t.Error("canvas should be omitted unless include_image is set")
	}

	var pick conversionResult
	mustCall(t, s, "image_pick_pixel", map[string]interface{}{"x": 10, "y": 5}, &pick)
	if pick.Selected {
		t.Error("click on the letterbox bar should not select a pixel")
	}

	mustCall(t, s, "image_pick_pixel", map[string]interface{}{"x": 100, "y": 100, "model": "HSV"}, &pick)
	if !pick.Selected || pick.Pixel == nil {
		t.Fatal("click inside the image should select a pixel")
	}
	if pick.Pixel.X != 50 || pick.Pixel.Y != 40 {
		t.Errorf("pixel: got (%d,%d), want (50,40)", pick.Pixel.X, pick.Pixel.Y)
	}
	if pick.Pixel.Hex != "#7f0000" {
		t.Errorf("hex: got %s, want #7f0000", pick.Pixel.Hex)
	}
	if len(pick.Conversions) != 1 || pick.Conversions[0].Model != "HSV" {
		t.Fatalf("conversions: got %+v", pick.Conversions)
	}

	mustCall(t, s, "image_info", nil, &st)
	if st.SelectedPixel == nil || st.SelectedPixel.Hex != "#7f0000" {
		t.Errorf("selected pixel: got %+v", st.SelectedPixel)
	}
	if st.Geometry == nil || st.Geometry.OffsetY != 20 {
		t.Errorf("geometry: got %+v", st.Geometry)
	}
}

func TestHandleToolsCall_RenderWithImage(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 20, 10, color.RGBA{0, 0, 255, 255})
	mustCall(t, s, "image_load", map[string]interface{}{"path": imgPath}, nil)

	var render RenderResult
	mustCall(t, s, "image_render", map[string]interface{}{
		"canvas_width":  40,
		"canvas_height": 40,
		"include_image": true,
		"background":    "#ffffff",
	}, &render)

	if render.Canvas == nil {
		t.Fatal("canvas should be included")
	}
	if render.Canvas.Width != 40 || render.Canvas.Height != 40 {
		t.Errorf("canvas size: got %dx%d, want 40x40", render.Canvas.Width, render.Canvas.Height)
	}
	if render.Canvas.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", render.Canvas.MimeType)
	}
	if render.Canvas.ImageBase64 == "" {
		t.Error("ImageBase64 should not be empty")
	}
}

func TestHandleToolsCall_RenderInvalidBackground(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 20, 10, color.RGBA{0, 0, 255, 255})
	mustCall(t, s, "image_load", map[string]interface{}{"path": imgPath}, nil)

	toolError(t, callTool(t, s, "image_render", map[string]interface{}{
		"canvas_width":  40,
		"canvas_height": 40,
		"background":    "not-a-color",
	}))
}

func TestHandleToolsCall_AdjustInvalidMode(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 10, 10, color.RGBA{10, 20, 30, 255})
	mustCall(t, s, "image_load", map[string]interface{}{"path": imgPath}, nil)

	toolError(t, callTool(t, s, "image_adjust", map[string]interface{}{"mode": "CMYK"}))
}

func TestHandleToolsCall_AdjustMode(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 10, 10, color.RGBA{10, 20, 30, 255})
	mustCall(t, s, "image_load", map[string]interface{}{"path": imgPath}, nil)

	var st ImageState
	mustCall(t, s, "image_adjust", map[string]interface{}{"mode": "L"}, &st)
	if st.Current.Mode != imaging.ModeGray {
		t.Errorf("current mode: got %s, want L", st.Current.Mode)
	}
	if st.Original.Mode != imaging.ModeRGB {
		t.Errorf("original mode: got %s, want RGB", st.Original.Mode)
	}
}

func TestImageState_ConcurrentAdjust(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 16, 16, color.RGBA{10, 20, 30, 255})
	mustCall(t, s, "image_load", map[string]interface{}{"path": imgPath}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			args := json.RawMessage(`{"mode":"L"}`)
			if i%2 == 0 {
				args = json.RawMessage(`{"mode":"RGB"}`)
			}
			if _, err := s.handleImageAdjust(args); err != nil {
				t.Error(err)
			}
		}(i)
		go func() {
			defer wg.Done()
			st, err := s.state()
			if err != nil {
				t.Error(err)
				return
			}
			want := st.Adjustments.Mode
			if want == imaging.ModeKeep {
				want = imaging.ModeRGB
			}
			if st.Current.Mode != want {
				t.Errorf("state mixes generations: current %s, adjustments %s", st.Current.Mode, st.Adjustments.Mode)
			}
		}()
	}
	wg.Wait()
}

func TestHandleToolsCall_Morphology(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 20, 20, color.RGBA{100, 100, 100, 255})
	mustCall(t, s, "image_load", map[string]interface{}{"path": imgPath}, nil)

	var st ImageState
	mustCall(t, s, "image_morphology", map[string]interface{}{"operation": "dilate"}, &st)
	if st.MorphologyCount != 1 {
		t.Errorf("morphology_count: got %d, want 1", st.MorphologyCount)
	}

	mustCall(t, s, "image_morphology", map[string]interface{}{
		"operation":    "closing",
		"kernel_shape": "ellipse",
		"kernel_size":  5,
		"iterations":   2,
	}, &st)
	if st.MorphologyCount != 2 {
		t.Errorf("morphology_count: got %d, want 2", st.MorphologyCount)
	}

	mustCall(t, s, "image_morphology", map[string]interface{}{
		"operation": "gradient",
		"kernel":    [][]int{{0, 1, 0}, {1, 1, 1}, {0, 1, 0}},
		"anchor":    map[string]interface{}{"x": 1, "y": 1},
	}, &st)
	if st.MorphologyCount != 3 {
		t.Errorf("morphology_count: got %d, want 3", st.MorphologyCount)
	}

	// Adjusting starts again from the original.
	mustCall(t, s, "image_adjust", map[string]interface{}{"brightness": 1}, &st)
	if st.MorphologyCount != 0 {
		t.Errorf("morphology_count after adjust: got %d, want 0", st.MorphologyCount)
	}
}

func TestHandleToolsCall_MorphologyInvalidKernel(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 20, 20, color.RGBA{100, 100, 100, 255})
	mustCall(t, s, "image_load", map[string]interface{}{"path": imgPath}, nil)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"non-binary entry", map[string]interface{}{"operation": "erosion", "kernel": [][]int{{0, 2, 0}, {1, 1, 1}, {0, 1, 0}}}},
		{"not square", map[string]interface{}{"operation": "erosion", "kernel": [][]int{{1, 1, 1}, {1, 1, 1}}}},
		{"unknown shape", map[string]interface{}{"operation": "erosion", "kernel_shape": "hexagon"}},
		{"even size", map[string]interface{}{"operation": "erosion", "kernel_size": 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := toolError(t, callTool(t, s, "image_morphology", tt.args))
			if te.Kind != "invalid_kernel" {
				t.Errorf("Kind: got %q, want invalid_kernel (%s)", te.Kind, te.Error)
			}
		})
	}

	var st ImageState
	mustCall(t, s, "image_info", nil, &st)
	if st.MorphologyCount != 0 {
		t.Errorf("failed operations should not count, got %d", st.MorphologyCount)
	}
}

func TestHandleToolsCall_MorphologyUnknownOperation(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 20, 20, color.RGBA{100, 100, 100, 255})
	mustCall(t, s, "image_load", map[string]interface{}{"path": imgPath}, nil)

	toolError(t, callTool(t, s, "image_morphology", map[string]interface{}{"operation": "tophat"}))
}

func TestHandleToolsCall_Reset(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 20, 20, color.RGBA{100, 100, 100, 255})
	mustCall(t, s, "image_load", map[string]interface{}{"path": imgPath}, nil)
	mustCall(t, s, "image_adjust", map[string]interface{}{"brightness": 2}, nil)
	mustCall(t, s, "image_sample_color", map[string]interface{}{"x": 1, "y": 1}, nil)

	var st ImageState
	mustCall(t, s, "image_reset", nil, &st)
	if st.Adjustments != imaging.Identity() {
		t.Errorf("adjustments: got %+v, want identity", st.Adjustments)
	}
	if st.SelectedPixel != nil {
		t.Errorf("selection should be cleared, got %+v", st.SelectedPixel)
	}
}

func TestHandleToolsCall_SampleColor(t *testing.T) {
	s := New()
	imgPath := createPatternImageFile(t)
	mustCall(t, s, "image_load", map[string]interface{}{"path": imgPath}, nil)

	var res conversionResult
	mustCall(t, s, "image_sample_color", map[string]interface{}{"x": 7, "y": 2}, &res)
	if !res.Selected || res.Pixel == nil || res.Pixel.Hex != "#00ff00" {
		t.Fatalf("sample: got %+v", res)
	}
	if len(res.Conversions) != 9 {
		t.Errorf("conversions: got %d, want 9", len(res.Conversions))
	}

	// color_convert falls back to the selected pixel.
	var conv conversionResult
	mustCall(t, s, "color_convert", map[string]interface{}{"model": "CMYK"}, &conv)
	if conv.Hex != "#00ff00" {
		t.Errorf("hex: got %s, want #00ff00", conv.Hex)
	}
	want := map[string]float64{"c": 1, "m": 0, "y": 1, "k": 0}
	if diff := cmp.Diff(want, conv.Conversions[0].Value); diff != "" {
		t.Errorf("CMYK mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleToolsCall_SampleColorOutOfBounds(t *testing.T) {
	s := New()
	imgPath := createPatternImageFile(t)
	mustCall(t, s, "image_load", map[string]interface{}{"path": imgPath}, nil)

	toolError(t, callTool(t, s, "image_sample_color", map[string]interface{}{"x": 10, "y": 0}))
}

func TestHandleToolsCall_SampleColorsMulti(t *testing.T) {
	s := New()
	imgPath := createPatternImageFile(t)
	mustCall(t, s, "image_load", map[string]interface{}{"path": imgPath}, nil)

	var res struct {
		Samples []struct {
			Label string `json:"label"`
			Hex   string `json:"hex"`
		} `json:"samples"`
	}
	mustCall(t, s, "image_sample_colors_multi", map[string]interface{}{
		"points": []map[string]interface{}{
			{"x": 0, "y": 0, "label": "top-left"},
			{"x": 9, "y": 9},
		},
	}, &res)

	if len(res.Samples) != 2 {
		t.Fatalf("samples: got %d, want 2", len(res.Samples))
	}
	if res.Samples[0].Label != "top-left" || res.Samples[0].Hex != "#ff0000" {
		t.Errorf("sample 0: got %+v", res.Samples[0])
	}
	if res.Samples[1].Label != "" || res.Samples[1].Hex != "#ffffff" {
		t.Errorf("sample 1: got %+v", res.Samples[1])
	}
}

func TestHandleToolsCall_SampleColorsMulti_EmptyPoints(t *testing.T) {
	s := New()
	imgPath := createPatternImageFile(t)
	mustCall(t, s, "image_load", map[string]interface{}{"path": imgPath}, nil)

	var res struct {
		Samples []interface{} `json:"samples"`
	}
	mustCall(t, s, "image_sample_colors_multi", map[string]interface{}{"points": []interface{}{}}, &res)
	if len(res.Samples) != 0 {
		t.Errorf("samples: got %d, want 0", len(res.Samples))
	}
}

func TestHandleToolsCall_Histogram(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 10, 10, color.RGBA{255, 0, 0, 255})
	mustCall(t, s, "image_load", map[string]interface{}{"path": imgPath}, nil)

	var res struct {
		Mode  string         `json:"mode"`
		L     []int          `json:"l"`
		R     []int          `json:"r"`
		Peaks map[string]int `json:"peaks"`
	}
	mustCall(t, s, "image_histogram", nil, &res)

	if res.Mode != "RGB" {
		t.Errorf("mode: got %s, want RGB", res.Mode)
	}
	if res.L != nil {
		t.Error("RGB histogram should not have an L channel")
	}
	if len(res.R) != 256 || res.R[255] != 100 {
		t.Errorf("R[255]: want 100, got %v", res.R)
	}
	want := map[string]int{"r": 255, "g": 0, "b": 0}
	if diff := cmp.Diff(want, res.Peaks); diff != "" {
		t.Errorf("peaks mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleToolsCall_Save(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 30, 20, color.RGBA{10, 20, 30, 255})
	mustCall(t, s, "image_load", map[string]interface{}{"path": imgPath}, nil)
	mustCall(t, s, "image_adjust", map[string]interface{}{"mode": "L"}, nil)

	outPath := filepath.Join(t.TempDir(), "out.png")
	var info imaging.ImageInfo
	mustCall(t, s, "image_save", map[string]interface{}{"path": outPath}, &info)
	if info.Path != outPath || info.Mode != imaging.ModeGray {
		t.Errorf("save info: got %+v", info)
	}

	// The saved file loads back as the new active image.
	mustCall(t, s, "image_load", map[string]interface{}{"path": outPath}, &info)
	if info.Width != 30 || info.Height != 20 || info.Mode != imaging.ModeGray {
		t.Errorf("reloaded info: got %+v", info)
	}
}

func TestHandleToolsCall_SaveUnsupportedFormat(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 10, 10, color.RGBA{10, 20, 30, 255})
	mustCall(t, s, "image_load", map[string]interface{}{"path": imgPath}, nil)

	toolError(t, callTool(t, s, "image_save", map[string]interface{}{"path": filepath.Join(t.TempDir(), "out.xyz")}))
}

func TestHandleToolsCall_ColorConvert(t *testing.T) {
	s := New()

	tests := []struct {
		name      string
		args      map[string]interface{}
		wantHex   string
		wantModel string
		want      map[string]float64
	}{
		{
			"hex to HSV",
			map[string]interface{}{"hex": "#ff0000", "model": "HSV"},
			"#ff0000", "HSV",
			map[string]float64{"h": 0, "s": 1, "v": 1},
		},
		{
			"rgb to CMY",
			map[string]interface{}{"r": 0, "g": 0, "b": 255, "model": "cmy"},
			"#0000ff", "CMY",
			map[string]float64{"c": 1, "m": 1, "y": 0},
		},
		{
			"short hex",
			map[string]interface{}{"hex": "#fff", "model": "CMYK"},
			"#ffffff", "CMYK",
			map[string]float64{"c": 0, "m": 0, "y": 0, "k": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res conversionResult
			mustCall(t, s, "color_convert", tt.args, &res)
			if res.Hex != tt.wantHex {
				t.Errorf("hex: got %s, want %s", res.Hex, tt.wantHex)
			}
			if len(res.Conversions) != 1 {
				t.Fatalf("conversions: got %d, want 1", len(res.Conversions))
			}
			if res.Conversions[0].Model != tt.wantModel {
				t.Errorf("model: got %s, want %s", res.Conversions[0].Model, tt.wantModel)
			}
			if diff := cmp.Diff(tt.want, res.Conversions[0].Value); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandleToolsCall_ColorConvertAllModels(t *testing.T) {
	s := New()

	var res conversionResult
	mustCall(t, s, "color_convert", map[string]interface{}{"hex": "#000000"}, &res)

	if len(res.Conversions) != 9 {
		t.Fatalf("conversions: got %d, want 9", len(res.Conversions))
	}
	for _, c := range res.Conversions {
		if c.Model == "HUNTER_LAB" {
			if c.Error == "" || c.Value != nil {
				t.Errorf("Hunter Lab of black should report an error, got %+v", c)
			}
			continue
		}
		if c.Error != "" {
			t.Errorf("%s: unexpected error %s", c.Model, c.Error)
		}
		if c.Display == "" {
			t.Errorf("%s: display should be set", c.Model)
		}
	}
}

func TestHandleToolsCall_ColorConvertErrors(t *testing.T) {
	s := New()

	tests := []struct {
		name     string
		args     map[string]interface{}
		wantKind string
	}{
		{"degenerate", map[string]interface{}{"hex": "#000000", "model": "HUNTER_LAB"}, "degenerate_color_input"},
		{"unsupported model", map[string]interface{}{"hex": "#102030", "model": "RGB555"}, "unsupported_conversion"},
		{"invalid hex", map[string]interface{}{"hex": "#12zz45"}, ""},
		{"partial rgb", map[string]interface{}{"r": 10, "g": 20}, ""},
		{"channel out of range", map[string]interface{}{"r": 10, "g": 20, "b": 300}, ""},
		{"nothing selected", map[string]interface{}{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := toolError(t, callTool(t, s, "color_convert", tt.args))
			if te.Kind != tt.wantKind {
				t.Errorf("Kind: got %q, want %q (%s)", te.Kind, tt.wantKind, te.Error)
			}
		})
	}
}

func TestHandleToolsCall_ColorModels(t *testing.T) {
	s := New()

	var res struct {
		Models         []string           `json:"models"`
		Illuminant     string             `json:"illuminant"`
		Observer       int                `json:"observer"`
		ReferenceWhite map[string]float64 `json:"reference_white"`
	}
	mustCall(t, s, "color_models", nil, &res)

	if len(res.Models) != 9 || res.Models[0] != "CMYK" {
		t.Errorf("models: got %v", res.Models)
	}
	if res.Illuminant != "A" || res.Observer != 2 {
		t.Errorf("reference: got %s/%d, want A/2", res.Illuminant, res.Observer)
	}
	want := map[string]float64{"x": 109.850, "y": 100, "z": 35.585}
	if diff := cmp.Diff(want, res.ReferenceWhite); diff != "" {
		t.Errorf("reference white mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleToolsCall_ColorReferenceWhite(t *testing.T) {
	s := New()

	var res struct {
		Illuminant     string             `json:"illuminant"`
		Observer       int                `json:"observer"`
		ReferenceWhite map[string]float64 `json:"reference_white"`
	}
	mustCall(t, s, "color_reference_white", map[string]interface{}{"illuminant": "a", "observer": 10}, &res)
	if res.Illuminant != "A" || res.Observer != 10 {
		t.Errorf("got %s/%d, want A/10", res.Illuminant, res.Observer)
	}
	if res.ReferenceWhite["x"] != 111.144 || res.ReferenceWhite["z"] != 35.200 {
		t.Errorf("reference white: got %v", res.ReferenceWhite)
	}

	mustCall(t, s, "color_reference_white", map[string]interface{}{"illuminant": "D65"}, &res)
	if res.Observer != 2 {
		t.Errorf("observer default: got %d, want 2", res.Observer)
	}

	toolError(t, callTool(t, s, "color_reference_white", map[string]interface{}{"illuminant": "Z9"}))
	toolError(t, callTool(t, s, "color_reference_white", map[string]interface{}{"illuminant": "A", "observer": 5}))
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s := New()

	te := toolError(t, callTool(t, s, "nonexistent_tool", nil))
	if !strings.Contains(te.Error, "unknown tool") {
		t.Errorf("Error: got %q", te.Error)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`{invalid}`),
	}

	resp := s.handleRequest(req)

	if resp.Error == nil {
		t.Fatal("Expected error for invalid params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
}

func TestExecuteTool_AllTools(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 100, color.RGBA{128, 128, 128, 255})
	outPath := filepath.Join(t.TempDir(), "out.png")

	// Run every tool in order on one server so each has an image to work on.
	toolTests := []struct {
		name string
		args map[string]interface{}
	}{
		{"image_load", map[string]interface{}{"path": imgPath}},
		{"image_info", map[string]interface{}{}},
		{"image_adjust", map[string]interface{}{"brightness": 1.2, "sharpness": 0.5}},
		{"image_morphology", map[string]interface{}{"operation": "opening"}},
		{"image_render", map[string]interface{}{"canvas_width": 200, "canvas_height": 200}},
		{"image_pick_pixel", map[string]interface{}{"x": 100, "y": 100}},
		{"image_sample_color", map[string]interface{}{"x": 50, "y": 50}},
		{"image_sample_colors_multi", map[string]interface{}{"points": []map[string]interface{}{{"x": 25, "y": 25}}}},
		{"image_histogram", map[string]interface{}{}},
		{"image_save", map[string]interface{}{"path": outPath}},
		{"image_reset", map[string]interface{}{}},
		{"color_convert", map[string]interface{}{"hex": "#808080"}},
		{"color_models", map[string]interface{}{}},
		{"color_reference_white", map[string]interface{}{"illuminant": "D65"}},
	}

	if len(toolTests) != len(GetToolDefinitions()) {
		t.Fatalf("test covers %d tools, %d are defined", len(toolTests), len(GetToolDefinitions()))
	}

	for _, tt := range toolTests {
		t.Run(tt.name, func(t *testing.T) {
			argsJSON, _ := json.Marshal(tt.args)
			result, err := s.executeTool(tt.name, argsJSON)
			if err != nil {
				t.Fatalf("executeTool(%s) failed: %v", tt.name, err)
			}
			if result == nil {
				t.Errorf("executeTool(%s) returned nil result", tt.name)
			}
		})
	}
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s := New()

	_, err := s.executeTool("unknown_tool", json.RawMessage(`{}`))
	if err == nil {
		t.Error("executeTool should fail for unknown tool")
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := New()

	_, err := s.executeTool("image_load", json.RawMessage(`{invalid`))
	if err == nil {
		t.Error("executeTool should fail for invalid JSON")
	}
}
