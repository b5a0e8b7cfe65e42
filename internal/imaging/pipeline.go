package imaging

import (
	"fmt"
	"image"
	"sync"

	"github.com/ironsheep/colorimetry-mcp/internal/morphology"
)

// Pipeline holds an original image and the current image derived from it.
//
// The original is set by Load and never modified. Apply derives a new
// current image from the original, so repeating the same adjustments always
// gives the same result. ApplyMorphology derives from the current image, so
// morphology operations chain. Every operation replaces the current image
// only on success.
//
// Images returned by a Pipeline are shared and must not be modified.
//
// A Pipeline is safe for concurrent use; mutations are serialized.
type Pipeline struct {
	mu sync.RWMutex

	morph morphology.Operator

	original image.Image
	current  image.Image
	params   Adjustments
	morphOps int

	// Canvas size of the last Render, zero before the first one.
	canvasW, canvasH int
	rendered         *Rendered

	selected *PixelSample
}

// NewPipeline returns an empty pipeline using the default morphology
// operator.
func NewPipeline() *Pipeline {
	return NewPipelineWithOperator(morphology.Default())
}

// NewPipelineWithOperator returns an empty pipeline using op for morphology.
func NewPipelineWithOperator(op morphology.Operator) *Pipeline {
	return &Pipeline{morph: op, params: Identity()}
}

// Load makes a normalized copy of img the original and current image. The
// adjustments, render and selection of any previous image are discarded.
func (p *Pipeline) Load(img image.Image) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	if b := img.Bounds(); b.Empty() {
		return fmt.Errorf("empty image %dx%d", b.Dx(), b.Dy())
	}
	norm := Normalize(img)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.original = norm
	p.current = norm
	p.params = Identity()
	p.morphOps = 0
	p.canvasW, p.canvasH = 0, 0
	p.rendered = nil
	p.selected = nil
	return nil
}

// LoadFile loads path through cache into the pipeline and returns its
// metadata.
func (p *Pipeline) LoadFile(cache *ImageCache, path string) (*ImageInfo, error) {
	info, err := LoadImageInfo(cache, path)
	if err != nil {
		return nil, err
	}
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	if err := p.Load(img); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return info, nil
}

// Loaded reports whether an image has been loaded.
func (p *Pipeline) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.original != nil
}

// Apply derives a new current image from the original with adjustments a
// (clamped) and returns it.
func (p *Pipeline) Apply(a Adjustments) (image.Image, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.original == nil {
		return nil, ErrUninitializedImage
	}

	a = a.Clamped()
	p.current = a.Apply(p.original)
	p.params = a
	p.morphOps = 0
	p.rendered = nil
	return p.current, nil
}

// ApplyMorphology runs a morphology operation on the current image and makes
// the result the new current image. On failure the current image is kept and
// the error is a *morphology.OpError.
func (p *Pipeline) ApplyMorphology(op morphology.Operation, k morphology.Kernel, iterations int) (image.Image, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil, ErrUninitializedImage
	}

	out, err := morphology.ApplyWith(p.morph, p.current, op, k, iterations)
	if err != nil {
		return nil, err
	}
	p.current = out
	p.morphOps++
	p.rendered = nil
	return p.current, nil
}

// Reset discards adjustments and morphology, making the original the current
// image again.
func (p *Pipeline) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.original == nil {
		return ErrUninitializedImage
	}
	p.current = p.original
	p.params = Identity()
	p.morphOps = 0
	p.rendered = nil
	p.selected = nil
	return nil
}

// Render scales the current image for a canvasW x canvasH display and
// remembers the geometry for PixelColor. Renders are cached until the
// current image or the canvas size changes.
func (p *Pipeline) Render(canvasW, canvasH int) (*Rendered, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil, ErrUninitializedImage
	}
	if p.rendered != nil && p.canvasW == canvasW && p.canvasH == canvasH {
		return p.rendered, nil
	}

	r, err := Render(p.current, canvasW, canvasH)
	if err != nil {
		return nil, err
	}
	p.canvasW, p.canvasH = canvasW, canvasH
	p.rendered = r
	return r, nil
}

// Geometry returns the render geometry of the current image on the last
// rendered canvas.
func (p *Pipeline) Geometry() (RenderGeometry, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.geometry()
}

func (p *Pipeline) geometry() (RenderGeometry, error) {
	if p.current == nil {
		return RenderGeometry{}, ErrUninitializedImage
	}
	if p.canvasW == 0 {
		return RenderGeometry{}, ErrNoRender
	}
	if p.rendered != nil {
		return p.rendered.Geometry, nil
	}
	b := p.current.Bounds()
	return ComputeGeometry(b.Dx(), b.Dy(), p.canvasW, p.canvasH)
}

// PixelColor maps a canvas point to the current image and samples it. The
// boolean is false when the point is on the letterbox bars; the previous
// selection is kept in that case. A hit becomes the selected pixel.
func (p *Pipeline) PixelColor(x, y int) (*PixelSample, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	g, err := p.geometry()
	if err != nil {
		return nil, false, err
	}
	s, ok, err := Inspect(p.current, g, x, y)
	if err != nil || !ok {
		return nil, ok, err
	}
	p.selected = s
	return s, true, nil
}

// PixelAt samples the current image at source coordinates (x, y) and makes
// it the selected pixel.
func (p *Pipeline) PixelAt(x, y int) (*PixelSample, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil, ErrUninitializedImage
	}
	s, err := SampleColor(p.current, x, y)
	if err != nil {
		return nil, err
	}
	p.selected = s
	return s, nil
}

// SelectedPixel returns the last pixel picked with PixelColor or PixelAt.
func (p *Pipeline) SelectedPixel() (*PixelSample, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.selected == nil {
		return nil, false
	}
	s := *p.selected
	return &s, true
}

// ClearSelection forgets the selected pixel.
func (p *Pipeline) ClearSelection() {
	p.mu.Lock()
	p.selected = nil
	p.mu.Unlock()
}

// Original returns the loaded image, or nil before Load.
func (p *Pipeline) Original() image.Image {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.original
}

// Current returns the current image, or nil before Load.
func (p *Pipeline) Current() image.Image {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Adjustments returns the adjustments that produced the current image.
func (p *Pipeline) Adjustments() Adjustments {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.params
}

// MorphologyCount returns how many morphology operations have been applied
// since the last Load, Apply or Reset.
func (p *Pipeline) MorphologyCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.morphOps
}

// Snapshot is the state of a Pipeline at one instant.
type Snapshot struct {
	Original        image.Image
	Current         image.Image
	Adjustments     Adjustments
	MorphologyCount int

	// Geometry is nil before the first Render.
	Geometry *RenderGeometry
	Selected *PixelSample
}

// Snapshot reads the whole pipeline state under one lock, so the fields
// always belong to the same generation of the current image.
func (p *Pipeline) Snapshot() (Snapshot, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.original == nil {
		return Snapshot{}, ErrUninitializedImage
	}

	s := Snapshot{
		Original:        p.original,
		Current:         p.current,
		Adjustments:     p.params,
		MorphologyCount: p.morphOps,
	}
	if g, err := p.geometry(); err == nil {
		s.Geometry = &g
	}
	if p.selected != nil {
		sel := *p.selected
		s.Selected = &sel
	}
	return s, nil
}
