package colorspace

import (
	"fmt"
	"math"
	"strings"
)

// Model identifies a target color model. The zero value is not a valid model.
type Model int

const (
	ModelHSV Model = iota + 1
	ModelHSL
	ModelCMY
	ModelCMYK
	ModelXYZ
	ModelLab
	ModelHunterLab
	ModelYCbCr
	ModelYCbCrBT709
)

var modelNames = map[Model]string{
	ModelHSV:        "HSV",
	ModelHSL:        "HSL",
	ModelCMY:        "CMY",
	ModelCMYK:       "CMYK",
	ModelXYZ:        "XYZ",
	ModelLab:        "LAB",
	ModelHunterLab:  "HUNTER_LAB",
	ModelYCbCr:      "YCbCr",
	ModelYCbCrBT709: "YCbCr_BT709",
}

// String returns the boundary name of the model, e.g. "HUNTER_LAB".
func (m Model) String() string {
	if name, ok := modelNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Model(%d)", int(m))
}

// MarshalText encodes the model by name so it reads naturally in JSON.
func (m Model) MarshalText() ([]byte, error) {
	if _, ok := modelNames[m]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedConversion, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText decodes a model name accepted by ParseModel.
func (m *Model) UnmarshalText(text []byte) error {
	parsed, err := ParseModel(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseModel resolves a model name, ignoring case. "HUNTERLAB" and "CIELAB"
// are accepted as aliases for HUNTER_LAB and LAB.
func ParseModel(name string) (Model, error) {
	trimmed := strings.TrimSpace(name)
	for m, n := range modelNames {
		if strings.EqualFold(n, trimmed) {
			return m, nil
		}
	}
	switch strings.ToUpper(trimmed) {
	case "HUNTERLAB", "HUNTER":
		return ModelHunterLab, nil
	case "CIELAB", "L*A*B*":
		return ModelLab, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedConversion, name)
}

// Models returns the supported models in menu order: the five models an
// operator picks from first, then the intermediate and alternate ones.
func Models() []Model {
	return []Model{
		ModelCMYK,
		ModelHSL,
		ModelLab,
		ModelHSV,
		ModelYCbCr,
		ModelHunterLab,
		ModelCMY,
		ModelXYZ,
		ModelYCbCrBT709,
	}
}

// Convert converts c into model m.
//
// It returns ErrUnsupportedConversion for a model outside the enumeration and
// ErrDegenerateColorInput when the arithmetic of the model is undefined for c
// (Hunter Lab of pure black).
func Convert(c RGB, m Model) (Color, error) {
	var out Color
	switch m {
	case ModelHSV:
		out = RGBToHSV(c)
	case ModelHSL:
		out = RGBToHSL(c)
	case ModelCMY:
		out = RGBToCMY(c)
	case ModelCMYK:
		out = RGBToCMYK(c)
	case ModelXYZ:
		out = SRGBToXYZ(c)
	case ModelLab:
		out = RGBToLab(c)
	case ModelHunterLab:
		out = RGBToHunterLab(c)
	case ModelYCbCr:
		out = RGBToYCbCr(c)
	case ModelYCbCrBT709:
		out = RGBToYCbCrBT709(c)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConversion, m)
	}

	for _, v := range out.Components() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s of %s", ErrDegenerateColorInput, m, c.Hex())
		}
	}
	return out, nil
}

// Conversion is one model rendition of a color as reported to a client.
type Conversion struct {
	Model Model `json:"model"`
	Value Color `json:"value,omitempty"`

	// Display is Value formatted by Format.
	Display string `json:"display,omitempty"`

	// Error is set instead of Value when the conversion failed.
	Error string `json:"error,omitempty"`
}

// ConvertAll converts c into every model in Models order. A model whose
// conversion fails is reported through its Error field.
func ConvertAll(c RGB) []Conversion {
	models := Models()
	out := make([]Conversion, 0, len(models))
	for _, m := range models {
		v, err := Convert(c, m)
		if err != nil {
			out = append(out, Conversion{Model: m, Error: err.Error()})
			continue
		}
		out = append(out, Conversion{Model: m, Value: v, Display: Format(v)})
	}
	return out
}
