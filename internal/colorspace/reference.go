package colorspace

import "sort"

// Illuminant names a CIE standard illuminant.
type Illuminant string

// Standard illuminants with tabulated reference whites.
const (
	IlluminantA   Illuminant = "A"
	IlluminantB   Illuminant = "B"
	IlluminantC   Illuminant = "C"
	IlluminantD50 Illuminant = "D50"
	IlluminantD55 Illuminant = "D55"
	IlluminantD65 Illuminant = "D65"
	IlluminantD75 Illuminant = "D75"
	IlluminantE   Illuminant = "E"
	IlluminantF1  Illuminant = "F1"
	IlluminantF2  Illuminant = "F2"
	IlluminantF3  Illuminant = "F3"
	IlluminantF4  Illuminant = "F4"
	IlluminantF5  Illuminant = "F5"
	IlluminantF6  Illuminant = "F6"
	IlluminantF7  Illuminant = "F7"
	IlluminantF8  Illuminant = "F8"
	IlluminantF9  Illuminant = "F9"
	IlluminantF10 Illuminant = "F10"
	IlluminantF11 Illuminant = "F11"
	IlluminantF12 Illuminant = "F12"
)

// Observer is the standard observer field of view in degrees.
type Observer int

const (
	Observer2  Observer = 2  // CIE 1931
	Observer10 Observer = 10 // CIE 1964
)

// Tristimulus is a reference white in XYZ, scaled so that Y = 100.
type Tristimulus struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type referenceKey struct {
	illuminant Illuminant
	observer   Observer
}

var referenceWhites = map[referenceKey]Tristimulus{
	{IlluminantA, Observer2}:    {109.850, 100, 35.585},
	{IlluminantA, Observer10}:   {111.144, 100, 35.200},
	{IlluminantB, Observer2}:    {99.0927, 100, 85.313},
	{IlluminantB, Observer10}:   {99.178, 100, 84.3493},
	{IlluminantC, Observer2}:    {98.074, 100, 118.232},
	{IlluminantC, Observer10}:   {97.285, 100, 116.145},
	{IlluminantD50, Observer2}:  {96.422, 100, 82.521},
	{IlluminantD50, Observer10}: {96.720, 100, 81.427},
	{IlluminantD55, Observer2}:  {95.682, 100, 92.149},
	{IlluminantD55, Observer10}: {95.799, 100, 90.926},
	{IlluminantD65, Observer2}:  {95.047, 100, 108.883},
	{IlluminantD65, Observer10}: {94.811, 100, 107.304},
	{IlluminantD75, Observer2}:  {94.972, 100, 122.638},
	{IlluminantD75, Observer10}: {94.416, 100, 120.641},
	{IlluminantE, Observer2}:    {100, 100, 100},
	{IlluminantE, Observer10}:   {100, 100, 100},
	{IlluminantF1, Observer2}:   {92.834, 100, 103.665},
	{IlluminantF1, Observer10}:  {94.791, 100, 103.191},
	{IlluminantF2, Observer2}:   {99.187, 100, 67.395},
	{IlluminantF2, Observer10}:  {103.280, 100, 69.026},
	{IlluminantF3, Observer2}:   {103.754, 100, 49.861},
	{IlluminantF3, Observer10}:  {108.968, 100, 51.965},
	{IlluminantF4, Observer2}:   {109.147, 100, 38.813},
	{IlluminantF4, Observer10}:  {114.961, 100, 40.963},
	{IlluminantF5, Observer2}:   {90.872, 100, 98.723},
	{IlluminantF5, Observer10}:  {93.369, 100, 98.636},
	{IlluminantF6, Observer2}:   {97.309, 100, 60.191},
	{IlluminantF6, Observer10}:  {102.148, 100, 62.074},
	{IlluminantF7, Observer2}:   {95.044, 100, 108.755},
	{IlluminantF7, Observer10}:  {95.792, 100, 107.687},
	{IlluminantF8, Observer2}:   {96.413, 100, 82.333},
	{IlluminantF8, Observer10}:  {97.115, 100, 81.135},
	{IlluminantF9, Observer2}:   {100.365, 100, 67.868},
	{IlluminantF9, Observer10}:  {102.116, 100, 67.826},
	{IlluminantF10, Observer2}:  {96.174, 100, 81.712},
	{IlluminantF10, Observer10}: {99.001, 100, 83.134},
	{IlluminantF11, Observer2}:  {100.966, 100, 64.370},
	{IlluminantF11, Observer10}: {103.866, 100, 65.627},
	{IlluminantF12, Observer2}:  {108.046, 100, 39.228},
	{IlluminantF12, Observer10}: {111.428, 100, 40.353},
}

// ReferenceWhite looks up the tabulated white of an illuminant/observer pair.
// The boolean is false for combinations that are not in the table.
func ReferenceWhite(ill Illuminant, obs Observer) (Tristimulus, bool) {
	t, ok := referenceWhites[referenceKey{ill, obs}]
	return t, ok
}

// DefaultReference returns the white used by RGBToLab and RGBToHunterLab:
// illuminant A, 2° observer.
func DefaultReference() Tristimulus {
	return referenceWhites[referenceKey{IlluminantA, Observer2}]
}

// Illuminants lists every illuminant in the table, sorted by name.
func Illuminants() []Illuminant {
	seen := make(map[Illuminant]bool)
	out := make([]Illuminant, 0, len(referenceWhites)/2)
	for k := range referenceWhites {
		if !seen[k.illuminant] {
			seen[k.illuminant] = true
			out = append(out, k.illuminant)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
