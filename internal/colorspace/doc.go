// Package colorspace converts single 8-bit RGB colors into other color models.
//
// Every conversion is a pure function on value types: nothing is cached,
// nothing is mutated, and every function is total on its input domain. The
// one exception is [XYZToHunterLab] at zero luminance, which yields NaN the
// way the arithmetic dictates; [Convert] reports that case as
// [ErrDegenerateColorInput].
//
// # Supported Models
//
//   - HSV and HSL: hue and saturation in [0,1] (hue in turns, not degrees)
//   - CMY and CMYK: components in [0,1], K derived from the CMY minimum
//   - XYZ: sRGB decoded to linear light, scaled 0-100, D65 matrix
//   - CIE L*a*b* and Hunter Lab: normalized against a reference white
//   - YCbCr: ITU-R BT.601 and BT.709, truncated and clamped to [0,255]
//
// # Reference White
//
// Lab and Hunter Lab normalize XYZ by a reference white taken from a fixed
// illuminant/observer table (see [ReferenceWhite]). The RGB entry points
// ([RGBToLab], [RGBToHunterLab]) are pinned to illuminant A with the 2°
// observer. The XYZ entry points accept any [Tristimulus].
//
// # Dispatch
//
// [Model] is a closed enumeration. [ParseModel] turns a boundary string such
// as "HUNTER_LAB" into a Model and rejects anything else with
// [ErrUnsupportedConversion]; [Convert] maps a Model to its conversion.
package colorspace
