package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// DefaultJPEGQuality is used by Encode and Save when no quality is given.
const DefaultJPEGQuality = 95

// Decode decodes an image held in memory.
//
// The format is sniffed from the content, not from a file name. Supported
// formats are PNG, JPEG, GIF, BMP, TIFF and WebP. JPEG images carrying an
// EXIF orientation tag are rotated upright.
//
// Returns the decoded image and the lowercase format name as registered with
// the image package ("png", "jpeg", ...).
func Decode(data []byte) (image.Image, string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// Open reads and decodes an image file. See Decode.
func Open(path string) (image.Image, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	return Decode(data)
}

// Encode writes img to w in the named format ("png", "jpeg"/"jpg", "gif",
// "tiff"/"tif", "bmp"). A quality outside 1-100 selects DefaultJPEGQuality;
// it is ignored for formats other than JPEG.
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return fmt.Errorf("unsupported output format %q: %w", format, err)
	}
	if err := imaging.Encode(w, img, f, imaging.JPEGQuality(jpegQuality(quality))); err != nil {
		return fmt.Errorf("failed to encode %s: %w", f, err)
	}
	return nil
}

// Save encodes img to path, choosing the format from the file extension.
func Save(img image.Image, path string, quality int) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("unsupported output format %q: %w", strings.ToLower(filepath.Ext(path)), err)
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(jpegQuality(quality))); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

func jpegQuality(q int) int {
	if q < 1 || q > 100 {
		return DefaultJPEGQuality
	}
	return q
}
