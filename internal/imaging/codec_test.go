package imaging

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeEncode_PNG(t *testing.T) {
	src := createPatternImage(20, 10)

	var buf bytes.Buffer
	if err := Encode(&buf, src, "png", 0); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	img, format, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if format != "png" {
		t.Errorf("format: got %s, want png", format)
	}
	for _, pt := range []image.Point{{0, 0}, {15, 0}, {0, 9}, {19, 9}} {
		want := color.NRGBAModel.Convert(src.At(pt.X, pt.Y))
		got := color.NRGBAModel.Convert(img.At(pt.X, pt.Y))
		if want != got {
			t.Errorf("pixel %v: got %v, want %v", pt, got, want)
		}
	}
}

func TestEncode_JPEG(t *testing.T) {
	src := createInMemoryImage(16, 16, color.RGBA{200, 100, 50, 255})

	var buf bytes.Buffer
	if err := Encode(&buf, src, ".JPG", 90); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	_, format, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format: got %s, want jpeg", format)
	}
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, createInMemoryImage(2, 2, color.White), "xcf", 0); err == nil {
		t.Error("Encode should fail for an unknown format")
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, _, err := Decode([]byte("not an image")); err == nil {
		t.Error("Decode should fail for invalid data")
	}
	if _, _, err := Decode(nil); err == nil {
		t.Error("Decode should fail for empty data")
	}
}

func TestSaveOpen(t *testing.T) {
	dir := t.TempDir()
	src := createPatternImage(8, 8)

	for _, name := range []string{"out.png", "out.jpg", "out.bmp", "out.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(src, path, 80); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			img, _, err := Open(path)
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
				t.Errorf("size: got %v", img.Bounds())
			}
		})
	}

	if err := Save(src, filepath.Join(dir, "out.xyz"), 0); err == nil {
		t.Error("Save should fail for an unknown extension")
	}
	if _, err := os.Stat(filepath.Join(dir, "out.xyz")); !os.IsNotExist(err) {
		t.Error("Save created a file for an unknown extension")
	}
}

func TestJPEGQuality(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, DefaultJPEGQuality},
		{-5, DefaultJPEGQuality},
		{101, DefaultJPEGQuality},
		{1, 1},
		{75, 75},
		{100, 100},
	}
	for _, tt := range tests {
		if got := jpegQuality(tt.in); got != tt.want {
			t.Errorf("jpegQuality(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
