package imageproc

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return &buf
}

func decodeDataURL(t *testing.T, dataURL string) image.Image {
	t.Helper()
	const prefix = "data:image/jpeg;base64,"
	if !strings.HasPrefix(dataURL, prefix) {
		t.Fatalf("output missing data URL prefix: %.40q", dataURL)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, prefix))
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode jpeg: %v", err)
	}
	return img
}

func TestProcessImage_LandscapeToSquare(t *testing.T) {
	out, err := ProcessImage(pngBytes(t, 800, 400))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img := decodeDataURL(t, out)
	b := img.Bounds()
	if b.Dx() != 400 || b.Dy() != 400 {
		t.Errorf("output size = %dx%d; want 400x400", b.Dx(), b.Dy())
	}
}

func TestProcessImage_PortraitToSquare(t *testing.T) {
	out, err := ProcessImage(pngBytes(t, 300, 900))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img := decodeDataURL(t, out)
	b := img.Bounds()
	if b.Dx() != 400 || b.Dy() != 400 {
		t.Errorf("output size = %dx%d; want 400x400", b.Dx(), b.Dy())
	}
}

func TestProcessImage_UpscalesSmallInput(t *testing.T) {
	out, err := ProcessImage(pngBytes(t, 50, 50))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img := decodeDataURL(t, out)
	if img.Bounds().Dx() != 400 {
		t.Errorf("small input not scaled up to 400")
	}
}

func TestProcessImage_RejectsGarbage(t *testing.T) {
	_, err := ProcessImage(strings.NewReader("not an image"))
	if err == nil {
		t.Error("expected error for non-image input")
	}
}
