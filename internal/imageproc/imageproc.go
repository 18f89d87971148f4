// Package imageproc normalizes uploaded entity photos into square JPEG
// thumbnails encoded as data URLs.
package imageproc

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Output geometry and quality of processed images.
const (
	outputSize  = 400
	jpegQuality = 70
)

// dataURLPrefix precedes the base64 payload of a processed image.
const dataURLPrefix = "data:image/jpeg;base64,"

// ProcessImage reads an uploaded image, crops it to a centered square,
// scales it to 400x400 and returns a JPEG data URL. The two stages (read,
// then decode/encode) fail independently; a failure aborts only this upload.
func ProcessImage(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	square := centerSquare(src.Bounds())
	dst := image.NewRGBA(image.Rect(0, 0, outputSize, outputSize))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, square, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// centerSquare returns the largest centered square within the bounds.
func centerSquare(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	size := w
	if h < size {
		size = h
	}
	x := b.Min.X + (w-size)/2
	y := b.Min.Y + (h-size)/2
	return image.Rect(x, y, x+size, y+size)
}
