// Package snapshot writes rendered frames to PNG files.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// ErrPixelSize is returned when the pixel slice does not match the frame size.
var ErrPixelSize = errors.New("pixel data size mismatch")

// Image converts bottom-up RGBA rows, as read back from OpenGL, into a
// top-down image.
func Image(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("%w: %dx%d needs %d bytes, got %d",
			ErrPixelSize, width, height, width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// Encode writes the frame as PNG.
func Encode(w io.Writer, pixels []byte, width, height int) error {
	img, err := Image(pixels, width, height)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Save writes the frame to path, creating parent directories.
func Save(path string, pixels []byte, width, height int) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating snapshot dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}

	if err := Encode(file, pixels, width, height); err != nil {
		file.Close()
		os.Remove(path)
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return file.Close()
}
