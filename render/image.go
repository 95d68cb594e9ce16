package render

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // decode jpeg surfaces
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp" // decode webp surfaces
)

// ErrUnsupportedImage is returned for files that cannot serve as a
// background or surface.
var ErrUnsupportedImage = errors.New("unsupported image")

// imageSuffixes are the file types accepted for backgrounds and surfaces.
var imageSuffixes = []string{".png", ".jpg", ".jpeg", ".webp"}

// Accepts reports whether name has a suffix of a supported image type.
// XPM files are not accepted, there is no decoder for them.
func Accepts(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, s := range imageSuffixes {
		if ext == s {
			return true
		}
	}
	return false
}

// LoadImage reads a png, jpeg or webp image.
func LoadImage(name string) (image.Image, error) {
	if !Accepts(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, filepath.Base(name))
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnsupportedImage, filepath.Base(name), err)
	}
	tracer().Debugf("loaded %s image %s, %v", format, name, img.Bounds().Size())
	return img, nil
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// SavePNG writes img as PNG into the file name.
func SavePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
