package gallery

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"lamina/internal/logging"
)

// Canvas size of a lámina.
const (
	CanvasWidth  = 1080
	CanvasHeight = 1440
)

// ExportOptions controls how an image is written to disk.
type ExportOptions struct {
	// Resize fills the 1080x1440 canvas, cropping from the center.
	Resize bool
	// Quality is the JPEG quality used when re-encoding. Zero means 92.
	Quality int
}

// Export writes image to path. Without Resize the bytes are written as-is.
func Export(image []byte, path string, opts ExportOptions) error {
	if len(image) == 0 {
		return fmt.Errorf("nothing to export")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data := image
	if opts.Resize {
		resized, err := fitCanvas(image, opts.Quality)
		if err != nil {
			return err
		}
		data = resized
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logging.Store("Exported %d bytes to %s", len(data), path)
	return nil
}

func fitCanvas(image []byte, quality int) ([]byte, error) {
	if quality <= 0 {
		quality = 92
	}
	img, err := imaging.Decode(bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	img = imaging.Fill(img, CanvasWidth, CanvasHeight, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
