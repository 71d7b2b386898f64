package form

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrNotImage is returned when a template file does not hold an image.
var ErrNotImage = errors.New("template is not an image")

// TemplateAsset is a user-supplied image that text is overlaid onto instead
// of generating a graphic from scratch. It lives only for the session.
type TemplateAsset struct {
	Name     string
	MIMEType string
	Data     []byte
}

// LoadTemplate reads the whole file at path and detects its media type from
// the content. No size limit is applied.
func LoadTemplate(path string) (*TemplateAsset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	return NewTemplate(filepath.Base(path), data)
}

// NewTemplate wraps in-memory image bytes.
func NewTemplate(name string, data []byte) (*TemplateAsset, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("%s: %w (detected %s)", name, ErrNotImage, mt.String())
	}
	return &TemplateAsset{
		Name:     name,
		MIMEType: mt.String(),
		Data:     data,
	}, nil
}

// ApplyTemplate clears the visual-style fields when asset is set. The fields
// stay empty until the user fills them in again.
func (f *Fields) ApplyTemplate(asset *TemplateAsset) {
	if asset == nil {
		return
	}
	f.ClearVisual()
}
