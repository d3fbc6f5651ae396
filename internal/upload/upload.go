// Package upload converts incoming artwork into a web-ready JPEG and a
// fixed-width thumbnail stored under the uploads directory.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

type Processor struct {
	dir        string
	thumbWidth int
}

func NewProcessor(dir string, thumbWidth int) (*Processor, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Processor{dir: dir, thumbWidth: thumbWidth}, nil
}

// Process decodes the uploaded image, re-encodes it as JPEG, and writes a
// thumbnail scaled to the configured width. Returned paths are relative to
// the uploads dir so they can be served statically.
func (p *Processor) Process(r io.Reader) (imagePath, thumbPath string, err error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", "", fmt.Errorf("decode image: %w", err)
	}

	name := uuid.New().String()
	imagePath = name + ".jpg"
	thumbPath = name + "_thumb.jpg"

	if err := imaging.Save(img, filepath.Join(p.dir, imagePath), imaging.JPEGQuality(90)); err != nil {
		return "", "", fmt.Errorf("save image: %w", err)
	}

	thumb := imaging.Resize(img, p.thumbWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(p.dir, thumbPath), imaging.JPEGQuality(80)); err != nil {
		return "", "", fmt.Errorf("save thumbnail: %w", err)
	}

	return imagePath, thumbPath, nil
}
