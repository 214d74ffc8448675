// Package export packages rendered charts for download.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
)

// ErrEmptyImage is returned when there is nothing to export.
var ErrEmptyImage = errors.New("rendered image is empty")

// File is a downloadable artifact.
type File struct {
	// Name is the suggested file name, e.g. plot.png.
	Name string
	// MediaType is the Content-Type of Body.
	MediaType string
	// Size is the length of Body in bytes.
	Size int64
	// Body reads the encoded bytes from offset zero.
	Body *bytes.Reader
}

// Download wraps img as a file. The image bytes are not copied or changed.
func Download(img *models.RenderedImage) (*File, error) {
	if img == nil || len(img.Data) == 0 {
		return nil, ErrEmptyImage
	}
	return &File{
		Name:      img.Filename(),
		MediaType: img.MediaType(),
		Size:      int64(len(img.Data)),
		Body:      bytes.NewReader(img.Data),
	}, nil
}

// WriteTo writes the file body to w. The body is rewound first, so a File
// can be written more than once.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	if _, err := f.Body.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	return f.Body.WriteTo(w)
}

// WriteFile saves img into dir under its download name and returns the path.
func WriteFile(dir string, img *models.RenderedImage) (string, error) {
	f, err := Download(img)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, f.Name)
	if err := Save(path, f); err != nil {
		return "", err
	}
	return path, nil
}

// Save writes f to path, creating parent directories as needed.
func Save(path string, f *File) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if _, err := f.WriteTo(out); err != nil {
		out.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return out.Close()
}
