package models

import (
	"fmt"
	"strings"
)

// ImageFormat is the encoding of a rendered chart.
type ImageFormat string

const (
	FormatPNG ImageFormat = "png"
	FormatSVG ImageFormat = "svg"
)

// ParseImageFormat parses an image format; the empty string means PNG.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	}
	return "", fmt.Errorf("invalid image format %q (must be png or svg)", s)
}

// Filename returns the fixed download name for the format.
func (f ImageFormat) Filename() string {
	if f == FormatSVG {
		return "plot.svg"
	}
	return "plot.png"
}

// MediaType returns the media type for the format.
func (f ImageFormat) MediaType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// RenderedImage is an encoded chart ready for export.
type RenderedImage struct {
	// Data holds the encoded image bytes.
	Data []byte `json:"-"`
	// Format is the encoding of Data.
	Format ImageFormat `json:"format"`
	// Width is the image width in pixels.
	Width int `json:"width"`
	// Height is the image height in pixels.
	Height int `json:"height"`
}

// Filename returns the default download name.
func (img *RenderedImage) Filename() string {
	return img.Format.Filename()
}

// MediaType returns the media type of the encoded bytes.
func (img *RenderedImage) MediaType() string {
	return img.Format.MediaType()
}
