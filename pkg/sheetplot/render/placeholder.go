package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Placeholder draws the image shown while no chart can be rendered: a
// blank canvas with the prompt centred on it.
func Placeholder(width, height int, prompt string) (*models.RenderedImage, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	if prompt = strings.TrimSpace(prompt); prompt != "" {
		face := basicfont.Face7x13
		dr := &font.Drawer{Dst: img, Src: image.NewUniform(color.RGBA{R: 64, G: 64, B: 64, A: 255}), Face: face}
		tw := dr.MeasureString(prompt).Ceil()
		x := (width - tw) / 2
		if x < 4 {
			x = 4
		}
		y := height/2 + face.Metrics().Ascent.Ceil()/2
		dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
		dr.DrawString(prompt)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode placeholder: %w", err)
	}
	return &models.RenderedImage{
		Data:   buf.Bytes(),
		Format: models.FormatPNG,
		Width:  width,
		Height: height,
	}, nil
}
