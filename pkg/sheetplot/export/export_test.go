package export

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
)

func TestDownload(t *testing.T) {
	data := []byte("\x89PNG\r\n\x1a\nfake image body")
	img := &models.RenderedImage{Data: data, Format: models.FormatPNG, Width: 640, Height: 480}

	f, err := Download(img)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if f.Name != "plot.png" {
		t.Errorf("Expected plot.png, got %q", f.Name)
	}
	if f.MediaType != "image/png" {
		t.Errorf("Expected image/png, got %q", f.MediaType)
	}
	if f.Size != int64(len(data)) {
		t.Errorf("Expected size %d, got %d", len(data), f.Size)
	}
	got, err := io.ReadAll(f.Body)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Expected the image bytes unchanged")
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), data) {
		t.Errorf("Expected WriteTo to rewind and write every byte")
	}
}

func TestDownloadEmpty(t *testing.T) {
	for _, img := range []*models.RenderedImage{nil, {Format: models.FormatPNG}} {
		if _, err := Download(img); !errors.Is(err, ErrEmptyImage) {
			t.Errorf("Expected ErrEmptyImage, got %v", err)
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	img := &models.RenderedImage{Data: []byte("<svg/>"), Format: models.FormatSVG}

	path, err := WriteFile(dir, img)
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if filepath.Base(path) != "plot.svg" {
		t.Errorf("Expected plot.svg, got %s", path)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != "<svg/>" {
		t.Errorf("Unexpected file content %q", got)
	}
}

func sampleTable() *models.Table {
	return models.NewTable("book.xlsx", "Sheet1", []models.Column{
		models.NewNumericColumn("Time", 1, 2, 3),
		models.NewNumericColumn("Temp", 20, math.NaN(), 18),
		models.NewNumericColumn("Load", 5, 7, 6),
		models.NewTextColumn("Site", "a", "b", "a"),
	})
}

func TestHTML(t *testing.T) {
	spec := models.DualAxis{
		Frame:   models.Frame{Title: "Plant", Grid: true},
		Primary: []models.Series{{X: "Time", Y: "Temp", Label: "Temperature"}},
		Legend:  models.LegendUpperLeft,
		Secondary: &models.SecondaryGroup{
			Series: []models.Series{{X: "Time", Y: "Load", Label: "Load", Secondary: true}},
			Axis:   models.Axis{Label: "Secondary Y-axis", Scale: models.ScaleLinear},
			Legend: models.LegendBest,
		},
	}

	var buf bytes.Buffer
	if err := HTML(&buf, sampleTable(), spec); err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	page := buf.String()
	for _, want := range []string{"<html", "sheetplot", "Temperature", "Secondary Y-axis", "dashed"} {
		if !strings.Contains(page, want) {
			t.Errorf("Expected page to contain %q", want)
		}
	}
}

func TestHTMLScatterCategorical(t *testing.T) {
	spec := models.Scatter{Frame: models.Frame{Title: "Sites"}, XColumn: "Site", YColumn: "Load"}

	var buf bytes.Buffer
	if err := HTML(&buf, sampleTable(), spec); err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	if !strings.Contains(buf.String(), "category") {
		t.Errorf("Expected a category axis for a text column")
	}
}

func TestHTMLInvalidScale(t *testing.T) {
	spec := models.SingleLine{XColumn: "Site", YColumn: "Load"}
	spec.X.Scale = models.ScaleLog

	var se *models.InvalidScaleError
	if err := HTML(io.Discard, sampleTable(), spec); !errors.As(err, &se) {
		t.Errorf("Expected InvalidScaleError, got %v", err)
	}
}
