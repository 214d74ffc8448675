package parser

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"path"
	"strconv"
	"strings"
)

// Helpers for walking the raw OOXML package. excelize does not expose the
// chart parts of an existing workbook, so these read the zip directly.

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

func readElementText(decoder *xml.Decoder) (string, error) {
	var text strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return text.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text.String(), nil
}

// resolveRelativePath resolves a relationship target against the directory
// of the part that owns the relationship. Absolute targets are rooted at
// the package root.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(baseDir, target))
}

// relsPathFor returns the relationships part of a package part, e.g.
// xl/worksheets/sheet1.xml -> xl/worksheets/_rels/sheet1.xml.rels.
func relsPathFor(part string) string {
	return path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
}

func attrValue(se xml.StartElement, local string) string {
	for _, attr := range se.Attr {
		if attr.Name.Local == local {
			return attr.Value
		}
	}
	return ""
}

func parseWorkbookSheets(data []byte) map[string]string {
	result := make(map[string]string) // rId -> sheet name
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			name := attrValue(se, "name")
			rID := attrValue(se, "id")
			if name != "" && rID != "" {
				result[rID] = name
			}
		}
	}

	return result
}

func parseWorkbookRels(data []byte, sheetsInfo map[string]string) map[string]string {
	result := make(map[string]string) // sheet name -> part path
	for rID, target := range parseRelationships(data, "worksheet") {
		if sheetName, ok := sheetsInfo[rID]; ok {
			result[sheetName] = resolveRelativePath(target, "xl")
		}
	}
	return result
}

// parseRelationships returns rId -> target for relationships whose type
// contains kind.
func parseRelationships(data []byte, kind string) map[string]string {
	result := make(map[string]string)
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			relType := strings.ToLower(attrValue(se, "Type"))
			if strings.HasSuffix(relType, "/"+kind) {
				result[attrValue(se, "Id")] = attrValue(se, "Target")
			}
		}
	}

	return result
}

func findDrawingRelationship(data []byte) string {
	for _, target := range parseRelationships(data, "drawing") {
		return target
	}
	return ""
}

// parseXfrm reads the extent of an xfrm element in EMU.
func parseXfrm(decoder *xml.Decoder) (cx, cy int64) {
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "ext" {
				cx, _ = strconv.ParseInt(attrValue(t, "cx"), 10, 64)
				cy, _ = strconv.ParseInt(attrValue(t, "cy"), 10, 64)
			}
		case xml.EndElement:
			depth--
		}
	}
	return
}
