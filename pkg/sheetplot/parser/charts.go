package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
)

// ChartTypeMap maps OOXML chart element tags to chart type names.
var ChartTypeMap = map[string]string{
	"lineChart":      "Line",
	"line3DChart":    "3DLine",
	"barChart":       "Bar",
	"bar3DChart":     "3DBar",
	"areaChart":      "Area",
	"area3DChart":    "3DArea",
	"pieChart":       "Pie",
	"pie3DChart":     "3DPie",
	"doughnutChart":  "Doughnut",
	"scatterChart":   "XYScatter",
	"bubbleChart":    "Bubble",
	"radarChart":     "Radar",
	"surfaceChart":   "Surface",
	"surface3DChart": "3DSurface",
	"stockChart":     "Stock",
	"ofPieChart":     "PieOfPie",
}

// noAxes are the chart types without an X/Y plane; they cannot be redrawn.
var noAxes = map[string]bool{
	"Pie": true, "3DPie": true, "Doughnut": true, "PieOfPie": true,
	"Radar": true, "Surface": true, "3DSurface": true,
}

// maxPresetLines caps the number of series a preset may carry.
const maxPresetLines = 10

// chartInfo holds chart metadata from drawing.xml.
type chartInfo struct {
	name      string
	rID       string
	chartPath string
	cx, cy    int64
}

// nativeSeries is one series of an embedded chart.
type nativeSeries struct {
	name    string
	nameRef string
	xRef    string
	yRef    string
	axisIDs []string
}

// nativeAxis is one axis of an embedded chart.
type nativeAxis struct {
	id      string
	tag     string // catAx, valAx, dateAx, serAx
	pos     string // b, l, r, t
	title   string
	logBase float64
	min     *float64
	max     *float64
}

func (a nativeAxis) horizontal() bool {
	switch a.pos {
	case "b", "t":
		return true
	case "l", "r":
		return false
	}
	return a.tag != "valAx"
}

// nativeChart is the subset of a chart part needed to rebuild it.
type nativeChart struct {
	chartType string
	title     string
	series    []nativeSeries
	axes      map[string]nativeAxis
}

// ExtractPresets reads the charts embedded in the table's sheet and turns
// each one whose data lies in the table into a preset selection. Charts that
// cannot be mapped are skipped.
func ExtractPresets(data []byte, t *models.Table) ([]models.Preset, error) {
	if t == nil {
		return nil, models.ErrNoTable
	}
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, models.NewParseError(t.BookName, "not a valid xlsx package", err)
	}

	infos := sheetCharts(r, t.SheetName)
	var presets []models.Preset
	for _, ci := range infos {
		chartXML, err := readZipFile(r, ci.chartPath)
		if err != nil || chartXML == nil {
			continue
		}
		nc := parseChartXML(chartXML)
		sel, ok := nc.selection(t)
		if !ok {
			continue
		}
		w, h := frameSize(ci.cx, ci.cy)
		presets = append(presets, models.Preset{
			Name:      ci.name,
			ChartType: nc.chartType,
			W:         w,
			H:         h,
			Selection: sel,
		})
	}
	return presets, nil
}

// sheetCharts returns the chart parts anchored on sheetName, in drawing order.
func sheetCharts(r *zip.Reader, sheetName string) []chartInfo {
	workbookXML, err := readZipFile(r, "xl/workbook.xml")
	if err != nil || workbookXML == nil {
		return nil
	}
	sheetsInfo := parseWorkbookSheets(workbookXML)
	if len(sheetsInfo) == 0 {
		return nil
	}

	wbRelsXML, err := readZipFile(r, "xl/_rels/workbook.xml.rels")
	if err != nil || wbRelsXML == nil {
		return nil
	}
	sheetPath, ok := parseWorkbookRels(wbRelsXML, sheetsInfo)[sheetName]
	if !ok {
		return nil
	}

	sheetRelsXML, err := readZipFile(r, relsPathFor(sheetPath))
	if err != nil || sheetRelsXML == nil {
		return nil
	}
	drawingTarget := findDrawingRelationship(sheetRelsXML)
	if drawingTarget == "" {
		return nil
	}
	drawingPath := resolveRelativePath(drawingTarget, dirOf(sheetPath))

	return getChartInfosFromDrawing(r, drawingPath)
}

func dirOf(part string) string {
	if i := strings.LastIndex(part, "/"); i >= 0 {
		return part[:i]
	}
	return ""
}

// getChartInfosFromDrawing extracts chart info from a drawing XML file.
func getChartInfosFromDrawing(r *zip.Reader, drawingPath string) []chartInfo {
	drawingXML, err := readZipFile(r, drawingPath)
	if err != nil || drawingXML == nil {
		return nil
	}

	frames := parseDrawingForCharts(drawingXML)
	if len(frames) == 0 {
		return nil
	}

	relsXML, err := readZipFile(r, relsPathFor(drawingPath))
	if err != nil || relsXML == nil {
		return nil
	}
	chartPaths := parseRelationships(relsXML, "chart")

	var result []chartInfo
	for _, ci := range frames {
		target, ok := chartPaths[ci.rID]
		if !ok {
			continue
		}
		ci.chartPath = resolveRelativePath(target, dirOf(drawingPath))
		result = append(result, ci)
	}
	return result
}

// parseDrawingForCharts returns the chart frames of a drawing in document order.
func parseDrawingForCharts(data []byte) []chartInfo {
	var result []chartInfo
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "graphicFrame" {
			if ci := parseGraphicFrameContent(decoder); ci.rID != "" {
				result = append(result, ci)
			}
		}
	}

	return result
}

// parseGraphicFrameContent parses graphicFrame content.
func parseGraphicFrameContent(decoder *xml.Decoder) chartInfo {
	var ci chartInfo
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "cNvPr":
				ci.name = attrValue(t, "name")
			case "xfrm":
				ci.cx, ci.cy = parseXfrm(decoder)
				depth--
			case "chart":
				ci.rID = attrValue(t, "id")
			}
		case xml.EndElement:
			depth--
		}
	}

	return ci
}

// parseChartXML parses chart XML content.
func parseChartXML(data []byte) nativeChart {
	nc := nativeChart{axes: make(map[string]nativeAxis)}
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "title":
			if nc.title == "" {
				nc.title = parseChartTitle(decoder)
			}
		case "plotArea":
			parsePlotArea(decoder, &nc)
		}
	}

	if nc.chartType == "" {
		nc.chartType = "unknown"
	}
	return nc
}

// parseChartTitle parses a title element, joining its text runs.
func parseChartTitle(decoder *xml.Decoder) string {
	var title strings.Builder
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "t" {
				if txt, err := readElementText(decoder); err == nil {
					title.WriteString(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return strings.TrimSpace(title.String())
}

// parsePlotArea parses the chart groups and axes of a plot area.
func parsePlotArea(decoder *xml.Decoder, nc *nativeChart) {
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if ct, ok := ChartTypeMap[t.Name.Local]; ok {
				if nc.chartType == "" {
					nc.chartType = ct
				}
				nc.series = append(nc.series, parseChartGroup(decoder)...)
				depth--
				continue
			}
			switch t.Name.Local {
			case "catAx", "valAx", "dateAx", "serAx":
				ax := parseAxis(decoder, t.Name.Local)
				nc.axes[ax.id] = ax
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
}

// parseChartGroup parses the series of one chart group. Every series
// inherits the group's axis ids.
func parseChartGroup(decoder *xml.Decoder) []nativeSeries {
	var series []nativeSeries
	var axisIDs []string
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "ser":
				series = append(series, parseSingleSeries(decoder))
				depth--
			case "axId":
				axisIDs = append(axisIDs, attrValue(t, "val"))
			}
		case xml.EndElement:
			depth--
		}
	}

	for i := range series {
		series[i].axisIDs = axisIDs
	}
	return series
}

// parseSingleSeries parses a single series element.
func parseSingleSeries(decoder *xml.Decoder) nativeSeries {
	var s nativeSeries
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "tx":
				s.name, s.nameRef = parseSeriesName(decoder)
				depth--
			case "cat", "xVal":
				s.xRef = parseSeriesRange(decoder)
				depth--
			case "val", "yVal":
				s.yRef = parseSeriesRange(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return s
}

// parseSeriesName parses series name from tx element.
func parseSeriesName(decoder *xml.Decoder) (name, nameRange string) {
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "f":
				if txt, err := readElementText(decoder); err == nil {
					nameRange = strings.TrimSpace(txt)
				}
				depth--
			case "v":
				if txt, err := readElementText(decoder); err == nil {
					name = strings.TrimSpace(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return
}

// parseSeriesRange parses the formula of a cat, val, xVal or yVal element.
func parseSeriesRange(decoder *xml.Decoder) string {
	var ref string
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "f" {
				if txt, err := readElementText(decoder); err == nil && ref == "" {
					ref = strings.TrimSpace(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return ref
}

// parseAxis parses an axis element.
func parseAxis(decoder *xml.Decoder, tag string) nativeAxis {
	ax := nativeAxis{tag: tag}
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "axId":
				if depth == 2 {
					ax.id = attrValue(t, "val")
				}
			case "axPos":
				ax.pos = attrValue(t, "val")
			case "title":
				ax.title = parseChartTitle(decoder)
				depth--
			case "logBase":
				ax.logBase, _ = strconv.ParseFloat(attrValue(t, "val"), 64)
			case "min":
				if v, err := strconv.ParseFloat(attrValue(t, "val"), 64); err == nil {
					ax.min = &v
				}
			case "max":
				if v, err := strconv.ParseFloat(attrValue(t, "val"), 64); err == nil {
					ax.max = &v
				}
			}
		case xml.EndElement:
			depth--
		}
	}

	return ax
}

// seriesAxes returns the horizontal and vertical axes a series is plotted on.
func (nc nativeChart) seriesAxes(s nativeSeries) (x, y nativeAxis, ok bool) {
	var haveX, haveY bool
	for _, id := range s.axisIDs {
		ax, found := nc.axes[id]
		if !found {
			continue
		}
		if ax.horizontal() && !haveX {
			x, haveX = ax, true
		} else if !ax.horizontal() && !haveY {
			y, haveY = ax, true
		}
	}
	return x, y, haveX && haveY
}

// selection maps the chart onto the table's columns.
func (nc nativeChart) selection(t *models.Table) (models.Selection, bool) {
	if noAxes[nc.chartType] || len(nc.series) == 0 {
		return models.Selection{}, false
	}

	type resolved struct {
		x, y      string
		label     string
		secondary bool
		xAxis     nativeAxis
		yAxis     nativeAxis
	}

	var lines []resolved
	var primaryYAxis nativeAxis
	for i, s := range nc.series {
		if i >= maxPresetLines {
			break
		}
		x, ok := resolveColumn(t, s.xRef)
		if !ok {
			return models.Selection{}, false
		}
		y, ok := resolveColumn(t, s.yRef)
		if !ok {
			return models.Selection{}, false
		}
		xAxis, yAxis, _ := nc.seriesAxes(s)
		if i == 0 {
			primaryYAxis = yAxis
		}
		line := resolved{x: x, y: y, label: seriesLabel(t, s), xAxis: xAxis, yAxis: yAxis}
		line.secondary = yAxis.id != "" && yAxis.id != primaryYAxis.id
		lines = append(lines, line)
	}

	first := lines[0]
	sel := models.Selection{
		Title:  nc.title,
		XLabel: first.xAxis.title,
		YLabel: first.yAxis.title,
		XScale: axisScale(first.xAxis),
		YScale: axisScale(first.yAxis),
		Legend: models.LegendBest,
	}
	sel.XLimits = axisLimits(first.xAxis, first.x)
	sel.YLimits = axisLimits(first.yAxis, first.y)

	sharedX := true
	anySecondary := false
	for _, l := range lines {
		if l.x != first.x {
			sharedX = false
		}
		if l.secondary {
			anySecondary = true
		}
	}

	switch {
	case len(lines) == 1 && nc.chartType == "XYScatter":
		sel.Kind = models.ChartScatter
		sel.X, sel.Y = first.x, first.y
	case len(lines) == 1:
		sel.Kind = models.ChartLine
		sel.X, sel.Y = first.x, first.y
	case sharedX && !anySecondary:
		sel.Kind = models.ChartSharedX
		sel.X = first.x
		for _, l := range lines {
			sel.YColumns = append(sel.YColumns, l.y)
		}
	default:
		sel.Kind = models.ChartDualAxis
		sel.LineCount = len(lines)
		sel.Legend2 = models.LegendBest
		for _, l := range lines {
			sel.Lines = append(sel.Lines, models.LineSelection{
				X: l.x, Y: l.y, Label: l.label, Secondary: l.secondary,
			})
			if l.secondary && sel.Y2Label == "" && sel.Y2Scale == "" {
				sel.Y2Label = l.yAxis.title
				sel.Y2Scale = axisScale(l.yAxis)
				sel.Y2Limits = axisLimits(l.yAxis, l.y)
			}
		}
	}

	if sel.XLimits != nil || sel.YLimits != nil || sel.Y2Limits != nil {
		sel.EditLimits = true
	}
	return sel, true
}

func seriesLabel(t *models.Table, s nativeSeries) string {
	if s.name != "" {
		return s.name
	}
	sheet, area, ok := parseRef(s.nameRef)
	if ok && sheet == t.SheetName && area.minRow+1 == t.HeaderRow {
		if col, found := t.ColumnAt(area.minCol + 1); found {
			return col.Name
		}
	}
	return ""
}

func axisScale(ax nativeAxis) models.Scale {
	if ax.logBase > 1 {
		return models.ScaleLog
	}
	return models.ScaleLinear
}

func axisLimits(ax nativeAxis, column string) *models.LimitOverride {
	if ax.min == nil && ax.max == nil {
		return nil
	}
	return &models.LimitOverride{Column: column, Min: ax.min, Max: ax.max}
}

// resolveColumn maps a single-column reference like Sheet1!$B$2:$B$20 to
// the table column it covers. The reference must lie in the table's sheet
// and below its header row.
func resolveColumn(t *models.Table, ref string) (string, bool) {
	sheet, area, ok := parseRef(ref)
	if !ok || area.minCol != area.maxCol {
		return "", false
	}
	if sheet != "" && sheet != t.SheetName {
		return "", false
	}
	if area.minRow+1 <= t.HeaderRow {
		return "", false
	}
	col, found := t.ColumnAt(area.minCol + 1)
	if !found {
		return "", false
	}
	return col.Name, true
}

func parseRef(ref string) (string, region, bool) {
	if ref == "" {
		return "", region{}, false
	}
	ref = strings.Trim(strings.TrimSpace(ref), "()")
	sheet, rangeStr := splitSheetRef(ref)
	area, ok := parseRangeToRegion(rangeStr)
	return sheet, area, ok
}
