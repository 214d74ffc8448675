// Package parser reads xlsx workbooks into tables and discovers the native
// charts embedded in them.
package parser

// EMUPerPixel is the number of EMUs (English Metric Units) per pixel at 96 DPI.
// 914400 EMU = 1 inch and 1 inch = 96 pixels, so 9525 EMU = 1 pixel.
const EMUPerPixel = 9525

// EMUToPixels converts EMU to pixels at 96 DPI.
func EMUToPixels(emu int64) int {
	return int(emu / EMUPerPixel)
}

// frameSize converts a drawing extent to pixel pointers, nil when the
// extent is not recorded.
func frameSize(cx, cy int64) (w, h *int) {
	if cx <= 0 || cy <= 0 {
		return nil, nil
	}
	pw, ph := EMUToPixels(cx), EMUToPixels(cy)
	return &pw, &ph
}
