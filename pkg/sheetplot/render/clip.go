package render

// rect is an axis-aligned clip rectangle in plot coordinates.
type rect struct {
	xmin, xmax float64
	ymin, ymax float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.xmin && x <= r.xmax && y >= r.ymin && y <= r.ymax
}

// clipSegment clips the segment (x0,y0)-(x1,y1) to r with the
// Liang-Barsky algorithm. ok is false when no part of it is inside.
func clipSegment(r rect, x0, y0, x1, y1 float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, x0 - r.xmin},
		{dx, r.xmax - x0},
		{-dy, y0 - r.ymin},
		{dy, r.ymax - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}

	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}
